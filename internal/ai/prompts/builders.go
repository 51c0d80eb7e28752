package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"personalearn/internal/model"
)

// Summarize builds the plain study-aid summary request.
func Summarize(text string, att *Attachment) Request {
	var sb strings.Builder
	sb.WriteString("Summarize the following content concisely for a student study aid.\n\n")
	sb.WriteString("Additional Context/Prompt: ")
	sb.WriteString(sanitize(text))
	return Request{Prompt: sb.String(), Attachment: att}
}

// CorporateSummary builds a workplace document summary request in one
// of three registers.
func CorporateSummary(text string, mode model.SummaryMode, att *Attachment) Request {
	var lead string
	switch mode {
	case model.SummaryExec:
		lead = "Provide an Executive Summary of this document. Limit to 3 key bullet points. Be concise, action-oriented, and non-academic."
	case model.SummaryAction:
		lead = "Extract assigned tasks and Action Items from this document. If names are present, associate tasks with them. Format as a checklist."
	default:
		lead = "Explain this concept like I'm 5 (ELI5) for a client explanation. Tone should be persuasive but simple. Avoid jargon."
	}
	return Request{
		Prompt:     lead + "\n\nContext/Text: " + sanitize(text),
		Attachment: att,
	}
}

// Flashcards builds the five-card deck request.
func Flashcards(content string, att *Attachment) Request {
	return Request{
		Prompt:     "Create 5 study flashcards from the provided content. Return valid JSON.\n\nContext: " + sanitize(content),
		Attachment: att,
		Shape:      flashcardsSchema(),
	}
}

// categoryLine pairs a requested count with its prompt rendering.
type categoryLine struct {
	count int
	line  string
}

// qaCategories renders the quantity config in its fixed order:
// fill-in-the-blanks, MCQ, then written answers by mark value. Zero
// categories are omitted entirely.
func qaCategories(c model.QuestionCounts) []categoryLine {
	return []categoryLine{
		{c.FillInBlanks, fmt.Sprintf("- %d Fill in the Blanks questions.", c.FillInBlanks)},
		{c.MCQ, fmt.Sprintf("- %d Multiple Choice Questions (MCQs).", c.MCQ)},
		{c.Short2, fmt.Sprintf("- %d Short Answer Questions (2 Marks each).", c.Short2)},
		{c.Short5, fmt.Sprintf("- %d Short Answer Questions (5 Marks each).", c.Short5)},
		{c.Long10, fmt.Sprintf("- %d Long Answer Questions (10 Marks each).", c.Long10)},
		{c.Long15, fmt.Sprintf("- %d Long Answer Questions (15 Marks each).", c.Long15)},
	}
}

// QASet builds the categorized question set request. Callers must
// reject an all-zero config before building.
func QASet(content string, att *Attachment, c model.QuestionCounts) Request {
	var sb strings.Builder
	sb.WriteString("Generate a comprehensive Question & Answer set from this content strictly following this structure based on the requested counts:\n")
	for _, cat := range qaCategories(c) {
		if cat.count > 0 {
			sb.WriteString(cat.line)
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\nEnsure the questions cover the uploaded material thoroughly.\nContext: ")
	sb.WriteString(sanitize(content))
	return Request{Prompt: sb.String(), Attachment: att, Shape: qaSetSchema()}
}

// MindMap builds the mermaid mindmap request.
func MindMap(content string, att *Attachment) Request {
	var sb strings.Builder
	sb.WriteString("Generate a Mermaid.js mindmap based on the content below.\n\n")
	sb.WriteString("STRICT RULES:\n")
	sb.WriteString("1. Start strictly with \"mindmap\".\n")
	sb.WriteString("2. Use indentation (2 or 4 spaces) to define hierarchy.\n")
	sb.WriteString("3. Do NOT use brackets () [] {} inside node text unless they are wrapped in quotes.\n")
	sb.WriteString("4. Keep node text short (2-5 words max).\n")
	sb.WriteString("5. Do not output markdown code fences (no ```).\n")
	sb.WriteString("6. Return ONLY the mermaid code.\n\n")
	sb.WriteString("Context:\n")
	sb.WriteString(sanitize(content))
	return Request{Prompt: sb.String(), Attachment: att}
}

// ExamPaper builds the formal question paper request. A nil config lets
// the model pick its own mix; a non-nil config pins exact counts per
// category, rendered in the fixed category order.
func ExamPaper(topic, grade string, att *Attachment, c *model.QuestionCounts) Request {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create a formal examination question paper for Grade %s on the topic: %s.", grade, sanitize(topic))
	if c != nil {
		sb.WriteString("\nStructure the paper EXACTLY with the following question counts:")
		lines := []categoryLine{
			{c.FillInBlanks, fmt.Sprintf("\n- %d Fill in the Blanks", c.FillInBlanks)},
			{c.MCQ, fmt.Sprintf("\n- %d Multiple Choice Questions", c.MCQ)},
			{c.Short2, fmt.Sprintf("\n- %d Short Answer (2 marks)", c.Short2)},
			{c.Short5, fmt.Sprintf("\n- %d Short Answer (5 marks)", c.Short5)},
			{c.Long10, fmt.Sprintf("\n- %d Long Answer (10 marks)", c.Long10)},
			{c.Long15, fmt.Sprintf("\n- %d Essay/Long Answer (15 marks)", c.Long15)},
		}
		for _, cat := range lines {
			if cat.count > 0 {
				sb.WriteString(cat.line)
			}
		}
	} else {
		sb.WriteString("\nInclude a mix of MCQs, Short Answers, and Long Answers.")
	}
	sb.WriteString("\nProvide the output in structured JSON.")
	return Request{Prompt: sb.String(), Attachment: att, Shape: examPaperSchema()}
}

// EvaluateExam builds the grading request for a set of answered
// questions.
func EvaluateExam(answers []model.EvalInput) Request {
	data, err := json.Marshal(answers)
	if err != nil {
		data = []byte("[]")
	}
	var sb strings.Builder
	sb.WriteString("Evaluate the following student answers based on the questions and reference answers provided.\n\n")
	sb.WriteString("Strict Rules for Evaluation:\n")
	sb.WriteString("1. For Objective questions (MCQ, Fill in blanks), marks should only be awarded for exact or synonymous correctness.\n")
	sb.WriteString("2. For Subjective/Long questions, evaluate based on Factual Accuracy and Semantic Meaning.\n")
	sb.WriteString("   - Do NOT penalize if the wording is different from the reference answer as long as the core concept is correct.\n")
	sb.WriteString("   - If the answer is partially correct, award partial marks.\n\n")
	sb.WriteString("Input Data:\n")
	sb.Write(data)
	sb.WriteString("\n\nReturn a JSON object with:\n")
	sb.WriteString("- totalScore (number)\n- maxScore (number)\n- feedback (general summary string)\n")
	sb.WriteString("- results (array of objects: { questionIndex: number, marksAwarded: number, isCorrect: boolean, feedback: string })")
	return Request{Prompt: sb.String(), Shape: evalReportSchema()}
}

// TopicQuiz builds the five-question MCQ quiz request for a topic.
func TopicQuiz(topic string) Request {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate a 5-question multiple choice quiz on the topic: %q.\n", sanitize(topic))
	sb.WriteString("Include a mix of difficult and moderate questions suitable for competitive exams.\n\n")
	sb.WriteString("Return ONLY a JSON array with this structure:\n")
	sb.WriteString(`[{"question": "The question text", "options": ["Option A", "Option B", "Option C", "Option D"], "correctAnswer": "The exact text of the correct option", "explanation": "A brief explanation of why this is correct"}]`)
	return Request{Prompt: sb.String(), Shape: topicQuizSchema()}
}

// PitchDeck builds the five-slide pitch deck outline request.
func PitchDeck(idea string) Request {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create a 5-slide pitch deck outline for this business idea: %q.\n\n", sanitize(idea))
	sb.WriteString("Return strictly a JSON array of objects:\n")
	sb.WriteString(`[{"title": "Slide Title", "content": "Bulleted content for the slide", "visual": "Description of suggested image/chart"}]`)
	return Request{Prompt: sb.String(), Shape: pitchDeckSchema()}
}

// BusinessAnalysis builds the framework analysis request. The response
// keys depend on the framework, so the shape is a bare object.
func BusinessAnalysis(topic string, framework model.BusinessFramework) Request {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Perform a %s analysis for the following business concept or company: %q.\n\n", framework, sanitize(topic))
	sb.WriteString("Return the result strictly as a JSON object with keys corresponding to the framework categories.\n")
	sb.WriteString(`For SWOT: { "strengths": [], "weaknesses": [], "opportunities": [], "threats": [] }` + "\n")
	sb.WriteString(`For PESTLE: { "political": [], "economic": [], "social": [], "technological": [], "legal": [], "environmental": [] }` + "\n")
	sb.WriteString("Each value must be an array of strings (bullet points).")
	return Request{Prompt: sb.String(), Shape: &Schema{Type: TypeObject}}
}

// CodeReview builds the review or refactor request for a code snippet.
func CodeReview(code string, mode model.ReviewMode) Request {
	lead := "Refactor the following code to reduce cyclomatic complexity and improve memory usage. Explain your changes briefly."
	if mode == model.ReviewAnalyze {
		lead = "Act as a Senior Staff Engineer. Review the following code. Flag anti-patterns, detect security vulnerabilities, and suggest clean code alternatives. Be strict but constructive."
	}
	return Request{Prompt: lead + "\n\nCode:\n" + sanitize(code)}
}

// ToneRewrite builds the draft-polishing request.
func ToneRewrite(content string, tone model.Tone) Request {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Rewrite the following draft email/text to be %s.\n\n", strings.ToLower(string(tone)))
	sb.WriteString("Context:\n")
	sb.WriteString(sanitize(content))
	return Request{Prompt: sb.String()}
}

// RunCode builds the simulated code execution request.
func RunCode(code, language string) Request {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Act as a code execution engine. Simulate the output of the following %s code.\n", language)
	sb.WriteString("If there is an error, describe it. Only provide the output, no conversational filler.\n\n")
	sb.WriteString("Code:\n")
	sb.WriteString(sanitize(code))
	return Request{Prompt: sb.String()}
}

// CurrentAffairs builds the search-grounded news digest request. The
// search tool precludes a response schema, so the prompt asks for a
// fenced JSON block instead.
func CurrentAffairs() Request {
	var sb strings.Builder
	sb.WriteString("Perform a Google Search for the latest current affairs news (from today and yesterday) relevant for Indian competitive exams (UPSC/SSC).\n")
	sb.WriteString("Focus on: International Relations, National Policy, Science/Space, and Economics.\n\n")
	sb.WriteString("After searching, format the results strictly as a JSON object inside a code block.\n")
	sb.WriteString("Ensure you include the source URL for each item.\n\n")
	sb.WriteString("Required Structure:\n")
	sb.WriteString("```json\n")
	sb.WriteString(`{"newsItems": [{"title": "Headline", "category": "Politics/Science/Economy/World", "summary": "2-3 sentence summary", "importance": "High/Medium", "source": "Name of source", "url": "URL of source"}]}` + "\n")
	sb.WriteString("```")
	return Request{Prompt: sb.String(), Search: true}
}

// ImprovementAreas builds the dashboard study-suggestion request.
func ImprovementAreas() Request {
	return Request{
		Prompt: "Analyze a hypothetical student's recent poor performance in Calculus (Derivatives) and Physics (Kinematics). Suggest 3 specific areas for improvement.",
		Shape:  improvementAreasSchema(),
	}
}

// Search builds the grounded web search request.
func Search(query string) Request {
	return Request{
		Prompt: fmt.Sprintf("Search for information on: %q. Return a concise summary.", sanitize(query)),
		Search: true,
	}
}

// PlainQuery builds the ungrounded fallback for a failed search.
func PlainQuery(query string) Request {
	return Request{Prompt: sanitize(query)}
}

// Chat builds a multi-turn assistant request.
func Chat(history []model.ChatMessage, message string) Request {
	return Request{
		System:  "You are a helpful and professional AI assistant.",
		History: history,
		Prompt:  sanitize(message),
	}
}
