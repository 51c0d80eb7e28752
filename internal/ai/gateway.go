package ai

import (
	"context"
	"log/slog"

	"personalearn/internal/ai/prompts"
	"personalearn/internal/model"
)

// Neutral fallbacks for operations that degrade instead of failing.
const (
	runCodeFallback = "Error executing code via AI simulation."
	searchFallback  = "Search unavailable."
)

// Gateway runs the generation operations against a Provider and
// applies each operation's failure policy: most propagate a typed
// *OpError, dashboard feeds degrade to empty results, and search
// retries ungrounded before giving up.
type Gateway struct {
	provider Provider
}

// New creates a gateway on top of the given provider.
func New(provider Provider) *Gateway {
	return &Gateway{provider: provider}
}

// text runs a request and returns the raw response, wrapping any
// failure with the operation name.
func (g *Gateway) text(ctx context.Context, op string, req prompts.Request) (string, error) {
	out, err := g.provider.Generate(ctx, req)
	if err != nil {
		slog.Error("generation failed", "op", op, "provider", g.provider.Name(), "error", err)
		return "", opErr(op, err)
	}
	return out, nil
}

// generate runs a request and extracts a typed value from the
// response. Provider failures propagate; a response that parses as
// nothing resolves to fallback, matching the tolerant-extraction
// contract.
func generate[T any](ctx context.Context, g *Gateway, op string, req prompts.Request, fallback T) (T, error) {
	raw, err := g.text(ctx, op, req)
	if err != nil {
		return fallback, err
	}
	return ExtractJSON(raw, fallback), nil
}

// Summarize produces a study-aid summary of text and an optional
// attachment.
func (g *Gateway) Summarize(ctx context.Context, text string, att *prompts.Attachment) (string, error) {
	return g.text(ctx, OpSummarize, prompts.Summarize(text, att))
}

// CorporateSummary produces a workplace summary in the given register.
func (g *Gateway) CorporateSummary(ctx context.Context, text string, mode model.SummaryMode, att *prompts.Attachment) (string, error) {
	return g.text(ctx, OpCorporateSummary, prompts.CorporateSummary(text, mode, att))
}

// Flashcards generates a small flashcard deck from study content.
func (g *Gateway) Flashcards(ctx context.Context, content string, att *prompts.Attachment) ([]model.Flashcard, error) {
	return generate(ctx, g, OpFlashcards, prompts.Flashcards(content, att), []model.Flashcard{})
}

// QASet generates a categorized question set. A nil config uses the
// default mix; a config requesting zero questions overall is rejected
// before any provider call.
func (g *Gateway) QASet(ctx context.Context, content string, att *prompts.Attachment, counts *model.QuestionCounts) (model.QASet, error) {
	c := model.DefaultQuestionCounts()
	if counts != nil {
		if counts.Total() == 0 {
			return model.QASet{}, opErr(OpQASet, ErrEmptyQuestionConfig)
		}
		c = *counts
	}
	return generate(ctx, g, OpQASet, prompts.QASet(content, att, c), model.QASet{})
}

// MindMap generates mermaid mindmap source, stripped of any code
// fences the model added despite instructions.
func (g *Gateway) MindMap(ctx context.Context, content string, att *prompts.Attachment) (string, error) {
	raw, err := g.text(ctx, OpMindMap, prompts.MindMap(content, att))
	if err != nil {
		return "", err
	}
	return StripFences(raw), nil
}

// ExamPaper generates a formal question paper. A nil config lets the
// model pick the mix; an all-zero config is rejected.
func (g *Gateway) ExamPaper(ctx context.Context, topic, grade string, att *prompts.Attachment, counts *model.QuestionCounts) (model.ExamPaper, error) {
	if counts != nil && counts.Total() == 0 {
		return model.ExamPaper{}, opErr(OpExamPaper, ErrEmptyQuestionConfig)
	}
	return generate(ctx, g, OpExamPaper, prompts.ExamPaper(topic, grade, att, counts), model.ExamPaper{})
}

// EvaluateExam grades a set of answered questions.
func (g *Gateway) EvaluateExam(ctx context.Context, answers []model.EvalInput) (model.EvalReport, error) {
	return generate(ctx, g, OpEvaluateExam, prompts.EvaluateExam(answers), model.EvalReport{})
}

// TopicQuiz generates a five-question MCQ quiz on a topic.
func (g *Gateway) TopicQuiz(ctx context.Context, topic string) ([]model.QuizQuestion, error) {
	return generate(ctx, g, OpTopicQuiz, prompts.TopicQuiz(topic), []model.QuizQuestion{})
}

// PitchDeck generates a five-slide pitch deck outline.
func (g *Gateway) PitchDeck(ctx context.Context, idea string) ([]model.PitchSlide, error) {
	return generate(ctx, g, OpPitchDeck, prompts.PitchDeck(idea), []model.PitchSlide{})
}

// BusinessAnalysis runs a SWOT or PESTLE analysis of a concept.
func (g *Gateway) BusinessAnalysis(ctx context.Context, topic string, framework model.BusinessFramework) (model.BusinessAnalysis, error) {
	return generate(ctx, g, OpBusinessAnalysis, prompts.BusinessAnalysis(topic, framework), model.BusinessAnalysis{})
}

// CodeReview reviews or refactors a code snippet.
func (g *Gateway) CodeReview(ctx context.Context, code string, mode model.ReviewMode) (string, error) {
	return g.text(ctx, OpCodeReview, prompts.CodeReview(code, mode))
}

// ToneRewrite rewrites a draft in the given tone.
func (g *Gateway) ToneRewrite(ctx context.Context, content string, tone model.Tone) (string, error) {
	return g.text(ctx, OpToneRewrite, prompts.ToneRewrite(content, tone))
}

// RunCode simulates executing a code snippet. Failures degrade to a
// neutral message rather than an error; the playground always shows
// something.
func (g *Gateway) RunCode(ctx context.Context, code, language string) string {
	out, err := g.text(ctx, OpRunCode, prompts.RunCode(code, language))
	if err != nil {
		return runCodeFallback
	}
	return out
}

// CurrentAffairs fetches the search-grounded news digest. Any failure
// degrades to an empty feed so the dashboard still renders.
func (g *Gateway) CurrentAffairs(ctx context.Context) []model.NewsItem {
	raw, err := g.text(ctx, OpCurrentAffairs, prompts.CurrentAffairs())
	if err != nil {
		return []model.NewsItem{}
	}
	digest := ExtractJSON(raw, model.NewsDigest{})
	if digest.NewsItems == nil {
		return []model.NewsItem{}
	}
	return digest.NewsItems
}

// ImprovementAreas fetches dashboard study suggestions, degrading to
// an empty list on failure.
func (g *Gateway) ImprovementAreas(ctx context.Context) []model.ImprovementArea {
	raw, err := g.text(ctx, OpImprovementAreas, prompts.ImprovementAreas())
	if err != nil {
		return []model.ImprovementArea{}
	}
	return ExtractJSON(raw, []model.ImprovementArea{})
}

// Search answers a query with search grounding. If the grounded call
// fails it retries ungrounded, and if that fails too it returns a
// neutral message.
func (g *Gateway) Search(ctx context.Context, query string) string {
	out, err := g.text(ctx, OpSearch, prompts.Search(query))
	if err == nil {
		return out
	}
	out, err = g.text(ctx, OpSearch, prompts.PlainQuery(query))
	if err == nil {
		return out
	}
	return searchFallback
}

// Chat continues a multi-turn conversation with one more user message.
func (g *Gateway) Chat(ctx context.Context, history []model.ChatMessage, message string) (string, error) {
	return g.text(ctx, OpChat, prompts.Chat(history, message))
}
