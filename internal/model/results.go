package model

// Flashcard is one card of a generated deck.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// QuizQuestion is a multiple-choice question. Explanation is only
// populated by the topic-quiz operation.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// BlankQuestion is a fill-in-the-blank question.
type BlankQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// WrittenQuestion is a free-form question with a model answer.
type WrittenQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QASet groups generated questions by category. The field order mirrors
// the order the categories appear in on paper: fill-in-the-blanks, MCQ,
// then written answers by increasing mark value.
type QASet struct {
	FillInTheBlanks  []BlankQuestion   `json:"fillInTheBlanks"`
	MCQ              []QuizQuestion    `json:"mcq"`
	Questions2Marks  []WrittenQuestion `json:"questions2Marks"`
	Questions5Marks  []WrittenQuestion `json:"questions5Marks"`
	Questions10Marks []WrittenQuestion `json:"questions10Marks"`
	Questions15Marks []WrittenQuestion `json:"questions15Marks"`
}

// PaperQuestion is one question of an exam paper section. Options is
// only present for MCQ sections.
type PaperQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
}

// PaperSection is one marks-homogeneous block of an exam paper.
type PaperSection struct {
	Name             string          `json:"name"`
	MarksPerQuestion float64         `json:"marksPerQuestion"`
	Questions        []PaperQuestion `json:"questions"`
}

// ExamPaper is a complete generated question paper.
type ExamPaper struct {
	Title        string         `json:"title"`
	Duration     string         `json:"duration"`
	MaxMarks     float64        `json:"maxMarks"`
	Instructions []string       `json:"instructions"`
	Sections     []PaperSection `json:"sections"`
}

// EvalInput pairs a paper question with the answer a student wrote.
type EvalInput struct {
	Question       string  `json:"question"`
	Type           string  `json:"type"`
	MaxMarks       float64 `json:"maxMarks"`
	OriginalAnswer string  `json:"originalAnswer,omitempty"`
	UserAnswer     string  `json:"userAnswer"`
}

// EvalResult is the grading outcome for a single answer.
type EvalResult struct {
	QuestionIndex int     `json:"questionIndex"`
	MarksAwarded  float64 `json:"marksAwarded"`
	IsCorrect     bool    `json:"isCorrect"`
	Feedback      string  `json:"feedback"`
}

// EvalReport is the grading outcome for a whole submission.
type EvalReport struct {
	TotalScore float64      `json:"totalScore"`
	MaxScore   float64      `json:"maxScore"`
	Feedback   string       `json:"feedback"`
	Results    []EvalResult `json:"results"`
}

// PitchSlide is one slide of a generated pitch deck outline.
type PitchSlide struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Visual  string `json:"visual"`
}

// NewsItem is one entry of the current-affairs feed.
type NewsItem struct {
	Title      string `json:"title"`
	Category   string `json:"category"`
	Summary    string `json:"summary"`
	Importance string `json:"importance"`
	Source     string `json:"source"`
	URL        string `json:"url,omitempty"`
}

// NewsDigest is the envelope the current-affairs operation returns.
type NewsDigest struct {
	NewsItems []NewsItem `json:"newsItems"`
}

// ImprovementArea is one study suggestion on the dashboard.
type ImprovementArea struct {
	Topic      string `json:"topic"`
	Suggestion string `json:"suggestion"`
	Priority   string `json:"priority"`
}

// BusinessAnalysis maps framework dimensions (e.g. "strengths") to
// bullet points. The keys depend on the chosen framework.
type BusinessAnalysis map[string][]string
