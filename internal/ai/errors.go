// Package ai runs generation operations against a model provider and
// turns raw responses into typed results.
package ai

import "errors"

// Operation names, used for logging and for error message lookup.
const (
	OpSummarize        = "summarize"
	OpCorporateSummary = "corporate_summary"
	OpFlashcards       = "flashcards"
	OpQASet            = "qa_set"
	OpMindMap          = "mind_map"
	OpExamPaper        = "exam_paper"
	OpEvaluateExam     = "evaluate_exam"
	OpTopicQuiz        = "topic_quiz"
	OpPitchDeck        = "pitch_deck"
	OpBusinessAnalysis = "business_analysis"
	OpCodeReview       = "code_review"
	OpToneRewrite      = "tone_rewrite"
	OpRunCode          = "run_code"
	OpCurrentAffairs   = "current_affairs"
	OpImprovementAreas = "improvement_areas"
	OpSearch           = "search"
	OpChat             = "chat"
)

// ErrEmptyQuestionConfig rejects quantity configs that request zero
// questions across every category. Checked before any provider call.
var ErrEmptyQuestionConfig = errors.New("question config requests zero questions")

// ErrEmptyResponse marks a provider call that succeeded at the
// transport level but produced no text.
var ErrEmptyResponse = errors.New("model returned an empty response")

// OpError wraps a failure with the operation it belongs to. Handlers
// use Op to pick the static user-facing message; the wrapped error only
// reaches the logs.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// MessageID returns the i18n message id for the operation's static
// failure message.
func (e *OpError) MessageID() string {
	return "error." + e.Op
}

func opErr(op string, err error) *OpError {
	return &OpError{Op: op, Err: err}
}
