package ai

import (
	"context"
	"errors"
	"testing"

	"personalearn/internal/ai/prompts"
	"personalearn/internal/model"
)

// fakeProvider replays canned responses in order and records the
// requests it saw.
type fakeProvider struct {
	responses []string
	errs      []error
	requests  []prompts.Request
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(_ context.Context, req prompts.Request) (string, error) {
	i := len(f.requests)
	f.requests = append(f.requests, req)
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	var out string
	if i < len(f.responses) {
		out = f.responses[i]
	}
	return out, err
}

func newGateway(responses []string, errs []error) (*Gateway, *fakeProvider) {
	p := &fakeProvider{responses: responses, errs: errs}
	return New(p), p
}

func TestSummarizePropagatesProviderFailure(t *testing.T) {
	g, _ := newGateway(nil, []error{errors.New("boom")})

	_, err := g.Summarize(context.Background(), "notes", nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var opError *OpError
	if !errors.As(err, &opError) {
		t.Fatalf("error = %T, want *OpError", err)
	}
	if opError.Op != OpSummarize {
		t.Errorf("Op = %q, want %q", opError.Op, OpSummarize)
	}
	if opError.MessageID() != "error.summarize" {
		t.Errorf("MessageID() = %q, want %q", opError.MessageID(), "error.summarize")
	}
}

func TestFlashcardsParsesFencedResponse(t *testing.T) {
	g, _ := newGateway([]string{"```json\n[{\"front\":\"Q\",\"back\":\"A\"}]\n```"}, nil)

	cards, err := g.Flashcards(context.Background(), "notes", nil)
	if err != nil {
		t.Fatalf("Flashcards() error = %v", err)
	}
	if len(cards) != 1 || cards[0].Front != "Q" || cards[0].Back != "A" {
		t.Errorf("cards = %+v", cards)
	}
}

func TestFlashcardsUnparsableResolvesToEmpty(t *testing.T) {
	g, _ := newGateway([]string{"sorry, no JSON today"}, nil)

	cards, err := g.Flashcards(context.Background(), "notes", nil)
	if err != nil {
		t.Fatalf("Flashcards() error = %v", err)
	}
	if len(cards) != 0 {
		t.Errorf("cards = %+v, want empty", cards)
	}
}

func TestQASetRejectsEmptyConfigBeforeCallingProvider(t *testing.T) {
	g, p := newGateway(nil, nil)

	_, err := g.QASet(context.Background(), "notes", nil, &model.QuestionCounts{})
	if !errors.Is(err, ErrEmptyQuestionConfig) {
		t.Fatalf("error = %v, want ErrEmptyQuestionConfig", err)
	}
	if len(p.requests) != 0 {
		t.Errorf("provider was called %d times, want 0", len(p.requests))
	}
}

func TestQASetNilConfigUsesDefaultMix(t *testing.T) {
	g, p := newGateway([]string{"{}"}, nil)

	if _, err := g.QASet(context.Background(), "notes", nil, nil); err != nil {
		t.Fatalf("QASet() error = %v", err)
	}
	if len(p.requests) != 1 {
		t.Fatalf("provider calls = %d, want 1", len(p.requests))
	}
	if p.requests[0].Shape == nil {
		t.Errorf("default-config request missing shape")
	}
}

func TestExamPaperRejectsEmptyConfig(t *testing.T) {
	g, p := newGateway(nil, nil)

	_, err := g.ExamPaper(context.Background(), "Optics", "10", nil, &model.QuestionCounts{})
	if !errors.Is(err, ErrEmptyQuestionConfig) {
		t.Fatalf("error = %v, want ErrEmptyQuestionConfig", err)
	}
	if len(p.requests) != 0 {
		t.Errorf("provider was called before validation")
	}
}

func TestMindMapStripsFences(t *testing.T) {
	g, _ := newGateway([]string{"```mermaid\nmindmap\n  root((Biology))\n```"}, nil)

	out, err := g.MindMap(context.Background(), "notes", nil)
	if err != nil {
		t.Fatalf("MindMap() error = %v", err)
	}
	if out != "mindmap\n  root((Biology))" {
		t.Errorf("MindMap() = %q", out)
	}
}

func TestRunCodeDegradesToNeutralMessage(t *testing.T) {
	g, _ := newGateway(nil, []error{errors.New("quota exceeded")})

	out := g.RunCode(context.Background(), "print(1)", "python")
	if out != runCodeFallback {
		t.Errorf("RunCode() = %q, want %q", out, runCodeFallback)
	}
}

func TestCurrentAffairsDegradesToEmptyFeed(t *testing.T) {
	tests := []struct {
		name      string
		responses []string
		errs      []error
	}{
		{name: "provider failure", errs: []error{errors.New("offline")}},
		{name: "unparsable response", responses: []string{"no json"}},
		{name: "object without newsItems", responses: []string{"{}"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newGateway(tt.responses, tt.errs)
			items := g.CurrentAffairs(context.Background())
			if items == nil || len(items) != 0 {
				t.Errorf("CurrentAffairs() = %#v, want empty non-nil slice", items)
			}
		})
	}
}

func TestCurrentAffairsParsesFencedDigest(t *testing.T) {
	raw := "Latest headlines:\n```json\n{\"newsItems\":[{\"title\":\"Budget tabled\",\"category\":\"Economy\",\"summary\":\"s\",\"importance\":\"High\",\"source\":\"PIB\",\"url\":\"https://example.org\"}]}\n```"
	g, p := newGateway([]string{raw}, nil)

	items := g.CurrentAffairs(context.Background())
	if len(items) != 1 || items[0].Title != "Budget tabled" {
		t.Errorf("items = %+v", items)
	}
	if !p.requests[0].Search {
		t.Errorf("current affairs request not search-grounded")
	}
}

func TestImprovementAreasDegradesToEmpty(t *testing.T) {
	g, _ := newGateway(nil, []error{errors.New("offline")})

	areas := g.ImprovementAreas(context.Background())
	if areas == nil || len(areas) != 0 {
		t.Errorf("ImprovementAreas() = %#v, want empty non-nil slice", areas)
	}
}

func TestSearchRetriesUngroundedThenGivesUp(t *testing.T) {
	t.Run("grounded succeeds", func(t *testing.T) {
		g, p := newGateway([]string{"grounded answer"}, nil)
		if out := g.Search(context.Background(), "query"); out != "grounded answer" {
			t.Errorf("Search() = %q", out)
		}
		if len(p.requests) != 1 || !p.requests[0].Search {
			t.Errorf("expected one grounded request, got %+v", p.requests)
		}
	})

	t.Run("falls back to plain generation", func(t *testing.T) {
		g, p := newGateway([]string{"", "plain answer"}, []error{errors.New("tool mismatch"), nil})
		if out := g.Search(context.Background(), "query"); out != "plain answer" {
			t.Errorf("Search() = %q", out)
		}
		if len(p.requests) != 2 {
			t.Fatalf("provider calls = %d, want 2", len(p.requests))
		}
		if p.requests[1].Search {
			t.Errorf("retry request must not be grounded")
		}
	})

	t.Run("both fail", func(t *testing.T) {
		g, _ := newGateway(nil, []error{errors.New("a"), errors.New("b")})
		if out := g.Search(context.Background(), "query"); out != searchFallback {
			t.Errorf("Search() = %q, want %q", out, searchFallback)
		}
	})
}

func TestEvaluateExamParsesReport(t *testing.T) {
	raw := `{"totalScore": 7, "maxScore": 10, "feedback": "solid", "results": [{"questionIndex": 0, "marksAwarded": 7, "isCorrect": true, "feedback": "good"}]}`
	g, _ := newGateway([]string{raw}, nil)

	report, err := g.EvaluateExam(context.Background(), []model.EvalInput{
		{Question: "Define osmosis", Type: "short5", MaxMarks: 10, UserAnswer: "..."},
	})
	if err != nil {
		t.Fatalf("EvaluateExam() error = %v", err)
	}
	if report.TotalScore != 7 || report.MaxScore != 10 || len(report.Results) != 1 {
		t.Errorf("report = %+v", report)
	}
}

func TestChatSendsHistory(t *testing.T) {
	g, p := newGateway([]string{"nice to meet you"}, nil)

	history := []model.ChatMessage{{Role: model.ChatUser, Text: "hi"}, {Role: model.ChatModel, Text: "hello"}}
	out, err := g.Chat(context.Background(), history, "who are you?")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if out != "nice to meet you" {
		t.Errorf("Chat() = %q", out)
	}
	if len(p.requests[0].History) != 2 || p.requests[0].System == "" {
		t.Errorf("request = %+v", p.requests[0])
	}
}
