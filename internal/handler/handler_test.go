package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"personalearn/internal/ai"
	"personalearn/internal/ai/prompts"
	"personalearn/internal/i18n"
	"personalearn/internal/model"
	"personalearn/internal/store"
)

// scriptedProvider replays canned responses in order.
type scriptedProvider struct {
	responses []string
	errs      []error
	calls     int
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Generate(_ context.Context, _ prompts.Request) (string, error) {
	i := p.calls
	p.calls++
	var err error
	if i < len(p.errs) {
		err = p.errs[i]
	}
	var out string
	if i < len(p.responses) {
		out = p.responses[i]
	}
	return out, err
}

func newTestServer(t *testing.T, provider ai.Provider) (http.Handler, *store.Store) {
	t.Helper()
	if err := i18n.Init("en"); err != nil {
		t.Fatalf("i18n.Init: %v", err)
	}
	s, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	r := chi.NewRouter()
	r.Use(i18n.Middleware("en"))
	New(s, ai.New(provider)).Routes(r)
	return r, s
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeResponse[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestSummaryWritesHistory(t *testing.T) {
	h, s := newTestServer(t, &scriptedProvider{responses: []string{"a short summary"}})

	rec := doJSON(t, h, http.MethodPost, "/api/STUDENT/generate/summary", map[string]string{"text": "the water cycle"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	got := decodeResponse[map[string]string](t, rec)
	if got["summary"] != "a short summary" {
		t.Errorf("summary = %q", got["summary"])
	}

	items, err := s.History(model.PersonaStudent)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("history has %d items, want 1", len(items))
	}
	if items[0].Kind != model.HistorySummary {
		t.Errorf("history kind = %q, want %q", items[0].Kind, model.HistorySummary)
	}
	if items[0].Title != "the water cycle" {
		t.Errorf("history title = %q", items[0].Title)
	}
}

func TestSummaryProviderFailureReturnsStaticMessage(t *testing.T) {
	h, s := newTestServer(t, &scriptedProvider{errs: []error{errors.New("upstream 500")}})

	rec := doJSON(t, h, http.MethodPost, "/api/STUDENT/generate/summary", map[string]string{"text": "x"})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	got := decodeResponse[map[string]string](t, rec)
	if got["code"] != "error.summarize" {
		t.Errorf("code = %q", got["code"])
	}
	if got["error"] != "Failed to generate summary. Please check your connection." {
		t.Errorf("error = %q", got["error"])
	}

	items, _ := s.History(model.PersonaStudent)
	if len(items) != 0 {
		t.Errorf("failed generation must not write history, got %d items", len(items))
	}
}

func TestQASetRejectsAllZeroConfig(t *testing.T) {
	provider := &scriptedProvider{}
	h, _ := newTestServer(t, provider)

	rec := doJSON(t, h, http.MethodPost, "/api/STUDENT/generate/qa", map[string]any{
		"text":   "notes",
		"counts": model.QuestionCounts{},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	got := decodeResponse[map[string]string](t, rec)
	if got["code"] != "error.empty_question_config" {
		t.Errorf("code = %q", got["code"])
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times before validation", provider.calls)
	}
}

func TestUnknownPersonaIs404(t *testing.T) {
	h, _ := newTestServer(t, &scriptedProvider{})

	rec := doJSON(t, h, http.MethodPost, "/api/WIZARD/generate/summary", map[string]string{"text": "x"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	got := decodeResponse[map[string]string](t, rec)
	if got["code"] != "error.invalid_persona" {
		t.Errorf("code = %q", got["code"])
	}
}

func TestHistoryRoundTripAndDelete(t *testing.T) {
	h, _ := newTestServer(t, &scriptedProvider{responses: []string{"s1", "s2"}})

	for _, text := range []string{"first", "second"} {
		if rec := doJSON(t, h, http.MethodPost, "/api/ASPIRANT/generate/summary", map[string]string{"text": text}); rec.Code != http.StatusOK {
			t.Fatalf("summary status = %d", rec.Code)
		}
	}

	rec := doJSON(t, h, http.MethodGet, "/api/ASPIRANT/history", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("history status = %d", rec.Code)
	}
	items := decodeResponse[[]model.HistoryItem](t, rec)
	if len(items) != 2 {
		t.Fatalf("history has %d items, want 2", len(items))
	}
	if items[0].Title != "second" {
		t.Errorf("newest first violated: %q", items[0].Title)
	}

	rec = doJSON(t, h, http.MethodDelete, "/api/ASPIRANT/history/"+items[0].ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	items = decodeResponse[[]model.HistoryItem](t, doJSON(t, h, http.MethodGet, "/api/ASPIRANT/history", nil))
	if len(items) != 1 || items[0].Title != "first" {
		t.Errorf("history after delete = %+v", items)
	}
}

func TestSaveMaterialValidation(t *testing.T) {
	h, _ := newTestServer(t, &scriptedProvider{})

	tests := []struct {
		name string
		body map[string]string
		want int
	}{
		{
			name: "valid pdf",
			body: map[string]string{"title": "notes", "type": "PDF", "content": model.EncodeDataURL("application/pdf", []byte("%PDF"))},
			want: http.StatusCreated,
		},
		{
			name: "valid text",
			body: map[string]string{"title": "notes", "type": "TEXT", "content": "plain text"},
			want: http.StatusCreated,
		},
		{
			name: "pdf without data url",
			body: map[string]string{"title": "notes", "type": "PDF", "content": "not a data url"},
			want: http.StatusBadRequest,
		},
		{
			name: "unknown kind",
			body: map[string]string{"title": "notes", "type": "VIDEO", "content": "x"},
			want: http.StatusBadRequest,
		},
		{
			name: "missing title",
			body: map[string]string{"type": "TEXT", "content": "x"},
			want: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/api/materials", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}

	rec := doJSON(t, h, http.MethodGet, "/api/materials", nil)
	materials := decodeResponse[[]model.Material](t, rec)
	if len(materials) != 2 {
		t.Errorf("stored %d materials, want 2", len(materials))
	}
}

func TestScheduleExamAndStats(t *testing.T) {
	h, _ := newTestServer(t, &scriptedProvider{})

	rec := doJSON(t, h, http.MethodPost, "/api/exams", map[string]any{
		"title":    "Term Final",
		"subject":  "Chemistry",
		"date":     "2099-03-01T09:00:00Z",
		"duration": 120,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("schedule status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodGet, "/api/student/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d", rec.Code)
	}
	var got struct {
		Streak            int               `json:"streak"`
		WeeklyGoalPercent int               `json:"weeklyGoalPercent"`
		ActivityByWeekday []json.RawMessage `json:"activityByWeekday"`
		UpcomingExams     []model.Exam      `json:"upcomingExams"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if got.Streak != 0 || got.WeeklyGoalPercent != 0 {
		t.Errorf("fresh store stats = %+v", got)
	}
	if len(got.ActivityByWeekday) != 7 {
		t.Errorf("histogram buckets = %d, want 7", len(got.ActivityByWeekday))
	}
	if len(got.UpcomingExams) != 1 || got.UpcomingExams[0].Title != "Term Final" {
		t.Errorf("upcoming exams = %+v", got.UpcomingExams)
	}
}

func TestNewsDegradesToEmptyFeed(t *testing.T) {
	h, _ := newTestServer(t, &scriptedProvider{errs: []error{errors.New("search down")}})

	rec := doJSON(t, h, http.MethodGet, "/api/news", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	got := decodeResponse[map[string][]model.NewsItem](t, rec)
	if items, ok := got["newsItems"]; !ok || len(items) != 0 {
		t.Errorf("newsItems = %+v, want empty array", got)
	}
}

func TestSearchFallsBackToPlainGeneration(t *testing.T) {
	h, _ := newTestServer(t, &scriptedProvider{
		responses: []string{"", "plain answer"},
		errs:      []error{errors.New("no tool"), nil},
	})

	rec := doJSON(t, h, http.MethodPost, "/api/search", map[string]string{"query": "mughal empire"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	got := decodeResponse[map[string]string](t, rec)
	if got["result"] != "plain answer" {
		t.Errorf("result = %q", got["result"])
	}
}

func TestChatRequiresMessage(t *testing.T) {
	h, _ := newTestServer(t, &scriptedProvider{})

	rec := doJSON(t, h, http.MethodPost, "/api/chat", map[string]any{"history": []model.ChatMessage{}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestMalformedBodyIs400(t *testing.T) {
	h, _ := newTestServer(t, &scriptedProvider{})

	req := httptest.NewRequest(http.MethodPost, "/api/STUDENT/generate/summary", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
