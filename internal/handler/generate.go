package handler

import (
	"log/slog"
	"net/http"

	"personalearn/internal/ai/prompts"
	"personalearn/internal/model"
)

// attachment resolves an optional data URL from the request body into
// an inline attachment. An empty string means no attachment; anything
// else must decode.
func attachment(w http.ResponseWriter, r *http.Request, dataURL string) (*prompts.Attachment, bool) {
	if dataURL == "" {
		return nil, true
	}
	mime, data, err := model.DecodeDataURL(dataURL)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "error.invalid_request")
		return nil, false
	}
	return &prompts.Attachment{MIMEType: mime, Data: data}, true
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	p, ok := persona(w, r)
	if !ok {
		return
	}
	var req struct {
		Text       string `json:"text"`
		Attachment string `json:"attachment"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	att, ok := attachment(w, r, req.Attachment)
	if !ok {
		return
	}

	summary, err := h.gateway.Summarize(r.Context(), req.Text, att)
	if err != nil {
		h.writeOpError(w, r, err)
		return
	}
	result := map[string]string{"summary": summary}
	if err := h.saveHistory(p, model.HistorySummary, deriveTitle(req.Text, "Summary"), result); err != nil {
		slog.Error("save history", "op", "summary", "error", err)
		respondError(w, r, http.StatusInternalServerError, "error.storage")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleCorporateSummary(w http.ResponseWriter, r *http.Request) {
	if _, ok := persona(w, r); !ok {
		return
	}
	var req struct {
		Text       string            `json:"text"`
		Mode       model.SummaryMode `json:"mode"`
		Attachment string            `json:"attachment"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	att, ok := attachment(w, r, req.Attachment)
	if !ok {
		return
	}

	summary, err := h.gateway.CorporateSummary(r.Context(), req.Text, req.Mode, att)
	if err != nil {
		h.writeOpError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func (h *Handler) handleFlashcards(w http.ResponseWriter, r *http.Request) {
	p, ok := persona(w, r)
	if !ok {
		return
	}
	var req struct {
		Text       string `json:"text"`
		Attachment string `json:"attachment"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	att, ok := attachment(w, r, req.Attachment)
	if !ok {
		return
	}

	cards, err := h.gateway.Flashcards(r.Context(), req.Text, att)
	if err != nil {
		h.writeOpError(w, r, err)
		return
	}
	result := map[string][]model.Flashcard{"flashcards": cards}
	if err := h.saveHistory(p, model.HistoryFlashcard, deriveTitle(req.Text, "Flashcards"), result); err != nil {
		slog.Error("save history", "op", "flashcards", "error", err)
		respondError(w, r, http.StatusInternalServerError, "error.storage")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleQASet(w http.ResponseWriter, r *http.Request) {
	p, ok := persona(w, r)
	if !ok {
		return
	}
	var req struct {
		Text       string                `json:"text"`
		Attachment string                `json:"attachment"`
		Counts     *model.QuestionCounts `json:"counts"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	att, ok := attachment(w, r, req.Attachment)
	if !ok {
		return
	}

	qa, err := h.gateway.QASet(r.Context(), req.Text, att, req.Counts)
	if err != nil {
		h.writeOpError(w, r, err)
		return
	}
	if err := h.saveHistory(p, model.HistoryQA, deriveTitle(req.Text, "Q&A Set"), qa); err != nil {
		slog.Error("save history", "op", "qa", "error", err)
		respondError(w, r, http.StatusInternalServerError, "error.storage")
		return
	}
	respondJSON(w, http.StatusOK, qa)
}

func (h *Handler) handleMindMap(w http.ResponseWriter, r *http.Request) {
	p, ok := persona(w, r)
	if !ok {
		return
	}
	var req struct {
		Text       string `json:"text"`
		Attachment string `json:"attachment"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	att, ok := attachment(w, r, req.Attachment)
	if !ok {
		return
	}

	mindMap, err := h.gateway.MindMap(r.Context(), req.Text, att)
	if err != nil {
		h.writeOpError(w, r, err)
		return
	}
	result := map[string]string{"mindMap": mindMap}
	if err := h.saveHistory(p, model.HistoryMindMap, deriveTitle(req.Text, "Mind Map"), result); err != nil {
		slog.Error("save history", "op", "mindmap", "error", err)
		respondError(w, r, http.StatusInternalServerError, "error.storage")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleExamPaper(w http.ResponseWriter, r *http.Request) {
	p, ok := persona(w, r)
	if !ok {
		return
	}
	var req struct {
		Topic      string                `json:"topic"`
		Grade      string                `json:"grade"`
		Attachment string                `json:"attachment"`
		Counts     *model.QuestionCounts `json:"counts"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	att, ok := attachment(w, r, req.Attachment)
	if !ok {
		return
	}

	paper, err := h.gateway.ExamPaper(r.Context(), req.Topic, req.Grade, att, req.Counts)
	if err != nil {
		h.writeOpError(w, r, err)
		return
	}
	if err := h.saveHistory(p, model.HistoryPaper, deriveTitle(req.Topic, "Question Paper"), paper); err != nil {
		slog.Error("save history", "op", "paper", "error", err)
		respondError(w, r, http.StatusInternalServerError, "error.storage")
		return
	}
	respondJSON(w, http.StatusOK, paper)
}

func (h *Handler) handleEvaluateExam(w http.ResponseWriter, r *http.Request) {
	if _, ok := persona(w, r); !ok {
		return
	}
	var req struct {
		Answers []model.EvalInput `json:"answers"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Answers) == 0 {
		respondError(w, r, http.StatusBadRequest, "error.invalid_request")
		return
	}

	report, err := h.gateway.EvaluateExam(r.Context(), req.Answers)
	if err != nil {
		h.writeOpError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *Handler) handleTopicQuiz(w http.ResponseWriter, r *http.Request) {
	if _, ok := persona(w, r); !ok {
		return
	}
	var req struct {
		Topic string `json:"topic"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	quiz, err := h.gateway.TopicQuiz(r.Context(), req.Topic)
	if err != nil {
		h.writeOpError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string][]model.QuizQuestion{"questions": quiz})
}

func (h *Handler) handlePitchDeck(w http.ResponseWriter, r *http.Request) {
	if _, ok := persona(w, r); !ok {
		return
	}
	var req struct {
		Idea string `json:"idea"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	slides, err := h.gateway.PitchDeck(r.Context(), req.Idea)
	if err != nil {
		h.writeOpError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string][]model.PitchSlide{"slides": slides})
}

func (h *Handler) handleBusinessAnalysis(w http.ResponseWriter, r *http.Request) {
	if _, ok := persona(w, r); !ok {
		return
	}
	var req struct {
		Topic     string                  `json:"topic"`
		Framework model.BusinessFramework `json:"framework"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Framework != model.FrameworkSWOT && req.Framework != model.FrameworkPESTLE {
		respondError(w, r, http.StatusBadRequest, "error.invalid_request")
		return
	}

	analysis, err := h.gateway.BusinessAnalysis(r.Context(), req.Topic, req.Framework)
	if err != nil {
		h.writeOpError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, analysis)
}

func (h *Handler) handleCodeReview(w http.ResponseWriter, r *http.Request) {
	if _, ok := persona(w, r); !ok {
		return
	}
	var req struct {
		Code string           `json:"code"`
		Mode model.ReviewMode `json:"mode"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	feedback, err := h.gateway.CodeReview(r.Context(), req.Code, req.Mode)
	if err != nil {
		h.writeOpError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"feedback": feedback})
}

func (h *Handler) handleRunCode(w http.ResponseWriter, r *http.Request) {
	p, ok := persona(w, r)
	if !ok {
		return
	}
	var req struct {
		Code     string `json:"code"`
		Language string `json:"language"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	// Degrades to a neutral message instead of failing; the playground
	// always has output to show.
	output := h.gateway.RunCode(r.Context(), req.Code, req.Language)
	result := map[string]string{"output": output}
	if err := h.saveHistory(p, model.HistoryCode, deriveTitle(req.Code, "Code Run"), result); err != nil {
		slog.Error("save history", "op", "run-code", "error", err)
		respondError(w, r, http.StatusInternalServerError, "error.storage")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleToneRewrite(w http.ResponseWriter, r *http.Request) {
	if _, ok := persona(w, r); !ok {
		return
	}
	var req struct {
		Text string     `json:"text"`
		Tone model.Tone `json:"tone"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	polished, err := h.gateway.ToneRewrite(r.Context(), req.Text, req.Tone)
	if err != nil {
		h.writeOpError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"text": polished})
}

func (h *Handler) handleNews(w http.ResponseWriter, r *http.Request) {
	// Always 200: the feed degrades to empty on failure.
	respondJSON(w, http.StatusOK, map[string][]model.NewsItem{
		"newsItems": h.gateway.CurrentAffairs(r.Context()),
	})
}

func (h *Handler) handleImprovements(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]model.ImprovementArea{
		"areas": h.gateway.ImprovementAreas(r.Context()),
	})
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"result": h.gateway.Search(r.Context(), req.Query),
	})
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		History []model.ChatMessage `json:"history"`
		Message string              `json:"message"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Message == "" {
		respondError(w, r, http.StatusBadRequest, "error.invalid_request")
		return
	}

	reply, err := h.gateway.Chat(r.Context(), req.History, req.Message)
	if err != nil {
		h.writeOpError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"reply": reply})
}
