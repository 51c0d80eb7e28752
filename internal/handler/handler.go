// Package handler exposes the JSON API: generation operations per
// persona, history, materials, the exam schedule, and the dashboard.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"personalearn/internal/ai"
	"personalearn/internal/i18n"
	"personalearn/internal/model"
	"personalearn/internal/stats"
	"personalearn/internal/store"
)

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	store   *store.Store
	gateway *ai.Gateway
	stats   *stats.Aggregator
}

// New creates a new Handler.
func New(s *store.Store, g *ai.Gateway) *Handler {
	return &Handler{store: s, gateway: g, stats: stats.New(s)}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/materials", h.handleListMaterials)
		r.Post("/materials", h.handleSaveMaterial)
		r.Get("/exams", h.handleListExams)
		r.Post("/exams", h.handleScheduleExam)
		r.Get("/student/stats", h.handleStudentStats)
		r.Get("/news", h.handleNews)
		r.Get("/improvements", h.handleImprovements)
		r.Post("/search", h.handleSearch)
		r.Post("/chat", h.handleChat)

		r.Route("/{persona}", func(r chi.Router) {
			r.Get("/history", h.handleHistory)
			r.Delete("/history/{id}", h.handleDeleteHistory)
			r.Route("/generate", func(r chi.Router) {
				r.Post("/summary", h.handleSummary)
				r.Post("/corporate-summary", h.handleCorporateSummary)
				r.Post("/flashcards", h.handleFlashcards)
				r.Post("/qa", h.handleQASet)
				r.Post("/mindmap", h.handleMindMap)
				r.Post("/paper", h.handleExamPaper)
				r.Post("/evaluate", h.handleEvaluateExam)
				r.Post("/quiz", h.handleTopicQuiz)
				r.Post("/pitch-deck", h.handlePitchDeck)
				r.Post("/business", h.handleBusinessAnalysis)
				r.Post("/code-review", h.handleCodeReview)
				r.Post("/run-code", h.handleRunCode)
				r.Post("/tone", h.handleToneRewrite)
			})
		})
	})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// respondError writes the localized static message for msgID along
// with the machine-readable code. Underlying errors never leave the
// process through this path.
func respondError(w http.ResponseWriter, r *http.Request, status int, msgID string) {
	respondJSON(w, status, map[string]string{
		"error": i18n.T(r.Context(), msgID),
		"code":  msgID,
	})
}

// writeOpError maps a gateway failure onto an HTTP response: rejected
// input is the caller's fault, anything else is an upstream failure
// with a per-operation message.
func (h *Handler) writeOpError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ai.ErrEmptyQuestionConfig) {
		respondError(w, r, http.StatusBadRequest, "error.empty_question_config")
		return
	}
	var opError *ai.OpError
	if errors.As(err, &opError) {
		respondError(w, r, http.StatusBadGateway, opError.MessageID())
		return
	}
	slog.Error("unclassified failure", "error", err)
	respondError(w, r, http.StatusInternalServerError, "error.internal")
}

// persona extracts and validates the persona URL parameter. On failure
// it writes the error response and returns false.
func persona(w http.ResponseWriter, r *http.Request) (model.Persona, bool) {
	p := model.Persona(chi.URLParam(r, "persona"))
	if !p.Valid() {
		respondError(w, r, http.StatusNotFound, "error.invalid_persona")
		return "", false
	}
	return p, true
}

// decodeBody decodes a JSON request body into v. On failure it writes
// the error response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, r, http.StatusBadRequest, "error.invalid_request")
		return false
	}
	return true
}

// saveHistory records a successful generation in the persona's
// history. Write failures surface to the caller.
func (h *Handler) saveHistory(p model.Persona, kind model.HistoryKind, title string, content any) error {
	raw, err := json.Marshal(content)
	if err != nil {
		return err
	}
	now := time.Now()
	return h.store.AppendHistory(p, model.HistoryItem{
		ID:        model.NewHistoryID(now),
		Kind:      kind,
		Title:     title,
		Content:   raw,
		CreatedAt: now,
	})
}

// deriveTitle trims free text down to a short history title.
func deriveTitle(text, fallback string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return fallback
	}
	if len(runes) > 40 {
		return string(runes[:40]) + "…"
	}
	return text
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	p, ok := persona(w, r)
	if !ok {
		return
	}
	items, err := h.store.History(p)
	if err != nil {
		slog.Error("load history", "persona", p, "error", err)
		respondError(w, r, http.StatusInternalServerError, "error.storage")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handler) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	p, ok := persona(w, r)
	if !ok {
		return
	}
	if err := h.store.RemoveHistory(p, chi.URLParam(r, "id")); err != nil {
		slog.Error("delete history", "persona", p, "error", err)
		respondError(w, r, http.StatusInternalServerError, "error.storage")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListMaterials(w http.ResponseWriter, r *http.Request) {
	materials, err := h.store.Materials(r.Context())
	if err != nil {
		slog.Error("load materials", "error", err)
		respondError(w, r, http.StatusInternalServerError, "error.storage")
		return
	}
	respondJSON(w, http.StatusOK, materials)
}

func (h *Handler) handleSaveMaterial(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title   string             `json:"title"`
		Kind    model.MaterialKind `json:"type"`
		Content string             `json:"content"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Title == "" || req.Content == "" {
		respondError(w, r, http.StatusBadRequest, "error.invalid_request")
		return
	}
	switch req.Kind {
	case model.MaterialPDF, model.MaterialImage:
		if !model.IsDataURL(req.Content) {
			respondError(w, r, http.StatusBadRequest, "error.invalid_request")
			return
		}
	case model.MaterialText:
	default:
		respondError(w, r, http.StatusBadRequest, "error.invalid_request")
		return
	}

	m := model.Material{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Kind:      req.Kind,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}
	if err := h.store.SaveMaterial(r.Context(), m); err != nil {
		slog.Error("save material", "error", err)
		respondError(w, r, http.StatusInternalServerError, "error.storage")
		return
	}
	respondJSON(w, http.StatusCreated, m)
}

func (h *Handler) handleListExams(w http.ResponseWriter, r *http.Request) {
	exams, err := h.store.Exams()
	if err != nil {
		slog.Error("load exams", "error", err)
		respondError(w, r, http.StatusInternalServerError, "error.storage")
		return
	}
	respondJSON(w, http.StatusOK, exams)
}

func (h *Handler) handleScheduleExam(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title           string    `json:"title"`
		Subject         string    `json:"subject"`
		Date            time.Time `json:"date"`
		DurationMinutes int       `json:"duration"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Title == "" || req.Date.IsZero() {
		respondError(w, r, http.StatusBadRequest, "error.invalid_request")
		return
	}
	e := model.Exam{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Subject:         req.Subject,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Status:          model.ExamScheduled,
	}
	if err := h.store.SaveExam(e); err != nil {
		slog.Error("save exam", "error", err)
		respondError(w, r, http.StatusInternalServerError, "error.storage")
		return
	}
	respondJSON(w, http.StatusCreated, e)
}

func (h *Handler) handleStudentStats(w http.ResponseWriter, r *http.Request) {
	s, err := h.stats.StudentStats(r.Context(), time.Now())
	if err != nil {
		slog.Error("compute stats", "error", err)
		respondError(w, r, http.StatusInternalServerError, "error.storage")
		return
	}
	respondJSON(w, http.StatusOK, s)
}
