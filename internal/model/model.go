// Package model defines the domain types shared by the store, the AI
// gateway, and the HTTP handlers.
package model

import (
	"encoding/json"
	"strconv"
	"time"
)

// Persona represents a workspace the user can switch into. Each persona
// keeps its own history namespace in the store.
type Persona string

const (
	PersonaStudent      Persona = "STUDENT"
	PersonaTeacher      Persona = "TEACHER"
	PersonaProfessional Persona = "PROFESSIONAL"
	PersonaInterview    Persona = "INTERVIEW"
	PersonaAspirant     Persona = "ASPIRANT"
	PersonaBusiness     Persona = "BUSINESS"
)

// Valid reports whether p is one of the known personas.
func (p Persona) Valid() bool {
	switch p {
	case PersonaStudent, PersonaTeacher, PersonaProfessional,
		PersonaInterview, PersonaAspirant, PersonaBusiness:
		return true
	}
	return false
}

// HistoryKind classifies a saved history entry.
type HistoryKind string

const (
	HistorySummary   HistoryKind = "SUMMARY"
	HistoryFlashcard HistoryKind = "FLASHCARD"
	HistoryQA        HistoryKind = "QA"
	HistoryMindMap   HistoryKind = "MINDMAP"
	HistoryCode      HistoryKind = "CODE"
	HistoryPaper     HistoryKind = "PAPER"
)

// HistoryItem is one saved generation result. Content holds the
// operation's result verbatim; its structure depends on Kind.
type HistoryItem struct {
	ID        string          `json:"id"`
	Kind      HistoryKind     `json:"type"`
	Title     string          `json:"title"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"timestamp"`
}

// NewHistoryID derives a history entry id from its creation time.
func NewHistoryID(t time.Time) string {
	return strconv.FormatInt(t.UnixNano(), 10)
}

// MaterialKind classifies an uploaded study material.
type MaterialKind string

const (
	MaterialPDF   MaterialKind = "PDF"
	MaterialImage MaterialKind = "IMAGE"
	MaterialText  MaterialKind = "TEXT"
)

// Material is an uploaded document stored in the blob store. Content is
// a data URL for PDF and IMAGE materials and plain text otherwise.
type Material struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Kind      MaterialKind `json:"type"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"timestamp"`
}

// ExamStatus represents the lifecycle state of a scheduled exam.
type ExamStatus string

const (
	ExamScheduled ExamStatus = "SCHEDULED"
	ExamCompleted ExamStatus = "COMPLETED"
	ExamPending   ExamStatus = "PENDING"
)

// Exam is a scheduled exam shared between the teacher and student
// personas. Score stays nil until the exam has been evaluated.
type Exam struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Subject         string     `json:"subject"`
	Date            time.Time  `json:"date"`
	DurationMinutes int        `json:"duration"`
	Status          ExamStatus `json:"status"`
	Score           *float64   `json:"score,omitempty"`
}

// QuestionCounts configures how many questions of each category a Q&A
// set or exam paper should contain. The zero value requests nothing.
type QuestionCounts struct {
	FillInBlanks int `json:"fillInBlanks"`
	MCQ          int `json:"mcq"`
	Short2       int `json:"short2"`
	Short5       int `json:"short5"`
	Long10       int `json:"long10"`
	Long15       int `json:"long15"`
}

// Total returns the number of questions requested across all categories.
func (c QuestionCounts) Total() int {
	return c.FillInBlanks + c.MCQ + c.Short2 + c.Short5 + c.Long10 + c.Long15
}

// DefaultQuestionCounts is the mix used when the caller does not supply one.
func DefaultQuestionCounts() QuestionCounts {
	return QuestionCounts{FillInBlanks: 5, MCQ: 5, Short2: 5, Short5: 3, Long10: 2, Long15: 1}
}

// SummaryMode selects the register of a workplace summary.
type SummaryMode string

const (
	SummaryExec   SummaryMode = "EXEC"
	SummaryAction SummaryMode = "ACTION"
	SummaryELI5   SummaryMode = "ELI5"
)

// ReviewMode selects what the code assistant does with a snippet.
type ReviewMode string

const (
	ReviewAnalyze  ReviewMode = "REVIEW"
	ReviewRefactor ReviewMode = "REFACTOR"
)

// Tone selects the register of a message rewrite.
type Tone string

const (
	ToneDiplomatic Tone = "DIPLOMATIC"
	ToneAssertive  Tone = "ASSERTIVE"
	ToneLeadership Tone = "LEADERSHIP"
)

// BusinessFramework selects the analysis framework.
type BusinessFramework string

const (
	FrameworkSWOT   BusinessFramework = "SWOT"
	FrameworkPESTLE BusinessFramework = "PESTLE"
)

// ChatRole identifies the author of a chat turn. The values follow the
// wire format of the primary model provider.
type ChatRole string

const (
	ChatUser  ChatRole = "user"
	ChatModel ChatRole = "model"
)

// ChatMessage is one turn of a multi-turn conversation.
type ChatMessage struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}
