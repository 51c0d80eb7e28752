// Package prompts builds the provider-agnostic generation requests for
// every AI operation. Builders are pure: same inputs, same request.
package prompts

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"personalearn/internal/model"
)

// Attachment is a binary document sent alongside a prompt, typically an
// uploaded PDF or image.
type Attachment struct {
	MIMEType string
	Data     []byte
}

// Request describes one model invocation without committing to a
// provider. Providers map it onto their own wire format.
type Request struct {
	// System is an optional system instruction.
	System string
	// Prompt is the final user turn.
	Prompt string
	// History holds prior turns for multi-turn operations.
	History []model.ChatMessage
	// Attachment is an optional inline document, placed before the
	// prompt text.
	Attachment *Attachment
	// Shape, when set, requests structured JSON output. The shape is
	// advisory: responses are still parsed tolerantly.
	Shape *Schema
	// Search requests grounding in web search results. Providers that
	// cannot ground degrade to plain generation.
	Search bool
}

// SchemaType enumerates the JSON types a Schema node can describe.
type SchemaType string

const (
	TypeObject  SchemaType = "object"
	TypeArray   SchemaType = "array"
	TypeString  SchemaType = "string"
	TypeNumber  SchemaType = "number"
	TypeBoolean SchemaType = "boolean"
)

// Schema is a provider-neutral structured-output descriptor.
type Schema struct {
	Type        SchemaType
	Description string
	Properties  map[string]*Schema
	Items       *Schema
	Required    []string
}

var pseudoTagRE = regexp.MustCompile(`(?i)</?\s*(?:system-instructions|user-content)\b[^>]*>`)

const maxUserRunes = 10000

// sanitize strips prompt-injection pseudo-tags from user-provided text
// and truncates it to a bounded length.
func sanitize(text string) string {
	text = pseudoTagRE.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) > maxUserRunes {
		runes := []rune(text)
		text = string(runes[:maxUserRunes]) + "\n\n[Content truncated due to length]"
	}
	return text
}
