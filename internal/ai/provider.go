package ai

import (
	"context"

	"personalearn/internal/ai/prompts"
)

// Provider executes one generation request and returns the raw
// response text. Implementations map the provider-agnostic request
// onto their own wire format.
type Provider interface {
	Generate(ctx context.Context, req prompts.Request) (string, error)
	Name() string
}
