package ai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"personalearn/internal/ai/prompts"
	"personalearn/internal/model"
)

// OpenAIProvider executes requests against any OpenAI-compatible
// endpoint, including local ollama deployments. It has no search
// grounding; grounded requests degrade to plain generation and the
// gateway's retry chain takes care of the rest.
type OpenAIProvider struct {
	api       *openai.Client
	modelName string
}

// NewOpenAIProvider creates a provider for an OpenAI-compatible API.
// An empty baseURL targets the official endpoint.
func NewOpenAIProvider(baseURL, apiKey, modelName string) *OpenAIProvider {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIProvider{
		api:       openai.NewClientWithConfig(config),
		modelName: modelName,
	}
}

// Name implements Provider.
func (p *OpenAIProvider) Name() string { return "openai" }

// Generate implements Provider.
func (p *OpenAIProvider) Generate(ctx context.Context, req prompts.Request) (string, error) {
	var msgs []openai.ChatCompletionMessage
	if req.System != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.History {
		role := openai.ChatMessageRoleUser
		if m.Role == model.ChatModel {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Text})
	}
	msgs = append(msgs, userMessage(req))

	chatReq := openai.ChatCompletionRequest{
		Model:    p.modelName,
		Messages: msgs,
	}
	if req.Shape != nil {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.api.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	text := resp.Choices[0].Message.Content
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// userMessage builds the final user turn. Attachments ride along as
// data URL image parts, the only inline format the API accepts.
func userMessage(req prompts.Request) openai.ChatCompletionMessage {
	if req.Attachment == nil {
		return openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: req.Prompt,
		}
	}
	return openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser,
		MultiContent: []openai.ChatMessagePart{
			{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL: model.EncodeDataURL(req.Attachment.MIMEType, req.Attachment.Data),
				},
			},
			{
				Type: openai.ChatMessagePartTypeText,
				Text: req.Prompt,
			},
		},
	}
}
