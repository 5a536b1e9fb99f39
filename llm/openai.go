package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAIBackend talks to any OpenAI-compatible chat completions API and asks
// for a JSON object response.
type OpenAIBackend struct {
	client *openai.Client
	model  string
}

func NewOpenAIBackend(apiKey, baseURL, model string) *OpenAIBackend {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIBackend{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (b *OpenAIBackend) Name() string { return OpenAI }

func (b *OpenAIBackend) Generate(ctx context.Context, prompt, model string) (string, error) {
	if model == "" {
		model = b.model
	}

	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
		TopP:        0.8,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		genErr := &GenerationError{Provider: OpenAI, Err: err}
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			genErr.StatusCode = apiErr.HTTPStatusCode
		}
		return "", genErr
	}

	if len(resp.Choices) == 0 {
		return "", &GenerationError{Provider: OpenAI, Err: fmt.Errorf("no choices returned from OpenAI")}
	}
	return resp.Choices[0].Message.Content, nil
}
