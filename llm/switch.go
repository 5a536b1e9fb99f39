package llm

import (
	"context"
	"errors"
	"fmt"

	"clementus360/focus-agents/config"
)

// Provider names accepted in LLM_PROVIDER.
const (
	Ollama = "ollama"
	OpenAI = "openai"
	Gemini = "gemini"
)

// ErrGenerationFailed is the only error the completion path surfaces: the
// backend produced no text at all.
var ErrGenerationFailed = errors.New("generation failed")

// GenerationError carries backend details for a failed generation.
type GenerationError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *GenerationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s generation failed with status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s generation failed: %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func (e *GenerationError) Is(target error) bool { return target == ErrGenerationFailed }

// Backend turns a prompt into raw generated text. An empty model uses the
// backend's configured default.
type Backend interface {
	Name() string
	Generate(ctx context.Context, prompt, model string) (string, error)
}

// NewBackend builds the backend selected by settings.LLMProvider.
func NewBackend(settings config.Settings) (Backend, error) {
	switch settings.LLMProvider {
	case Ollama, "":
		return NewOllamaBackend(settings.OllamaURL, settings.OllamaModel), nil
	case OpenAI:
		if settings.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		return NewOpenAIBackend(settings.OpenAIKey, settings.OpenAIBaseURL, settings.OpenAIModel), nil
	case Gemini:
		if settings.GeminiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY not set")
		}
		return NewGeminiBackend(settings.GeminiKey, settings.GeminiModel), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s (supported: %s, %s, %s)", settings.LLMProvider, Ollama, OpenAI, Gemini)
	}
}
