package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// OllamaBackend calls a local Ollama server's /api/generate endpoint in JSON
// format mode.
type OllamaBackend struct {
	baseURL string
	model   string
	http    *http.Client
}

func NewOllamaBackend(baseURL, model string) *OllamaBackend {
	return &OllamaBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		http:    &http.Client{},
	}
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

func (b *OllamaBackend) Name() string { return Ollama }

func (b *OllamaBackend) Generate(ctx context.Context, prompt, model string) (string, error) {
	if model == "" {
		model = b.model
	}

	jsonData, err := json.Marshal(ollamaRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
		Format: "json",
	})
	if err != nil {
		return "", &GenerationError{Provider: Ollama, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/api/generate", bytes.NewReader(jsonData))
	if err != nil {
		return "", &GenerationError{Provider: Ollama, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.http.Do(req)
	if err != nil {
		return "", &GenerationError{Provider: Ollama, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &GenerationError{Provider: Ollama, StatusCode: resp.StatusCode, Err: fmt.Errorf("ollama API error")}
	}

	var res ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", &GenerationError{Provider: Ollama, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return res.Response, nil
}
