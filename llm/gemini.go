package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiBackend calls the Gemini generateContent REST endpoint with a JSON
// response mime type.
type GeminiBackend struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func NewGeminiBackend(apiKey, model string) *GeminiBackend {
	return &GeminiBackend{
		apiKey:  apiKey,
		model:   model,
		baseURL: geminiBaseURL,
		http:    &http.Client{},
	}
}

func (b *GeminiBackend) Name() string { return Gemini }

func (b *GeminiBackend) Generate(ctx context.Context, prompt, model string) (string, error) {
	if model == "" {
		model = b.model
	}

	body := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":      0.3,
			"topP":             0.8,
			"responseMimeType": "application/json",
		},
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", &GenerationError{Provider: Gemini, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s", b.baseURL, model, url.QueryEscape(b.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", &GenerationError{Provider: Gemini, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.http.Do(req)
	if err != nil {
		return "", &GenerationError{Provider: Gemini, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &GenerationError{Provider: Gemini, StatusCode: resp.StatusCode, Err: fmt.Errorf("gemini API error")}
	}

	var res map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", &GenerationError{Provider: Gemini, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	text, err := extractTextFromResponse(res)
	if err != nil {
		return "", &GenerationError{Provider: Gemini, Err: err}
	}
	return text, nil
}

// Extract text from Gemini API response with proper error handling
func extractTextFromResponse(res map[string]interface{}) (string, error) {
	candidates, ok := res["candidates"].([]interface{})
	if !ok || len(candidates) == 0 {
		return "", fmt.Errorf("no candidates returned from Gemini")
	}

	candidate, ok := candidates[0].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("invalid candidate format")
	}

	content, ok := candidate["content"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("no content in candidate")
	}

	parts, ok := content["parts"].([]interface{})
	if !ok || len(parts) == 0 {
		return "", fmt.Errorf("no parts in content")
	}

	part, ok := parts[0].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("invalid part format")
	}

	text, ok := part["text"].(string)
	if !ok {
		return "", fmt.Errorf("no text in part")
	}

	return text, nil
}
