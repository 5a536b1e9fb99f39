package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clementus360/focus-agents/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMessagesAsPrompt(t *testing.T) {
	prompt := FormatMessagesAsPrompt([]Message{
		{Role: RoleSystem, Content: "be kind"},
		{Role: RoleUser, Content: "help"},
		{Role: RoleAssistant, Content: "ok"},
		{Role: "tool", Content: "raw"},
	})

	want := "System: be kind\n\nUser: help\n\nAssistant: ok\n\nraw\n\n" + jsonOnlyInstruction
	assert.Equal(t, want, prompt)
}

func TestClient_CompleteWithOllama(t *testing.T) {
	var got ollamaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{"response": `{"message":"go"}`})
	}))
	defer srv.Close()

	client := NewClient(NewOllamaBackend(srv.URL+"/", "command-r7b"), time.Second)
	text, err := client.Complete(context.Background(), []Message{
		{Role: RoleSystem, Content: "sys"},
		{Role: RoleUser, Content: "usr"},
	})

	require.NoError(t, err)
	assert.Equal(t, `{"message":"go"}`, text)
	assert.Equal(t, "command-r7b", got.Model)
	assert.Equal(t, "json", got.Format)
	assert.False(t, got.Stream)
	assert.Equal(t, "System: sys\n\nUser: usr\n\n"+jsonOnlyInstruction, got.Prompt)
}

func TestClient_ModelHint(t *testing.T) {
	var got ollamaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(map[string]string{"response": "{}"})
	}))
	defer srv.Close()

	client := NewClient(NewOllamaBackend(srv.URL, "default"), time.Second).WithModel("llama3")
	_, err := client.Complete(context.Background(), []Message{{Role: RoleUser, Content: "x"}})
	require.NoError(t, err)
	assert.Equal(t, "llama3", got.Model)
}

func TestClient_NonSuccessStatusFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(NewOllamaBackend(srv.URL, "m"), time.Second)
	_, err := client.Complete(context.Background(), []Message{{Role: RoleUser, Content: "x"}})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGenerationFailed))
	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, http.StatusServiceUnavailable, genErr.StatusCode)
	assert.Equal(t, Ollama, genErr.Provider)
}

func TestClient_TimeoutFails(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := NewClient(NewOllamaBackend(srv.URL, "m"), 50*time.Millisecond)
	start := time.Now()
	_, err := client.Complete(context.Background(), []Message{{Role: RoleUser, Content: "x"}})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGenerationFailed))
	assert.Less(t, time.Since(start), 2*time.Second)
}

type plainErrBackend struct{}

func (plainErrBackend) Name() string { return "plain" }

func (plainErrBackend) Generate(ctx context.Context, prompt, model string) (string, error) {
	return "", errors.New("boom")
}

func TestClient_WrapsForeignErrors(t *testing.T) {
	_, err := NewClient(plainErrBackend{}, 0).Complete(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGenerationFailed))
	assert.Contains(t, err.Error(), "boom")
}

func TestGeminiBackend_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("key"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gen := body["generationConfig"].(map[string]interface{})
		assert.Equal(t, "application/json", gen["responseMimeType"])

		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"ok\":true}"}]}}]}`))
	}))
	defer srv.Close()

	backend := NewGeminiBackend("k", "gemini-2.0-flash")
	backend.baseURL = srv.URL

	text, err := backend.Generate(context.Background(), "prompt", "")
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, text)
}

func TestGeminiBackend_EmptyCandidatesFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	backend := NewGeminiBackend("k", "m")
	backend.baseURL = srv.URL

	_, err := backend.Generate(context.Background(), "prompt", "")
	assert.True(t, errors.Is(err, ErrGenerationFailed))
}

func TestOpenAIBackend_Generate(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","object":"chat.completion","model":"gpt-4o-mini","choices":[{"index":0,"message":{"role":"assistant","content":"{\"message\":\"hi\"}"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	backend := NewOpenAIBackend("sk-test", srv.URL+"/v1", "gpt-4o-mini")
	text, err := backend.Generate(context.Background(), "prompt", "")

	require.NoError(t, err)
	assert.Equal(t, `{"message":"hi"}`, text)
	assert.Equal(t, "gpt-4o-mini", got["model"])
	format := got["response_format"].(map[string]interface{})
	assert.Equal(t, "json_object", format["type"])
}

func TestOpenAIBackend_APIErrorCarriesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"slow down","type":"rate_limit"}}`))
	}))
	defer srv.Close()

	_, err := NewOpenAIBackend("sk-test", srv.URL+"/v1", "m").Generate(context.Background(), "p", "")
	require.Error(t, err)
	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, http.StatusTooManyRequests, genErr.StatusCode)
}

func TestNewBackend(t *testing.T) {
	b, err := NewBackend(config.Settings{LLMProvider: Ollama, OllamaURL: "http://x", OllamaModel: "m"})
	require.NoError(t, err)
	assert.Equal(t, Ollama, b.Name())

	_, err = NewBackend(config.Settings{LLMProvider: OpenAI})
	assert.Error(t, err)

	b, err = NewBackend(config.Settings{LLMProvider: Gemini, GeminiKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, Gemini, b.Name())

	_, err = NewBackend(config.Settings{LLMProvider: "claude"})
	assert.Error(t, err)
}
