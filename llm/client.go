package llm

import (
	"context"
	"errors"
	"time"

	"clementus360/focus-agents/config"

	"github.com/sirupsen/logrus"
)

// Completer is what the agents depend on.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Client is the completion client: it renders messages into one prompt and
// sends it to the backend under a bounded timeout.
type Client struct {
	backend Backend
	model   string
	timeout time.Duration
}

func NewClient(backend Backend, timeout time.Duration) *Client {
	return &Client{backend: backend, timeout: timeout}
}

// WithModel returns a copy of the client that passes model as the backend
// model hint.
func (c *Client) WithModel(model string) *Client {
	clone := *c
	clone.model = model
	return &clone
}

// Complete returns the raw generated text. Every failure is reported as an
// error matching ErrGenerationFailed.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	prompt := FormatMessagesAsPrompt(messages)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	log := config.Logger.WithFields(logrus.Fields{
		"provider":      c.backend.Name(),
		"prompt_tokens": EstimateTokens(prompt),
	})

	start := time.Now()
	text, err := c.backend.Generate(ctx, prompt, c.model)
	if err != nil {
		log.WithField("latency", time.Since(start).String()).Errorf("Completion failed: %v", err)
		if !errors.Is(err, ErrGenerationFailed) {
			err = &GenerationError{Provider: c.backend.Name(), Err: err}
		}
		return "", err
	}

	log.WithField("latency", time.Since(start).String()).Info("Completion succeeded")
	log.Debugf("Raw completion: %s", text)
	return text, nil
}
