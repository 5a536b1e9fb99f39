package agents

import (
	"context"
	"fmt"

	"clementus360/focus-agents/config"
	"clementus360/focus-agents/llm"
	"clementus360/focus-agents/types"

	"github.com/sirupsen/logrus"
)

// Enforcer applies a blocking configuration somewhere outside this process,
// e.g. a browser extension or an OS-level blocker.
type Enforcer interface {
	Apply(ctx context.Context, cfg types.BlockerConfig) error
}

// LogEnforcer only records the configuration it was handed.
type LogEnforcer struct{}

func (LogEnforcer) Apply(ctx context.Context, cfg types.BlockerConfig) error {
	config.Logger.WithFields(logrus.Fields{
		"session_id":     cfg.SessionID,
		"blocked_sites":  len(cfg.BlockedSites),
		"block_duration": cfg.BlockDuration,
		"level":          cfg.DistractionLevel,
	}).Info("Activating blocker")
	return nil
}

type Blocker struct {
	profiles ContextBuilder
	llm      llm.Completer
	enforcer Enforcer
	newID    func() string
}

func NewBlocker(profiles ContextBuilder, completer llm.Completer, enforcer Enforcer, newID func() string) *Blocker {
	if enforcer == nil {
		enforcer = LogEnforcer{}
	}
	return &Blocker{profiles: profiles, llm: completer, enforcer: enforcer, newID: newID}
}

// Generate builds a blocking configuration. Any generation failure degrades
// to the default configuration for the request.
func (b *Blocker) Generate(ctx context.Context, req types.BlockerRequest) types.BlockerConfig {
	log := config.Logger.WithFields(logrus.Fields{"agent": "blocker", "user_id": req.UserID})
	sessionID := "session_" + b.newID()

	userContext := b.profiles.BuildContextPrompt(ctx, req.UserID)
	text, err := b.llm.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: blockerSystemPrompt(userContext, sessionID)},
		{Role: llm.RoleUser, Content: blockerUserPrompt(req)},
	})
	if err != nil {
		log.Warnf("Blocker configuration error, using defaults: %v", err)
		return DefaultBlockerConfig(req, sessionID)
	}

	return SanitizeBlocker(llm.ParseStructured(text), req, sessionID)
}

// Activate hands cfg to the enforcer. Failures are reported in the result,
// never returned.
func (b *Blocker) Activate(ctx context.Context, cfg types.BlockerConfig) types.ActivationResult {
	log := config.Logger.WithField("session_id", cfg.SessionID)

	if err := b.apply(ctx, cfg); err != nil {
		log.Errorf("Blocker activation error: %v", err)
		return types.ActivationResult{
			Success: false,
			Message: "Failed to activate blocker. Please try again.",
		}
	}
	return types.ActivationResult{
		Success: true,
		Message: "Focus mode activated! Distractions are now blocked.",
	}
}

func (b *Blocker) apply(ctx context.Context, cfg types.BlockerConfig) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("enforcer panicked: %v", r)
		}
	}()

	if cfg.SessionID == "" {
		return fmt.Errorf("missing session id")
	}
	if cfg.BlockDuration <= 0 {
		return fmt.Errorf("block duration must be positive")
	}
	return b.enforcer.Apply(ctx, cfg)
}
