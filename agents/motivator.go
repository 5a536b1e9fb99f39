package agents

import (
	"context"
	"time"

	"clementus360/focus-agents/config"
	"clementus360/focus-agents/llm"
	"clementus360/focus-agents/types"

	"github.com/sirupsen/logrus"
)

type Motivator struct {
	profiles ContextBuilder
	llm      llm.Completer
	now      func() time.Time
}

func NewMotivator(profiles ContextBuilder, completer llm.Completer, now func() time.Time) *Motivator {
	return &Motivator{profiles: profiles, llm: completer, now: now}
}

// Generate always yields a usable response. When the backend produces no
// text the static fallback message is substituted.
func (m *Motivator) Generate(ctx context.Context, req types.MotivationRequest) types.MotivationResponse {
	log := config.Logger.WithFields(logrus.Fields{"agent": "motivator", "user_id": req.UserID})
	now := m.now()

	userContext := m.profiles.BuildContextPrompt(ctx, req.UserID)
	text, err := m.llm.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: motivatorSystemPrompt(userContext, now)},
		{Role: llm.RoleUser, Content: motivatorUserPrompt(req)},
	})
	if err != nil {
		log.Warnf("Motivation generation failed, using fallback message: %v", err)
		return FallbackMotivation(now)
	}

	return SanitizeMotivation(llm.ParseStructured(text), now)
}
