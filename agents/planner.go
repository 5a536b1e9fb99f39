package agents

import (
	"context"
	"fmt"

	"clementus360/focus-agents/config"
	"clementus360/focus-agents/llm"
	"clementus360/focus-agents/types"

	"github.com/sirupsen/logrus"
)

type Planner struct {
	profiles ContextBuilder
	llm      llm.Completer
}

func NewPlanner(profiles ContextBuilder, completer llm.Completer) *Planner {
	return &Planner{profiles: profiles, llm: completer}
}

// Generate returns an error only when no text was generated.
func (p *Planner) Generate(ctx context.Context, req types.PlanRequest) (types.PlanResponse, error) {
	log := config.Logger.WithFields(logrus.Fields{"agent": "planner", "user_id": req.UserID})

	userContext := p.profiles.BuildContextPrompt(ctx, req.UserID)
	text, err := p.llm.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: plannerSystemPrompt(userContext)},
		{Role: llm.RoleUser, Content: plannerUserPrompt(req)},
	})
	if err != nil {
		log.Errorf("Plan generation error: %v", err)
		return types.PlanResponse{}, fmt.Errorf("failed to generate plan: %w", err)
	}

	plan := SanitizePlan(llm.ParseStructured(text))
	log.Infof("Plan generated with %d tasks", len(plan.Tasks))
	return plan, nil
}
