package agents

import (
	"context"
	"time"

	"clementus360/focus-agents/types"

	"github.com/google/uuid"
)

// Service is the single entry point the HTTP layer and CLI use. It validates
// requests and dispatches to the individual agents.
type Service struct {
	motivator *Motivator
	planner   *Planner
	blocker   *Blocker
	observer  *Observer
	now       func() time.Time
	version   string
}

func NewService(d Deps) *Service {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}
	if d.Version == "" {
		d.Version = "1.0.0"
	}

	return &Service{
		motivator: NewMotivator(d.Profiles, d.Completer, d.Now),
		planner:   NewPlanner(d.Profiles, d.Completer),
		blocker:   NewBlocker(d.Profiles, d.Completer, d.Enforcer, d.NewID),
		observer:  NewObserver(d.Analyzer, d.Cache, d.Insights, d.Feedback, d.Completer, d.Now, d.NewID),
		now:       d.Now,
		version:   d.Version,
	}
}

func (s *Service) GetMotivation(ctx context.Context, req types.MotivationRequest) (types.MotivationResponse, error) {
	if err := ValidateMotivation(req); err != nil {
		return types.MotivationResponse{}, err
	}
	return s.motivator.Generate(ctx, req), nil
}

func (s *Service) GetPlan(ctx context.Context, req types.PlanRequest) (types.PlanResponse, error) {
	if err := ValidatePlan(req); err != nil {
		return types.PlanResponse{}, err
	}
	return s.planner.Generate(ctx, req)
}

// ActivateBlocker generates a blocking configuration for the request.
func (s *Service) ActivateBlocker(ctx context.Context, req types.BlockerRequest) (types.BlockerConfig, error) {
	req, err := NormalizeBlocker(req)
	if err != nil {
		return types.BlockerConfig{}, err
	}
	return s.blocker.Generate(ctx, req), nil
}

// ActivateBlocking hands a configuration to the enforcer.
func (s *Service) ActivateBlocking(ctx context.Context, cfg types.BlockerConfig) types.ActivationResult {
	return s.blocker.Activate(ctx, cfg)
}

func (s *Service) GetInsights(ctx context.Context, req types.InsightRequest, refresh bool) (types.Insight, error) {
	req, err := NormalizeInsight(req)
	if err != nil {
		return types.Insight{}, err
	}
	return s.observer.GenerateInsights(ctx, req, refresh)
}

func (s *Service) GetPatterns(ctx context.Context, userID string) (types.UserPatterns, error) {
	if err := requireUser(userID); err != nil {
		return types.UserPatterns{}, err
	}
	return s.observer.Patterns(ctx, userID), nil
}

func (s *Service) GetRecommendations(ctx context.Context, userID string) (types.RecommendationReport, error) {
	if err := requireUser(userID); err != nil {
		return types.RecommendationReport{}, err
	}
	return s.observer.Recommendations(ctx, userID), nil
}

func (s *Service) SubmitFeedback(ctx context.Context, req types.FeedbackRequest) (types.InsightFeedback, error) {
	if err := ValidateFeedback(req); err != nil {
		return types.InsightFeedback{}, err
	}
	return s.observer.SubmitFeedback(ctx, req)
}

func (s *Service) RecordSessionFeedback(ctx context.Context, req types.SessionFeedbackRequest) (types.SessionFeedback, error) {
	if err := ValidateSessionFeedback(req); err != nil {
		return types.SessionFeedback{}, err
	}
	return s.observer.RecordSessionFeedback(ctx, req)
}

func (s *Service) Health() types.HealthStatus {
	return types.HealthStatus{
		Status: "healthy",
		Services: map[string]string{
			"motivator": "operational",
			"planner":   "operational",
			"blocker":   "operational",
			"observer":  "operational",
		},
		Timestamp: s.now().UTC().Format(time.RFC3339),
		Version:   s.version,
	}
}
