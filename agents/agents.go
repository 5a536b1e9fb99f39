// Package agents implements the four coaching agents on top of the behavioral
// profile, the completion client and the response normalizer.
package agents

import (
	"context"
	"errors"
	"time"

	"clementus360/focus-agents/llm"
	"clementus360/focus-agents/types"
)

// ErrInvalidRequest marks request validation failures.
var ErrInvalidRequest = errors.New("invalid request")

// ContextBuilder renders a user's behavioral profile for a prompt. It must
// not fail; missing history degrades to a default profile.
type ContextBuilder interface {
	BuildContextPrompt(ctx context.Context, userID string) string
}

// InsightStore persists generated insights.
type InsightStore interface {
	Save(ctx context.Context, insight types.Insight) error
	Latest(ctx context.Context, userID, timeframe string) (*types.Insight, error)
}

// FeedbackStore persists user feedback.
type FeedbackStore interface {
	SaveFeedback(ctx context.Context, fb types.SessionFeedback) (types.SessionFeedback, error)
	SaveInsightFeedback(ctx context.Context, fb types.InsightFeedback) (types.InsightFeedback, error)
}

// Analyzer is the deterministic statistics side of the observer.
type Analyzer interface {
	Patterns(ctx context.Context, userID string) types.UserPatterns
	SessionStats(ctx context.Context, userID, timeframe string) types.SessionStats
	TaskStats(ctx context.Context, userID, timeframe string) types.TaskStats
	Recommendations(ctx context.Context, userID string) types.RecommendationReport
}

// InsightCache is the process-wide insight memo.
type InsightCache interface {
	Get(userID, timeframe string) (types.Insight, bool)
	Put(insight types.Insight)
	IsValid(createdAt time.Time, timeframe string) bool
}

// Deps wires a Service.
type Deps struct {
	Profiles  ContextBuilder
	Completer llm.Completer
	Analyzer  Analyzer
	Cache     InsightCache
	Insights  InsightStore
	Feedback  FeedbackStore
	Enforcer  Enforcer
	Now       func() time.Time
	NewID     func() string
	Version   string
}
