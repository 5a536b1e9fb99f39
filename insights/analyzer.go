package insights

import (
	"context"
	"time"

	"clementus360/focus-agents/config"
	"clementus360/focus-agents/types"

	"github.com/sirupsen/logrus"
)

type SessionReader interface {
	FindByUser(ctx context.Context, userID string, limit int) ([]types.WorkSession, error)
	CompletedBetween(ctx context.Context, userID string, start, end time.Time) ([]types.WorkSession, error)
}

type TaskReader interface {
	Tasks(ctx context.Context, userID string) ([]types.Task, error)
}

// Analyzer reads history from the store and runs the pure analyses over it.
// Read failures are logged and degrade to empty results.
type Analyzer struct {
	sessions SessionReader
	tasks    TaskReader
	loc      *time.Location
	now      func() time.Time
}

func NewAnalyzer(sessions SessionReader, tasks TaskReader, loc *time.Location, now func() time.Time) *Analyzer {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Analyzer{sessions: sessions, tasks: tasks, loc: loc, now: now}
}

// Patterns analyzes the user's last 100 sessions.
func (a *Analyzer) Patterns(ctx context.Context, userID string) types.UserPatterns {
	sessions, err := a.sessions.FindByUser(ctx, userID, config.PatternSessionLimit)
	if err != nil {
		config.Logger.WithField("user_id", userID).Warnf("Failed to load sessions for pattern analysis: %v", err)
		return InsufficientPatterns(0)
	}
	return AnalyzePatterns(sessions, a.loc)
}

func (a *Analyzer) SessionStats(ctx context.Context, userID, timeframe string) types.SessionStats {
	rng := SessionRange(timeframe, a.now(), a.loc)
	sessions, err := a.sessions.CompletedBetween(ctx, userID, rng.Start, rng.End)
	if err != nil {
		config.Logger.WithFields(logrus.Fields{
			"user_id":   userID,
			"timeframe": timeframe,
		}).Warnf("Failed to load session stats: %v", err)
		sessions = nil
	}
	return ComputeSessionStats(sessions, timeframe, rng, a.loc)
}

func (a *Analyzer) TaskStats(ctx context.Context, userID, timeframe string) types.TaskStats {
	tasks, err := a.tasks.Tasks(ctx, userID)
	if err != nil {
		config.Logger.WithFields(logrus.Fields{
			"user_id":   userID,
			"timeframe": timeframe,
		}).Warnf("Failed to load task stats: %v", err)
		return types.TaskStats{}
	}
	return ComputeTaskStats(tasks, TaskWindowStart(timeframe, a.now(), a.loc))
}

// Recommendations builds the deterministic recommendation report.
func (a *Analyzer) Recommendations(ctx context.Context, userID string) types.RecommendationReport {
	return Report(a.Patterns(ctx, userID), a.now())
}
