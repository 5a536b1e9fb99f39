package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"clementus360/focus-agents/store"
	"clementus360/focus-agents/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T) (*store.Sessions, *store.History) {
	t.Helper()
	db := store.NewMemoryStore()
	return store.NewSessions(db), store.NewHistory(db)
}

func at(day, hour int) time.Time {
	return time.Date(2026, 3, day, hour, 0, 0, 0, time.UTC)
}

func TestBuildProfile_EmptyHistoryUsesDefaults(t *testing.T) {
	sessions, history := seed(t)
	p := NewBuilder(sessions, history, time.UTC).BuildProfile(context.Background(), "nobody")

	assert.Equal(t, types.DefaultProfile(), p)
	assert.Equal(t, 0.7, p.CompletionRate)
	assert.Equal(t, "encouraging", p.PreferredMotivationStyle)
}

type failingSessions struct{}

func (failingSessions) FindByUser(ctx context.Context, userID string, limit int) ([]types.WorkSession, error) {
	return nil, errors.New("store down")
}

func TestBuildProfile_ReadFailureUsesDefaults(t *testing.T) {
	_, history := seed(t)
	p := NewBuilder(failingSessions{}, history, time.UTC).BuildProfile(context.Background(), "u1")
	assert.Equal(t, types.DefaultProfile(), p)
}

func TestBuildProfile_ComputesFromHistory(t *testing.T) {
	ctx := context.Background()
	sessions, history := seed(t)

	fixtures := []types.WorkSession{
		{Status: "completed", StartTime: at(2, 9), Duration: 1200, FocusScore: 9},
		{Status: "completed", StartTime: at(3, 9), Duration: 2400, FocusScore: 8},
		{Status: "completed", StartTime: at(4, 14), Duration: 1800, FocusScore: 8},
		{Status: "paused", StartTime: at(6, 20), FocusScore: 3},
	}
	for _, s := range fixtures {
		s.UserID = "u1"
		s.CreatedAt = s.StartTime
		_, err := sessions.Create(ctx, s)
		require.NoError(t, err)
	}

	feedback := []types.SessionFeedback{
		{Completed: true, MotivationStyle: "direct", MotivationEffectiveness: 4, Distractions: []string{"phone", "email"}, TaskComplexity: "complex"},
		{Completed: true, MotivationStyle: "direct", MotivationEffectiveness: 5, Distractions: []string{"phone"}, TaskComplexity: "complex"},
		{Completed: false, MotivationStyle: "gentle", Distractions: []string{"slack", "news"}, TaskComplexity: "simple"},
	}
	for _, f := range feedback {
		f.UserID = "u1"
		_, err := history.SaveFeedback(ctx, f)
		require.NoError(t, err)
	}

	p := NewBuilder(sessions, history, time.UTC).BuildProfile(ctx, "u1")

	assert.InDelta(t, 0.75, p.CompletionRate, 1e-9)
	assert.Equal(t, 1800, p.AverageTaskDurationSeconds)
	assert.Equal(t, "direct", p.PreferredMotivationStyle)
	assert.Equal(t, []string{"phone", "email", "slack"}, p.CommonDistractions)
	assert.Equal(t, []string{"09:00-10:00", "14:00-15:00"}, p.ProductiveTimeSlots)
	assert.Equal(t, types.ComplexityComplex, p.TaskComplexityPreference)
	assert.Equal(t, 4, p.HistoricalPerformance.TotalTasks)
	assert.Equal(t, 3, p.HistoricalPerformance.CompletedTasks)
	assert.InDelta(t, 7.0, p.HistoricalPerformance.AverageFocusScore, 1e-9)
	assert.Equal(t, 3, p.HistoricalPerformance.StreakRecordDays)
}

func TestMaxStreak(t *testing.T) {
	sessions := []types.WorkSession{
		{Status: "completed", StartTime: at(1, 9)},
		{Status: "completed", StartTime: at(1, 18)},
		{Status: "completed", StartTime: at(2, 9)},
		{Status: "completed", StartTime: at(5, 9)},
		{Status: "completed", StartTime: at(6, 9)},
		{Status: "completed", StartTime: at(7, 9)},
		{Status: "completed", StartTime: at(8, 9)},
		{Status: "active", StartTime: at(9, 9)},
	}
	assert.Equal(t, 4, maxStreak(sessions, time.UTC))
	assert.Equal(t, 0, maxStreak(nil, time.UTC))
}

func TestRenderContext(t *testing.T) {
	want := "User Context:\n" +
		"- Completion Rate: 70.0%\n" +
		"- Average Task Duration: 30 minutes\n" +
		"- Preferred Motivation Style: encouraging\n" +
		"- Common Distractions: None identified\n" +
		"- Productive Time Slots: 09:00-10:00, 14:00-15:00\n" +
		"- Task Complexity Preference: moderate\n" +
		"- Historical Performance: 0/0 tasks completed\n" +
		"- Average Focus Score: 0.0/10\n" +
		"- Best Streak: 0 days"
	assert.Equal(t, want, RenderContext(types.DefaultProfile()))
}

func TestTopFrequent(t *testing.T) {
	assert.Equal(t, []string{"b", "a"}, topFrequent([]string{"a", "b", "b", "c", "a", "b"}, 2))
	assert.Equal(t, []int{}, topFrequent([]int(nil), 3))
}
