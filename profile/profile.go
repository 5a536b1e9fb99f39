// Package profile reduces a user's raw history into the behavioral profile
// that conditions every agent prompt.
package profile

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"clementus360/focus-agents/config"
	"clementus360/focus-agents/types"

	"github.com/sirupsen/logrus"
)

type SessionReader interface {
	FindByUser(ctx context.Context, userID string, limit int) ([]types.WorkSession, error)
}

type HistoryReader interface {
	Goals(ctx context.Context, userID string) ([]types.Goal, error)
	Feedback(ctx context.Context, userID string) ([]types.SessionFeedback, error)
}

// Builder computes behavioral profiles. It never returns an error: unreadable
// or empty history yields types.DefaultProfile().
type Builder struct {
	sessions SessionReader
	history  HistoryReader
	loc      *time.Location
}

func NewBuilder(sessions SessionReader, history HistoryReader, loc *time.Location) *Builder {
	if loc == nil {
		loc = time.Local
	}
	return &Builder{sessions: sessions, history: history, loc: loc}
}

func (b *Builder) BuildProfile(ctx context.Context, userID string) types.BehavioralProfile {
	log := config.Logger.WithField("user_id", userID)

	sessions, err := b.sessions.FindByUser(ctx, userID, 0)
	if err != nil {
		log.Warnf("Error getting user sessions, using default profile: %v", err)
		return types.DefaultProfile()
	}
	goals, err := b.history.Goals(ctx, userID)
	if err != nil {
		log.Warnf("Error getting user goals, using default profile: %v", err)
		return types.DefaultProfile()
	}
	feedback, err := b.history.Feedback(ctx, userID)
	if err != nil {
		log.Warnf("Error getting user feedback, using default profile: %v", err)
		return types.DefaultProfile()
	}

	log.WithFields(logrus.Fields{
		"sessions": len(sessions),
		"goals":    len(goals),
		"feedback": len(feedback),
	}).Debug("Building behavioral profile")

	if len(sessions) == 0 {
		return types.DefaultProfile()
	}
	return Compute(sessions, feedback, b.loc)
}

// BuildContextPrompt renders the user's profile for inclusion in a prompt.
func (b *Builder) BuildContextPrompt(ctx context.Context, userID string) string {
	return RenderContext(b.BuildProfile(ctx, userID))
}

// Compute derives a profile from a non-empty session history.
func Compute(sessions []types.WorkSession, feedback []types.SessionFeedback, loc *time.Location) types.BehavioralProfile {
	completed := 0
	var durationSum, focusSum float64
	durationCount := 0
	var productiveHours []int

	for _, s := range sessions {
		if s.Status == "completed" {
			completed++
		}
		if s.Duration > 0 {
			durationSum += s.Duration
			durationCount++
		}
		focusSum += s.FocusScore
		if s.FocusScore > config.ProductiveFocusScore {
			productiveHours = append(productiveHours, s.StartTime.In(loc).Hour())
		}
	}

	p := types.DefaultProfile()
	p.CompletionRate = float64(completed) / float64(len(sessions))
	if durationCount > 0 {
		p.AverageTaskDurationSeconds = int(math.Round(durationSum / float64(durationCount)))
	}

	var styles, distractions []string
	complexityWins := map[string]int{}
	for _, f := range feedback {
		if f.MotivationEffectiveness != 0 && f.MotivationStyle != "" {
			styles = append(styles, f.MotivationStyle)
		}
		distractions = append(distractions, f.Distractions...)
		if f.Completed && isComplexity(f.TaskComplexity) {
			complexityWins[f.TaskComplexity]++
		}
	}

	if top := topFrequent(styles, 1); len(top) > 0 {
		p.PreferredMotivationStyle = top[0]
	}
	p.CommonDistractions = topFrequent(distractions, config.ProfileTopN)

	slots := []string{}
	for _, h := range topFrequent(productiveHours, config.ProfileTopN) {
		slots = append(slots, fmt.Sprintf("%02d:00-%02d:00", h, (h+1)%24))
	}
	p.ProductiveTimeSlots = slots

	p.TaskComplexityPreference = bestComplexity(complexityWins)
	p.HistoricalPerformance = types.HistoricalPerformance{
		TotalTasks:        len(sessions),
		CompletedTasks:    completed,
		AverageFocusScore: focusSum / float64(len(sessions)),
		StreakRecordDays:  maxStreak(sessions, loc),
	}
	return p
}

// RenderContext formats a profile as the fixed "User Context" block.
func RenderContext(p types.BehavioralProfile) string {
	distractions := "None identified"
	if len(p.CommonDistractions) > 0 {
		distractions = strings.Join(p.CommonDistractions, ", ")
	}

	lines := []string{
		"User Context:",
		fmt.Sprintf("- Completion Rate: %.1f%%", p.CompletionRate*100),
		fmt.Sprintf("- Average Task Duration: %d minutes", int(math.Round(float64(p.AverageTaskDurationSeconds)/60))),
		fmt.Sprintf("- Preferred Motivation Style: %s", p.PreferredMotivationStyle),
		fmt.Sprintf("- Common Distractions: %s", distractions),
		fmt.Sprintf("- Productive Time Slots: %s", strings.Join(p.ProductiveTimeSlots, ", ")),
		fmt.Sprintf("- Task Complexity Preference: %s", p.TaskComplexityPreference),
		fmt.Sprintf("- Historical Performance: %d/%d tasks completed", p.HistoricalPerformance.CompletedTasks, p.HistoricalPerformance.TotalTasks),
		fmt.Sprintf("- Average Focus Score: %.1f/10", p.HistoricalPerformance.AverageFocusScore),
		fmt.Sprintf("- Best Streak: %d days", p.HistoricalPerformance.StreakRecordDays),
	}
	return strings.Join(lines, "\n")
}

// topFrequent returns up to n items ordered by descending frequency. Ties keep
// first-seen order.
func topFrequent[T comparable](items []T, n int) []T {
	counts := map[T]int{}
	var order []T
	for _, item := range items {
		if counts[item] == 0 {
			order = append(order, item)
		}
		counts[item]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}
	if order == nil {
		return []T{}
	}
	return order
}

func isComplexity(v string) bool {
	switch v {
	case types.ComplexitySimple, types.ComplexityModerate, types.ComplexityComplex:
		return true
	}
	return false
}

func bestComplexity(wins map[string]int) string {
	best := types.ComplexityModerate
	bestCount := 0
	for _, c := range []string{types.ComplexitySimple, types.ComplexityModerate, types.ComplexityComplex} {
		if wins[c] > bestCount {
			best, bestCount = c, wins[c]
		}
	}
	return best
}

// maxStreak is the longest run of consecutive calendar days with at least
// one completed session.
func maxStreak(sessions []types.WorkSession, loc *time.Location) int {
	days := map[time.Time]bool{}
	for _, s := range sessions {
		if s.Status != "completed" {
			continue
		}
		at := s.CreatedAt
		if at.IsZero() {
			at = s.StartTime
		}
		local := at.In(loc)
		days[time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)] = true
	}
	if len(days) == 0 {
		return 0
	}

	sorted := make([]time.Time, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	best, current := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Sub(sorted[i-1]) == 24*time.Hour {
			current++
		} else {
			current = 1
		}
		if current > best {
			best = current
		}
	}
	return best
}
