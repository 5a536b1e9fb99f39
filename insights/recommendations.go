package insights

import (
	"fmt"
	"strings"
	"time"

	"clementus360/focus-agents/types"
)

// Session length thresholds in seconds.
const (
	shortSessionSeconds = 25 * 60
	longSessionSeconds  = 90 * 60
	routineConsistency  = 0.6
)

// Recommend turns patterns into a prioritized list of suggestions. No
// generation is involved.
func Recommend(p types.UserPatterns) []types.Recommendation {
	recs := []types.Recommendation{}

	if len(p.PeakHours) > 0 {
		recs = append(recs, types.Recommendation{
			Type:        "timing",
			Title:       "Optimize Your Schedule",
			Description: fmt.Sprintf("You're most productive at %s. Try scheduling important tasks during these hours.", strings.Join(p.PeakHours, ", ")),
			Priority:    "high",
		})
	}

	switch {
	case p.AverageSessionLength < shortSessionSeconds:
		recs = append(recs, types.Recommendation{
			Type:        "duration",
			Title:       "Extend Focus Sessions",
			Description: "Try gradually increasing your focus sessions to 25-45 minutes for better deep work.",
			Priority:    "medium",
		})
	case p.AverageSessionLength > longSessionSeconds:
		recs = append(recs, types.Recommendation{
			Type:        "duration",
			Title:       "Take More Breaks",
			Description: "Consider shorter sessions with regular breaks to maintain high focus quality.",
			Priority:    "medium",
		})
	}

	if p.ConsistencyScore < routineConsistency {
		recs = append(recs, types.Recommendation{
			Type:        "consistency",
			Title:       "Build a Routine",
			Description: "Try to work at similar times each day to build a strong productivity habit.",
			Priority:    "high",
		})
	}

	if len(p.InterruptionPatterns) > 0 {
		top := p.InterruptionPatterns[0]
		recs = append(recs, types.Recommendation{
			Type:        "focus",
			Title:       "Reduce Interruptions",
			Description: fmt.Sprintf("Frequent %s interruptions are breaking your focus. Consider using website blockers or phone settings.", top.Type),
			Priority:    "high",
		})
	}

	return recs
}

// Report wraps recommendations with the patterns they came from.
func Report(p types.UserPatterns, now time.Time) types.RecommendationReport {
	return types.RecommendationReport{
		Recommendations: Recommend(p),
		BasedOn: types.RecommendationBasis{
			Patterns:   p,
			DataPoints: p.TotalDataPoints,
		},
		GeneratedAt: now,
	}
}
