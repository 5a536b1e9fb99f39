// Package insights holds the deterministic half of the observer: pattern
// analysis, timeframe statistics, recommendations and the insight cache.
package insights

import (
	"fmt"
	"math"
	"sort"
	"time"

	"clementus360/focus-agents/config"
	"clementus360/focus-agents/types"
)

// InsufficientPatterns is returned for histories too thin to analyze.
func InsufficientPatterns(dataPoints int) types.UserPatterns {
	return types.UserPatterns{
		PeakHours:            []string{},
		AverageSessionLength: 0,
		ConsistencyScore:     0,
		FocusTrend:           types.TrendInsufficientData,
		InterruptionPatterns: []types.InterruptionPattern{},
		TotalDataPoints:      dataPoints,
	}
}

// AnalyzePatterns derives usage patterns from a session history. Order of the
// input does not matter; it is re-sorted newest first.
func AnalyzePatterns(sessions []types.WorkSession, loc *time.Location) types.UserPatterns {
	if len(sessions) < config.MinPatternSessions {
		return InsufficientPatterns(len(sessions))
	}

	sorted := make([]types.WorkSession, len(sessions))
	copy(sorted, sessions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.After(sorted[j].StartTime)
	})

	return types.UserPatterns{
		PeakHours:            peakHours(sorted, loc),
		AverageSessionLength: averageSessionLength(sorted),
		ConsistencyScore:     consistencyScore(sorted, loc),
		FocusTrend:           focusTrend(sorted),
		InterruptionPatterns: interruptionPatterns(sorted),
		TotalDataPoints:      len(sorted),
	}
}

type hourBucket struct {
	hour       int
	sessions   int
	focusTotal float64
}

func (b hourBucket) avgFocus() float64 {
	if b.sessions == 0 {
		return 0
	}
	return b.focusTotal / float64(b.sessions)
}

func peakHours(sessions []types.WorkSession, loc *time.Location) []string {
	buckets := make([]hourBucket, 24)
	for h := range buckets {
		buckets[h].hour = h
	}
	for _, s := range sessions {
		h := s.StartTime.In(loc).Hour()
		buckets[h].sessions++
		buckets[h].focusTotal += s.FocusScore
	}

	var eligible []hourBucket
	for _, b := range buckets {
		if b.sessions >= config.PeakHourMinSessions {
			eligible = append(eligible, b)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].avgFocus() > eligible[j].avgFocus()
	})

	peaks := []string{}
	for i := 0; i < len(eligible) && i < 3; i++ {
		peaks = append(peaks, fmt.Sprintf("%02d:00", eligible[i].hour))
	}
	return peaks
}

func averageSessionLength(sessions []types.WorkSession) float64 {
	if len(sessions) == 0 {
		return 0
	}
	var total float64
	for _, s := range sessions {
		total += s.Duration
	}
	return total / float64(len(sessions))
}

// consistencyScore is 1 - variance/mean of sessions per active day, floored
// at 0. Fewer than seven active days scores 0.
func consistencyScore(sessions []types.WorkSession, loc *time.Location) float64 {
	perDay := map[string]int{}
	for _, s := range sessions {
		perDay[s.StartTime.In(loc).Format("2006-01-02")]++
	}
	if len(perDay) < config.MinConsistencyDays {
		return 0
	}

	mean := float64(len(sessions)) / float64(len(perDay))
	if mean == 0 {
		return 0
	}
	var variance float64
	for _, n := range perDay {
		diff := float64(n) - mean
		variance += diff * diff
	}
	variance /= float64(len(perDay))

	return math.Max(0, 1-variance/mean)
}

// focusTrend compares the newer half of a newest-first history with the
// older half.
func focusTrend(sessions []types.WorkSession) string {
	if len(sessions) < config.MinTrendSessions {
		return types.TrendInsufficientData
	}

	half := len(sessions) / 2
	recentAvg := meanFocus(sessions[:half])
	olderAvg := meanFocus(sessions[half:])

	if olderAvg == 0 {
		if recentAvg > 0 {
			return types.TrendImproving
		}
		return types.TrendStable
	}

	change := (recentAvg - olderAvg) / olderAvg
	switch {
	case change > config.FocusTrendChangeRatio:
		return types.TrendImproving
	case change < -config.FocusTrendChangeRatio:
		return types.TrendDeclining
	default:
		return types.TrendStable
	}
}

func meanFocus(sessions []types.WorkSession) float64 {
	if len(sessions) == 0 {
		return 0
	}
	var total float64
	for _, s := range sessions {
		total += s.FocusScore
	}
	return total / float64(len(sessions))
}

func interruptionPatterns(sessions []types.WorkSession) []types.InterruptionPattern {
	patterns := []types.InterruptionPattern{}
	if len(sessions) == 0 {
		return patterns
	}

	total := 0
	for _, s := range sessions {
		total += s.Interruptions
	}
	if float64(total)/float64(len(sessions)) > config.HighInterruptionMean {
		patterns = append(patterns, types.InterruptionPattern{
			Type:      "general",
			Frequency: "high",
			Impact:    "significant",
		})
	}
	return patterns
}
