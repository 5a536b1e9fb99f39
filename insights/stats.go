package insights

import (
	"math"
	"sort"
	"time"

	"clementus360/focus-agents/config"
	"clementus360/focus-agents/types"
)

// interruptionCostSeconds is the focus time assumed lost per interruption.
const interruptionCostSeconds = 300

// SessionRange is the calendar window session statistics cover: today, the
// Sunday-start week, or the calendar month.
func SessionRange(timeframe string, now time.Time, loc *time.Location) types.DateRange {
	now = now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	var start, end time.Time
	switch timeframe {
	case config.TimeframeWeek:
		start = today.AddDate(0, 0, -int(today.Weekday()))
		end = start.AddDate(0, 0, 7)
	case config.TimeframeMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 1, 0)
	default:
		start = today
		end = today.AddDate(0, 0, 1)
	}
	return types.DateRange{Start: start, End: end.Add(-time.Millisecond)}
}

// TaskWindowStart is the earliest task creation time counted for a
// timeframe: today, the last seven days, or the calendar month.
func TaskWindowStart(timeframe string, now time.Time, loc *time.Location) time.Time {
	now = now.In(loc)
	switch timeframe {
	case config.TimeframeDay:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	case config.TimeframeMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	default:
		return now.Add(-7 * 24 * time.Hour)
	}
}

// ComputeSessionStats summarizes completed sessions inside a window.
func ComputeSessionStats(sessions []types.WorkSession, timeframe string, rng types.DateRange, loc *time.Location) types.SessionStats {
	stats := types.SessionStats{
		Summary:   types.SessionSummary{FocusEfficiency: 100},
		Daily:     []types.DailyBreakdown{},
		Hourly:    []types.HourlyBreakdown{},
		Timeframe: timeframe,
		DateRange: rng,
	}
	if len(sessions) == 0 {
		return stats
	}

	var totalDuration, totalFocus float64
	totalInterruptions := 0
	daily := map[string]*types.DailyBreakdown{}
	dailyFocus := map[string]float64{}
	var hourly [24]types.HourlyBreakdown
	var hourlyFocus [24]float64

	for _, s := range sessions {
		totalDuration += s.Duration
		totalFocus += s.FocusScore
		totalInterruptions += s.Interruptions

		local := s.StartTime.In(loc)
		date := local.Format("2006-01-02")
		d, ok := daily[date]
		if !ok {
			d = &types.DailyBreakdown{Date: date}
			daily[date] = d
		}
		d.Sessions++
		d.Duration += s.Duration
		d.Interruptions += s.Interruptions
		dailyFocus[date] += s.FocusScore

		h := local.Hour()
		hourly[h].Hour = h
		hourly[h].Sessions++
		hourly[h].Duration += s.Duration
		hourlyFocus[h] += s.FocusScore
	}

	n := float64(len(sessions))
	stats.Summary = types.SessionSummary{
		TotalSessions:      len(sessions),
		TotalDuration:      totalDuration,
		AvgFocusScore:      round1(totalFocus / n),
		AvgSessionLength:   math.Round(totalDuration / n),
		TotalInterruptions: totalInterruptions,
		FocusEfficiency:    focusEfficiency(totalDuration, totalInterruptions),
	}

	for date, d := range daily {
		d.AvgFocusScore = round1(dailyFocus[date] / float64(d.Sessions))
		stats.Daily = append(stats.Daily, *d)
	}
	sort.Slice(stats.Daily, func(i, j int) bool { return stats.Daily[i].Date < stats.Daily[j].Date })

	for h := range hourly {
		if hourly[h].Sessions == 0 {
			continue
		}
		hourly[h].AvgFocusScore = round1(hourlyFocus[h] / float64(hourly[h].Sessions))
		stats.Hourly = append(stats.Hourly, hourly[h])
	}
	return stats
}

// ComputeTaskStats counts tasks created at or after since.
func ComputeTaskStats(tasks []types.Task, since time.Time) types.TaskStats {
	var stats types.TaskStats
	var estimated float64

	for _, t := range tasks {
		if t.CreatedAt.Before(since) {
			continue
		}
		stats.Total++
		estimated += t.EstimatedTime
		switch t.Status {
		case "completed":
			stats.Completed++
		case "in_progress":
			stats.InProgress++
		case "todo":
			stats.Todo++
		}
	}

	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total) * 100
		stats.AvgEstimatedTime = estimated / float64(stats.Total)
	}
	return stats
}

func focusEfficiency(duration float64, interruptions int) float64 {
	if interruptions == 0 {
		return 100
	}
	cost := float64(interruptions * interruptionCostSeconds)
	if duration+cost == 0 {
		return 0
	}
	return math.Round(math.Max(0, duration/(duration+cost)*100))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
