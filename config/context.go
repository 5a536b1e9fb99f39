package config

import "time"

// Record store collections
const (
	CollectionSessions        = "work_sessions"
	CollectionGoals           = "goals"
	CollectionTasks           = "tasks"
	CollectionFeedback        = "feedback"
	CollectionInsights        = "user_insights"
	CollectionInsightFeedback = "insight_feedback"
)

// Insight timeframes
const (
	TimeframeDay   = "day"
	TimeframeWeek  = "week"
	TimeframeMonth = "month"
)

// InsightTTL is how long a cached insight stays valid for each timeframe.
// Coarser timeframes change slowly, so they tolerate staler data.
var InsightTTL = map[string]time.Duration{
	TimeframeDay:   6 * time.Hour,
	TimeframeWeek:  24 * time.Hour,
	TimeframeMonth: 72 * time.Hour,
}

// Pattern analysis limits
const (
	PatternSessionLimit   = 100
	MinPatternSessions    = 5
	MinTrendSessions      = 10
	MinConsistencyDays    = 7
	PeakHourMinSessions   = 2
	ProfileTopN           = 3
	ProductiveFocusScore  = 7.0
	HighInterruptionMean  = 2.0
	DefaultTaskDurationS  = 1800
	FallbackDescLength    = 200
	InsightLineScanLimit  = 3
	FocusTrendChangeRatio = 0.10
)
