package types

import "time"

// Focus trend values
const (
	TrendImproving        = "improving"
	TrendDeclining        = "declining"
	TrendStable           = "stable"
	TrendInsufficientData = "insufficient_data"
)

type InterruptionPattern struct {
	Type      string `json:"type"`
	Frequency string `json:"frequency"` // low | high
	Impact    string `json:"impact"`    // minor | significant
}

type UserPatterns struct {
	PeakHours            []string              `json:"peakHours"`
	AverageSessionLength float64               `json:"averageSessionLength"` // seconds
	ConsistencyScore     float64               `json:"consistencyScore"`     // 0-1
	FocusTrend           string                `json:"focusTrends"`
	InterruptionPatterns []InterruptionPattern `json:"interruptionPatterns"`
	TotalDataPoints      int                   `json:"totalDataPoints"`
}

type SessionSummary struct {
	TotalSessions      int     `json:"totalSessions"`
	TotalDuration      float64 `json:"totalDuration"`
	AvgFocusScore      float64 `json:"avgFocusScore"`
	AvgSessionLength   float64 `json:"avgSessionLength"`
	TotalInterruptions int     `json:"totalInterruptions"`
	FocusEfficiency    float64 `json:"focusEfficiency"`
}

type DailyBreakdown struct {
	Date          string  `json:"date"`
	Sessions      int     `json:"sessions"`
	Duration      float64 `json:"duration"`
	AvgFocusScore float64 `json:"avgFocusScore"`
	Interruptions int     `json:"interruptions"`
}

type HourlyBreakdown struct {
	Hour          int     `json:"hour"`
	Sessions      int     `json:"sessions"`
	Duration      float64 `json:"duration"`
	AvgFocusScore float64 `json:"avgFocusScore"`
}

type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type SessionStats struct {
	Summary   SessionSummary    `json:"summary"`
	Daily     []DailyBreakdown  `json:"daily"`
	Hourly    []HourlyBreakdown `json:"hourly"`
	Timeframe string            `json:"timeframe"`
	DateRange DateRange         `json:"dateRange"`
}

type TaskStats struct {
	Total            int     `json:"total"`
	Completed        int     `json:"completed"`
	InProgress       int     `json:"inProgress"`
	Todo             int     `json:"todo"`
	CompletionRate   float64 `json:"completionRate"` // percent
	AvgEstimatedTime float64 `json:"avgEstimatedTime"`
}

type Recommendation struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"` // low | medium | high
}

type RecommendationReport struct {
	Recommendations []Recommendation    `json:"recommendations"`
	BasedOn         RecommendationBasis `json:"basedOn"`
	GeneratedAt     time.Time           `json:"generatedAt"`
}

type RecommendationBasis struct {
	Patterns   UserPatterns `json:"patterns"`
	DataPoints int          `json:"dataPoints"`
}
