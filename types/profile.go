package types

// Task complexity buckets
const (
	ComplexitySimple   = "simple"
	ComplexityModerate = "moderate"
	ComplexityComplex  = "complex"
)

// BehavioralProfile is a compact summary of a user's history. It is recomputed
// for every request and never persisted.
type BehavioralProfile struct {
	CompletionRate             float64               `json:"completionRate"`
	AverageTaskDurationSeconds int                   `json:"averageTaskDuration"`
	PreferredMotivationStyle   string                `json:"preferredMotivationStyle"`
	CommonDistractions         []string              `json:"commonDistractions"`
	ProductiveTimeSlots        []string              `json:"productiveTimeSlots"`
	TaskComplexityPreference   string                `json:"taskComplexityPreference"`
	HistoricalPerformance      HistoricalPerformance `json:"historicalPerformance"`
}

type HistoricalPerformance struct {
	TotalTasks        int     `json:"totalTasks"`
	CompletedTasks    int     `json:"completedTasks"`
	AverageFocusScore float64 `json:"averageFocusScore"`
	StreakRecordDays  int     `json:"streakRecord"`
}

// DefaultProfile is substituted whenever history is missing or unreadable.
func DefaultProfile() BehavioralProfile {
	return BehavioralProfile{
		CompletionRate:             0.7,
		AverageTaskDurationSeconds: 1800,
		PreferredMotivationStyle:   "encouraging",
		CommonDistractions:         []string{},
		ProductiveTimeSlots:        []string{"09:00-10:00", "14:00-15:00"},
		TaskComplexityPreference:   ComplexityModerate,
		HistoricalPerformance:      HistoricalPerformance{},
	}
}
