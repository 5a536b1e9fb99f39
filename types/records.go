package types

import "time"

// WorkSession is a focus session as stored in the record store.
type WorkSession struct {
	ID            string     `json:"id,omitempty"`
	UserID        string     `json:"user_id"`
	TaskID        string     `json:"task_id,omitempty"`
	TaskTitle     string     `json:"task_title,omitempty"`
	Status        string     `json:"status"` // active | completed | paused
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	Duration      float64    `json:"duration,omitempty"` // seconds
	FocusScore    float64    `json:"focus_score,omitempty"`
	Interruptions int        `json:"interruptions,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at,omitempty"`
}

type Goal struct {
	ID          string    `json:"id,omitempty"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Priority    string    `json:"priority,omitempty"`
	TargetDate  string    `json:"target_date,omitempty"`
	Progress    float64   `json:"progress,omitempty"`
	Completed   bool      `json:"completed,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

type Task struct {
	ID            string    `json:"id,omitempty"`
	UserID        string    `json:"user_id"`
	GoalID        *string   `json:"goal_id,omitempty"` // nullable
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Status        string    `json:"status"` // todo | in_progress | completed
	Priority      string    `json:"priority,omitempty"`
	EstimatedTime float64   `json:"estimated_time,omitempty"` // seconds
	CreatedAt     time.Time `json:"created_at"`
}

// SessionFeedback is what a user reports after a focus session. The
// behavioral profile is built from these records.
type SessionFeedback struct {
	ID                      string    `json:"id,omitempty"`
	UserID                  string    `json:"user_id"`
	SessionID               string    `json:"session_id,omitempty"`
	Completed               bool      `json:"completed"`
	FocusScore              float64   `json:"focus_score,omitempty"`
	Distractions            []string  `json:"distractions,omitempty"`
	MotivationStyle         string    `json:"motivation_style,omitempty"`
	MotivationEffectiveness float64   `json:"motivation_effectiveness,omitempty"`
	TaskComplexity          string    `json:"task_complexity,omitempty"`
	EnergyAfter             int       `json:"energy_after,omitempty"`
	CreatedAt               time.Time `json:"created_at,omitempty"`
}

type InsightFeedback struct {
	ID          string    `json:"id,omitempty"`
	UserID      string    `json:"user_id"`
	InsightID   string    `json:"insight_id"`
	Helpful     bool      `json:"helpful"`
	Comment     string    `json:"comment,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}
