package types

import "time"

// Motivator

type MotivationRequest struct {
	Task      string  `json:"task"`
	Energy    int     `json:"energy"`   // 1-5
	Progress  float64 `json:"progress"` // 0-1
	Tone      string  `json:"tone,omitempty"`
	UserID    string  `json:"userId"`
	Timeframe string  `json:"timeframe,omitempty"`
}

type MotivationResponse struct {
	Message            string   `json:"message"`
	Tone               string   `json:"tone"`
	EncouragementLevel float64  `json:"encouragementLevel"` // 1-10
	PositivityScore    float64  `json:"positivityScore"`    // 1-10
	ActionableAdvice   []string `json:"actionableAdvice"`
	Timestamp          string   `json:"timestamp"`
}

// Planner

// GoalSummary is the part of a goal the planner needs.
type GoalSummary struct {
	Title    string `json:"title"`
	Deadline string `json:"deadline,omitempty"`
	Priority string `json:"priority,omitempty"`
}

type PlanRequest struct {
	Goals         []GoalSummary `json:"goals"`
	AvailableTime int           `json:"availableTime"` // seconds
	Energy        int           `json:"energy"`        // 1-5
	UserID        string        `json:"userId"`
	Context       string        `json:"context,omitempty"`
}

type PlannedTask struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	EstimatedTime float64  `json:"estimatedTime"` // seconds, always > 0
	Priority      string   `json:"priority"`      // low | medium | high
	Category      string   `json:"category"`
	Dependencies  []string `json:"dependencies"`
}

type ScheduleBlock struct {
	TaskID   string `json:"taskId"`
	TimeSlot string `json:"timeSlot"`
	Date     string `json:"date"`
}

type PlanResponse struct {
	Tasks              []PlannedTask   `json:"tasks"`
	Schedule           []ScheduleBlock `json:"schedule"`
	EstimatedTotalTime float64         `json:"estimatedTotalTime"`
	Recommendations    []string        `json:"recommendations"`
	FeasibilityScore   float64         `json:"feasibilityScore"` // 0-10
}

// Blocker

type BlockerRequest struct {
	UserID           string `json:"userId"`
	TaskType         string `json:"taskType"`
	SessionDuration  int    `json:"sessionDuration"`  // seconds
	DistractionLevel string `json:"distractionLevel"` // low | medium | high
}

type BlockRule struct {
	Type     string `json:"type"` // time_limit | keyword_block | app_block
	Value    string `json:"value"`
	Duration int    `json:"duration"` // seconds
}

type BlockerConfig struct {
	SessionID             string      `json:"sessionId"`
	BlockedSites          []string    `json:"blockedSites"`
	AllowedSites          []string    `json:"allowedSites"`
	BlockDuration         int         `json:"blockDuration"`
	BreakIntervals        []int       `json:"breakIntervals"`
	DistractionLevel      string      `json:"distractionLevel"`
	CustomRules           []BlockRule `json:"customRules"`
	MotivationalReminders []string    `json:"motivationalReminders"`
}

type ActivationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Observer

type InsightRequest struct {
	UserID                 string   `json:"userId"`
	Timeframe              string   `json:"timeframe"` // day | week | month
	Metrics                []string `json:"metrics,omitempty"`
	IncludeRecommendations bool     `json:"includeRecommendations,omitempty"`
}

type AIInsights struct {
	Summary     string   `json:"summary"`
	KeyFindings []string `json:"keyFindings"`
	ActionItems []string `json:"actionItems"`
}

type Insight struct {
	ID              string           `json:"id"`
	UserID          string           `json:"userId"`
	Timeframe       string           `json:"timeframe"`
	SessionStats    SessionStats     `json:"sessionStats"`
	TaskStats       TaskStats        `json:"taskStats"`
	Patterns        UserPatterns     `json:"patterns"`
	AIInsights      AIInsights       `json:"aiInsights"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

type FeedbackRequest struct {
	UserID    string `json:"userId"`
	InsightID string `json:"insightId"`
	Helpful   bool   `json:"helpful"`
	Comment   string `json:"comment,omitempty"`
}

type SessionFeedbackRequest struct {
	UserID                  string   `json:"userId"`
	SessionID               string   `json:"sessionId"`
	Completed               bool     `json:"completed"`
	FocusScore              float64  `json:"focusScore"`
	Distractions            []string `json:"distractions"`
	MotivationStyle         string   `json:"motivationStyle,omitempty"`
	MotivationEffectiveness float64  `json:"motivationEffectiveness"`
	TaskComplexity          string   `json:"taskComplexity"`
	EnergyAfter             int      `json:"energyAfter"`
}

type HealthStatus struct {
	Status    string            `json:"status"`
	Services  map[string]string `json:"services"`
	Timestamp string            `json:"timestamp"`
	Version   string            `json:"version"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message   string `json:"message"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}
