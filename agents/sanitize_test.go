package agents

import (
	"testing"
	"time"

	"clementus360/focus-agents/llm"
	"clementus360/focus-agents/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 11, 9, 30, 0, 0, time.UTC)

func TestSanitizePlan_CoercesTasks(t *testing.T) {
	raw := llm.ParseStructured(`{
		"tasks": [
			{"id": "a", "title": "Draft", "priority": "urgent", "estimatedTime": "soon"},
			{"title": "Review", "priority": "high", "estimatedTime": "3600", "dependencies": ["a"]},
			{"priority": 5, "estimatedTime": -20, "dependencies": "a"},
			"not a task"
		],
		"schedule": [{"taskId": "a", "timeSlot": "09:00-10:00", "date": "2026-03-11"}, 7],
		"feasibilityScore": 15
	}`)

	plan := SanitizePlan(raw)
	require.Len(t, plan.Tasks, 4)

	for _, task := range plan.Tasks {
		assert.Contains(t, []string{"low", "medium", "high"}, task.Priority)
		assert.Greater(t, task.EstimatedTime, 0.0)
		assert.NotNil(t, task.Dependencies)
	}

	assert.Equal(t, "medium", plan.Tasks[0].Priority)
	assert.Equal(t, 1800.0, plan.Tasks[0].EstimatedTime)
	assert.Equal(t, "high", plan.Tasks[1].Priority)
	assert.Equal(t, 3600.0, plan.Tasks[1].EstimatedTime)
	assert.Equal(t, []string{"a"}, plan.Tasks[1].Dependencies)
	assert.Equal(t, "task_2", plan.Tasks[1].ID)
	assert.Equal(t, "Task 3", plan.Tasks[2].Title)
	assert.Equal(t, "work", plan.Tasks[3].Category)

	require.Len(t, plan.Schedule, 1)
	assert.Equal(t, "09:00-10:00", plan.Schedule[0].TimeSlot)
	assert.Equal(t, 7.0, plan.FeasibilityScore)
	assert.Equal(t, 1800.0*3+3600, plan.EstimatedTotalTime)
	assert.Equal(t, []string{}, plan.Recommendations)
}

func TestSanitizePlan_Fallback(t *testing.T) {
	plan := SanitizePlan(llm.ParseStructured("I cannot plan today"))
	assert.Empty(t, plan.Tasks)
	assert.NotNil(t, plan.Tasks)
	assert.Equal(t, 7.0, plan.FeasibilityScore)
	assert.Zero(t, plan.EstimatedTotalTime)
}

func TestSanitizeMotivation(t *testing.T) {
	tests := []struct {
		name string
		raw  interface{}
		want types.MotivationResponse
	}{
		{
			name: "nothing usable",
			raw:  nil,
			want: types.MotivationResponse{
				Message:            defaultMotivationMessage,
				Tone:               "encouraging",
				EncouragementLevel: 8,
				PositivityScore:    8,
				ActionableAdvice:   defaultAdvice,
				Timestamp:          "2026-03-11T09:30:00Z",
			},
		},
		{
			name: "loosely typed fields",
			raw: map[string]interface{}{
				"message":            "Ship it",
				"tone":               "direct",
				"encouragementLevel": "9",
				"positivityScore":    0.0,
				"actionableAdvice":   []interface{}{"Open the doc", "", 3.0},
				"timestamp":          "then",
			},
			want: types.MotivationResponse{
				Message:            "Ship it",
				Tone:               "direct",
				EncouragementLevel: 9,
				PositivityScore:    8,
				ActionableAdvice:   []string{"Open the doc", "3"},
				Timestamp:          "then",
			},
		},
		{
			name: "out of range scores and empty advice",
			raw: map[string]interface{}{
				"message":            "   ",
				"encouragementLevel": 42.0,
				"positivityScore":    "NaN",
				"actionableAdvice":   []interface{}{},
			},
			want: types.MotivationResponse{
				Message:            defaultMotivationMessage,
				Tone:               "encouraging",
				EncouragementLevel: 8,
				PositivityScore:    8,
				ActionableAdvice:   defaultAdvice,
				Timestamp:          "2026-03-11T09:30:00Z",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeMotivation(tt.raw, fixedNow))
		})
	}
}

func TestSanitizeBlocker(t *testing.T) {
	req := types.BlockerRequest{UserID: "u1", TaskType: "coding", SessionDuration: 2700, DistractionLevel: "high"}

	cfg := SanitizeBlocker(nil, req, "session_x")
	assert.Equal(t, DefaultBlockerConfig(req, "session_x"), cfg)
	assert.Equal(t, 2700, cfg.BlockDuration)
	assert.Equal(t, "high", cfg.DistractionLevel)
	assert.Equal(t, []int{1800}, cfg.BreakIntervals)

	cfg = SanitizeBlocker(map[string]interface{}{
		"sessionId":        "s-from-model",
		"blockedSites":     []interface{}{"news.com"},
		"blockDuration":    "3600",
		"breakIntervals":   []interface{}{1500.0, "oops", -1.0, "900"},
		"distractionLevel": "extreme",
		"customRules": []interface{}{
			map[string]interface{}{"type": "time_limit", "value": "social-media", "duration": 300.0},
			"junk",
		},
		"motivationalReminders": "not a list",
	}, req, "session_x")

	assert.Equal(t, "s-from-model", cfg.SessionID)
	assert.Equal(t, []string{"news.com"}, cfg.BlockedSites)
	assert.Equal(t, 3600, cfg.BlockDuration)
	assert.Equal(t, []int{1500, 900}, cfg.BreakIntervals)
	assert.Equal(t, "high", cfg.DistractionLevel)
	assert.Equal(t, []types.BlockRule{{Type: "time_limit", Value: "social-media", Duration: 300}}, cfg.CustomRules)
	assert.Equal(t, defaultReminders, cfg.MotivationalReminders)
}

func TestToNumber(t *testing.T) {
	tests := []struct {
		in   interface{}
		want float64
		ok   bool
	}{
		{12.5, 12.5, true},
		{" 42 ", 42, true},
		{"soon", 0, false},
		{"", 0, false},
		{0.0, 0, false},
		{true, 1, true},
		{nil, 0, false},
		{[]interface{}{1.0}, 0, false},
		{"Inf", 0, false},
	}
	for _, tt := range tests {
		got, ok := toNumber(tt.in)
		assert.Equal(t, tt.ok, ok, "%v", tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}
}

func TestExtractLines(t *testing.T) {
	text := "Summary line\nKey finding: mornings work\nAnother insight here\nPattern: late starts\nPattern four\nI recommend blocks\nTry a timer"
	assert.Equal(t, []string{"Key finding: mornings work", "Another insight here", "Pattern: late starts"}, extractLines(text, findingKeywords))
	assert.Equal(t, []string{"I recommend blocks", "Try a timer"}, extractLines(text, actionKeywords))
	assert.Equal(t, []string{}, extractLines("", actionKeywords))
}
