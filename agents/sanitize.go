package agents

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"clementus360/focus-agents/config"
	"clementus360/focus-agents/types"
)

// Canned values substituted when generated output is missing or unusable.
var (
	defaultAdvice = []string{
		"Take a 5-minute break and come back refreshed",
		"Break the task into smaller, manageable chunks",
	}
	defaultBlockedSites = []string{
		"facebook.com",
		"twitter.com",
		"instagram.com",
		"youtube.com",
		"reddit.com",
	}
	defaultReminders = []string{
		"Stay focused! You're doing great!",
		"Remember your goal - every minute counts!",
	}
)

const (
	defaultMotivationMessage = "You've got this! Every small step counts."
	defaultTone              = "encouraging"
	defaultScore             = 8.0
	defaultFeasibility       = 7.0
	defaultBreakInterval     = 1800
	defaultCategory          = "work"
	defaultPriority          = "medium"
	defaultTaskDuration      = config.DefaultTaskDurationS
)

// SanitizeMotivation maps a parsed completion onto MotivationResponse,
// defaulting each field on its own.
func SanitizeMotivation(raw interface{}, now time.Time) types.MotivationResponse {
	m := asMap(raw)

	advice, ok := stringList(m["actionableAdvice"])
	if !ok || len(advice) == 0 {
		advice = append([]string(nil), defaultAdvice...)
	}

	return types.MotivationResponse{
		Message:            stringOr(m["message"], defaultMotivationMessage),
		Tone:               stringOr(m["tone"], defaultTone),
		EncouragementLevel: scoreInRange(m["encouragementLevel"], 1, 10, defaultScore),
		PositivityScore:    scoreInRange(m["positivityScore"], 1, 10, defaultScore),
		ActionableAdvice:   advice,
		Timestamp:          stringOr(m["timestamp"], now.UTC().Format(time.RFC3339)),
	}
}

// FallbackMotivation is returned when no text could be generated at all.
func FallbackMotivation(now time.Time) types.MotivationResponse {
	return SanitizeMotivation(nil, now)
}

// SanitizePlan maps a parsed completion onto PlanResponse. Task priorities
// are forced into low/medium/high and estimates are always positive.
func SanitizePlan(raw interface{}) types.PlanResponse {
	m := asMap(raw)
	plan := types.PlanResponse{
		Tasks:            []types.PlannedTask{},
		Schedule:         []types.ScheduleBlock{},
		Recommendations:  []string{},
		FeasibilityScore: scoreInRange(m["feasibilityScore"], 0, 10, defaultFeasibility),
	}

	if items, ok := m["tasks"].([]interface{}); ok {
		for i, item := range items {
			plan.Tasks = append(plan.Tasks, sanitizeTask(asMap(item), i))
		}
	}

	if items, ok := m["schedule"].([]interface{}); ok {
		for _, item := range items {
			block, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			plan.Schedule = append(plan.Schedule, types.ScheduleBlock{
				TaskID:   stringOr(block["taskId"], ""),
				TimeSlot: stringOr(block["timeSlot"], ""),
				Date:     stringOr(block["date"], ""),
			})
		}
	}

	if recs, ok := stringList(m["recommendations"]); ok {
		plan.Recommendations = recs
	}

	total, ok := toNumber(m["estimatedTotalTime"])
	if !ok || total <= 0 {
		total = 0
		for _, t := range plan.Tasks {
			total += t.EstimatedTime
		}
	}
	plan.EstimatedTotalTime = total

	return plan
}

func sanitizeTask(t map[string]interface{}, index int) types.PlannedTask {
	estimate, ok := toNumber(t["estimatedTime"])
	if !ok || estimate <= 0 {
		estimate = defaultTaskDuration
	}

	priority := defaultPriority
	if p, ok := t["priority"].(string); ok && isLevel(p) {
		priority = p
	}

	deps, ok := stringList(t["dependencies"])
	if !ok {
		deps = []string{}
	}

	return types.PlannedTask{
		ID:            stringOr(t["id"], fmt.Sprintf("task_%d", index+1)),
		Title:         stringOr(t["title"], fmt.Sprintf("Task %d", index+1)),
		Description:   stringOr(t["description"], ""),
		EstimatedTime: estimate,
		Priority:      priority,
		Category:      stringOr(t["category"], defaultCategory),
		Dependencies:  deps,
	}
}

// SanitizeBlocker maps a parsed completion onto BlockerConfig, falling back
// to the request's own duration and distraction level.
func SanitizeBlocker(raw interface{}, req types.BlockerRequest, sessionID string) types.BlockerConfig {
	m := asMap(raw)
	cfg := DefaultBlockerConfig(req, sessionID)
	cfg.SessionID = stringOr(m["sessionId"], sessionID)

	if sites, ok := stringList(m["blockedSites"]); ok {
		cfg.BlockedSites = sites
	}
	if sites, ok := stringList(m["allowedSites"]); ok {
		cfg.AllowedSites = sites
	}
	if d, ok := toNumber(m["blockDuration"]); ok && d > 0 {
		cfg.BlockDuration = int(math.Round(d))
	}
	if items, ok := m["breakIntervals"].([]interface{}); ok {
		intervals := []int{}
		for _, item := range items {
			if n, ok := toNumber(item); ok && n > 0 {
				intervals = append(intervals, int(math.Round(n)))
			}
		}
		cfg.BreakIntervals = intervals
	}
	if level, ok := m["distractionLevel"].(string); ok && isLevel(level) {
		cfg.DistractionLevel = level
	}
	if items, ok := m["customRules"].([]interface{}); ok {
		rules := []types.BlockRule{}
		for _, item := range items {
			rule, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			duration, _ := toNumber(rule["duration"])
			rules = append(rules, types.BlockRule{
				Type:     stringOr(rule["type"], "time_limit"),
				Value:    stringOr(rule["value"], ""),
				Duration: int(math.Max(0, math.Round(duration))),
			})
		}
		cfg.CustomRules = rules
	}
	if reminders, ok := stringList(m["motivationalReminders"]); ok {
		cfg.MotivationalReminders = reminders
	}
	return cfg
}

// DefaultBlockerConfig is used when generation fails outright.
func DefaultBlockerConfig(req types.BlockerRequest, sessionID string) types.BlockerConfig {
	level := req.DistractionLevel
	if !isLevel(level) {
		level = defaultPriority
	}
	return types.BlockerConfig{
		SessionID:             sessionID,
		BlockedSites:          append([]string(nil), defaultBlockedSites...),
		AllowedSites:          []string{},
		BlockDuration:         req.SessionDuration,
		BreakIntervals:        []int{defaultBreakInterval},
		DistractionLevel:      level,
		CustomRules:           []types.BlockRule{},
		MotivationalReminders: append([]string(nil), defaultReminders...),
	}
}

func asMap(v interface{}) map[string]interface{} {
	if m, ok := v.(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{}
}

// stringOr returns v when it is a non-blank string.
func stringOr(v interface{}, def string) string {
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return def
}

// stringList accepts any JSON array, keeping non-blank strings and
// formatting numbers. ok is false when v is not an array.
func stringList(v interface{}) ([]string, bool) {
	items, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := []string{}
	for _, item := range items {
		switch t := item.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				out = append(out, s)
			}
		case float64:
			out = append(out, strconv.FormatFloat(t, 'f', -1, 64))
		}
	}
	return out, true
}

// toNumber coerces loosely typed JSON into a finite non-zero number. Zero,
// blanks and unparsable values report ok=false so callers substitute their
// default.
func toNumber(v interface{}) (float64, bool) {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		n = f
	case bool:
		if t {
			n = 1
		}
	default:
		return 0, false
	}
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func scoreInRange(v interface{}, lo, hi, def float64) float64 {
	n, ok := toNumber(v)
	if !ok || n < lo || n > hi {
		return def
	}
	return n
}

func isLevel(v string) bool {
	switch v {
	case "low", "medium", "high":
		return true
	}
	return false
}
