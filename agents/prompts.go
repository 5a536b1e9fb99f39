package agents

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"clementus360/focus-agents/types"
)

func motivatorSystemPrompt(userContext string, now time.Time) string {
	return fmt.Sprintf(`You are a motivational coach specialized in helping people overcome procrastination.

%s

REQUIREMENTS:
1. Provide personalized motivation based on user's historical preferences
2. Address specific energy levels and task contexts
3. Include actionable advice for immediate implementation
4. Match the user's preferred motivation style
5. Be encouraging but realistic

RESPONSE FORMAT (JSON only):
{
  "message": "Motivational message",
  "tone": "encouraging",
  "encouragementLevel": 8,
  "positivityScore": 8,
  "actionableAdvice": ["advice1", "advice2"],
  "timestamp": "%s"
}`, userContext, now.UTC().Format(time.RFC3339))
}

func motivatorUserPrompt(req types.MotivationRequest) string {
	timeframe := req.Timeframe
	if timeframe == "" {
		timeframe = "day"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Task: %s\n", req.Task)
	fmt.Fprintf(&b, "Energy Level: %d/5\n", req.Energy)
	fmt.Fprintf(&b, "Progress: %d%%\n", int(math.Round(req.Progress*100)))
	fmt.Fprintf(&b, "Timeframe: %s\n", timeframe)
	if req.Tone != "" {
		fmt.Fprintf(&b, "Preferred Tone: %s\n", req.Tone)
	}
	b.WriteString("\nGenerate motivation that will help me stay focused and productive.")
	return b.String()
}

func plannerSystemPrompt(userContext string) string {
	return fmt.Sprintf(`You are an expert task planner. Create a detailed, actionable plan based on the user's goals and historical context.

%s

REQUIREMENTS:
1. Break down complex goals into specific, actionable tasks
2. Estimate realistic time durations based on user's historical performance
3. Prioritize tasks effectively
4. Consider the user's productive time slots and energy patterns
5. Account for potential distractions and build in buffer time
6. Provide a feasibility score (0-10) based on user's completion rate

RESPONSE FORMAT (JSON only):
{
  "tasks": [
    {
      "id": "task_1",
      "title": "Task title",
      "description": "Detailed description",
      "estimatedTime": 1800,
      "priority": "high|medium|low",
      "category": "work|personal|learning",
      "dependencies": ["task_id_if_any"]
    }
  ],
  "schedule": [
    {
      "taskId": "task_1",
      "timeSlot": "09:00-10:30",
      "date": "2024-01-15"
    }
  ],
  "estimatedTotalTime": 7200,
  "recommendations": ["recommendation1", "recommendation2"],
  "feasibilityScore": 8.5
}`, userContext)
}

func plannerUserPrompt(req types.PlanRequest) string {
	goals, err := json.Marshal(req.Goals)
	if err != nil {
		goals = []byte("[]")
	}
	planContext := req.Context
	if planContext == "" {
		planContext = "General productivity"
	}

	return fmt.Sprintf(`Goals: %s
Available Time: %d seconds
Energy Level: %d/5
Context: %s

Create a comprehensive plan that maximizes success probability.`, goals, req.AvailableTime, req.Energy, planContext)
}

func blockerSystemPrompt(userContext, sessionID string) string {
	return fmt.Sprintf(`You are a focus optimization specialist. Create a distraction blocking configuration based on user's task and historical distraction patterns.

%s

BLOCKING STRATEGIES:
1. Website blocking - Common distraction sites
2. Time-based restrictions - Limit access during focus periods
3. Break scheduling - Strategic breaks to maintain focus
4. Motivational interventions - Gentle reminders when distractions detected

RESPONSE FORMAT (JSON only):
{
  "sessionId": "%s",
  "blockedSites": ["site1.com", "site2.com"],
  "allowedSites": ["essential-site.com"],
  "blockDuration": 3600,
  "breakIntervals": [1800, 3600],
  "distractionLevel": "medium",
  "customRules": [
    {
      "type": "time_limit",
      "value": "social-media",
      "duration": 300
    }
  ],
  "motivationalReminders": ["reminder1", "reminder2"]
}`, userContext, sessionID)
}

func blockerUserPrompt(req types.BlockerRequest) string {
	return fmt.Sprintf(`Task Type: %s
Session Duration: %d seconds
Distraction Level: %s

Create an optimal blocking configuration for maximum focus.`, req.TaskType, req.SessionDuration, req.DistractionLevel)
}

const observerSystemPrompt = `You are a productivity analyst AI. Provide actionable insights based on user data. Be encouraging but honest about areas for improvement.

RESPONSE FORMAT (JSON only):
{
  "summary": "Short overall assessment",
  "keyFindings": ["finding1", "finding2"],
  "actionItems": ["action1", "action2"]
}`

type insightData struct {
	timeframe string
	metrics   []string
	sessions  types.SessionStats
	tasks     types.TaskStats
	patterns  types.UserPatterns
}

func observerUserPrompt(d insightData) string {
	peak := "Not enough data"
	if len(d.patterns.PeakHours) > 0 {
		peak = strings.Join(d.patterns.PeakHours, ", ")
	}
	trend := d.patterns.FocusTrend
	if trend == "" {
		trend = types.TrendStable
	}
	s := d.sessions.Summary

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this user's %s productivity data:\n\n", d.timeframe)
	b.WriteString("SESSION DATA:\n")
	fmt.Fprintf(&b, "- Total sessions: %d\n", s.TotalSessions)
	fmt.Fprintf(&b, "- Total focus time: %d minutes\n", int(math.Round(s.TotalDuration/60)))
	fmt.Fprintf(&b, "- Average focus score: %.1f/10\n", s.AvgFocusScore)
	fmt.Fprintf(&b, "- Average session length: %d minutes\n", int(math.Round(s.AvgSessionLength/60)))
	fmt.Fprintf(&b, "- Interruptions: %d\n", s.TotalInterruptions)
	fmt.Fprintf(&b, "- Focus efficiency: %.0f%%\n\n", s.FocusEfficiency)
	b.WriteString("TASK DATA:\n")
	fmt.Fprintf(&b, "- Total tasks: %d\n", d.tasks.Total)
	fmt.Fprintf(&b, "- Completed: %d\n", d.tasks.Completed)
	fmt.Fprintf(&b, "- Completion rate: %d%%\n\n", int(math.Round(d.tasks.CompletionRate)))
	b.WriteString("PATTERNS:\n")
	fmt.Fprintf(&b, "- Peak hours: %s\n", peak)
	fmt.Fprintf(&b, "- Consistency score: %d%%\n", int(math.Round(d.patterns.ConsistencyScore*100)))
	fmt.Fprintf(&b, "- Focus trend: %s\n\n", trend)
	if len(d.metrics) > 0 {
		fmt.Fprintf(&b, "FOCUS AREAS: %s\n\n", strings.Join(d.metrics, ", "))
	}
	b.WriteString("Provide 2-3 key insights and 2-3 specific action items for improvement.")
	return b.String()
}
