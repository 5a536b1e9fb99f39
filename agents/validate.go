package agents

import (
	"fmt"
	"strings"

	"clementus360/focus-agents/config"
	"clementus360/focus-agents/types"
)

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return invalid("userId is required")
	}
	return nil
}

func validateEnergy(energy int) error {
	if energy < 1 || energy > 5 {
		return invalid("energy must be a number between 1 and 5")
	}
	return nil
}

func ValidateMotivation(req types.MotivationRequest) error {
	if err := requireUser(req.UserID); err != nil {
		return err
	}
	if strings.TrimSpace(req.Task) == "" {
		return invalid("task is required")
	}
	if err := validateEnergy(req.Energy); err != nil {
		return err
	}
	if req.Progress < 0 || req.Progress > 1 {
		return invalid("progress must be between 0 and 1")
	}
	return nil
}

func ValidatePlan(req types.PlanRequest) error {
	if err := requireUser(req.UserID); err != nil {
		return err
	}
	if len(req.Goals) == 0 {
		return invalid("goals array is required and must contain at least one goal")
	}
	if req.AvailableTime <= 0 {
		return invalid("availableTime must be a positive number (in seconds)")
	}
	return validateEnergy(req.Energy)
}

// NormalizeBlocker validates req and coerces an unknown distraction level to
// medium.
func NormalizeBlocker(req types.BlockerRequest) (types.BlockerRequest, error) {
	if err := requireUser(req.UserID); err != nil {
		return req, err
	}
	if req.SessionDuration <= 0 {
		return req, invalid("sessionDuration must be a positive number (in seconds)")
	}
	if !isLevel(req.DistractionLevel) {
		req.DistractionLevel = defaultPriority
	}
	if strings.TrimSpace(req.TaskType) == "" {
		req.TaskType = "general"
	}
	return req, nil
}

// NormalizeInsight validates req and defaults an empty timeframe to week.
func NormalizeInsight(req types.InsightRequest) (types.InsightRequest, error) {
	if err := requireUser(req.UserID); err != nil {
		return req, err
	}
	if req.Timeframe == "" {
		req.Timeframe = config.TimeframeWeek
	}
	if _, ok := config.InsightTTL[req.Timeframe]; !ok {
		return req, invalid("timeframe must be one of day, week, month")
	}
	return req, nil
}

func ValidateFeedback(req types.FeedbackRequest) error {
	if err := requireUser(req.UserID); err != nil {
		return err
	}
	if strings.TrimSpace(req.InsightID) == "" {
		return invalid("insightId is required")
	}
	return nil
}

func ValidateSessionFeedback(req types.SessionFeedbackRequest) error {
	if err := requireUser(req.UserID); err != nil {
		return err
	}
	if req.FocusScore < 0 || req.FocusScore > 10 {
		return invalid("focusScore must be between 0 and 10")
	}
	if req.TaskComplexity != "" &&
		req.TaskComplexity != types.ComplexitySimple &&
		req.TaskComplexity != types.ComplexityModerate &&
		req.TaskComplexity != types.ComplexityComplex {
		return invalid("taskComplexity must be one of simple, moderate, complex")
	}
	return nil
}
