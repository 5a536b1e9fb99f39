package store

import (
	"context"
	"fmt"

	"clementus360/focus-agents/config"
	"clementus360/focus-agents/types"
)

// History groups the per-user reads that are plain equality lookups: goals,
// tasks and session feedback.
type History struct {
	db RecordStore
}

func NewHistory(db RecordStore) *History {
	return &History{db: db}
}

func (h *History) Goals(ctx context.Context, userID string) ([]types.Goal, error) {
	var goals []types.Goal
	err := h.findByUser(ctx, config.CollectionGoals, userID, &goals)
	return goals, err
}

func (h *History) Tasks(ctx context.Context, userID string) ([]types.Task, error) {
	var tasks []types.Task
	err := h.findByUser(ctx, config.CollectionTasks, userID, &tasks)
	return tasks, err
}

func (h *History) Feedback(ctx context.Context, userID string) ([]types.SessionFeedback, error) {
	var feedback []types.SessionFeedback
	err := h.findByUser(ctx, config.CollectionFeedback, userID, &feedback)
	return feedback, err
}

func (h *History) SaveFeedback(ctx context.Context, fb types.SessionFeedback) (types.SessionFeedback, error) {
	var out types.SessionFeedback
	err := h.create(ctx, config.CollectionFeedback, fb.ID, fb, &out)
	return out, err
}

func (h *History) SaveInsightFeedback(ctx context.Context, fb types.InsightFeedback) (types.InsightFeedback, error) {
	var out types.InsightFeedback
	err := h.create(ctx, config.CollectionInsightFeedback, fb.ID, fb, &out)
	return out, err
}

func (h *History) findByUser(ctx context.Context, collection, userID string, out interface{}) error {
	records, err := h.db.FindMany(ctx, collection, map[string]interface{}{"user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", collection, err)
	}
	return Decode(records, out)
}

func (h *History) create(ctx context.Context, collection, id string, v, out interface{}) error {
	rec, err := Encode(v)
	if err != nil {
		return err
	}
	created, err := h.db.Create(ctx, collection, rec, id)
	if err != nil {
		return fmt.Errorf("failed to create %s record: %w", collection, err)
	}
	return Decode(created, out)
}
