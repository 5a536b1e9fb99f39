package store

import (
	"context"
	"fmt"
	"time"

	"clementus360/focus-agents/config"
	"clementus360/focus-agents/types"
)

// Insights persists generated insight bundles.
type Insights struct {
	db RecordStore
}

func NewInsights(db RecordStore) *Insights {
	return &Insights{db: db}
}

// insightRecord is the stored shape; the bundle itself keeps its camelCase
// API form under "payload".
type insightRecord struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Timeframe string        `json:"timeframe"`
	CreatedAt string        `json:"created_at"`
	Payload   types.Insight `json:"payload"`
}

func (s *Insights) Save(ctx context.Context, insight types.Insight) error {
	rec, err := Encode(insightRecord{
		ID:        insight.ID,
		UserID:    insight.UserID,
		Timeframe: insight.Timeframe,
		CreatedAt: insight.CreatedAt.UTC().Format(time.RFC3339Nano),
		Payload:   insight,
	})
	if err != nil {
		return err
	}
	if _, err := s.db.Create(ctx, config.CollectionInsights, rec, insight.ID); err != nil {
		return fmt.Errorf("failed to store insight: %w", err)
	}
	return nil
}

// Latest returns the newest stored insight for (user, timeframe), or nil.
func (s *Insights) Latest(ctx context.Context, userID, timeframe string) (*types.Insight, error) {
	records, err := s.db.Query(ctx, config.CollectionInsights, Query{
		Eq: map[string]interface{}{
			"user_id":   userID,
			"timeframe": timeframe,
		},
		OrderBy: "created_at",
		Desc:    true,
		Limit:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cached insights: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var stored insightRecord
	if err := Decode(records[0], &stored); err != nil {
		return nil, err
	}
	return &stored.Payload, nil
}
