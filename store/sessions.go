package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"clementus360/focus-agents/config"
	"clementus360/focus-agents/types"
)

// Sessions reads focus sessions for the pattern analyzer and profile builder.
type Sessions struct {
	db RecordStore
}

func NewSessions(db RecordStore) *Sessions {
	return &Sessions{db: db}
}

// FindByUser returns up to limit sessions, newest first. limit <= 0 means all.
func (s *Sessions) FindByUser(ctx context.Context, userID string, limit int) ([]types.WorkSession, error) {
	records, err := s.db.Query(ctx, config.CollectionSessions, Query{
		Eq:      map[string]interface{}{"user_id": userID},
		OrderBy: "start_time",
		Desc:    true,
		Limit:   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions for user %s: %w", userID, err)
	}

	var sessions []types.WorkSession
	if err := Decode(records, &sessions); err != nil {
		return nil, err
	}

	// stores without ordering support still get newest-first results
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartTime.After(sessions[j].StartTime)
	})
	return sessions, nil
}

// CompletedBetween returns completed sessions whose start falls inside [start, end].
func (s *Sessions) CompletedBetween(ctx context.Context, userID string, start, end time.Time) ([]types.WorkSession, error) {
	records, err := s.db.Query(ctx, config.CollectionSessions, Query{
		Eq: map[string]interface{}{
			"user_id": userID,
			"status":  "completed",
		},
		Ranges: []Range{{Field: "start_time", Gte: start, Lte: end}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session stats data: %w", err)
	}

	var sessions []types.WorkSession
	if err := Decode(records, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *Sessions) Create(ctx context.Context, session types.WorkSession) (types.WorkSession, error) {
	rec, err := Encode(session)
	if err != nil {
		return types.WorkSession{}, err
	}
	created, err := s.db.Create(ctx, config.CollectionSessions, rec, session.ID)
	if err != nil {
		return types.WorkSession{}, fmt.Errorf("failed to create session: %w", err)
	}
	var out types.WorkSession
	err = Decode(created, &out)
	return out, err
}
