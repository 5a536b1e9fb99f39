package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clementus360/focus-agents/store"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

// Store is a store.RecordStore backed by Supabase tables. Each collection is
// a table whose columns match the record keys.
type Store struct {
	client *supabase.Client
}

// NewStore creates a service-level client for the given project.
func NewStore(apiURL, apiKey string) (*Store, error) {
	if apiURL == "" || apiKey == "" {
		return nil, fmt.Errorf("SUPABASE_URL or SUPABASE_KEY is missing")
	}

	client, err := supabase.NewClient(apiURL, apiKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create Supabase client: %w", err)
	}
	return &Store{client: client}, nil
}

func (s *Store) Create(ctx context.Context, collection string, record store.Record, id string) (store.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id == "" {
		id = uuid.NewString()
	}

	now := time.Now().UTC()
	row := make(store.Record, len(record)+3)
	for k, v := range record {
		row[k] = v
	}
	row["id"] = id
	if _, ok := row["created_at"]; !ok {
		row["created_at"] = now
	}
	row["updated_at"] = now

	resp, _, err := s.client.From(collection).Insert(row, false, "", "representation", "").Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", collection, err)
	}

	rows, err := decodeRows(resp)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return store.Encode(row)
	}
	return rows[0], nil
}

func (s *Store) FindByID(ctx context.Context, collection, id string) (store.Record, error) {
	rows, err := s.Query(ctx, collection, store.Query{
		Eq:    map[string]interface{}{"id": id},
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (s *Store) FindMany(ctx context.Context, collection string, filters map[string]interface{}) ([]store.Record, error) {
	return s.Query(ctx, collection, store.Query{Eq: filters})
}

func (s *Store) Update(ctx context.Context, collection, id string, partial store.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	updates := make(map[string]interface{}, len(partial)+1)
	for k, v := range partial {
		updates[k] = v
	}
	updates["updated_at"] = time.Now().UTC()

	_, _, err := s.client.From(collection).
		Update(updates, "", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) Query(ctx context.Context, collection string, q store.Query) ([]store.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := s.client.From(collection).Select("*", "", false)
	for field, value := range q.Eq {
		query = query.Eq(field, formatValue(value))
	}
	for _, r := range q.Ranges {
		if r.Gte != nil {
			query = query.Gte(r.Field, formatValue(r.Gte))
		}
		if r.Lte != nil {
			query = query.Lte(r.Field, formatValue(r.Lte))
		}
	}
	if q.OrderBy != "" {
		query = query.Order(q.OrderBy, &postgrest.OrderOpts{Ascending: !q.Desc})
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit, "")
	}

	resp, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	return decodeRows(resp)
}

func decodeRows(resp []byte) ([]store.Record, error) {
	var rows []store.Record
	if err := json.Unmarshal(resp, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode rows: %w", err)
	}
	return rows, nil
}

func formatValue(v interface{}) string {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case string:
		return t
	}
	return fmt.Sprint(v)
}
