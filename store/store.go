// Package store defines the narrow record-store contract the agents depend on
// and typed repositories built on top of it.
package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Record is a JSON-normalized document: values are strings, float64s, bools,
// nil, []interface{} or map[string]interface{}.
type Record map[string]interface{}

// Range bounds a field. Empty bounds are ignored.
type Range struct {
	Field string
	Gte   interface{}
	Lte   interface{}
}

// Query is the predicate form of a collection read.
type Query struct {
	Eq      map[string]interface{}
	Ranges  []Range
	OrderBy string
	Desc    bool
	Limit   int
}

// RecordStore is the persistence boundary. Implementations must be safe for
// concurrent use.
type RecordStore interface {
	Create(ctx context.Context, collection string, record Record, id string) (Record, error)
	// FindByID returns (nil, nil) when the record does not exist.
	FindByID(ctx context.Context, collection, id string) (Record, error)
	FindMany(ctx context.Context, collection string, filters map[string]interface{}) ([]Record, error)
	Update(ctx context.Context, collection, id string, partial Record) error
	Query(ctx context.Context, collection string, q Query) ([]Record, error)
}

// Encode turns a typed value into a Record via its JSON form.
func Encode(v interface{}) (Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to normalize record: %w", err)
	}
	return rec, nil
}

// Decode fills out (a pointer) from a record or a slice of records.
func Decode(in interface{}, out interface{}) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode records: %w", err)
	}
	return nil
}
