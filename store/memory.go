package store

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process RecordStore used for local runs and tests.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Record
	now         func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]Record),
		now:         time.Now,
	}
}

func (m *MemoryStore) Create(ctx context.Context, collection string, record Record, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec, err := Encode(record)
	if err != nil {
		return nil, err
	}
	if id == "" {
		if existing, ok := rec["id"].(string); ok && existing != "" {
			id = existing
		} else {
			id = uuid.NewString()
		}
	}

	now := m.now().UTC().Format(time.RFC3339Nano)
	rec["id"] = id
	if _, ok := rec["created_at"]; !ok || isZeroTime(rec["created_at"]) {
		rec["created_at"] = now
	}
	rec["updated_at"] = now

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.collections[collection] == nil {
		m.collections[collection] = make(map[string]Record)
	}
	m.collections[collection][id] = rec
	return copyRecord(rec), nil
}

func (m *MemoryStore) FindByID(ctx context.Context, collection, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.collections[collection][id]
	if !ok {
		return nil, nil
	}
	return copyRecord(rec), nil
}

func (m *MemoryStore) FindMany(ctx context.Context, collection string, filters map[string]interface{}) ([]Record, error) {
	return m.Query(ctx, collection, Query{Eq: filters})
}

func (m *MemoryStore) Update(ctx context.Context, collection, id string, partial Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	patch, err := Encode(partial)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.collections[collection][id]
	if !ok {
		return fmt.Errorf("record %s/%s not found", collection, id)
	}
	for k, v := range patch {
		rec[k] = v
	}
	rec["updated_at"] = m.now().UTC().Format(time.RFC3339Nano)
	return nil
}

func (m *MemoryStore) Query(ctx context.Context, collection string, q Query) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	eq, err := Encode(q.Eq)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	var out []Record
	for _, rec := range m.collections[collection] {
		if matches(rec, eq, q.Ranges) {
			out = append(out, copyRecord(rec))
		}
	}
	m.mu.RUnlock()

	if q.OrderBy != "" {
		sort.SliceStable(out, func(i, j int) bool {
			c := compareValues(out[i][q.OrderBy], out[j][q.OrderBy])
			if q.Desc {
				return c > 0
			}
			return c < 0
		})
	} else {
		// map iteration is random; keep results stable by id
		sort.SliceStable(out, func(i, j int) bool {
			return fmt.Sprint(out[i]["id"]) < fmt.Sprint(out[j]["id"])
		})
	}

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func matches(rec, eq Record, ranges []Range) bool {
	for field, want := range eq {
		if compareValues(rec[field], want) != 0 {
			return false
		}
	}
	for _, r := range ranges {
		v, ok := rec[r.Field]
		if !ok || v == nil {
			return false
		}
		if r.Gte != nil && compareValues(v, normalize(r.Gte)) < 0 {
			return false
		}
		if r.Lte != nil && compareValues(v, normalize(r.Lte)) > 0 {
			return false
		}
	}
	return true
}

func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	}
	return v
}

// compareValues orders times, numbers and strings; mixed kinds fall back to
// their string form.
func compareValues(a, b interface{}) int {
	a, b = normalize(a), normalize(b)

	if ta, okA := asTime(a); okA {
		if tb, okB := asTime(b); okB {
			return ta.Compare(tb)
		}
	}
	if fa, okA := asFloat(a); okA {
		if fb, okB := asFloat(b); okB {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	}
	return 0
}

func asTime(v interface{}) (time.Time, bool) {
	s, ok := v.(string)
	if !ok || len(s) < 10 {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func asFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	}
	return 0, false
}

func isZeroTime(v interface{}) bool {
	t, ok := asTime(v)
	return !ok || t.IsZero()
}

func copyRecord(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}
