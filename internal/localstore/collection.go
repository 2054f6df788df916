// Package localstore keeps exercises, plans, the weekly schedule and workout
// sessions on the device so the app can work without the backend. Each kind
// of record is a JSON array under its own key in a kv.Store.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/priyankaj04/Gymlogs/internal/kv"
)

var ErrNotFound = errors.New("record not found")

// fields exposes the bookkeeping attributes every stored record carries.
type fields[T any] struct {
	id         func(*T) *string
	timestamps func(*T) (createdAt, updatedAt *time.Time)
	validate   func(T) error
}

// Collection is one JSON array under key. The mutex is held across each
// read-modify-write cycle, so concurrent callers in one process cannot lose
// each other's updates.
type Collection[T any] struct {
	store  kv.Store
	key    string
	fields fields[T]
	now    func() time.Time

	mu sync.Mutex
}

func newCollection[T any](store kv.Store, key string, f fields[T], now func() time.Time) *Collection[T] {
	return &Collection[T]{store: store, key: key, fields: f, now: now}
}

func (c *Collection[T]) Key() string {
	return c.key
}

func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

func (c *Collection[T]) Save(ctx context.Context, records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(ctx, records)
}

// load treats a missing or unreadable value as an empty collection.
func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	raw, err := c.store.Get(ctx, c.key)
	if errors.Is(err, kv.ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.key, err)
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Printf("Error reading %s: %v", c.key, err)
		return []T{}, nil
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func (c *Collection[T]) save(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, raw); err != nil {
		log.Printf("Error saving %s: %v", c.key, err)
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}

func (c *Collection[T]) check(record T) error {
	if c.fields.validate == nil {
		return nil
	}
	return c.fields.validate(record)
}

// Add appends record, assigning an id and timestamps when they are unset.
func (c *Collection[T]) Add(ctx context.Context, record T) (T, error) {
	if err := c.check(record); err != nil {
		var zero T
		return zero, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if id := c.fields.id(&record); *id == "" {
		*id = uuid.NewString()
	}
	now := c.now()
	createdAt, updatedAt := c.fields.timestamps(&record)
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt.IsZero() {
		*updatedAt = now
	}

	records = append(records, record)
	if err := c.save(ctx, records); err != nil {
		var zero T
		return zero, err
	}
	return record, nil
}

// Update applies mutate to the record with id and stamps its updatedAt.
func (c *Collection[T]) Update(ctx context.Context, id string, mutate func(*T)) (T, error) {
	var zero T

	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return zero, err
	}

	for i := range records {
		if *c.fields.id(&records[i]) != id {
			continue
		}
		updated := records[i]
		mutate(&updated)
		*c.fields.id(&updated) = id
		_, updatedAt := c.fields.timestamps(&updated)
		*updatedAt = c.now()
		if err := c.check(updated); err != nil {
			return zero, err
		}

		records[i] = updated
		if err := c.save(ctx, records); err != nil {
			return zero, err
		}
		return updated, nil
	}
	return zero, fmt.Errorf("%s %s: %w", c.key, id, ErrNotFound)
}

// Delete removes the record with id. Deleting a missing id is not an error.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return err
	}
	kept := make([]T, 0, len(records))
	for i := range records {
		if *c.fields.id(&records[i]) != id {
			kept = append(kept, records[i])
		}
	}
	if len(kept) == len(records) {
		return nil
	}
	return c.save(ctx, kept)
}

func (c *Collection[T]) FindByID(ctx context.Context, id string) (T, error) {
	return c.find(ctx, func(record *T) bool { return *c.fields.id(record) == id })
}

func (c *Collection[T]) find(ctx context.Context, match func(*T) bool) (T, error) {
	var zero T
	records, err := c.Load(ctx)
	if err != nil {
		return zero, err
	}
	for i := range records {
		if match(&records[i]) {
			return records[i], nil
		}
	}
	return zero, fmt.Errorf("%s: %w", c.key, ErrNotFound)
}

func (c *Collection[T]) clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Delete(ctx, c.key)
}
