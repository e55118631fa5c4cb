// Package store implements the keyed record collections backing the listing
// and hero image workflows. Each collection lives under one kv namespace key
// and is re-serialized in full on every mutation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/propfinder/listing-api/pkg/kv"
)

// Descriptor wires a record type into a collection: its namespace key, the
// built-in seed set and the accessor functions the generic code needs.
type Descriptor[T any] struct {
	Key   string
	Seed  []T
	ID    func(T) string
	SetID func(T, string) T
	Clone func(T) T
}

// Collection is an ordered, durable set of records keyed by a store-assigned
// identifier. Reads return defensive copies; callers never observe the
// in-memory slice directly.
type Collection[T any] struct {
	kv     kv.Store
	logger *zap.Logger
	desc   Descriptor[T]

	mu      sync.Mutex
	loaded  bool
	records []T
	nextID  int
}

// NewCollection builds a collection over the given kv store. Load happens
// lazily on first use.
func NewCollection[T any](store kv.Store, logger *zap.Logger, desc Descriptor[T]) *Collection[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collection[T]{kv: store, logger: logger, desc: desc}
}

// Load reads the collection from durable storage, seeding from the built-in
// defaults when the payload is absent or unparseable. A failed read is
// surfaced, not reseeded over. Repeated calls are no-ops within the same
// process lifetime.
func (c *Collection[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadLocked(ctx)
}

func (c *Collection[T]) loadLocked(ctx context.Context) error {
	if c.loaded {
		return nil
	}

	data, err := c.kv.Get(ctx, c.desc.Key)
	switch {
	case err == nil:
		var records []T
		if jsonErr := json.Unmarshal(data, &records); jsonErr == nil {
			c.records = records
			c.nextID = c.maxID()
			c.loaded = true
			return nil
		}
		c.logger.Warn("discarding unparseable collection payload",
			zap.String("key", c.desc.Key))
	case errors.Is(err, kv.ErrKeyNotFound):
		// absent payload, fall through to seeding
	default:
		// a failed read says nothing about the stored payload; reseeding
		// here would clobber it
		return fmt.Errorf("load collection %q: %w", c.desc.Key, err)
	}

	c.records = make([]T, 0, len(c.desc.Seed))
	for _, record := range c.desc.Seed {
		c.records = append(c.records, c.desc.Clone(record))
	}
	c.nextID = c.maxID()
	c.loaded = true
	c.persistLocked(ctx)
	return nil
}

// List returns the full collection in insertion order as defensive copies.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.loadLocked(ctx); err != nil {
		return nil, err
	}

	out := make([]T, 0, len(c.records))
	for _, record := range c.records {
		out = append(out, c.desc.Clone(record))
	}
	return out, nil
}

// Get returns a copy of the record with the given identifier.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.loadLocked(ctx); err != nil {
		return zero, false, err
	}

	for _, record := range c.records {
		if c.desc.ID(record) == id {
			return c.desc.Clone(record), true, nil
		}
	}
	return zero, false, nil
}

// Create assigns the next identifier, appends the record and persists the
// whole collection. The identifier is strictly greater than any identifier
// ever present, including across process restarts.
func (c *Collection[T]) Create(ctx context.Context, record T) (T, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.loadLocked(ctx); err != nil {
		return zero, err
	}

	c.nextID++
	record = c.desc.SetID(c.desc.Clone(record), strconv.Itoa(c.nextID))
	c.records = append(c.records, record)
	c.persistLocked(ctx)
	return c.desc.Clone(record), nil
}

// Update merges fields into the record with the given identifier via the
// merge function and persists. Returns false when the identifier is unknown.
func (c *Collection[T]) Update(ctx context.Context, id string, merge func(T) T) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.loadLocked(ctx); err != nil {
		return false, err
	}

	for i, record := range c.records {
		if c.desc.ID(record) != id {
			continue
		}
		updated := merge(c.desc.Clone(record))
		// the merge function cannot reassign the identifier
		updated = c.desc.SetID(updated, id)
		c.records[i] = updated
		c.persistLocked(ctx)
		return true, nil
	}
	return false, nil
}

// Delete removes the record with the given identifier and persists. Returns
// false when the identifier is unknown. Identifiers are never reused.
func (c *Collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.loadLocked(ctx); err != nil {
		return false, err
	}

	for i, record := range c.records {
		if c.desc.ID(record) != id {
			continue
		}
		c.records = append(c.records[:i], c.records[i+1:]...)
		c.persistLocked(ctx)
		return true, nil
	}
	return false, nil
}

// persistLocked serializes the full collection to the kv store. Write
// failures are logged, not surfaced; the in-memory state stays authoritative
// for the rest of the process lifetime.
func (c *Collection[T]) persistLocked(ctx context.Context) {
	data, err := json.Marshal(c.records)
	if err != nil {
		c.logger.Error("serialize collection failed",
			zap.String("key", c.desc.Key), zap.Error(err))
		return
	}
	if err := c.kv.Set(ctx, c.desc.Key, data); err != nil {
		c.logger.Error("persist collection failed",
			zap.String("key", c.desc.Key), zap.Error(err))
	}
}

// maxID finds the highest numeric identifier present. Non-numeric
// identifiers are ignored for derivation purposes.
func (c *Collection[T]) maxID() int {
	max := 0
	for _, record := range c.records {
		if n, err := strconv.Atoi(c.desc.ID(record)); err == nil && n > max {
			max = n
		}
	}
	return max
}
