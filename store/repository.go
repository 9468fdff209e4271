// ABOUTME: Per-key repositories that decode, validate, migrate and self-heal persisted collections
// ABOUTME: Lists decode record by record; singletons decode over their defaults
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/harperreed/callbook/backing"
)

// decodeStats reports what a decode had to fix.
type decodeStats struct {
	migrated int
	dropped  int
	rejects  []rejectedRecord
}

// rejectedRecord is a list element that could not be decoded and was dropped.
type rejectedRecord struct {
	index  int
	raw    string
	reason string
}

func (s decodeStats) rewrite() bool {
	return s.migrated > 0 || s.dropped > 0
}

// errShape marks a value that parsed as JSON but has the wrong top-level shape.
var errShape = errors.New("unexpected shape")

// repository owns one storage key.
type repository[T any] struct {
	key string

	// open is the first byte a valid value must start with.
	open byte

	decode   func(raw []byte) (T, decodeStats, error)
	encode   func(T) ([]byte, error)
	defaults func() T

	// persistDefault writes the default back when the key is absent, reset or
	// holds an empty list, so seeded records keep stable ids.
	persistDefault bool
	empty          func(T) bool
}

func newListRepository[E any](key string, migrate func(*E) bool, seed func() []E) *repository[[]E] {
	r := &repository[[]E]{
		key:  key,
		open: '[',
		decode: func(raw []byte) ([]E, decodeStats, error) {
			return decodeList(raw, migrate)
		},
		encode: func(v []E) ([]byte, error) {
			if v == nil {
				v = []E{}
			}
			return json.Marshal(v)
		},
		defaults: func() []E { return []E{} },
	}
	if seed != nil {
		r.defaults = seed
		r.persistDefault = true
		r.empty = func(v []E) bool { return len(v) == 0 }
	}
	return r
}

func newObjectRepository[T any](key string, defaults func() T) *repository[T] {
	return &repository[T]{
		key:  key,
		open: '{',
		decode: func(raw []byte) (T, decodeStats, error) {
			return decodeObject(raw, defaults)
		},
		encode:   func(v T) ([]byte, error) { return json.Marshal(v) },
		defaults: defaults,
	}
}

func decodeList[E any](raw []byte, migrate func(*E) bool) ([]E, decodeStats, error) {
	var stats decodeStats
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, stats, fmt.Errorf("%w: want array: %v", errShape, err)
	}

	out := make([]E, 0, len(records))
	for i, rec := range records {
		if bytes.Equal(bytes.TrimSpace(rec), []byte("null")) {
			stats.dropped++
			continue
		}
		var e E
		if err := json.Unmarshal(rec, &e); err != nil {
			stats.dropped++
			stats.rejects = append(stats.rejects, rejectedRecord{index: i, raw: string(rec), reason: err.Error()})
			continue
		}
		if migrate != nil && migrate(&e) {
			stats.migrated++
		}
		out = append(out, e)
	}
	return out, stats, nil
}

func decodeObject[T any](raw []byte, defaults func() T) (T, decodeStats, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil || probe == nil {
		var zero T
		return zero, decodeStats{}, fmt.Errorf("%w: want object", errShape)
	}
	value := defaults()
	if err := json.Unmarshal(raw, &value); err != nil {
		var zero T
		return zero, decodeStats{}, err
	}
	return value, decodeStats{}, nil
}

// load reads and decodes the key. Corrupt values are removed and replaced by
// the default, and seeded lists are seeded again when they decode empty.
// Only a failing backing read is returned as an error.
func (r *repository[T]) load(ctx context.Context, b backing.Store, logger *log.Logger) (T, error) {
	raw, err := b.Get(ctx, r.key)
	if errors.Is(err, backing.ErrNotFound) {
		return r.fallback(ctx, b, logger), nil
	}
	if err != nil {
		return r.defaults(), fmt.Errorf("read %s: %w", r.key, err)
	}

	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 {
		return r.fallback(ctx, b, logger), nil
	}
	if trimmed[0] != r.open {
		r.heal(ctx, b, logger, fmt.Sprintf("value starts with %q", trimmed[0]))
		return r.fallback(ctx, b, logger), nil
	}

	value, stats, err := r.decode(trimmed)
	if err != nil {
		r.heal(ctx, b, logger, err.Error())
		return r.fallback(ctx, b, logger), nil
	}
	for _, rej := range stats.rejects {
		logger.Warn("dropped undecodable record", "key", r.key, "index", rej.index, "record", rej.raw, "reason", rej.reason)
	}
	if r.persistDefault && r.empty != nil && r.empty(value) {
		return r.fallback(ctx, b, logger), nil
	}

	if stats.rewrite() {
		if err := r.save(ctx, b, value); err != nil {
			logger.Warn("migration write-back failed", "key", r.key, "reason", err)
		} else {
			logger.Info("migrated records", "key", r.key, "migrated", stats.migrated, "dropped", stats.dropped)
		}
	}
	return value, nil
}

func (r *repository[T]) save(ctx context.Context, b backing.Store, value T) error {
	data, err := r.encode(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.key, err)
	}
	return b.Set(ctx, r.key, string(data))
}

func (r *repository[T]) heal(ctx context.Context, b backing.Store, logger *log.Logger, reason string) {
	logger.Warn("corrupt value reset", "key", r.key, "reason", reason)
	if err := b.Remove(ctx, r.key); err != nil && !errors.Is(err, backing.ErrNotFound) {
		logger.Warn("remove corrupt value failed", "key", r.key, "reason", err)
	}
}

func (r *repository[T]) fallback(ctx context.Context, b backing.Store, logger *log.Logger) T {
	value := r.defaults()
	if r.persistDefault {
		if err := r.save(ctx, b, value); err != nil {
			logger.Warn("seed write failed", "key", r.key, "reason", err)
		}
	}
	return value
}
