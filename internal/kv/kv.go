// Package kv provides a small JSON key-value store with pluggable backends.
//
// Reads never fail: a missing key, a backend error or a value that does not
// decode yields the caller's default. Writes are best-effort and report
// problems through the logger only.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ErrNotFound is returned by backends when a key has no value.
var ErrNotFound = errors.New("key not found")

// Backend stores raw values by key.
type Backend interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
}

// Store serializes values as JSON on top of a Backend.
type Store struct {
	backend Backend
	logger  zerolog.Logger
}

// Option customizes a Store.
type Option func(*Store)

// WithLogger routes read and write failures to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New wraps backend in a Store.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{backend: backend, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get reads key and decodes it into a T. It returns def when the key is
// absent, the backend fails or the stored value is not valid JSON for T.
func Get[T any](ctx context.Context, s *Store, key string, def T) T {
	raw, err := s.backend.Read(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn().Err(err).Str("key", key).Msg("kv read failed, using default")
		}
		return def
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("kv value is not valid JSON, using default")
		return def
	}
	return value
}

// Set encodes value as JSON and writes it under key, replacing any previous
// value. Failures leave the stored value unchanged and are only logged.
func (s *Store) Set(ctx context.Context, key string, value any) {
	if err := s.set(ctx, key, value); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("kv write dropped")
	}
}

func (s *Store) set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value: %w", err)
	}
	if err := s.backend.Write(ctx, key, raw); err != nil {
		return fmt.Errorf("write value: %w", err)
	}
	return nil
}

// Collection is a typed view over a single key holding a JSON array.
type Collection[T any] struct {
	store *Store
	key   string
}

// NewCollection binds key in store to a list of T.
func NewCollection[T any](store *Store, key string) *Collection[T] {
	return &Collection[T]{store: store, key: key}
}

// Load returns the stored list, or an empty list when nothing usable is stored.
func (c *Collection[T]) Load(ctx context.Context) []T {
	items := Get(ctx, c.store, c.key, []T{})
	if items == nil {
		// a stored JSON null decodes to a nil slice
		return []T{}
	}
	return items
}

// Save replaces the stored list with items.
func (c *Collection[T]) Save(ctx context.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	c.store.Set(ctx, c.key, items)
}
