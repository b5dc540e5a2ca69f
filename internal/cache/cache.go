// Package cache provides the TTL key/value store used for alert fingerprints
// and quiet-hours counters. Redis is used when configured; otherwise entries
// live in the Postgres key_value_store table.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Cache is a key/value store with per-entry expiry
//
//go:generate mockgen -source=cache.go -destination=../mocks/cache.go -package=mocks -mock_names=Cache=MockCache
type Cache interface {
	// Get returns the value and whether it was present and unexpired
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key; a zero ttl never expires
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
}

// GetJSON decodes the JSON value stored under key into a new T.
// Returns nil when the key is absent.
func GetJSON[T any](ctx context.Context, c Cache, key string) (*T, error) {
	raw, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return nil, err
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("failed to decode cached value %s: %w", key, err)
	}
	return &v, nil
}

// SetJSON encodes v as JSON and stores it under key
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode cached value %s: %w", key, err)
	}
	return c.Set(ctx, key, string(raw), ttl)
}
