package cache

import (
	"context"
	"time"

	"github.com/realtysync/provider-sync/internal/adapter"
	"github.com/realtysync/provider-sync/internal/store/schema"
)

// KeyValueStore is the subset of the relational store backing the cache
type KeyValueStore interface {
	SetKeyValue(ctx context.Context, key string, value string, expiresAt *time.Time) error
	GetKeyValue(ctx context.Context, key string) (*schema.KeyValueStore, error)
	DeleteKeyValue(ctx context.Context, key string) error
}

type storeCache struct {
	store KeyValueStore
	clock adapter.Clock
}

// NewStore creates a cache backed by the key_value_store table.
// Expired rows are treated as absent and removed lazily on read.
func NewStore(store KeyValueStore, clock adapter.Clock) Cache {
	return &storeCache{store: store, clock: clock}
}

func (c *storeCache) Get(ctx context.Context, key string) (string, bool, error) {
	kv, err := c.store.GetKeyValue(ctx, key)
	if err != nil {
		return "", false, err
	}
	if kv == nil {
		return "", false, nil
	}
	if kv.Expired(c.clock.Now()) {
		_ = c.store.DeleteKeyValue(ctx, key)
		return "", false, nil
	}
	return kv.Value, true, nil
}

func (c *storeCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	var expiresAt *time.Time
	if ttl > 0 {
		t := c.clock.Now().Add(ttl)
		expiresAt = &t
	}
	return c.store.SetKeyValue(ctx, key, value, expiresAt)
}

func (c *storeCache) Delete(ctx context.Context, key string) error {
	return c.store.DeleteKeyValue(ctx, key)
}
