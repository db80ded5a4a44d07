package db

import (
	"context"
	"time"
)

// Pinger checks backend connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVItem is a single key/value pair written by SetMulti.
type KVItem struct {
	Key   string
	Value []byte
	TTL   time.Duration
}

// KVStore is a plain key/value store.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// SetMulti writes all items in one round trip. Items with zero TTL never expire.
	SetMulti(ctx context.Context, items []KVItem) error
	Del(ctx context.Context, key string) error
}

// Store is the storage backend used for the embedding cache and analysis records.
type Store interface {
	Pinger
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}
