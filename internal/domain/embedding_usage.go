package domain

import (
	"context"
	"sync"
	"sync/atomic"
)

type embeddingUsageKey struct{}

// EmbeddingUsage collects model token usage for one request.
// The handler installs it, the embedder chain adds to it, the handler reports it.
// It also remembers a failed model load so the rest of the request skips retrying.
type EmbeddingUsage struct {
	tokens atomic.Int64
	calls  atomic.Int64

	mu      sync.Mutex
	loadErr error
}

// NewContextWithUsage returns a context carrying a fresh usage collector.
func NewContextWithUsage(ctx context.Context) (context.Context, *EmbeddingUsage) {
	u := &EmbeddingUsage{}
	return context.WithValue(ctx, embeddingUsageKey{}, u), u
}

// UsageFromContext extracts the usage collector. Returns nil if not set.
func UsageFromContext(ctx context.Context) *EmbeddingUsage {
	u, _ := ctx.Value(embeddingUsageKey{}).(*EmbeddingUsage)
	return u
}

// Add records one model call. Safe on a nil receiver.
func (u *EmbeddingUsage) Add(tokens int) {
	if u == nil {
		return
	}
	u.tokens.Add(int64(tokens))
	u.calls.Add(1)
}

// Tokens returns the tokens consumed so far.
func (u *EmbeddingUsage) Tokens() int64 {
	if u == nil {
		return 0
	}
	return u.tokens.Load()
}

// Calls returns the number of model calls made so far.
func (u *EmbeddingUsage) Calls() int64 {
	if u == nil {
		return 0
	}
	return u.calls.Load()
}

// RecordLoadFailure remembers a failed model load. Safe on a nil receiver.
func (u *EmbeddingUsage) RecordLoadFailure(err error) {
	if u == nil || err == nil {
		return
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.loadErr == nil {
		u.loadErr = err
	}
}

// LoadFailure returns the first failed model load of the request, or nil.
func (u *EmbeddingUsage) LoadFailure() error {
	if u == nil {
		return nil
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.loadErr
}
