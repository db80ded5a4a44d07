package embcache

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/resumatch/internal/db"
	"github.com/kailas-cloud/resumatch/internal/domain"
)

// fakeEmbedder returns vectors derived from text length.
type fakeEmbedder struct {
	err        error
	calls      int
	batchCalls int
	lastBatch  []string
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	f.calls++
	if f.err != nil {
		return domain.EmbeddingResult{}, f.err
	}
	return domain.EmbeddingResult{Embedding: vecFor(text), PromptTokens: 3, TotalTokens: 3}, nil
}

func (f *fakeEmbedder) BatchEmbed(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	f.batchCalls++
	f.lastBatch = append([]string(nil), texts...)
	if f.err != nil {
		return domain.BatchEmbeddingResult{}, f.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = vecFor(t)
	}
	return domain.BatchEmbeddingResult{Embeddings: out, PromptTokens: 3 * len(texts), TotalTokens: 3 * len(texts)}, nil
}

func vecFor(text string) []float32 {
	return []float32{float32(len(text)), 1, 0.5}
}

// memStore is an in-memory KV store.
type memStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	items   []db.KVItem
	getErr  error
	setErr  error
	setHits int
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memStore) SetMulti(_ context.Context, items []db.KVItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setHits++
	if m.setErr != nil {
		return m.setErr
	}
	for _, it := range items {
		m.data[it.Key] = it.Value
		m.items = append(m.items, it)
	}
	return nil
}

func newTestCachedEmbedder(t *testing.T, inner *fakeEmbedder, opts ...Option) (*CachedEmbedder, *memStore) {
	t.Helper()
	ms := newMemStore()
	return New(inner, ms, nil, zap.NewNop(), opts...), ms
}
