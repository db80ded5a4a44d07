package embedding

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/resumatch/internal/domain"
	"github.com/kailas-cloud/resumatch/internal/domain/vector"
)

// DefaultLoadTimeout bounds one model load attempt.
const DefaultLoadTimeout = 30 * time.Second

// Loader builds the embedding model. It is called lazily by Init and again
// after a failed attempt.
type Loader func(ctx context.Context) (domain.Embedder, error)

// Observer receives cache and model lifecycle events. Implementations must be
// safe for concurrent use.
type Observer interface {
	CacheHit()
	CacheMiss()
	CacheEvicted()
	CacheSize(n int)
	ModelLoaded(err error)
}

type nopObserver struct{}

func (nopObserver) CacheHit()         {}
func (nopObserver) CacheMiss()        {}
func (nopObserver) CacheEvicted()     {}
func (nopObserver) CacheSize(int)     {}
func (nopObserver) ModelLoaded(error) {}

// Provider turns text into unit-length vectors through a lazily loaded model
// and a bounded LRU cache.
type Provider struct {
	load        Loader
	loadTimeout time.Duration
	cache       *LRU[[]float32]
	observer    Observer
	logger      *zap.Logger

	loads singleflight.Group
	mu    sync.RWMutex
	model domain.Embedder
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithCacheSize overrides DefaultCacheSize.
func WithCacheSize(n int) ProviderOption {
	return func(p *Provider) { p.cache = NewLRU[[]float32](n) }
}

// WithLoadTimeout overrides DefaultLoadTimeout.
func WithLoadTimeout(d time.Duration) ProviderOption {
	return func(p *Provider) {
		if d > 0 {
			p.loadTimeout = d
		}
	}
}

// WithObserver attaches a metrics observer.
func WithObserver(o Observer) ProviderOption {
	return func(p *Provider) {
		if o != nil {
			p.observer = o
		}
	}
}

// NewProvider creates a provider. The model is not loaded until Init or the
// first Embed call.
func NewProvider(load Loader, logger *zap.Logger, opts ...ProviderOption) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Provider{
		load:        load,
		loadTimeout: DefaultLoadTimeout,
		cache:       NewLRU[[]float32](DefaultCacheSize),
		observer:    nopObserver{},
		logger:      logger,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Init loads the model once. Concurrent callers share the in-flight load and
// stop waiting when their own context ends. A failed load is not remembered
// across requests.
func (p *Provider) Init(ctx context.Context) error {
	_, err := p.ensureModel(ctx)
	return err
}

func (p *Provider) loaded() domain.Embedder {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.model
}

func (p *Provider) ensureModel(ctx context.Context) (domain.Embedder, error) {
	if m := p.loaded(); m != nil {
		return m, nil
	}
	if p.load == nil {
		return nil, fmt.Errorf("no embedding model configured: %w", domain.ErrModelNotLoaded)
	}
	usage := domain.UsageFromContext(ctx)
	if err := usage.LoadFailure(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load embedding model: %w: %w", domain.ErrModelNotLoaded, err)
	}

	// the load outlives a cancelled caller so that other waiters still get the model
	ch := p.loads.DoChan("model", func() (any, error) {
		return p.loadModel(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("wait for embedding model: %w: %w", domain.ErrModelNotLoaded, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			usage.RecordLoadFailure(res.Err)
			return nil, res.Err
		}
		return res.Val.(domain.Embedder), nil
	}
}

func (p *Provider) loadModel(ctx context.Context) (domain.Embedder, error) {
	if m := p.loaded(); m != nil {
		return m, nil
	}
	ctx, cancel := context.WithTimeout(ctx, p.loadTimeout)
	defer cancel()

	m, err := p.load(ctx)
	p.observer.ModelLoaded(err)
	if err != nil {
		p.logger.Warn("Embedding model load failed", zap.Error(err))
		return nil, fmt.Errorf("load embedding model: %w: %w", domain.ErrModelNotLoaded, err)
	}

	p.mu.Lock()
	p.model = m
	p.mu.Unlock()
	p.logger.Info("Embedding model loaded")
	return m, nil
}

// Embed returns the normalized vector for text, from cache when possible.
func (p *Provider) Embed(ctx context.Context, text string) ([]float32, error) {
	if v, ok := p.cache.Get(text); ok {
		p.observer.CacheHit()
		return slices.Clone(v), nil
	}
	p.observer.CacheMiss()

	model, err := p.ensureModel(ctx)
	if err != nil {
		return nil, err
	}
	res, err := model.Embed(ctx, text)
	if err != nil {
		return nil, providerError(err)
	}

	v := vector.Normalize(slices.Clone(res.Embedding))
	p.store(text, v)
	return slices.Clone(v), nil
}

// EmbedBatch embeds texts with a single model call for all cache misses.
// The result is aligned with texts.
func (p *Provider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	pending := make(map[string][]int)
	var misses []string

	for i, t := range texts {
		if v, ok := p.cache.Get(t); ok {
			p.observer.CacheHit()
			out[i] = slices.Clone(v)
			continue
		}
		if _, seen := pending[t]; !seen {
			p.observer.CacheMiss()
			misses = append(misses, t)
		}
		pending[t] = append(pending[t], i)
	}
	if len(misses) == 0 {
		return out, nil
	}

	model, err := p.ensureModel(ctx)
	if err != nil {
		return nil, err
	}
	res, err := domain.BatchEmbedWith(ctx, model, misses)
	if err != nil {
		return nil, providerError(err)
	}
	if len(res.Embeddings) != len(misses) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts",
			domain.ErrEmbeddingProviderError, len(res.Embeddings), len(misses))
	}

	for j, t := range misses {
		v := vector.Normalize(slices.Clone(res.Embeddings[j]))
		p.store(t, v)
		for _, i := range pending[t] {
			out[i] = slices.Clone(v)
		}
	}
	return out, nil
}

// Similarity returns the cosine similarity of two normalized vectors.
func (p *Provider) Similarity(a, b []float32) (float64, error) {
	s, err := vector.Dot(a, b)
	if err != nil {
		return 0, fmt.Errorf("similarity: %w", err)
	}
	return s, nil
}

// HealthCheck loads the model if needed and probes it when supported.
func (p *Provider) HealthCheck(ctx context.Context) error {
	model, err := p.ensureModel(ctx)
	if err != nil {
		return err
	}
	if hc, ok := model.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return providerError(err)
		}
	}
	return nil
}

func (p *Provider) store(text string, v []float32) {
	if p.cache.Put(text, v) {
		p.observer.CacheEvicted()
	}
	p.observer.CacheSize(p.cache.Len())
}

func providerError(err error) error {
	if errors.Is(err, domain.ErrEmbeddingProviderError) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrEmbeddingProviderError, err)
}
