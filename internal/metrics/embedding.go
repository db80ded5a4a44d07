package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "resumatch"

// Embedding Prometheus metrics.
var (
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding model requests",
		},
		[]string{"provider", "model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding model request duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)

	EmbeddingTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "embedding_tokens_total",
			Help:      "Total embedding tokens consumed",
		},
		[]string{"provider", "model", "type"},
	)

	EmbeddingErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "embedding_errors_total",
			Help:      "Total embedding errors",
		},
		[]string{"provider", "model", "error_type"},
	)

	EmbeddingModelLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "embedding_model_loads_total",
			Help:      "Embedding model load attempts",
		},
		[]string{"status"},
	)

	// EmbeddingCacheTotal counts lookups in the in-process LRU.
	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "embedding_cache_total",
			Help:      "In-process embedding cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	EmbeddingCacheEvictionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "embedding_cache_evictions_total",
			Help:      "Entries evicted from the in-process embedding cache",
		},
	)

	EmbeddingCacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "embedding_cache_size",
			Help:      "Entries currently held by the in-process embedding cache",
		},
	)

	// EmbeddingStoreCacheTotal counts lookups in the persistent second-level cache.
	EmbeddingStoreCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "embedding_store_cache_total",
			Help:      "Persistent embedding cache hits and misses",
		},
		[]string{"result"},
	)
)

// EmbeddingObserver reports embedding provider events to the default collectors.
type EmbeddingObserver struct{}

func (EmbeddingObserver) CacheHit()     { EmbeddingCacheTotal.WithLabelValues("hit").Inc() }
func (EmbeddingObserver) CacheMiss()    { EmbeddingCacheTotal.WithLabelValues("miss").Inc() }
func (EmbeddingObserver) CacheEvicted() { EmbeddingCacheEvictionsTotal.Inc() }
func (EmbeddingObserver) CacheSize(n int) {
	EmbeddingCacheSize.Set(float64(n))
}

func (EmbeddingObserver) ModelLoaded(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	EmbeddingModelLoadsTotal.WithLabelValues(status).Inc()
}
