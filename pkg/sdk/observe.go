package resumatch

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "resumatch"

// sdkMetrics holds prometheus metrics registered for the SDK.
type sdkMetrics struct {
	analyses     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	degradations *prometheus.CounterVec
	cache        *prometheus.CounterVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "sdk",
			Name:      "analyses_total",
			Help:      "Total SDK analyses by status.",
		}, []string{"status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "sdk",
			Name:      "analysis_duration_seconds",
			Help:      "SDK analysis duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
		degradations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "sdk",
			Name:      "degradations_total",
			Help:      "Analysis components that fell back to their degraded path.",
		}, []string{"component"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "sdk",
			Name:      "embedding_cache_total",
			Help:      "Embedding cache lookups by result.",
		}, []string{"result"}),
	}
	if err := registerOrReuse(reg, &m.analyses); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.degradations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.cache); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector or reuses an existing one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("resumatch: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("resumatch: register metric: %w", err)
	}
	return nil
}

// observer receives analysis and embedding cache events from the pipeline.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	var m *sdkMetrics
	if reg != nil {
		var err error
		m, err = newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
	}
	return &observer{logger: logger, metrics: m}, nil
}

func (o *observer) Degraded(component string) {
	if o.metrics != nil {
		o.metrics.degradations.WithLabelValues(component).Inc()
	}
	if o.logger != nil {
		o.logger.Warn("analysis degraded", "component", component)
	}
}

func (o *observer) Completed(_ string, elapsed time.Duration, ats, match int, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	if o.metrics != nil {
		o.metrics.analyses.WithLabelValues(status).Inc()
		o.metrics.duration.WithLabelValues(status).Observe(elapsed.Seconds())
	}
	if o.logger == nil {
		return
	}
	if err != nil {
		o.logger.Warn("analysis failed", "duration", elapsed, "error", err)
		return
	}
	o.logger.Debug("analysis completed", "duration", elapsed, "ats_score", ats, "match_score", match)
}

func (o *observer) CacheHit()     { o.incCache("hit") }
func (o *observer) CacheMiss()    { o.incCache("miss") }
func (o *observer) CacheEvicted() { o.incCache("evicted") }
func (o *observer) CacheSize(int) {}

func (o *observer) ModelLoaded(err error) {
	if err != nil && o.logger != nil {
		o.logger.Warn("embedding model not loaded", "error", err)
	}
}

func (o *observer) incCache(result string) {
	if o.metrics != nil {
		o.metrics.cache.WithLabelValues(result).Inc()
	}
}
