package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Analysis Prometheus metrics.
var (
	AnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Resume analyses by backend and outcome",
		},
		[]string{"backend", "status"},
	)

	AnalysisDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Resume analysis duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"backend"},
	)

	DegradationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "degradations_total",
			Help:      "Analysis components that fell back to their degraded path",
		},
		[]string{"component"},
	)

	ATSScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ats_score",
			Help:      "Distribution of final ATS scores",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		},
	)

	MatchScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_score",
			Help:      "Distribution of job-fit match scores",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		},
	)

	LLMRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_requests_total",
			Help:      "Hosted model requests by provider and outcome",
		},
		[]string{"provider", "model", "status"},
	)

	LLMRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_request_duration_seconds",
			Help:      "Hosted model request duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 80},
		},
		[]string{"provider", "model"},
	)
)

var registerOnce sync.Once

// Register registers the HTTP, embedding and analysis metrics with the default registry.
// Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestDuration,
			httpRequestsTotal,
			httpRequestsInFlight,
			EmbeddingRequestsTotal,
			EmbeddingRequestDuration,
			EmbeddingTokensTotal,
			EmbeddingErrorsTotal,
			EmbeddingModelLoadsTotal,
			EmbeddingCacheTotal,
			EmbeddingCacheEvictionsTotal,
			EmbeddingCacheSize,
			EmbeddingStoreCacheTotal,
			AnalysesTotal,
			AnalysisDuration,
			DegradationsTotal,
			ATSScore,
			MatchScore,
			LLMRequestsTotal,
			LLMRequestDuration,
		)
	})
}

// AnalysisObserver reports analysis events to the default collectors.
type AnalysisObserver struct{}

// Degraded counts a component that fell back to its degraded path.
func (AnalysisObserver) Degraded(component string) {
	DegradationsTotal.WithLabelValues(component).Inc()
}

// Completed records one finished analysis.
func (AnalysisObserver) Completed(backend string, elapsed time.Duration, ats, match int, err error) {
	AnalysisDuration.WithLabelValues(backend).Observe(elapsed.Seconds())
	if err != nil {
		AnalysesTotal.WithLabelValues(backend, "error").Inc()
		return
	}
	AnalysesTotal.WithLabelValues(backend, "success").Inc()
	ATSScore.Observe(float64(ats))
	MatchScore.Observe(float64(match))
}

// LLMObserver reports hosted model calls to the default collectors.
type LLMObserver struct{}

// Requested records one hosted model call.
func (LLMObserver) Requested(provider, model string, elapsed time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	LLMRequestsTotal.WithLabelValues(provider, model, status).Inc()
	LLMRequestDuration.WithLabelValues(provider, model).Observe(elapsed.Seconds())
}
