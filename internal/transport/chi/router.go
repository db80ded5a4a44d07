package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/resumatch/internal/metrics"
)

// RouterOptions configure the middleware stack.
type RouterOptions struct {
	APIKeys      []string
	MaxBodyBytes int64
	Logger       *zap.Logger
	// MetricsHandler serves GET /metrics; nil uses the default registry.
	MetricsHandler http.Handler
}

// NewRouter mounts the API routes with recovery, request ids, logging, CORS, auth and metrics.
func NewRouter(s *Server, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metricsHandler := opts.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(corsMiddleware)
	r.Use(BearerAuthMiddleware(opts.APIKeys))
	r.Use(metrics.Middleware())
	if opts.MaxBodyBytes > 0 {
		r.Use(chiMiddleware.RequestSize(opts.MaxBodyBytes))
	}

	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", metricsHandler)
	r.Post("/analyze-resume", s.AnalyzeResume)
	r.Post("/v1/analyses", s.CreateAnalysis)
	r.Get("/v1/analyses/{resumeId}", s.GetAnalysis)
	r.Get("/v1/analyses/{resumeId}/status", s.GetAnalysisStatus)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed")
	})
	return r
}
