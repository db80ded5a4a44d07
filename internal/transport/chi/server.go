package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"

	"github.com/kailas-cloud/resumatch/internal/domain"
	domana "github.com/kailas-cloud/resumatch/internal/domain/analysis"
	logpkg "github.com/kailas-cloud/resumatch/internal/logger"
	healthuc "github.com/kailas-cloud/resumatch/internal/usecase/health"
	"github.com/kailas-cloud/resumatch/internal/version"
)

// maxResumeIDLen bounds the identifier that becomes part of a storage key.
const maxResumeIDLen = 128

// Analyzer runs one resume analysis.
type Analyzer interface {
	Analyze(ctx context.Context, resumeText, jobDescription string) (domana.Result, error)
}

// RecordStore persists analysis results.
type RecordStore interface {
	Save(ctx context.Context, resumeID string, backend domana.Backend, res domana.Result) (domana.Record, error)
	Get(ctx context.Context, resumeID string) (domana.Record, error)
	Status(ctx context.Context, resumeID string) (string, error)
}

// HealthChecker aggregates component probes.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Deps wires the server. Hosted and Records may be nil.
type Deps struct {
	Local          Analyzer
	Hosted         Analyzer
	Records        RecordStore
	Health         HealthChecker
	DefaultBackend domana.Backend
	Logger         *zap.Logger
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the analysis API.
type Server struct {
	analyzers      map[domana.Backend]Analyzer
	records        RecordStore
	health         HealthChecker
	defaultBackend domana.Backend
	logger         *zap.Logger
	errorHandlers  []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(d Deps) *Server {
	s := &Server{
		analyzers:      make(map[domana.Backend]Analyzer, 2),
		records:        d.Records,
		health:         d.Health,
		defaultBackend: d.DefaultBackend,
		logger:         d.Logger,
	}
	if s.defaultBackend == "" {
		s.defaultBackend = domana.BackendLocal
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if d.Local != nil {
		s.analyzers[domana.BackendLocal] = d.Local
	}
	if d.Hosted != nil {
		s.analyzers[domana.BackendHosted] = d.Hosted
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, CodeBadRequest,
			"resumeText is required"),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound,
			"analysis not found"),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, CodeRateLimited,
			"Rate limit exceeded. Please try again later."),
		sentinelHandler(domain.ErrInvalidCredential, http.StatusForbidden, CodeInvalidCredential,
			"Invalid API key. Please check your model provider configuration."),
		sentinelHandler(domain.ErrBackendUnavailable, http.StatusServiceUnavailable, CodeBackendUnavailable,
			"analysis backend is not configured"),
		sentinelHandler(domain.ErrMalformedResponse, http.StatusInternalServerError, CodeUpstreamFailure,
			"Failed to parse analysis results"),
		sentinelHandler(domain.ErrUpstreamFailure, http.StatusInternalServerError, CodeUpstreamFailure,
			"AI analysis failed"),
	}
	return s
}

// CreateAnalysis handles POST /v1/analyses.
func (s *Server) CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	backend := s.defaultBackend
	if err := runtime.BindQueryParameter("form", true, false, "backend", r.URL.Query(), &backend); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid backend parameter")
		return
	}
	if !backend.Valid() {
		writeError(w, http.StatusBadRequest, CodeBadRequest, fmt.Sprintf("unknown backend %q", backend))
		return
	}

	req, ok := decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}
	if req.ResumeID != "" && !validResumeID(req.ResumeID) {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid resumeId")
		return
	}

	s.analyze(w, r, backend, req)
}

// AnalyzeResume handles POST /analyze-resume on the hosted backend.
func (s *Server) AnalyzeResume(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(req.ResumeID) == "" || strings.TrimSpace(req.ResumeText) == "" {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Missing required fields: resumeId and resumeText")
		return
	}
	if !validResumeID(req.ResumeID) {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid resumeId")
		return
	}

	s.analyze(w, r, domana.BackendHosted, req)
}

// GetAnalysis handles GET /v1/analyses/{resumeId}.
func (s *Server) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	resumeID, ok := s.bindResumeID(w, r)
	if !ok {
		return
	}

	rec, err := s.records.Get(r.Context(), resumeID)
	if err != nil {
		s.handleDomainError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// GetAnalysisStatus handles GET /v1/analyses/{resumeId}/status.
func (s *Server) GetAnalysisStatus(w http.ResponseWriter, r *http.Request) {
	resumeID, ok := s.bindResumeID(w, r)
	if !ok {
		return
	}

	status, err := s.records.Status(r.Context(), resumeID)
	if err != nil {
		s.handleDomainError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{ResumeID: resumeID, Status: status})
}

// bindResumeID reads the path parameter and answers 400 or 404 itself when
// the lookup cannot proceed.
func (s *Server) bindResumeID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var resumeID string
	err := runtime.BindStyledParameterWithOptions("simple", "resumeId", chi.URLParam(r, "resumeId"), &resumeID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil || !validResumeID(resumeID) {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid resumeId")
		return "", false
	}
	if s.records == nil {
		s.handleDomainError(r.Context(), w, domain.ErrNotFound)
		return "", false
	}
	return resumeID, true
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := healthuc.Report{Status: healthuc.Healthy}
	if s.health != nil {
		report = s.health.Check(r.Context())
	}

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Version: version.Version,
		Checks:  checks,
	})
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request, backend domana.Backend, req AnalyzeRequest) {
	ctx := r.Context()

	analyzer, ok := s.analyzers[backend]
	if !ok {
		s.handleDomainError(ctx, w, fmt.Errorf("%s: %w", backend, domain.ErrBackendUnavailable))
		return
	}

	logpkg.FromContext(ctx).Info("Analyzing resume",
		zap.String("resume_id", req.ResumeID),
		zap.String("backend", string(backend)),
	)

	ctx, usage := domain.NewContextWithUsage(ctx)
	res, err := analyzer.Analyze(ctx, req.ResumeText, req.JobDescription)
	if err != nil {
		s.handleDomainError(ctx, w, err)
		return
	}
	setEmbeddingHeaders(w, usage)

	resp := AnalyzeResponse{Success: true, Backend: backend, Analysis: res}
	if req.ResumeID != "" && s.records != nil {
		rec, err := s.records.Save(ctx, req.ResumeID, backend, res)
		if err != nil {
			s.handleDomainError(ctx, w, fmt.Errorf("persist analysis: %w", err))
			return
		}
		resp.RecordID = rec.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

func setEmbeddingHeaders(w http.ResponseWriter, usage *domain.EmbeddingUsage) {
	if usage.Calls() > 0 {
		w.Header().Set("X-Embedding-Tokens", strconv.FormatInt(usage.Tokens(), 10))
	}
}

func decodeAnalyzeRequest(w http.ResponseWriter, r *http.Request) (AnalyzeRequest, bool) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return AnalyzeRequest{}, false
	}
	return req, true
}

func validResumeID(id string) bool {
	if id == "" || len(id) > maxResumeIDLen {
		return false
	}
	return !strings.ContainsFunc(id, func(r rune) bool {
		return r <= ' ' || r == '*' || r == '?' || r == '[' || r == ']'
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode, message string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, message)
		return true
	}
}

func (s *Server) handleDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	log := logpkg.FromContext(ctx)
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
