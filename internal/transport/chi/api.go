package chi

import (
	domana "github.com/kailas-cloud/resumatch/internal/domain/analysis"
)

// ErrorCode is a machine-readable error class.
type ErrorCode string

// Error codes returned in ErrorResponse.
const (
	CodeBadRequest         ErrorCode = "bad_request"
	CodeUnauthorized       ErrorCode = "unauthorized"
	CodeNotFound           ErrorCode = "not_found"
	CodeRateLimited        ErrorCode = "rate_limited"
	CodeInvalidCredential  ErrorCode = "invalid_credential"
	CodeBackendUnavailable ErrorCode = "backend_unavailable"
	CodeUpstreamFailure    ErrorCode = "upstream_failure"
	CodeInternalError      ErrorCode = "internal_error"
)

// AnalyzeRequest is the body of both analysis endpoints.
type AnalyzeRequest struct {
	ResumeID       string `json:"resumeId"`
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

// AnalyzeResponse wraps a successful analysis.
type AnalyzeResponse struct {
	Success  bool           `json:"success"`
	Backend  domana.Backend `json:"backend"`
	RecordID string         `json:"recordId,omitempty"`
	Analysis domana.Result  `json:"analysis"`
}

// StatusResponse is the GET /v1/analyses/{resumeId}/status payload.
type StatusResponse struct {
	ResumeID string `json:"resumeId"`
	Status   string `json:"status"`
}

// ErrorResponse is returned for every non-2xx status.
type ErrorResponse struct {
	Error string    `json:"error"`
	Code  ErrorCode `json:"code"`
}

// HealthResponse is the GET /health payload.
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}
