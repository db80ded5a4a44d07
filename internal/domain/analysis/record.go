package analysis

import "time"

// Backend names the strategy that produced a result.
type Backend string

// Analysis backends.
const (
	BackendLocal  Backend = "local"
	BackendHosted Backend = "hosted"
)

// Valid reports whether b names a known backend.
func (b Backend) Valid() bool {
	return b == BackendLocal || b == BackendHosted
}

// Request is one resume to analyze, optionally against a job description.
type Request struct {
	ResumeID       string
	ResumeText     string
	JobDescription string
}

// Record is a persisted result keyed by the originating resume.
type Record struct {
	ID         string    `json:"id"`
	ResumeID   string    `json:"resume_id"`
	Backend    Backend   `json:"backend"`
	AnalyzedAt time.Time `json:"analyzed_at"`
	Analysis   Result    `json:"analysis"`
}
