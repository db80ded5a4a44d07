package hosted

import (
	"context"
	"time"
)

// Prompt is one request to a hosted model.
type Prompt struct {
	System string
	User   string
}

// Generator produces text from a hosted large language model. Implementations
// map HTTP failures with domain.ClassifyUpstreamStatus.
type Generator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
	Provider() string
	Model() string
}

// Observer receives hosted analysis events for metrics.
type Observer interface {
	Requested(provider, model string, elapsed time.Duration, err error)
	Completed(backend string, elapsed time.Duration, ats, match int, err error)
}
