// Package hosted analyzes resumes with a hosted large language model.
package hosted

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/resumatch/internal/domain"
	domana "github.com/kailas-cloud/resumatch/internal/domain/analysis"
)

type nopObserver struct{}

func (nopObserver) Requested(string, string, time.Duration, error)   {}
func (nopObserver) Completed(string, time.Duration, int, int, error) {}

// Service is the hosted analysis backend.
type Service struct {
	generator Generator
	observer  Observer
	logger    *zap.Logger
	timeout   time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithTimeout bounds each model request. Zero leaves the caller's deadline alone.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// New creates a hosted analysis service. observer may be nil.
func New(generator Generator, observer Observer, logger *zap.Logger, opts ...Option) *Service {
	if observer == nil {
		observer = nopObserver{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{generator: generator, observer: observer, logger: logger}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Analyze asks the model for a full analysis. Rate limits, rejected
// credentials and malformed output are returned as their domain sentinels.
func (s *Service) Analyze(ctx context.Context, resumeText, jobDescription string) (domana.Result, error) {
	start := time.Now()
	res, err := s.analyze(ctx, resumeText, jobDescription)
	s.observer.Completed(string(domana.BackendHosted), time.Since(start), res.ATSScore, res.MatchScore, err)
	return res, err
}

func (s *Service) analyze(ctx context.Context, resumeText, jobDescription string) (domana.Result, error) {
	if strings.TrimSpace(resumeText) == "" {
		return domana.Result{}, fmt.Errorf("resume text is empty: %w", domain.ErrInvalidInput)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	provider, model := s.generator.Provider(), s.generator.Model()
	start := time.Now()
	text, err := s.generator.Generate(ctx, BuildPrompt(resumeText, jobDescription))
	s.observer.Requested(provider, model, time.Since(start), err)
	if err != nil {
		s.logger.Error("Hosted model request failed",
			zap.String("provider", provider),
			zap.String("model", model),
			zap.Error(err),
		)
		return domana.Result{}, fmt.Errorf("generate analysis: %w", err)
	}

	res, err := ParseResult(text)
	if err != nil {
		s.logger.Error("Hosted model returned malformed output",
			zap.String("provider", provider),
			zap.Int("length", len(text)),
			zap.Error(err),
		)
		return domana.Result{}, err
	}

	s.logger.Debug("Hosted analysis complete",
		zap.String("provider", provider),
		zap.Int("ats_score", res.ATSScore),
		zap.Int("match_score", res.MatchScore),
	)
	return res, nil
}
