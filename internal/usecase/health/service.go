package health

import (
	"context"
	"sync"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure; analyses still run, possibly on fallback paths.
	Degraded Status = "degraded"
	// Unhealthy indicates every configured component failed.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names used as check keys.
const (
	ComponentDatabase  = "database"
	ComponentEmbedding = "embedding"
	ComponentLLM       = "llm"
)

// DefaultCheckTimeout bounds each probe.
const DefaultCheckTimeout = 3 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	probes  map[string]func(context.Context) error
	timeout time.Duration
}

// New creates a Service. Any argument may be nil, in which case its check is omitted.
func New(db DBPinger, embedding, llm Checker) *Service {
	s := &Service{
		probes:  make(map[string]func(context.Context) error),
		timeout: DefaultCheckTimeout,
	}
	if db != nil {
		s.probes[ComponentDatabase] = db.Ping
	}
	if embedding != nil {
		s.probes[ComponentEmbedding] = embedding.HealthCheck
	}
	if llm != nil {
		s.probes[ComponentLLM] = llm.HealthCheck
	}
	return s
}

// Check runs all probes concurrently, each under DefaultCheckTimeout.
func (s *Service) Check(ctx context.Context) Report {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		checks = make(map[string]CheckResult, len(s.probes))
	)

	for name, probe := range s.probes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pctx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			res := CheckOK
			if err := probe(pctx); err != nil {
				res = CheckError
			}
			mu.Lock()
			checks[name] = res
			mu.Unlock()
		}()
	}
	wg.Wait()

	return Report{Status: aggregate(checks), Checks: checks}
}

func aggregate(checks map[string]CheckResult) Status {
	failed := 0
	for _, v := range checks {
		if v == CheckError {
			failed++
		}
	}
	switch {
	case failed == 0:
		return Healthy
	case failed == len(checks):
		return Unhealthy
	default:
		return Degraded
	}
}
