package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// Checker probes a dependency such as the embedding model or a hosted model.
type Checker interface {
	HealthCheck(ctx context.Context) error
}
