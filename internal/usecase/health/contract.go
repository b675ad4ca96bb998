package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// IndexCounter reports how many postings the vector index holds.
type IndexCounter interface {
	Count(ctx context.Context) (int, error)
}
