// Package retriever answers semantic queries against the postings collection.
package retriever

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/careerlens/careerlens/internal/db"
	"github.com/careerlens/careerlens/internal/domain"
	"github.com/careerlens/careerlens/internal/encoder"
	"github.com/careerlens/careerlens/internal/repository/index"
)

// searcher is the consumer interface for the collection repository (ISP).
type searcher interface {
	Query(ctx context.Context, vector []float32, k int) ([]index.Match, error)
	Count(ctx context.Context) (int, error)
}

// Service retrieves postings ranked by vector similarity.
type Service struct {
	repo     searcher
	embedder domain.Embedder
	logger   *zap.Logger
}

// New creates a Service.
func New(repo searcher, embedder domain.Embedder, logger *zap.Logger) *Service {
	return &Service{repo: repo, embedder: embedder, logger: logger}
}

// SearchRelevantJobs embeds the query and returns up to n matches ordered by
// descending similarity, ranks starting at 1. An empty or uninitialized
// collection fails with domain.ErrInvalidQuery. Blank query text is still
// embedded and searched; the embedding provider decides what an empty string
// means.
func (s *Service) SearchRelevantJobs(ctx context.Context, query string, n int) ([]domain.JobMatch, error) {
	if n <= 0 {
		return nil, fmt.Errorf("non-positive result count %d: %w", n, domain.ErrInvalidQuery)
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return nil, fmt.Errorf("collection not initialized: %w", domain.ErrInvalidQuery)
		}
		return nil, fmt.Errorf("count postings: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("collection is empty: %w", domain.ErrInvalidQuery)
	}

	result, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.repo.Query(ctx, result.Embedding, n)
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return nil, fmt.Errorf("collection not initialized: %w", domain.ErrInvalidQuery)
		}
		return nil, fmt.Errorf("knn search: %w", err)
	}

	matches := make([]domain.JobMatch, len(hits))
	for i, hit := range hits {
		matches[i] = encoder.MatchFromFields(hit.Fields, hit.Score, i+1)
	}

	s.logger.Debug("Retrieved job matches",
		zap.Int("requested", n),
		zap.Int("returned", len(matches)))
	return matches, nil
}
