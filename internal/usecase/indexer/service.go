// Package indexer builds the persistent postings collection: renders each
// posting into document text, embeds it, and stores metadata plus vector in
// batches.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/careerlens/careerlens/internal/domain"
	"github.com/careerlens/careerlens/internal/encoder"
	"github.com/careerlens/careerlens/internal/metrics"
	"github.com/careerlens/careerlens/internal/repository/index"
)

// repo is the consumer interface for the collection repository (ISP).
type repo interface {
	Exists(ctx context.Context) (bool, error)
	VerifyModel(ctx context.Context) error
	Create(ctx context.Context, count int) error
	InsertBatch(ctx context.Context, docs []index.Document) error
	Drop(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

// Service builds and maintains the postings collection.
type Service struct {
	repo       repo
	embedder   domain.BatchEmbedder
	collection string
	batchSize  int
	logger     *zap.Logger

	mu sync.Mutex // serializes Build; concurrent calls queue, never interleave
}

// New creates a Service.
func New(r repo, embedder domain.BatchEmbedder, collection string, batchSize int, logger *zap.Logger) *Service {
	return &Service{
		repo:       r,
		embedder:   embedder,
		collection: collection,
		batchSize:  batchSize,
		logger:     logger,
	}
}

// Build creates the collection from postings unless a compatible one already
// exists. With rebuild, any existing collection is dropped first. An existing
// collection built by a different embedding model fails with
// domain.ErrModelVersionMismatch; rebuild is the way out.
func (s *Service) Build(ctx context.Context, postings []domain.Posting, rebuild bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.repo.Exists(ctx)
	if err != nil {
		return fmt.Errorf("check collection: %w", err)
	}

	if exists {
		if !rebuild {
			if err := s.repo.VerifyModel(ctx); err != nil {
				return fmt.Errorf("existing collection: %w", err)
			}
			count, err := s.repo.Count(ctx)
			if err == nil {
				metrics.IndexedPostings.WithLabelValues(s.collection).Set(float64(count))
			}
			s.logger.Info("Using existing collection",
				zap.String("collection", s.collection),
				zap.Int("postings", count))
			return nil
		}
		if err := s.repo.Drop(ctx); err != nil {
			return fmt.Errorf("drop for rebuild: %w", err)
		}
	}

	if len(postings) == 0 {
		return fmt.Errorf("no postings to index: %w", domain.ErrIndexBuild)
	}

	if err := s.repo.Create(ctx, len(postings)); err != nil {
		return fmt.Errorf("create collection: %w", err)
	}

	for start := 0; start < len(postings); start += s.batchSize {
		end := min(start+s.batchSize, len(postings))
		if err := s.indexBatch(ctx, postings[start:end]); err != nil {
			return fmt.Errorf("index batch at %d: %w", start, err)
		}

		s.logger.Info("Indexed postings batch",
			zap.String("collection", s.collection),
			zap.Int("processed", end),
			zap.Int("total", len(postings)))
	}

	metrics.IndexedPostings.WithLabelValues(s.collection).Set(float64(len(postings)))

	s.logger.Info("Collection build complete",
		zap.String("collection", s.collection),
		zap.Int("postings", len(postings)))
	return nil
}

func (s *Service) indexBatch(ctx context.Context, batch []domain.Posting) error {
	texts := make([]string, len(batch))
	for i := range batch {
		texts[i] = encoder.DocumentText(&batch[i])
	}

	result, err := s.embedder.BatchEmbed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed %d documents: %w", len(texts), err)
	}
	if len(result.Embeddings) != len(batch) {
		return errors.New("embedding count does not match batch size")
	}

	docs := make([]index.Document, len(batch))
	for i := range batch {
		docs[i] = index.Document{
			ID:      batch[i].ID,
			Content: texts[i],
			Vector:  result.Embeddings[i],
			Fields:  encoder.Metadata(&batch[i]),
		}
	}

	return s.repo.InsertBatch(ctx, docs)
}
