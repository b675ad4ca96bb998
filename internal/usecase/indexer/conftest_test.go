package indexer

import (
	"context"
	"fmt"

	"github.com/careerlens/careerlens/internal/domain"
	"github.com/careerlens/careerlens/internal/repository/index"
)

type mockRepo struct {
	existsFn      func(ctx context.Context) (bool, error)
	verifyModelFn func(ctx context.Context) error
	createFn      func(ctx context.Context, count int) error
	insertBatchFn func(ctx context.Context, docs []index.Document) error
	dropFn        func(ctx context.Context) error
	countFn       func(ctx context.Context) (int, error)
}

func (m *mockRepo) Exists(ctx context.Context) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx)
	}
	return false, nil
}

func (m *mockRepo) VerifyModel(ctx context.Context) error {
	if m.verifyModelFn != nil {
		return m.verifyModelFn(ctx)
	}
	return nil
}

func (m *mockRepo) Create(ctx context.Context, count int) error {
	if m.createFn != nil {
		return m.createFn(ctx, count)
	}
	return nil
}

func (m *mockRepo) InsertBatch(ctx context.Context, docs []index.Document) error {
	if m.insertBatchFn != nil {
		return m.insertBatchFn(ctx, docs)
	}
	return nil
}

func (m *mockRepo) Drop(ctx context.Context) error {
	if m.dropFn != nil {
		return m.dropFn(ctx)
	}
	return nil
}

func (m *mockRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type mockBatchEmbedder struct {
	batchEmbedFn func(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
}

func (m *mockBatchEmbedder) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if m.batchEmbedFn != nil {
		return m.batchEmbedFn(ctx, texts)
	}
	vecs := make([][]float32, len(texts))
	for i := range vecs {
		vecs[i] = []float32{0.1, 0.2}
	}
	return domain.BatchEmbeddingResult{Embeddings: vecs}, nil
}

func somePostings(n int) []domain.Posting {
	out := make([]domain.Posting, n)
	for i := range out {
		out[i] = domain.Posting{
			ID:        fmt.Sprintf("job_%d", i),
			Title:     "Software Engineer",
			SkillsRaw: "go|redis",
			Skills:    []string{"go", "redis"},
		}
	}
	return out
}
