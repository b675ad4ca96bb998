package insight

import (
	"context"

	"github.com/careerlens/careerlens/internal/domain"
)

type mockRetriever struct {
	searchFn func(ctx context.Context, query string, n int) ([]domain.JobMatch, error)
	queries  []string
}

func (m *mockRetriever) SearchRelevantJobs(ctx context.Context, query string, n int) ([]domain.JobMatch, error) {
	m.queries = append(m.queries, query)
	if m.searchFn != nil {
		return m.searchFn(ctx, query, n)
	}
	return sampleMatches(), nil
}

// mockGenerator records every request and answers per intent.
type mockGenerator struct {
	completeFn func(ctx context.Context, req domain.GenerationRequest) (string, error)
	requests   []domain.GenerationRequest
}

func (m *mockGenerator) Complete(ctx context.Context, req domain.GenerationRequest) (string, error) {
	m.requests = append(m.requests, req)
	if m.completeFn != nil {
		return m.completeFn(ctx, req)
	}
	switch req.Intent {
	case domain.IntentExtract:
		return "Skills: [go, redis]\nExperience Level: mid\nDomain: backend", nil
	case domain.IntentInsights:
		return "1. Strong match for backend roles.", nil
	default:
		return "Focus on the top matches.", nil
	}
}

func (m *mockGenerator) byIntent(intent domain.Intent) []domain.GenerationRequest {
	var out []domain.GenerationRequest
	for _, req := range m.requests {
		if req.Intent == intent {
			out = append(out, req)
		}
	}
	return out
}

type mockProfiles struct {
	entries map[string]string
	puts    int
}

func newMockProfiles() *mockProfiles {
	return &mockProfiles{entries: make(map[string]string)}
}

func (m *mockProfiles) Get(_ context.Context, resume string) (string, bool) {
	analysis, ok := m.entries[resume]
	return analysis, ok
}

func (m *mockProfiles) Put(_ context.Context, resume, analysis string) {
	m.puts++
	m.entries[resume] = analysis
}

func sampleMatches() []domain.JobMatch {
	return []domain.JobMatch{
		{
			JobTitle:       "Backend Engineer",
			Skills:         "go|redis|docker",
			Experience:     "3 - 5 yrs",
			Industry:       "IT-Software",
			RelevanceScore: 0.91,
			Rank:           1,
		},
		{
			JobTitle:       "Platform Engineer",
			Skills:         "kubernetes|go",
			Experience:     "5 - 8 yrs",
			Industry:       "IT-Software",
			RelevanceScore: 0.84,
			Rank:           2,
		},
	}
}
