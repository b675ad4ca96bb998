package chi

import (
	"context"

	"github.com/careerlens/careerlens/internal/domain"
	"github.com/careerlens/careerlens/internal/usecase/analytics"
	healthuc "github.com/careerlens/careerlens/internal/usecase/health"
	"github.com/careerlens/careerlens/internal/usecase/insight"
)

type mockInsights struct {
	careerFn func(ctx context.Context, resume, userQuery string) (insight.Insights, error)
	chatFn   func(ctx context.Context, resume string, history []domain.ChatTurn, message string) (string, error)
}

func (m *mockInsights) CareerInsights(ctx context.Context, resume, userQuery string) (insight.Insights, error) {
	if m.careerFn != nil {
		return m.careerFn(ctx, resume, userQuery)
	}
	return insight.Insights{
		SkillsAnalysis: "Skills: [go]",
		RelevantJobs:   sampleMatches(),
		Insights:       "1. Solid outlook.",
	}, nil
}

func (m *mockInsights) ChatWithAdvisor(ctx context.Context, resume string, history []domain.ChatTurn, message string) (string, error) {
	if m.chatFn != nil {
		return m.chatFn(ctx, resume, history, message)
	}
	return "Keep going.", nil
}

type mockSearch struct {
	searchFn func(ctx context.Context, query string, n int) ([]domain.JobMatch, error)
}

func (m *mockSearch) SearchRelevantJobs(ctx context.Context, query string, n int) ([]domain.JobMatch, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, n)
	}
	return sampleMatches(), nil
}

type mockAnalytics struct {
	salaryFn func(userSkills []string, experienceYears *int) analytics.SalaryInsights
}

func (m *mockAnalytics) SalaryInsights(userSkills []string, experienceYears *int) analytics.SalaryInsights {
	if m.salaryFn != nil {
		return m.salaryFn(userSkills, experienceYears)
	}
	return analytics.SalaryInsights{
		Stats:             &analytics.SalaryStats{Median: 600000, SampleSize: 12},
		RelevantJobsCount: 14,
	}
}

func (m *mockAnalytics) SkillDemand(userSkills []string) analytics.SkillDemand {
	return analytics.SkillDemand{
		UserSkillDemand: []analytics.CountEntry{{Name: "go", Count: 4}},
		TopMarketSkills: []analytics.CountEntry{{Name: "java", Count: 9}},
	}
}

func (m *mockAnalytics) IndustryInsights(userSkills []string) analytics.IndustryInsights {
	return analytics.IndustryInsights{
		IndustryDistribution: []analytics.CountEntry{{Name: "IT-Software", Count: 7}},
		RoleDistribution:     []analytics.CountEntry{{Name: "Programming", Count: 5}},
	}
}

func (m *mockAnalytics) ProgressionPath(currentRole string) map[string]analytics.ProgressionStage {
	return map[string]analytics.ProgressionStage{
		"0-2": {CommonTitles: []analytics.CountEntry{{Name: "Junior Engineer", Count: 3}}},
	}
}

type mockHealth struct {
	reportFn func(ctx context.Context) healthuc.Report
}

func (m *mockHealth) Check(ctx context.Context) healthuc.Report {
	if m.reportFn != nil {
		return m.reportFn(ctx)
	}
	return healthuc.Report{
		Status:          healthuc.Healthy,
		Checks:          map[string]healthuc.CheckResult{"database": healthuc.CheckOK},
		IndexedPostings: 27000,
	}
}

func sampleMatches() []domain.JobMatch {
	return []domain.JobMatch{
		{JobTitle: "Backend Engineer", Skills: "go|redis", RelevanceScore: 0.9, Rank: 1},
		{JobTitle: "SRE", Skills: "kubernetes", RelevanceScore: 0.8, Rank: 2},
	}
}
