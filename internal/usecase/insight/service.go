// Package insight composes retrieval with generation: resume analysis,
// market-grounded career insights, and the advisor chat.
//
// Generation failures degrade: the affected text field carries a notice and
// retrieval results are still returned. Retrieval failures are real errors.
package insight

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/careerlens/careerlens/internal/domain"
)

// Generation parameters per intent, matching the advisor's tuning: analysis
// and insights stay focused, chat runs slightly warmer.
const (
	extractMaxTokens  = 500
	insightsMaxTokens = 800
	chatMaxTokens     = 600

	analysisTemperature = 0.7
	chatTemperature     = 0.8
)

const generalGuidanceQuery = "General career guidance"

// jobSearcher is the consumer interface for the retriever (ISP).
type jobSearcher interface {
	SearchRelevantJobs(ctx context.Context, query string, n int) ([]domain.JobMatch, error)
}

// profileCache memoizes resume analyses keyed by resume content. Both
// operations are best-effort; a miss or failed write only costs a
// regeneration.
type profileCache interface {
	Get(ctx context.Context, resume string) (string, bool)
	Put(ctx context.Context, resume, analysis string)
}

// Insights is the composed result of one career analysis.
type Insights struct {
	SkillsAnalysis string            `json:"skills_analysis"`
	RelevantJobs   []domain.JobMatch `json:"relevant_jobs"`
	Insights       string            `json:"insights"`
}

// Service composes retrieval and generation into career insights.
type Service struct {
	retriever jobSearcher
	generator domain.Generator
	profiles  profileCache
	prompts   *promptRegistry
	retrieveK int
	logger    *zap.Logger
}

// New creates a Service. retrieveK is how many matches each analysis pulls
// from the collection; prompts see a smaller head of that list.
func New(retriever jobSearcher, generator domain.Generator, profiles profileCache, retrieveK int, logger *zap.Logger) *Service {
	return &Service{
		retriever: retriever,
		generator: generator,
		profiles:  profiles,
		prompts:   newPromptRegistry(),
		retrieveK: retrieveK,
		logger:    logger,
	}
}

// CareerInsights analyzes a resume against the postings collection. The
// resume analysis is memoized per resume content; the market retrieval and
// insight generation run fresh each call.
func (s *Service) CareerInsights(ctx context.Context, resume, userQuery string) (Insights, error) {
	if strings.TrimSpace(resume) == "" {
		return Insights{}, fmt.Errorf("empty resume text: %w", domain.ErrInvalidQuery)
	}

	analysis, degraded := s.resumeAnalysis(ctx, resume)

	// A degraded analysis would poison the search query; fall back to the
	// resume excerpt so retrieval stays grounded in the actual resume.
	searchQuery := analysis
	if degraded {
		searchQuery = excerpt(resume, resumeExcerptLen)
	}
	if userQuery != "" {
		searchQuery += " " + userQuery
	}

	jobs, err := s.retriever.SearchRelevantJobs(ctx, searchQuery, s.retrieveK)
	if err != nil {
		return Insights{}, fmt.Errorf("retrieve relevant jobs: %w", err)
	}

	insights := s.marketInsights(ctx, analysis, jobs, userQuery)

	return Insights{
		SkillsAnalysis: analysis,
		RelevantJobs:   jobs,
		Insights:       insights,
	}, nil
}

// ChatWithAdvisor answers one conversational turn grounded in the caller's
// resume and fresh market retrieval. History is read-only; only its last
// turns reach the prompt.
func (s *Service) ChatWithAdvisor(ctx context.Context, resume string, history []domain.ChatTurn, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("empty chat message: %w", domain.ErrInvalidQuery)
	}

	career, err := s.CareerInsights(ctx, resume, message)
	if err != nil {
		return "", err
	}

	prompt, err := s.prompts.Render(domain.IntentChat, map[string]string{
		"Summary":      excerpt(career.SkillsAnalysis, summaryExcerptLen),
		"JobLines":     jobBullets(career.RelevantJobs),
		"Conversation": conversation(history),
		"Question":     message,
	})
	if err != nil {
		return "", err
	}

	reply, err := s.generator.Complete(ctx, domain.GenerationRequest{
		Intent:      domain.IntentChat,
		Prompt:      prompt,
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
	})
	if err != nil {
		s.logger.Warn("Chat generation degraded", zap.Error(err))
		return fmt.Sprintf("The career advisor is temporarily unavailable (%v). Your resume still matched %d postings; try again shortly.",
			err, len(career.RelevantJobs)), nil
	}
	return reply, nil
}

// resumeAnalysis returns the structured skills summary for a resume, from
// cache when possible. The second return reports degradation: the text is a
// notice, not an analysis.
func (s *Service) resumeAnalysis(ctx context.Context, resume string) (string, bool) {
	if analysis, ok := s.profiles.Get(ctx, resume); ok {
		return analysis, false
	}

	prompt, err := s.prompts.Render(domain.IntentExtract, map[string]string{
		"Resume": excerpt(resume, resumeExcerptLen),
	})
	if err != nil {
		s.logger.Error("Extract prompt render failed", zap.Error(err))
		return fmt.Sprintf("Resume analysis unavailable: %v", err), true
	}

	analysis, err := s.generator.Complete(ctx, domain.GenerationRequest{
		Intent:      domain.IntentExtract,
		Prompt:      prompt,
		MaxTokens:   extractMaxTokens,
		Temperature: analysisTemperature,
	})
	if err != nil {
		s.logger.Warn("Resume analysis degraded", zap.Error(err))
		return fmt.Sprintf("Resume analysis unavailable: %v", err), true
	}

	s.profiles.Put(ctx, resume, analysis)
	return analysis, false
}

// marketInsights generates the 5-point insight text. Failures degrade into a
// notice so the caller still receives the retrieved matches.
func (s *Service) marketInsights(ctx context.Context, analysis string, jobs []domain.JobMatch, userQuery string) string {
	query := userQuery
	if query == "" {
		query = generalGuidanceQuery
	}

	prompt, err := s.prompts.Render(domain.IntentInsights, map[string]string{
		"Analysis":    analysis,
		"JobsContext": jobsContext(jobs),
		"Query":       query,
	})
	if err != nil {
		s.logger.Error("Insights prompt render failed", zap.Error(err))
		return fmt.Sprintf("Career insights unavailable: %v", err)
	}

	insights, err := s.generator.Complete(ctx, domain.GenerationRequest{
		Intent:      domain.IntentInsights,
		Prompt:      prompt,
		MaxTokens:   insightsMaxTokens,
		Temperature: analysisTemperature,
	})
	if err != nil {
		s.logger.Warn("Insight generation degraded", zap.Error(err))
		return fmt.Sprintf("Career insights unavailable (%v). See the relevant job matches for market context.", err)
	}
	return insights
}
