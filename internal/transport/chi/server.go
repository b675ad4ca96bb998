// Package chi is the HTTP API: insight, chat, retrieval, and analytics
// endpoints over the go-chi router.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/careerlens/careerlens/internal/domain"
	"github.com/careerlens/careerlens/internal/usecase/analytics"
	healthuc "github.com/careerlens/careerlens/internal/usecase/health"
	"github.com/careerlens/careerlens/internal/usecase/insight"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

// insightService is the consumer interface for the insight composer.
type insightService interface {
	CareerInsights(ctx context.Context, resume, userQuery string) (insight.Insights, error)
	ChatWithAdvisor(ctx context.Context, resume string, history []domain.ChatTurn, message string) (string, error)
}

// searchService is the consumer interface for the retriever.
type searchService interface {
	SearchRelevantJobs(ctx context.Context, query string, n int) ([]domain.JobMatch, error)
}

// analyticsService is the consumer interface for market analytics.
type analyticsService interface {
	SalaryInsights(userSkills []string, experienceYears *int) analytics.SalaryInsights
	SkillDemand(userSkills []string) analytics.SkillDemand
	IndustryInsights(userSkills []string) analytics.IndustryInsights
	ProgressionPath(currentRole string) map[string]analytics.ProgressionStage
}

// healthService is the consumer interface for health checks.
type healthService interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the career analysis API.
type Server struct {
	insights      insightService
	search        searchService
	analytics     analyticsService
	health        healthService
	logger        *zap.Logger
	searchLimit   int
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	insights insightService,
	search searchService,
	analyticsSvc analyticsService,
	health healthService,
	logger *zap.Logger,
) *Server {
	s := &Server{
		insights:    insights,
		search:      search,
		analytics:   analyticsSvc,
		health:      health,
		logger:      logger,
		searchLimit: defaultSearchLimit,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrEmbeddingProvider, http.StatusBadGateway, codeEmbeddingProvider),
		sentinelHandler(domain.ErrGenerationService, http.StatusBadGateway, codeGenerationService),
		sentinelHandler(domain.ErrDataUnavailable, http.StatusServiceUnavailable, codeServiceUnavailable),
		sentinelHandler(domain.ErrIndexBuild, http.StatusServiceUnavailable, codeServiceUnavailable),
		sentinelHandler(domain.ErrModelVersionMismatch, http.StatusServiceUnavailable, codeServiceUnavailable),
	}
	return s
}

// WithSearchLimit overrides the default result count for job search.
func (s *Server) WithSearchLimit(n int) *Server {
	if n > 0 {
		s.searchLimit = n
	}
	return s
}

// Mount registers all routes on r.
func (s *Server) Mount(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/insights", s.CareerInsights)
		r.Post("/chat", s.Chat)
		r.Post("/jobs/search", s.SearchJobs)
		r.Route("/analytics", func(r chi.Router) {
			r.Post("/salary", s.SalaryInsights)
			r.Post("/skills", s.SkillDemand)
			r.Post("/industries", s.IndustryInsights)
			r.Post("/progression", s.ProgressionPath)
		})
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// CareerInsights handles POST /api/v1/insights.
func (s *Server) CareerInsights(w http.ResponseWriter, r *http.Request) {
	var req InsightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.ResumeText) == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "resume_text is required")
		return
	}

	result, err := s.insights.CareerInsights(r.Context(), req.ResumeText, req.UserQuery)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Chat handles POST /api/v1/chat.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.ResumeText) == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "resume_text is required")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "message is required")
		return
	}

	reply, err := s.insights.ChatWithAdvisor(r.Context(), req.ResumeText, req.History, req.Message)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{Reply: reply})
}

// SearchJobs handles POST /api/v1/jobs/search.
func (s *Server) SearchJobs(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	limit := s.searchLimit
	if req.Limit != nil {
		if *req.Limit <= 0 || *req.Limit > maxSearchLimit {
			writeError(w, http.StatusBadRequest, codeValidationFailed,
				"limit must be between 1 and 50")
			return
		}
		limit = *req.Limit
	}

	matches, err := s.search.SearchRelevantJobs(r.Context(), req.Query, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if matches == nil {
		matches = []domain.JobMatch{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Items: matches, Total: len(matches)})
}

// SalaryInsights handles POST /api/v1/analytics/salary.
func (s *Server) SalaryInsights(w http.ResponseWriter, r *http.Request) {
	var req SalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.Skills) == 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "skills is required")
		return
	}

	writeJSON(w, http.StatusOK, s.analytics.SalaryInsights(req.Skills, req.ExperienceYears))
}

// SkillDemand handles POST /api/v1/analytics/skills.
func (s *Server) SkillDemand(w http.ResponseWriter, r *http.Request) {
	var req SkillsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.analytics.SkillDemand(req.Skills))
}

// IndustryInsights handles POST /api/v1/analytics/industries.
func (s *Server) IndustryInsights(w http.ResponseWriter, r *http.Request) {
	var req SkillsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.Skills) == 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "skills is required")
		return
	}

	writeJSON(w, http.StatusOK, s.analytics.IndustryInsights(req.Skills))
}

// ProgressionPath handles POST /api/v1/analytics/progression.
func (s *Server) ProgressionPath(w http.ResponseWriter, r *http.Request) {
	var req ProgressionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.CurrentRole) == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "current_role is required")
		return
	}

	writeJSON(w, http.StatusOK, s.analytics.ProgressionPath(req.CurrentRole))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:          string(report.Status),
		Checks:          checks,
		IndexedPostings: report.IndexedPostings,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrNotFound,
		domain.ErrEmbeddingProvider,
		domain.ErrGenerationService,
		domain.ErrDataUnavailable,
		domain.ErrIndexBuild,
		domain.ErrModelVersionMismatch,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
