package chi

import (
	"github.com/careerlens/careerlens/internal/domain"
)

// Error codes returned in ErrorResponse.Code.
const (
	codeBadRequest         = "bad_request"
	codeValidationFailed   = "validation_failed"
	codeNotFound           = "not_found"
	codeEmbeddingProvider  = "embedding_provider_error"
	codeGenerationService  = "generation_service_error"
	codeServiceUnavailable = "service_unavailable"
	codeInternalError      = "internal_error"
)

// ErrorResponse is the JSON error envelope for all endpoints.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// InsightsRequest is the body of POST /api/v1/insights.
type InsightsRequest struct {
	ResumeText string `json:"resume_text"`
	UserQuery  string `json:"user_query,omitempty"`
}

// ChatRequest is the body of POST /api/v1/chat.
type ChatRequest struct {
	ResumeText string            `json:"resume_text"`
	History    []domain.ChatTurn `json:"history,omitempty"`
	Message    string            `json:"message"`
}

// ChatResponse is the reply to POST /api/v1/chat.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// SearchRequest is the body of POST /api/v1/jobs/search.
type SearchRequest struct {
	Query string `json:"query"`
	Limit *int   `json:"limit,omitempty"`
}

// SearchResponse lists retrieved matches.
type SearchResponse struct {
	Items []domain.JobMatch `json:"items"`
	Total int               `json:"total"`
}

// SalaryRequest is the body of POST /api/v1/analytics/salary.
type SalaryRequest struct {
	Skills          []string `json:"skills"`
	ExperienceYears *int     `json:"experience_years,omitempty"`
}

// SkillsRequest is the body of the skill and industry analytics endpoints.
type SkillsRequest struct {
	Skills []string `json:"skills"`
}

// ProgressionRequest is the body of POST /api/v1/analytics/progression.
type ProgressionRequest struct {
	CurrentRole string `json:"current_role"`
}

// HealthResponse reports component checks plus the collection size.
type HealthResponse struct {
	Status          string            `json:"status"`
	Checks          map[string]string `json:"checks"`
	IndexedPostings int               `json:"indexed_postings"`
}
