// Package canned is the offline generation strategy: deterministic,
// intent-keyed replies used when no generation API key is configured.
// Selection between canned and live happens once at construction.
package canned

import (
	"context"

	"github.com/careerlens/careerlens/internal/domain"
)

// Generator returns fixed replies keyed by request intent.
type Generator struct{}

// New creates a canned Generator.
func New() *Generator {
	return &Generator{}
}

// Complete implements domain.Generator. Replies depend only on Intent,
// never on prompt content.
func (g *Generator) Complete(_ context.Context, req domain.GenerationRequest) (string, error) {
	switch req.Intent {
	case domain.IntentExtract:
		return extractReply, nil
	case domain.IntentInsights:
		return insightsReply, nil
	case domain.IntentChat:
		return chatReply, nil
	default:
		return "", domain.ErrGenerationService
	}
}

// HealthCheck always succeeds: there is no upstream to probe.
func (g *Generator) HealthCheck(_ context.Context) error {
	return nil
}

const extractReply = `Skills: [software development, data analysis, communication, problem solving]
Experience Level: mid
Domain: technology`

const insightsReply = `1. Career progression opportunities: your profile matches a broad range of mid-level engineering roles; team-lead positions open up with 1-2 more years of delivery experience.
2. Skill gaps and recommendations: postings in your area increasingly list cloud platforms and container tooling; closing that gap widens your match rate considerably.
3. Salary expectations: comparable roles in the indexed postings cluster around the market median for your experience band.
4. Industry trends: demand is strongest in IT software and analytics-driven industries among the retrieved postings.
5. Next career steps: target roles that combine your strongest current skills with one adjacent growth area, and revisit your resume keywords against the top matches.`

const chatReply = `Based on your resume and the matching postings, your core skills are in solid demand. Focus your applications on the roles with the highest relevance scores, and consider strengthening one in-demand skill from the top matches to stand out. Happy to dig into any specific role or skill if you want.`
