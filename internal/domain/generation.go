package domain

import "context"

// Intent names the purpose of a generation call. The canned strategy keys
// its replies on intent, never on prompt content.
type Intent string

const (
	// IntentExtract asks for a structured skills/experience summary.
	IntentExtract Intent = "extract"
	// IntentInsights asks for the 5-point career insight analysis.
	IntentInsights Intent = "insights"
	// IntentChat asks for a conversational advisor reply.
	IntentChat Intent = "chat"
)

// GenerationRequest is a single-message text completion request.
type GenerationRequest struct {
	Intent      Intent
	Prompt      string // single user-role message
	MaxTokens   int
	Temperature float32
}

// Generator is the external text-generation capability. Implementations are
// selected once at construction (live or canned); callers never switch at
// call time.
type Generator interface {
	Complete(ctx context.Context, req GenerationRequest) (string, error)
}
