package insight

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/careerlens/careerlens/internal/domain"
)

// Prompt shaping limits. Excerpts keep prompts inside model context windows
// while preserving the most informative prefix of each source.
const (
	resumeExcerptLen  = 2000
	summaryExcerptLen = 500
	skillSnippetLen   = 100
	contextJobs       = 10
	chatJobs          = 5
	historyTurns      = 5
)

const extractPrompt = `Extract the key skills, technologies, and experience level from this resume.
Return as a structured summary:

Resume: {{.Resume}}...

Format:
Skills: [list of skills]
Experience Level: [junior/mid/senior]
Domain: [primary domain/field]`

const insightsPrompt = `Based on the resume analysis and current job market data, provide comprehensive career insights:

Resume Analysis: {{.Analysis}}

Relevant Job Market Data:
{{.JobsContext}}

User Query: {{.Query}}

Provide insights on:
1. Career progression opportunities
2. Skill gaps and recommendations
3. Salary expectations
4. Industry trends
5. Next career steps

Be specific and actionable.`

const chatPrompt = `You are an expert career advisor with access to current job market data.

Resume Summary: {{.Summary}}

Recent Job Market Insights:
{{.JobLines}}

Conversation History:
{{.Conversation}}

User Question: {{.Question}}

Provide helpful, specific career advice based on the resume and current job market.
Be conversational and supportive.`

// promptRegistry holds one parsed template per generation intent.
type promptRegistry struct {
	templates map[domain.Intent]*template.Template
}

func newPromptRegistry() *promptRegistry {
	return &promptRegistry{
		templates: map[domain.Intent]*template.Template{
			domain.IntentExtract:  template.Must(template.New(string(domain.IntentExtract)).Parse(extractPrompt)),
			domain.IntentInsights: template.Must(template.New(string(domain.IntentInsights)).Parse(insightsPrompt)),
			domain.IntentChat:     template.Must(template.New(string(domain.IntentChat)).Parse(chatPrompt)),
		},
	}
}

// Render fills the template registered for intent.
func (r *promptRegistry) Render(intent domain.Intent, data any) (string, error) {
	tmpl, ok := r.templates[intent]
	if !ok {
		return "", fmt.Errorf("no prompt template for intent %q", intent)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", intent, err)
	}
	return b.String(), nil
}

// excerpt truncates s to at most n runes.
func excerpt(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// jobsContext renders one pipe-delimited line per match for the insights
// prompt, capped at contextJobs.
func jobsContext(matches []domain.JobMatch) string {
	lines := make([]string, 0, contextJobs)
	for i, m := range matches {
		if i == contextJobs {
			break
		}
		lines = append(lines, fmt.Sprintf("Job: %s | Skills: %s | Experience: %s | Industry: %s",
			m.JobTitle, m.Skills, m.Experience, m.Industry))
	}
	return strings.Join(lines, "\n")
}

// jobBullets renders compact bullet lines for the chat prompt, capped at
// chatJobs with skill snippets shortened to skillSnippetLen runes.
func jobBullets(matches []domain.JobMatch) string {
	lines := make([]string, 0, chatJobs)
	for i, m := range matches {
		if i == chatJobs {
			break
		}
		lines = append(lines, fmt.Sprintf("- %s - %s", m.JobTitle, excerpt(m.Skills, skillSnippetLen)))
	}
	return strings.Join(lines, "\n")
}

// conversation renders the last historyTurns turns as "User:"/"Assistant:"
// prefixed lines.
func conversation(history []domain.ChatTurn) string {
	turns := domain.LastTurns(history, historyTurns)
	lines := make([]string, 0, len(turns))
	for _, turn := range turns {
		speaker := "Assistant"
		if turn.Role == domain.RoleUser {
			speaker = "User"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", speaker, turn.Content))
	}
	return strings.Join(lines, "\n")
}
