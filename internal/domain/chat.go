package domain

// Role identifies the author of a chat turn.
type Role string

const (
	// RoleUser is a turn written by the job seeker.
	RoleUser Role = "user"
	// RoleAssistant is a turn written by the advisor.
	RoleAssistant Role = "assistant"
)

// ChatTurn is one message in the caller-owned conversation history.
// The core only reads a bounded suffix of the history; it never appends.
type ChatTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// LastTurns returns the most recent n turns of history (all of it when
// shorter). The returned slice aliases the input.
func LastTurns(history []ChatTurn, n int) []ChatTurn {
	if n <= 0 || len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
