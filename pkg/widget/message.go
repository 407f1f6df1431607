package widget

// Role identifies the author of a message
type Role string

const (
	// RoleUser marks a message typed by the end user
	RoleUser Role = "user"
	// RoleAssistant marks a message produced by the backend, including
	// error placeholders
	RoleAssistant Role = "assistant"
)

// Message is a single conversation entry. Messages are immutable once
// appended; an error outcome is a regular assistant message with
// IsError set.
type Message struct {
	Role    Role
	Content string
	IsError bool
}
