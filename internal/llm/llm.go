package llm

import (
	"context"
	"time"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single chat turn sent to the model.
type Message struct {
	Role    Role
	Content string
}

// Options tunes a single chat call. Zero values fall back to provider defaults.
type Options struct {
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Client is a minimal LLM interface to allow pluggable providers.
// Implementations perform no retry of their own; retry policy belongs to
// the caller so that one budget governs transport and validation failures.
type Client interface {
	Chat(ctx context.Context, messages []Message, opts Options) (string, error)
}
