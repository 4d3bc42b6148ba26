// Package providers contains the LLM transport clients. Each client adapts
// one vendor API to a single normalized request/response shape; everything
// above this package is vendor-agnostic.
package providers

import (
	"context"
	"fmt"

	"revizor/internal/pricing"
)

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UserMessage builds a user-role message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Response is the normalized result of one model call. Content is the raw
// model output; usage normalization per vendor is documented on each client.
type Response struct {
	Content string
	Model   string
	Usage   pricing.Usage
}

// Client is the transport interface implemented by every provider adapter.
type Client interface {
	// Chat sends the messages to the given model and returns the
	// normalized response. Implementations block on their rate limiter
	// before dispatching.
	Chat(ctx context.Context, model string, messages []Message) (*Response, error)

	// Name returns the provider identifier (e.g. "openai", "xai").
	Name() string
}

// TransportError wraps any failure coming out of a provider API call so
// callers can treat vendor errors uniformly.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s transport: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
