package providers

import (
	"context"
	"sync"

	"revizor/internal/pricing"
)

// MockClient is a configurable Client for tests.
type MockClient struct {
	mu sync.Mutex

	// ChatFunc, when set, handles calls entirely.
	ChatFunc func(ctx context.Context, model string, messages []Message) (*Response, error)

	// Content and Usage form the canned response when ChatFunc is nil.
	Content string
	Usage   pricing.Usage
	Err     error

	calls int
}

// Name returns the provider identifier.
func (m *MockClient) Name() string {
	return "mock"
}

// Chat returns the canned response or delegates to ChatFunc.
func (m *MockClient) Chat(ctx context.Context, model string, messages []Message) (*Response, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, model, messages)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &Response{Content: m.Content, Model: model, Usage: m.Usage}, nil
}

// Calls returns how many times Chat was invoked.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Verify interface
var _ Client = (*MockClient)(nil)
