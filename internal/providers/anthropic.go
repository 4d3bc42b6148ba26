package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"revizor/internal/pricing"
)

const (
	AnthropicName = "anthropic"

	anthropicDefaultMaxTokens = 4096
)

// AnthropicConfig holds configuration for the Anthropic client.
type AnthropicConfig struct {
	APIKey    string
	RPS       float64
	MaxTokens int64
	Timeout   time.Duration
}

// AnthropicClient implements Client using the official Anthropic SDK.
type AnthropicClient struct {
	client    anthropic.Client
	limiter   *RateLimiter
	maxTokens int64
}

// NewAnthropicClient creates a new Anthropic client.
func NewAnthropicClient(cfg AnthropicConfig) *AnthropicClient {
	if cfg.RPS <= 0 {
		cfg.RPS = 2.0
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = anthropicDefaultMaxTokens
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	return &AnthropicClient{
		client: anthropic.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithRequestTimeout(cfg.Timeout),
		),
		limiter:   NewRateLimiter(cfg.RPS),
		maxTokens: cfg.MaxTokens,
	}
}

// Name returns the provider identifier.
func (c *AnthropicClient) Name() string {
	return AnthropicName
}

// Chat sends a messages request.
//
// Usage normalization: Anthropic reports input tokens exclusive of cache
// reads/writes, so PromptTokens is the sum of all three and CachedTokens is
// the cache-read count, keeping cached <= prompt.
func (c *AnthropicClient) Chat(ctx context.Context, model string, messages []Message) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: c.maxTokens,
	}
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			params.System = append(params.System, anthropic.TextBlockParam{Text: m.Content})
		case RoleAssistant:
			params.Messages = append(params.Messages,
				anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			params.Messages = append(params.Messages,
				anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, &TransportError{Provider: AnthropicName, Err: err}
	}

	content := ""
	for _, block := range message.Content {
		if block.Type == "text" {
			content = block.Text
			break
		}
	}
	if content == "" {
		return nil, &TransportError{Provider: AnthropicName, Err: fmt.Errorf("no text content in response")}
	}

	usage := message.Usage
	return &Response{
		Content: content,
		Model:   string(message.Model),
		Usage: pricing.Usage{
			PromptTokens:     usage.InputTokens + usage.CacheReadInputTokens + usage.CacheCreationInputTokens,
			CompletionTokens: usage.OutputTokens,
			CachedTokens:     usage.CacheReadInputTokens,
		},
	}, nil
}

// Verify interface
var _ Client = (*AnthropicClient)(nil)
