package providers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"revizor/internal/pricing"
)

const (
	OpenAIName = "openai"
	XAIName    = "xai"

	// XAIBaseURL is the xAI endpoint; the API is OpenAI-compatible, so the
	// same SDK client serves both vendors.
	XAIBaseURL = "https://api.x.ai/v1"
)

// OpenAIConfig holds configuration for an OpenAI-compatible client.
type OpenAIConfig struct {
	Name       string // Provider identifier (default: "openai")
	APIKey     string
	BaseURL    string // Optional; set to XAIBaseURL for xAI
	RPS        float64
	MaxRetries int
	Timeout    time.Duration
	HTTPClient *http.Client // Optional (tests)
}

// OpenAIClient implements Client using the official OpenAI SDK.
type OpenAIClient struct {
	name    string
	client  openai.Client
	limiter *RateLimiter
}

// NewOpenAIClient creates a new OpenAI-compatible client.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	if cfg.Name == "" {
		cfg.Name = OpenAIName
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 2.0
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 2
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIClient{
		name:    cfg.Name,
		client:  openai.NewClient(opts...),
		limiter: NewRateLimiter(cfg.RPS),
	}
}

// NewXAIClient creates a client for the xAI (Grok) API.
func NewXAIClient(cfg OpenAIConfig) *OpenAIClient {
	cfg.Name = XAIName
	if cfg.BaseURL == "" {
		cfg.BaseURL = XAIBaseURL
	}
	return NewOpenAIClient(cfg)
}

// Name returns the provider identifier.
func (c *OpenAIClient) Name() string {
	return c.name
}

// Chat sends a chat completion request.
//
// Usage normalization: the API reports cached tokens as a subset of prompt
// tokens and reasoning tokens separately from completion tokens, which maps
// onto pricing.Usage one to one.
func (c *OpenAIClient) Chat(ctx context.Context, model string, messages []Message) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)),
	}
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			params.Messages = append(params.Messages, openai.SystemMessage(m.Content))
		case RoleAssistant:
			params.Messages = append(params.Messages, openai.AssistantMessage(m.Content))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(m.Content))
		}
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, &TransportError{Provider: c.name, Err: err}
	}
	if len(completion.Choices) == 0 {
		return nil, &TransportError{Provider: c.name, Err: fmt.Errorf("no choices in response")}
	}

	return &Response{
		Content: completion.Choices[0].Message.Content,
		Model:   completion.Model,
		Usage: pricing.Usage{
			PromptTokens:     completion.Usage.PromptTokens,
			CompletionTokens: completion.Usage.CompletionTokens,
			CachedTokens:     completion.Usage.PromptTokensDetails.CachedTokens,
			ReasoningTokens:  completion.Usage.CompletionTokensDetails.ReasoningTokens,
		},
	}, nil
}

// Verify interface
var _ Client = (*OpenAIClient)(nil)
