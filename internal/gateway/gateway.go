// Package gateway routes model calls to provider clients and converts raw
// token usage into billed cost before anything downstream sees the result.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"revizor/internal/pricing"
	"revizor/internal/providers"
)

// Result is one completed, costed model call.
type Result struct {
	Content   string
	Model     string
	Provider  string
	RequestID string
	Usage     pricing.Usage
	Cost      float64
	Duration  time.Duration
}

// Gateway dispatches requests to the provider registry.
type Gateway struct {
	registry *providers.Registry
	pricing  pricing.Table
	routes   map[string]string // model -> provider name
	logger   *slog.Logger
}

// Config holds gateway construction parameters. Routes maps model names to
// provider names; models without an explicit route fall back to prefix
// matching.
type Config struct {
	Registry *providers.Registry
	Pricing  pricing.Table
	Routes   map[string]string
	Logger   *slog.Logger
}

// New creates a Gateway.
func New(cfg Config) *Gateway {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	routes := cfg.Routes
	if routes == nil {
		routes = make(map[string]string)
	}
	return &Gateway{
		registry: cfg.Registry,
		pricing:  cfg.Pricing,
		routes:   routes,
		logger:   logger,
	}
}

// prefixRoutes maps well-known model name prefixes to provider names for
// models not listed in the explicit route table.
var prefixRoutes = []struct {
	prefix   string
	provider string
}{
	{"gpt-", providers.OpenAIName},
	{"o1", providers.OpenAIName},
	{"o3", providers.OpenAIName},
	{"grok", providers.XAIName},
	{"claude", providers.AnthropicName},
	{"gemini", providers.GeminiName},
}

// Route resolves the provider name for a model.
func (g *Gateway) Route(model string) (string, error) {
	if name, ok := g.routes[model]; ok {
		return name, nil
	}
	for _, pr := range prefixRoutes {
		if strings.HasPrefix(model, pr.prefix) {
			return pr.provider, nil
		}
	}
	return "", fmt.Errorf("%w: no provider route for %q", ErrUnsupportedModel, model)
}

// Request sends messages to the given model and returns the costed result.
// Models without a pricing entry are rejected before dispatch so a request
// can never produce an unaccountable bill.
func (g *Gateway) Request(ctx context.Context, model string, messages []providers.Message) (*Result, error) {
	if !g.pricing.Has(model) {
		return nil, fmt.Errorf("%w: no pricing for model %q", ErrUnsupportedModel, model)
	}

	providerName, err := g.Route(model)
	if err != nil {
		return nil, err
	}
	client, err := g.registry.Get(providerName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedModel, err)
	}

	requestID := uuid.New().String()
	start := time.Now()

	resp, err := client.Chat(ctx, model, messages)
	if err != nil {
		g.logger.Error("model request failed",
			"request_id", requestID,
			"model", model,
			"provider", providerName,
			"error", err)
		return nil, err
	}
	duration := time.Since(start)

	cost, err := pricing.CostStrict(g.pricing, model, resp.Usage)
	if err != nil {
		return nil, fmt.Errorf("costing request %s: %w", requestID, err)
	}

	content := resp.Content
	if stripped := stripCodeFences(content); stripped != "" {
		content = stripped
	}

	g.logger.Info("model request completed",
		"request_id", requestID,
		"model", model,
		"provider", providerName,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"cached_tokens", resp.Usage.CachedTokens,
		"reasoning_tokens", resp.Usage.ReasoningTokens,
		"cost_usd", cost,
		"duration", duration)

	return &Result{
		Content:   content,
		Model:     resp.Model,
		Provider:  providerName,
		RequestID: requestID,
		Usage:     resp.Usage,
		Cost:      cost,
		Duration:  duration,
	}, nil
}

// stripCodeFences removes a wrapping markdown code fence from model output.
// Returns "" when the content is not fenced.
func stripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return ""
	}

	// Drop first fence line.
	lines = lines[1:]
	// Drop trailing fence if present.
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
