package providers

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Registry holds references to provider clients. It supports config-driven
// instantiation and provides thread-safe access.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]Client
	logger  *slog.Logger
}

// NewRegistry creates a new empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]Client),
		logger:  slog.Default(),
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// Register registers a client by name.
func (r *Registry) Register(name string, client Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[name] = client
	if r.logger != nil {
		r.logger.Info("registered provider", "name", name)
	}
}

// Unregister removes a client by name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, name)
	if r.logger != nil {
		r.logger.Info("unregistered provider", "name", name)
	}
}

// Get returns a client by name.
func (r *Registry) Get(name string) (Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.clients[name]
	if !ok {
		return nil, fmt.Errorf("provider not found: %s", name)
	}
	return client, nil
}

// List returns all registered client names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	return names
}

// Has checks if a client is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.clients[name]
	return ok
}

// ClientConfig defines one provider to instantiate from config, with the
// API key already resolved.
type ClientConfig struct {
	Type      string // "openai", "xai", "anthropic", "gemini"
	APIKey    string
	BaseURL   string
	RPS       float64
	MaxTokens int64
	Timeout   time.Duration
	Enabled   bool
}

// RegistryConfig maps provider names to their configs.
type RegistryConfig struct {
	Providers map[string]ClientConfig
}

// NewRegistryFromConfig creates a registry with clients based on
// configuration. Only enabled providers with an API key are registered.
func NewRegistryFromConfig(cfg RegistryConfig) *Registry {
	r := NewRegistry()
	for name, provCfg := range cfg.Providers {
		if !provCfg.Enabled || provCfg.APIKey == "" {
			continue
		}
		client := createClient(provCfg)
		if client == nil {
			continue
		}
		r.clients[name] = client
	}
	return r
}

// createClient creates a client based on provider type.
func createClient(cfg ClientConfig) Client {
	switch cfg.Type {
	case "openai":
		return NewOpenAIClient(OpenAIConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			RPS:     cfg.RPS,
			Timeout: cfg.Timeout,
		})
	case "xai":
		return NewXAIClient(OpenAIConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			RPS:     cfg.RPS,
			Timeout: cfg.Timeout,
		})
	case "anthropic":
		return NewAnthropicClient(AnthropicConfig{
			APIKey:    cfg.APIKey,
			RPS:       cfg.RPS,
			MaxTokens: cfg.MaxTokens,
			Timeout:   cfg.Timeout,
		})
	case "gemini":
		return NewGeminiClient(GeminiConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			RPS:     cfg.RPS,
			Timeout: cfg.Timeout,
		})
	default:
		return nil
	}
}
