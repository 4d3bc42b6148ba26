package config

// Config holds revizor configuration.
// Stored at: {home}/config.yaml
type Config struct {
	LogLevel        string                 `mapstructure:"log_level" yaml:"log_level"`
	CredentialsFile string                 `mapstructure:"credentials_file" yaml:"credentials_file"` // Google service account JSON
	PricingFile     string                 `mapstructure:"pricing_file" yaml:"pricing_file"`
	Sheets          map[string]string      `mapstructure:"sheets" yaml:"sheets"` // Spreadsheet name -> ID
	Providers       map[string]ProviderCfg `mapstructure:"providers" yaml:"providers"`
	Pipeline        PipelineCfg            `mapstructure:"pipeline" yaml:"pipeline"`
}

// ProviderCfg configures one LLM provider.
type ProviderCfg struct {
	Type      string  `mapstructure:"type" yaml:"type"`             // "openai", "xai", "anthropic", "gemini"
	APIKey    string  `mapstructure:"api_key" yaml:"api_key"`       // Supports ${ENV_VAR} syntax
	BaseURL   string  `mapstructure:"base_url" yaml:"base_url"`     // Optional override
	RateLimit float64 `mapstructure:"rate_limit" yaml:"rate_limit"` // Requests per second
	MaxTokens int64   `mapstructure:"max_tokens" yaml:"max_tokens"` // Anthropic only
	Enabled   bool    `mapstructure:"enabled" yaml:"enabled"`
}

// PipelineCfg configures the review pipeline.
type PipelineCfg struct {
	Model           string            `mapstructure:"model" yaml:"model"`                       // Correction model
	SpellingModel   string            `mapstructure:"spelling_model" yaml:"spelling_model"`     // Defaults to model
	Routes          map[string]string `mapstructure:"routes" yaml:"routes"`                     // Model -> provider overrides
	MaxConcurrent   int               `mapstructure:"max_concurrent" yaml:"max_concurrent"`     // Parallel LLM calls
	MaxAttempts     uint              `mapstructure:"max_attempts" yaml:"max_attempts"`         // Per-review attempts
	IntervalMinutes int               `mapstructure:"interval_minutes" yaml:"interval_minutes"` // Loop mode sleep
	SpellingEnabled bool              `mapstructure:"spelling_enabled" yaml:"spelling_enabled"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Providers: map[string]ProviderCfg{
			"xai": {
				Type:      "xai",
				APIKey:    "${XAI_API_KEY}",
				RateLimit: 4.0,
				Enabled:   true,
			},
			"openai": {
				Type:      "openai",
				APIKey:    "${OPENAI_API_KEY}",
				RateLimit: 4.0,
				Enabled:   true,
			},
			"anthropic": {
				Type:      "anthropic",
				APIKey:    "${ANTHROPIC_API_KEY}",
				RateLimit: 2.0,
				MaxTokens: 4096,
				Enabled:   false,
			},
			"gemini": {
				Type:      "gemini",
				APIKey:    "${GEMINI_API_KEY}",
				RateLimit: 2.0,
				Enabled:   false,
			},
		},
		Pipeline: PipelineCfg{
			Model:           "grok-4-1-fast-reasoning",
			MaxConcurrent:   50,
			MaxAttempts:     3,
			IntervalMinutes: 5,
			SpellingEnabled: true,
		},
	}
}

// GetProvider returns a provider config by name.
func (c *Config) GetProvider(name string) (ProviderCfg, bool) {
	cfg, ok := c.Providers[name]
	return cfg, ok
}

// EnabledProviders returns all enabled providers.
func (c *Config) EnabledProviders() map[string]ProviderCfg {
	result := make(map[string]ProviderCfg)
	for name, cfg := range c.Providers {
		if cfg.Enabled {
			result[name] = cfg
		}
	}
	return result
}
