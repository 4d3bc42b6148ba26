package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestResolveEnvVars(t *testing.T) {
	t.Setenv("REVIZOR_TEST_KEY", "secret-value")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple reference", input: "${REVIZOR_TEST_KEY}", want: "secret-value"},
		{name: "embedded reference", input: "Bearer ${REVIZOR_TEST_KEY}!", want: "Bearer secret-value!"},
		{name: "unset variable becomes empty", input: "${REVIZOR_UNSET_VAR_12345}", want: ""},
		{name: "plain string untouched", input: "no-refs-here", want: "no-refs-here"},
		{name: "empty string", input: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveEnvVars(tt.input); got != tt.want {
				t.Errorf("ResolveEnvVars(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToRegistryConfig(t *testing.T) {
	t.Setenv("REVIZOR_TEST_XAI_KEY", "xai-key-123")

	cfg := &Config{
		Providers: map[string]ProviderCfg{
			"xai": {
				Type:      "xai",
				APIKey:    "${REVIZOR_TEST_XAI_KEY}",
				RateLimit: 4.0,
				Enabled:   true,
			},
			"anthropic": {
				Type:      "anthropic",
				APIKey:    "plain-key",
				MaxTokens: 2048,
				Enabled:   false,
			},
		},
	}

	rc := cfg.ToRegistryConfig()

	xai := rc.Providers["xai"]
	if xai.APIKey != "xai-key-123" {
		t.Errorf("xai APIKey = %q, env reference not resolved", xai.APIKey)
	}
	if xai.RPS != 4.0 || !xai.Enabled {
		t.Errorf("xai config = %+v", xai)
	}

	ant := rc.Providers["anthropic"]
	if ant.APIKey != "plain-key" || ant.MaxTokens != 2048 || ant.Enabled {
		t.Errorf("anthropic config = %+v", ant)
	}
}

func TestReloadNotifiesSubscribers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: info\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	mgr, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager() error: %v", err)
	}
	if mgr.Get().LogLevel != "info" {
		t.Fatalf("initial LogLevel = %q, want info", mgr.Get().LogLevel)
	}

	var got *Config
	mgr.OnChange(func(cfg *Config) { got = cfg })

	// The watcher re-reads the file and then calls reload; drive the same
	// sequence by hand to keep the test free of fsnotify timing.
	if err := os.WriteFile(path, []byte("log_level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("re-read config: %v", err)
	}
	mgr.reload()

	if got == nil {
		t.Fatal("OnChange callback was not invoked")
	}
	if got.LogLevel != "debug" {
		t.Errorf("callback LogLevel = %q, want debug", got.LogLevel)
	}
	if mgr.Get().LogLevel != "debug" {
		t.Errorf("Get().LogLevel = %q after reload, want debug", mgr.Get().LogLevel)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Pipeline.Model == "" {
		t.Error("default pipeline model should be set")
	}
	if cfg.Pipeline.MaxConcurrent <= 0 {
		t.Error("default max_concurrent should be positive")
	}
	if cfg.Pipeline.MaxAttempts == 0 {
		t.Error("default max_attempts should be positive")
	}

	enabled := cfg.EnabledProviders()
	if _, ok := enabled["xai"]; !ok {
		t.Error("xai should be enabled by default")
	}
	if _, ok := enabled["anthropic"]; ok {
		t.Error("anthropic should be disabled by default")
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	content := string(data)
	for _, want := range []string{"providers:", "pipeline:", "${XAI_API_KEY}", "grok-4-1-fast-reasoning"} {
		if !strings.Contains(content, want) {
			t.Errorf("written config missing %q", want)
		}
	}
}
