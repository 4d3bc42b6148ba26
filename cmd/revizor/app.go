package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"revizor/internal/checker"
	"revizor/internal/config"
	"revizor/internal/gateway"
	"revizor/internal/home"
	"revizor/internal/orchestrator"
	"revizor/internal/pipeline"
	"revizor/internal/pricing"
	"revizor/internal/providers"
	"revizor/internal/sheets"
)

// app holds the shared pieces every command starts from. Heavier parts
// (sheets client, LLM stack) are built on demand so commands only pay for
// what they use.
type app struct {
	home   *home.Dir
	mgr    *config.Manager
	cfg    *config.Config
	logger *slog.Logger
}

// newApp loads the home directory and configuration.
func newApp() (*app, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, err
	}
	if err := h.EnsureExists(); err != nil {
		return nil, err
	}

	path := cfgFile
	if path == "" && h.ConfigExists() {
		path = h.ConfigPath()
	}
	mgr, err := config.NewManager(path)
	if err != nil {
		return nil, err
	}
	cfg := mgr.Get()

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	logger := newLogger(level)
	slog.SetDefault(logger)

	return &app{home: h, mgr: mgr, cfg: cfg, logger: logger}, nil
}

// watchConfig turns on config hot reload for long-running commands. A reload
// adjusts the log level and the loop interval on the fly; provider, sheet and
// model changes still need a restart because the LLM stack is built once.
func (a *app) watchConfig() {
	a.mgr.OnChange(func(cfg *config.Config) {
		level := cfg.LogLevel
		if logLevel != "" {
			level = logLevel
		}
		slog.SetDefault(newLogger(level))
		a.logger.Info("configuration reloaded", "interval", a.interval())
	})
	a.mgr.WatchConfig()
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// pricingTable loads the per-model rates from the configured path.
func (a *app) pricingTable() (pricing.Table, error) {
	path := a.cfg.PricingFile
	if path == "" {
		path = a.home.PricingPath()
	}
	table, err := pricing.Load(path)
	if err != nil {
		return nil, fmt.Errorf("pricing table: %w", err)
	}
	return table, nil
}

// checkerStages builds the LLM stack: provider registry, gateway, checker.
func (a *app) checkerStages() (*checker.Checker, error) {
	table, err := a.pricingTable()
	if err != nil {
		return nil, err
	}
	if !table.Has(a.cfg.Pipeline.Model) {
		return nil, fmt.Errorf("model %q has no pricing entry", a.cfg.Pipeline.Model)
	}

	registry := providers.NewRegistryFromConfig(a.cfg.ToRegistryConfig())
	registry.SetLogger(a.logger)
	if len(registry.List()) == 0 {
		return nil, fmt.Errorf("no providers enabled; check api keys in %s", a.home.ConfigPath())
	}

	gw := gateway.New(gateway.Config{
		Registry: registry,
		Pricing:  table,
		Routes:   a.cfg.Pipeline.Routes,
		Logger:   a.logger,
	})

	return checker.New(checker.Config{
		Gateway:       gw,
		Model:         a.cfg.Pipeline.Model,
		SpellingModel: a.cfg.Pipeline.SpellingModel,
		Logger:        a.logger,
	}), nil
}

// sheetsClient builds the Google Sheets client from service account
// credentials.
func (a *app) sheetsClient(ctx context.Context) (*sheets.Client, error) {
	path := a.cfg.CredentialsFile
	if path == "" {
		path = a.home.CredentialsPath()
	}
	client, err := sheets.NewClientFromFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("sheets credentials: %w", err)
	}
	return client, nil
}

// retryer builds the per-review retry policy from config.
func (a *app) retryer() *orchestrator.Retryer {
	attempts := a.cfg.Pipeline.MaxAttempts
	if attempts == 0 {
		attempts = orchestrator.DefaultAttempts
	}
	return &orchestrator.Retryer{
		Attempts:  attempts,
		BaseDelay: orchestrator.DefaultBaseDelay,
		Logger:    a.logger,
	}
}

// newPipeline wires the full pipeline.
func (a *app) newPipeline(ctx context.Context) (*pipeline.Pipeline, error) {
	if len(a.cfg.Sheets) == 0 {
		return nil, fmt.Errorf("no spreadsheets configured; add them under \"sheets\" in %s", a.home.ConfigPath())
	}

	stages, err := a.checkerStages()
	if err != nil {
		return nil, err
	}
	client, err := a.sheetsClient(ctx)
	if err != nil {
		return nil, err
	}

	return pipeline.New(pipeline.Config{
		Fetcher:         sheets.NewFetcher(client, a.logger),
		Updater:         sheets.NewUpdater(client, a.logger),
		Stages:          stages,
		Home:            a.home,
		Sheets:          a.cfg.Sheets,
		MaxConcurrent:   a.cfg.Pipeline.MaxConcurrent,
		SpellingEnabled: a.cfg.Pipeline.SpellingEnabled,
		Retryer:         a.retryer(),
		Logger:          a.logger,
	}), nil
}

// interval returns the loop sleep from the live config, so a hot reload can
// change the cadence between cycles. Manager.Get is the synchronized read.
func (a *app) interval() time.Duration {
	minutes := a.mgr.Get().Pipeline.IntervalMinutes
	if minutes <= 0 {
		minutes = 5
	}
	return time.Duration(minutes) * time.Minute
}
