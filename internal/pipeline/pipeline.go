// Package pipeline wires the stages together: fetch pending reviews, run the
// correction pass, optionally run the spelling annotation pass, and write the
// results back. Every stage leaves a JSON snapshot in the home directory so a
// run can be inspected or resumed by hand.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"revizor/internal/home"
	"revizor/internal/orchestrator"
	"revizor/internal/review"
)

// Fetcher pulls pending reviews from the configured spreadsheets.
type Fetcher interface {
	Fetch(ctx context.Context, spreadsheets map[string]string) (review.Collection, error)
}

// Updater writes processed reviews back.
type Updater interface {
	Update(ctx context.Context, spreadsheets map[string]string, data review.Collection) error
}

// Stages are the per-record LLM operations.
type Stages interface {
	CheckReview(ctx context.Context, rec review.Record) (review.Record, error)
	MarkSpelling(ctx context.Context, rec review.Record) (review.Record, error)
}

// Config holds pipeline construction parameters.
type Config struct {
	Fetcher Fetcher
	Updater Updater
	Stages  Stages
	Home    *home.Dir

	// Sheets maps spreadsheet names to their IDs.
	Sheets map[string]string

	MaxConcurrent   int
	SpellingEnabled bool
	Retryer         *orchestrator.Retryer
	Logger          *slog.Logger
}

// Pipeline runs the full review flow.
type Pipeline struct {
	fetcher Fetcher
	updater Updater
	stages  Stages
	home    *home.Dir
	sheets  map[string]string

	maxConcurrent   int
	spellingEnabled bool
	retryer         *orchestrator.Retryer
	logger          *slog.Logger
}

// New creates a Pipeline.
func New(cfg Config) *Pipeline {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	retryer := cfg.Retryer
	if retryer == nil {
		retryer = orchestrator.NewRetryer(logger)
	}
	return &Pipeline{
		fetcher:         cfg.Fetcher,
		updater:         cfg.Updater,
		stages:          cfg.Stages,
		home:            cfg.Home,
		sheets:          cfg.Sheets,
		maxConcurrent:   cfg.MaxConcurrent,
		spellingEnabled: cfg.SpellingEnabled,
		retryer:         retryer,
		logger:          logger,
	}
}

// Fetch pulls pending reviews and snapshots them.
func (p *Pipeline) Fetch(ctx context.Context) (review.Collection, error) {
	col, err := p.fetcher.Fetch(ctx, p.sheets)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if err := p.snapshot(col, p.home.ReviewsSnapshotPath()); err != nil {
		return nil, err
	}
	return col, nil
}

// Process runs the correction stage over the collection and snapshots the
// result. Individual failures are retried and, if still failing, leave the
// record unprocessed.
func (p *Pipeline) Process(ctx context.Context, col review.Collection) (review.Collection, orchestrator.Stats, error) {
	out, stats := orchestrator.RunAll(ctx, col,
		func(ctx context.Context, sheet, worksheet string, index int, rec review.Record) (review.Record, error) {
			return orchestrator.Do(ctx, p.retryer, "check_review",
				func(ctx context.Context) (review.Record, error) {
					return p.stages.CheckReview(ctx, rec)
				})
		},
		orchestrator.Options{
			MaxConcurrent: p.maxConcurrent,
			Cost:          func(r review.Record) float64 { return r.Cost },
			Logger:        p.logger,
		})

	if err := p.snapshot(out, p.home.ProcessedSnapshotPath()); err != nil {
		return nil, stats, err
	}
	return out, stats, nil
}

// Mark runs the spelling annotation stage and snapshots the result.
func (p *Pipeline) Mark(ctx context.Context, col review.Collection) (review.Collection, orchestrator.Stats, error) {
	out, stats := orchestrator.RunAll(ctx, col,
		func(ctx context.Context, sheet, worksheet string, index int, rec review.Record) (review.Record, error) {
			return orchestrator.Do(ctx, p.retryer, "mark_spelling",
				func(ctx context.Context) (review.Record, error) {
					return p.stages.MarkSpelling(ctx, rec)
				})
		},
		orchestrator.Options{
			MaxConcurrent: p.maxConcurrent,
			Cost:          func(r review.Record) float64 { return r.SpellingCost },
			Logger:        p.logger,
		})

	if err := p.snapshot(out, p.home.MarkedSnapshotPath()); err != nil {
		return nil, stats, err
	}
	return out, stats, nil
}

// Update writes the collection back to the spreadsheets.
func (p *Pipeline) Update(ctx context.Context, col review.Collection) error {
	if err := p.updater.Update(ctx, p.sheets, col); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	return nil
}

// Run executes one full cycle: fetch, correct, annotate, write back. An empty
// fetch ends the cycle early without touching the spreadsheets.
func (p *Pipeline) Run(ctx context.Context) error {
	col, err := p.Fetch(ctx)
	if err != nil {
		return err
	}
	if col.Total() == 0 {
		p.logger.Info("no pending reviews")
		return nil
	}
	p.logger.Info("fetched pending reviews", "count", col.Total())

	col, _, err = p.Process(ctx, col)
	if err != nil {
		return err
	}

	if p.spellingEnabled {
		col, _, err = p.Mark(ctx, col)
		if err != nil {
			return err
		}
	}

	return p.Update(ctx, col)
}

// Loop runs cycles until the context is cancelled. interval is consulted
// before every sleep, so a hot-reloaded config changes the cadence of a
// running loop. Cycle errors are logged, not fatal.
func (p *Pipeline) Loop(ctx context.Context, interval func() time.Duration) error {
	for {
		if err := p.Run(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.logger.Error("pipeline cycle failed", "error", err)
		}

		d := interval()
		p.logger.Info("sleeping until next cycle", "interval", d)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d):
		}
	}
}

func (p *Pipeline) snapshot(col review.Collection, path string) error {
	if p.home == nil {
		return nil
	}
	if err := review.Save(path, col); err != nil {
		return fmt.Errorf("snapshot %s: %w", path, err)
	}
	p.logger.Info("snapshot saved", "path", path, "reviews", col.Total())
	return nil
}
