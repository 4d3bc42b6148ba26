// Package orchestrator runs per-review work over a whole collection with
// bounded concurrency and retry. Failures are contained to their item: a
// failed review keeps its original record and the run continues.
package orchestrator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"revizor/internal/review"
)

// ItemFunc processes one review record and returns its updated form.
type ItemFunc func(ctx context.Context, sheet, worksheet string, index int, rec review.Record) (review.Record, error)

// Options configures a run.
type Options struct {
	// MaxConcurrent bounds simultaneous item calls (default 5).
	MaxConcurrent int

	// Cost extracts the per-record cost used for run statistics.
	Cost func(review.Record) float64

	Logger *slog.Logger
}

// Stats summarizes one run.
type Stats struct {
	Duration  time.Duration
	Items     int
	Failed    int
	TotalCost float64
	AvgCost   float64
}

// RunAll applies fn to every record in the collection and returns a new
// collection with the results. Each worker writes only its own slot, so no
// two goroutines ever touch the same record.
func RunAll(ctx context.Context, col review.Collection, fn ItemFunc, opts Options) (review.Collection, Stats) {
	maxConcurrent := opts.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 5
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	out := col.Clone()
	start := time.Now()

	sem := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup

	var mu sync.Mutex
	failed := 0

	for sheet, worksheets := range out {
		for worksheet, records := range worksheets {
			for i := range records {
				wg.Add(1)
				go func(sheet, worksheet string, index int, rec review.Record) {
					defer wg.Done()

					sem <- struct{}{}
					defer func() { <-sem }()

					updated, err := fn(ctx, sheet, worksheet, index, rec)
					if err != nil {
						logger.Error("review processing failed",
							"sheet", sheet,
							"worksheet", worksheet,
							"index", index,
							"error", err)
						mu.Lock()
						failed++
						mu.Unlock()
						return
					}
					out[sheet][worksheet][index] = updated
				}(sheet, worksheet, i, records[i])
			}
		}
	}
	wg.Wait()

	stats := Stats{
		Duration: time.Since(start),
		Items:    out.Total(),
		Failed:   failed,
	}
	if opts.Cost != nil {
		stats.TotalCost = out.SumCost(opts.Cost)
	}
	if stats.Items > 0 {
		stats.AvgCost = stats.TotalCost / float64(stats.Items)
	}

	logger.Info("run complete",
		"items", stats.Items,
		"failed", stats.Failed,
		"total_cost_usd", stats.TotalCost,
		"avg_cost_usd", stats.AvgCost,
		"duration", stats.Duration)

	return out, stats
}
