package orchestrator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"revizor/internal/review"
)

func testCollection() review.Collection {
	return review.Collection{
		"sheet1": {
			"Лист1": []review.Record{
				{Text: "отзыв один"},
				{Text: "отзыв два"},
				{Text: "отзыв три"},
				{Text: "отзыв четыре"},
				{Text: "отзыв пять"},
			},
		},
	}
}

func TestRunAll(t *testing.T) {
	t.Run("updates every slot", func(t *testing.T) {
		col := testCollection()

		out, stats := RunAll(context.Background(), col,
			func(ctx context.Context, sheet, ws string, index int, rec review.Record) (review.Record, error) {
				rec.CorrectedText = "done: " + rec.Text
				rec.Cost = 0.01
				return rec, nil
			},
			Options{MaxConcurrent: 2, Cost: func(r review.Record) float64 { return r.Cost }},
		)

		if stats.Items != 5 || stats.Failed != 0 {
			t.Errorf("stats = %+v, want 5 items 0 failed", stats)
		}
		if got, want := stats.TotalCost, 0.05; got < want-1e-9 || got > want+1e-9 {
			t.Errorf("TotalCost = %v, want %v", got, want)
		}
		if got, want := stats.AvgCost, 0.01; got < want-1e-9 || got > want+1e-9 {
			t.Errorf("AvgCost = %v, want %v", got, want)
		}
		for i, rec := range out["sheet1"]["Лист1"] {
			if rec.CorrectedText == "" {
				t.Errorf("record %d not updated", i)
			}
		}
		// Input collection must be untouched.
		for i, rec := range col["sheet1"]["Лист1"] {
			if rec.CorrectedText != "" {
				t.Errorf("input record %d was mutated", i)
			}
		}
	})

	t.Run("failed item keeps original record", func(t *testing.T) {
		col := testCollection()

		out, stats := RunAll(context.Background(), col,
			func(ctx context.Context, sheet, ws string, index int, rec review.Record) (review.Record, error) {
				if index == 2 {
					return rec, errors.New("boom")
				}
				rec.CorrectedText = "ok"
				return rec, nil
			},
			Options{MaxConcurrent: 1},
		)

		if stats.Failed != 1 {
			t.Errorf("Failed = %d, want 1", stats.Failed)
		}
		records := out["sheet1"]["Лист1"]
		for i, rec := range records {
			if i == 2 {
				if rec.CorrectedText != "" {
					t.Errorf("failed slot should keep original, got %q", rec.CorrectedText)
				}
				continue
			}
			if rec.CorrectedText != "ok" {
				t.Errorf("record %d = %q, want ok", i, rec.CorrectedText)
			}
		}
	})

	t.Run("respects concurrency bound", func(t *testing.T) {
		col := testCollection()

		var active, peak int64
		var mu sync.Mutex

		RunAll(context.Background(), col,
			func(ctx context.Context, sheet, ws string, index int, rec review.Record) (review.Record, error) {
				cur := atomic.AddInt64(&active, 1)
				mu.Lock()
				if cur > peak {
					peak = cur
				}
				mu.Unlock()
				defer atomic.AddInt64(&active, -1)
				return rec, nil
			},
			Options{MaxConcurrent: 2},
		)

		if peak > 2 {
			t.Errorf("peak concurrency = %d, want <= 2", peak)
		}
	})

	t.Run("empty collection", func(t *testing.T) {
		out, stats := RunAll(context.Background(), review.Collection{},
			func(ctx context.Context, sheet, ws string, index int, rec review.Record) (review.Record, error) {
				return rec, nil
			},
			Options{},
		)
		if stats.Items != 0 || stats.AvgCost != 0 {
			t.Errorf("stats = %+v, want zero items and zero avg cost", stats)
		}
		if out.Total() != 0 {
			t.Errorf("Total() = %d, want 0", out.Total())
		}
	})
}
