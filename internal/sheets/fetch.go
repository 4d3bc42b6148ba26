package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"revizor/internal/review"
)

// Fetcher pulls pending reviews out of the configured spreadsheets.
type Fetcher struct {
	client *Client
	logger *slog.Logger
}

// NewFetcher creates a Fetcher.
func NewFetcher(client *Client, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{client: client, logger: logger}
}

// Fetch reads every worksheet of every configured spreadsheet and collects
// the rows awaiting correction: source text present, corrected text empty.
// Worksheets without the expected columns or without qualifying rows are
// skipped. A spreadsheet that cannot be read fails the whole fetch so a
// partial snapshot is never mistaken for a full one.
func (f *Fetcher) Fetch(ctx context.Context, spreadsheets map[string]string) (review.Collection, error) {
	out := make(review.Collection, len(spreadsheets))

	for name, id := range spreadsheets {
		worksheets, err := f.client.Worksheets(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("spreadsheet %s: %w", name, err)
		}
		out[name] = make(map[string][]review.Record)

		for _, ws := range worksheets {
			rows, err := f.client.Values(ctx, id, ws.Title)
			if err != nil {
				return nil, fmt.Errorf("spreadsheet %s worksheet %s: %w", name, ws.Title, err)
			}
			records := collectPending(rows, f.logger, name, ws.Title)
			if len(records) > 0 {
				out[name][ws.Title] = records
			}
		}

		f.logger.Info("fetched spreadsheet",
			"sheet", name,
			"worksheets", len(out[name]),
			"reviews", countRecords(out[name]))
	}

	return out, nil
}

// collectPending filters worksheet rows down to records eligible for
// correction.
func collectPending(rows [][]string, logger *slog.Logger, sheet, worksheet string) []review.Record {
	if len(rows) == 0 {
		return nil
	}

	cols, ok := FindColumns(rows[0])
	if !ok {
		logger.Warn("worksheet missing review columns, skipping",
			"sheet", sheet,
			"worksheet", worksheet,
			"headers", rows[0])
		return nil
	}

	var records []review.Record
	for _, row := range rows[1:] {
		text := strings.TrimSpace(cell(row, cols.Text))
		gender := strings.TrimSpace(cell(row, cols.Gender))
		corrected := strings.TrimSpace(cell(row, cols.Corrected))

		if text != "" && corrected == "" {
			records = append(records, review.Record{Text: text, Gender: gender})
		}
	}
	return records
}

func countRecords(worksheets map[string][]review.Record) int {
	n := 0
	for _, records := range worksheets {
		n += len(records)
	}
	return n
}
