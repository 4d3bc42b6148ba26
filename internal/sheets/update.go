package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"revizor/internal/annotate"
	"revizor/internal/review"
)

// Updater writes processed reviews back into their spreadsheets.
type Updater struct {
	client *Client
	logger *slog.Logger
}

// NewUpdater creates an Updater.
func NewUpdater(client *Client, logger *slog.Logger) *Updater {
	if logger == nil {
		logger = slog.Default()
	}
	return &Updater{client: client, logger: logger}
}

// Update writes the collection back. Rows are matched by their verbatim
// trimmed source text and only rows whose corrected column is still empty
// are touched, so a concurrent manual edit wins over the pipeline. Records
// the correction stage never stamped are left alone entirely. Gender
// goes in as a plain value; corrected text goes in twice, first as a plain
// value and then as a repeatCell with colored format runs.
func (u *Updater) Update(ctx context.Context, spreadsheets map[string]string, data review.Collection) error {
	for name, id := range spreadsheets {
		worksheetData, ok := data[name]
		if !ok || len(worksheetData) == 0 {
			u.logger.Info("no data for spreadsheet, skipping", "sheet", name)
			continue
		}

		worksheets, err := u.client.Worksheets(ctx, id)
		if err != nil {
			return fmt.Errorf("spreadsheet %s: %w", name, err)
		}
		sheetIDs := make(map[string]int64, len(worksheets))
		for _, ws := range worksheets {
			sheetIDs[ws.Title] = ws.SheetID
		}

		for title, records := range worksheetData {
			sheetID, ok := sheetIDs[title]
			if !ok {
				u.logger.Error("worksheet not found", "sheet", name, "worksheet", title)
				continue
			}
			if err := u.updateWorksheet(ctx, id, name, title, sheetID, records); err != nil {
				return fmt.Errorf("spreadsheet %s worksheet %s: %w", name, title, err)
			}
		}
	}
	return nil
}

func (u *Updater) updateWorksheet(ctx context.Context, spreadsheetID, sheet, title string, sheetID int64, records []review.Record) error {
	rows, err := u.client.Values(ctx, spreadsheetID, title)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	cols, ok := FindColumns(rows[0])
	if !ok {
		u.logger.Error("worksheet missing review columns",
			"sheet", sheet,
			"worksheet", title,
			"headers", rows[0])
		return nil
	}

	byText := make(map[string]review.Record, len(records))
	for _, rec := range records {
		if text := strings.TrimSpace(rec.Text); text != "" {
			byText[text] = rec
		}
	}

	var values []ValueUpdate
	var formats []Request
	updated := 0

	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header
		text := strings.TrimSpace(cell(row, cols.Text))
		corrected := strings.TrimSpace(cell(row, cols.Corrected))
		if text == "" || corrected != "" {
			continue
		}

		rec, ok := byText[text]
		if !ok {
			continue
		}

		// A record without a correction timestamp failed or was skipped by
		// the LLM stage; its row stays untouched.
		if rec.ProcessedAt == "" {
			continue
		}

		if rec.Gender != "" {
			values = append(values, ValueUpdate{
				Range:  rangeA1(title, rowNum, cols.Gender+1),
				Values: [][]string{{rec.Gender}},
			})
		}

		if rec.CorrectedText == "" {
			continue
		}
		marked := trimQuotes(rec.CorrectedText)
		clean, spans := annotate.Annotate(marked, text)

		values = append(values, ValueUpdate{
			Range:  rangeA1(title, rowNum, cols.Corrected+1),
			Values: [][]string{{clean}},
		})
		if runs := SpanRuns(spans, clean); len(runs) > 0 {
			formats = append(formats, Request{
				RepeatCell: &RepeatCellRequest{
					Range: GridRange{
						SheetID:          sheetID,
						StartRowIndex:    rowNum - 1,
						EndRowIndex:      rowNum,
						StartColumnIndex: cols.Corrected,
						EndColumnIndex:   cols.Corrected + 1,
					},
					Cell: CellData{
						UserEnteredValue: &ExtendedValue{StringValue: clean},
						TextFormatRuns:   runs,
					},
					Fields: "userEnteredValue,textFormatRuns",
				},
			})
		}
		updated++
	}

	if err := u.client.BatchUpdateValues(ctx, spreadsheetID, values); err != nil {
		return err
	}
	if err := u.client.BatchUpdate(ctx, spreadsheetID, formats); err != nil {
		return err
	}

	u.logger.Info("worksheet updated",
		"sheet", sheet,
		"worksheet", title,
		"rows", updated)
	return nil
}

// rangeA1 builds a single-cell range like "'Лист1'!C2".
func rangeA1(title string, row, col int) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'!" + A1(row, col)
}

// trimQuotes removes one layer of wrapping double quotes.
func trimQuotes(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
