package sheets

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"revizor/internal/annotate"
)

// Colors used for review annotations: red for spelling errors, green for
// corrections, black to reset the format after a colored zone.
var (
	colorRed   = Color{Red: 1.0}
	colorGreen = Color{Green: 0.6}
	colorBlack = Color{}
)

// Request is one structural batchUpdate request. Only repeatCell is used.
type Request struct {
	RepeatCell *RepeatCellRequest `json:"repeatCell,omitempty"`
}

// RepeatCellRequest overwrites a cell range with the given cell data.
type RepeatCellRequest struct {
	Range  GridRange `json:"range"`
	Cell   CellData  `json:"cell"`
	Fields string    `json:"fields"`
}

// GridRange addresses cells by zero-based half-open row/column intervals.
type GridRange struct {
	SheetID          int64 `json:"sheetId"`
	StartRowIndex    int   `json:"startRowIndex"`
	EndRowIndex      int   `json:"endRowIndex"`
	StartColumnIndex int   `json:"startColumnIndex"`
	EndColumnIndex   int   `json:"endColumnIndex"`
}

// CellData carries the cell value plus its rich-text formatting.
type CellData struct {
	UserEnteredValue *ExtendedValue  `json:"userEnteredValue,omitempty"`
	TextFormatRuns   []TextFormatRun `json:"textFormatRuns,omitempty"`
}

// ExtendedValue is the cell value union; only strings are written here.
type ExtendedValue struct {
	StringValue string `json:"stringValue"`
}

// TextFormatRun starts a format at a character index that lasts until the
// next run or the end of the cell.
type TextFormatRun struct {
	StartIndex int        `json:"startIndex"`
	Format     TextFormat `json:"format"`
}

// TextFormat holds the subset of formatting the pipeline writes.
type TextFormat struct {
	ForegroundColor Color `json:"foregroundColor"`
}

// Color is an RGB color with components in [0, 1].
type Color struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}

// SpanRuns converts annotation spans into text format runs for a cell
// holding text. Each colored zone opens a run and, unless it reaches the end
// of the text, is followed by a black reset run. Spans use rune offsets, as
// does the Sheets run index for the texts handled here.
func SpanRuns(spans []annotate.Span, text string) []TextFormatRun {
	if len(spans) == 0 {
		return nil
	}
	textLen := utf8.RuneCountInString(text)

	sorted := make([]annotate.Span, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	runs := make([]TextFormatRun, 0, 2*len(sorted))
	for _, span := range sorted {
		color := colorGreen
		if span.Kind == annotate.KindError {
			color = colorRed
		}
		runs = append(runs, TextFormatRun{
			StartIndex: span.Start,
			Format:     TextFormat{ForegroundColor: color},
		})
		if span.End < textLen {
			runs = append(runs, TextFormatRun{
				StartIndex: span.End,
				Format:     TextFormat{ForegroundColor: colorBlack},
			})
		}
	}
	return runs
}

// A1 converts one-based row and column numbers to A1 notation.
func A1(row, col int) string {
	return fmt.Sprintf("%s%d", columnLetter(col), row)
}

// columnLetter converts a one-based column number to its letter form
// (1 -> A, 27 -> AA).
func columnLetter(col int) string {
	letters := ""
	for col > 0 {
		col--
		letters = string(rune('A'+col%26)) + letters
		col /= 26
	}
	return letters
}
