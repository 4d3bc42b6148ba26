// Package review defines the unit of work flowing through the pipeline: one
// customer review pulled from a spreadsheet row, grouped by spreadsheet and
// worksheet so results can be written back to their original location.
package review

import "time"

// Gender tags as they appear in the spreadsheets.
const (
	GenderMale    = "М"
	GenderFemale  = "Ж"
	GenderNeutral = "Н"
)

// Record is one review. Text is the immutable source content; the remaining
// fields are filled in by the pipeline stages.
type Record struct {
	Text          string  `json:"text"`
	Gender        string  `json:"gender"`
	CorrectedText string  `json:"corrected_text"`
	Cost          float64 `json:"cost,omitempty"`
	SpellingCost  float64 `json:"spelling_cost,omitempty"`

	// RFC 3339 stage timestamps. Absence marks a record that a stage
	// skipped or failed; such records are left untouched on write-back.
	ProcessedAt string `json:"processed_at,omitempty"`
	MarkedAt    string `json:"marked_at,omitempty"`
}

// NeedsCorrection reports whether the record is eligible for the correction
// stage: source text present and not corrected yet.
func (r Record) NeedsCorrection() bool {
	return r.Text != "" && r.CorrectedText == ""
}

// NeedsSpelling reports whether the record is eligible for the spelling
// annotation stage.
func (r Record) NeedsSpelling() bool {
	return r.CorrectedText != ""
}

// Stamp formats a stage timestamp.
func Stamp(t time.Time) string {
	return t.Format(time.RFC3339)
}

// Collection groups records by spreadsheet name, then worksheet title,
// mirroring the snapshot JSON layout exactly.
type Collection map[string]map[string][]Record

// Total returns the number of records across all groups.
func (c Collection) Total() int {
	n := 0
	for _, worksheets := range c {
		for _, records := range worksheets {
			n += len(records)
		}
	}
	return n
}

// Clone returns a deep copy of the collection. Record slices are copied so
// the clone's slots can be written independently of the original.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	for sheet, worksheets := range c {
		out[sheet] = make(map[string][]Record, len(worksheets))
		for ws, records := range worksheets {
			cp := make([]Record, len(records))
			copy(cp, records)
			out[sheet][ws] = cp
		}
	}
	return out
}

// SumCost folds a per-record value over the whole collection.
func (c Collection) SumCost(cost func(Record) float64) float64 {
	total := 0.0
	for _, worksheets := range c {
		for _, records := range worksheets {
			for _, r := range records {
				total += cost(r)
			}
		}
	}
	return total
}
