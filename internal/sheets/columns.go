package sheets

// Header spellings seen across the production spreadsheets. Matching is
// exact; the first variant found wins.
var (
	textHeaders      = []string{"Исходный текст", "text", "текст"}
	genderHeaders    = []string{"Пол", "gender", "пол"}
	correctedHeaders = []string{"Текст после правок", "corrected_text", "исправленный_текст", "исправленный текст"}
)

// Columns holds the zero-based indices of the three review columns.
type Columns struct {
	Text      int
	Gender    int
	Corrected int
}

// cell returns the row value at index i. The values API omits trailing empty
// cells, so data rows can be shorter than the header row; a missing cell
// reads as empty. A pending review is exactly a row whose corrected cell is
// empty, so the shorter shape is the common case, not an anomaly.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// FindColumns locates the review columns in a header row. ok is false when
// any of the three is missing.
func FindColumns(headers []string) (Columns, bool) {
	text, okT := findHeader(headers, textHeaders)
	gender, okG := findHeader(headers, genderHeaders)
	corrected, okC := findHeader(headers, correctedHeaders)
	if !okT || !okG || !okC {
		return Columns{}, false
	}
	return Columns{Text: text, Gender: gender, Corrected: corrected}, true
}

func findHeader(headers, variants []string) (int, bool) {
	for _, v := range variants {
		for i, h := range headers {
			if h == v {
				return i, true
			}
		}
	}
	return 0, false
}
