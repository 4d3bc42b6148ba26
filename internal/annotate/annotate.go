// Package annotate turns LLM spelling markup into colored spans for
// rich-text rendering. The model marks orthographic errors with [[..]]
// delimiters; Annotate strips the markup and reports error spans, plus
// change spans for words that differ from the original review text.
//
// Offsets are rune offsets into the clean (markup-stripped) text, matching
// the character indexing the Sheets formatting API expects.
package annotate

import "sort"

// Kind classifies a span.
type Kind int

const (
	// KindError marks an orthographic error flagged by the model.
	KindError Kind = iota
	// KindChange marks a word changed relative to the original text.
	KindChange
)

// Span is a half-open [Start, End) rune range in the clean text.
type Span struct {
	Start int
	End   int
	Kind  Kind
}

type segment struct {
	text    []rune
	isError bool
}

// Annotate parses marked-up text and returns the clean text together with
// the start-sorted, non-overlapping spans to color. original may be empty,
// in which case no change spans are computed. Error coloring takes
// precedence: change spans overlapping an error span are dropped.
func Annotate(marked, original string) (string, []Span) {
	if marked == "" {
		return "", nil
	}

	segments := parseMarked([]rune(marked))

	total := 0
	for _, seg := range segments {
		total += len(seg.text)
	}
	clean := make([]rune, 0, total)

	var spans []Span
	for _, seg := range segments {
		start := len(clean)
		clean = append(clean, seg.text...)
		if seg.isError && len(seg.text) > 0 {
			spans = append(spans, Span{Start: start, End: len(clean), Kind: KindError})
		}
	}

	cleanText := string(clean)

	if original != "" && original != cleanText {
		for _, cand := range changeSpans([]rune(original), clean) {
			if overlapsAny(cand, spans) {
				continue
			}
			spans = append(spans, cand)
		}
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End < spans[j].End
	})

	return cleanText, spans
}

// Strip removes [[..]] markers, keeping the marked content inline.
func Strip(marked string) string {
	clean, _ := Annotate(marked, "")
	return clean
}

// parseMarked splits text into literal and error segments. Markers are
// non-nested and matched left to right; an unclosed [[ is literal text.
func parseMarked(r []rune) []segment {
	var segments []segment
	last := 0
	i := 0
	for i < len(r)-1 {
		if r[i] != '[' || r[i+1] != '[' {
			i++
			continue
		}
		close := findClose(r, i+2)
		if close < 0 {
			// Unclosed marker, leave as literal.
			i++
			continue
		}
		if i > last {
			segments = append(segments, segment{text: r[last:i]})
		}
		segments = append(segments, segment{text: r[i+2 : close], isError: true})
		i = close + 2
		last = i
	}
	if last < len(r) {
		segments = append(segments, segment{text: r[last:]})
	}
	return segments
}

func findClose(r []rune, from int) int {
	for i := from; i < len(r)-1; i++ {
		if r[i] == ']' && r[i+1] == ']' {
			return i
		}
	}
	return -1
}

func overlapsAny(s Span, spans []Span) bool {
	for _, e := range spans {
		if s.Start < e.End && e.Start < s.End {
			return true
		}
	}
	return false
}
