package annotate

import (
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
)

// token is one whitespace-delimited word with its rune offsets.
type token struct {
	word  string
	start int
	end   int
}

// changeSpans aligns the original and clean texts word by word and returns a
// candidate change span for every word the alignment inserts or replaces on
// the clean side.
func changeSpans(original, clean []rune) []Span {
	origTokens := wordTokens(original)
	cleanTokens := wordTokens(clean)

	origWords := make([]string, len(origTokens))
	for i, t := range origTokens {
		origWords[i] = t.word
	}
	cleanWords := make([]string, len(cleanTokens))
	for i, t := range cleanTokens {
		cleanWords[i] = t.word
	}

	matcher := difflib.NewMatcher(origWords, cleanWords)

	var spans []Span
	for _, op := range matcher.GetOpCodes() {
		if op.Tag != 'r' && op.Tag != 'i' {
			continue
		}
		for j := op.J1; j < op.J2; j++ {
			t := cleanTokens[j]
			if t.start >= t.end {
				continue
			}
			spans = append(spans, Span{Start: t.start, End: t.end, Kind: KindChange})
		}
	}
	return spans
}

// wordTokens splits text into non-whitespace runs, recording rune offsets so
// diff opcodes can be mapped back to positions in the clean text.
func wordTokens(r []rune) []token {
	var tokens []token
	i := 0
	for i < len(r) {
		if unicode.IsSpace(r[i]) {
			i++
			continue
		}
		start := i
		for i < len(r) && !unicode.IsSpace(r[i]) {
			i++
		}
		tokens = append(tokens, token{word: string(r[start:i]), start: start, end: i})
	}
	return tokens
}

