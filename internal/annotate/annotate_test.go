package annotate

import (
	"reflect"
	"testing"
)

func TestAnnotateMarkers(t *testing.T) {
	cases := []struct {
		name      string
		marked    string
		wantClean string
		wantSpans []Span
	}{
		{
			name:      "empty input",
			marked:    "",
			wantClean: "",
			wantSpans: nil,
		},
		{
			name:      "no markers",
			marked:    "просто текст",
			wantClean: "просто текст",
			wantSpans: nil,
		},
		{
			name:      "single marker",
			marked:    "a[[b]]c",
			wantClean: "abc",
			wantSpans: []Span{{Start: 1, End: 2, Kind: KindError}},
		},
		{
			name:      "marker at end of text",
			marked:    "малок[[о]]",
			wantClean: "малоко",
			wantSpans: []Span{{Start: 5, End: 6, Kind: KindError}},
		},
		{
			name:      "multiple markers",
			marked:    "м[[а]]локо и крас[[с]]ивый",
			wantClean: "малоко и крассивый",
			wantSpans: []Span{
				{Start: 1, End: 2, Kind: KindError},
				{Start: 13, End: 14, Kind: KindError},
			},
		},
		{
			name:      "unclosed marker is literal",
			marked:    "текст [[без конца",
			wantClean: "текст [[без конца",
			wantSpans: nil,
		},
		{
			name:      "empty marker emits no span",
			marked:    "ab[[]]cd",
			wantClean: "abcd",
			wantSpans: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clean, spans := Annotate(tc.marked, "")
			if clean != tc.wantClean {
				t.Errorf("clean = %q, want %q", clean, tc.wantClean)
			}
			if !reflect.DeepEqual(spans, tc.wantSpans) {
				t.Errorf("spans = %v, want %v", spans, tc.wantSpans)
			}
		})
	}
}

func TestAnnotateChangeSpans(t *testing.T) {
	t.Run("identical original yields no change spans", func(t *testing.T) {
		clean, spans := Annotate("x y z", "x y z")
		if clean != "x y z" {
			t.Errorf("clean = %q", clean)
		}
		if len(spans) != 0 {
			t.Errorf("spans = %v, want none", spans)
		}
	})

	t.Run("replaced word gets change span", func(t *testing.T) {
		clean, spans := Annotate("дверь была хорошая", "дверь была плохая")
		if clean != "дверь была хорошая" {
			t.Fatalf("clean = %q", clean)
		}
		want := []Span{{Start: 11, End: 18, Kind: KindChange}}
		if !reflect.DeepEqual(spans, want) {
			t.Errorf("spans = %v, want %v", spans, want)
		}
	})

	t.Run("inserted word gets change span", func(t *testing.T) {
		_, spans := Annotate("очень хорошая дверь", "хорошая дверь")
		want := []Span{{Start: 0, End: 5, Kind: KindChange}}
		if !reflect.DeepEqual(spans, want) {
			t.Errorf("spans = %v, want %v", spans, want)
		}
	})

	t.Run("error span suppresses overlapping change span", func(t *testing.T) {
		clean, spans := Annotate("x y [[z]]", "x y q")
		if clean != "x y z" {
			t.Fatalf("clean = %q", clean)
		}
		want := []Span{{Start: 4, End: 5, Kind: KindError}}
		if !reflect.DeepEqual(spans, want) {
			t.Errorf("spans = %v, want %v", spans, want)
		}
	})

	t.Run("non-overlapping error and change spans coexist sorted", func(t *testing.T) {
		// Error in the first word, replacement in the last.
		clean, spans := Annotate("м[[а]]локо стоит дорого", "молоко стоит дешево")
		if clean != "малоко стоит дорого" {
			t.Fatalf("clean = %q", clean)
		}
		want := []Span{
			{Start: 1, End: 2, Kind: KindError},
			{Start: 13, End: 19, Kind: KindChange},
		}
		if !reflect.DeepEqual(spans, want) {
			t.Errorf("spans = %v, want %v", spans, want)
		}
	})

	t.Run("span may end exactly at text end", func(t *testing.T) {
		_, spans := Annotate("ok [[x]]", "")
		want := []Span{{Start: 3, End: 4, Kind: KindError}}
		if !reflect.DeepEqual(spans, want) {
			t.Errorf("spans = %v, want %v", spans, want)
		}
		for _, s := range spans {
			if s.Start >= s.End {
				t.Errorf("degenerate span %v", s)
			}
		}
	})
}

func TestStrip(t *testing.T) {
	if got := Strip("мета[[л]]ический"); got != "металический" {
		t.Errorf("Strip() = %q", got)
	}
}
