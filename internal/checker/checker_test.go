package checker

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"revizor/internal/gateway"
	"revizor/internal/providers"
	"revizor/internal/review"
)

// fakeGateway records requests and replies with canned results.
type fakeGateway struct {
	content string
	cost    float64
	err     error

	gotModel  string
	gotPrompt string
	calls     int
}

func (f *fakeGateway) Request(ctx context.Context, model string, messages []providers.Message) (*gateway.Result, error) {
	f.calls++
	f.gotModel = model
	if len(messages) > 0 {
		f.gotPrompt = messages[0].Content
	}
	if f.err != nil {
		return nil, f.err
	}
	return &gateway.Result{Content: f.content, Cost: f.cost, RequestID: "req-1"}, nil
}

func fixedNow() time.Time {
	return time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
}

func TestCheckReview(t *testing.T) {
	t.Run("applies correction", func(t *testing.T) {
		gw := &fakeGateway{
			content: `{"text": "Заказывала дверь. Очень довольна качеством!", "gender": "Ж"}`,
			cost:    0.0021,
		}
		c := New(Config{Gateway: gw, Model: "grok-4-1-fast-reasoning", Now: fixedNow})

		rec := review.Record{Text: "Заказывала дверь. Очень доволен качеством!", Gender: "М"}
		got, err := c.CheckReview(context.Background(), rec)
		if err != nil {
			t.Fatalf("CheckReview() error: %v", err)
		}

		if got.CorrectedText != "Заказывала дверь. Очень довольна качеством!" {
			t.Errorf("CorrectedText = %q", got.CorrectedText)
		}
		if got.Gender != review.GenderFemale {
			t.Errorf("Gender = %q, want Ж", got.Gender)
		}
		if got.Cost != 0.0021 {
			t.Errorf("Cost = %v", got.Cost)
		}
		if got.ProcessedAt != review.Stamp(fixedNow()) {
			t.Errorf("ProcessedAt = %q", got.ProcessedAt)
		}
		if got.Text != rec.Text {
			t.Error("source text must never change")
		}
	})

	t.Run("prompt carries text, gender and date", func(t *testing.T) {
		gw := &fakeGateway{content: `{"text": "t", "gender": "Н"}`}
		c := New(Config{Gateway: gw, Model: "gpt-5-mini", Now: fixedNow})

		_, err := c.CheckReview(context.Background(), review.Record{Text: "отзыв", Gender: "Н"})
		if err != nil {
			t.Fatalf("CheckReview() error: %v", err)
		}
		for _, want := range []string{`"отзыв"`, "Текущий пол: Н", "Текущая дата: 25.08.2026"} {
			if !strings.Contains(gw.gotPrompt, want) {
				t.Errorf("prompt missing %q", want)
			}
		}
	})

	t.Run("skips ineligible records", func(t *testing.T) {
		gw := &fakeGateway{}
		c := New(Config{Gateway: gw, Model: "gpt-5-mini"})

		for _, rec := range []review.Record{
			{Text: "", Gender: "М"},
			{Text: "уже готов", CorrectedText: "уже готов", Gender: "М"},
		} {
			got, err := c.CheckReview(context.Background(), rec)
			if err != nil {
				t.Fatalf("CheckReview() error: %v", err)
			}
			if got != rec {
				t.Errorf("record changed: %+v", got)
			}
		}
		if gw.calls != 0 {
			t.Errorf("gateway called %d times, want 0", gw.calls)
		}
	})

	t.Run("unparseable reply keeps original text and gender", func(t *testing.T) {
		gw := &fakeGateway{content: "извините, не могу обработать", cost: 0.001}
		c := New(Config{Gateway: gw, Model: "gpt-5-mini", Now: fixedNow})

		rec := review.Record{Text: "исходный текст", Gender: "М"}
		got, err := c.CheckReview(context.Background(), rec)
		if err != nil {
			t.Fatalf("CheckReview() error: %v", err)
		}
		if got.CorrectedText != "исходный текст" || got.Gender != "М" {
			t.Errorf("fallback record = %+v", got)
		}
		if got.Cost != 0.001 {
			t.Errorf("Cost = %v, the failed parse is still billed", got.Cost)
		}
		if got.ProcessedAt == "" {
			t.Error("ProcessedAt should be stamped")
		}
	})

	t.Run("invalid gender in reply keeps original", func(t *testing.T) {
		gw := &fakeGateway{content: `{"text": "текст", "gender": "X"}`}
		c := New(Config{Gateway: gw, Model: "gpt-5-mini", Now: fixedNow})

		got, err := c.CheckReview(context.Background(), review.Record{Text: "текст", Gender: "Ж"})
		if err != nil {
			t.Fatalf("CheckReview() error: %v", err)
		}
		if got.Gender != "Ж" {
			t.Errorf("Gender = %q, want original Ж", got.Gender)
		}
	})

	t.Run("gateway error leaves record untouched", func(t *testing.T) {
		wantErr := errors.New("transport down")
		gw := &fakeGateway{err: wantErr}
		c := New(Config{Gateway: gw, Model: "gpt-5-mini"})

		rec := review.Record{Text: "текст", Gender: "М"}
		got, err := c.CheckReview(context.Background(), rec)
		if !errors.Is(err, wantErr) {
			t.Fatalf("error = %v, want %v", err, wantErr)
		}
		if got != rec {
			t.Errorf("record changed on error: %+v", got)
		}
	})
}

func TestMarkSpelling(t *testing.T) {
	t.Run("replaces corrected text with marked form", func(t *testing.T) {
		gw := &fakeGateway{content: "мета[[л]]ическая дверь", cost: 0.0005}
		c := New(Config{Gateway: gw, Model: "grok-4-1-fast-reasoning", Now: fixedNow})

		rec := review.Record{Text: "металическая дверь", CorrectedText: "металическая дверь"}
		got, err := c.MarkSpelling(context.Background(), rec)
		if err != nil {
			t.Fatalf("MarkSpelling() error: %v", err)
		}
		if got.CorrectedText != "мета[[л]]ическая дверь" {
			t.Errorf("CorrectedText = %q", got.CorrectedText)
		}
		if got.SpellingCost != 0.0005 {
			t.Errorf("SpellingCost = %v", got.SpellingCost)
		}
		if got.MarkedAt != review.Stamp(fixedNow()) {
			t.Errorf("MarkedAt = %q", got.MarkedAt)
		}
	})

	t.Run("strips wrapping quotes from reply", func(t *testing.T) {
		gw := &fakeGateway{content: `"текст с [[о]]шибкой"`}
		c := New(Config{Gateway: gw, Model: "gpt-5-mini", Now: fixedNow})

		got, err := c.MarkSpelling(context.Background(), review.Record{Text: "x", CorrectedText: "текст с ошибкой"})
		if err != nil {
			t.Fatalf("MarkSpelling() error: %v", err)
		}
		if got.CorrectedText != "текст с [[о]]шибкой" {
			t.Errorf("CorrectedText = %q", got.CorrectedText)
		}
	})

	t.Run("skips records without corrected text", func(t *testing.T) {
		gw := &fakeGateway{}
		c := New(Config{Gateway: gw, Model: "gpt-5-mini"})

		rec := review.Record{Text: "текст"}
		got, err := c.MarkSpelling(context.Background(), rec)
		if err != nil {
			t.Fatalf("MarkSpelling() error: %v", err)
		}
		if got != rec || gw.calls != 0 {
			t.Errorf("record changed or gateway called (%d calls)", gw.calls)
		}
	})

	t.Run("uses spelling model when configured", func(t *testing.T) {
		gw := &fakeGateway{content: "ок"}
		c := New(Config{Gateway: gw, Model: "gpt-5-mini", SpellingModel: "grok-4-1-fast-reasoning"})

		_, err := c.MarkSpelling(context.Background(), review.Record{Text: "x", CorrectedText: "ок"})
		if err != nil {
			t.Fatalf("MarkSpelling() error: %v", err)
		}
		if gw.gotModel != "grok-4-1-fast-reasoning" {
			t.Errorf("model = %q", gw.gotModel)
		}
	})
}

func TestParseCorrection(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Correction
		wantErr bool
	}{
		{
			name:    "valid",
			content: `{"text": "исправлено", "gender": "Ж"}`,
			want:    Correction{Text: "исправлено", Gender: "Ж"},
		},
		{
			name:    "wrapping quotes stripped",
			content: `{"text": "\"исправлено\"", "gender": "М"}`,
			want:    Correction{Text: "исправлено", Gender: "М"},
		},
		{name: "not json", content: "просто текст", wantErr: true},
		{name: "missing gender", content: `{"text": "т"}`, wantErr: true},
		{name: "gender outside enum", content: `{"text": "т", "gender": "ж/м"}`, wantErr: true},
		{name: "wrong types", content: `{"text": 1, "gender": "М"}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCorrection(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Fatal("parseCorrection() should fail")
				}
				var pe *ParseError
				if !errors.As(err, &pe) {
					t.Errorf("error type = %T, want *ParseError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseCorrection() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseCorrection() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
