// Package checker implements the two LLM stages: text correction (grammar and
// gender endings) and spelling annotation (wrapping wrong letters in [[..]]).
package checker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"revizor/internal/gateway"
	"revizor/internal/providers"
	"revizor/internal/review"
)

// Requester is the slice of the gateway the checker needs.
type Requester interface {
	Request(ctx context.Context, model string, messages []providers.Message) (*gateway.Result, error)
}

// Config holds checker construction parameters.
type Config struct {
	Gateway       Requester
	Model         string // Correction model
	SpellingModel string // Defaults to Model
	Logger        *slog.Logger

	// Now is the clock used for prompt dates and stage timestamps.
	// Defaults to time.Now.
	Now func() time.Time
}

// Checker runs the LLM stages on individual records.
type Checker struct {
	gw            Requester
	model         string
	spellingModel string
	logger        *slog.Logger
	now           func() time.Time
}

// New creates a Checker.
func New(cfg Config) *Checker {
	spellingModel := cfg.SpellingModel
	if spellingModel == "" {
		spellingModel = cfg.Model
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Checker{
		gw:            cfg.Gateway,
		model:         cfg.Model,
		spellingModel: spellingModel,
		logger:        logger,
		now:           now,
	}
}

// CheckReview runs the correction stage on one record. Records that are not
// eligible pass through unchanged. A reply that fails to parse is treated as
// "no correction needed": the original text and gender are kept, but the call
// is still billed and the record stamped.
func (c *Checker) CheckReview(ctx context.Context, rec review.Record) (review.Record, error) {
	if !rec.NeedsCorrection() {
		return rec, nil
	}

	prompt := correctionPrompt(rec.Text, rec.Gender, c.now())
	res, err := c.gw.Request(ctx, c.model, []providers.Message{providers.UserMessage(prompt)})
	if err != nil {
		return rec, err
	}

	corrected, perr := parseCorrection(res.Content)
	if perr != nil {
		var parseErr *ParseError
		if !errors.As(perr, &parseErr) {
			return rec, perr
		}
		c.logger.Warn("correction reply not parseable, keeping original",
			"request_id", res.RequestID,
			"error", perr)
		corrected = Correction{Text: rec.Text, Gender: rec.Gender}
	}

	rec.CorrectedText = corrected.Text
	rec.Gender = corrected.Gender
	rec.Cost = res.Cost
	rec.ProcessedAt = review.Stamp(c.now())
	return rec, nil
}

// MarkSpelling runs the spelling annotation stage on one record, replacing
// CorrectedText with its [[..]]-marked form. Records without corrected text
// pass through unchanged.
func (c *Checker) MarkSpelling(ctx context.Context, rec review.Record) (review.Record, error) {
	if !rec.NeedsSpelling() {
		return rec, nil
	}

	prompt := spellingPrompt(rec.CorrectedText)
	res, err := c.gw.Request(ctx, c.spellingModel, []providers.Message{providers.UserMessage(prompt)})
	if err != nil {
		return rec, err
	}

	rec.CorrectedText = stripWrappingQuotes(res.Content)
	rec.SpellingCost = res.Cost
	rec.MarkedAt = review.Stamp(c.now())
	return rec, nil
}
