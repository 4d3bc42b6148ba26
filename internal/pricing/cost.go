package pricing

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidUsage indicates malformed token counts, e.g. more cached
	// tokens than prompt tokens.
	ErrInvalidUsage = errors.New("invalid token usage")

	// ErrMissingPricing indicates a cost-bearing call for a model that has
	// no entry in the pricing table.
	ErrMissingPricing = errors.New("missing pricing entry")
)

// Usage is the normalized token-count payload of a single model call.
// CachedTokens is the subset of PromptTokens served from a provider cache;
// ReasoningTokens are billed at the output rate.
type Usage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	CachedTokens     int64 `json:"cached_tokens"`
	ReasoningTokens  int64 `json:"reasoning_tokens"`
}

// TotalTokens returns the total billed token count.
func (u Usage) TotalTokens() int64 {
	return u.PromptTokens + u.CompletionTokens + u.ReasoningTokens
}

// Cost computes the USD cost of a call given its usage and model rates.
// Rates are per 1M tokens; cached prompt tokens bill at the cached rate and
// reasoning tokens bill at the output rate.
func Cost(u Usage, r Rates) (float64, error) {
	if u.PromptTokens < 0 || u.CompletionTokens < 0 || u.CachedTokens < 0 || u.ReasoningTokens < 0 {
		return 0, fmt.Errorf("%w: negative token count %+v", ErrInvalidUsage, u)
	}

	nonCached := u.PromptTokens - u.CachedTokens
	if nonCached < 0 {
		return 0, fmt.Errorf("%w: cached tokens (%d) exceed prompt tokens (%d)",
			ErrInvalidUsage, u.CachedTokens, u.PromptTokens)
	}

	cost := float64(nonCached)*r.InputPer1M/1e6 +
		float64(u.CachedTokens)*r.CachedInputPer1M/1e6 +
		float64(u.CompletionTokens+u.ReasoningTokens)*r.OutputPer1M/1e6
	return cost, nil
}

// CostStrict computes the cost for a model, failing with ErrMissingPricing
// when the model has no entry. This is the policy for the billed path.
func CostStrict(t Table, model string, u Usage) (float64, error) {
	rates, ok := t.Lookup(model)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingPricing, model)
	}
	return Cost(u, rates)
}

// CostPermissive computes the cost for a model, returning zero when the
// model has no entry. Used for exploratory and free-tier calls where an
// unknown model is not an error.
func CostPermissive(t Table, model string, u Usage) (float64, error) {
	rates, ok := t.Lookup(model)
	if !ok {
		return 0, nil
	}
	return Cost(u, rates)
}
