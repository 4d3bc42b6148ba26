// Package pricing holds the per-model rate table and the cost math for LLM
// calls. The table is loaded once at startup and treated as read-only.
package pricing

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Rates are the billing rates for one model, in USD per 1M tokens.
type Rates struct {
	InputPer1M       float64 `json:"input_per_1m"`
	CachedInputPer1M float64 `json:"cached_input_per_1m"`
	OutputPer1M      float64 `json:"output_per_1m"`
}

// Table maps a model identifier to its rates.
type Table map[string]Rates

// Load reads a pricing table from a JSON file.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pricing file: %w", err)
	}

	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse pricing file %s: %w", path, err)
	}
	return table, nil
}

// Lookup returns the rates for a model and whether the model is known.
func (t Table) Lookup(model string) (Rates, bool) {
	r, ok := t[model]
	return r, ok
}

// Has reports whether the table contains rates for a model.
func (t Table) Has(model string) bool {
	_, ok := t[model]
	return ok
}

// Models returns all known model identifiers, sorted.
func (t Table) Models() []string {
	models := make([]string, 0, len(t))
	for m := range t {
		models = append(models, m)
	}
	sort.Strings(models)
	return models
}
