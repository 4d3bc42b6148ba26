package checker

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Correction is the structured model reply for the correction stage.
type Correction struct {
	Text   string `json:"text"`
	Gender string `json:"gender"`
}

// correctionSchema validates the model reply shape before any field is
// trusted. Gender is constrained to the three spreadsheet tags.
var correctionSchema = jsonschema.MustCompileString("correction.json", `{
	"type": "object",
	"required": ["text", "gender"],
	"properties": {
		"text": {"type": "string"},
		"gender": {"type": "string", "enum": ["М", "Ж", "Н"]}
	}
}`)

// ParseError reports a model reply that could not be read as a correction.
// The pipeline treats it as "no correction": the original text and gender
// stand.
type ParseError struct {
	Content string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable correction reply: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// parseCorrection decodes and validates a correction reply.
func parseCorrection(content string) (Correction, error) {
	var raw any
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return Correction{}, &ParseError{Content: content, Err: err}
	}
	if err := correctionSchema.Validate(raw); err != nil {
		return Correction{}, &ParseError{Content: content, Err: err}
	}

	var c Correction
	if err := json.Unmarshal([]byte(content), &c); err != nil {
		return Correction{}, &ParseError{Content: content, Err: err}
	}
	c.Text = stripWrappingQuotes(c.Text)
	return c, nil
}

// stripWrappingQuotes removes one layer of quotes the model sometimes adds
// around the whole text.
func stripWrappingQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		for _, pair := range [][2]string{{`"`, `"`}, {"«", "»"}, {"“", "”"}} {
			if strings.HasPrefix(s, pair[0]) && strings.HasSuffix(s, pair[1]) {
				return strings.TrimSuffix(strings.TrimPrefix(s, pair[0]), pair[1])
			}
		}
	}
	return s
}
