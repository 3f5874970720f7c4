package etl

import (
	"fmt"

	"github.com/BartekS5/csvmap/pkg/models"
)

// Transformer turns the tokens of one row into a Record.
type Transformer struct {
	Fields   []models.FieldRule
	Reporter ErrorReporter

	// Strict turns rejected values into a FieldValidationError.
	Strict bool
}

// NewTransformer returns a Transformer. A nil reporter discards violations.
func NewTransformer(fields []models.FieldRule, reporter ErrorReporter, strict bool) *Transformer {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Transformer{Fields: fields, Reporter: reporter, Strict: strict}
}

// TransformRow applies every rule, in mapping order, to the row's tokens.
// row is the 1-based row number used in reports.
func (t *Transformer) TransformRow(row int, tokens []string) (models.Record, error) {
	rec := make(models.Record, 0, len(t.Fields))

	for _, f := range t.Fields {
		var raw string
		var value any

		if f.Rule.HasKey() {
			k := *f.Rule.Key
			if k < 0 || k >= len(tokens) {
				if err := t.reject(row, f.Name, ""); err != nil {
					return nil, err
				}
				rec = append(rec, models.Field{Name: f.Name, Value: nil})
				continue
			}
			raw = StripQuotes(tokens[k])
			value = raw
		} else {
			value = f.Rule.Value
			raw = stringify(value)
		}

		// The predicate sees the value before any transform.
		if f.Rule.Test != nil && !f.Rule.Test(raw) {
			if err := t.reject(row, f.Name, raw); err != nil {
				return nil, err
			}
		}

		if f.Rule.Fn != nil {
			value = f.Rule.Fn(raw)
		}

		rec = append(rec, models.Field{Name: f.Name, Value: value})
	}

	return rec, nil
}

func (t *Transformer) reject(row int, field, raw string) error {
	if t.Strict {
		return &FieldValidationError{Row: row, Field: field, Raw: raw}
	}
	t.Reporter.Report(row, field, raw)
	return nil
}

func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(v)
	}
}
