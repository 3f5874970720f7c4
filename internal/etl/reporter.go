package etl

import (
	"go.uber.org/zap"
)

// ErrorReporter receives recoverable problems found while mapping rows.
// row is 1-based.
type ErrorReporter interface {
	Report(row int, field string, raw string)
}

// Violation is one reported problem.
type Violation struct {
	Row   int
	Field string
	Raw   string
}

// Collector keeps every reported violation in order.
type Collector struct {
	Violations []Violation
}

// Report implements ErrorReporter.
func (c *Collector) Report(row int, field string, raw string) {
	c.Violations = append(c.Violations, Violation{Row: row, Field: field, Raw: raw})
}

// Len returns the number of collected violations.
func (c *Collector) Len() int {
	return len(c.Violations)
}

// LogReporter logs each violation as a warning.
type LogReporter struct {
	log *zap.Logger
}

func NewLogReporter(log *zap.Logger) *LogReporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogReporter{log: log}
}

// Report implements ErrorReporter.
func (r *LogReporter) Report(row int, field string, raw string) {
	r.log.Warn("field rejected value",
		zap.Int("row", row),
		zap.String("field", field),
		zap.String("raw", raw),
	)
}

// NopReporter discards every violation.
type NopReporter struct{}

// Report implements ErrorReporter.
func (NopReporter) Report(int, string, string) {}

// MultiReporter forwards each violation to every reporter.
type MultiReporter []ErrorReporter

// Report implements ErrorReporter.
func (m MultiReporter) Report(row int, field string, raw string) {
	for _, r := range m {
		r.Report(row, field, raw)
	}
}
