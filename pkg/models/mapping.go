package models

import "gopkg.in/yaml.v3"

// TransformFunc turns a raw (quote-stripped) column value into the final
// field value.
type TransformFunc func(raw string) any

// TestFunc reports whether a raw value is acceptable for a field.
type TestFunc func(raw string) bool

// Rule describes how one output field is produced.
// A rule with a Key reads that column; a rule without one uses Value.
type Rule struct {
	Key   *int
	Value any
	Fn    TransformFunc
	Test  TestFunc
}

// Column returns a rule reading the column at index i.
func Column(i int) Rule {
	return Rule{Key: &i}
}

// Constant returns a rule that always yields v.
func Constant(v any) Rule {
	return Rule{Value: v}
}

// WithFn returns a copy of the rule with fn attached.
func (r Rule) WithFn(fn TransformFunc) Rule {
	r.Fn = fn
	return r
}

// WithTest returns a copy of the rule with test attached.
func (r Rule) WithTest(test TestFunc) Rule {
	r.Test = test
	return r
}

// HasKey reports whether the field is column-derived.
func (r Rule) HasKey() bool {
	return r.Key != nil
}

// FieldRule pairs a field name with its rule, in mapping order.
type FieldRule struct {
	Name string
	Rule Rule
}

// Document represents the root of a YAML (or JSON) mapping document.
type Document struct {
	Settings map[string]any `yaml:"settings"`
	Mapping  yaml.Node      `yaml:"mapping"`
}

// RuleConfig is the document form of a Rule. Functions are referenced by
// registry name, e.g. "zero_pad:2".
type RuleConfig struct {
	Key   *int   `yaml:"key"`
	Value any    `yaml:"value"`
	Fn    string `yaml:"fn,omitempty"`
	Test  string `yaml:"test,omitempty"`
}
