package config

import "github.com/BartekS5/csvmap/pkg/models"

// MappingProvider exposes the per-field rules in output order.
type MappingProvider interface {
	Get(field string) (models.Rule, bool)
	All() []models.FieldRule
	Set(field string, rule models.Rule)
}

// MemoryMapping is a MappingProvider seeded by Set calls.
// Fields keep the order of their first Set.
type MemoryMapping struct {
	order []string
	rules map[string]models.Rule
}

// NewMapping returns an empty ordered mapping.
func NewMapping() *MemoryMapping {
	return &MemoryMapping{rules: make(map[string]models.Rule)}
}

// Get implements MappingProvider.
func (m *MemoryMapping) Get(field string) (models.Rule, bool) {
	r, ok := m.rules[field]
	return r, ok
}

// All implements MappingProvider.
func (m *MemoryMapping) All() []models.FieldRule {
	out := make([]models.FieldRule, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, models.FieldRule{Name: name, Rule: m.rules[name]})
	}
	return out
}

// Set implements MappingProvider. Replacing a field keeps its position.
func (m *MemoryMapping) Set(field string, rule models.Rule) {
	if m.rules == nil {
		m.rules = make(map[string]models.Rule)
	}
	if _, ok := m.rules[field]; !ok {
		m.order = append(m.order, field)
	}
	m.rules[field] = rule
}
