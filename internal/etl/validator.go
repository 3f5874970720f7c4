package etl

import (
	"errors"
	"fmt"

	"github.com/BartekS5/csvmap/internal/config"
	"github.com/BartekS5/csvmap/pkg/models"
)

// Validator checks mapping rules before any row is read.
// Row width is checked per row by the Mapper, so keys are not compared
// against columns_allowed here.
type Validator struct {
	Fields []models.FieldRule
}

// NewValidator returns a Validator for the given rules.
func NewValidator(fields []models.FieldRule) *Validator {
	return &Validator{Fields: fields}
}

// ValidateMapping reports the first rule that can never produce a value.
func (v *Validator) ValidateMapping() error {
	for _, f := range v.Fields {
		if err := validateRule(f.Rule); err != nil {
			return &config.ConfigurationMissingError{Key: "mapping." + f.Name, Cause: err}
		}
	}
	return nil
}

func validateRule(r models.Rule) error {
	if !r.HasKey() {
		if r.Value == nil {
			return errors.New("rule has neither key nor value")
		}
		return nil
	}

	if k := *r.Key; k < 0 {
		return fmt.Errorf("negative column key %d", k)
	}
	return nil
}
