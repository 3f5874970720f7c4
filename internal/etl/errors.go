package etl

import (
	"errors"
	"fmt"
)

var (
	// ErrWrongColumnCount matches every WrongColumnCountError via errors.Is.
	ErrWrongColumnCount = errors.New("wrong column count")

	// ErrFieldValidation matches every FieldValidationError via errors.Is.
	ErrFieldValidation = errors.New("field validation failed")
)

// WrongColumnCountError occurs when a row does not have the configured
// number of columns. It aborts the whole run.
type WrongColumnCountError struct {
	Row  int
	Got  int
	Want int
}

// Error implements the error interface.
func (e *WrongColumnCountError) Error() string {
	return fmt.Sprintf("row %d: got %d columns, want %d", e.Row, e.Got, e.Want)
}

// Is reports whether target is ErrWrongColumnCount.
func (e *WrongColumnCountError) Is(target error) bool {
	return target == ErrWrongColumnCount
}

// FieldValidationError is returned for a rejected value when strict
// validation is enabled. Otherwise rejections only go to the ErrorReporter.
type FieldValidationError struct {
	Row   int
	Field string
	Raw   string
}

// Error implements the error interface.
func (e *FieldValidationError) Error() string {
	return fmt.Sprintf("row %d: field %q rejected value %q", e.Row, e.Field, e.Raw)
}

// Is reports whether target is ErrFieldValidation.
func (e *FieldValidationError) Is(target error) bool {
	return target == ErrFieldValidation
}
