package config

import (
	"errors"
	"fmt"
)

// ErrConfigurationMissing matches every ConfigurationMissingError via errors.Is.
var ErrConfigurationMissing = errors.New("configuration missing")

// ConfigurationMissingError occurs when a required setting is absent or
// unusable, or when a configuration document cannot be loaded.
type ConfigurationMissingError struct {
	Key   string
	Cause error
}

// Error implements the error interface.
func (e *ConfigurationMissingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration missing: %s: %s", e.Key, e.Cause)
	}
	return fmt.Sprintf("configuration missing: %s", e.Key)
}

// Is reports whether target is ErrConfigurationMissing.
func (e *ConfigurationMissingError) Is(target error) bool {
	return target == ErrConfigurationMissing
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e *ConfigurationMissingError) Unwrap() error {
	return e.Cause
}

func missing(key string, cause error) error {
	return &ConfigurationMissingError{Key: key, Cause: cause}
}
