package chart

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration marks a missing or unrecognized graph type, an
	// unbound required column, or a reference to a column the dataset lacks.
	ErrInvalidConfiguration = errors.New("invalid chart configuration")

	// ErrMissingAxisBinding marks a map chart without latitude or longitude.
	ErrMissingAxisBinding = errors.New("missing axis binding")
)

// ConfigError names the offending configuration field.
type ConfigError struct {
	Field  string
	Reason string
	kind   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s %s", e.kind, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.kind
}

func invalid(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...), kind: ErrInvalidConfiguration}
}

func missingAxis(field string) error {
	return &ConfigError{Field: field, Reason: "is required for scatter_on_map", kind: ErrMissingAxisBinding}
}
