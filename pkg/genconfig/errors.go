package genconfig

import "errors"

var (
	// ErrSourceUnavailable is returned when a config file cannot be opened.
	ErrSourceUnavailable = errors.New("generation config source unavailable")

	// ErrSourceMalformed is returned when a config file cannot be parsed.
	ErrSourceMalformed = errors.New("generation config source malformed")

	// ErrFieldType is returned when a recognized field carries a value of an
	// incompatible type.
	ErrFieldType = errors.New("generation config field type mismatch")

	// ErrInvalidConfig is returned by Validate when a cross-field invariant
	// is violated.
	ErrInvalidConfig = errors.New("invalid generation config")
)
