// Copurchase - Session-based Association Rule Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/copurchase

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrRunInProgress is returned when Run is called while another run is active.
	ErrRunInProgress = errors.New("mining run already in progress")

	// ErrNoRepository is returned when the engine has no repository set.
	ErrNoRepository = errors.New("repository not set")

	// ErrNoMiner is returned when the engine has no rule miner set.
	ErrNoMiner = errors.New("rule miner not set")
)

// ValidationError reports a malformed input event.
type ValidationError struct {
	// Index is the position of the event in the input batch.
	Index int

	// Field is the missing or invalid field name.
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid event at index %d: %s is required", e.Index, e.Field)
}

// ConfigError reports an invalid configuration value.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConfigError reports whether err wraps a *ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
