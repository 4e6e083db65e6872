// Package common defines shared sentinel errors used across the storysync
// client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Caller-contract violations on store operations. These mark benign
	// failures (missing id, missing temp id), not retryable conditions.
	ErrMissingID = errors.New("missing identifier")

	// Service-level errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("server unavailable")
)
