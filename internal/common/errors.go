// Package common contains shared constants and sentinel errors used across
// brocat components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Transport-level errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("server unavailable")

	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors.
	ErrInternal        = errors.New("internal error")
	ErrInvalidResponse = errors.New("invalid server response")
)
