// Package common defines shared constants and sentinel errors used across
// the BuenCuidar client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository/row-level errors.
	ErrNotFound = errors.New("not found")

	// Session errors. ErrNoSession means no stored session exists at all;
	// ErrSessionExpired means the refresh token is known but no longer valid.
	ErrNoSession      = errors.New("no active session")
	ErrSessionExpired = errors.New("session expired")

	// Remote access-control rejection (storage or table policy).
	ErrPermissionDenied = errors.New("permission denied")

	// Generic internal failure.
	ErrInternal = errors.New("internal error")
)
