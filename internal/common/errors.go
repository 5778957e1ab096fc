// Package common defines shared sentinel errors and small helpers used across
// the CropCare client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Session store (business) errors.
	ErrAlreadyExists      = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoActiveSession    = errors.New("no active session")
	ErrSessionActive      = errors.New("already logged in")
	ErrNotLoaded          = errors.New("session store not loaded")

	// ErrStorageFailure marks any failure of the underlying persistence.
	// It is joined with the driver error, so both remain matchable.
	ErrStorageFailure = errors.New("storage failure")

	// Validation errors.
	ErrImmutableField = errors.New("field cannot be changed")
	ErrUnknownField   = errors.New("unknown field")
	ErrValidation     = errors.New("validation error")

	// Session marker errors.
	ErrInvalidToken = errors.New("invalid token")
)
