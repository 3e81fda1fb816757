package models

import "errors"

// Sentinel errors shared across the repository, service and handler layers.
// Handlers match them with errors.Is to pick response status codes.
var (
	// ErrEmailTaken indicates a unique-constraint violation on the email column.
	ErrEmailTaken = errors.New("email already taken")
	// ErrInvalidCredentials indicates an unknown email or a wrong password.
	// The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("credentials incorrect")
	// ErrInvalidToken indicates a missing, malformed, expired or forged bearer token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrAccessDenied indicates the record exists but is not owned by the caller,
	// or does not exist at all; the two are deliberately indistinguishable.
	ErrAccessDenied = errors.New("access to resource denied")
	// ErrNotFound indicates no matching record.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidData indicates malformed input rejected before persistence.
	ErrInvalidData = errors.New("invalid data")
)
