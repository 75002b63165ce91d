package domain

import "errors"

var (
	// ErrNotFound is returned when no record matches the requested id.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidPostalCode is returned when the postal code cannot be resolved to an address.
	ErrInvalidPostalCode = errors.New("invalid postal code")

	// ErrInvalidInput is returned when a request payload fails validation.
	ErrInvalidInput = errors.New("invalid input")
)
