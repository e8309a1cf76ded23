package store

import "errors"

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when the email unique constraint is violated.
	ErrEmailTaken = errors.New("email already registered")
)
