package session

import "errors"

var (
	// ErrInvalidArgument is returned when a session is constructed from
	// input that violates its preconditions.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotSignedIn is returned by Start when no signed-in identity is
	// available.
	ErrNotSignedIn = errors.New("not signed in")
)
