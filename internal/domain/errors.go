package domain

import "errors"

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("not found")

// ErrEventNotFound is returned when a booking references an event that
// does not exist.
var ErrEventNotFound = errors.New("event not found")

// ErrSlugTaken is returned when an event's derived slug collides with an
// existing event. The unique index is the sole arbiter; colliding titles are
// rejected, never silently suffixed.
var ErrSlugTaken = errors.New("slug already in use")

// ValidationError reports a field that failed a format, non-empty, enum, or
// normalization rule. Validation failures are surfaced synchronously and
// nothing is written.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
