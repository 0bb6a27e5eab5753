package reservation

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSpace     = errors.New("invalid space")
	ErrMissingField     = errors.New("missing required field")
	ErrDuplicateBooking = errors.New("student already holds a booking for this time slot")
	ErrNotFound         = errors.New("reservation not found")
)

// StorageError reports a failure of the underlying store. It is never retried
// by the engine.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %v", e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func missing(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}
