package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"dormitory-services-backend/internal/model"
)

var (
	// ErrNotFound is returned when no reservation matches an update.
	ErrNotFound = errors.New("reservation not found")
	// ErrDuplicate is returned when the storage layer rejects a second active
	// booking for the same student and slot.
	ErrDuplicate = errors.New("duplicate active reservation")
	// ErrInvalidStatus is returned when a write carries an unknown status.
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// newID returns a time-ordered UUIDv7. Ids issued by one process sort in
// issue order, which breaks createdAt ties the same way in every backend.
func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate reservation id: %w", err)
	}
	return id.String(), nil
}

func checkStatus(s model.ReservationStatus) error {
	if !s.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return nil
}

// Filter selects reservations. Zero-valued fields do not constrain the result.
type Filter struct {
	ID        string
	SpaceID   string
	Date      string
	TimeSlot  string
	StudentID string
	Statuses  []model.ReservationStatus
}

// Matches reports whether r satisfies every set field of the filter.
func (f Filter) Matches(r model.Reservation) bool {
	if f.ID != "" && r.ID != f.ID {
		return false
	}
	if f.SpaceID != "" && r.SpaceID != f.SpaceID {
		return false
	}
	if f.Date != "" && r.Date != f.Date {
		return false
	}
	if f.TimeSlot != "" && r.TimeSlot != f.TimeSlot {
		return false
	}
	if f.StudentID != "" && r.StudentID != f.StudentID {
		return false
	}
	return hasStatus(f.Statuses, r.Status)
}

func hasStatus(statuses []model.ReservationStatus, s model.ReservationStatus) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Store defines the storage operations the reservation engine relies on.
//
// Find returns matches in booking order: by createdAt, ties broken by the
// issue order of the ids. Insert assigns an id when the record has none.
// UpdateStatus atomically moves a record whose current status is in from (any
// status when from is empty) to the new status, returning ErrNotFound when no
// such record exists.
type Store interface {
	Find(ctx context.Context, filter Filter) ([]model.Reservation, error)
	Insert(ctx context.Context, r model.Reservation) (model.Reservation, error)
	UpdateStatus(ctx context.Context, id string, from []model.ReservationStatus, to model.ReservationStatus) (model.Reservation, error)
}
