package model

import "time"

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusWaitlist  ReservationStatus = "waitlist"
	StatusCancelled ReservationStatus = "cancelled"
)

// ActiveStatuses are the statuses that still hold (or wait for) a seat.
var ActiveStatuses = []ReservationStatus{StatusConfirmed, StatusWaitlist}

// IsValid checks if the status is a known ReservationStatus.
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusWaitlist, StatusCancelled:
		return true
	}
	return false
}

// Reservation is a booking of one time slot of a space on a given date.
//
// A student holds at most one non-cancelled reservation per slot. The partial
// unique index enforces this at the storage layer for the persistent backend.
type Reservation struct {
	ID          string            `gorm:"primaryKey;size:36" json:"id"`
	SpaceID     string            `gorm:"size:32;not null;uniqueIndex:idx_reservations_active_booking,where:status <> 'cancelled'" json:"spaceId"`
	SpaceName   string            `gorm:"size:128;not null" json:"spaceName"` // Snapshot taken at creation
	Date        string            `gorm:"size:10;not null;uniqueIndex:idx_reservations_active_booking" json:"date"`
	TimeSlot    string            `gorm:"size:16;not null;uniqueIndex:idx_reservations_active_booking" json:"timeSlot"`
	StudentID   string            `gorm:"size:64;not null;uniqueIndex:idx_reservations_active_booking" json:"studentId"`
	StudentName string            `gorm:"size:128;not null" json:"studentName"`
	Status      ReservationStatus `gorm:"size:16;not null;index" json:"status"`
	CreatedAt   time.Time         `gorm:"not null;index" json:"createdAt"`
}
