package reservation

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"dormitory-services-backend/internal/model"
	"dormitory-services-backend/internal/store"
)

// Engine owns the booking rules for the space catalog: capacity, the waitlist
// and one active booking per student and slot. All state lives in the store.
type Engine struct {
	store  store.Store
	spaces []Space
	now    func() time.Time
}

// Option customises an Engine.
type Option func(*Engine)

// WithSpaces replaces the default space catalog.
func WithSpaces(spaces []Space) Option {
	return func(e *Engine) {
		e.spaces = append([]Space(nil), spaces...)
	}
}

// WithClock sets the time source used for createdAt.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine on top of the given store.
func NewEngine(s store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:  s,
		spaces: append([]Space(nil), DefaultSpaces...),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Spaces returns the catalog of bookable spaces.
func (e *Engine) Spaces() []Space {
	return append([]Space(nil), e.spaces...)
}

func (e *Engine) space(id string) (Space, bool) {
	for _, s := range e.spaces {
		if s.ID == id {
			return s, true
		}
	}
	return Space{}, false
}

// activeInDay returns the confirmed and waitlisted reservations of a space on a date.
func (e *Engine) activeInDay(ctx context.Context, spaceID, date string) ([]model.Reservation, error) {
	rows, err := e.store.Find(ctx, store.Filter{
		SpaceID:  spaceID,
		Date:     date,
		Statuses: model.ActiveStatuses,
	})
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return rows, nil
}

func confirmedCount(rows []model.Reservation, timeSlot string) int {
	n := 0
	for _, r := range rows {
		if r.TimeSlot == timeSlot && r.Status == model.StatusConfirmed {
			n++
		}
	}
	return n
}

// SlotAvailability is the seat count of one time slot.
type SlotAvailability struct {
	TimeSlot  string `json:"timeSlot"`
	Capacity  int    `json:"capacity"`
	Confirmed int    `json:"confirmed"`
	Available int    `json:"available"`
}

// Availability is the per-slot breakdown of a space on one date.
type Availability struct {
	Space Space              `json:"space"`
	Date  string             `json:"date"`
	Slots []SlotAvailability `json:"slots"`
}

// Availability counts confirmed seats for every time slot of a space on a date.
// A slot with nothing available still accepts bookings onto its waitlist.
func (e *Engine) Availability(ctx context.Context, spaceID, date string) (Availability, error) {
	space, ok := e.space(spaceID)
	if !ok {
		return Availability{}, ErrInvalidSpace
	}
	if date == "" {
		return Availability{}, missing("date")
	}

	rows, err := e.activeInDay(ctx, spaceID, date)
	if err != nil {
		return Availability{}, err
	}

	slots := make([]SlotAvailability, 0, len(TimeSlots))
	for _, ts := range TimeSlots {
		confirmed := confirmedCount(rows, ts)
		slots = append(slots, SlotAvailability{
			TimeSlot:  ts,
			Capacity:  space.Capacity,
			Confirmed: confirmed,
			Available: max(space.Capacity-confirmed, 0),
		})
	}
	return Availability{Space: space, Date: date, Slots: slots}, nil
}

// CreateRequest carries the fields of a new booking.
type CreateRequest struct {
	SpaceID     string `json:"spaceId"`
	Date        string `json:"date"`
	TimeSlot    string `json:"timeSlot"`
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName"`
}

// Create books a slot for a student. The booking is confirmed while the slot
// has free seats and waitlisted otherwise.
//
// The duplicate check reads before it writes. Two concurrent requests for the
// same student and slot can both pass it; only the persistent store's unique
// index rejects the second insert.
func (e *Engine) Create(ctx context.Context, req CreateRequest) (model.Reservation, error) {
	space, ok := e.space(req.SpaceID)
	if !ok {
		return model.Reservation{}, ErrInvalidSpace
	}
	switch {
	case req.Date == "":
		return model.Reservation{}, missing("date")
	case req.TimeSlot == "":
		return model.Reservation{}, missing("timeSlot")
	case req.StudentID == "":
		return model.Reservation{}, missing("studentId")
	case req.StudentName == "":
		return model.Reservation{}, missing("studentName")
	}

	rows, err := e.activeInDay(ctx, req.SpaceID, req.Date)
	if err != nil {
		return model.Reservation{}, err
	}
	for _, r := range rows {
		if r.TimeSlot == req.TimeSlot && r.StudentID == req.StudentID {
			return model.Reservation{}, ErrDuplicateBooking
		}
	}

	status := model.StatusWaitlist
	if confirmedCount(rows, req.TimeSlot) < space.Capacity {
		status = model.StatusConfirmed
	}

	created, err := e.store.Insert(ctx, model.Reservation{
		SpaceID:     space.ID,
		SpaceName:   space.Name,
		Date:        req.Date,
		TimeSlot:    req.TimeSlot,
		StudentID:   req.StudentID,
		StudentName: req.StudentName,
		Status:      status,
		CreatedAt:   e.now(),
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return model.Reservation{}, ErrDuplicateBooking
		}
		return model.Reservation{}, &StorageError{Err: err}
	}
	return created, nil
}

// ListMine returns a student's confirmed and waitlisted bookings by date and slot.
func (e *Engine) ListMine(ctx context.Context, studentID string) ([]model.Reservation, error) {
	if studentID == "" {
		return nil, missing("studentId")
	}

	rows, err := e.store.Find(ctx, store.Filter{
		StudentID: studentID,
		Statuses:  model.ActiveStatuses,
	})
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	sortBySchedule(rows)
	return rows, nil
}

// CancelResult describes the outcome of a cancellation.
type CancelResult struct {
	Cancelled model.Reservation
	Promoted  *model.Reservation
}

// Cancel moves a confirmed or waitlisted booking to cancelled, then promotes
// the oldest waitlisted booking of the same slot if a seat is free.
//
// The promotion search runs whatever the cancelled booking's prior status was.
// A promotion is only applied while the slot is below capacity, so cancelling
// a waitlisted booking in a full slot promotes nobody.
func (e *Engine) Cancel(ctx context.Context, id string) (CancelResult, error) {
	if id == "" {
		return CancelResult{}, ErrNotFound
	}

	cancelled, err := e.store.UpdateStatus(ctx, id, model.ActiveStatuses, model.StatusCancelled)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return CancelResult{}, ErrNotFound
		}
		return CancelResult{}, &StorageError{Err: err}
	}

	result := CancelResult{Cancelled: cancelled}
	promoted, err := e.promote(ctx, cancelled)
	if err != nil {
		return result, err
	}
	result.Promoted = promoted
	return result, nil
}

func (e *Engine) promote(ctx context.Context, freed model.Reservation) (*model.Reservation, error) {
	space, ok := e.space(freed.SpaceID)
	if !ok {
		return nil, nil
	}

	rows, err := e.store.Find(ctx, store.Filter{
		SpaceID:  freed.SpaceID,
		Date:     freed.Date,
		TimeSlot: freed.TimeSlot,
		Statuses: model.ActiveStatuses,
	})
	if err != nil {
		return nil, &StorageError{Err: err}
	}

	var next *model.Reservation
	for i := range rows {
		r := &rows[i]
		if r.Status != model.StatusWaitlist {
			continue
		}
		if next == nil || r.CreatedAt.Before(next.CreatedAt) {
			next = r
		}
	}
	if next == nil || confirmedCount(rows, freed.TimeSlot) >= space.Capacity {
		return nil, nil
	}

	updated, err := e.store.UpdateStatus(ctx, next.ID,
		[]model.ReservationStatus{model.StatusWaitlist}, model.StatusConfirmed)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Cancelled by its owner in the meantime.
			return nil, nil
		}
		return nil, &StorageError{Err: err}
	}

	log.Printf("promoted reservation %s (%s %s %s) from waitlist after cancelling %s",
		updated.ID, updated.SpaceID, updated.Date, updated.TimeSlot, freed.ID)
	return &updated, nil
}

// ListFilter narrows the administrative listing.
type ListFilter struct {
	SpaceID string
	Date    string
}

// ListAll returns every reservation, cancelled ones included, ordered by date,
// slot and creation time.
func (e *Engine) ListAll(ctx context.Context, filter ListFilter) ([]model.Reservation, error) {
	rows, err := e.store.Find(ctx, store.Filter{
		SpaceID: filter.SpaceID,
		Date:    filter.Date,
	})
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	sortBySchedule(rows)
	return rows, nil
}

// sortBySchedule orders by date then slot. Zero-padded dates and HH:MM labels
// sort correctly as strings. The stable sort keeps creation order within a slot.
func sortBySchedule(rows []model.Reservation) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		if rows[i].TimeSlot != rows[j].TimeSlot {
			return rows[i].TimeSlot < rows[j].TimeSlot
		}
		return rows[i].CreatedAt.Before(rows[j].CreatedAt)
	})
}
