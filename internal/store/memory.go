package store

import (
	"context"
	"sync"

	"dormitory-services-backend/internal/model"
)

// memoryStore keeps reservations in an insertion-ordered slice. Its contents
// are lost when the process exits.
//
// The mutex only keeps individual operations memory safe. It does not enforce
// the one-active-booking-per-slot rule, so concurrent creates for the same
// student and slot can both succeed.
type memoryStore struct {
	mu   sync.RWMutex
	rows []model.Reservation
}

// NewMemoryStore creates an empty process-local store.
func NewMemoryStore() Store {
	return &memoryStore{}
}

func (s *memoryStore) Find(_ context.Context, filter Filter) ([]model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []model.Reservation
	for _, r := range s.rows {
		if filter.Matches(r) {
			rows = append(rows, r)
		}
	}
	return rows, nil
}

func (s *memoryStore) Insert(_ context.Context, r model.Reservation) (model.Reservation, error) {
	if err := checkStatus(r.Status); err != nil {
		return model.Reservation{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Issued under the lock so insertion order and id order agree.
	if r.ID == "" {
		id, err := newID()
		if err != nil {
			return model.Reservation{}, err
		}
		r.ID = id
	}
	s.rows = append(s.rows, r)
	return r, nil
}

func (s *memoryStore) UpdateStatus(_ context.Context, id string, from []model.ReservationStatus, to model.ReservationStatus) (model.Reservation, error) {
	if err := checkStatus(to); err != nil {
		return model.Reservation{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.rows {
		if s.rows[i].ID != id || !hasStatus(from, s.rows[i].Status) {
			continue
		}
		s.rows[i].Status = to
		return s.rows[i], nil
	}
	return model.Reservation{}, ErrNotFound
}
