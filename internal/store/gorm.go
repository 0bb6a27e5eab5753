package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"dormitory-services-backend/internal/model"
)

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Find(ctx context.Context, filter Filter) ([]model.Reservation, error) {
	query := s.db.WithContext(ctx).Model(&model.Reservation{})
	if filter.ID != "" {
		query = query.Where("id = ?", filter.ID)
	}
	if filter.SpaceID != "" {
		query = query.Where("space_id = ?", filter.SpaceID)
	}
	if filter.Date != "" {
		query = query.Where("date = ?", filter.Date)
	}
	if filter.TimeSlot != "" {
		query = query.Where("time_slot = ?", filter.TimeSlot)
	}
	if filter.StudentID != "" {
		query = query.Where("student_id = ?", filter.StudentID)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}

	var rows []model.Reservation
	if err := query.Order("created_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find reservations: %w", err)
	}
	return rows, nil
}

func (s *gormStore) Insert(ctx context.Context, r model.Reservation) (model.Reservation, error) {
	if err := checkStatus(r.Status); err != nil {
		return model.Reservation{}, err
	}
	if r.ID == "" {
		id, err := newID()
		if err != nil {
			return model.Reservation{}, err
		}
		r.ID = id
	}
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		if isUniqueViolation(err) {
			return model.Reservation{}, fmt.Errorf("%w: %v", ErrDuplicate, err)
		}
		return model.Reservation{}, fmt.Errorf("failed to insert reservation: %w", err)
	}
	return r, nil
}

func (s *gormStore) UpdateStatus(ctx context.Context, id string, from []model.ReservationStatus, to model.ReservationStatus) (model.Reservation, error) {
	if err := checkStatus(to); err != nil {
		return model.Reservation{}, err
	}

	var updated model.Reservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&model.Reservation{}).Where("id = ?", id)
		if len(from) > 0 {
			query = query.Where("status IN ?", from)
		}
		result := query.Update("status", to)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.First(&updated, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Reservation{}, ErrNotFound
		}
		if isUniqueViolation(err) {
			return model.Reservation{}, fmt.Errorf("%w: %v", ErrDuplicate, err)
		}
		return model.Reservation{}, fmt.Errorf("failed to update reservation %s: %w", id, err)
	}
	return updated, nil
}

// isUniqueViolation recognises unique index failures from drivers that do not
// translate them into gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
