package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"triage-queue-backend/internal/model"
)

// ErrNotFound is returned when an identifier does not resolve to a record.
// Callers use errors.Is to distinguish "no data" from a store failure.
var ErrNotFound = errors.New("record not found")

// Store defines the persistence operations the queue engine depends on.
type Store interface {
	CreateBooking(ctx context.Context, b *model.Booking) error
	BookingByID(ctx context.Context, id int64) (model.Booking, error)
	BookingsByStatus(ctx context.Context, status model.BookingStatus) ([]model.Booking, error)
	BookingsForEquipment(ctx context.Context, equipmentID int64, status model.BookingStatus) ([]model.Booking, error)
	UpdateBooking(ctx context.Context, b *model.Booking) error

	CreateEquipment(ctx context.Context, e *model.Equipment) error
	EquipmentByID(ctx context.Context, id int64) (model.Equipment, error)
	ListEquipment(ctx context.Context) ([]model.Equipment, error)
	UpdateEquipment(ctx context.Context, e *model.Equipment) error
	CountEquipment(ctx context.Context) (int64, error)

	// Transact runs fn against a transaction-bound store. An error from fn
	// rolls the whole unit back.
	Transact(ctx context.Context, fn func(Store) error) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) CreateBooking(ctx context.Context, b *model.Booking) error {
	if err := s.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (s *gormStore) BookingByID(ctx context.Context, id int64) (model.Booking, error) {
	var b model.Booking
	err := s.db.WithContext(ctx).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Booking{}, fmt.Errorf("booking %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Booking{}, fmt.Errorf("failed to fetch booking %d: %w", id, err)
	}
	return b, nil
}

func (s *gormStore) BookingsByStatus(ctx context.Context, status model.BookingStatus) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := s.db.WithContext(ctx).Where("status = ?", status).Order("id").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch bookings with status %s: %w", status, err)
	}
	return bookings, nil
}

func (s *gormStore) BookingsForEquipment(ctx context.Context, equipmentID int64, status model.BookingStatus) ([]model.Booking, error) {
	var bookings []model.Booking
	err := s.db.WithContext(ctx).
		Where("equipment_id = ? AND status = ?", equipmentID, status).
		Order("id").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings for equipment %d: %w", equipmentID, err)
	}
	return bookings, nil
}

func (s *gormStore) UpdateBooking(ctx context.Context, b *model.Booking) error {
	if err := s.db.WithContext(ctx).Save(b).Error; err != nil {
		return fmt.Errorf("failed to update booking %d: %w", b.ID, err)
	}
	return nil
}

func (s *gormStore) CreateEquipment(ctx context.Context, e *model.Equipment) error {
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("failed to create equipment: %w", err)
	}
	return nil
}

func (s *gormStore) EquipmentByID(ctx context.Context, id int64) (model.Equipment, error) {
	var e model.Equipment
	err := s.db.WithContext(ctx).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Equipment{}, fmt.Errorf("equipment %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Equipment{}, fmt.Errorf("failed to fetch equipment %d: %w", id, err)
	}
	return e, nil
}

func (s *gormStore) ListEquipment(ctx context.Context) ([]model.Equipment, error) {
	var equipment []model.Equipment
	if err := s.db.WithContext(ctx).Order("id").Find(&equipment).Error; err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	return equipment, nil
}

func (s *gormStore) UpdateEquipment(ctx context.Context, e *model.Equipment) error {
	if err := s.db.WithContext(ctx).Save(e).Error; err != nil {
		return fmt.Errorf("failed to update equipment %d: %w", e.ID, err)
	}
	return nil
}

func (s *gormStore) CountEquipment(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Equipment{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count equipment: %w", err)
	}
	return count, nil
}

func (s *gormStore) Transact(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
