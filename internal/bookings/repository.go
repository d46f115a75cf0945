package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// Concurrency-safe mutations: overlap check and write happen atomically
	// per spot (row lock on the spot record)
	CreateWithOverlapCheck(ctx context.Context, booking *Booking) error
	ExtendWindowWithOverlapCheck(ctx context.Context, booking *Booking, newEnd time.Time, newTotalPrice float64) error

	// Core booking operations
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByRequesterID(ctx context.Context, requesterID uuid.UUID) ([]Booking, error)
	Update(ctx context.Context, booking *Booking) error

	// Occupancy is derived, never stored: a spot is occupied at instant t
	// iff a live booking has start_time < t < end_time
	OccupiedSpotIDs(ctx context.Context, at time.Time) ([]uuid.UUID, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// liveStatuses are the booking states that block a spot's window
var liveStatuses = []Status{StatusPending, StatusActive}

// CreateWithOverlapCheck inserts a booking after verifying no live booking
// intersects its window. The check and the insert run in one transaction
// with the spot row locked FOR UPDATE, so two concurrent requests for the
// same spot serialize; requests for different spots stay independent.
func (r *repository) CreateWithOverlapCheck(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the spot row to serialize check-then-insert per spot
		var spot struct {
			ID uuid.UUID `gorm:"column:id"`
		}
		err := tx.Table("spots").
			Select("id").
			Where("id = ?", booking.SpotID).
			Set("gorm:query_option", "FOR UPDATE").
			First(&spot).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSpotNotFound
			}
			return fmt.Errorf("failed to lock spot: %w", err)
		}

		// 2. Overlap check under the lock, strict inequalities: a window
		// merely touching an endpoint does not block
		var conflicts int64
		err = tx.Model(&Booking{}).
			Where("spot_id = ?", booking.SpotID).
			Where("status IN ?", liveStatuses).
			Where("start_time < ? AND end_time > ?", booking.EndTime, booking.StartTime).
			Count(&conflicts).Error
		if err != nil {
			return fmt.Errorf("overlap query failed: %w", err)
		}
		if conflicts > 0 {
			return ErrSpotUnavailable
		}

		// 3. Insert
		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		return nil
	})
}

// ExtendWindowWithOverlapCheck moves a booking's end time forward after
// verifying the added tail [current end, new end) is free, under the same
// per-spot lock as creation.
func (r *repository) ExtendWindowWithOverlapCheck(ctx context.Context, booking *Booking, newEnd time.Time, newTotalPrice float64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var spot struct {
			ID uuid.UUID `gorm:"column:id"`
		}
		err := tx.Table("spots").
			Select("id").
			Where("id = ?", booking.SpotID).
			Set("gorm:query_option", "FOR UPDATE").
			First(&spot).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSpotNotFound
			}
			return fmt.Errorf("failed to lock spot: %w", err)
		}

		var conflicts int64
		err = tx.Model(&Booking{}).
			Where("spot_id = ?", booking.SpotID).
			Where("id <> ?", booking.ID).
			Where("status IN ?", liveStatuses).
			Where("start_time < ? AND end_time > ?", newEnd, booking.EndTime).
			Count(&conflicts).Error
		if err != nil {
			return fmt.Errorf("overlap query failed: %w", err)
		}
		if conflicts > 0 {
			return ErrSpotUnavailable
		}

		return tx.Model(&Booking{}).
			Where("id = ?", booking.ID).
			Updates(map[string]interface{}{
				"end_time":    newEnd,
				"total_price": newTotalPrice,
				"updated_at":  time.Now(),
			}).Error
	})
	if err != nil {
		return err
	}

	booking.EndTime = newEnd
	booking.TotalPrice = newTotalPrice
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByRequesterID(ctx context.Context, requesterID uuid.UUID) ([]Booking, error) {
	var result []Booking
	err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&result).Error
	return result, err
}

// Update persists a lifecycle transition as a single-row write, so no
// partially updated booking is ever visible.
func (r *repository) Update(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

func (r *repository) OccupiedSpotIDs(ctx context.Context, at time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Distinct("spot_id").
		Where("status IN ?", liveStatuses).
		Where("start_time < ? AND end_time > ?", at, at).
		Pluck("spot_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("occupancy query failed: %w", err)
	}
	return ids, nil
}
