package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parkly/internal/shared/config"
	"parkly/internal/spots"

	"github.com/google/uuid"
)

// SpotDirectory is the slice of the spot catalog the lifecycle service
// needs (interface here to keep the dependency one-way)
type SpotDirectory interface {
	GetSpotByID(ctx context.Context, id uuid.UUID) (*spots.Spot, error)
	ProvisionSpot(ctx context.Context, id uuid.UUID, name string) (*spots.Spot, error)
}

// EventPublisher receives booking lifecycle events. Publishing is best
// effort: a publish failure never fails the booking operation.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, eventType string, booking *Booking) error
}

// Lifecycle event types emitted to the event stream
const (
	EventBookingCreated    = "booking.created"
	EventBookingCheckedIn  = "booking.checked_in"
	EventBookingCheckedOut = "booking.checked_out"
	EventBookingExtended   = "booking.extended"
	EventBookingCancelled  = "booking.cancelled"
)

// Service interface defines the contract for the booking lifecycle
type Service interface {
	SetEventPublisher(publisher EventPublisher)

	CreateBooking(ctx context.Context, spotID, requesterID uuid.UUID, start, end time.Time, price float64) (*Booking, error)
	GetBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error)
	GetRequesterBookings(ctx context.Context, requesterID uuid.UUID) ([]Booking, error)

	CheckIn(ctx context.Context, bookingID uuid.UUID) (*ScanResponse, error)
	CheckOut(ctx context.Context, bookingID uuid.UUID) (*ScanResponse, error)
	Scan(ctx context.Context, bookingID uuid.UUID) (*ScanResponse, error)

	ExtendBooking(ctx context.Context, bookingID uuid.UUID, extraHours int) (*ExtendResponse, error)
	CancelBooking(ctx context.Context, bookingID, requesterID uuid.UUID) (*Booking, error)
}

type service struct {
	repo      Repository
	spots     SpotDirectory
	publisher EventPublisher
	policy    config.BookingConfig

	now func() time.Time
}

// NewService creates a new booking lifecycle service. All rates and windows
// come from the policy; nothing is read from ambient constants.
func NewService(repo Repository, spotDirectory SpotDirectory, policy config.BookingConfig) Service {
	return &service{
		repo:   repo,
		spots:  spotDirectory,
		policy: policy,
		now:    time.Now,
	}
}

// SetEventPublisher injects the event stream dependency
func (s *service) SetEventPublisher(publisher EventPublisher) {
	s.publisher = publisher
}

func (s *service) publish(ctx context.Context, eventType string, booking *Booking) {
	if s.publisher == nil {
		return
	}
	// Best effort only; the booking state is already persisted
	_ = s.publisher.PublishBookingEvent(ctx, eventType, booking)
}

// CreateBooking reserves a spot for [start, end). The overlap check and the
// insert are atomic per spot (repository transaction + spot row lock), so
// two concurrent requests for the same spot cannot both pass the check.
func (s *service) CreateBooking(ctx context.Context, spotID, requesterID uuid.UUID, start, end time.Time, price float64) (*Booking, error) {
	if err := ValidateWindow(start, end); err != nil {
		return nil, err
	}

	// Resolve the spot reference. Unknown spots are rejected unless
	// auto-provisioning is explicitly switched on.
	if _, err := s.spots.GetSpotByID(ctx, spotID); err != nil {
		if !errors.Is(err, spots.ErrNotFound) {
			return nil, fmt.Errorf("failed to resolve spot: %w", err)
		}
		if !s.policy.AutoProvisionSpots {
			return nil, ErrSpotNotFound
		}
		if _, err := s.spots.ProvisionSpot(ctx, spotID, spotID.String()); err != nil {
			return nil, fmt.Errorf("failed to auto-provision spot: %w", err)
		}
	}

	booking := &Booking{
		SpotID:        spotID,
		RequesterID:   requesterID,
		StartTime:     start,
		EndTime:       end,
		Status:        StatusPending,
		TotalPrice:    price,
		ExtraFee:      0,
		PaymentStatus: s.defaultPaymentStatus(),
	}

	if err := s.repo.CreateWithOverlapCheck(ctx, booking); err != nil {
		return nil, err
	}

	s.publish(ctx, EventBookingCreated, booking)
	return booking, nil
}

func (s *service) defaultPaymentStatus() PaymentStatus {
	ps := PaymentStatus(s.policy.PaymentDefault)
	if !ps.IsValid() {
		return PaymentPaid
	}
	return ps
}

// GetBooking retrieves a booking by ID
func (s *service) GetBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	return s.repo.GetByID(ctx, bookingID)
}

// GetRequesterBookings retrieves bookings for a requester, newest first
func (s *service) GetRequesterBookings(ctx context.Context, requesterID uuid.UUID) ([]Booking, error) {
	return s.repo.GetByRequesterID(ctx, requesterID)
}

// CheckIn records arrival and activates the booking. The check-in time is
// set at most once; a second call fails instead of overwriting it.
func (s *service) CheckIn(ctx context.Context, bookingID uuid.UUID) (*ScanResponse, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.IsCheckedIn() {
		return nil, ErrAlreadyCheckedIn
	}
	if booking.Status.IsTerminal() {
		return nil, ErrInvalidState
	}

	booking.CheckIn(s.now())

	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to persist check-in: %w", err)
	}

	s.publish(ctx, EventBookingCheckedIn, booking)
	return &ScanResponse{Type: ScanTypeCheckIn, Booking: booking}, nil
}

// CheckOut records departure, derives the overstay fee from elapsed time and
// completes the booking.
func (s *service) CheckOut(ctx context.Context, bookingID uuid.UUID) (*ScanResponse, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.IsCheckedIn() {
		return nil, ErrInvalidState
	}
	if booking.IsCheckedOut() {
		return nil, ErrAlreadyCompleted
	}

	now := s.now()
	fee := OverstayFee(booking.EndTime, now, s.policy.GracePeriod, s.policy.PenaltyRatePerHour)
	booking.CheckOut(now, fee)

	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to persist check-out: %w", err)
	}

	s.publish(ctx, EventBookingCheckedOut, booking)
	return &ScanResponse{Type: ScanTypeCheckOut, Booking: booking, ExtraFee: fee}, nil
}

// Scan dispatches on the booking's own timestamps: first scan checks in,
// second scan checks out, any further scan is rejected.
func (s *service) Scan(ctx context.Context, bookingID uuid.UUID) (*ScanResponse, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	switch {
	case !booking.IsCheckedIn():
		return s.CheckIn(ctx, bookingID)
	case !booking.IsCheckedOut():
		return s.CheckOut(ctx, bookingID)
	default:
		return nil, ErrAlreadyCompleted
	}
}

// ExtendBooking pushes the end time forward by whole hours and charges the
// configured extension rate. The added tail is overlap-checked under the
// same per-spot lock as creation, so an extension can never swallow a
// neighbouring reservation.
func (s *service) ExtendBooking(ctx context.Context, bookingID uuid.UUID, extraHours int) (*ExtendResponse, error) {
	if extraHours <= 0 {
		return nil, ErrInvalidWindow
	}

	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanBeExtended() {
		return nil, ErrInvalidState
	}

	newEnd := booking.EndTime.Add(time.Duration(extraHours) * time.Hour)
	additionalCost := ExtensionCost(extraHours, s.policy.ExtensionRatePerHour)
	newTotal := booking.TotalPrice + additionalCost

	if err := s.repo.ExtendWindowWithOverlapCheck(ctx, booking, newEnd, newTotal); err != nil {
		return nil, err
	}

	s.publish(ctx, EventBookingExtended, booking)
	return &ExtendResponse{Booking: booking, AdditionalCost: additionalCost}, nil
}

// CancelBooking cancels a pending booking. Active bookings must be checked
// out, and terminal bookings stay as they are.
func (s *service) CancelBooking(ctx context.Context, bookingID, requesterID uuid.UUID) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.RequesterID != requesterID {
		return nil, ErrNotOwner
	}
	if !booking.Status.CanBeCancelled() {
		return nil, ErrInvalidState
	}

	booking.Cancel(s.now())

	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to persist cancellation: %w", err)
	}

	s.publish(ctx, EventBookingCancelled, booking)
	return booking, nil
}
