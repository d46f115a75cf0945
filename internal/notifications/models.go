package notifications

import (
	"encoding/json"
	"time"

	"parkly/internal/bookings"

	"github.com/google/uuid"
)

// BookingEvent is the wire record published for every booking lifecycle
// transition. Partitioned by spot so events for one spot stay ordered.
type BookingEvent struct {
	ID          uuid.UUID  `json:"id"`
	Type        string     `json:"type"`
	BookingID   uuid.UUID  `json:"booking_id"`
	SpotID      uuid.UUID  `json:"spot_id"`
	RequesterID uuid.UUID  `json:"requester_id"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	Status      string     `json:"status"`
	TotalPrice  float64    `json:"total_price"`
	ExtraFee    float64    `json:"extra_fee"`
	CheckInAt   *time.Time `json:"check_in_at,omitempty"`
	CheckOutAt  *time.Time `json:"check_out_at,omitempty"`
	OccurredAt  time.Time  `json:"occurred_at"`
}

// NewBookingEvent snapshots a booking into an event record
func NewBookingEvent(eventType string, booking *bookings.Booking) *BookingEvent {
	return &BookingEvent{
		ID:          uuid.New(),
		Type:        eventType,
		BookingID:   booking.ID,
		SpotID:      booking.SpotID,
		RequesterID: booking.RequesterID,
		StartTime:   booking.StartTime,
		EndTime:     booking.EndTime,
		Status:      booking.Status.String(),
		TotalPrice:  booking.TotalPrice,
		ExtraFee:    booking.ExtraFee,
		CheckInAt:   booking.ActualCheckInTime,
		CheckOutAt:  booking.ActualCheckOutTime,
		OccurredAt:  time.Now(),
	}
}

func (e *BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// GetPartitionKey routes all events for a spot to the same partition
func (e *BookingEvent) GetPartitionKey() string {
	return e.SpotID.String()
}
