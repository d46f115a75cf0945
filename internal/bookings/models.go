package bookings

import (
	"time"

	"github.com/google/uuid"
)

// Booking is a reservation of one spot for one window. It is created by the
// lifecycle service and mutated only through it; terminal bookings are kept
// as permanent history, never deleted.
type Booking struct {
	ID            uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SpotID        uuid.UUID     `gorm:"type:uuid;index:idx_bookings_spot_window;not null" json:"spot_id"`
	RequesterID   uuid.UUID     `gorm:"type:uuid;index;not null" json:"requester_id"`
	StartTime     time.Time     `gorm:"index:idx_bookings_spot_window;not null" json:"start_time"`
	EndTime       time.Time     `gorm:"index:idx_bookings_spot_window;not null" json:"end_time"`
	Status        Status        `gorm:"type:varchar(20);index:idx_bookings_spot_window;check:status IN ('pending', 'active', 'completed', 'cancelled');default:'pending'" json:"status"`
	TotalPrice    float64       `gorm:"not null" json:"total_price"`
	ExtraFee      float64       `gorm:"not null;default:0" json:"extra_fee"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);check:payment_status IN ('pending', 'paid', 'void');default:'pending'" json:"payment_status"`

	ActualCheckInTime  *time.Time `json:"actual_check_in_time,omitempty"`
	ActualCheckOutTime *time.Time `json:"actual_check_out_time,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) IsCheckedIn() bool {
	return b.ActualCheckInTime != nil
}

func (b *Booking) IsCheckedOut() bool {
	return b.ActualCheckOutTime != nil
}

// CheckIn records the arrival time and activates the booking.
// The time is set at most once; callers guard with IsCheckedIn.
func (b *Booking) CheckIn(now time.Time) {
	b.ActualCheckInTime = &now
	b.Status = StatusActive
	b.UpdatedAt = now
}

// CheckOut records the departure time, applies the overstay fee and
// completes the booking. Check-out time is always >= check-in time.
func (b *Booking) CheckOut(now time.Time, extraFee float64) {
	b.ActualCheckOutTime = &now
	b.ExtraFee += extraFee
	if extraFee > 0 {
		// Simulated automatic deduction from the stored payment method
		b.PaymentStatus = PaymentPaid
	}
	b.Status = StatusCompleted
	b.UpdatedAt = now
}

// Cancel marks a pending booking as cancelled and voids its payment
func (b *Booking) Cancel(now time.Time) {
	b.Status = StatusCancelled
	b.PaymentStatus = PaymentVoid
	b.CancelledAt = &now
	b.UpdatedAt = now
}
