package bookings

// Status is the booking lifecycle state. Transitions only ever move
// forward: pending -> active -> completed, or pending -> cancelled.
// Terminal states are permanent history; bookings are never deleted.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// IsValid checks if the booking status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsLive reports whether a booking in this status blocks the spot's window.
// Only live bookings participate in overlap checks.
func (s Status) IsLive() bool {
	return s == StatusPending || s == StatusActive
}

// IsTerminal reports whether the status permits no further transitions
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo checks whether moving to next is a legal transition
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusActive || next == StatusCancelled
	case StatusActive:
		return next == StatusCompleted
	default:
		return false
	}
}

// CanBeCancelled checks if a booking with this status can be cancelled
func (s Status) CanBeCancelled() bool {
	return s == StatusPending
}

// CanBeExtended checks if a booking with this status can be extended
func (s Status) CanBeExtended() bool {
	return s.IsLive()
}

// PaymentStatus tracks the simulated payment state of a booking
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentVoid    PaymentStatus = "void"
)

// IsValid checks if the payment status is valid
func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentVoid:
		return true
	}
	return false
}
