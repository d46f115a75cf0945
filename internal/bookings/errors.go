package bookings

import "errors"

// Domain errors. Controllers map these to HTTP status codes with errors.Is;
// anything else is treated as an unexpected persistence failure.
var (
	// ErrInvalidWindow means the requested reservation window is malformed
	// (start is not strictly before end, or the hours are not positive).
	ErrInvalidWindow = errors.New("reservation window start must be before end")

	// ErrSpotUnavailable means a live booking already intersects the
	// requested window on the same spot.
	ErrSpotUnavailable = errors.New("spot is unavailable for the requested window")

	// ErrSpotNotFound means the referenced spot does not exist and
	// auto-provisioning is disabled.
	ErrSpotNotFound = errors.New("spot not found")

	// ErrBookingNotFound means the referenced booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidState means the operation is not legal for the booking's
	// current lifecycle state.
	ErrInvalidState = errors.New("operation not allowed in current booking state")

	// ErrAlreadyCheckedIn guards check-in idempotency: a second check-in
	// never overwrites the recorded time.
	ErrAlreadyCheckedIn = errors.New("booking is already checked in")

	// ErrAlreadyCompleted means check-out was already performed.
	ErrAlreadyCompleted = errors.New("booking is already completed")

	// ErrNotOwner means the caller is not the booking's requester.
	ErrNotOwner = errors.New("booking does not belong to requester")
)
