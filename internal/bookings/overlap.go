package bookings

import (
	"time"

	"github.com/google/uuid"
)

// Reservation windows are half-open intervals [start, end). Two windows
// overlap iff s1 < e2 && e1 > s2; windows that merely touch at an endpoint
// do not overlap, which permits back-to-back bookings on the same spot.

// WindowsOverlap reports whether [s1,e1) and [s2,e2) share at least one
// instant under strict-inequality comparison.
func WindowsOverlap(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// ValidateWindow rejects malformed reservation windows
func ValidateWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		return ErrInvalidWindow
	}
	return nil
}

// HasOverlap reports whether any live booking for spotID in candidates
// intersects [start, end). Bookings in terminal states never block, and
// excludeID (if non-nil) skips the booking being modified so a booking
// cannot conflict with itself. Pure function; the repository runs the same
// predicate as an indexed query inside the creation transaction.
func HasOverlap(candidates []Booking, spotID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) bool {
	for i := range candidates {
		b := &candidates[i]
		if b.SpotID != spotID || !b.Status.IsLive() {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if WindowsOverlap(start, end, b.StartTime, b.EndTime) {
			return true
		}
	}
	return false
}
