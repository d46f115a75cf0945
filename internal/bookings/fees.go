package bookings

import "time"

// OverstayFee computes the penalty for checking out after the booked end
// time. No fee accrues within the grace period. Once grace is exceeded the
// overstay is measured from the booked end time itself (not from grace
// expiry) and partial hours are billed as full hours.
func OverstayFee(endTime, checkOut time.Time, grace time.Duration, ratePerHour float64) float64 {
	if !checkOut.After(endTime.Add(grace)) {
		return 0
	}

	overstay := checkOut.Sub(endTime)
	hours := int64(overstay / time.Hour)
	if overstay%time.Hour != 0 {
		hours++
	}

	return float64(hours) * ratePerHour
}

// ExtensionCost computes the charge for adding extraHours to a booking.
// The rate is a configured constant, independent of the spot's own price.
func ExtensionCost(extraHours int, ratePerHour float64) float64 {
	return float64(extraHours) * ratePerHour
}
