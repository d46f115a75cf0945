package bookings

import "time"

type CreateBookingRequest struct {
	SpotID      string    `json:"spot_id" binding:"required,uuid" validate:"required,uuid"`
	RequesterID string    `json:"requester_id" binding:"required,uuid" validate:"required,uuid"`
	StartTime   time.Time `json:"start_time" binding:"required" validate:"required"`
	EndTime     time.Time `json:"end_time" binding:"required" validate:"required,gtfield=StartTime"`
	Price       float64   `json:"price" binding:"required,gte=0" validate:"gte=0"`
}

type ScanRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
}

type ExtendBookingRequest struct {
	ExtraHours int `json:"extra_hours" binding:"required,gt=0"`
}

type CancelBookingRequest struct {
	RequesterID string `json:"requester_id" binding:"required,uuid"`
}
