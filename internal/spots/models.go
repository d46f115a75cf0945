package spots

import (
	"time"

	"github.com/google/uuid"
)

// Spot is a schedulable parking spot. Occupancy is never stored on the
// record: it is always derived from live bookings overlapping a time
// window, so the spot row cannot race with concurrent bookings.
type Spot struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Address      string    `json:"address,omitempty"`
	Latitude     float64   `gorm:"not null" json:"latitude"`
	Longitude    float64   `gorm:"not null" json:"longitude"`
	PricePerHour float64   `gorm:"not null" json:"price_per_hour"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName sets the table name for Spot
func (Spot) TableName() string {
	return "spots"
}
