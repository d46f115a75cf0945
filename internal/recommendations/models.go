package recommendations

import "parkly/internal/spots"

// Mode selects the ranking strategy
type Mode string

const (
	ModeCheapest Mode = "cheapest"
	ModeNearest  Mode = "nearest"
	ModeBest     Mode = "best"
)

// IsValid checks if the mode is a known ranking strategy
func (m Mode) IsValid() bool {
	switch m {
	case ModeCheapest, ModeNearest, ModeBest:
		return true
	}
	return false
}

// ScoredSpot is a catalog spot annotated for ranking. Distance is
// straight-line (Euclidean over lat/long), an approximation acceptable at
// small regional scale. IsOccupied is derived from live bookings at the
// time of the query, never read from the spot record.
type ScoredSpot struct {
	Spot       spots.Spot `json:"spot"`
	Distance   float64    `json:"distance"`
	IsOccupied bool       `json:"is_occupied"`
	Score      float64    `json:"score"`
}

// RecommendationQuery binds the recommendation query parameters. Lat and
// Lng are pointers so absent coordinates are distinguishable from zero.
type RecommendationQuery struct {
	Lat  *float64 `form:"lat" binding:"required"`
	Lng  *float64 `form:"lng" binding:"required"`
	Mode string   `form:"mode" binding:"omitempty,oneof=cheapest nearest best"`
}
