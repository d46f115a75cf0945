package spots

type CreateSpotRequest struct {
	Name         string  `json:"name" binding:"required"`
	Address      string  `json:"address"`
	Latitude     float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude    float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
	PricePerHour float64 `json:"price_per_hour" binding:"required,gt=0"`
}

type UpdateSpotRequest struct {
	Name         *string  `json:"name"`
	Address      *string  `json:"address"`
	Latitude     *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	PricePerHour *float64 `json:"price_per_hour" binding:"omitempty,gt=0"`
}
