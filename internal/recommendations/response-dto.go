package recommendations

// ListResponse is the payload for GET /recommendations
type ListResponse struct {
	Mode  Mode         `json:"mode"`
	Count int          `json:"count"`
	Spots []ScoredSpot `json:"spots"`
}
