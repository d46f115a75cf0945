package bookings

// ScanType distinguishes what a scan performed
type ScanType string

const (
	ScanTypeCheckIn  ScanType = "check-in"
	ScanTypeCheckOut ScanType = "check-out"
)

// ScanResponse is returned by the scan endpoint. ExtraFee is only
// meaningful for check-out results.
type ScanResponse struct {
	Type     ScanType `json:"type"`
	Booking  *Booking `json:"booking"`
	ExtraFee float64  `json:"extra_fee"`
}

// ExtendResponse reports the updated booking and the cost charged for the
// added hours.
type ExtendResponse struct {
	Booking        *Booking `json:"booking"`
	AdditionalCost float64  `json:"additional_cost"`
}
