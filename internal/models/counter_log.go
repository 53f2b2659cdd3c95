package models

// Counter categories (walk-in tracking at the demo counter, independent of
// the per-product interaction records)
const (
	CounterGarmentCare = "Garment Care"
	CounterKitchenCare = "Kitchen Care"
	CounterHomeCare    = "Home Care"
	CounterOthers      = "Others"
)

// CounterLog is one walk-in logged at the sales counter
type CounterLog struct {
	ID           string   `json:"id"`
	Date         string   `json:"date"`
	Timestamp    int64    `json:"timestamp"` // unix millis, ordering within a day
	Category     string   `json:"category"`
	Products     []string `json:"products"`
	Brands       []string `json:"brands"`
	Note         string   `json:"note"`
	HasPurchased bool     `json:"has_purchased"`
}

// CreateCounterLogRequest represents the request body for logging a counter walk-in
type CreateCounterLogRequest struct {
	Date         string   `json:"date"`
	Category     string   `json:"category"`
	Products     []string `json:"products"`
	Brands       []string `json:"brands"`
	Note         string   `json:"note"`
	HasPurchased bool     `json:"has_purchased"`
}
