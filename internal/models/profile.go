package models

// UserProfile is the singleton associate profile. It is replaced wholesale
// on edit; aggregation never patches it.
type UserProfile struct {
	Name           string   `json:"name"`
	StoreName      string   `json:"store_name"`
	EmpID          string   `json:"emp_id"`
	Brand          string   `json:"brand"`
	BrandPortfolio []string `json:"brand_portfolio"`
	Department     string   `json:"department"`
	Photo          string   `json:"photo,omitempty"`
	WeekTarget     float64  `json:"week_target"`
	MonthTarget    float64  `json:"month_target"`

	// Auth fields, never serialized to clients or snapshots
	PINHash     string `json:"-"`
	TOTPSecret  string `json:"-"`
	TOTPEnabled bool   `json:"-"`
}

// RegisterRequest creates the profile and sets the login PIN
type RegisterRequest struct {
	Profile UserProfile `json:"profile"`
	PIN     string      `json:"pin"`
}

// LoginRequest authenticates with employee ID and PIN
type LoginRequest struct {
	EmpID string `json:"emp_id"`
	PIN   string `json:"pin"`
}
