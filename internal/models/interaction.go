package models

import "fmt"

// Interaction types
const (
	TypeSale    = "Sale"
	TypeEnquiry = "Enquiry"
	TypeLeave   = "Leave"
)

// Attended-by scopes
const (
	AttendedByMe    = "Me"
	AttendedByStaff = "Other Staff"
)

// Leave types
const (
	LeaveWeekOff = "Week Off"
	LeaveSick    = "Sick Leave"
	LeaveNone    = "None"
)

// ProductCategories is the fixed product family list used across the
// dashboard, reports and entry forms.
var ProductCategories = []string{
	"Mixer Grinder", "Air Fryer", "OTG", "Geyser", "Personal Care",
	"Chimney", "Toaster", "Iron Box", "Vacuum Cleaner", "Dyson",
	"Kettles", "Rice Cooker", "Induction", "Blender", "Others",
}

// Brands is the fixed brand picklist shown on entry forms
var Brands = []string{
	"Bajaj", "Philips", "Havells", "Butterfly", "Preeti", "Panasonic",
	"Wonderchef", "Morphy Richards", "Other",
}

// SaleDetail carries the fields that only exist for a Sale
type SaleDetail struct {
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// EnquiryDetail carries the fields that only exist for an Enquiry
type EnquiryDetail struct {
	Walkins int `json:"walkins"`
}

// LeaveDetail carries the fields that only exist for a Leave
type LeaveDetail struct {
	LeaveType string `json:"leave_type"`
}

// InteractionRecord is one logged customer interaction. The record is a
// tagged variant: Type selects which one of Sale/Enquiry/Leave is set, and
// exactly one must be set. Date is a calendar day ("2006-01-02"), no
// time-of-day.
type InteractionRecord struct {
	ID                string         `json:"id"`
	Date              string         `json:"date"`
	Type              string         `json:"interaction_type"`
	Category          string         `json:"category"`
	BrandName         string         `json:"brand_name"`
	ProductName       string         `json:"product_name"`
	AttendedBy        string         `json:"attended_by"`
	ReasonForPurchase string         `json:"reason_for_purchase"`
	CustomerFeedback  string         `json:"customer_feedback"`
	IsOwnBrand        bool           `json:"is_own_brand"`
	Sale              *SaleDetail    `json:"sale,omitempty"`
	Enquiry           *EnquiryDetail `json:"enquiry,omitempty"`
	Leave             *LeaveDetail   `json:"leave,omitempty"`
}

// Validate checks the tagged-variant invariant: the detail struct matching
// Type is present and the other two are absent.
func (r *InteractionRecord) Validate() error {
	switch r.Type {
	case TypeSale:
		if r.Sale == nil {
			return fmt.Errorf("sale record %s missing sale detail", r.ID)
		}
		if r.Enquiry != nil || r.Leave != nil {
			return fmt.Errorf("sale record %s carries non-sale detail", r.ID)
		}
		if r.Sale.Quantity < 0 || r.Sale.Price < 0 {
			return fmt.Errorf("sale record %s has negative quantity or price", r.ID)
		}
	case TypeEnquiry:
		if r.Enquiry == nil {
			return fmt.Errorf("enquiry record %s missing enquiry detail", r.ID)
		}
		if r.Sale != nil || r.Leave != nil {
			return fmt.Errorf("enquiry record %s carries non-enquiry detail", r.ID)
		}
		if r.Enquiry.Walkins < 0 {
			return fmt.Errorf("enquiry record %s has negative walkins", r.ID)
		}
	case TypeLeave:
		if r.Leave == nil {
			return fmt.Errorf("leave record %s missing leave detail", r.ID)
		}
		if r.Sale != nil || r.Enquiry != nil {
			return fmt.Errorf("leave record %s carries non-leave detail", r.ID)
		}
	default:
		return fmt.Errorf("record %s has unknown interaction type %q", r.ID, r.Type)
	}
	if r.AttendedBy != AttendedByMe && r.AttendedBy != AttendedByStaff {
		return fmt.Errorf("record %s has unknown attended_by %q", r.ID, r.AttendedBy)
	}
	return nil
}

// Revenue returns the revenue contribution of the record. Non-sale records
// contribute zero by construction.
func (r *InteractionRecord) Revenue() float64 {
	if r.Type != TypeSale || r.Sale == nil {
		return 0
	}
	return float64(r.Sale.Quantity) * r.Sale.Price
}

// Walkins returns the enquiry walk-in count, zero for non-enquiry records.
func (r *InteractionRecord) Walkins() int {
	if r.Type != TypeEnquiry || r.Enquiry == nil {
		return 0
	}
	return r.Enquiry.Walkins
}

// CreateInteractionRequest represents the request body for logging an interaction
type CreateInteractionRequest struct {
	Date              string  `json:"date"`
	Type              string  `json:"interaction_type"`
	Category          string  `json:"category"`
	BrandName         string  `json:"brand_name"`
	ProductName       string  `json:"product_name"`
	AttendedBy        string  `json:"attended_by"`
	ReasonForPurchase string  `json:"reason_for_purchase"`
	CustomerFeedback  string  `json:"customer_feedback"`
	IsOwnBrand        bool    `json:"is_own_brand"`
	Quantity          int     `json:"quantity"`
	Price             float64 `json:"price"`
	Walkins           *int    `json:"walkins,omitempty"`
	LeaveType         string  `json:"leave_type"`
}
