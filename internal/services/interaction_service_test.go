package services

import (
	"testing"

	"sda-backend/internal/models"
)

func TestBuildRecordEnquiryWalkinDefault(t *testing.T) {
	req := &models.CreateInteractionRequest{
		Date:       "2025-03-19",
		Type:       models.TypeEnquiry,
		Category:   "OTG",
		AttendedBy: models.AttendedByMe,
	}

	rec, err := buildRecord("e1", req)
	if err != nil {
		t.Fatalf("buildRecord: %v", err)
	}
	if rec.Enquiry == nil || rec.Enquiry.Walkins != 1 {
		t.Errorf("enquiry detail = %+v, want 1 walk-in by default", rec.Enquiry)
	}
}

func TestBuildRecordEnquiryExplicitWalkins(t *testing.T) {
	walkins := 5
	req := &models.CreateInteractionRequest{
		Date:       "2025-03-19",
		Type:       models.TypeEnquiry,
		Category:   "OTG",
		AttendedBy: models.AttendedByMe,
		Walkins:    &walkins,
	}

	rec, err := buildRecord("e1", req)
	if err != nil {
		t.Fatalf("buildRecord: %v", err)
	}
	if rec.Enquiry.Walkins != 5 {
		t.Errorf("Walkins = %d, want 5", rec.Enquiry.Walkins)
	}
}

func TestBuildRecordLeaveDefaults(t *testing.T) {
	// Leave days are always own records in the Internal category, whatever
	// the client sends.
	req := &models.CreateInteractionRequest{
		Date:       "2025-03-19",
		Type:       models.TypeLeave,
		Category:   "OTG",
		AttendedBy: models.AttendedByStaff,
	}

	rec, err := buildRecord("l1", req)
	if err != nil {
		t.Fatalf("buildRecord: %v", err)
	}
	if rec.AttendedBy != models.AttendedByMe {
		t.Errorf("AttendedBy = %q, want %q", rec.AttendedBy, models.AttendedByMe)
	}
	if rec.Category != "Internal" {
		t.Errorf("Category = %q, want Internal", rec.Category)
	}
	if rec.Leave == nil || rec.Leave.LeaveType != models.LeaveNone {
		t.Errorf("Leave = %+v, want leave type %q", rec.Leave, models.LeaveNone)
	}
}

func TestBuildRecordLeaveTypeKept(t *testing.T) {
	req := &models.CreateInteractionRequest{
		Date:      "2025-03-19",
		Type:      models.TypeLeave,
		LeaveType: models.LeaveSick,
	}

	rec, err := buildRecord("l1", req)
	if err != nil {
		t.Fatalf("buildRecord: %v", err)
	}
	if rec.Leave.LeaveType != models.LeaveSick {
		t.Errorf("LeaveType = %q, want %q", rec.Leave.LeaveType, models.LeaveSick)
	}
}

func TestBuildRecordSale(t *testing.T) {
	req := &models.CreateInteractionRequest{
		Date:       "2025-03-19",
		Type:       models.TypeSale,
		Category:   "Geyser",
		AttendedBy: models.AttendedByMe,
		Quantity:   2,
		Price:      1500,
		IsOwnBrand: true,
	}

	rec, err := buildRecord("s1", req)
	if err != nil {
		t.Fatalf("buildRecord: %v", err)
	}
	if rec.Sale == nil || rec.Revenue() != 3000 {
		t.Errorf("Revenue = %v, want 3000", rec.Revenue())
	}
	if !rec.IsOwnBrand {
		t.Error("IsOwnBrand not carried over")
	}
}

func TestBuildRecordRejections(t *testing.T) {
	tests := []struct {
		name string
		req  models.CreateInteractionRequest
	}{
		{"bad date", models.CreateInteractionRequest{
			Date: "19/03/2025", Type: models.TypeSale,
			AttendedBy: models.AttendedByMe, Quantity: 1, Price: 10,
		}},
		{"unknown type", models.CreateInteractionRequest{
			Date: "2025-03-19", Type: "Refund", AttendedBy: models.AttendedByMe,
		}},
		{"negative price", models.CreateInteractionRequest{
			Date: "2025-03-19", Type: models.TypeSale,
			AttendedBy: models.AttendedByMe, Quantity: 1, Price: -10,
		}},
		{"unknown attended_by", models.CreateInteractionRequest{
			Date: "2025-03-19", Type: models.TypeSale,
			AttendedBy: "Manager", Quantity: 1, Price: 10,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := buildRecord("x", &tt.req); err == nil {
				t.Error("buildRecord succeeded, want error")
			}
		})
	}
}
