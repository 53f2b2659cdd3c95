package models

import "testing"

func saleRecord() InteractionRecord {
	return InteractionRecord{
		ID:         "r1",
		Date:       "2025-03-19",
		Type:       TypeSale,
		Category:   "Mixer Grinder",
		AttendedBy: AttendedByMe,
		Sale:       &SaleDetail{Quantity: 2, Price: 1500},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*InteractionRecord)
		wantErr bool
	}{
		{"valid sale", func(r *InteractionRecord) {}, false},
		{"sale missing detail", func(r *InteractionRecord) { r.Sale = nil }, true},
		{"sale with enquiry detail", func(r *InteractionRecord) {
			r.Enquiry = &EnquiryDetail{Walkins: 1}
		}, true},
		{"negative price", func(r *InteractionRecord) { r.Sale.Price = -1 }, true},
		{"negative quantity", func(r *InteractionRecord) { r.Sale.Quantity = -1 }, true},
		{"unknown type", func(r *InteractionRecord) { r.Type = "Refund" }, true},
		{"unknown attended_by", func(r *InteractionRecord) { r.AttendedBy = "Manager" }, true},
		{"valid enquiry", func(r *InteractionRecord) {
			r.Type = TypeEnquiry
			r.Sale = nil
			r.Enquiry = &EnquiryDetail{Walkins: 3}
		}, false},
		{"enquiry negative walkins", func(r *InteractionRecord) {
			r.Type = TypeEnquiry
			r.Sale = nil
			r.Enquiry = &EnquiryDetail{Walkins: -2}
		}, true},
		{"valid leave", func(r *InteractionRecord) {
			r.Type = TypeLeave
			r.Sale = nil
			r.Leave = &LeaveDetail{LeaveType: LeaveWeekOff}
		}, false},
		{"leave with sale detail", func(r *InteractionRecord) {
			r.Type = TypeLeave
			r.Leave = &LeaveDetail{LeaveType: LeaveSick}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := saleRecord()
			tt.mutate(&rec)
			err := rec.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRevenue(t *testing.T) {
	rec := saleRecord()
	if got := rec.Revenue(); got != 3000 {
		t.Errorf("Revenue = %v, want 3000", got)
	}

	rec.Sale.Quantity = 0
	if got := rec.Revenue(); got != 0 {
		t.Errorf("Revenue with zero quantity = %v, want 0", got)
	}

	enquiry := InteractionRecord{Type: TypeEnquiry, Enquiry: &EnquiryDetail{Walkins: 5}}
	if got := enquiry.Revenue(); got != 0 {
		t.Errorf("enquiry Revenue = %v, want 0", got)
	}
}

func TestWalkins(t *testing.T) {
	enquiry := InteractionRecord{Type: TypeEnquiry, Enquiry: &EnquiryDetail{Walkins: 4}}
	if got := enquiry.Walkins(); got != 4 {
		t.Errorf("Walkins = %d, want 4", got)
	}
	if got := saleRecordPtr().Walkins(); got != 0 {
		t.Errorf("sale Walkins = %d, want 0", got)
	}
}

func saleRecordPtr() *InteractionRecord {
	r := saleRecord()
	return &r
}
