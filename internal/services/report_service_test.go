package services

import (
	"bytes"
	"strings"
	"testing"

	"sda-backend/internal/models"
)

func reportFixture(t *testing.T) *ReportData {
	t.Helper()
	records := []models.InteractionRecord{
		sale("s1", "2025-03-18", "Geyser", models.AttendedByMe, 2, 500),
		sale("s2", "2025-03-03", "OTG", models.AttendedByMe, 1, 4000),
		sale("s3", "2025-03-10", "Cooler", models.AttendedByStaff, 1, 7777),
		enquiry("e1", "2025-03-19", "OTG", models.AttendedByMe, 4),
	}
	profile := &models.UserProfile{
		Name: "Asha", EmpID: "E42", StoreName: "Phoenix Mall",
		Brand: "Bajaj", WeekTarget: 2000, MonthTarget: 10000,
	}
	data, err := buildReportData(records, profile, ref)
	if err != nil {
		t.Fatalf("buildReportData: %v", err)
	}
	return data
}

func TestGenerateCSVMatchesDashboard(t *testing.T) {
	svc := &ReportService{}
	data := reportFixture(t)

	out, err := svc.GenerateCSV(data)
	if err != nil {
		t.Fatalf("GenerateCSV: %v", err)
	}
	csv := string(out)

	// The summary rows must carry the dashboard numbers verbatim
	for _, want := range []string{
		"MTD Revenue,5000.00",
		"Staff Assistance Revenue,7777.00",
		"MTD Sales,2",
		"MTD Walk-ins,4",
		"Month Target,50.0%",
		"Asha", "E42", "Phoenix Mall",
		"March 2025",
	} {
		if !strings.Contains(csv, want) {
			t.Errorf("CSV missing %q", want)
		}
	}

	// Entry rows: s2 is qty 1, price 4000, revenue 4000, no walk-ins;
	// e1 has no qty or price and 4 walk-ins
	if !strings.Contains(csv, ",1,4000.00,4000.00,0") {
		t.Errorf("CSV missing sale row for s2:\n%s", csv)
	}
	if !strings.Contains(csv, ",,,0.00,4") {
		t.Errorf("CSV missing enquiry row with 4 walk-ins:\n%s", csv)
	}
}

func TestReportCarriesBothScopeRevenues(t *testing.T) {
	records := []models.InteractionRecord{
		sale("s1", "2025-03-05", "Geyser", models.AttendedByMe, 1, 1000),
		sale("s2", "2025-03-06", "Cooler", models.AttendedByStaff, 1, 7777),
	}
	data, err := buildReportData(records, nil, ref)
	if err != nil {
		t.Fatalf("buildReportData: %v", err)
	}
	if data.Metrics.MTDRevenue != 1000 {
		t.Errorf("own MTD revenue = %.2f, want 1000", data.Metrics.MTDRevenue)
	}
	if data.StaffRevenue != 7777 {
		t.Errorf("staff MTD revenue = %.2f, want 7777", data.StaffRevenue)
	}

	svc := &ReportService{}
	out, err := svc.GenerateCSV(data)
	if err != nil {
		t.Fatalf("GenerateCSV: %v", err)
	}
	csv := string(out)
	if !strings.Contains(csv, "MTD Revenue,1000.00") {
		t.Errorf("CSV missing own revenue row:\n%s", csv)
	}
	if !strings.Contains(csv, "Staff Assistance Revenue,7777.00") {
		t.Errorf("CSV missing staff assistance row:\n%s", csv)
	}
}

func TestGenerateCSVNoProfile(t *testing.T) {
	svc := &ReportService{}
	data := reportFixture(t)
	data.Profile = nil

	out, err := svc.GenerateCSV(data)
	if err != nil {
		t.Fatalf("GenerateCSV: %v", err)
	}
	if strings.Contains(string(out), "Associate") {
		t.Error("CSV carries associate rows without a profile")
	}
}

func TestGeneratePDF(t *testing.T) {
	svc := &ReportService{}
	data := reportFixture(t)

	out, err := svc.GeneratePDF(data)
	if err != nil {
		t.Fatalf("GeneratePDF: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short unchanged", "Mixer Grinder", "Mixer Grinder"},
		{"exact limit unchanged", "Kitchen Appliance.", "Kitchen Appliance."},
		{"long ascii", "Professional Vacuum Cleaner", "Professional Va..."},
		{"long devanagari", strings.Repeat("ग", 25), strings.Repeat("ग", 15) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateLabel(tt.in, 18); got != tt.want {
				t.Errorf("truncateLabel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
