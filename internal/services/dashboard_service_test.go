package services

import (
	"testing"
	"time"

	"sda-backend/internal/models"
	"sda-backend/internal/timeutil"
)

// ref is Wednesday 2025-03-19; its week is Mon 2025-03-17 .. Sun 2025-03-23
var ref = time.Date(2025, 3, 19, 12, 0, 0, 0, timeutil.IST)

func sale(id, date, category, attendedBy string, qty int, price float64) models.InteractionRecord {
	return models.InteractionRecord{
		ID: id, Date: date, Type: models.TypeSale,
		Category: category, AttendedBy: attendedBy,
		Sale: &models.SaleDetail{Quantity: qty, Price: price},
	}
}

func enquiry(id, date, category, attendedBy string, walkins int) models.InteractionRecord {
	return models.InteractionRecord{
		ID: id, Date: date, Type: models.TypeEnquiry,
		Category: category, AttendedBy: attendedBy,
		Enquiry: &models.EnquiryDetail{Walkins: walkins},
	}
}

func leave(id, date string) models.InteractionRecord {
	return models.InteractionRecord{
		ID: id, Date: date, Type: models.TypeLeave,
		Category: "Internal", AttendedBy: models.AttendedByMe,
		Leave: &models.LeaveDetail{LeaveType: models.LeaveWeekOff},
	}
}

func TestMonthToDateWindow(t *testing.T) {
	records := []models.InteractionRecord{
		sale("in-first", "2025-03-01", "OTG", models.AttendedByMe, 1, 100),
		sale("in-ref", "2025-03-19", "OTG", models.AttendedByMe, 1, 100),
		sale("out-future", "2025-03-20", "OTG", models.AttendedByMe, 1, 100),
		sale("out-prev-month", "2025-02-28", "OTG", models.AttendedByMe, 1, 100),
	}

	got, err := MonthToDate(records, ref)
	if err != nil {
		t.Fatalf("MonthToDate: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("MonthToDate returned %d records, want 2", len(got))
	}
	for _, r := range got {
		if r.ID != "in-first" && r.ID != "in-ref" {
			t.Errorf("unexpected record %s in window", r.ID)
		}
	}
}

func TestWeekToDateWindow(t *testing.T) {
	records := []models.InteractionRecord{
		sale("monday", "2025-03-17", "OTG", models.AttendedByMe, 1, 100),
		sale("ref-day", "2025-03-19", "OTG", models.AttendedByMe, 1, 100),
		sale("later-this-week", "2025-03-21", "OTG", models.AttendedByMe, 1, 100),
		sale("prev-sunday", "2025-03-16", "OTG", models.AttendedByMe, 1, 100),
	}

	got, err := WeekToDate(records, ref)
	if err != nil {
		t.Fatalf("WeekToDate: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("WeekToDate returned %d records, want 2", len(got))
	}
}

func TestWindowRejectsUnparsableDate(t *testing.T) {
	records := []models.InteractionRecord{
		sale("bad", "19/03/2025", "OTG", models.AttendedByMe, 1, 100),
	}
	if _, err := MonthToDate(records, ref); err == nil {
		t.Error("MonthToDate accepted unparsable date, want error")
	}
}

func TestFilterScopePartitions(t *testing.T) {
	records := []models.InteractionRecord{
		sale("mine", "2025-03-19", "OTG", models.AttendedByMe, 1, 100),
		sale("theirs", "2025-03-19", "OTG", models.AttendedByStaff, 1, 100),
	}

	my := FilterScope(records, ScopeMy)
	others := FilterScope(records, ScopeOthers)

	if len(my) != 1 || my[0].ID != "mine" {
		t.Errorf("ScopeMy = %v", my)
	}
	if len(others) != 1 || others[0].ID != "theirs" {
		t.Errorf("ScopeOthers = %v", others)
	}
	if len(my)+len(others) != len(records) {
		t.Error("scopes do not partition the record set")
	}
}

func TestConversionRate(t *testing.T) {
	tests := []struct {
		sales, walkins int
		want           float64
	}{
		{0, 0, 0},
		{5, 0, 100},
		{0, 5, 0},
		{1, 3, 25},
		{3, 1, 75},
	}
	for _, tt := range tests {
		if got := ConversionRate(tt.sales, tt.walkins); got != tt.want {
			t.Errorf("ConversionRate(%d, %d) = %v, want %v", tt.sales, tt.walkins, got, tt.want)
		}
	}
}

func TestRevenueAndWalkinSums(t *testing.T) {
	records := []models.InteractionRecord{
		sale("s1", "2025-03-19", "OTG", models.AttendedByMe, 2, 1500),
		sale("s2", "2025-03-19", "OTG", models.AttendedByMe, 0, 9999),
		enquiry("e1", "2025-03-19", "OTG", models.AttendedByMe, 3),
		leave("l1", "2025-03-19"),
	}

	if got := RevenueSum(records); got != 3000 {
		t.Errorf("RevenueSum = %v, want 3000", got)
	}
	if got := WalkinSum(records); got != 3 {
		t.Errorf("WalkinSum = %d, want 3", got)
	}
	if got := SalesCount(records); got != 2 {
		t.Errorf("SalesCount = %d, want 2", got)
	}
}

func TestWeekAttendance(t *testing.T) {
	records := []models.InteractionRecord{
		sale("mon-1", "2025-03-17", "OTG", models.AttendedByMe, 1, 100),
		sale("mon-2", "2025-03-17", "OTG", models.AttendedByMe, 1, 100),
		enquiry("wed", "2025-03-19", "OTG", models.AttendedByMe, 1),
		// Not counted: staff-attended, leave, outside the week
		sale("staff", "2025-03-18", "OTG", models.AttendedByStaff, 1, 100),
		leave("off", "2025-03-20"),
		sale("prev-week", "2025-03-16", "OTG", models.AttendedByMe, 1, 100),
	}

	series, err := WeekAttendance(records, ref)
	if err != nil {
		t.Fatalf("WeekAttendance: %v", err)
	}
	if len(series) != 7 {
		t.Fatalf("series has %d entries, want 7", len(series))
	}
	if series[0].Day != "Mon" || series[6].Day != "Sun" {
		t.Errorf("series order %s..%s, want Mon..Sun", series[0].Day, series[6].Day)
	}

	counts := map[string]int{}
	for _, d := range series {
		counts[d.Date] = d.Count
	}
	if counts["2025-03-17"] != 2 {
		t.Errorf("Monday count = %d, want 2", counts["2025-03-17"])
	}
	if counts["2025-03-19"] != 1 {
		t.Errorf("Wednesday count = %d, want 1", counts["2025-03-19"])
	}
	if counts["2025-03-18"] != 0 {
		t.Errorf("Tuesday count = %d, want 0 (staff record must not count)", counts["2025-03-18"])
	}
	if counts["2025-03-20"] != 0 {
		t.Errorf("Thursday count = %d, want 0 (leave must not count)", counts["2025-03-20"])
	}
}

func TestCategoryReport(t *testing.T) {
	records := []models.InteractionRecord{
		sale("s1", "2025-03-19", "OTG", models.AttendedByMe, 1, 500),
		sale("s2", "2025-03-19", "Geyser", models.AttendedByMe, 1, 2000),
		enquiry("e1", "2025-03-19", "OTG", models.AttendedByMe, 3),
	}

	rows := CategoryReport(records)
	if len(rows) != 2 {
		t.Fatalf("CategoryReport returned %d rows, want 2 (idle categories omitted)", len(rows))
	}
	if rows[0].Category != "Geyser" {
		t.Errorf("first row = %s, want Geyser (sorted by revenue)", rows[0].Category)
	}
	otg := rows[1]
	if otg.Walkins != 3 || otg.SalesCount != 1 {
		t.Errorf("OTG row = %+v", otg)
	}
	if otg.ConversionRate != 25 {
		t.Errorf("OTG conversion = %v, want 25", otg.ConversionRate)
	}
}

func TestComputeDashboard(t *testing.T) {
	records := []models.InteractionRecord{
		sale("s1", "2025-03-03", "OTG", models.AttendedByMe, 1, 4000),
		sale("s2", "2025-03-18", "Geyser", models.AttendedByMe, 2, 500),
		enquiry("e1", "2025-03-19", "OTG", models.AttendedByMe, 4),
		sale("staff", "2025-03-18", "OTG", models.AttendedByStaff, 1, 10000),
	}
	profile := &models.UserProfile{WeekTarget: 2000, MonthTarget: 10000}

	m, err := ComputeDashboard(records, profile, ref, ScopeMy)
	if err != nil {
		t.Fatalf("ComputeDashboard: %v", err)
	}

	if m.MTDRevenue != 5000 {
		t.Errorf("MTDRevenue = %v, want 5000", m.MTDRevenue)
	}
	if m.MTDSalesCount != 2 {
		t.Errorf("MTDSalesCount = %d, want 2", m.MTDSalesCount)
	}
	if m.MTDWalkins != 4 {
		t.Errorf("MTDWalkins = %d, want 4", m.MTDWalkins)
	}
	// 2 sales, 4 walkins -> 2/6
	wantConv := float64(2) / 6 * 100
	if m.MTDConversionRate != wantConv {
		t.Errorf("MTDConversionRate = %v, want %v", m.MTDConversionRate, wantConv)
	}
	if m.MonthTargetPct != 50 {
		t.Errorf("MonthTargetPct = %v, want 50", m.MonthTargetPct)
	}
	// Week window is Mar 17-19: s2 (1000) only for my scope
	if m.WeekRevenue != 1000 {
		t.Errorf("WeekRevenue = %v, want 1000", m.WeekRevenue)
	}
	if m.WeekTargetPct != 50 {
		t.Errorf("WeekTargetPct = %v, want 50", m.WeekTargetPct)
	}
}

func TestComputeDashboardNilProfile(t *testing.T) {
	m, err := ComputeDashboard(nil, nil, ref, ScopeMy)
	if err != nil {
		t.Fatalf("ComputeDashboard: %v", err)
	}
	if m.MonthTargetPct != 0 || m.WeekTargetPct != 0 {
		t.Errorf("target pcts = %v/%v, want 0/0", m.MonthTargetPct, m.WeekTargetPct)
	}
	if len(m.WeekAttendance) != 7 {
		t.Errorf("attendance has %d entries, want 7", len(m.WeekAttendance))
	}
}

func TestComputeDaySummary(t *testing.T) {
	records := []models.InteractionRecord{
		sale("s1", "2025-03-19", "OTG", models.AttendedByMe, 1, 700),
		sale("s2", "2025-03-18", "OTG", models.AttendedByMe, 1, 300),
		enquiry("e1", "2025-03-19", "OTG", models.AttendedByMe, 2),
	}

	summary := ComputeDaySummary(records, "2025-03-19")
	if len(summary.Records) != 2 {
		t.Errorf("day has %d records, want 2", len(summary.Records))
	}
	if summary.Revenue != 700 {
		t.Errorf("day revenue = %v, want 700", summary.Revenue)
	}

	empty := ComputeDaySummary(records, "2025-03-01")
	if empty.Records == nil || len(empty.Records) != 0 {
		t.Errorf("empty day records = %v, want empty slice", empty.Records)
	}
}
