package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"sda-backend/internal/models"
	"sda-backend/internal/repositories"
	"sda-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// reportLogCap limits the entry log section of the printable report
const reportLogCap = 100

// ReportData holds everything the printable monthly report renders. All
// numbers come from the dashboard computations; the renderer never
// recalculates a metric. StaffRevenue is the month-to-date revenue of the
// "others" scope, shown next to the associate's own figure.
type ReportData struct {
	Profile      *models.UserProfile
	Metrics      *DashboardMetrics
	StaffRevenue float64
	Entries      []models.InteractionRecord
	Date         time.Time
}

// ReportService renders the monthly performance report as PDF and CSV
type ReportService struct {
	InteractionRepo *repositories.InteractionRepository
	ProfileRepo     *repositories.ProfileRepository
}

func NewReportService(interactionRepo *repositories.InteractionRepository, profileRepo *repositories.ProfileRepository) *ReportService {
	return &ReportService{
		InteractionRepo: interactionRepo,
		ProfileRepo:     profileRepo,
	}
}

// GetReportData assembles the report for ref's month: KPIs for the "my"
// scope, the staff-assistance revenue figure, and the month-to-date entry
// log, newest first, capped at 100 rows.
func (s *ReportService) GetReportData(ctx context.Context, ref time.Time) (*ReportData, error) {
	records, err := s.InteractionRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := s.ProfileRepo.Get(ctx)
	if err != nil {
		profile = nil
	}
	return buildReportData(records, profile, ref)
}

func buildReportData(records []models.InteractionRecord, profile *models.UserProfile, ref time.Time) (*ReportData, error) {
	metrics, err := ComputeDashboard(records, profile, ref, ScopeMy)
	if err != nil {
		return nil, err
	}

	mtd, err := MonthToDate(records, ref)
	if err != nil {
		return nil, err
	}
	staffRevenue := RevenueSum(FilterScope(mtd, ScopeOthers))
	if len(mtd) > reportLogCap {
		mtd = mtd[:reportLogCap]
	}

	return &ReportData{
		Profile:      profile,
		Metrics:      metrics,
		StaffRevenue: staffRevenue,
		Entries:      mtd,
		Date:         ref,
	}, nil
}

// GeneratePDF renders the report data as a printable A4 PDF
func (s *ReportService) GeneratePDF(data *ReportData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Monthly Performance Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Month: %s", data.Date.Format("January 2006")), "", 1, "C", false, 0, "")
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Associate Info Box
	if data.Profile != nil {
		pdf.SetFillColor(240, 240, 240)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "Associate Information", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(95, 7, fmt.Sprintf("Name: %s", data.Profile.Name), "LB", 0, "L", false, 0, "")
		pdf.CellFormat(95, 7, fmt.Sprintf("Emp ID: %s", data.Profile.EmpID), "RB", 1, "L", false, 0, "")
		pdf.CellFormat(95, 7, fmt.Sprintf("Store: %s", data.Profile.StoreName), "LB", 0, "L", false, 0, "")
		pdf.CellFormat(95, 7, fmt.Sprintf("Brand: %s", data.Profile.Brand), "RB", 1, "L", false, 0, "")
		pdf.Ln(5)
	}

	// KPI Summary
	m := data.Metrics
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Month-to-Date Summary", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(63, 8, fmt.Sprintf("My Revenue: Rs. %.2f", m.MTDRevenue), "1", 0, "C", false, 0, "")
	pdf.CellFormat(63, 8, fmt.Sprintf("Sales: %d", m.MTDSalesCount), "1", 0, "C", false, 0, "")
	pdf.CellFormat(64, 8, fmt.Sprintf("Walk-ins: %d", m.MTDWalkins), "1", 1, "C", false, 0, "")
	pdf.CellFormat(63, 8, fmt.Sprintf("Staff Revenue: Rs. %.2f", data.StaffRevenue), "1", 0, "C", false, 0, "")
	pdf.CellFormat(63, 8, fmt.Sprintf("Conversion Rate: %.1f%%", m.MTDConversionRate), "1", 0, "C", false, 0, "")
	pdf.CellFormat(64, 8, fmt.Sprintf("Month Target: %.1f%%", m.MonthTargetPct), "1", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Category Report
	if len(m.CategoryReport) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "Weekly Category Performance", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(70, 7, "Category", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Walk-ins", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Sales", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Conv %", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Revenue", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, row := range m.CategoryReport {
			pdf.CellFormat(70, 6, row.Category, "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%d", row.Walkins), "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%d", row.SalesCount), "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%.1f", row.ConversionRate), "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", row.Revenue), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(5)
	}

	// Weekly Attendance
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 8, "Weekly Customer Traffic", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	for _, d := range m.WeekAttendance {
		pdf.CellFormat(27, 7, d.Day, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, d := range m.WeekAttendance {
		pdf.CellFormat(27, 6, fmt.Sprintf("%d", d.Count), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(11)

	// Entry Log
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 8, fmt.Sprintf("Entry Log (%d)", len(data.Entries)), "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(12, 7, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(24, 7, "Date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "Type", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Category", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Product", "1", 0, "C", true, 0, "")
	pdf.CellFormat(26, 7, "Attended", "1", 0, "C", true, 0, "")
	pdf.CellFormat(28, 7, "Revenue", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for i, e := range data.Entries {
		if i%2 == 0 {
			pdf.SetFillColor(255, 255, 255)
		} else {
			pdf.SetFillColor(245, 245, 245)
		}

		product := truncateLabel(e.ProductName, 18)
		category := truncateLabel(e.Category, 18)

		pdf.CellFormat(12, 6, fmt.Sprintf("%d", i+1), "1", 0, "C", true, 0, "")
		pdf.CellFormat(24, 6, e.Date, "1", 0, "C", true, 0, "")
		pdf.CellFormat(20, 6, e.Type, "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 6, category, "1", 0, "L", true, 0, "")
		pdf.CellFormat(40, 6, product, "1", 0, "L", true, 0, "")
		pdf.CellFormat(26, 6, e.AttendedBy, "1", 0, "C", true, 0, "")
		pdf.CellFormat(28, 6, fmt.Sprintf("%.2f", e.Revenue()), "1", 1, "R", true, 0, "")
	}

	var buf bytes.Buffer
	err := pdf.Output(&buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateCSV renders the same report data as CSV
func (s *ReportService) GenerateCSV(data *ReportData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	m := data.Metrics
	w.Write([]string{"Monthly Performance Report", data.Date.Format("January 2006")})
	if data.Profile != nil {
		w.Write([]string{"Associate", data.Profile.Name, "Emp ID", data.Profile.EmpID})
		w.Write([]string{"Store", data.Profile.StoreName, "Brand", data.Profile.Brand})
	}
	w.Write([]string{""})
	w.Write([]string{"MTD Revenue", fmt.Sprintf("%.2f", m.MTDRevenue)})
	w.Write([]string{"Staff Assistance Revenue", fmt.Sprintf("%.2f", data.StaffRevenue)})
	w.Write([]string{"MTD Sales", fmt.Sprintf("%d", m.MTDSalesCount)})
	w.Write([]string{"MTD Walk-ins", fmt.Sprintf("%d", m.MTDWalkins)})
	w.Write([]string{"Conversion Rate", fmt.Sprintf("%.1f%%", m.MTDConversionRate)})
	w.Write([]string{"Month Target", fmt.Sprintf("%.1f%%", m.MonthTargetPct)})
	w.Write([]string{""})

	w.Write([]string{"Category", "Walk-ins", "Sales", "Conv %", "Revenue"})
	for _, row := range m.CategoryReport {
		w.Write([]string{
			row.Category,
			fmt.Sprintf("%d", row.Walkins),
			fmt.Sprintf("%d", row.SalesCount),
			fmt.Sprintf("%.1f", row.ConversionRate),
			fmt.Sprintf("%.2f", row.Revenue),
		})
	}
	w.Write([]string{""})

	w.Write([]string{"#", "Date", "Type", "Category", "Brand", "Product", "Attended By", "Qty", "Price", "Revenue", "Walk-ins"})
	for i, e := range data.Entries {
		var qty, price string
		if e.Sale != nil {
			qty = fmt.Sprintf("%d", e.Sale.Quantity)
			price = fmt.Sprintf("%.2f", e.Sale.Price)
		}
		w.Write([]string{
			fmt.Sprintf("%d", i+1),
			e.Date,
			e.Type,
			e.Category,
			e.BrandName,
			e.ProductName,
			e.AttendedBy,
			qty,
			price,
			fmt.Sprintf("%.2f", e.Revenue()),
			fmt.Sprintf("%d", e.Walkins()),
		})
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// truncateLabel fits a free-text value into a fixed PDF cell, cutting on
// runes so multi-byte names are never split mid-character
func truncateLabel(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
