package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"sda-backend/internal/models"
	"sda-backend/internal/repositories"
	"sda-backend/internal/timeutil"
)

// Scope selects which attended-by partition a metric covers
const (
	ScopeMy     = "my"
	ScopeOthers = "others"
)

// DayAttendance is one bar of the weekly traffic chart
type DayAttendance struct {
	Date  string `json:"date"`
	Day   string `json:"day"` // Mon..Sun
	Count int    `json:"count"`
}

// CategoryInsight is one row of the weekly family (category) report
type CategoryInsight struct {
	Category       string  `json:"category"`
	Walkins        int     `json:"walkins"`
	SalesCount     int     `json:"sales_count"`
	ConversionRate float64 `json:"conversion_rate"`
	Revenue        float64 `json:"revenue"`
}

// DashboardMetrics is the full KPI payload for one scope
type DashboardMetrics struct {
	Scope             string            `json:"scope"`
	Date              string            `json:"date"`
	MTDRevenue        float64           `json:"mtd_revenue"`
	MTDSalesCount     int               `json:"mtd_sales_count"`
	MTDWalkins        int               `json:"mtd_walkins"`
	MTDConversionRate float64           `json:"mtd_conversion_rate"`
	MonthTargetPct    float64           `json:"month_target_pct"`
	WeekRevenue       float64           `json:"week_revenue"`
	WeekTargetPct     float64           `json:"week_target_pct"`
	WeekAttendance    []DayAttendance   `json:"week_attendance"`
	WeekAttendedTotal int               `json:"week_attended_total"`
	CategoryReport    []CategoryInsight `json:"category_report"`
}

// DaySummary is the detail card for a single selected date
type DaySummary struct {
	Date    string                     `json:"date"`
	Revenue float64                    `json:"revenue"`
	Records []models.InteractionRecord `json:"records"`
}

// DashboardService computes derived metrics over the record store. All
// computation is pure and in-memory; the service only fetches the snapshot
// and delegates to the package-level functions below.
type DashboardService struct {
	InteractionRepo *repositories.InteractionRepository
	ProfileRepo     *repositories.ProfileRepository
}

func NewDashboardService(interactionRepo *repositories.InteractionRepository, profileRepo *repositories.ProfileRepository) *DashboardService {
	return &DashboardService{
		InteractionRepo: interactionRepo,
		ProfileRepo:     profileRepo,
	}
}

// MonthToDate returns the records dated within [first of ref's month, ref].
// A record with an unparsable date is a data-integrity error, never dropped.
func MonthToDate(records []models.InteractionRecord, ref time.Time) ([]models.InteractionRecord, error) {
	return window(records, timeutil.StartOfMonth(ref), timeutil.StartOfDay(ref))
}

// WeekToDate returns the records dated within [most recent Monday, ref]
func WeekToDate(records []models.InteractionRecord, ref time.Time) ([]models.InteractionRecord, error) {
	return window(records, timeutil.StartOfWeek(ref), timeutil.StartOfDay(ref))
}

func window(records []models.InteractionRecord, from, to time.Time) ([]models.InteractionRecord, error) {
	var out []models.InteractionRecord
	for _, r := range records {
		day, err := timeutil.ParseDay(r.Date)
		if err != nil {
			return nil, fmt.Errorf("record %s has unparsable date %q: %w", r.ID, r.Date, err)
		}
		if !day.Before(from) && !day.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

// FilterScope partitions records by attended-by. Every record belongs to
// exactly one of the two scopes.
func FilterScope(records []models.InteractionRecord, scope string) []models.InteractionRecord {
	attendedBy := models.AttendedByMe
	if scope == ScopeOthers {
		attendedBy = models.AttendedByStaff
	}
	var out []models.InteractionRecord
	for _, r := range records {
		if r.AttendedBy == attendedBy {
			out = append(out, r)
		}
	}
	return out
}

// RevenueSum sums quantity*price over Sale records. Zero price or quantity
// contributes zero; non-sale records contribute zero regardless of stored data.
func RevenueSum(records []models.InteractionRecord) float64 {
	var total float64
	for _, r := range records {
		total += r.Revenue()
	}
	return total
}

// WalkinSum sums enquiry walk-in counts, treating absent as zero
func WalkinSum(records []models.InteractionRecord) int {
	var total int
	for _, r := range records {
		total += r.Walkins()
	}
	return total
}

// SalesCount counts Sale records
func SalesCount(records []models.InteractionRecord) int {
	var n int
	for _, r := range records {
		if r.Type == models.TypeSale {
			n++
		}
	}
	return n
}

// ConversionRate is 100*sales/(sales+walkins), defined as 0 when the
// denominator is 0. Full precision is kept; rounding is a display concern.
func ConversionRate(salesCount, walkins int) float64 {
	potential := salesCount + walkins
	if potential == 0 {
		return 0
	}
	return float64(salesCount) / float64(potential) * 100
}

// WeekAttendance builds the 7-day traffic series for ref's week: per day,
// the count of non-Leave records attended by Me. Always exactly 7 entries
// in Monday through Sunday order, zero-filled.
func WeekAttendance(records []models.InteractionRecord, ref time.Time) ([]DayAttendance, error) {
	weekly, err := window(records, timeutil.StartOfWeek(ref), timeutil.StartOfWeek(ref).AddDate(0, 0, 6))
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, r := range weekly {
		if r.AttendedBy == models.AttendedByMe && r.Type != models.TypeLeave {
			counts[r.Date]++
		}
	}
	days := timeutil.WeekDays(ref)
	series := make([]DayAttendance, 0, 7)
	for _, d := range days {
		key := timeutil.FormatDay(d)
		series = append(series, DayAttendance{
			Date:  key,
			Day:   d.Format("Mon"),
			Count: counts[key],
		})
	}
	return series, nil
}

// CategoryReport builds the weekly family report over an already-windowed,
// already-scoped record set: per category walk-ins, sales, conversion rate
// and revenue. Categories with no activity are omitted; rows are sorted by
// revenue descending.
func CategoryReport(records []models.InteractionRecord) []CategoryInsight {
	var rows []CategoryInsight
	for _, cat := range models.ProductCategories {
		var insight CategoryInsight
		insight.Category = cat
		for _, r := range records {
			if r.Category != cat {
				continue
			}
			if r.Type == models.TypeSale {
				insight.SalesCount++
				insight.Revenue += r.Revenue()
			}
			insight.Walkins += r.Walkins()
		}
		if insight.Walkins == 0 && insight.SalesCount == 0 {
			continue
		}
		insight.ConversionRate = ConversionRate(insight.SalesCount, insight.Walkins)
		rows = append(rows, insight)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Revenue > rows[j].Revenue })
	return rows
}

// ComputeDashboard derives the full KPI payload from a record set, a
// reference date and a scope. Pure; profile may be nil (targets report 0%).
func ComputeDashboard(records []models.InteractionRecord, profile *models.UserProfile, ref time.Time, scope string) (*DashboardMetrics, error) {
	mtd, err := MonthToDate(records, ref)
	if err != nil {
		return nil, err
	}
	wtd, err := WeekToDate(records, ref)
	if err != nil {
		return nil, err
	}
	attendance, err := WeekAttendance(records, ref)
	if err != nil {
		return nil, err
	}

	scopedMTD := FilterScope(mtd, scope)
	scopedWTD := FilterScope(wtd, scope)

	m := &DashboardMetrics{
		Scope:          scope,
		Date:           timeutil.FormatDay(ref),
		MTDRevenue:     RevenueSum(scopedMTD),
		MTDSalesCount:  SalesCount(scopedMTD),
		MTDWalkins:     WalkinSum(scopedMTD),
		WeekRevenue:    RevenueSum(scopedWTD),
		WeekAttendance: attendance,
		CategoryReport: CategoryReport(scopedWTD),
	}
	m.MTDConversionRate = ConversionRate(m.MTDSalesCount, m.MTDWalkins)
	for _, d := range attendance {
		m.WeekAttendedTotal += d.Count
	}
	if profile != nil {
		if profile.MonthTarget > 0 {
			m.MonthTargetPct = m.MTDRevenue / profile.MonthTarget * 100
		}
		if profile.WeekTarget > 0 {
			m.WeekTargetPct = m.WeekRevenue / profile.WeekTarget * 100
		}
	}
	return m, nil
}

// ComputeDaySummary collects the records and revenue for one calendar day
func ComputeDaySummary(records []models.InteractionRecord, day string) DaySummary {
	summary := DaySummary{Date: day, Records: []models.InteractionRecord{}}
	for _, r := range records {
		if r.Date == day {
			summary.Records = append(summary.Records, r)
			summary.Revenue += r.Revenue()
		}
	}
	return summary
}

// GetDashboard fetches the current record snapshot and computes KPIs for
// the given scope and reference date.
func (s *DashboardService) GetDashboard(ctx context.Context, scope string, ref time.Time) (*DashboardMetrics, error) {
	if scope != ScopeMy && scope != ScopeOthers {
		return nil, fmt.Errorf("invalid scope: %s", scope)
	}
	records, err := s.InteractionRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := s.ProfileRepo.Get(ctx)
	if err != nil {
		profile = nil // dashboard works before the profile exists
	}
	return ComputeDashboard(records, profile, ref, scope)
}

// GetDaySummary fetches the records logged on one calendar day
func (s *DashboardService) GetDaySummary(ctx context.Context, day string) (*DaySummary, error) {
	if _, err := timeutil.ParseDay(day); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", day, err)
	}
	records, err := s.InteractionRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	summary := ComputeDaySummary(records, day)
	return &summary, nil
}
