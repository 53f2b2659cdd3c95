package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"sda-backend/internal/models"
	"sda-backend/internal/repositories"
	"sda-backend/internal/timeutil"
)

var counterCategories = map[string]bool{
	models.CounterGarmentCare: true,
	models.CounterKitchenCare: true,
	models.CounterHomeCare:    true,
	models.CounterOthers:      true,
}

// CounterDaySummary aggregates one day of counter walk-ins
type CounterDaySummary struct {
	Date       string              `json:"date"`
	Total      int                 `json:"total"`
	Purchased  int                 `json:"purchased"`
	ByCategory map[string]int      `json:"by_category"`
	Logs       []models.CounterLog `json:"logs"`
}

// CounterService tracks walk-ins logged at the demo counter
type CounterService struct {
	Repo *repositories.CounterLogRepository
}

func NewCounterService(repo *repositories.CounterLogRepository) *CounterService {
	return &CounterService{Repo: repo}
}

func (s *CounterService) List(ctx context.Context) ([]models.CounterLog, error) {
	logs, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []models.CounterLog{}
	}
	return logs, nil
}

func (s *CounterService) Create(ctx context.Context, req *models.CreateCounterLogRequest) (*models.CounterLog, error) {
	if !counterCategories[req.Category] {
		return nil, fmt.Errorf("unknown counter category %q", req.Category)
	}
	date := req.Date
	if date == "" {
		date = timeutil.FormatDay(timeutil.Now())
	} else if _, err := timeutil.ParseDay(date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	l := &models.CounterLog{
		ID:           uuid.NewString(),
		Date:         date,
		Timestamp:    timeutil.Now().UnixMilli(),
		Category:     req.Category,
		Products:     req.Products,
		Brands:       req.Brands,
		Note:         req.Note,
		HasPurchased: req.HasPurchased,
	}
	if l.Products == nil {
		l.Products = []string{}
	}
	if l.Brands == nil {
		l.Brands = []string{}
	}
	if err := s.Repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *CounterService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// DaySummary totals one day's counter traffic per category
func (s *CounterService) DaySummary(ctx context.Context, date string) (*CounterDaySummary, error) {
	if _, err := timeutil.ParseDay(date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	logs, err := s.Repo.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return SummarizeCounterDay(date, logs), nil
}

// SummarizeCounterDay builds the per-category totals for one day's logs
func SummarizeCounterDay(date string, logs []models.CounterLog) *CounterDaySummary {
	summary := &CounterDaySummary{
		Date:       date,
		ByCategory: make(map[string]int),
		Logs:       logs,
	}
	if summary.Logs == nil {
		summary.Logs = []models.CounterLog{}
	}
	for _, l := range logs {
		summary.Total++
		summary.ByCategory[l.Category]++
		if l.HasPurchased {
			summary.Purchased++
		}
	}
	return summary
}
