package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"sda-backend/internal/models"
	"sda-backend/internal/repositories"
	"sda-backend/internal/timeutil"
)

// InteractionService owns the interaction record lifecycle: building a
// typed record from a flat request, enforcing the per-type defaults, and
// delegating storage to the repository.
type InteractionService struct {
	Repo *repositories.InteractionRepository
}

func NewInteractionService(repo *repositories.InteractionRepository) *InteractionService {
	return &InteractionService{Repo: repo}
}

// buildRecord maps a flat create/update request onto a typed record and
// applies the creation defaults: enquiries start at 1 walk-in unless the
// client sends an explicit count, and leave days are always own records in
// the Internal category.
func buildRecord(id string, req *models.CreateInteractionRequest) (*models.InteractionRecord, error) {
	if _, err := timeutil.ParseDay(req.Date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", req.Date, err)
	}

	rec := &models.InteractionRecord{
		ID:                id,
		Date:              req.Date,
		Type:              req.Type,
		Category:          req.Category,
		BrandName:         req.BrandName,
		ProductName:       req.ProductName,
		AttendedBy:        req.AttendedBy,
		ReasonForPurchase: req.ReasonForPurchase,
		CustomerFeedback:  req.CustomerFeedback,
		IsOwnBrand:        req.IsOwnBrand,
	}

	switch req.Type {
	case models.TypeSale:
		rec.Sale = &models.SaleDetail{Quantity: req.Quantity, Price: req.Price}
	case models.TypeEnquiry:
		walkins := 1
		if req.Walkins != nil {
			walkins = *req.Walkins
		}
		rec.Enquiry = &models.EnquiryDetail{Walkins: walkins}
	case models.TypeLeave:
		leaveType := req.LeaveType
		if leaveType == "" {
			leaveType = models.LeaveNone
		}
		rec.Leave = &models.LeaveDetail{LeaveType: leaveType}
		rec.AttendedBy = models.AttendedByMe
		rec.Category = "Internal"
	default:
		return nil, fmt.Errorf("unknown interaction type %q", req.Type)
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *InteractionService) List(ctx context.Context) ([]models.InteractionRecord, error) {
	records, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.InteractionRecord{}
	}
	return records, nil
}

func (s *InteractionService) Get(ctx context.Context, id string) (*models.InteractionRecord, error) {
	return s.Repo.Get(ctx, id)
}

func (s *InteractionService) Create(ctx context.Context, req *models.CreateInteractionRequest) (*models.InteractionRecord, error) {
	rec, err := buildRecord(uuid.NewString(), req)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *InteractionService) Update(ctx context.Context, id string, req *models.CreateInteractionRequest) (*models.InteractionRecord, error) {
	rec, err := buildRecord(id, req)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *InteractionService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
