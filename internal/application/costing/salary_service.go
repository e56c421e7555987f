package costing

import (
	"context"

	"github.com/dentalcalc/backend/internal/domain/costing"
	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/dentalcalc/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SalaryService handles CRUD for staff salary rows
type SalaryService struct {
	repo      costing.SalaryRepository
	rateCache RateInvalidator
	logger    *zap.Logger
}

// NewSalaryService creates a new SalaryService
func NewSalaryService(repo costing.SalaryRepository, rateCache RateInvalidator, logger *zap.Logger) *SalaryService {
	return &SalaryService{repo: repo, rateCache: rateCache, logger: logger}
}

// Create adds a salary row to the clinic
func (s *SalaryService) Create(ctx context.Context, clinicID uuid.UUID, req CreateSalaryRequest) (*SalaryResponse, error) {
	monthly, err := valueobject.NewMoneyFromFloat(req.Monthly, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}

	salary, err := costing.NewStaffSalary(clinicID, req.Role, monthly)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, salary); err != nil {
		s.logger.Error("Failed to save staff salary", zap.Error(err))
		return nil, err
	}
	invalidateRate(ctx, s.rateCache, s.logger, clinicID)

	return ToSalaryResponse(salary), nil
}

// Get returns a single salary row
func (s *SalaryService) Get(ctx context.Context, clinicID, id uuid.UUID) (*SalaryResponse, error) {
	salary, err := s.repo.FindByIDForClinic(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	return ToSalaryResponse(salary), nil
}

// List returns the clinic's salary rows, paginated
func (s *SalaryService) List(ctx context.Context, clinicID uuid.UUID, filter shared.Filter) (*shared.Paginated[SalaryResponse], error) {
	salaries, err := s.repo.FindAllForClinic(ctx, clinicID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountForClinic(ctx, clinicID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]SalaryResponse, len(salaries))
	for i := range salaries {
		items[i] = *ToSalaryResponse(&salaries[i])
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update replaces a salary row's fields
func (s *SalaryService) Update(ctx context.Context, clinicID, id uuid.UUID, req UpdateSalaryRequest) (*SalaryResponse, error) {
	salary, err := s.repo.FindByIDForClinic(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}

	monthly, err := valueobject.NewMoneyFromFloat(req.Monthly, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	if err := salary.Update(req.Role, monthly, req.Included); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, salary); err != nil {
		return nil, err
	}
	invalidateRate(ctx, s.rateCache, s.logger, clinicID)

	return ToSalaryResponse(salary), nil
}

// Delete removes a salary row
func (s *SalaryService) Delete(ctx context.Context, clinicID, id uuid.UUID) error {
	if _, err := s.repo.FindByIDForClinic(ctx, clinicID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	invalidateRate(ctx, s.rateCache, s.logger, clinicID)
	return nil
}
