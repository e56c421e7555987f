package costing

import (
	"context"

	"github.com/dentalcalc/backend/internal/domain/costing"
	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/dentalcalc/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// EquipmentService handles CRUD for depreciating equipment. Fixed-allocation
// equipment feeds the overhead pool, so its writes invalidate the cached
// rate just like fixed costs and salaries do.
type EquipmentService struct {
	repo      costing.EquipmentRepository
	rateCache RateInvalidator
	logger    *zap.Logger
}

// NewEquipmentService creates a new EquipmentService
func NewEquipmentService(repo costing.EquipmentRepository, rateCache RateInvalidator, logger *zap.Logger) *EquipmentService {
	return &EquipmentService{repo: repo, rateCache: rateCache, logger: logger}
}

// Create adds an equipment row to the clinic
func (s *EquipmentService) Create(ctx context.Context, clinicID uuid.UUID, req CreateEquipmentRequest) (*EquipmentResponse, error) {
	cost, err := valueobject.NewMoneyFromFloat(req.PurchaseCost, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}

	equipment, err := costing.NewEquipment(
		clinicID,
		req.Name,
		cost,
		req.LifeYears,
		costing.AllocationType(req.Allocation),
		decimal.NewFromFloat(req.MonthlyUsageHours),
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, equipment); err != nil {
		s.logger.Error("Failed to save equipment", zap.Error(err))
		return nil, err
	}
	invalidateRate(ctx, s.rateCache, s.logger, clinicID)

	return ToEquipmentResponse(equipment), nil
}

// Get returns a single equipment row
func (s *EquipmentService) Get(ctx context.Context, clinicID, id uuid.UUID) (*EquipmentResponse, error) {
	equipment, err := s.repo.FindByIDForClinic(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	return ToEquipmentResponse(equipment), nil
}

// List returns the clinic's equipment rows, paginated
func (s *EquipmentService) List(ctx context.Context, clinicID uuid.UUID, filter shared.Filter) (*shared.Paginated[EquipmentResponse], error) {
	rows, err := s.repo.FindAllForClinic(ctx, clinicID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountForClinic(ctx, clinicID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]EquipmentResponse, len(rows))
	for i := range rows {
		items[i] = *ToEquipmentResponse(&rows[i])
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update replaces an equipment row's fields
func (s *EquipmentService) Update(ctx context.Context, clinicID, id uuid.UUID, req UpdateEquipmentRequest) (*EquipmentResponse, error) {
	equipment, err := s.repo.FindByIDForClinic(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}

	cost, err := valueobject.NewMoneyFromFloat(req.PurchaseCost, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	err = equipment.Update(
		req.Name,
		cost,
		req.LifeYears,
		costing.AllocationType(req.Allocation),
		decimal.NewFromFloat(req.MonthlyUsageHours),
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, equipment); err != nil {
		return nil, err
	}
	invalidateRate(ctx, s.rateCache, s.logger, clinicID)

	return ToEquipmentResponse(equipment), nil
}

// Delete removes an equipment row
func (s *EquipmentService) Delete(ctx context.Context, clinicID, id uuid.UUID) error {
	if _, err := s.repo.FindByIDForClinic(ctx, clinicID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	invalidateRate(ctx, s.rateCache, s.logger, clinicID)
	return nil
}
