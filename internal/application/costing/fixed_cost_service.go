package costing

import (
	"context"

	"github.com/dentalcalc/backend/internal/domain/costing"
	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/dentalcalc/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RateInvalidator drops a clinic's cached overhead rate. Every cost write
// changes the overhead pool, so it must invalidate before returning.
type RateInvalidator interface {
	Invalidate(ctx context.Context, clinicID uuid.UUID) error
}

// FixedCostService handles CRUD for recurring facility costs
type FixedCostService struct {
	repo      costing.FixedCostRepository
	rateCache RateInvalidator
	logger    *zap.Logger
}

// NewFixedCostService creates a new FixedCostService
func NewFixedCostService(repo costing.FixedCostRepository, rateCache RateInvalidator, logger *zap.Logger) *FixedCostService {
	return &FixedCostService{repo: repo, rateCache: rateCache, logger: logger}
}

// Create adds a fixed cost row to the clinic
func (s *FixedCostService) Create(ctx context.Context, clinicID uuid.UUID, req CreateFixedCostRequest) (*FixedCostResponse, error) {
	amount, err := valueobject.NewMoneyFromFloat(req.Amount, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}

	cost, err := costing.NewFixedCost(clinicID, req.Category, amount, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, cost); err != nil {
		s.logger.Error("Failed to save fixed cost", zap.Error(err))
		return nil, err
	}
	invalidateRate(ctx, s.rateCache, s.logger, clinicID)

	return ToFixedCostResponse(cost), nil
}

// Get returns a single fixed cost row
func (s *FixedCostService) Get(ctx context.Context, clinicID, id uuid.UUID) (*FixedCostResponse, error) {
	cost, err := s.repo.FindByIDForClinic(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	return ToFixedCostResponse(cost), nil
}

// List returns the clinic's fixed cost rows, paginated
func (s *FixedCostService) List(ctx context.Context, clinicID uuid.UUID, filter shared.Filter) (*shared.Paginated[FixedCostResponse], error) {
	costs, err := s.repo.FindAllForClinic(ctx, clinicID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountForClinic(ctx, clinicID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]FixedCostResponse, len(costs))
	for i := range costs {
		items[i] = *ToFixedCostResponse(&costs[i])
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update replaces a fixed cost row's fields
func (s *FixedCostService) Update(ctx context.Context, clinicID, id uuid.UUID, req UpdateFixedCostRequest) (*FixedCostResponse, error) {
	cost, err := s.repo.FindByIDForClinic(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}

	amount, err := valueobject.NewMoneyFromFloat(req.Amount, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	if err := cost.Update(req.Category, amount, req.Included, req.Notes); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, cost); err != nil {
		return nil, err
	}
	invalidateRate(ctx, s.rateCache, s.logger, clinicID)

	return ToFixedCostResponse(cost), nil
}

// SetIncluded toggles whether the row contributes to the overhead pool
func (s *FixedCostService) SetIncluded(ctx context.Context, clinicID, id uuid.UUID, included bool) (*FixedCostResponse, error) {
	cost, err := s.repo.FindByIDForClinic(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}

	cost.SetIncluded(included)
	if err := s.repo.Save(ctx, cost); err != nil {
		return nil, err
	}
	invalidateRate(ctx, s.rateCache, s.logger, clinicID)

	return ToFixedCostResponse(cost), nil
}

// Delete removes a fixed cost row
func (s *FixedCostService) Delete(ctx context.Context, clinicID, id uuid.UUID) error {
	// scoped lookup first so one clinic cannot delete another's rows
	if _, err := s.repo.FindByIDForClinic(ctx, clinicID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	invalidateRate(ctx, s.rateCache, s.logger, clinicID)
	return nil
}

// invalidateRate drops the cached rate; a cache failure is logged, not
// surfaced, because the cache is an optimization with a TTL backstop.
func invalidateRate(ctx context.Context, cache RateInvalidator, logger *zap.Logger, clinicID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, clinicID); err != nil {
		logger.Warn("Failed to invalidate overhead rate cache",
			zap.String("clinic_id", clinicID.String()),
			zap.Error(err))
	}
}
