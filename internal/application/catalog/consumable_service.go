package catalog

import (
	"context"

	"github.com/dentalcalc/backend/internal/domain/catalog"
	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/dentalcalc/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConsumableService handles CRUD for the consumable library
type ConsumableService struct {
	repo   catalog.ConsumableRepository
	logger *zap.Logger
}

// NewConsumableService creates a new ConsumableService
func NewConsumableService(repo catalog.ConsumableRepository, logger *zap.Logger) *ConsumableService {
	return &ConsumableService{repo: repo, logger: logger}
}

// Create adds a consumable to the clinic's library
func (s *ConsumableService) Create(ctx context.Context, clinicID uuid.UUID, req CreateConsumableRequest) (*ConsumableResponse, error) {
	packCost, err := valueobject.NewMoneyFromFloat(req.PackCost, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}

	consumable, err := catalog.NewConsumable(clinicID, req.Name, packCost, req.CasesPerPack, req.UnitsPerCase)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, consumable); err != nil {
		s.logger.Error("Failed to save consumable", zap.Error(err))
		return nil, err
	}
	return ToConsumableResponse(consumable), nil
}

// Get returns a single consumable
func (s *ConsumableService) Get(ctx context.Context, clinicID, id uuid.UUID) (*ConsumableResponse, error) {
	consumable, err := s.repo.FindByIDForClinic(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	return ToConsumableResponse(consumable), nil
}

// List returns the clinic's consumables, paginated
func (s *ConsumableService) List(ctx context.Context, clinicID uuid.UUID, filter shared.Filter) (*shared.Paginated[ConsumableResponse], error) {
	rows, err := s.repo.FindAllForClinic(ctx, clinicID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountForClinic(ctx, clinicID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ConsumableResponse, len(rows))
	for i := range rows {
		items[i] = *ToConsumableResponse(&rows[i])
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update replaces a consumable's fields
func (s *ConsumableService) Update(ctx context.Context, clinicID, id uuid.UUID, req UpdateConsumableRequest) (*ConsumableResponse, error) {
	consumable, err := s.repo.FindByIDForClinic(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}

	packCost, err := valueobject.NewMoneyFromFloat(req.PackCost, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	if err := consumable.Update(req.Name, packCost, req.CasesPerPack, req.UnitsPerCase); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, consumable); err != nil {
		return nil, err
	}
	return ToConsumableResponse(consumable), nil
}

// Delete removes a consumable from the library. Services referencing it
// keep their line rows; the line simply prices at zero until detached.
func (s *ConsumableService) Delete(ctx context.Context, clinicID, id uuid.UUID) error {
	if _, err := s.repo.FindByIDForClinic(ctx, clinicID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
