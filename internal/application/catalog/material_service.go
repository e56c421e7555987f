package catalog

import (
	"context"

	"github.com/dentalcalc/backend/internal/domain/catalog"
	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/dentalcalc/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaterialService handles CRUD for the lab material library
type MaterialService struct {
	repo   catalog.LabMaterialRepository
	logger *zap.Logger
}

// NewMaterialService creates a new MaterialService
func NewMaterialService(repo catalog.LabMaterialRepository, logger *zap.Logger) *MaterialService {
	return &MaterialService{repo: repo, logger: logger}
}

// Create adds a lab material to the clinic's library
func (s *MaterialService) Create(ctx context.Context, clinicID uuid.UUID, req CreateLabMaterialRequest) (*LabMaterialResponse, error) {
	unitCost, err := valueobject.NewMoneyFromFloat(req.UnitCost, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}

	material, err := catalog.NewLabMaterial(clinicID, req.Name, req.LabName, unitCost)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, material); err != nil {
		s.logger.Error("Failed to save lab material", zap.Error(err))
		return nil, err
	}
	return ToLabMaterialResponse(material), nil
}

// Get returns a single lab material
func (s *MaterialService) Get(ctx context.Context, clinicID, id uuid.UUID) (*LabMaterialResponse, error) {
	material, err := s.repo.FindByIDForClinic(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	return ToLabMaterialResponse(material), nil
}

// List returns the clinic's lab materials, paginated
func (s *MaterialService) List(ctx context.Context, clinicID uuid.UUID, filter shared.Filter) (*shared.Paginated[LabMaterialResponse], error) {
	rows, err := s.repo.FindAllForClinic(ctx, clinicID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountForClinic(ctx, clinicID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]LabMaterialResponse, len(rows))
	for i := range rows {
		items[i] = *ToLabMaterialResponse(&rows[i])
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update replaces a lab material's fields
func (s *MaterialService) Update(ctx context.Context, clinicID, id uuid.UUID, req UpdateLabMaterialRequest) (*LabMaterialResponse, error) {
	material, err := s.repo.FindByIDForClinic(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}

	unitCost, err := valueobject.NewMoneyFromFloat(req.UnitCost, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	if err := material.Update(req.Name, req.LabName, unitCost); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, material); err != nil {
		return nil, err
	}
	return ToLabMaterialResponse(material), nil
}

// Delete removes a lab material from the library
func (s *MaterialService) Delete(ctx context.Context, clinicID, id uuid.UUID) error {
	if _, err := s.repo.FindByIDForClinic(ctx, clinicID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
