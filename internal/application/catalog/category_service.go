package catalog

import (
	"context"

	"github.com/dentalcalc/backend/internal/domain/catalog"
	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryService handles CRUD for service categories. New clinics get the
// standard dental category set seeded at registration; this service covers
// everything after that.
type CategoryService struct {
	repo   catalog.CategoryRepository
	logger *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(repo catalog.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

// Create adds a category to the clinic
func (s *CategoryService) Create(ctx context.Context, clinicID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := catalog.NewServiceCategory(clinicID, req.Name, req.SortOrder)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, category); err != nil {
		s.logger.Error("Failed to save category", zap.Error(err))
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// List returns the clinic's categories, paginated. The default filter
// orders by sort_order so the dental specialties keep their seeded order.
func (s *CategoryService) List(ctx context.Context, clinicID uuid.UUID, filter shared.Filter) (*shared.Paginated[CategoryResponse], error) {
	rows, err := s.repo.FindAllForClinic(ctx, clinicID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountForClinic(ctx, clinicID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]CategoryResponse, len(rows))
	for i := range rows {
		items[i] = *ToCategoryResponse(&rows[i])
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Rename renames a category
func (s *CategoryService) Rename(ctx context.Context, clinicID, id uuid.UUID, req RenameCategoryRequest) (*CategoryResponse, error) {
	category, err := s.repo.FindByIDForClinic(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}

	if err := category.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, category); err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// Delete removes a category. Services in the category are not deleted;
// their category reference is cleared by the schema's ON DELETE SET NULL.
func (s *CategoryService) Delete(ctx context.Context, clinicID, id uuid.UUID) error {
	if _, err := s.repo.FindByIDForClinic(ctx, clinicID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// SeedDefaults creates the standard dental category set for a new clinic
func (s *CategoryService) SeedDefaults(ctx context.Context, clinicID uuid.UUID) error {
	if err := s.repo.SaveAll(ctx, catalog.DefaultCategories(clinicID)); err != nil {
		s.logger.Error("Failed to seed default categories",
			zap.String("clinic_id", clinicID.String()),
			zap.Error(err))
		return err
	}
	return nil
}
