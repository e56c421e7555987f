package persistence

import (
	"context"

	"github.com/dentalcalc/backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// GormCategoryRepository implements catalog.CategoryRepository using GORM
type GormCategoryRepository struct {
	clinicScoped[catalog.ServiceCategory]
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{
		clinicScoped: newClinicScoped[catalog.ServiceCategory](
			db,
			"name ILIKE ?",
			CategorySortFields,
			"sort_order",
		),
	}
}

// SaveAll creates or updates multiple categories in one statement
func (r *GormCategoryRepository) SaveAll(ctx context.Context, categories []*catalog.ServiceCategory) error {
	if len(categories) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(categories).Error
}

// Ensure GormCategoryRepository implements CategoryRepository
var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
