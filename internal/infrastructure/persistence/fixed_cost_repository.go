package persistence

import (
	"github.com/dentalcalc/backend/internal/domain/costing"
	"gorm.io/gorm"
)

// GormFixedCostRepository implements costing.FixedCostRepository using GORM
type GormFixedCostRepository struct {
	clinicScoped[costing.FixedCost]
}

// NewGormFixedCostRepository creates a new GormFixedCostRepository
func NewGormFixedCostRepository(db *gorm.DB) *GormFixedCostRepository {
	return &GormFixedCostRepository{
		clinicScoped: newClinicScoped[costing.FixedCost](
			db,
			"category ILIKE ? OR notes ILIKE ?",
			FixedCostSortFields,
			"created_at",
		),
	}
}

// Ensure GormFixedCostRepository implements FixedCostRepository
var _ costing.FixedCostRepository = (*GormFixedCostRepository)(nil)
