package persistence

import (
	"github.com/dentalcalc/backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// GormConsumableRepository implements catalog.ConsumableRepository using GORM
type GormConsumableRepository struct {
	clinicScoped[catalog.Consumable]
}

// NewGormConsumableRepository creates a new GormConsumableRepository
func NewGormConsumableRepository(db *gorm.DB) *GormConsumableRepository {
	return &GormConsumableRepository{
		clinicScoped: newClinicScoped[catalog.Consumable](
			db,
			"name ILIKE ?",
			ConsumableSortFields,
			"name",
		),
	}
}

// Ensure GormConsumableRepository implements ConsumableRepository
var _ catalog.ConsumableRepository = (*GormConsumableRepository)(nil)
