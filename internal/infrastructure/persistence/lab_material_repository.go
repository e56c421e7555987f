package persistence

import (
	"github.com/dentalcalc/backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// GormLabMaterialRepository implements catalog.LabMaterialRepository using GORM
type GormLabMaterialRepository struct {
	clinicScoped[catalog.LabMaterial]
}

// NewGormLabMaterialRepository creates a new GormLabMaterialRepository
func NewGormLabMaterialRepository(db *gorm.DB) *GormLabMaterialRepository {
	return &GormLabMaterialRepository{
		clinicScoped: newClinicScoped[catalog.LabMaterial](
			db,
			"name ILIKE ? OR lab_name ILIKE ?",
			LabMaterialSortFields,
			"name",
		),
	}
}

// Ensure GormLabMaterialRepository implements LabMaterialRepository
var _ catalog.LabMaterialRepository = (*GormLabMaterialRepository)(nil)
