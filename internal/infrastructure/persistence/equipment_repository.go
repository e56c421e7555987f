package persistence

import (
	"github.com/dentalcalc/backend/internal/domain/costing"
	"gorm.io/gorm"
)

// GormEquipmentRepository implements costing.EquipmentRepository using GORM
type GormEquipmentRepository struct {
	clinicScoped[costing.Equipment]
}

// NewGormEquipmentRepository creates a new GormEquipmentRepository
func NewGormEquipmentRepository(db *gorm.DB) *GormEquipmentRepository {
	return &GormEquipmentRepository{
		clinicScoped: newClinicScoped[costing.Equipment](
			db,
			"name ILIKE ?",
			EquipmentSortFields,
			"created_at",
		),
	}
}

// Ensure GormEquipmentRepository implements EquipmentRepository
var _ costing.EquipmentRepository = (*GormEquipmentRepository)(nil)
