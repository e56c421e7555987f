package persistence

import (
	"github.com/dentalcalc/backend/internal/domain/costing"
	"gorm.io/gorm"
)

// GormSalaryRepository implements costing.SalaryRepository using GORM
type GormSalaryRepository struct {
	clinicScoped[costing.StaffSalary]
}

// NewGormSalaryRepository creates a new GormSalaryRepository
func NewGormSalaryRepository(db *gorm.DB) *GormSalaryRepository {
	return &GormSalaryRepository{
		clinicScoped: newClinicScoped[costing.StaffSalary](
			db,
			"role ILIKE ?",
			SalarySortFields,
			"created_at",
		),
	}
}

// Ensure GormSalaryRepository implements SalaryRepository
var _ costing.SalaryRepository = (*GormSalaryRepository)(nil)
