package costing

import (
	"github.com/dentalcalc/backend/internal/domain/shared"
)

// FixedCostRepository stores recurring facility cost rows
type FixedCostRepository interface {
	shared.ClinicRepository[FixedCost]
}

// SalaryRepository stores staff salary rows
type SalaryRepository interface {
	shared.ClinicRepository[StaffSalary]
}

// EquipmentRepository stores equipment rows
type EquipmentRepository interface {
	shared.ClinicRepository[Equipment]
}
