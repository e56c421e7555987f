package costing

import (
	"strings"

	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/dentalcalc/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// StaffSalary is a monthly staff cost row (assistant, receptionist, hygienist).
// Like FixedCost, excluded rows stay out of the overhead pool but are retained.
type StaffSalary struct {
	shared.ClinicAggregateRoot
	Role     string            `gorm:"type:varchar(100);not null"`
	Monthly  valueobject.Money `gorm:"type:decimal(18,4);not null;default:0"`
	Included bool              `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (StaffSalary) TableName() string {
	return "staff_salaries"
}

// NewStaffSalary creates a salary row for a clinic
func NewStaffSalary(clinicID uuid.UUID, role string, monthly valueobject.Money) (*StaffSalary, error) {
	if err := validateLabel(role, "INVALID_ROLE", "Role"); err != nil {
		return nil, err
	}
	if monthly.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Monthly salary cannot be negative")
	}

	return &StaffSalary{
		ClinicAggregateRoot: shared.NewClinicAggregateRoot(clinicID),
		Role:                strings.TrimSpace(role),
		Monthly:             monthly,
		Included:            true,
	}, nil
}

// Update replaces the row's fields
func (s *StaffSalary) Update(role string, monthly valueobject.Money, included bool) error {
	if err := validateLabel(role, "INVALID_ROLE", "Role"); err != nil {
		return err
	}
	if monthly.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Monthly salary cannot be negative")
	}

	s.Role = strings.TrimSpace(role)
	s.Monthly = monthly
	s.Included = included
	s.Touch()
	s.IncrementVersion()

	return nil
}
