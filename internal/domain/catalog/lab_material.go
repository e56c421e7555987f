package catalog

import (
	"strings"

	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/dentalcalc/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// LabMaterial is a lab-priced material (crown, veneer, denture base). Unlike
// consumables its cost is already per unit, quoted by the external lab.
type LabMaterial struct {
	shared.ClinicAggregateRoot
	Name     string            `gorm:"type:varchar(100);not null"`
	LabName  string            `gorm:"type:varchar(100)"`
	UnitCost valueobject.Money `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (LabMaterial) TableName() string {
	return "lab_materials"
}

// NewLabMaterial creates a lab material row for a clinic
func NewLabMaterial(clinicID uuid.UUID, name, labName string, unitCost valueobject.Money) (*LabMaterial, error) {
	m := &LabMaterial{
		ClinicAggregateRoot: shared.NewClinicAggregateRoot(clinicID),
	}
	if err := m.apply(name, labName, unitCost); err != nil {
		return nil, err
	}
	return m, nil
}

// Update replaces the row's fields
func (m *LabMaterial) Update(name, labName string, unitCost valueobject.Money) error {
	if err := m.apply(name, labName, unitCost); err != nil {
		return err
	}
	m.Touch()
	m.IncrementVersion()
	return nil
}

func (m *LabMaterial) apply(name, labName string, unitCost valueobject.Money) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_NAME", "Material name cannot be empty")
	}
	if unitCost.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Unit cost cannot be negative")
	}

	m.Name = trimmed
	m.LabName = strings.TrimSpace(labName)
	m.UnitCost = unitCost
	return nil
}
