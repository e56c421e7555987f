package costing

import (
	"strings"

	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/dentalcalc/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// FixedCost is a recurring monthly facility cost (rent, utilities, insurance).
// Rows excluded via the Included flag are ignored by the overhead pool but
// kept so the clinic can toggle them back on.
type FixedCost struct {
	shared.ClinicAggregateRoot
	Category string            `gorm:"type:varchar(100);not null"`
	Amount   valueobject.Money `gorm:"type:decimal(18,4);not null;default:0"`
	Included bool              `gorm:"not null;default:true"`
	Notes    string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (FixedCost) TableName() string {
	return "fixed_costs"
}

// NewFixedCost creates a fixed cost row for a clinic
func NewFixedCost(clinicID uuid.UUID, category string, amount valueobject.Money, notes string) (*FixedCost, error) {
	if err := validateLabel(category, "INVALID_CATEGORY", "Category"); err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Monthly amount cannot be negative")
	}

	return &FixedCost{
		ClinicAggregateRoot: shared.NewClinicAggregateRoot(clinicID),
		Category:            strings.TrimSpace(category),
		Amount:              amount,
		Included:            true,
		Notes:               notes,
	}, nil
}

// Update replaces the row's fields
func (f *FixedCost) Update(category string, amount valueobject.Money, included bool, notes string) error {
	if err := validateLabel(category, "INVALID_CATEGORY", "Category"); err != nil {
		return err
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Monthly amount cannot be negative")
	}

	f.Category = strings.TrimSpace(category)
	f.Amount = amount
	f.Included = included
	f.Notes = notes
	f.Touch()
	f.IncrementVersion()

	return nil
}

// SetIncluded toggles whether the row contributes to the overhead pool
func (f *FixedCost) SetIncluded(included bool) {
	f.Included = included
	f.Touch()
	f.IncrementVersion()
}

func validateLabel(label, code, field string) error {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return shared.NewDomainError(code, field+" cannot be empty")
	}
	if len(trimmed) > 100 {
		return shared.NewDomainError(code, field+" cannot exceed 100 characters")
	}
	return nil
}
