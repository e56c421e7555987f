package catalog

import (
	"strings"

	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/dentalcalc/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Consumable is a supply item purchased in packs. A pack holds a number of
// cases, each case a number of units; the price that matters to a procedure
// is the derived per-unit cost. Both divisors must be positive: a zero
// divisor would make the unit cost undefined, so it is rejected on write
// rather than left to fault during pricing.
type Consumable struct {
	shared.ClinicAggregateRoot
	Name         string            `gorm:"type:varchar(100);not null"`
	PackCost     valueobject.Money `gorm:"type:decimal(18,4);not null;default:0"`
	CasesPerPack int               `gorm:"not null;default:1"`
	UnitsPerCase int               `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (Consumable) TableName() string {
	return "consumables"
}

// NewConsumable creates a consumable row for a clinic
func NewConsumable(clinicID uuid.UUID, name string, packCost valueobject.Money, casesPerPack, unitsPerCase int) (*Consumable, error) {
	c := &Consumable{
		ClinicAggregateRoot: shared.NewClinicAggregateRoot(clinicID),
	}
	if err := c.apply(name, packCost, casesPerPack, unitsPerCase); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the row's fields
func (c *Consumable) Update(name string, packCost valueobject.Money, casesPerPack, unitsPerCase int) error {
	if err := c.apply(name, packCost, casesPerPack, unitsPerCase); err != nil {
		return err
	}
	c.Touch()
	c.IncrementVersion()
	return nil
}

func (c *Consumable) apply(name string, packCost valueobject.Money, casesPerPack, unitsPerCase int) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_NAME", "Consumable name cannot be empty")
	}
	if packCost.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Pack cost cannot be negative")
	}
	if casesPerPack <= 0 || unitsPerCase <= 0 {
		return shared.ErrInvalidPackDivisors
	}

	c.Name = trimmed
	c.PackCost = packCost
	c.CasesPerPack = casesPerPack
	c.UnitsPerCase = unitsPerCase
	return nil
}

// UnitCost returns the derived cost of a single unit:
// pack cost / cases per pack / units per case.
func (c *Consumable) UnitCost() decimal.Decimal {
	return c.PackCost.Amount().
		Div(decimal.NewFromInt(int64(c.CasesPerPack))).
		Div(decimal.NewFromInt(int64(c.UnitsPerCase)))
}
