package costing

import (
	"strings"

	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/dentalcalc/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationType chooses how an equipment's depreciation reaches prices:
// fixed equipment is spread over every service through the overhead pool,
// per-hour equipment is charged only to services that book hours on it.
// An asset must live in exactly one of the two pools, never both.
type AllocationType string

const (
	AllocationFixed   AllocationType = "fixed"
	AllocationPerHour AllocationType = "per_hour"
)

// Valid reports whether the allocation type is one of the two known values
func (a AllocationType) Valid() bool {
	return a == AllocationFixed || a == AllocationPerHour
}

// Equipment is a depreciating clinic asset (chair, scanner, autoclave).
// Depreciation is straight-line over the useful life in years.
type Equipment struct {
	shared.ClinicAggregateRoot
	Name              string            `gorm:"type:varchar(100);not null"`
	PurchaseCost      valueobject.Money `gorm:"type:decimal(18,4);not null;default:0"`
	LifeYears         int               `gorm:"not null"`
	Allocation        AllocationType    `gorm:"type:varchar(20);not null;default:'fixed'"`
	MonthlyUsageHours decimal.Decimal   `gorm:"type:decimal(10,2);not null;default:0"` // meaningful only for per-hour allocation
}

// TableName returns the table name for GORM
func (Equipment) TableName() string {
	return "equipment"
}

// NewEquipment creates an equipment row for a clinic
func NewEquipment(clinicID uuid.UUID, name string, purchaseCost valueobject.Money, lifeYears int, allocation AllocationType, monthlyUsageHours decimal.Decimal) (*Equipment, error) {
	e := &Equipment{
		ClinicAggregateRoot: shared.NewClinicAggregateRoot(clinicID),
	}
	if err := e.apply(name, purchaseCost, lifeYears, allocation, monthlyUsageHours); err != nil {
		return nil, err
	}
	return e, nil
}

// Update replaces the row's fields
func (e *Equipment) Update(name string, purchaseCost valueobject.Money, lifeYears int, allocation AllocationType, monthlyUsageHours decimal.Decimal) error {
	if err := e.apply(name, purchaseCost, lifeYears, allocation, monthlyUsageHours); err != nil {
		return err
	}
	e.Touch()
	e.IncrementVersion()
	return nil
}

func (e *Equipment) apply(name string, purchaseCost valueobject.Money, lifeYears int, allocation AllocationType, monthlyUsageHours decimal.Decimal) error {
	if err := validateLabel(name, "INVALID_NAME", "Name"); err != nil {
		return err
	}
	if purchaseCost.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Purchase cost cannot be negative")
	}
	if lifeYears < 1 {
		return shared.ErrInvalidLifeYears
	}
	if !allocation.Valid() {
		return shared.NewDomainError("INVALID_ALLOCATION", "Allocation type must be fixed or per_hour")
	}
	if monthlyUsageHours.IsNegative() {
		return shared.NewDomainError("INVALID_USAGE_HOURS", "Monthly usage hours cannot be negative")
	}

	e.Name = strings.TrimSpace(name)
	e.PurchaseCost = purchaseCost
	e.LifeYears = lifeYears
	e.Allocation = allocation
	e.MonthlyUsageHours = monthlyUsageHours
	return nil
}

// MonthlyDepreciation returns the straight-line monthly depreciation:
// purchase cost over life in months. LifeYears >= 1 is enforced on write,
// so the division is always defined here.
func (e *Equipment) MonthlyDepreciation() decimal.Decimal {
	lifeMonths := decimal.NewFromInt(int64(e.LifeYears) * 12)
	return e.PurchaseCost.Amount().Div(lifeMonths)
}

// HourlyDepreciation returns the depreciation cost of one usage hour for
// per-hour equipment. Zero monthly usage hours is a legitimate onboarding
// state and yields a zero rate, not an error. Fixed equipment has no hourly
// rate because its depreciation already sits in the overhead pool.
func (e *Equipment) HourlyDepreciation() decimal.Decimal {
	if e.Allocation != AllocationPerHour {
		return decimal.Zero
	}
	if e.MonthlyUsageHours.IsZero() || e.MonthlyUsageHours.IsNegative() {
		return decimal.Zero
	}
	return e.MonthlyDepreciation().Div(e.MonthlyUsageHours)
}
