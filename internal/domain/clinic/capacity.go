package clinic

import (
	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/dentalcalc/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Default capacity applied when a clinic has not configured its own:
// a single chair working 24 days a month, 8 hours a day, at 80% utilization.
const (
	DefaultChairs             = 1
	DefaultDaysPerMonth       = 24
	DefaultHoursPerDay        = 8
	DefaultUtilizationPercent = 80
)

// Capacity describes how many billable chair-hours a clinic can produce in a
// month. One row per clinic, created lazily with defaults on first access.
type Capacity struct {
	shared.ClinicAggregateRoot
	Chairs             int                 `gorm:"not null;default:1"`
	DaysPerMonth       int                 `gorm:"not null;default:24"`
	HoursPerDay        int                 `gorm:"not null;default:8"`
	UtilizationPercent valueobject.Percent `gorm:"type:decimal(8,4);not null;default:80"`
}

// TableName returns the table name for GORM
func (Capacity) TableName() string {
	return "clinic_capacity"
}

// NewDefaultCapacity creates capacity settings with the onboarding defaults
func NewDefaultCapacity(clinicID uuid.UUID) *Capacity {
	return &Capacity{
		ClinicAggregateRoot: shared.NewClinicAggregateRoot(clinicID),
		Chairs:              DefaultChairs,
		DaysPerMonth:        DefaultDaysPerMonth,
		HoursPerDay:         DefaultHoursPerDay,
		UtilizationPercent:  valueobject.NewPercentFromInt(DefaultUtilizationPercent),
	}
}

// Update replaces the capacity figures after validating them
func (c *Capacity) Update(chairs, daysPerMonth, hoursPerDay int, utilization valueobject.Percent) error {
	if chairs < 0 {
		return shared.NewDomainError("INVALID_CAPACITY", "Chair count cannot be negative")
	}
	if daysPerMonth < 0 || daysPerMonth > 31 {
		return shared.NewDomainError("INVALID_CAPACITY", "Working days per month must be between 0 and 31")
	}
	if hoursPerDay < 0 || hoursPerDay > 24 {
		return shared.NewDomainError("INVALID_CAPACITY", "Working hours per day must be between 0 and 24")
	}
	if !utilization.InRange0To100() {
		return shared.NewDomainError("INVALID_CAPACITY", "Utilization percent must be between 0 and 100")
	}

	c.Chairs = chairs
	c.DaysPerMonth = daysPerMonth
	c.HoursPerDay = hoursPerDay
	c.UtilizationPercent = utilization
	c.Touch()
	c.IncrementVersion()

	return nil
}

// EffectiveHours returns the billable chair-hours per month:
// chairs * days * hours discounted by the utilization factor.
// All-zero inputs yield zero hours, which downstream overhead calculation
// treats as "rate = 0", never as an error.
func (c *Capacity) EffectiveHours() decimal.Decimal {
	theoretical := decimal.NewFromInt(int64(c.Chairs)).
		Mul(decimal.NewFromInt(int64(c.DaysPerMonth))).
		Mul(decimal.NewFromInt(int64(c.HoursPerDay)))
	return theoretical.Mul(c.UtilizationPercent.Fraction())
}
