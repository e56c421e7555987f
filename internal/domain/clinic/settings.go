package clinic

import (
	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/dentalcalc/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Default pricing settings applied when a clinic has not configured its own.
// New clinics start from these and adjust as they onboard.
const (
	DefaultVATPercent        = 0
	DefaultProfitPercent     = 40
	DefaultRoundingIncrement = 5
)

// PricingSettings holds a clinic's pricing configuration: currency, tax,
// default profit margin and the increment final prices are rounded to.
// One row per clinic, created lazily with defaults on first access.
type PricingSettings struct {
	shared.ClinicAggregateRoot
	Currency          valueobject.Currency `gorm:"type:varchar(3);not null;default:'EGP'"`
	VATPercent        valueobject.Percent  `gorm:"type:decimal(8,4);not null;default:0"`
	ProfitPercent     valueobject.Percent  `gorm:"type:decimal(8,4);not null;default:40"`
	RoundingIncrement int                  `gorm:"not null;default:5"` // 0 means no rounding
}

// TableName returns the table name for GORM
func (PricingSettings) TableName() string {
	return "pricing_settings"
}

// NewDefaultPricingSettings creates settings with the onboarding defaults
func NewDefaultPricingSettings(clinicID uuid.UUID) *PricingSettings {
	return &PricingSettings{
		ClinicAggregateRoot: shared.NewClinicAggregateRoot(clinicID),
		Currency:            valueobject.DefaultCurrency,
		VATPercent:          valueobject.NewPercentFromInt(DefaultVATPercent),
		ProfitPercent:       valueobject.NewPercentFromInt(DefaultProfitPercent),
		RoundingIncrement:   DefaultRoundingIncrement,
	}
}

// Update replaces the pricing configuration after validating it
func (s *PricingSettings) Update(currency valueobject.Currency, vat, profit valueobject.Percent, roundingIncrement int) error {
	if currency == "" {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency cannot be empty")
	}
	if vat.IsNegative() {
		return shared.NewDomainError("INVALID_VAT_PERCENT", "VAT percent cannot be negative")
	}
	if profit.IsNegative() {
		return shared.NewDomainError("INVALID_PROFIT_PERCENT", "Profit percent cannot be negative")
	}
	if roundingIncrement < 0 {
		return shared.NewDomainError("INVALID_ROUNDING", "Rounding increment cannot be negative")
	}

	s.Currency = currency
	s.VATPercent = vat
	s.ProfitPercent = profit
	s.RoundingIncrement = roundingIncrement
	s.Touch()
	s.IncrementVersion()

	return nil
}
