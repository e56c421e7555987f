package catalog

import (
	"strings"

	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/dentalcalc/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DoctorFeeMode selects how the practitioner's fee for a service is computed
type DoctorFeeMode string

const (
	// FeeModeHourly charges the doctor's hourly rate for the chair time
	FeeModeHourly DoctorFeeMode = "hourly"
	// FeeModeFixed charges a flat amount per procedure
	FeeModeFixed DoctorFeeMode = "fixed"
	// FeeModePercentage defines the fee as a share of the final rounded price
	FeeModePercentage DoctorFeeMode = "percentage"
)

// Valid reports whether the fee mode is one of the three known values
func (m DoctorFeeMode) Valid() bool {
	return m == FeeModeHourly || m == FeeModeFixed || m == FeeModePercentage
}

// Service is a priced dental procedure. It owns its attached consumable,
// material and equipment line rows; deleting the service deletes the rows
// with it, while deleting a referenced library item only detaches it.
type Service struct {
	shared.ClinicAggregateRoot
	Name           string          `gorm:"type:varchar(150);not null"`
	CategoryID     *uuid.UUID      `gorm:"type:uuid;index"`
	ChairTimeHours decimal.Decimal `gorm:"type:decimal(8,3);not null;default:0"`

	FeeMode          DoctorFeeMode       `gorm:"type:varchar(20);not null;default:'hourly'"`
	DoctorHourlyRate valueobject.Money   `gorm:"type:decimal(18,4);not null;default:0"`
	DoctorFixedFee   valueobject.Money   `gorm:"type:decimal(18,4);not null;default:0"`
	DoctorPercentage valueobject.Percent `gorm:"type:decimal(8,4);not null;default:0"`

	UseDefaultProfit    bool                `gorm:"not null;default:true"`
	CustomProfitPercent valueobject.Percent `gorm:"type:decimal(8,4);not null;default:0"`

	// CurrentPrice is the price the clinic actually charges today. It is a
	// stored comparison figure for the UI, never an input to calculation.
	CurrentPrice valueobject.Money `gorm:"type:decimal(18,4);not null;default:0"`

	Consumables []ServiceConsumable `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE"`
	Materials   []ServiceMaterial   `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE"`
	Equipment   []ServiceEquipment  `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Service) TableName() string {
	return "services"
}

// ServiceConsumable attaches a consumable to a service with a quantity.
// Quantities may be fractional (partial syringe use). A custom unit price,
// when set, replaces the consumable's derived unit cost for this line only.
type ServiceConsumable struct {
	shared.BaseEntity
	ServiceID       uuid.UUID          `gorm:"type:uuid;not null;index"`
	ConsumableID    uuid.UUID          `gorm:"type:uuid;not null;index"`
	Quantity        decimal.Decimal    `gorm:"type:decimal(12,4);not null;default:1"`
	CustomUnitPrice *valueobject.Money `gorm:"type:decimal(18,4)"`
}

// TableName returns the table name for GORM
func (ServiceConsumable) TableName() string {
	return "service_consumables"
}

// ServiceMaterial attaches a lab material to a service with a quantity and
// an optional per-line unit price override.
type ServiceMaterial struct {
	shared.BaseEntity
	ServiceID       uuid.UUID          `gorm:"type:uuid;not null;index"`
	MaterialID      uuid.UUID          `gorm:"type:uuid;not null;index"`
	Quantity        decimal.Decimal    `gorm:"type:decimal(12,4);not null;default:1"`
	CustomUnitPrice *valueobject.Money `gorm:"type:decimal(18,4)"`
}

// TableName returns the table name for GORM
func (ServiceMaterial) TableName() string {
	return "service_materials"
}

// ServiceEquipment books hours on a piece of equipment for one service.
// Only per-hour equipment produces cost here; fixed equipment referenced by
// mistake contributes nothing because its depreciation already sits in the
// clinic's overhead pool.
type ServiceEquipment struct {
	shared.BaseEntity
	ServiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	EquipmentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	HoursUsed   decimal.Decimal `gorm:"type:decimal(8,3);not null;default:0"`
}

// TableName returns the table name for GORM
func (ServiceEquipment) TableName() string {
	return "service_equipment"
}

// NewService creates a service with an hourly fee mode and no line rows
func NewService(clinicID uuid.UUID, name string, chairTimeHours decimal.Decimal) (*Service, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Service name cannot be empty")
	}
	if chairTimeHours.IsNegative() {
		return nil, shared.NewDomainError("INVALID_CHAIR_TIME", "Chair time cannot be negative")
	}

	return &Service{
		ClinicAggregateRoot: shared.NewClinicAggregateRoot(clinicID),
		Name:                trimmed,
		ChairTimeHours:      chairTimeHours,
		FeeMode:             FeeModeHourly,
		UseDefaultProfit:    true,
	}, nil
}

// Update replaces the service's basic fields
func (s *Service) Update(name string, categoryID *uuid.UUID, chairTimeHours decimal.Decimal) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_NAME", "Service name cannot be empty")
	}
	if chairTimeHours.IsNegative() {
		return shared.NewDomainError("INVALID_CHAIR_TIME", "Chair time cannot be negative")
	}

	s.Name = trimmed
	s.CategoryID = categoryID
	s.ChairTimeHours = chairTimeHours
	s.Touch()
	s.IncrementVersion()
	return nil
}

// SetDoctorFee configures the fee mode and its parameter. Each mode reads
// exactly one of the three parameters; the others are zeroed so a later
// mode switch cannot resurrect a stale figure.
func (s *Service) SetDoctorFee(mode DoctorFeeMode, hourlyRate, fixedFee valueobject.Money, percentage valueobject.Percent) error {
	if !mode.Valid() {
		return shared.NewDomainError("INVALID_FEE_MODE", "Fee mode must be hourly, fixed or percentage")
	}

	switch mode {
	case FeeModeHourly:
		if hourlyRate.IsNegative() {
			return shared.NewDomainError("INVALID_AMOUNT", "Hourly rate cannot be negative")
		}
		s.DoctorHourlyRate = hourlyRate
		s.DoctorFixedFee = valueobject.ZeroEGP()
		s.DoctorPercentage = valueobject.NewPercentFromInt(0)
	case FeeModeFixed:
		if fixedFee.IsNegative() {
			return shared.NewDomainError("INVALID_AMOUNT", "Fixed fee cannot be negative")
		}
		s.DoctorHourlyRate = valueobject.ZeroEGP()
		s.DoctorFixedFee = fixedFee
		s.DoctorPercentage = valueobject.NewPercentFromInt(0)
	case FeeModePercentage:
		if percentage.IsNegative() {
			return shared.NewDomainError("INVALID_DOCTOR_PERCENTAGE", "Doctor percentage cannot be negative")
		}
		if percentage.GreaterThanOrEqual100() {
			return shared.ErrInvalidDoctorPercentage
		}
		s.DoctorHourlyRate = valueobject.ZeroEGP()
		s.DoctorFixedFee = valueobject.ZeroEGP()
		s.DoctorPercentage = percentage
	}

	s.FeeMode = mode
	s.Touch()
	s.IncrementVersion()
	return nil
}

// SetProfitOverride chooses between the clinic default margin and a custom one
func (s *Service) SetProfitOverride(useDefault bool, customPercent valueobject.Percent) error {
	if !useDefault && customPercent.IsNegative() {
		return shared.NewDomainError("INVALID_PROFIT_PERCENT", "Profit percent cannot be negative")
	}
	s.UseDefaultProfit = useDefault
	if useDefault {
		s.CustomProfitPercent = valueobject.NewPercentFromInt(0)
	} else {
		s.CustomProfitPercent = customPercent
	}
	s.Touch()
	s.IncrementVersion()
	return nil
}

// SetCurrentPrice stores the price the clinic charges today
func (s *Service) SetCurrentPrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Current price cannot be negative")
	}
	s.CurrentPrice = price
	s.Touch()
	s.IncrementVersion()
	return nil
}

// ReplaceConsumables swaps the full consumable line set
func (s *Service) ReplaceConsumables(lines []ServiceConsumable) error {
	for i := range lines {
		if lines[i].Quantity.IsNegative() {
			return shared.NewDomainError("INVALID_QUANTITY", "Line quantity cannot be negative")
		}
		lines[i].ServiceID = s.ID
	}
	s.Consumables = lines
	s.Touch()
	s.IncrementVersion()
	return nil
}

// ReplaceMaterials swaps the full lab material line set
func (s *Service) ReplaceMaterials(lines []ServiceMaterial) error {
	for i := range lines {
		if lines[i].Quantity.IsNegative() {
			return shared.NewDomainError("INVALID_QUANTITY", "Line quantity cannot be negative")
		}
		lines[i].ServiceID = s.ID
	}
	s.Materials = lines
	s.Touch()
	s.IncrementVersion()
	return nil
}

// ReplaceEquipment swaps the full equipment booking set
func (s *Service) ReplaceEquipment(lines []ServiceEquipment) error {
	for i := range lines {
		if lines[i].HoursUsed.IsNegative() {
			return shared.NewDomainError("INVALID_USAGE_HOURS", "Hours used cannot be negative")
		}
		lines[i].ServiceID = s.ID
	}
	s.Equipment = lines
	s.Touch()
	s.IncrementVersion()
	return nil
}

// ProfitPercent resolves the margin used for this service given the clinic
// default. The override applies only when UseDefaultProfit is off.
func (s *Service) ProfitPercent(clinicDefault valueobject.Percent) valueobject.Percent {
	if s.UseDefaultProfit {
		return clinicDefault
	}
	return s.CustomProfitPercent
}
