package pricing

import (
	"testing"

	"github.com/dentalcalc/backend/internal/domain/catalog"
	"github.com/dentalcalc/backend/internal/domain/costing"
	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/dentalcalc/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func decPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

// referenceClinic builds the clinic used across the worked examples:
// 20000 fixed + 8000 salaries + 100000/120 depreciation = 28833.33 monthly,
// spread over 153.6 effective hours.
func referenceClinic(t *testing.T) ClinicSnapshot {
	t.Helper()
	clinicID := uuid.New()

	rent, err := costing.NewFixedCost(clinicID, "Rent", valueobject.NewMoneyEGPFromFloat(20000), "")
	require.NoError(t, err)
	assistant, err := costing.NewStaffSalary(clinicID, "Assistant", valueobject.NewMoneyEGPFromFloat(8000))
	require.NoError(t, err)
	chair, err := costing.NewEquipment(clinicID, "Dental chair", valueobject.NewMoneyEGPFromFloat(100000), 10, costing.AllocationFixed, decimal.Zero)
	require.NoError(t, err)

	pool := costing.AggregateCostPool(
		[]costing.FixedCost{*rent},
		[]costing.StaffSalary{*assistant},
		[]costing.Equipment{*chair},
		dec(153.6),
	)

	return ClinicSnapshot{
		Currency:          valueobject.EGP,
		VATPercent:        valueobject.NewPercentFromInt(0),
		DefaultProfit:     valueobject.NewPercentFromInt(40),
		RoundingIncrement: 5,
		Pool:              pool,
	}
}

func TestOverheadRateScenario(t *testing.T) {
	clinic := referenceClinic(t)

	assert.Equal(t, "28833.33", clinic.Pool.MonthlyOverhead.StringFixed(2))
	assert.Equal(t, "187.72", clinic.Pool.OverheadPerHour.StringFixed(2))
	assert.True(t, clinic.Pool.EffectiveHours.Equal(dec(153.6)))
}

func TestQuoteHourlyFee(t *testing.T) {
	clinic := referenceClinic(t)

	svc := ServiceSnapshot{
		ServiceID:        uuid.New(),
		Name:             "Composite Filling",
		ChairTimeHours:   dec(0.75),
		FeeMode:          catalog.FeeModeHourly,
		DoctorHourlyRate: dec(400),
		ProfitPercent:    valueobject.NewPercentFromInt(40),
	}

	b, err := Quote(clinic, svc)
	require.NoError(t, err)

	assert.Equal(t, "140.79", b.ChairTimeCost.StringFixed(2))
	assert.Equal(t, "300.00", b.DoctorFee.StringFixed(2))
	assert.Equal(t, "440.79", b.TotalCost.StringFixed(2))
	// 440.7877... * 0.40 = 176.3151... which renders up
	assert.Equal(t, "176.32", b.ProfitAmount.StringFixed(2))
	assert.Equal(t, "617.10", b.PriceBeforeVAT.StringFixed(2))
	assert.True(t, b.VATAmount.IsZero())
	assert.Equal(t, "617.10", b.FinalPrice.StringFixed(2))
	assert.True(t, b.RoundedPrice.Equal(decimal.NewFromInt(615)), "got %s", b.RoundedPrice)
}

func TestQuoteFixedFee(t *testing.T) {
	clinic := referenceClinic(t)
	clinic.RoundingIncrement = 0

	svc := ServiceSnapshot{
		ServiceID:      uuid.New(),
		Name:           "Extraction",
		ChairTimeHours: dec(0.5),
		FeeMode:        catalog.FeeModeFixed,
		DoctorFixedFee: dec(250),
		ProfitPercent:  valueobject.NewPercentFromInt(40),
	}

	b, err := Quote(clinic, svc)
	require.NoError(t, err)

	assert.True(t, b.DoctorFee.Equal(dec(250)))
	// no rounding configured: rounded price equals the final price
	assert.True(t, b.RoundedPrice.Equal(b.FinalPrice))
}

func TestQuotePercentageFee(t *testing.T) {
	t.Run("closed-form inversion on a round base", func(t *testing.T) {
		// base of exactly 1000: overhead 100/h for 10 chair-time hours
		clinic := ClinicSnapshot{
			Currency:          valueobject.EGP,
			VATPercent:        valueobject.NewPercentFromInt(0),
			DefaultProfit:     valueobject.NewPercentFromInt(40),
			RoundingIncrement: 1,
			Pool: costing.CostPool{
				EffectiveHours:  decimal.NewFromInt(100),
				OverheadPerHour: decimal.NewFromInt(100),
			},
		}
		svc := ServiceSnapshot{
			ServiceID:        uuid.New(),
			Name:             "Zirconia Crown",
			ChairTimeHours:   decimal.NewFromInt(10),
			FeeMode:          catalog.FeeModePercentage,
			DoctorPercentage: valueobject.NewPercentFromInt(20),
			ProfitPercent:    valueobject.NewPercentFromInt(40),
		}

		b, err := Quote(clinic, svc)
		require.NoError(t, err)

		// (1000 * 1.4 * 1.0) / 0.8 = 1750
		assert.True(t, b.RoundedPrice.Equal(decimal.NewFromInt(1750)), "got %s", b.RoundedPrice)
		assert.True(t, b.DoctorFee.Equal(decimal.NewFromInt(350)))
		// components back-derived from the rounded price
		assert.True(t, b.PriceBeforeVAT.Equal(decimal.NewFromInt(1750)))
		assert.True(t, b.TotalCost.Equal(decimal.NewFromInt(1250)))
		assert.True(t, b.ProfitAmount.Equal(decimal.NewFromInt(500)))
	})

	t.Run("fee is an exact share of the rounded price", func(t *testing.T) {
		clinic := referenceClinic(t)
		svc := ServiceSnapshot{
			ServiceID:        uuid.New(),
			Name:             "Veneer",
			ChairTimeHours:   dec(1.25),
			FeeMode:          catalog.FeeModePercentage,
			DoctorPercentage: valueobject.NewPercentFromInt(35),
			ProfitPercent:    valueobject.NewPercentFromInt(40),
			Materials: []MaterialLine{
				{Name: "Porcelain veneer", Quantity: decimal.NewFromInt(1), DefaultUnitCost: dec(700)},
			},
		}

		b, err := Quote(clinic, svc)
		require.NoError(t, err)

		expectedFee := b.RoundedPrice.Mul(dec(0.35))
		assert.True(t, b.DoctorFee.Equal(expectedFee), "fee %s, want %s", b.DoctorFee, expectedFee)
	})

	t.Run("percentage at 100 or above is rejected", func(t *testing.T) {
		clinic := referenceClinic(t)
		svc := ServiceSnapshot{
			ServiceID:        uuid.New(),
			Name:             "Broken config",
			ChairTimeHours:   decimal.NewFromInt(1),
			FeeMode:          catalog.FeeModePercentage,
			DoctorPercentage: valueobject.NewPercentFromInt(100),
			ProfitPercent:    valueobject.NewPercentFromInt(40),
		}

		_, err := Quote(clinic, svc)
		require.Error(t, err)
		assert.Equal(t, shared.ErrInvalidDoctorPercentage, err)
	})
}

func TestQuoteLineItemOverrides(t *testing.T) {
	clinic := referenceClinic(t)
	clinic.RoundingIncrement = 0

	svc := ServiceSnapshot{
		ServiceID:      uuid.New(),
		Name:           "Root Canal",
		ChairTimeHours: decimal.Zero,
		FeeMode:        catalog.FeeModeFixed,
		ProfitPercent:  valueobject.NewPercentFromInt(0),
		Consumables: []ConsumableLine{
			// override wins over the derived default
			{Name: "Files", Quantity: decimal.NewFromInt(2), DefaultUnitCost: dec(30), CustomUnitPrice: decPtr(25)},
			// fractional quantity, no override
			{Name: "Anesthetic", Quantity: dec(1.5), DefaultUnitCost: dec(10)},
		},
		Materials: []MaterialLine{
			{Name: "Gutta percha", Quantity: decimal.NewFromInt(4), DefaultUnitCost: dec(5), CustomUnitPrice: decPtr(6)},
		},
	}

	b, err := Quote(clinic, svc)
	require.NoError(t, err)

	// 2*25 + 1.5*10 = 65
	assert.True(t, b.ConsumablesCost.Equal(decimal.NewFromInt(65)))
	// 4*6 = 24
	assert.True(t, b.LabMaterialsCost.Equal(decimal.NewFromInt(24)))
	assert.True(t, b.MaterialsCost.Equal(decimal.NewFromInt(89)))
}

func TestQuoteEquipmentAllocation(t *testing.T) {
	clinic := referenceClinic(t)
	clinic.RoundingIncrement = 0

	t.Run("per-hour equipment charges for booked hours", func(t *testing.T) {
		svc := ServiceSnapshot{
			ServiceID:      uuid.New(),
			Name:           "Laser Whitening",
			ChairTimeHours: decimal.Zero,
			FeeMode:        catalog.FeeModeFixed,
			ProfitPercent:  valueobject.NewPercentFromInt(0),
			Equipment: []EquipmentLine{
				// 1000/month over 50 h = 20/h, booked 1.5 h
				{Name: "Laser", Allocation: costing.AllocationPerHour, MonthlyDepreciation: decimal.NewFromInt(1000), MonthlyUsageHours: decimal.NewFromInt(50), HoursUsed: dec(1.5)},
			},
		}

		b, err := Quote(clinic, svc)
		require.NoError(t, err)
		assert.True(t, b.EquipmentCost.Equal(decimal.NewFromInt(30)))
	})

	t.Run("fixed equipment on a service line contributes nothing", func(t *testing.T) {
		svc := ServiceSnapshot{
			ServiceID:      uuid.New(),
			Name:           "Checkup",
			ChairTimeHours: decimal.Zero,
			FeeMode:        catalog.FeeModeFixed,
			ProfitPercent:  valueobject.NewPercentFromInt(0),
			Equipment: []EquipmentLine{
				{Name: "Chair", Allocation: costing.AllocationFixed, MonthlyDepreciation: decimal.NewFromInt(833), MonthlyUsageHours: decimal.NewFromInt(160), HoursUsed: decimal.NewFromInt(1)},
			},
		}

		b, err := Quote(clinic, svc)
		require.NoError(t, err)
		assert.True(t, b.EquipmentCost.IsZero())
	})

	t.Run("zero monthly usage hours yields zero cost, not a fault", func(t *testing.T) {
		svc := ServiceSnapshot{
			ServiceID:      uuid.New(),
			Name:           "Scan",
			ChairTimeHours: decimal.Zero,
			FeeMode:        catalog.FeeModeFixed,
			ProfitPercent:  valueobject.NewPercentFromInt(0),
			Equipment: []EquipmentLine{
				{Name: "Scanner", Allocation: costing.AllocationPerHour, MonthlyDepreciation: decimal.NewFromInt(500), MonthlyUsageHours: decimal.Zero, HoursUsed: decimal.NewFromInt(2)},
			},
		}

		b, err := Quote(clinic, svc)
		require.NoError(t, err)
		assert.True(t, b.EquipmentCost.IsZero())
	})
}

func TestQuoteZeroEffectiveHours(t *testing.T) {
	clinic := ClinicSnapshot{
		Currency:          valueobject.EGP,
		VATPercent:        valueobject.NewPercentFromInt(14),
		DefaultProfit:     valueobject.NewPercentFromInt(40),
		RoundingIncrement: 5,
		Pool: costing.CostPool{
			MonthlyOverhead: decimal.NewFromInt(30000),
			EffectiveHours:  decimal.Zero,
			OverheadPerHour: decimal.Zero,
		},
	}
	svc := ServiceSnapshot{
		ServiceID:      uuid.New(),
		Name:           "Checkup",
		ChairTimeHours: decimal.NewFromInt(1),
		FeeMode:        catalog.FeeModeHourly,
		ProfitPercent:  valueobject.NewPercentFromInt(40),
	}

	b, err := Quote(clinic, svc)
	require.NoError(t, err)

	// a degenerate but valid priced output, not an error
	assert.True(t, b.ChairTimeCost.IsZero())
	assert.True(t, b.TotalCost.IsZero())
	assert.True(t, b.RoundedPrice.IsZero())
}

func TestQuoteVATApplied(t *testing.T) {
	clinic := referenceClinic(t)
	clinic.VATPercent = valueobject.NewPercentFromInt(14)
	clinic.RoundingIncrement = 0

	svc := ServiceSnapshot{
		ServiceID:      uuid.New(),
		Name:           "Cleaning",
		ChairTimeHours: decimal.Zero,
		FeeMode:        catalog.FeeModeFixed,
		DoctorFixedFee: decimal.NewFromInt(100),
		ProfitPercent:  valueobject.NewPercentFromInt(0),
	}

	b, err := Quote(clinic, svc)
	require.NoError(t, err)

	assert.True(t, b.VATAmount.Equal(decimal.NewFromInt(14)))
	assert.True(t, b.FinalPrice.Equal(decimal.NewFromInt(114)))
}

func TestQuoteIdempotent(t *testing.T) {
	clinic := referenceClinic(t)
	svc := ServiceSnapshot{
		ServiceID:        uuid.New(),
		Name:             "Composite Filling",
		ChairTimeHours:   dec(0.75),
		FeeMode:          catalog.FeeModeHourly,
		DoctorHourlyRate: dec(400),
		ProfitPercent:    valueobject.NewPercentFromInt(40),
		Consumables: []ConsumableLine{
			{Name: "Composite", Quantity: dec(0.5), DefaultUnitCost: dec(80)},
		},
	}

	first, err := Quote(clinic, svc)
	require.NoError(t, err)
	second, err := Quote(clinic, svc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRoundToIncrement(t *testing.T) {
	tests := []struct {
		name      string
		price     decimal.Decimal
		increment int
		want      string
	}{
		{"rounds down to nearest 5", dec(617.1), 5, "615"},
		{"rounds up to nearest 5", dec(618), 5, "620"},
		{"half-increment tie rounds away from zero", dec(617.5), 5, "620"},
		{"increment 1 keeps integers", dec(1750), 1, "1750"},
		{"increment 10", dec(1234), 10, "1230"},
		{"zero increment means no rounding", dec(617.1), 0, "617.1"},
		{"negative increment means no rounding", dec(617.1), -5, "617.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := roundToIncrement(tt.price, tt.increment)
			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			assert.True(t, got.Equal(want), "got %s, want %s", got, want)
		})
	}
}
