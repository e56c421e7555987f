// Package pricing holds the cost-plus calculation engine. Every entry point
// is a pure function over an immutable snapshot: no I/O, no shared state,
// safe to call concurrently for any number of services or clinics. Pricing
// the same snapshot twice yields identical output.
package pricing

import (
	"github.com/dentalcalc/backend/internal/domain/catalog"
	"github.com/dentalcalc/backend/internal/domain/costing"
	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/dentalcalc/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClinicSnapshot carries everything clinic-level a calculation needs:
// pricing settings and the aggregated cost pool. Callers build it once per
// clinic and reuse it across all services priced in the same pass.
type ClinicSnapshot struct {
	Currency          valueobject.Currency
	VATPercent        valueobject.Percent
	DefaultProfit     valueobject.Percent
	RoundingIncrement int
	Pool              costing.CostPool
}

// ConsumableLine is a resolved consumable attachment: the default unit cost
// is already derived from the pack divisors, and the override, when present,
// replaces it for this line only.
type ConsumableLine struct {
	Name            string
	Quantity        decimal.Decimal
	DefaultUnitCost decimal.Decimal
	CustomUnitPrice *decimal.Decimal
}

// MaterialLine is a resolved lab material attachment
type MaterialLine struct {
	Name            string
	Quantity        decimal.Decimal
	DefaultUnitCost decimal.Decimal
	CustomUnitPrice *decimal.Decimal
}

// EquipmentLine is a resolved equipment booking. Allocation travels with the
// line so the engine can skip fixed equipment, whose depreciation is already
// inside the overhead pool.
type EquipmentLine struct {
	Name                string
	Allocation          costing.AllocationType
	MonthlyDepreciation decimal.Decimal
	MonthlyUsageHours   decimal.Decimal
	HoursUsed           decimal.Decimal
}

// ServiceSnapshot is one service's resolved inputs. The profit percent is
// already resolved against the clinic default; the stored current price is
// carried through untouched for UI comparison.
type ServiceSnapshot struct {
	ServiceID        uuid.UUID
	Name             string
	ChairTimeHours   decimal.Decimal
	FeeMode          catalog.DoctorFeeMode
	DoctorHourlyRate decimal.Decimal
	DoctorFixedFee   decimal.Decimal
	DoctorPercentage valueobject.Percent
	ProfitPercent    valueobject.Percent
	CurrentPrice     decimal.Decimal
	Consumables      []ConsumableLine
	Materials        []MaterialLine
	Equipment        []EquipmentLine
}

// Breakdown is the itemized result of pricing one service. Monetary fields
// are unrounded decimals except RoundedPrice; presentation rounding belongs
// to the API layer.
type Breakdown struct {
	ServiceID      uuid.UUID
	ServiceName    string
	Currency       valueobject.Currency
	ChairTimeHours decimal.Decimal

	EffectiveHours  decimal.Decimal
	OverheadPerHour decimal.Decimal

	ChairTimeCost    decimal.Decimal
	DoctorFee        decimal.Decimal
	EquipmentCost    decimal.Decimal
	ConsumablesCost  decimal.Decimal
	LabMaterialsCost decimal.Decimal
	MaterialsCost    decimal.Decimal

	TotalCost      decimal.Decimal
	ProfitPercent  valueobject.Percent
	ProfitAmount   decimal.Decimal
	PriceBeforeVAT decimal.Decimal
	VATPercent     valueobject.Percent
	VATAmount      decimal.Decimal
	FinalPrice     decimal.Decimal
	RoundedPrice   decimal.Decimal

	CurrentPrice decimal.Decimal
}

// Quote prices one service against a clinic snapshot.
// The only error conditions are invalid configuration: a percentage-mode
// doctor fee at or above 100% has no finite price. Degenerate inputs (zero
// effective hours, zero usage hours, no rounding increment) are defined
// fallbacks, not errors.
func Quote(clinic ClinicSnapshot, svc ServiceSnapshot) (*Breakdown, error) {
	chairTimeCost := clinic.Pool.OverheadPerHour.Mul(svc.ChairTimeHours)
	equipmentCost := allocateEquipment(svc.Equipment)
	consumablesCost, labMaterialsCost := accumulateLines(svc.Consumables, svc.Materials)
	materialsCost := consumablesCost.Add(labMaterialsCost)

	b := &Breakdown{
		ServiceID:        svc.ServiceID,
		ServiceName:      svc.Name,
		Currency:         clinic.Currency,
		ChairTimeHours:   svc.ChairTimeHours,
		EffectiveHours:   clinic.Pool.EffectiveHours,
		OverheadPerHour:  clinic.Pool.OverheadPerHour,
		ChairTimeCost:    chairTimeCost,
		EquipmentCost:    equipmentCost,
		ConsumablesCost:  consumablesCost,
		LabMaterialsCost: labMaterialsCost,
		MaterialsCost:    materialsCost,
		ProfitPercent:    svc.ProfitPercent,
		VATPercent:       clinic.VATPercent,
		CurrentPrice:     svc.CurrentPrice,
	}

	if svc.FeeMode == catalog.FeeModePercentage {
		if err := composePercentage(b, clinic, svc); err != nil {
			return nil, err
		}
		return b, nil
	}

	composeDirect(b, clinic, svc)
	return b, nil
}

// accumulateLines resolves per-line unit costs and sums consumables and lab
// materials separately. The override always wins over the derived default.
// Quantities stay fractional throughout; nothing is rounded mid-calculation.
func accumulateLines(consumables []ConsumableLine, materials []MaterialLine) (decimal.Decimal, decimal.Decimal) {
	consumablesCost := decimal.Zero
	for _, line := range consumables {
		unit := line.DefaultUnitCost
		if line.CustomUnitPrice != nil {
			unit = *line.CustomUnitPrice
		}
		consumablesCost = consumablesCost.Add(unit.Mul(line.Quantity))
	}

	labMaterialsCost := decimal.Zero
	for _, line := range materials {
		unit := line.DefaultUnitCost
		if line.CustomUnitPrice != nil {
			unit = *line.CustomUnitPrice
		}
		labMaterialsCost = labMaterialsCost.Add(unit.Mul(line.Quantity))
	}

	return consumablesCost, labMaterialsCost
}

// allocateEquipment charges per-hour equipment for the hours this service
// books on it. Fixed equipment contributes nothing here: its depreciation is
// already in the overhead pool, and charging it again would double-count the
// asset. Zero monthly usage hours yields a zero rate.
func allocateEquipment(lines []EquipmentLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		if line.Allocation != costing.AllocationPerHour {
			continue
		}
		if !line.MonthlyUsageHours.IsPositive() {
			continue
		}
		hourlyRate := line.MonthlyDepreciation.Div(line.MonthlyUsageHours)
		total = total.Add(hourlyRate.Mul(line.HoursUsed))
	}
	return total
}

// composeDirect handles the hourly and fixed fee modes, where the fee is
// known up front: cost, then margin, then VAT, then rounding.
func composeDirect(b *Breakdown, clinic ClinicSnapshot, svc ServiceSnapshot) {
	switch svc.FeeMode {
	case catalog.FeeModeFixed:
		b.DoctorFee = svc.DoctorFixedFee
	default:
		b.DoctorFee = svc.DoctorHourlyRate.Mul(svc.ChairTimeHours)
	}

	b.TotalCost = b.ChairTimeCost.Add(b.DoctorFee).Add(b.EquipmentCost).Add(b.MaterialsCost)
	b.ProfitAmount = b.TotalCost.Mul(svc.ProfitPercent.Fraction())
	b.PriceBeforeVAT = b.TotalCost.Add(b.ProfitAmount)
	b.VATAmount = b.PriceBeforeVAT.Mul(clinic.VATPercent.Fraction())
	b.FinalPrice = b.PriceBeforeVAT.Add(b.VATAmount)
	b.RoundedPrice = roundToIncrement(b.FinalPrice, clinic.RoundingIncrement)
}

// composePercentage handles the percentage fee mode. The fee is a share of
// the final rounded price, which the price itself depends on; the closed
// form below resolves the circularity exactly, with no iteration:
//
//	price = (base * profitMult * vatMult) / (1 - pct)
//
// The price is rounded first and every reported component is back-derived
// from the rounded figure, so the displayed fee is an exact percentage of
// the number the patient is actually charged. Component subtotals therefore
// differ slightly from what an unrounded calculation would show; that is the
// contract, not an artifact.
func composePercentage(b *Breakdown, clinic ClinicSnapshot, svc ServiceSnapshot) error {
	if svc.DoctorPercentage.GreaterThanOrEqual100() {
		return shared.ErrInvalidDoctorPercentage
	}

	pct := svc.DoctorPercentage.Fraction()
	profitMult := svc.ProfitPercent.Multiplier()
	vatMult := clinic.VATPercent.Multiplier()

	base := b.ChairTimeCost.Add(b.EquipmentCost).Add(b.MaterialsCost)
	divisor := decimal.NewFromInt(1).Sub(pct)

	priceBeforeRounding := base.Mul(profitMult).Mul(vatMult).Div(divisor)
	rounded := roundToIncrement(priceBeforeRounding, clinic.RoundingIncrement)

	b.FinalPrice = priceBeforeRounding
	b.RoundedPrice = rounded
	b.DoctorFee = rounded.Mul(pct)
	b.PriceBeforeVAT = rounded.Div(vatMult)
	b.VATAmount = rounded.Sub(b.PriceBeforeVAT)
	b.TotalCost = b.PriceBeforeVAT.Div(profitMult)
	b.ProfitAmount = b.PriceBeforeVAT.Sub(b.TotalCost)

	return nil
}

// roundToIncrement rounds a price to the nearest multiple of the increment.
// Exact half-increment ties round away from zero, so 617.50 with increment 5
// becomes 620. An increment of zero or less means the clinic opted out of
// rounding.
func roundToIncrement(price decimal.Decimal, increment int) decimal.Decimal {
	if increment <= 0 {
		return price
	}
	inc := decimal.NewFromInt(int64(increment))
	return price.Div(inc).Round(0).Mul(inc)
}
