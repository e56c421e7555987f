package costing

import (
	"github.com/shopspring/decimal"
)

// CostPool is the clinic's aggregated monthly overhead, broken into its
// sources for display, plus the per-hour rate derived from effective
// chair-hours. It is computed once per clinic snapshot and reused across
// every service priced in the same pass.
type CostPool struct {
	FixedTotal        decimal.Decimal
	SalaryTotal       decimal.Decimal
	DepreciationTotal decimal.Decimal
	MonthlyOverhead   decimal.Decimal
	EffectiveHours    decimal.Decimal
	OverheadPerHour   decimal.Decimal
}

// AggregateCostPool sums included fixed costs and salaries with the
// straight-line depreciation of fixed-allocation equipment, then spreads
// the pool over effective hours. Zero effective hours defines the rate as
// zero: clinics legitimately run with incomplete capacity configuration
// during onboarding, so this is a fallback, not a fault. Per-hour equipment
// is deliberately absent here; it is charged per service by the usage
// allocator, and counting it in both places would double-bill the asset.
func AggregateCostPool(fixedCosts []FixedCost, salaries []StaffSalary, equipment []Equipment, effectiveHours decimal.Decimal) CostPool {
	pool := CostPool{
		FixedTotal:        decimal.Zero,
		SalaryTotal:       decimal.Zero,
		DepreciationTotal: decimal.Zero,
		EffectiveHours:    effectiveHours,
	}

	for _, fc := range fixedCosts {
		if fc.Included {
			pool.FixedTotal = pool.FixedTotal.Add(fc.Amount.Amount())
		}
	}
	for _, s := range salaries {
		if s.Included {
			pool.SalaryTotal = pool.SalaryTotal.Add(s.Monthly.Amount())
		}
	}
	for _, e := range equipment {
		if e.Allocation == AllocationFixed {
			pool.DepreciationTotal = pool.DepreciationTotal.Add(e.MonthlyDepreciation())
		}
	}

	pool.MonthlyOverhead = pool.FixedTotal.Add(pool.SalaryTotal).Add(pool.DepreciationTotal)

	if effectiveHours.IsPositive() {
		pool.OverheadPerHour = pool.MonthlyOverhead.Div(effectiveHours)
	} else {
		pool.OverheadPerHour = decimal.Zero
	}

	return pool
}
