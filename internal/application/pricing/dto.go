package pricing

import (
	"github.com/dentalcalc/backend/internal/domain/pricing"
	"github.com/google/uuid"
)

// BreakdownResponse is the API shape of a priced service. Decimals are
// rendered as floats at this boundary; the engine keeps exact values.
type BreakdownResponse struct {
	ServiceID      uuid.UUID `json:"service_id"`
	ServiceName    string    `json:"service_name"`
	Currency       string    `json:"currency"`
	ChairTimeHours float64   `json:"chair_time_hours"`

	EffectiveHours  float64 `json:"effective_hours"`
	OverheadPerHour float64 `json:"overhead_per_hour"`

	ChairTimeCost    float64 `json:"chair_time_cost"`
	DoctorFee        float64 `json:"doctor_fee"`
	EquipmentCost    float64 `json:"equipment_cost"`
	ConsumablesCost  float64 `json:"consumables_cost"`
	LabMaterialsCost float64 `json:"lab_materials_cost"`
	MaterialsCost    float64 `json:"materials_cost"`

	TotalCost      float64 `json:"total_cost"`
	ProfitPercent  float64 `json:"profit_percent"`
	ProfitAmount   float64 `json:"profit_amount"`
	PriceBeforeVAT float64 `json:"price_before_vat"`
	VATPercent     float64 `json:"vat_percent"`
	VATAmount      float64 `json:"vat_amount"`
	FinalPrice     float64 `json:"final_price"`
	RoundedPrice   float64 `json:"rounded_price"`

	CurrentPrice float64 `json:"current_price"`
}

// DashboardStatsResponse is the landing-page summary for a clinic
type DashboardStatsResponse struct {
	ServiceCount      int64   `json:"service_count"`
	MonthlyOverhead   float64 `json:"monthly_overhead"`
	EffectiveHours    float64 `json:"effective_hours"`
	OverheadPerHour   float64 `json:"overhead_per_hour"`
	FixedCostTotal    float64 `json:"fixed_cost_total"`
	SalaryTotal       float64 `json:"salary_total"`
	DepreciationTotal float64 `json:"depreciation_total"`
	Currency          string  `json:"currency"`
}

// ToBreakdownResponse maps an engine breakdown to its API shape
func ToBreakdownResponse(b *pricing.Breakdown) *BreakdownResponse {
	f := func(d interface{ Float64() (float64, bool) }) float64 {
		v, _ := d.Float64()
		return v
	}
	return &BreakdownResponse{
		ServiceID:        b.ServiceID,
		ServiceName:      b.ServiceName,
		Currency:         string(b.Currency),
		ChairTimeHours:   f(b.ChairTimeHours),
		EffectiveHours:   f(b.EffectiveHours),
		OverheadPerHour:  f(b.OverheadPerHour),
		ChairTimeCost:    f(b.ChairTimeCost),
		DoctorFee:        f(b.DoctorFee),
		EquipmentCost:    f(b.EquipmentCost),
		ConsumablesCost:  f(b.ConsumablesCost),
		LabMaterialsCost: f(b.LabMaterialsCost),
		MaterialsCost:    f(b.MaterialsCost),
		TotalCost:        f(b.TotalCost),
		ProfitPercent:    b.ProfitPercent.Float64(),
		ProfitAmount:     f(b.ProfitAmount),
		PriceBeforeVAT:   f(b.PriceBeforeVAT),
		VATPercent:       b.VATPercent.Float64(),
		VATAmount:        f(b.VATAmount),
		FinalPrice:       f(b.FinalPrice),
		RoundedPrice:     f(b.RoundedPrice),
		CurrentPrice:     f(b.CurrentPrice),
	}
}
