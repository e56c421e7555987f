package clinic

import (
	"github.com/dentalcalc/backend/internal/domain/clinic"
)

// UpdateSettingsRequest is an explicit, typed settings update. Every field is
// required; partial patches do not exist at this layer.
type UpdateSettingsRequest struct {
	Currency          string  `json:"currency" binding:"required,len=3,alpha"`
	VATPercent        float64 `json:"vat_percent" binding:"gte=0"`
	ProfitPercent     float64 `json:"profit_percent" binding:"gte=0"`
	RoundingIncrement int     `json:"rounding_increment" binding:"gte=0"`
}

// UpdateCapacityRequest is an explicit, typed capacity update
type UpdateCapacityRequest struct {
	Chairs             int     `json:"chairs" binding:"gte=0"`
	DaysPerMonth       int     `json:"days_per_month" binding:"gte=0,lte=31"`
	HoursPerDay        int     `json:"hours_per_day" binding:"gte=0,lte=24"`
	UtilizationPercent float64 `json:"utilization_percent" binding:"gte=0,lte=100"`
}

// SettingsResponse is the API shape of pricing settings
type SettingsResponse struct {
	Currency          string  `json:"currency"`
	VATPercent        float64 `json:"vat_percent"`
	ProfitPercent     float64 `json:"profit_percent"`
	RoundingIncrement int     `json:"rounding_increment"`
}

// CapacityResponse is the API shape of capacity settings, including the
// derived effective hours for display.
type CapacityResponse struct {
	Chairs             int     `json:"chairs"`
	DaysPerMonth       int     `json:"days_per_month"`
	HoursPerDay        int     `json:"hours_per_day"`
	UtilizationPercent float64 `json:"utilization_percent"`
	EffectiveHours     float64 `json:"effective_hours"`
}

// ToSettingsResponse maps the aggregate to its API shape
func ToSettingsResponse(s *clinic.PricingSettings) *SettingsResponse {
	return &SettingsResponse{
		Currency:          string(s.Currency),
		VATPercent:        s.VATPercent.Float64(),
		ProfitPercent:     s.ProfitPercent.Float64(),
		RoundingIncrement: s.RoundingIncrement,
	}
}

// ToCapacityResponse maps the aggregate to its API shape
func ToCapacityResponse(c *clinic.Capacity) *CapacityResponse {
	eff, _ := c.EffectiveHours().Float64()
	return &CapacityResponse{
		Chairs:             c.Chairs,
		DaysPerMonth:       c.DaysPerMonth,
		HoursPerDay:        c.HoursPerDay,
		UtilizationPercent: c.UtilizationPercent.Float64(),
		EffectiveHours:     eff,
	}
}
