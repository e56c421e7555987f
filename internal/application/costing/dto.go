package costing

import (
	"github.com/dentalcalc/backend/internal/domain/costing"
	"github.com/google/uuid"
)

// CreateFixedCostRequest creates a recurring facility cost row
type CreateFixedCostRequest struct {
	Category string  `json:"category" binding:"required,max=100"`
	Amount   float64 `json:"amount" binding:"gte=0"`
	Notes    string  `json:"notes" binding:"max=1000"`
}

// UpdateFixedCostRequest replaces a fixed cost row's fields
type UpdateFixedCostRequest struct {
	Category string  `json:"category" binding:"required,max=100"`
	Amount   float64 `json:"amount" binding:"gte=0"`
	Included bool    `json:"included"`
	Notes    string  `json:"notes" binding:"max=1000"`
}

// FixedCostResponse is the API shape of a fixed cost row
type FixedCostResponse struct {
	ID       uuid.UUID `json:"id"`
	Category string    `json:"category"`
	Amount   float64   `json:"amount"`
	Included bool      `json:"included"`
	Notes    string    `json:"notes"`
}

// CreateSalaryRequest creates a staff salary row
type CreateSalaryRequest struct {
	Role    string  `json:"role" binding:"required,max=100"`
	Monthly float64 `json:"monthly" binding:"gte=0"`
}

// UpdateSalaryRequest replaces a salary row's fields
type UpdateSalaryRequest struct {
	Role     string  `json:"role" binding:"required,max=100"`
	Monthly  float64 `json:"monthly" binding:"gte=0"`
	Included bool    `json:"included"`
}

// SalaryResponse is the API shape of a salary row
type SalaryResponse struct {
	ID       uuid.UUID `json:"id"`
	Role     string    `json:"role"`
	Monthly  float64   `json:"monthly"`
	Included bool      `json:"included"`
}

// CreateEquipmentRequest creates an equipment row
type CreateEquipmentRequest struct {
	Name              string  `json:"name" binding:"required,max=100"`
	PurchaseCost      float64 `json:"purchase_cost" binding:"gte=0"`
	LifeYears         int     `json:"life_years" binding:"required,gte=1"`
	Allocation        string  `json:"allocation" binding:"required,allocation"`
	MonthlyUsageHours float64 `json:"monthly_usage_hours" binding:"gte=0"`
}

// UpdateEquipmentRequest replaces an equipment row's fields
type UpdateEquipmentRequest struct {
	Name              string  `json:"name" binding:"required,max=100"`
	PurchaseCost      float64 `json:"purchase_cost" binding:"gte=0"`
	LifeYears         int     `json:"life_years" binding:"required,gte=1"`
	Allocation        string  `json:"allocation" binding:"required,allocation"`
	MonthlyUsageHours float64 `json:"monthly_usage_hours" binding:"gte=0"`
}

// EquipmentResponse is the API shape of an equipment row, including the
// derived depreciation figures.
type EquipmentResponse struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	PurchaseCost        float64   `json:"purchase_cost"`
	LifeYears           int       `json:"life_years"`
	Allocation          string    `json:"allocation"`
	MonthlyUsageHours   float64   `json:"monthly_usage_hours"`
	MonthlyDepreciation float64   `json:"monthly_depreciation"`
	HourlyDepreciation  float64   `json:"hourly_depreciation"`
}

// ToFixedCostResponse maps the aggregate to its API shape
func ToFixedCostResponse(f *costing.FixedCost) *FixedCostResponse {
	return &FixedCostResponse{
		ID:       f.ID,
		Category: f.Category,
		Amount:   f.Amount.Float64(),
		Included: f.Included,
		Notes:    f.Notes,
	}
}

// ToSalaryResponse maps the aggregate to its API shape
func ToSalaryResponse(s *costing.StaffSalary) *SalaryResponse {
	return &SalaryResponse{
		ID:       s.ID,
		Role:     s.Role,
		Monthly:  s.Monthly.Float64(),
		Included: s.Included,
	}
}

// ToEquipmentResponse maps the aggregate to its API shape
func ToEquipmentResponse(e *costing.Equipment) *EquipmentResponse {
	monthlyDep, _ := e.MonthlyDepreciation().Float64()
	hourlyDep, _ := e.HourlyDepreciation().Float64()
	usage, _ := e.MonthlyUsageHours.Float64()
	return &EquipmentResponse{
		ID:                  e.ID,
		Name:                e.Name,
		PurchaseCost:        e.PurchaseCost.Float64(),
		LifeYears:           e.LifeYears,
		Allocation:          string(e.Allocation),
		MonthlyUsageHours:   usage,
		MonthlyDepreciation: monthlyDep,
		HourlyDepreciation:  hourlyDep,
	}
}
