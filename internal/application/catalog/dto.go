package catalog

import (
	"github.com/dentalcalc/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// CreateConsumableRequest creates a consumable library item
type CreateConsumableRequest struct {
	Name         string  `json:"name" binding:"required,max=100"`
	PackCost     float64 `json:"pack_cost" binding:"gte=0"`
	CasesPerPack int     `json:"cases_per_pack" binding:"required,gte=1"`
	UnitsPerCase int     `json:"units_per_case" binding:"required,gte=1"`
}

// UpdateConsumableRequest replaces a consumable's fields
type UpdateConsumableRequest struct {
	Name         string  `json:"name" binding:"required,max=100"`
	PackCost     float64 `json:"pack_cost" binding:"gte=0"`
	CasesPerPack int     `json:"cases_per_pack" binding:"required,gte=1"`
	UnitsPerCase int     `json:"units_per_case" binding:"required,gte=1"`
}

// ConsumableResponse is the API shape of a consumable, including the
// derived per-unit cost.
type ConsumableResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	PackCost     float64   `json:"pack_cost"`
	CasesPerPack int       `json:"cases_per_pack"`
	UnitsPerCase int       `json:"units_per_case"`
	UnitCost     float64   `json:"unit_cost"`
}

// CreateLabMaterialRequest creates a lab material library item
type CreateLabMaterialRequest struct {
	Name     string  `json:"name" binding:"required,max=100"`
	LabName  string  `json:"lab_name" binding:"max=100"`
	UnitCost float64 `json:"unit_cost" binding:"gte=0"`
}

// UpdateLabMaterialRequest replaces a lab material's fields
type UpdateLabMaterialRequest struct {
	Name     string  `json:"name" binding:"required,max=100"`
	LabName  string  `json:"lab_name" binding:"max=100"`
	UnitCost float64 `json:"unit_cost" binding:"gte=0"`
}

// LabMaterialResponse is the API shape of a lab material
type LabMaterialResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	LabName  string    `json:"lab_name"`
	UnitCost float64   `json:"unit_cost"`
}

// CreateCategoryRequest creates a service category
type CreateCategoryRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	SortOrder int    `json:"sort_order" binding:"gte=0"`
}

// RenameCategoryRequest renames a service category
type RenameCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// CategoryResponse is the API shape of a service category
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
}

// ConsumableLineRequest attaches a consumable to a service
type ConsumableLineRequest struct {
	ConsumableID    uuid.UUID `json:"consumable_id" binding:"required"`
	Quantity        float64   `json:"quantity" binding:"gte=0"`
	CustomUnitPrice *float64  `json:"custom_unit_price" binding:"omitempty,gte=0"`
}

// MaterialLineRequest attaches a lab material to a service
type MaterialLineRequest struct {
	MaterialID      uuid.UUID `json:"material_id" binding:"required"`
	Quantity        float64   `json:"quantity" binding:"gte=0"`
	CustomUnitPrice *float64  `json:"custom_unit_price" binding:"omitempty,gte=0"`
}

// EquipmentLineRequest books hours on a piece of equipment for a service
type EquipmentLineRequest struct {
	EquipmentID uuid.UUID `json:"equipment_id" binding:"required"`
	HoursUsed   float64   `json:"hours_used" binding:"gte=0"`
}

// CreateServiceRequest creates a service
type CreateServiceRequest struct {
	Name           string     `json:"name" binding:"required,max=150"`
	CategoryID     *uuid.UUID `json:"category_id"`
	ChairTimeHours float64    `json:"chair_time_hours" binding:"gte=0"`
}

// UpdateServiceRequest replaces a service's own fields. Fee, profit and
// line collections have dedicated endpoints.
type UpdateServiceRequest struct {
	Name           string     `json:"name" binding:"required,max=150"`
	CategoryID     *uuid.UUID `json:"category_id"`
	ChairTimeHours float64    `json:"chair_time_hours" binding:"gte=0"`
}

// SetDoctorFeeRequest configures how the doctor is paid for a service.
// Only the parameter matching the mode is read; the rest are zeroed.
type SetDoctorFeeRequest struct {
	Mode       string  `json:"mode" binding:"required,feemode"`
	HourlyRate float64 `json:"hourly_rate" binding:"gte=0"`
	FixedFee   float64 `json:"fixed_fee" binding:"gte=0"`
	Percentage float64 `json:"percentage" binding:"gte=0"`
}

// SetProfitOverrideRequest switches a service between the clinic default
// profit margin and a custom one.
type SetProfitOverrideRequest struct {
	UseDefault    bool    `json:"use_default"`
	CustomPercent float64 `json:"custom_percent" binding:"gte=0"`
}

// SetCurrentPriceRequest records the price the clinic charges today
type SetCurrentPriceRequest struct {
	Price float64 `json:"price" binding:"gte=0"`
}

// ReplaceLinesRequest replaces a service's line collections wholesale
type ReplaceLinesRequest struct {
	Consumables []ConsumableLineRequest `json:"consumables" binding:"dive"`
	Materials   []MaterialLineRequest   `json:"materials" binding:"dive"`
	Equipment   []EquipmentLineRequest  `json:"equipment" binding:"dive"`
}

// ConsumableLineResponse is the API shape of a consumable line
type ConsumableLineResponse struct {
	ConsumableID    uuid.UUID `json:"consumable_id"`
	Quantity        float64   `json:"quantity"`
	CustomUnitPrice *float64  `json:"custom_unit_price,omitempty"`
}

// MaterialLineResponse is the API shape of a material line
type MaterialLineResponse struct {
	MaterialID      uuid.UUID `json:"material_id"`
	Quantity        float64   `json:"quantity"`
	CustomUnitPrice *float64  `json:"custom_unit_price,omitempty"`
}

// EquipmentLineResponse is the API shape of an equipment line
type EquipmentLineResponse struct {
	EquipmentID uuid.UUID `json:"equipment_id"`
	HoursUsed   float64   `json:"hours_used"`
}

// ServiceResponse is the API shape of a service with its line collections
type ServiceResponse struct {
	ID                  uuid.UUID                `json:"id"`
	Name                string                   `json:"name"`
	CategoryID          *uuid.UUID               `json:"category_id,omitempty"`
	ChairTimeHours      float64                  `json:"chair_time_hours"`
	FeeMode             string                   `json:"fee_mode"`
	DoctorHourlyRate    float64                  `json:"doctor_hourly_rate"`
	DoctorFixedFee      float64                  `json:"doctor_fixed_fee"`
	DoctorPercentage    float64                  `json:"doctor_percentage"`
	UseDefaultProfit    bool                     `json:"use_default_profit"`
	CustomProfitPercent float64                  `json:"custom_profit_percent"`
	CurrentPrice        float64                  `json:"current_price"`
	Consumables         []ConsumableLineResponse `json:"consumables"`
	Materials           []MaterialLineResponse   `json:"materials"`
	Equipment           []EquipmentLineResponse  `json:"equipment"`
}

// ToConsumableResponse maps the aggregate to its API shape
func ToConsumableResponse(c *catalog.Consumable) *ConsumableResponse {
	unitCost, _ := c.UnitCost().Float64()
	return &ConsumableResponse{
		ID:           c.ID,
		Name:         c.Name,
		PackCost:     c.PackCost.Float64(),
		CasesPerPack: c.CasesPerPack,
		UnitsPerCase: c.UnitsPerCase,
		UnitCost:     unitCost,
	}
}

// ToLabMaterialResponse maps the aggregate to its API shape
func ToLabMaterialResponse(m *catalog.LabMaterial) *LabMaterialResponse {
	return &LabMaterialResponse{
		ID:       m.ID,
		Name:     m.Name,
		LabName:  m.LabName,
		UnitCost: m.UnitCost.Float64(),
	}
}

// ToCategoryResponse maps the aggregate to its API shape
func ToCategoryResponse(c *catalog.ServiceCategory) *CategoryResponse {
	return &CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		SortOrder: c.SortOrder,
	}
}

// ToServiceResponse maps the aggregate, lines included, to its API shape
func ToServiceResponse(s *catalog.Service) *ServiceResponse {
	chairTime, _ := s.ChairTimeHours.Float64()

	consumables := make([]ConsumableLineResponse, len(s.Consumables))
	for i, line := range s.Consumables {
		qty, _ := line.Quantity.Float64()
		consumables[i] = ConsumableLineResponse{
			ConsumableID: line.ConsumableID,
			Quantity:     qty,
		}
		if line.CustomUnitPrice != nil {
			price := line.CustomUnitPrice.Float64()
			consumables[i].CustomUnitPrice = &price
		}
	}

	materials := make([]MaterialLineResponse, len(s.Materials))
	for i, line := range s.Materials {
		qty, _ := line.Quantity.Float64()
		materials[i] = MaterialLineResponse{
			MaterialID: line.MaterialID,
			Quantity:   qty,
		}
		if line.CustomUnitPrice != nil {
			price := line.CustomUnitPrice.Float64()
			materials[i].CustomUnitPrice = &price
		}
	}

	equipment := make([]EquipmentLineResponse, len(s.Equipment))
	for i, line := range s.Equipment {
		hours, _ := line.HoursUsed.Float64()
		equipment[i] = EquipmentLineResponse{
			EquipmentID: line.EquipmentID,
			HoursUsed:   hours,
		}
	}

	return &ServiceResponse{
		ID:                  s.ID,
		Name:                s.Name,
		CategoryID:          s.CategoryID,
		ChairTimeHours:      chairTime,
		FeeMode:             string(s.FeeMode),
		DoctorHourlyRate:    s.DoctorHourlyRate.Float64(),
		DoctorFixedFee:      s.DoctorFixedFee.Float64(),
		DoctorPercentage:    s.DoctorPercentage.Float64(),
		UseDefaultProfit:    s.UseDefaultProfit,
		CustomProfitPercent: s.CustomProfitPercent.Float64(),
		CurrentPrice:        s.CurrentPrice.Float64(),
		Consumables:         consumables,
		Materials:           materials,
		Equipment:           equipment,
	}
}
