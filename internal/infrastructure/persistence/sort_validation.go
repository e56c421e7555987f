package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "ASC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "DESC" {
		return "DESC"
	}
	return "ASC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// FixedCostSortFields contains allowed sort fields for fixed costs
var FixedCostSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"category":   true,
	"amount":     true,
	"included":   true,
}

// SalarySortFields contains allowed sort fields for staff salaries
var SalarySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"role":       true,
	"monthly":    true,
	"included":   true,
}

// EquipmentSortFields contains allowed sort fields for equipment
var EquipmentSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"name":          true,
	"purchase_cost": true,
	"life_years":    true,
	"allocation":    true,
}

// ConsumableSortFields contains allowed sort fields for consumables
var ConsumableSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"name":           true,
	"pack_cost":      true,
	"cases_per_pack": true,
	"units_per_case": true,
}

// LabMaterialSortFields contains allowed sort fields for lab materials
var LabMaterialSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"lab_name":   true,
	"unit_cost":  true,
}

// CategorySortFields contains allowed sort fields for service categories
var CategorySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"sort_order": true,
}

// ServiceSortFields contains allowed sort fields for services
var ServiceSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"name":             true,
	"category_id":      true,
	"chair_time_hours": true,
	"current_price":    true,
}
