package catalog

import (
	"strings"

	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ServiceCategory groups services for display (Restorative, Endodontics, ...).
type ServiceCategory struct {
	shared.ClinicAggregateRoot
	Name      string `gorm:"type:varchar(100);not null"`
	SortOrder int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ServiceCategory) TableName() string {
	return "service_categories"
}

// DefaultCategoryNames are seeded for every new clinic
var DefaultCategoryNames = []string{
	"Diagnostics & Prevention",
	"Restorative",
	"Endodontics",
	"Prosthodontics - Fixed",
	"Prosthodontics - Removable",
	"Oral Surgery",
	"Orthodontics",
	"Periodontics",
	"Pediatric Dentistry",
}

// NewServiceCategory creates a category for a clinic
func NewServiceCategory(clinicID uuid.UUID, name string, sortOrder int) (*ServiceCategory, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(trimmed) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}

	return &ServiceCategory{
		ClinicAggregateRoot: shared.NewClinicAggregateRoot(clinicID),
		Name:                trimmed,
		SortOrder:           sortOrder,
	}, nil
}

// Rename changes the category name
func (c *ServiceCategory) Rename(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	c.Name = trimmed
	c.Touch()
	c.IncrementVersion()
	return nil
}

// DefaultCategories builds the seed list for a newly registered clinic
func DefaultCategories(clinicID uuid.UUID) []*ServiceCategory {
	categories := make([]*ServiceCategory, 0, len(DefaultCategoryNames))
	for i, name := range DefaultCategoryNames {
		c, _ := NewServiceCategory(clinicID, name, i)
		categories = append(categories, c)
	}
	return categories
}
