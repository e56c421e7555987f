package identity

import (
	"regexp"
	"strings"

	"github.com/dentalcalc/backend/internal/domain/shared"
)

// Clinic is the tenant: every settings, costing and catalog record hangs off
// one clinic, and no query or calculation crosses clinic boundaries.
type Clinic struct {
	shared.BaseAggregateRoot
	Name    string `gorm:"type:varchar(150);not null"`
	Slug    string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email   string `gorm:"type:varchar(255)"`
	Phone   string `gorm:"type:varchar(50)"`
	Address string `gorm:"type:text"`
	LogoURL string `gorm:"type:varchar(500)"`
	Active  bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Clinic) TableName() string {
	return "clinics"
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// NewClinic registers a clinic with a URL-safe slug
func NewClinic(name, slug string) (*Clinic, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Clinic name cannot be empty")
	}
	slug = strings.ToLower(strings.TrimSpace(slug))
	if !slugPattern.MatchString(slug) {
		return nil, shared.NewDomainError("INVALID_SLUG", "Slug must be lowercase letters, digits and hyphens")
	}

	return &Clinic{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              trimmed,
		Slug:              slug,
		Active:            true,
	}, nil
}

// UpdateProfile replaces the clinic's contact details
func (c *Clinic) UpdateProfile(name, email, phone, address string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_NAME", "Clinic name cannot be empty")
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	c.Name = trimmed
	c.Email = strings.ToLower(strings.TrimSpace(email))
	c.Phone = strings.TrimSpace(phone)
	c.Address = strings.TrimSpace(address)
	c.Touch()
	c.IncrementVersion()
	return nil
}

// SetLogoURL stores the object-storage location of the clinic's logo
func (c *Clinic) SetLogoURL(url string) {
	c.LogoURL = url
	c.Touch()
	c.IncrementVersion()
}

// Deactivate disables the clinic and all logins into it
func (c *Clinic) Deactivate() {
	c.Active = false
	c.Touch()
	c.IncrementVersion()
}
