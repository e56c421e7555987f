package persistence

import (
	"context"
	"errors"

	"github.com/dentalcalc/backend/internal/domain/clinic"
	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSettingsRepository implements clinic.SettingsRepository using GORM
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// FindByClinic finds the pricing settings row for a clinic
func (r *GormSettingsRepository) FindByClinic(ctx context.Context, clinicID uuid.UUID) (*clinic.PricingSettings, error) {
	var settings clinic.PricingSettings
	if err := r.db.WithContext(ctx).
		Where("clinic_id = ?", clinicID).
		First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &settings, nil
}

// Save creates or updates the settings row
func (r *GormSettingsRepository) Save(ctx context.Context, settings *clinic.PricingSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}

// Ensure GormSettingsRepository implements SettingsRepository
var _ clinic.SettingsRepository = (*GormSettingsRepository)(nil)
