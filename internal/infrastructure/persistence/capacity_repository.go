package persistence

import (
	"context"
	"errors"

	"github.com/dentalcalc/backend/internal/domain/clinic"
	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCapacityRepository implements clinic.CapacityRepository using GORM
type GormCapacityRepository struct {
	db *gorm.DB
}

// NewGormCapacityRepository creates a new GormCapacityRepository
func NewGormCapacityRepository(db *gorm.DB) *GormCapacityRepository {
	return &GormCapacityRepository{db: db}
}

// FindByClinic finds the capacity row for a clinic
func (r *GormCapacityRepository) FindByClinic(ctx context.Context, clinicID uuid.UUID) (*clinic.Capacity, error) {
	var capacity clinic.Capacity
	if err := r.db.WithContext(ctx).
		Where("clinic_id = ?", clinicID).
		First(&capacity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &capacity, nil
}

// Save creates or updates the capacity row
func (r *GormCapacityRepository) Save(ctx context.Context, capacity *clinic.Capacity) error {
	return r.db.WithContext(ctx).Save(capacity).Error
}

// Ensure GormCapacityRepository implements CapacityRepository
var _ clinic.CapacityRepository = (*GormCapacityRepository)(nil)
