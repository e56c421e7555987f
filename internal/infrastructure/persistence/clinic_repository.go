package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/dentalcalc/backend/internal/domain/identity"
	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormClinicRepository implements identity.ClinicRepository using GORM
type GormClinicRepository struct {
	db *gorm.DB
}

// NewGormClinicRepository creates a new GormClinicRepository
func NewGormClinicRepository(db *gorm.DB) *GormClinicRepository {
	return &GormClinicRepository{db: db}
}

// FindByID finds a clinic by its ID
func (r *GormClinicRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Clinic, error) {
	var clinic identity.Clinic
	if err := r.db.WithContext(ctx).First(&clinic, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &clinic, nil
}

// FindBySlug finds a clinic by its slug
func (r *GormClinicRepository) FindBySlug(ctx context.Context, slug string) (*identity.Clinic, error) {
	var clinic identity.Clinic
	if err := r.db.WithContext(ctx).
		Where("slug = ?", strings.ToLower(strings.TrimSpace(slug))).
		First(&clinic).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &clinic, nil
}

// Save creates or updates a clinic
func (r *GormClinicRepository) Save(ctx context.Context, clinic *identity.Clinic) error {
	return r.db.WithContext(ctx).Save(clinic).Error
}

// Ensure GormClinicRepository implements ClinicRepository
var _ identity.ClinicRepository = (*GormClinicRepository)(nil)
