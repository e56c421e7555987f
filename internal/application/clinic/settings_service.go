package clinic

import (
	"context"
	"errors"

	"github.com/dentalcalc/backend/internal/domain/clinic"
	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/dentalcalc/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RateInvalidator drops a clinic's cached overhead rate. Settings and
// capacity writes change the rate, so they must invalidate before returning.
type RateInvalidator interface {
	Invalidate(ctx context.Context, clinicID uuid.UUID) error
}

// SettingsService serves per-clinic pricing settings and capacity with
// lazy-default creation: the first read for a clinic creates the row from
// onboarding defaults instead of failing.
type SettingsService struct {
	settingsRepo clinic.SettingsRepository
	capacityRepo clinic.CapacityRepository
	rateCache    RateInvalidator
	logger       *zap.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(
	settingsRepo clinic.SettingsRepository,
	capacityRepo clinic.CapacityRepository,
	rateCache RateInvalidator,
	logger *zap.Logger,
) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		capacityRepo: capacityRepo,
		rateCache:    rateCache,
		logger:       logger,
	}
}

// GetOrCreateSettings returns the clinic's pricing settings, creating the
// default row on first access.
func (s *SettingsService) GetOrCreateSettings(ctx context.Context, clinicID uuid.UUID) (*clinic.PricingSettings, error) {
	settings, err := s.settingsRepo.FindByClinic(ctx, clinicID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	settings = clinic.NewDefaultPricingSettings(clinicID)
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}
	s.logger.Info("Created default pricing settings", zap.String("clinic_id", clinicID.String()))
	return settings, nil
}

// GetSettings returns the API shape of the clinic's settings
func (s *SettingsService) GetSettings(ctx context.Context, clinicID uuid.UUID) (*SettingsResponse, error) {
	settings, err := s.GetOrCreateSettings(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	return ToSettingsResponse(settings), nil
}

// UpdateSettings applies a typed settings update and invalidates the cached
// overhead rate.
func (s *SettingsService) UpdateSettings(ctx context.Context, clinicID uuid.UUID, req UpdateSettingsRequest) (*SettingsResponse, error) {
	settings, err := s.GetOrCreateSettings(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	err = settings.Update(
		valueobject.Currency(req.Currency),
		valueobject.NewPercentFromFloat(req.VATPercent),
		valueobject.NewPercentFromFloat(req.ProfitPercent),
		req.RoundingIncrement,
	)
	if err != nil {
		return nil, err
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}
	s.invalidateRate(ctx, clinicID)

	return ToSettingsResponse(settings), nil
}

// GetOrCreateCapacity returns the clinic's capacity, creating the default
// row on first access.
func (s *SettingsService) GetOrCreateCapacity(ctx context.Context, clinicID uuid.UUID) (*clinic.Capacity, error) {
	capacity, err := s.capacityRepo.FindByClinic(ctx, clinicID)
	if err == nil {
		return capacity, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	capacity = clinic.NewDefaultCapacity(clinicID)
	if err := s.capacityRepo.Save(ctx, capacity); err != nil {
		return nil, err
	}
	s.logger.Info("Created default capacity", zap.String("clinic_id", clinicID.String()))
	return capacity, nil
}

// GetCapacity returns the API shape of the clinic's capacity
func (s *SettingsService) GetCapacity(ctx context.Context, clinicID uuid.UUID) (*CapacityResponse, error) {
	capacity, err := s.GetOrCreateCapacity(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	return ToCapacityResponse(capacity), nil
}

// UpdateCapacity applies a typed capacity update and invalidates the cached
// overhead rate.
func (s *SettingsService) UpdateCapacity(ctx context.Context, clinicID uuid.UUID, req UpdateCapacityRequest) (*CapacityResponse, error) {
	capacity, err := s.GetOrCreateCapacity(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	err = capacity.Update(req.Chairs, req.DaysPerMonth, req.HoursPerDay, valueobject.NewPercentFromFloat(req.UtilizationPercent))
	if err != nil {
		return nil, err
	}

	if err := s.capacityRepo.Save(ctx, capacity); err != nil {
		return nil, err
	}
	s.invalidateRate(ctx, clinicID)

	return ToCapacityResponse(capacity), nil
}

// invalidateRate drops the cached rate; a cache failure is logged, not
// surfaced, because the cache is an optimization with a TTL backstop.
func (s *SettingsService) invalidateRate(ctx context.Context, clinicID uuid.UUID) {
	if s.rateCache == nil {
		return
	}
	if err := s.rateCache.Invalidate(ctx, clinicID); err != nil {
		s.logger.Warn("Failed to invalidate overhead rate cache",
			zap.String("clinic_id", clinicID.String()),
			zap.Error(err))
	}
}
