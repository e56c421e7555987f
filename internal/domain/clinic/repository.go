package clinic

import (
	"context"

	"github.com/google/uuid"
)

// SettingsRepository loads and stores per-clinic pricing settings.
// FindByClinic returns shared.ErrNotFound when the clinic has no row yet;
// lazy-default creation is the application layer's job.
type SettingsRepository interface {
	FindByClinic(ctx context.Context, clinicID uuid.UUID) (*PricingSettings, error)
	Save(ctx context.Context, settings *PricingSettings) error
}

// CapacityRepository loads and stores per-clinic capacity settings
type CapacityRepository interface {
	FindByClinic(ctx context.Context, clinicID uuid.UUID) (*Capacity, error)
	Save(ctx context.Context, capacity *Capacity) error
}
