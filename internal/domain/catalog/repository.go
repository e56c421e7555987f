package catalog

import (
	"context"

	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ConsumableRepository stores consumable library items
type ConsumableRepository interface {
	shared.ClinicRepository[Consumable]
}

// LabMaterialRepository stores lab material library items
type LabMaterialRepository interface {
	shared.ClinicRepository[LabMaterial]
}

// CategoryRepository stores service categories
type CategoryRepository interface {
	shared.ClinicRepository[ServiceCategory]
	SaveAll(ctx context.Context, categories []*ServiceCategory) error
}

// ServiceRepository stores services. Loads must resolve the attached line
// rows; legacy single-equipment records are translated into a one-element
// ServiceEquipment list before the aggregate leaves this boundary, so the
// rest of the system only ever sees the canonical multi-row form.
type ServiceRepository interface {
	shared.ClinicRepository[Service]
	FindWithLines(ctx context.Context, clinicID, id uuid.UUID) (*Service, error)
	FindAllWithLines(ctx context.Context, clinicID uuid.UUID) ([]Service, error)
}
