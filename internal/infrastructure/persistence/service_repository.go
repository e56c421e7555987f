package persistence

import (
	"context"
	"errors"

	"github.com/dentalcalc/backend/internal/domain/catalog"
	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormServiceRepository implements catalog.ServiceRepository using GORM
type GormServiceRepository struct {
	clinicScoped[catalog.Service]
}

// NewGormServiceRepository creates a new GormServiceRepository
func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{
		clinicScoped: newClinicScoped[catalog.Service](
			db,
			"name ILIKE ?",
			ServiceSortFields,
			"name",
		),
	}
}

// FindWithLines loads a service together with its line rows
func (r *GormServiceRepository) FindWithLines(ctx context.Context, clinicID, id uuid.UUID) (*catalog.Service, error) {
	var service catalog.Service
	if err := r.db.WithContext(ctx).
		Preload("Consumables").
		Preload("Materials").
		Preload("Equipment").
		Where("clinic_id = ? AND id = ?", clinicID, id).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	if err := r.fillLegacyEquipment(ctx, []*catalog.Service{&service}); err != nil {
		return nil, err
	}
	return &service, nil
}

// FindAllWithLines loads every service of a clinic with its line rows
func (r *GormServiceRepository) FindAllWithLines(ctx context.Context, clinicID uuid.UUID) ([]catalog.Service, error) {
	var services []catalog.Service
	if err := r.db.WithContext(ctx).
		Preload("Consumables").
		Preload("Materials").
		Preload("Equipment").
		Where("clinic_id = ?", clinicID).
		Order("name ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}

	refs := make([]*catalog.Service, len(services))
	for i := range services {
		refs[i] = &services[i]
	}
	if err := r.fillLegacyEquipment(ctx, refs); err != nil {
		return nil, err
	}
	return services, nil
}

// legacyEquipmentRow carries the pre-migration single-equipment columns that
// still exist on the services table for databases imported from the old
// spreadsheet format.
type legacyEquipmentRow struct {
	ServiceID   uuid.UUID
	EquipmentID uuid.UUID
	Hours       decimal.Decimal
}

// fillLegacyEquipment translates legacy single-equipment columns into a
// one-element equipment list for services that have no canonical rows yet.
// Callers always see the multi-row form regardless of how old the data is.
func (r *GormServiceRepository) fillLegacyEquipment(ctx context.Context, services []*catalog.Service) error {
	byID := make(map[uuid.UUID]*catalog.Service)
	ids := make([]uuid.UUID, 0, len(services))
	for _, svc := range services {
		if len(svc.Equipment) == 0 {
			byID[svc.ID] = svc
			ids = append(ids, svc.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var rows []legacyEquipmentRow
	if err := r.db.WithContext(ctx).
		Table("services").
		Select("id AS service_id, legacy_equipment_id AS equipment_id, legacy_equipment_hours AS hours").
		Where("id IN ? AND legacy_equipment_id IS NOT NULL", ids).
		Scan(&rows).Error; err != nil {
		return err
	}

	for _, row := range rows {
		svc, ok := byID[row.ServiceID]
		if !ok {
			continue
		}
		svc.Equipment = []catalog.ServiceEquipment{{
			BaseEntity:  shared.NewBaseEntity(),
			ServiceID:   row.ServiceID,
			EquipmentID: row.EquipmentID,
			HoursUsed:   row.Hours,
		}}
	}
	return nil
}

// Save persists the service and fully replaces its line row associations
func (r *GormServiceRepository) Save(ctx context.Context, service *catalog.Service) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Line sets are replaced wholesale, so stale rows must go before
		// the aggregate is written with its current associations.
		for _, model := range []interface{}{
			&catalog.ServiceConsumable{},
			&catalog.ServiceMaterial{},
			&catalog.ServiceEquipment{},
		} {
			if err := tx.Where("service_id = ?", service.ID).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(service).Error
	})
}

// Ensure GormServiceRepository implements ServiceRepository
var _ catalog.ServiceRepository = (*GormServiceRepository)(nil)
