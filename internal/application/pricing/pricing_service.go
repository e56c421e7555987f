package pricing

import (
	"context"
	"errors"

	"github.com/dentalcalc/backend/internal/domain/catalog"
	"github.com/dentalcalc/backend/internal/domain/clinic"
	"github.com/dentalcalc/backend/internal/domain/costing"
	"github.com/dentalcalc/backend/internal/domain/pricing"
	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/dentalcalc/backend/internal/domain/shared/valueobject"
	"github.com/dentalcalc/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RateCache caches a clinic's aggregated cost pool between pricing calls.
// A miss is (nil, nil); cost-side writes invalidate through the same key.
type RateCache interface {
	GetPool(ctx context.Context, clinicID uuid.UUID) (*costing.CostPool, error)
	SetPool(ctx context.Context, clinicID uuid.UUID, pool costing.CostPool) error
	Invalidate(ctx context.Context, clinicID uuid.UUID) error
}

// PricingService assembles immutable snapshots from the repositories and
// runs the calculation engine over them. One snapshot of settings, capacity
// and the cost pool serves an entire price-list pass.
type PricingService struct {
	settingsRepo   clinic.SettingsRepository
	capacityRepo   clinic.CapacityRepository
	fixedCostRepo  costing.FixedCostRepository
	salaryRepo     costing.SalaryRepository
	equipmentRepo  costing.EquipmentRepository
	serviceRepo    catalog.ServiceRepository
	consumableRepo catalog.ConsumableRepository
	materialRepo   catalog.LabMaterialRepository
	rateCache      RateCache
	logger         *zap.Logger
}

// NewPricingService creates a new PricingService
func NewPricingService(
	settingsRepo clinic.SettingsRepository,
	capacityRepo clinic.CapacityRepository,
	fixedCostRepo costing.FixedCostRepository,
	salaryRepo costing.SalaryRepository,
	equipmentRepo costing.EquipmentRepository,
	serviceRepo catalog.ServiceRepository,
	consumableRepo catalog.ConsumableRepository,
	materialRepo catalog.LabMaterialRepository,
	rateCache RateCache,
	logger *zap.Logger,
) *PricingService {
	return &PricingService{
		settingsRepo:   settingsRepo,
		capacityRepo:   capacityRepo,
		fixedCostRepo:  fixedCostRepo,
		salaryRepo:     salaryRepo,
		equipmentRepo:  equipmentRepo,
		serviceRepo:    serviceRepo,
		consumableRepo: consumableRepo,
		materialRepo:   materialRepo,
		rateCache:      rateCache,
		logger:         logger,
	}
}

// PriceService prices a single service against the clinic's current
// settings, capacity and cost pool.
func (s *PricingService) PriceService(ctx context.Context, clinicID, serviceID uuid.UUID) (*BreakdownResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "pricing", "price_service",
		telemetry.WithAttribute("service.id", serviceID.String()))
	defer span.End()

	service, err := s.serviceRepo.FindWithLines(ctx, clinicID, serviceID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	snapshot, err := s.buildClinicSnapshot(ctx, clinicID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	resolver, err := s.buildResolver(ctx, clinicID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	breakdown, err := pricing.Quote(*snapshot, resolver.serviceSnapshot(service, snapshot.DefaultProfit))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetOK(span)
	return ToBreakdownResponse(breakdown), nil
}

// PriceList prices every service of the clinic in one pass, reusing a
// single clinic snapshot and library resolver.
func (s *PricingService) PriceList(ctx context.Context, clinicID uuid.UUID) ([]BreakdownResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "pricing", "price_list")
	defer span.End()

	services, err := s.serviceRepo.FindAllWithLines(ctx, clinicID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	snapshot, err := s.buildClinicSnapshot(ctx, clinicID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	resolver, err := s.buildResolver(ctx, clinicID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	results := make([]BreakdownResponse, 0, len(services))
	for i := range services {
		breakdown, err := pricing.Quote(*snapshot, resolver.serviceSnapshot(&services[i], snapshot.DefaultProfit))
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		results = append(results, *ToBreakdownResponse(breakdown))
	}
	telemetry.SetAttribute(span, "pricing.services_priced", len(results))
	telemetry.SetOK(span)
	return results, nil
}

// DashboardStats returns the landing-page summary: service count plus the
// clinic's cost pool figures.
func (s *PricingService) DashboardStats(ctx context.Context, clinicID uuid.UUID) (*DashboardStatsResponse, error) {
	snapshot, err := s.buildClinicSnapshot(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	serviceCount, err := s.serviceRepo.CountForClinic(ctx, clinicID, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	f := func(d decimal.Decimal) float64 {
		v, _ := d.Float64()
		return v
	}
	return &DashboardStatsResponse{
		ServiceCount:      serviceCount,
		MonthlyOverhead:   f(snapshot.Pool.MonthlyOverhead),
		EffectiveHours:    f(snapshot.Pool.EffectiveHours),
		OverheadPerHour:   f(snapshot.Pool.OverheadPerHour),
		FixedCostTotal:    f(snapshot.Pool.FixedTotal),
		SalaryTotal:       f(snapshot.Pool.SalaryTotal),
		DepreciationTotal: f(snapshot.Pool.DepreciationTotal),
		Currency:          string(snapshot.Currency),
	}, nil
}

// buildClinicSnapshot loads settings and the cost pool. Missing settings or
// capacity rows fall back to onboarding defaults without writing, so pricing
// stays a pure read.
func (s *PricingService) buildClinicSnapshot(ctx context.Context, clinicID uuid.UUID) (*pricing.ClinicSnapshot, error) {
	settings, err := s.settingsRepo.FindByClinic(ctx, clinicID)
	if errors.Is(err, shared.ErrNotFound) {
		settings = clinic.NewDefaultPricingSettings(clinicID)
	} else if err != nil {
		return nil, err
	}

	pool, err := s.loadCostPool(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	return &pricing.ClinicSnapshot{
		Currency:          settings.Currency,
		VATPercent:        settings.VATPercent,
		DefaultProfit:     settings.ProfitPercent,
		RoundingIncrement: settings.RoundingIncrement,
		Pool:              *pool,
	}, nil
}

func (s *PricingService) loadCostPool(ctx context.Context, clinicID uuid.UUID) (*costing.CostPool, error) {
	if s.rateCache != nil {
		cached, err := s.rateCache.GetPool(ctx, clinicID)
		if err != nil {
			s.logger.Warn("Overhead rate cache read failed",
				zap.String("clinic_id", clinicID.String()),
				zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	capacity, err := s.capacityRepo.FindByClinic(ctx, clinicID)
	if errors.Is(err, shared.ErrNotFound) {
		capacity = clinic.NewDefaultCapacity(clinicID)
	} else if err != nil {
		return nil, err
	}

	filter := allRowsFilter()
	fixedCosts, err := s.fixedCostRepo.FindAllForClinic(ctx, clinicID, filter)
	if err != nil {
		return nil, err
	}
	salaries, err := s.salaryRepo.FindAllForClinic(ctx, clinicID, filter)
	if err != nil {
		return nil, err
	}
	equipment, err := s.equipmentRepo.FindAllForClinic(ctx, clinicID, filter)
	if err != nil {
		return nil, err
	}

	pool := costing.AggregateCostPool(fixedCosts, salaries, equipment, capacity.EffectiveHours())

	if s.rateCache != nil {
		if err := s.rateCache.SetPool(ctx, clinicID, pool); err != nil {
			s.logger.Warn("Overhead rate cache write failed",
				zap.String("clinic_id", clinicID.String()),
				zap.Error(err))
		}
	}
	return &pool, nil
}

// libraryResolver holds the clinic's libraries indexed by ID so resolving a
// service's line rows costs nothing per line.
type libraryResolver struct {
	consumables map[uuid.UUID]*catalog.Consumable
	materials   map[uuid.UUID]*catalog.LabMaterial
	equipment   map[uuid.UUID]*costing.Equipment
}

func (s *PricingService) buildResolver(ctx context.Context, clinicID uuid.UUID) (*libraryResolver, error) {
	filter := allRowsFilter()

	consumables, err := s.consumableRepo.FindAllForClinic(ctx, clinicID, filter)
	if err != nil {
		return nil, err
	}
	materials, err := s.materialRepo.FindAllForClinic(ctx, clinicID, filter)
	if err != nil {
		return nil, err
	}
	equipment, err := s.equipmentRepo.FindAllForClinic(ctx, clinicID, filter)
	if err != nil {
		return nil, err
	}

	resolver := &libraryResolver{
		consumables: make(map[uuid.UUID]*catalog.Consumable, len(consumables)),
		materials:   make(map[uuid.UUID]*catalog.LabMaterial, len(materials)),
		equipment:   make(map[uuid.UUID]*costing.Equipment, len(equipment)),
	}
	for i := range consumables {
		resolver.consumables[consumables[i].ID] = &consumables[i]
	}
	for i := range materials {
		resolver.materials[materials[i].ID] = &materials[i]
	}
	for i := range equipment {
		resolver.equipment[equipment[i].ID] = &equipment[i]
	}
	return resolver, nil
}

// serviceSnapshot resolves a service's line rows against the libraries.
// Lines pointing at deleted library items are dropped: a removed consumable
// detaches from every service that referenced it.
func (r *libraryResolver) serviceSnapshot(service *catalog.Service, defaultProfit valueobject.Percent) pricing.ServiceSnapshot {
	snapshot := pricing.ServiceSnapshot{
		ServiceID:        service.ID,
		Name:             service.Name,
		ChairTimeHours:   service.ChairTimeHours,
		FeeMode:          service.FeeMode,
		DoctorHourlyRate: service.DoctorHourlyRate.Amount(),
		DoctorFixedFee:   service.DoctorFixedFee.Amount(),
		DoctorPercentage: service.DoctorPercentage,
		ProfitPercent:    service.ProfitPercent(defaultProfit),
		CurrentPrice:     service.CurrentPrice.Amount(),
	}

	for _, line := range service.Consumables {
		consumable, ok := r.consumables[line.ConsumableID]
		if !ok {
			continue
		}
		snapshot.Consumables = append(snapshot.Consumables, pricing.ConsumableLine{
			Name:            consumable.Name,
			Quantity:        line.Quantity,
			DefaultUnitCost: consumable.UnitCost(),
			CustomUnitPrice: moneyPtr(line.CustomUnitPrice),
		})
	}

	for _, line := range service.Materials {
		material, ok := r.materials[line.MaterialID]
		if !ok {
			continue
		}
		snapshot.Materials = append(snapshot.Materials, pricing.MaterialLine{
			Name:            material.Name,
			Quantity:        line.Quantity,
			DefaultUnitCost: material.UnitCost.Amount(),
			CustomUnitPrice: moneyPtr(line.CustomUnitPrice),
		})
	}

	for _, line := range service.Equipment {
		equipment, ok := r.equipment[line.EquipmentID]
		if !ok {
			continue
		}
		snapshot.Equipment = append(snapshot.Equipment, pricing.EquipmentLine{
			Name:                equipment.Name,
			Allocation:          equipment.Allocation,
			MonthlyDepreciation: equipment.MonthlyDepreciation(),
			MonthlyUsageHours:   equipment.MonthlyUsageHours,
			HoursUsed:           line.HoursUsed,
		})
	}

	return snapshot
}

func moneyPtr(money *valueobject.Money) *decimal.Decimal {
	if money == nil {
		return nil
	}
	amount := money.Amount()
	return &amount
}

// allRowsFilter covers a clinic's full library in one page. Libraries are
// small (tens of rows); a clinic approaching this bound has outgrown the
// product.
func allRowsFilter() shared.Filter {
	filter := shared.DefaultFilter()
	filter.PageSize = 1000
	return filter
}
