package catalog

import (
	"context"
	"errors"

	"github.com/dentalcalc/backend/internal/domain/catalog"
	"github.com/dentalcalc/backend/internal/domain/costing"
	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/dentalcalc/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ServiceService handles CRUD for services and their line collections.
// Line replacement validates every referenced library item against the
// clinic before writing, so a service can never point at another clinic's
// consumables, materials or equipment.
type ServiceService struct {
	serviceRepo    catalog.ServiceRepository
	categoryRepo   catalog.CategoryRepository
	consumableRepo catalog.ConsumableRepository
	materialRepo   catalog.LabMaterialRepository
	equipmentRepo  costing.EquipmentRepository
	logger         *zap.Logger
}

// NewServiceService creates a new ServiceService
func NewServiceService(
	serviceRepo catalog.ServiceRepository,
	categoryRepo catalog.CategoryRepository,
	consumableRepo catalog.ConsumableRepository,
	materialRepo catalog.LabMaterialRepository,
	equipmentRepo costing.EquipmentRepository,
	logger *zap.Logger,
) *ServiceService {
	return &ServiceService{
		serviceRepo:    serviceRepo,
		categoryRepo:   categoryRepo,
		consumableRepo: consumableRepo,
		materialRepo:   materialRepo,
		equipmentRepo:  equipmentRepo,
		logger:         logger,
	}
}

// Create adds a service to the clinic
func (s *ServiceService) Create(ctx context.Context, clinicID uuid.UUID, req CreateServiceRequest) (*ServiceResponse, error) {
	service, err := catalog.NewService(clinicID, req.Name, decimal.NewFromFloat(req.ChairTimeHours))
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, clinicID, *req.CategoryID); err != nil {
			return nil, err
		}
		service.CategoryID = req.CategoryID
	}

	if err := s.serviceRepo.Save(ctx, service); err != nil {
		s.logger.Error("Failed to save service", zap.Error(err))
		return nil, err
	}
	return ToServiceResponse(service), nil
}

// Get returns a service with its line collections
func (s *ServiceService) Get(ctx context.Context, clinicID, id uuid.UUID) (*ServiceResponse, error) {
	service, err := s.serviceRepo.FindWithLines(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	return ToServiceResponse(service), nil
}

// List returns all of the clinic's services with their line collections
func (s *ServiceService) List(ctx context.Context, clinicID uuid.UUID) ([]ServiceResponse, error) {
	services, err := s.serviceRepo.FindAllWithLines(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	items := make([]ServiceResponse, len(services))
	for i := range services {
		items[i] = *ToServiceResponse(&services[i])
	}
	return items, nil
}

// Update replaces a service's own fields
func (s *ServiceService) Update(ctx context.Context, clinicID, id uuid.UUID, req UpdateServiceRequest) (*ServiceResponse, error) {
	service, err := s.serviceRepo.FindWithLines(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, clinicID, *req.CategoryID); err != nil {
			return nil, err
		}
	}
	if err := service.Update(req.Name, req.CategoryID, decimal.NewFromFloat(req.ChairTimeHours)); err != nil {
		return nil, err
	}

	if err := s.serviceRepo.Save(ctx, service); err != nil {
		return nil, err
	}
	return ToServiceResponse(service), nil
}

// SetDoctorFee configures how the doctor is paid for the service
func (s *ServiceService) SetDoctorFee(ctx context.Context, clinicID, id uuid.UUID, req SetDoctorFeeRequest) (*ServiceResponse, error) {
	service, err := s.serviceRepo.FindWithLines(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}

	hourlyRate, err := valueobject.NewMoneyFromFloat(req.HourlyRate, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	fixedFee, err := valueobject.NewMoneyFromFloat(req.FixedFee, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}

	err = service.SetDoctorFee(
		catalog.DoctorFeeMode(req.Mode),
		hourlyRate,
		fixedFee,
		valueobject.NewPercentFromFloat(req.Percentage),
	)
	if err != nil {
		return nil, err
	}

	if err := s.serviceRepo.Save(ctx, service); err != nil {
		return nil, err
	}
	return ToServiceResponse(service), nil
}

// SetProfitOverride switches the service between the clinic default profit
// margin and a custom one.
func (s *ServiceService) SetProfitOverride(ctx context.Context, clinicID, id uuid.UUID, req SetProfitOverrideRequest) (*ServiceResponse, error) {
	service, err := s.serviceRepo.FindWithLines(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}

	if err := service.SetProfitOverride(req.UseDefault, valueobject.NewPercentFromFloat(req.CustomPercent)); err != nil {
		return nil, err
	}
	if err := s.serviceRepo.Save(ctx, service); err != nil {
		return nil, err
	}
	return ToServiceResponse(service), nil
}

// SetCurrentPrice records the price the clinic charges today
func (s *ServiceService) SetCurrentPrice(ctx context.Context, clinicID, id uuid.UUID, req SetCurrentPriceRequest) (*ServiceResponse, error) {
	service, err := s.serviceRepo.FindWithLines(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}

	price, err := valueobject.NewMoneyFromFloat(req.Price, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	if err := service.SetCurrentPrice(price); err != nil {
		return nil, err
	}

	if err := s.serviceRepo.Save(ctx, service); err != nil {
		return nil, err
	}
	return ToServiceResponse(service), nil
}

// ReplaceLines replaces the service's line collections wholesale after
// validating every referenced library item against the clinic.
func (s *ServiceService) ReplaceLines(ctx context.Context, clinicID, id uuid.UUID, req ReplaceLinesRequest) (*ServiceResponse, error) {
	service, err := s.serviceRepo.FindWithLines(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}

	consumables := make([]catalog.ServiceConsumable, len(req.Consumables))
	for i, line := range req.Consumables {
		if _, err := s.consumableRepo.FindByIDForClinic(ctx, clinicID, line.ConsumableID); err != nil {
			return nil, referenceError(err, "INVALID_CONSUMABLE", "Referenced consumable not found")
		}
		consumables[i] = catalog.ServiceConsumable{
			ConsumableID:    line.ConsumableID,
			Quantity:        decimal.NewFromFloat(line.Quantity),
			CustomUnitPrice: optionalMoney(line.CustomUnitPrice),
		}
	}

	materials := make([]catalog.ServiceMaterial, len(req.Materials))
	for i, line := range req.Materials {
		if _, err := s.materialRepo.FindByIDForClinic(ctx, clinicID, line.MaterialID); err != nil {
			return nil, referenceError(err, "INVALID_MATERIAL", "Referenced lab material not found")
		}
		materials[i] = catalog.ServiceMaterial{
			MaterialID:      line.MaterialID,
			Quantity:        decimal.NewFromFloat(line.Quantity),
			CustomUnitPrice: optionalMoney(line.CustomUnitPrice),
		}
	}

	equipment := make([]catalog.ServiceEquipment, len(req.Equipment))
	for i, line := range req.Equipment {
		if _, err := s.equipmentRepo.FindByIDForClinic(ctx, clinicID, line.EquipmentID); err != nil {
			return nil, referenceError(err, "INVALID_EQUIPMENT", "Referenced equipment not found")
		}
		equipment[i] = catalog.ServiceEquipment{
			EquipmentID: line.EquipmentID,
			HoursUsed:   decimal.NewFromFloat(line.HoursUsed),
		}
	}

	if err := service.ReplaceConsumables(consumables); err != nil {
		return nil, err
	}
	if err := service.ReplaceMaterials(materials); err != nil {
		return nil, err
	}
	if err := service.ReplaceEquipment(equipment); err != nil {
		return nil, err
	}

	if err := s.serviceRepo.Save(ctx, service); err != nil {
		return nil, err
	}
	return ToServiceResponse(service), nil
}

// Delete removes a service and its line rows
func (s *ServiceService) Delete(ctx context.Context, clinicID, id uuid.UUID) error {
	if _, err := s.serviceRepo.FindByIDForClinic(ctx, clinicID, id); err != nil {
		return err
	}
	return s.serviceRepo.Delete(ctx, id)
}

func (s *ServiceService) checkCategory(ctx context.Context, clinicID, categoryID uuid.UUID) error {
	if _, err := s.categoryRepo.FindByIDForClinic(ctx, clinicID, categoryID); err != nil {
		return referenceError(err, "INVALID_CATEGORY", "Category not found")
	}
	return nil
}

// referenceError turns a not-found lookup into a domain error naming the
// broken reference; any other failure passes through untouched.
func referenceError(err error, code, message string) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError(code, message)
	}
	return err
}

func optionalMoney(value *float64) *valueobject.Money {
	if value == nil {
		return nil
	}
	money := valueobject.NewMoneyEGPFromFloat(*value)
	return &money
}
