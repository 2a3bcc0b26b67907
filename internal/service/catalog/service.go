package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avkorn/ABS-AppointmentService/internal/domain"
	serviceRepo "github.com/avkorn/ABS-AppointmentService/internal/infra/storage/catalog"
	"github.com/avkorn/ABS-AppointmentService/internal/service/catalog/models"
)

// Service сервис для управления каталогом услуг бизнеса
type Service struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// Create создает новую услугу
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service %q for business=%d", req.Name, req.BusinessID)

	if err := validateServiceFields(req.Name, req.DurationMinutes, req.Price); err != nil {
		s.logger.Warn("Create: validation failed for business=%d: %v", req.BusinessID, err)
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, &domain.Service{
		BusinessID:      req.BusinessID,
		Name:            strings.TrimSpace(req.Name),
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Active:          true,
	})
	if err != nil {
		s.logger.Error("Create: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created service id=%d for business=%d", created.ID, req.BusinessID)
	return models.FromDomainService(created), nil
}

// GetByID получает услугу бизнеса по ID
func (s *Service) GetByID(ctx context.Context, businessID, serviceID int64) (*models.ServiceResponse, error) {
	service, err := s.serviceRepo.GetByID(ctx, businessID, serviceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("GetByID: service id=%d not found in business=%d", serviceID, businessID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetByID: repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(service), nil
}

// List получает список услуг бизнеса
// activeOnly оставляет только активные услуги - вариант для клиентской выдачи
func (s *Service) List(ctx context.Context, businessID int64, activeOnly bool) (*models.ServiceListResponse, error) {
	services, err := s.serviceRepo.GetByBusiness(ctx, businessID, activeOnly)
	if err != nil {
		s.logger.Error("List: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d services for business=%d", len(services), businessID)
	return models.FromDomainServiceList(services), nil
}

// Update обновляет услугу частично: nil-поля запроса не меняются
func (s *Service) Update(ctx context.Context, businessID, serviceID int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d for business=%d", serviceID, businessID)

	service, err := s.serviceRepo.GetByID(ctx, businessID, serviceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%d not found in business=%d", serviceID, businessID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		service.Price = req.Price
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := validateServiceFields(service.Name, service.DurationMinutes, service.Price); err != nil {
		s.logger.Warn("Update: validation failed for service id=%d: %v", serviceID, err)
		return nil, err
	}

	if err := s.serviceRepo.Update(ctx, service); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: updated service id=%d for business=%d", serviceID, businessID)
	return models.FromDomainService(service), nil
}

// Delete удаляет услугу
// История записей не страдает: записи хранят денормализованные имя и цену услуги
func (s *Service) Delete(ctx context.Context, businessID, serviceID int64) error {
	s.logger.Info("Delete: deleting service id=%d for business=%d", serviceID, businessID)

	if err := s.serviceRepo.Delete(ctx, businessID, serviceID); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("Delete: service id=%d not found in business=%d", serviceID, businessID)
			return ErrServiceNotFound
		}
		s.logger.Error("Delete: repository error for service id=%d: %v", serviceID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted service id=%d for business=%d", serviceID, businessID)
	return nil
}

// validateServiceFields проверяет бизнес-ограничения полей услуги
func validateServiceFields(name string, durationMinutes int, price *float64) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}

	if durationMinutes < domain.MinServiceDurationMinutes || durationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}

	if price != nil && *price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	return nil
}
