package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avkorn/ABS-AppointmentService/internal/domain"
	catalogRepo "github.com/avkorn/ABS-AppointmentService/internal/infra/storage/catalog"
	staffRepo "github.com/avkorn/ABS-AppointmentService/internal/infra/storage/staff"
	"github.com/avkorn/ABS-AppointmentService/internal/service/staff/models"
	"github.com/avkorn/ABS-AppointmentService/pkg/types"
	"github.com/avkorn/ABS-AppointmentService/pkg/weekday"
)

// Service сервис для управления сотрудниками, их расписанием и набором услуг
type Service struct {
	employeeRepo EmployeeRepository
	serviceRepo  ServiceRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса сотрудников
func NewService(
	employeeRepo EmployeeRepository,
	serviceRepo ServiceRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		employeeRepo: employeeRepo,
		serviceRepo:  serviceRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// CreateEmployee создает нового сотрудника
func (s *Service) CreateEmployee(ctx context.Context, req *models.CreateEmployeeRequest) (*models.EmployeeResponse, error) {
	s.logger.Info("CreateEmployee: creating employee %q for business=%d", req.DisplayName, req.BusinessID)

	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		return nil, fmt.Errorf("%w: displayName is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxEmployeeNameLength {
		return nil, fmt.Errorf("%w: displayName is too long", ErrInvalidInput)
	}

	created, err := s.employeeRepo.CreateEmployee(ctx, &domain.Employee{
		BusinessID:  req.BusinessID,
		DisplayName: name,
		Active:      true,
	})
	if err != nil {
		s.logger.Error("CreateEmployee: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: CreateEmployee - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateEmployee: created employee id=%d for business=%d", created.ID, req.BusinessID)
	return models.FromDomainEmployee(created), nil
}

// GetEmployee получает сотрудника бизнеса по ID
func (s *Service) GetEmployee(ctx context.Context, businessID, employeeID int64) (*models.EmployeeResponse, error) {
	employee, err := s.employeeRepo.GetEmployee(ctx, businessID, employeeID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrEmployeeNotFound) {
			s.logger.Warn("GetEmployee: employee id=%d not found in business=%d", employeeID, businessID)
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("GetEmployee: repository error for employee id=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: GetEmployee - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEmployee(employee), nil
}

// ListEmployees получает список сотрудников бизнеса
func (s *Service) ListEmployees(ctx context.Context, businessID int64, activeOnly bool) (*models.EmployeeListResponse, error) {
	employees, err := s.employeeRepo.GetEmployees(ctx, businessID, activeOnly)
	if err != nil {
		s.logger.Error("ListEmployees: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: ListEmployees - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListEmployees: fetched %d employees for business=%d", len(employees), businessID)
	return models.FromDomainEmployeeList(employees), nil
}

// UpdateEmployee обновляет сотрудника частично: nil-поля запроса не меняются
func (s *Service) UpdateEmployee(ctx context.Context, businessID, employeeID int64, req *models.UpdateEmployeeRequest) (*models.EmployeeResponse, error) {
	s.logger.Info("UpdateEmployee: updating employee id=%d for business=%d", employeeID, businessID)

	employee, err := s.employeeRepo.GetEmployee(ctx, businessID, employeeID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrEmployeeNotFound) {
			s.logger.Warn("UpdateEmployee: employee id=%d not found in business=%d", employeeID, businessID)
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("UpdateEmployee: repository error for employee id=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: UpdateEmployee - repository error: %v", ErrInternal, err)
	}

	if req.DisplayName != nil {
		name := strings.TrimSpace(*req.DisplayName)
		if name == "" {
			return nil, fmt.Errorf("%w: displayName is required", ErrInvalidInput)
		}
		if len(name) > domain.MaxEmployeeNameLength {
			return nil, fmt.Errorf("%w: displayName is too long", ErrInvalidInput)
		}
		employee.DisplayName = name
	}
	if req.Active != nil {
		employee.Active = *req.Active
	}

	if err := s.employeeRepo.UpdateEmployee(ctx, employee); err != nil {
		if errors.Is(err, staffRepo.ErrEmployeeNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("UpdateEmployee: repository error for employee id=%d: %v", employeeID, err)
		return nil, fmt.Errorf("%w: UpdateEmployee - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateEmployee: updated employee id=%d for business=%d", employeeID, businessID)
	return models.FromDomainEmployee(employee), nil
}

// DeleteEmployee удаляет сотрудника
// Окна доступности и связи с услугами удаляются каскадно на уровне схемы БД
func (s *Service) DeleteEmployee(ctx context.Context, businessID, employeeID int64) error {
	s.logger.Info("DeleteEmployee: deleting employee id=%d for business=%d", employeeID, businessID)

	if err := s.employeeRepo.DeleteEmployee(ctx, businessID, employeeID); err != nil {
		if errors.Is(err, staffRepo.ErrEmployeeNotFound) {
			s.logger.Warn("DeleteEmployee: employee id=%d not found in business=%d", employeeID, businessID)
			return ErrEmployeeNotFound
		}
		s.logger.Error("DeleteEmployee: repository error for employee id=%d: %v", employeeID, err)
		return fmt.Errorf("%w: DeleteEmployee - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteEmployee: deleted employee id=%d for business=%d", employeeID, businessID)
	return nil
}

// SetSchedule заменяет недельное расписание сотрудника целиком
//
// День недели канонизируется при записи в индекс "0".."6" - смешанные
// кодировки остаются только в исторических данных, новые строки пишутся
// единообразно. Время хранится как "HH:MM:SS".
func (s *Service) SetSchedule(ctx context.Context, businessID, employeeID int64, req *models.SetScheduleRequest) error {
	s.logger.Info("SetSchedule: replacing schedule for employee id=%d, business=%d, windows=%d",
		employeeID, businessID, len(req.Windows))

	if _, err := s.employeeRepo.GetEmployee(ctx, businessID, employeeID); err != nil {
		if errors.Is(err, staffRepo.ErrEmployeeNotFound) {
			return ErrEmployeeNotFound
		}
		s.logger.Error("SetSchedule: repository error for employee id=%d: %v", employeeID, err)
		return fmt.Errorf("%w: SetSchedule - repository error: %v", ErrInternal, err)
	}

	windows, err := buildScheduleWindows(req.Windows)
	if err != nil {
		s.logger.Warn("SetSchedule: invalid schedule for employee id=%d: %v", employeeID, err)
		return err
	}

	txErr := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.employeeRepo.ReplaceSchedule(txCtx, employeeID, windows)
	})
	if txErr != nil {
		s.logger.Error("SetSchedule: transaction failed for employee id=%d: %v", employeeID, txErr)
		return fmt.Errorf("%w: SetSchedule - transaction failed: %v", ErrInternal, txErr)
	}

	s.logger.Info("SetSchedule: replaced schedule for employee id=%d with %d windows", employeeID, len(windows))
	return nil
}

// SetServices заменяет набор услуг сотрудника целиком
// Каждая услуга проверяется на принадлежность бизнесу
func (s *Service) SetServices(ctx context.Context, businessID, employeeID int64, req *models.SetServicesRequest) error {
	s.logger.Info("SetServices: replacing services for employee id=%d, business=%d, services=%d",
		employeeID, businessID, len(req.ServiceIDs))

	if _, err := s.employeeRepo.GetEmployee(ctx, businessID, employeeID); err != nil {
		if errors.Is(err, staffRepo.ErrEmployeeNotFound) {
			return ErrEmployeeNotFound
		}
		s.logger.Error("SetServices: repository error for employee id=%d: %v", employeeID, err)
		return fmt.Errorf("%w: SetServices - repository error: %v", ErrInternal, err)
	}

	seen := make(map[int64]struct{}, len(req.ServiceIDs))
	serviceIDs := make([]int64, 0, len(req.ServiceIDs))
	for _, id := range req.ServiceIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if _, err := s.serviceRepo.GetByID(ctx, businessID, id); err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				s.logger.Warn("SetServices: service id=%d not found in business=%d", id, businessID)
				return fmt.Errorf("%w: service id=%d", ErrServiceNotFound, id)
			}
			s.logger.Error("SetServices: repository error for service id=%d: %v", id, err)
			return fmt.Errorf("%w: SetServices - repository error: %v", ErrInternal, err)
		}

		serviceIDs = append(serviceIDs, id)
	}

	txErr := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.employeeRepo.ReplaceServiceLinks(txCtx, employeeID, serviceIDs)
	})
	if txErr != nil {
		s.logger.Error("SetServices: transaction failed for employee id=%d: %v", employeeID, txErr)
		return fmt.Errorf("%w: SetServices - transaction failed: %v", ErrInternal, txErr)
	}

	s.logger.Info("SetServices: replaced services for employee id=%d with %d links", employeeID, len(serviceIDs))
	return nil
}

// buildScheduleWindows валидирует и канонизирует окна недельного расписания
func buildScheduleWindows(windows []models.ScheduleWindowRequest) ([]domain.ScheduleWindow, error) {
	result := make([]domain.ScheduleWindow, 0, len(windows))

	for i, w := range windows {
		day := weekday.Normalize(w.DayOfWeek)
		if !weekday.IsCanonical(day) {
			return nil, fmt.Errorf("%w: window %d: unrecognized dayOfWeek %q", ErrInvalidSchedule, i, w.DayOfWeek)
		}

		start, err := types.NewTimeStringFromString(w.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: window %d: startTime: %v", ErrInvalidSchedule, i, err)
		}

		end, err := types.NewTimeStringFromString(w.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: window %d: endTime: %v", ErrInvalidSchedule, i, err)
		}

		if !start.IsBefore(end) {
			return nil, fmt.Errorf("%w: window %d: startTime must be before endTime", ErrInvalidSchedule, i)
		}

		result = append(result, domain.ScheduleWindow{
			DayOfWeek: day,
			StartTime: types.FormatForStorage(start.String()),
			EndTime:   types.FormatForStorage(end.String()),
		})
	}

	return result, nil
}
