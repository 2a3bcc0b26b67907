package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avkorn/ABS-AppointmentService/internal/domain"
	appointmentRepo "github.com/avkorn/ABS-AppointmentService/internal/infra/storage/appointment"
	"github.com/avkorn/ABS-AppointmentService/internal/service/appointments/models"
)

// Service сервис для работы с записями: просмотр, отмена, смена статуса
// и сводная статистика панели бизнеса
type Service struct {
	appointmentRepo AppointmentRepository
	customerRepo    CustomerRepository
	serviceCounter  ServiceCounter
	employeeCounter EmployeeCounter
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	customerRepo CustomerRepository,
	serviceCounter ServiceCounter,
	employeeCounter EmployeeCounter,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		customerRepo:    customerRepo,
		serviceCounter:  serviceCounter,
		employeeCounter: employeeCounter,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает запись бизнеса по ID
// Запись чужого бизнеса не раскрывается - возвращается not found
func (s *Service) GetByID(ctx context.Context, businessID, appointmentID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for business=%d", appointmentID, businessID)

	appt, err := s.getScoped(ctx, businessID, appointmentID)
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainAppointment(appt)

	// Клиент подтягивается только в детальный ответ - списки без него,
	// чтобы не плодить запросы на каждую строку
	customer, err := s.customerRepo.GetByID(ctx, appt.CustomerID)
	if err != nil {
		s.logger.Warn("GetByID: failed to get customer id=%d for appointment id=%d: %v",
			appt.CustomerID, appointmentID, err)
	} else {
		resp.Customer = models.FromDomainCustomer(customer)
	}

	return resp, nil
}

// List получает записи бизнеса с гибкой фильтрацией
// по сотруднику, периоду и статусу
func (s *Service) List(ctx context.Context, req *models.GetBusinessAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments for business=%d", req.BusinessID)

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		s.logger.Warn("List: invalid period for business=%d", req.BusinessID)
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d appointments for business=%d", len(appointments), req.BusinessID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись
// Отменить можно только запись в статусе scheduled; слот при отмене
// освобождается и снова появляется в выдаче доступных слотов
func (s *Service) Cancel(ctx context.Context, businessID, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d for business=%d", appointmentID, businessID)

	appt, err := s.getScoped(ctx, businessID, appointmentID)
	if err != nil {
		return err
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appt.Status)
		return ErrCannotCancel
	}

	cancelStatus := domain.StatusCancelledByCustomer
	if req.CancelledByBusiness {
		cancelStatus = domain.StatusCancelledByBusiness
	}

	if err := s.appointmentRepo.Cancel(ctx, appointmentID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: cancelled appointment id=%d with status=%s", appointmentID, cancelStatus)
	return nil
}

// UpdateStatus обновляет статус записи
// Отмена идет только через Cancel - там фиксируются причина и время отмены
func (s *Service) UpdateStatus(ctx context.Context, businessID, appointmentID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s", appointmentID, req.Status)

	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, appointmentID)
		return ErrInvalidStatus
	}

	if newStatus == domain.StatusCancelledByCustomer || newStatus == domain.StatusCancelledByBusiness {
		s.logger.Warn("UpdateStatus: cancellation of appointment id=%d must go through Cancel", appointmentID)
		return ErrInvalidStatus
	}

	if _, err := s.getScoped(ctx, businessID, appointmentID); err != nil {
		return err
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, newStatus); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: updated appointment id=%d to status=%s", appointmentID, newStatus)
	return nil
}

// DashboardStats собирает сводную статистику панели бизнеса:
// записи на сегодня, записи на текущую неделю (с понедельника),
// количество активных услуг и сотрудников
func (s *Service) DashboardStats(ctx context.Context, businessID int64) (*models.DashboardStatsResponse, error) {
	s.logger.Info("DashboardStats: collecting stats for business=%d", businessID)

	now := s.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart, weekEnd := weekBounds(today)

	todayCount, err := s.appointmentRepo.CountActiveInRange(ctx, businessID, today, today)
	if err != nil {
		s.logger.Error("DashboardStats: failed to count today appointments for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: DashboardStats - repository error: %v", ErrInternal, err)
	}

	weekCount, err := s.appointmentRepo.CountActiveInRange(ctx, businessID, weekStart, weekEnd)
	if err != nil {
		s.logger.Error("DashboardStats: failed to count week appointments for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: DashboardStats - repository error: %v", ErrInternal, err)
	}

	activeServices, err := s.serviceCounter.CountActive(ctx, businessID)
	if err != nil {
		s.logger.Error("DashboardStats: failed to count services for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: DashboardStats - repository error: %v", ErrInternal, err)
	}

	activeEmployees, err := s.employeeCounter.CountActive(ctx, businessID)
	if err != nil {
		s.logger.Error("DashboardStats: failed to count employees for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: DashboardStats - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStats(&domain.DashboardStats{
		AppointmentsToday:    todayCount,
		AppointmentsThisWeek: weekCount,
		ActiveServices:       activeServices,
		ActiveEmployees:      activeEmployees,
	}), nil
}

// getScoped получает запись и проверяет принадлежность бизнесу
func (s *Service) getScoped(ctx context.Context, businessID, appointmentID int64) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("getScoped: appointment id=%d not found", appointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("getScoped: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if appt.BusinessID != businessID {
		s.logger.Warn("getScoped: appointment id=%d belongs to another business", appointmentID)
		return nil, ErrAppointmentNotFound
	}

	return appt, nil
}

// weekBounds возвращает понедельник и воскресенье недели, содержащей date
func weekBounds(date time.Time) (time.Time, time.Time) {
	offset := (int(date.Weekday()) + 6) % 7
	weekStart := date.AddDate(0, 0, -offset)
	return weekStart, weekStart.AddDate(0, 0, 6)
}
