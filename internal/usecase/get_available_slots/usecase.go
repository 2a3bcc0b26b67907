package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/avkorn/ABS-AppointmentService/internal/domain"
	catalogRepo "github.com/avkorn/ABS-AppointmentService/internal/infra/storage/catalog"
	"github.com/avkorn/ABS-AppointmentService/pkg/weekday"
)

// UseCase use case для получения доступных слотов для записи
//
// Две кооперирующие части: резолвер доступности (какие сотрудники могут
// выполнить услугу и в каких окнах они доступны в этот день недели) и
// генератор слотов (разворачивание окон в дискретные слоты с фильтрацией
// прошедших и занятых). Состояние между вызовами не сохраняется - повторный
// запрос с теми же данными дает тот же результат.
type UseCase struct {
	catalogRepo     CatalogRepository
	staffRepo       StaffRepository
	appointmentRepo AppointmentRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	staffRepo StaffRepository,
	appointmentRepo AppointmentRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:     catalogRepo,
		staffRepo:       staffRepo,
		appointmentRepo: appointmentRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%d, service=%d, date=%s",
		req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу
	service, err := uc.catalogRepo.GetByID(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found in business id=%d",
				req.ServiceID, req.BusinessID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.HasValidDuration() {
		uc.logger.Error("GetAvailableSlots: service id=%d has invalid duration %d",
			service.ID, service.DurationMinutes)
		return nil, ErrInvalidServiceDuration
	}

	// Выключенная услуга слотов не дает - это легитимный пустой результат,
	// а не ошибка: UI мог запросить слоты по устаревшему списку услуг
	if !service.Active {
		uc.logger.Info("GetAvailableSlots: service id=%d is inactive", service.ID)
		return uc.emptyResponse(req), nil
	}

	// 4. Резолвим доступность: окна сотрудников на этот день недели,
	// отфильтрованные по возможности выполнить услугу
	dayIndex := weekday.FromDate(req.Date)

	rows, err := uc.staffRepo.GetAvailabilityWithEmployees(ctx, req.BusinessID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	eligible := resolveEligibleAvailability(rows, req.ServiceID, dayIndex, uc.logger)
	if len(eligible) == 0 {
		uc.logger.Info("GetAvailableSlots: no eligible staff for service=%d on day=%d",
			req.ServiceID, dayIndex)
		return uc.emptyResponse(req), nil
	}

	// 5. Получаем занятые слоты: все активные записи бизнеса на эту дату
	filter := domain.BusinessAppointmentsFilter{
		BusinessID:      req.BusinessID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false,
	}

	appointments, err := uc.appointmentRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 6. Генерируем слоты
	slots := generateTimeSlots(req.Date, service, eligible, bookedTimeSet(appointments), now, uc.logger)

	uc.logger.Info("GetAvailableSlots: generated %d slots for business=%d, service=%d, date=%s",
		len(slots), req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:       req.Date,
		BusinessID: req.BusinessID,
		ServiceID:  req.ServiceID,
		Slots:      slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request) *Response {
	return &Response{
		Date:       req.Date,
		BusinessID: req.BusinessID,
		ServiceID:  req.ServiceID,
		Slots:      []domain.TimeSlot{},
	}
}
