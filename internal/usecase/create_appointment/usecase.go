package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avkorn/ABS-AppointmentService/internal/domain"
	catalogRepo "github.com/avkorn/ABS-AppointmentService/internal/infra/storage/catalog"
	customerRepo "github.com/avkorn/ABS-AppointmentService/internal/infra/storage/customer"
	staffRepo "github.com/avkorn/ABS-AppointmentService/internal/infra/storage/staff"
	"github.com/avkorn/ABS-AppointmentService/pkg/ptr"
)

// UseCase use case для создания записи на услугу
//
// Проверка доступности и вставка выполняются в одной сериализуемой
// транзакции с блокировкой записей дня (FOR UPDATE). Гонка двух
// одновременных бронирований одного слота разрешается на стороне БД:
// проигравшая транзакция получает ошибку и клиенту возвращается
// ErrSlotNotAvailable либо ошибка сериализации для повтора.
type UseCase struct {
	catalogRepo     CatalogRepository
	staffRepo       StaffRepository
	appointmentRepo AppointmentRepository
	customerRepo    CustomerRepository
	txManager       TxManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	staffRepo StaffRepository,
	appointmentRepo AppointmentRepository,
	customerRepo CustomerRepository,
	txManager TxManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:     catalogRepo,
		staffRepo:       staffRepo,
		appointmentRepo: appointmentRepo,
		customerRepo:    customerRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: business=%d, service=%d, employee=%d, date=%s, time=%s",
		req.BusinessID, req.ServiceID, req.EmployeeID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу
	service, err := uc.catalogRepo.GetByID(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.Active {
		uc.logger.Warn("CreateAppointment: service id=%d is inactive", service.ID)
		return nil, ErrServiceNotFound
	}

	if !service.HasValidDuration() {
		uc.logger.Error("CreateAppointment: service id=%d has invalid duration %d",
			service.ID, service.DurationMinutes)
		return nil, fmt.Errorf("%w: service has invalid duration", ErrInternal)
	}

	// 3. Получаем сотрудника
	employee, err := uc.staffRepo.GetEmployee(ctx, req.BusinessID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrEmployeeNotFound) {
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	if !employee.Active {
		uc.logger.Warn("CreateAppointment: employee id=%d is inactive", employee.ID)
		return nil, ErrEmployeeNotFound
	}

	// 4. Проверяем, что сотрудник выполняет услугу и запрошенный слот
	// попадает в его окно доступности в этот день недели
	if err := uc.checkEligibility(ctx, req, service.DurationMinutes); err != nil {
		return nil, err
	}

	// 5. Слот в прошлом недоступен
	slotMoment, err := req.StartTime.OnDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	if slotMoment.Before(uc.timeProvider.Now()) {
		uc.logger.Warn("CreateAppointment: slot %s %s is in the past",
			req.Date.Format(domain.DateFormat), req.StartTime)
		return nil, ErrSlotNotAvailable
	}

	// 6. Подтверждаем бронь: повторная проверка занятости и вставка
	// атомарны в рамках сериализуемой транзакции
	var appt *domain.Appointment
	var customer *domain.Customer

	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.ensureSlotFree(txCtx, req, service.DurationMinutes); err != nil {
			return err
		}

		customer, err = uc.findOrCreateCustomer(txCtx, req)
		if err != nil {
			return err
		}

		appt, err = uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			BusinessID:      req.BusinessID,
			ServiceID:       req.ServiceID,
			EmployeeID:      req.EmployeeID,
			CustomerID:      customer.ID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusScheduled,
			ServiceName:     service.Name,
			ServicePrice:    ptr.Deref(service.Price, 0),
			Notes:           req.Notes,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, ErrSlotNotAvailable) || errors.Is(txErr, ErrInternal) || errors.Is(txErr, ErrInvalidInput) {
			return nil, txErr
		}
		uc.logger.Error("CreateAppointment: transaction failed: %v", txErr)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, txErr)
	}

	uc.logger.Info("CreateAppointment: created appointment id=%d for business=%d, customer=%d",
		appt.ID, req.BusinessID, customer.ID)

	return &Response{Appointment: appt, Customer: customer}, nil
}

// checkEligibility проверяет, что сотрудник выполняет услугу и запрошенный
// интервал целиком помещается в одно из его окон доступности этого дня
func (uc *UseCase) checkEligibility(ctx context.Context, req *Request, durationMinutes int) error {
	rows, err := uc.staffRepo.GetAvailabilityWithEmployees(ctx, req.BusinessID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get availability: %v", err)
		return fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	eligible := eligibleWindowsFor(rows, req, durationMinutes, uc.logger)
	switch eligible {
	case eligibilityOK:
		return nil
	case eligibilityNoWindow:
		uc.logger.Warn("CreateAppointment: slot %s does not fit employee id=%d windows", req.StartTime, req.EmployeeID)
		return ErrSlotNotAvailable
	default:
		uc.logger.Warn("CreateAppointment: employee id=%d is not eligible for service id=%d", req.EmployeeID, req.ServiceID)
		return ErrEmployeeNotEligible
	}
}

// ensureSlotFree повторно проверяет занятость слота внутри транзакции
// Чтение записей дня идет с FOR UPDATE - конкурирующее бронирование
// того же дня будет ждать либо упадет на сериализации
func (uc *UseCase) ensureSlotFree(ctx context.Context, req *Request, durationMinutes int) error {
	filter := domain.BusinessAppointmentsFilter{
		BusinessID:      req.BusinessID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false,
	}

	appointments, err := uc.appointmentRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	reqStartMin, err := req.StartTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	reqEndMin := reqStartMin + durationMinutes

	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}

		// Совпадение метки "HH:MM" занимает слот для всех сотрудников -
		// так же считает занятость и выдача доступных слотов
		if appt.StartTime == req.StartTime {
			return ErrSlotNotAvailable
		}

		// Пересечение интервалов проверяем только для запрошенного сотрудника
		if appt.EmployeeID != req.EmployeeID {
			continue
		}

		apptStartMin, err := appt.StartTime.Minutes()
		if err != nil {
			continue
		}
		apptEndMin := apptStartMin + appt.DurationMinutes

		if reqStartMin < apptEndMin && apptStartMin < reqEndMin {
			return ErrSlotNotAvailable
		}
	}

	return nil
}

// findOrCreateCustomer ищет клиента бизнеса по телефону, создает при отсутствии
func (uc *UseCase) findOrCreateCustomer(ctx context.Context, req *Request) (*domain.Customer, error) {
	phone := strings.TrimSpace(req.CustomerPhone)

	customer, err := uc.customerRepo.GetByPhone(ctx, req.BusinessID, phone)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, customerRepo.ErrCustomerNotFound) {
		return nil, fmt.Errorf("%w: failed to find customer: %v", ErrInternal, err)
	}

	customer, err = uc.customerRepo.Create(ctx, &domain.Customer{
		BusinessID: req.BusinessID,
		Name:       strings.TrimSpace(req.CustomerName),
		Phone:      phone,
		Email:      req.CustomerEmail,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create customer: %v", ErrInternal, err)
	}

	return customer, nil
}
