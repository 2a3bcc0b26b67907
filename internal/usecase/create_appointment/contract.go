package create_appointment

import (
	"context"
	"time"

	"github.com/avkorn/ABS-AppointmentService/internal/domain"
)

// CatalogRepository интерфейс для работы с услугами
type CatalogRepository interface {
	GetByID(ctx context.Context, businessID, serviceID int64) (*domain.Service, error)
}

// StaffRepository интерфейс для работы с сотрудниками и их доступностью
type StaffRepository interface {
	GetEmployee(ctx context.Context, businessID, employeeID int64) (*domain.Employee, error)
	GetAvailabilityWithEmployees(ctx context.Context, businessID int64) ([]*domain.AvailabilityWithEmployee, error)
}

// AppointmentRepository интерфейс для работы с записями
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessAppointmentsFilter) ([]*domain.Appointment, error)
}

// CustomerRepository интерфейс для работы с клиентами
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetByPhone(ctx context.Context, businessID int64, phone string) (*domain.Customer, error)
}

// TxManager интерфейс менеджера транзакций
// Подтверждение брони выполняется в сериализуемой транзакции: повторная
// проверка занятости и вставка записи становятся атомарными
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider с реальным временем
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
