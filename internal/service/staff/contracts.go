package staff

import (
	"context"

	"github.com/avkorn/ABS-AppointmentService/internal/domain"
)

// EmployeeRepository интерфейс репозитория сотрудников
type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, employee *domain.Employee) (*domain.Employee, error)
	GetEmployee(ctx context.Context, businessID, employeeID int64) (*domain.Employee, error)
	GetEmployees(ctx context.Context, businessID int64, activeOnly bool) ([]*domain.Employee, error)
	UpdateEmployee(ctx context.Context, employee *domain.Employee) error
	DeleteEmployee(ctx context.Context, businessID, employeeID int64) error
	ReplaceSchedule(ctx context.Context, employeeID int64, windows []domain.ScheduleWindow) error
	ReplaceServiceLinks(ctx context.Context, employeeID int64, serviceIDs []int64) error
}

// ServiceRepository интерфейс репозитория услуг
// Нужен для проверки принадлежности услуг бизнесу при назначении сотруднику
type ServiceRepository interface {
	GetByID(ctx context.Context, businessID, serviceID int64) (*domain.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
// Замена расписания и набора услуг идет как delete + insert и должна быть атомарной
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
