package domain

import (
	"time"

	"github.com/avkorn/ABS-AppointmentService/pkg/types"
)

// AppointmentStatus статус записи на услугу
type AppointmentStatus string

const (
	StatusScheduled           AppointmentStatus = "scheduled"
	StatusCompleted           AppointmentStatus = "completed"
	StatusCancelledByCustomer AppointmentStatus = "cancelled_by_customer"
	StatusCancelledByBusiness AppointmentStatus = "cancelled_by_business"
	StatusNoShow              AppointmentStatus = "no_show"
)

// Appointment запись клиента на услугу
// Занимает пару (дата-время, сотрудник) и блокирует соответствующий слот
type Appointment struct {
	ID         int64
	BusinessID int64
	ServiceID  int64
	EmployeeID int64
	CustomerID int64

	Date            time.Time        // дата записи (без времени)
	StartTime       types.TimeString // время начала, "HH:MM"
	DurationMinutes int
	Status          AppointmentStatus

	// Денормализованные данные услуги для истории
	ServiceName  string
	ServicePrice float64

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если запись занимает слот
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelledByCustomer &&
		a.Status != StatusCancelledByBusiness &&
		a.Status != StatusNoShow
}

// CanBeCancelled возвращает true, если запись можно отменить
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusScheduled
}

// IsCancelled возвращает true, если запись отменена
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelledByCustomer || a.Status == StatusCancelledByBusiness
}

// BusinessAppointmentsFilter фильтр для выборки записей бизнеса
type BusinessAppointmentsFilter struct {
	BusinessID      int64              // Обязательный параметр
	EmployeeID      *int64             // Фильтр по сотруднику (опционально)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отмененные и no-show записи
}

// DashboardStats сводная статистика для панели бизнеса
type DashboardStats struct {
	AppointmentsToday    int
	AppointmentsThisWeek int
	ActiveServices       int
	ActiveEmployees      int
}
