package models

import (
	"errors"
	"time"

	"github.com/avkorn/ABS-AppointmentService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	CancelledByBusiness bool   `json:"cancelledByBusiness"`
	CancellationReason  string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса записи
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// GetBusinessAppointmentsRequest запрос на получение записей бизнеса
type GetBusinessAppointmentsRequest struct {
	BusinessID      int64      `json:"businessId"`
	EmployeeID      *int64     `json:"employeeId,omitempty"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBusinessAppointmentsRequest) ToDomainFilter() (domain.BusinessAppointmentsFilter, error) {
	filter := domain.BusinessAppointmentsFilter{
		BusinessID:      r.BusinessID,
		EmployeeID:      r.EmployeeID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	BusinessID      int64  `json:"businessId"`
	ServiceID       int64  `json:"serviceId"`
	EmployeeID      int64  `json:"employeeId"`
	CustomerID      int64  `json:"customerId"`
	Date            string `json:"date"`      // "2026-03-15"
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`

	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`

	// Заполняется только в детальном ответе
	Customer *CustomerInfo `json:"customer,omitempty"`

	CreatedAt string `json:"createdAt"`
}

// CustomerInfo данные клиента в детальном ответе по записи
type CustomerInfo struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email,omitempty"`
}

// FromDomainCustomer конвертирует domain модель клиента
func FromDomainCustomer(c *domain.Customer) *CustomerInfo {
	return &CustomerInfo{
		ID:    c.ID,
		Name:  c.Name,
		Phone: c.Phone,
		Email: c.Email,
	}
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// DashboardStatsResponse сводная статистика для панели бизнеса
type DashboardStatsResponse struct {
	AppointmentsToday    int `json:"appointmentsToday"`
	AppointmentsThisWeek int `json:"appointmentsThisWeek"`
	ActiveServices       int `json:"activeServices"`
	ActiveEmployees      int `json:"activeEmployees"`
}

// FromDomainAppointment конвертирует domain модель в response
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:                 a.ID,
		BusinessID:         a.BusinessID,
		ServiceID:          a.ServiceID,
		EmployeeID:         a.EmployeeID,
		CustomerID:         a.CustomerID,
		Date:               a.Date.Format(domain.DateFormat),
		StartTime:          a.StartTime.String(),
		DurationMinutes:    a.DurationMinutes,
		Status:             string(a.Status),
		ServiceName:        a.ServiceName,
		ServicePrice:       a.ServicePrice,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt.Format(time.RFC3339),
	}

	if a.CancelledAt != nil {
		cancelledAt := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в response
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	result := make([]AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		result = append(result, *FromDomainAppointment(a))
	}
	return &AppointmentListResponse{Appointments: result}
}

// FromDomainStats конвертирует domain статистику в response
func FromDomainStats(s *domain.DashboardStats) *DashboardStatsResponse {
	return &DashboardStatsResponse{
		AppointmentsToday:    s.AppointmentsToday,
		AppointmentsThisWeek: s.AppointmentsThisWeek,
		ActiveServices:       s.ActiveServices,
		ActiveEmployees:      s.ActiveEmployees,
	}
}

// ToDomainAppointmentStatus конвертирует строку в domain статус
func ToDomainAppointmentStatus(s string) (domain.AppointmentStatus, error) {
	switch domain.AppointmentStatus(s) {
	case domain.StatusScheduled,
		domain.StatusCompleted,
		domain.StatusCancelledByCustomer,
		domain.StatusCancelledByBusiness,
		domain.StatusNoShow:
		return domain.AppointmentStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
