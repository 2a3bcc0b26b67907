package create_appointment

import (
	"time"

	"github.com/avkorn/ABS-AppointmentService/internal/domain"
	createAppointment "github.com/avkorn/ABS-AppointmentService/internal/usecase/create_appointment"
	"github.com/avkorn/ABS-AppointmentService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	BusinessID int64  `json:"businessId"`
	ServiceID  int64  `json:"serviceId"`
	EmployeeID int64  `json:"employeeId"`
	Date       string `json:"date"`      // "2026-03-15"
	StartTime  string `json:"startTime"` // "HH:MM"

	Customer CustomerPayload `json:"customer"`
	Notes    *string         `json:"notes,omitempty"`
}

// CustomerPayload данные клиента при бронировании
type CustomerPayload struct {
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		BusinessID:    r.BusinessID,
		ServiceID:     r.ServiceID,
		EmployeeID:    r.EmployeeID,
		Date:          date,
		StartTime:     startTime,
		CustomerName:  r.Customer.Name,
		CustomerPhone: r.Customer.Phone,
		CustomerEmail: r.Customer.Email,
		Notes:         r.Notes,
	}, nil
}

// AppointmentCreatedResponse HTTP response model
type AppointmentCreatedResponse struct {
	ID              int64   `json:"id"`
	BusinessID      int64   `json:"businessId"`
	ServiceID       int64   `json:"serviceId"`
	EmployeeID      int64   `json:"employeeId"`
	CustomerID      int64   `json:"customerId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentCreatedResponse {
	appt := resp.Appointment
	return &AppointmentCreatedResponse{
		ID:              appt.ID,
		BusinessID:      appt.BusinessID,
		ServiceID:       appt.ServiceID,
		EmployeeID:      appt.EmployeeID,
		CustomerID:      appt.CustomerID,
		Date:            appt.Date.Format(domain.DateFormat),
		StartTime:       appt.StartTime.String(),
		DurationMinutes: appt.DurationMinutes,
		Status:          string(appt.Status),
		ServiceName:     appt.ServiceName,
		ServicePrice:    appt.ServicePrice,
	}
}
