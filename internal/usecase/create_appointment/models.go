package create_appointment

import (
	"time"

	"github.com/avkorn/ABS-AppointmentService/internal/domain"
	"github.com/avkorn/ABS-AppointmentService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	BusinessID int64
	ServiceID  int64
	EmployeeID int64

	Date      time.Time        // дата записи (без времени)
	StartTime types.TimeString // время начала слота, "HH:MM"

	CustomerName  string
	CustomerPhone string
	CustomerEmail *string

	Notes *string
}

// Response модель ответа с созданной записью
type Response struct {
	Appointment *domain.Appointment
	Customer    *domain.Customer
}
