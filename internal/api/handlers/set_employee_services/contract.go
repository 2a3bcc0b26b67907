package set_employee_services

import (
	"context"

	"github.com/avkorn/ABS-AppointmentService/internal/service/staff/models"
)

type StaffService interface {
	SetServices(ctx context.Context, businessID, employeeID int64, req *models.SetServicesRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
