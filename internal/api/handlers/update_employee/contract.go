package update_employee

import (
	"context"

	"github.com/avkorn/ABS-AppointmentService/internal/service/staff/models"
)

type StaffService interface {
	UpdateEmployee(ctx context.Context, businessID, employeeID int64, req *models.UpdateEmployeeRequest) (*models.EmployeeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
