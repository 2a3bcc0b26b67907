package get_employees

import (
	"context"

	"github.com/avkorn/ABS-AppointmentService/internal/service/staff/models"
)

type StaffService interface {
	ListEmployees(ctx context.Context, businessID int64, activeOnly bool) (*models.EmployeeListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
