package delete_employee

import "context"

type StaffService interface {
	DeleteEmployee(ctx context.Context, businessID, employeeID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
