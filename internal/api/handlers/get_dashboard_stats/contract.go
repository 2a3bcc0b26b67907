package get_dashboard_stats

import (
	"context"

	"github.com/avkorn/ABS-AppointmentService/internal/service/appointments/models"
)

type AppointmentService interface {
	DashboardStats(ctx context.Context, businessID int64) (*models.DashboardStatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
