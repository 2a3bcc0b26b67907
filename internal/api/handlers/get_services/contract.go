package get_services

import (
	"context"

	"github.com/avkorn/ABS-AppointmentService/internal/service/catalog/models"
)

type CatalogService interface {
	List(ctx context.Context, businessID int64, activeOnly bool) (*models.ServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
