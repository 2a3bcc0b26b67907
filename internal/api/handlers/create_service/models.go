package create_service

import (
	"github.com/avkorn/ABS-AppointmentService/internal/service/catalog/models"
)

// CreateServiceRequest HTTP request model
type CreateServiceRequest struct {
	Name            string   `json:"name"`
	DurationMinutes int      `json:"durationMinutes"`
	Price           *float64 `json:"price,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateServiceRequest) ToServiceRequest(businessID int64) *models.CreateServiceRequest {
	return &models.CreateServiceRequest{
		BusinessID:      businessID,
		Name:            r.Name,
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price,
	}
}
