package create_employee

import (
	"github.com/avkorn/ABS-AppointmentService/internal/service/staff/models"
)

// CreateEmployeeRequest HTTP request model
type CreateEmployeeRequest struct {
	DisplayName string `json:"displayName"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateEmployeeRequest) ToServiceRequest(businessID int64) *models.CreateEmployeeRequest {
	return &models.CreateEmployeeRequest{
		BusinessID:  businessID,
		DisplayName: r.DisplayName,
	}
}
