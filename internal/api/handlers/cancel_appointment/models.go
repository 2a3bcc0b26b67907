package cancel_appointment

import (
	"github.com/avkorn/ABS-AppointmentService/internal/service/appointments/models"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	CancelledByBusiness bool    `json:"cancelledByBusiness"`
	CancellationReason  *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelAppointmentRequest) ToServiceRequest() *models.CancelAppointmentRequest {
	reason := ""
	if r.CancellationReason != nil {
		reason = *r.CancellationReason
	}

	return &models.CancelAppointmentRequest{
		CancelledByBusiness: r.CancelledByBusiness,
		CancellationReason:  reason,
	}
}
