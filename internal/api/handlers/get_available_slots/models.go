package get_available_slots

import (
	"time"

	"github.com/avkorn/ABS-AppointmentService/internal/domain"
	getAvailableSlots "github.com/avkorn/ABS-AppointmentService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date       string          `json:"date"`
	BusinessID int64           `json:"businessId"`
	ServiceID  int64           `json:"serviceId"`
	Slots      []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Time         string `json:"time"` // "HH:MM"
	Available    bool   `json:"available"`
	EmployeeID   int64  `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Time:         slot.Time.String(),
			Available:    slot.Available,
			EmployeeID:   slot.EmployeeID,
			EmployeeName: slot.EmployeeName,
		}
	}

	return &AvailableSlotsResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		BusinessID: resp.BusinessID,
		ServiceID:  resp.ServiceID,
		Slots:      slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров маршрута
func ToUseCaseRequest(businessID, serviceID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		BusinessID: businessID,
		ServiceID:  serviceID,
		Date:       date,
	}, nil
}
