package get_available_slots

import (
	"time"

	"github.com/avkorn/ABS-AppointmentService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BusinessID int64     // ID бизнеса
	ServiceID  int64     // ID услуги
	Date       time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов
// Слоты упорядочены по метке времени; один и тот же момент может
// встретиться несколько раз для разных сотрудников
type Response struct {
	Date       time.Time
	BusinessID int64
	ServiceID  int64
	Slots      []domain.TimeSlot
}
