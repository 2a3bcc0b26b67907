package domain

import "github.com/avkorn/ABS-AppointmentService/pkg/types"

// TimeSlot кандидат на запись: дискретный слот времени для пары (услуга, сотрудник)
// Не персистится - пересчитывается при каждом запросе доступных слотов
type TimeSlot struct {
	Time         types.TimeString // метка "HH:MM"
	Available    bool
	EmployeeID   int64
	EmployeeName string
}

// SlotKey ключ дедупликации слотов: один и тот же сотрудник не может дать
// два слота на одно время, но разные сотрудники на одно время - легитимны
type SlotKey struct {
	Time       types.TimeString
	EmployeeID int64
}

// Key возвращает ключ дедупликации слота
func (s *TimeSlot) Key() SlotKey {
	return SlotKey{Time: s.Time, EmployeeID: s.EmployeeID}
}
