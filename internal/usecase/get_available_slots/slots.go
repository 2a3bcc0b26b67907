package get_available_slots

import (
	"sort"
	"time"

	"github.com/avkorn/ABS-AppointmentService/internal/domain"
	"github.com/avkorn/ABS-AppointmentService/pkg/types"
)

// generateTimeSlots разворачивает окна доступности в дискретные слоты длительностью услуги
//
// Для каждого окна слоты идут от начала окна с шагом в длительность услуги;
// неполный хвостовой слот, не помещающийся до конца окна, не генерируется.
// Слот помечается недоступным, если его момент строго раньше now или его метка
// "HH:MM" присутствует в bookedTimes (сравнение занятости идет с точностью до
// минуты, секунды и смещения игнорируются - сетка расписания минутная).
//
// Окно с нераспарсиваемым временем пропускается целиком с предупреждением -
// одна битая строка не должна ронять всю генерацию.
//
// Результат детерминирован: дедупликация по ключу (время, сотрудник) и
// сортировка по метке времени, при равенстве - по ID сотрудника. Повторный
// вызов с теми же входными данными дает идентичный список.
func generateTimeSlots(
	date time.Time,
	service *domain.Service,
	eligible []*domain.AvailabilityWithEmployee,
	bookedTimes map[string]struct{},
	now time.Time,
	log Logger,
) []domain.TimeSlot {
	seen := make(map[domain.SlotKey]struct{})
	slots := make([]domain.TimeSlot, 0)

	for _, entry := range eligible {
		start, err := types.NewTimeStringFromString(entry.Availability.StartTime)
		if err != nil {
			log.Warn("generateTimeSlots: bad start_time %q in availability id=%d: %v",
				entry.Availability.StartTime, entry.Availability.ID, err)
			continue
		}

		end, err := types.NewTimeStringFromString(entry.Availability.EndTime)
		if err != nil {
			log.Warn("generateTimeSlots: bad end_time %q in availability id=%d: %v",
				entry.Availability.EndTime, entry.Availability.ID, err)
			continue
		}

		if !start.IsBefore(end) {
			log.Warn("generateTimeSlots: availability id=%d has start %s >= end %s, skipping",
				entry.Availability.ID, start, end)
			continue
		}

		for cursor := start; cursor.IsBefore(end); {
			slotEnd, err := cursor.AddMinutes(service.DurationMinutes)
			if err != nil {
				break
			}
			// AddMinutes заворачивает через полночь: конец, оказавшийся "раньше"
			// начала, означает выход за границу дня
			if slotEnd.IsAfter(end) || !slotEnd.IsAfter(cursor) {
				break
			}

			slot := domain.TimeSlot{
				Time:         cursor,
				Available:    isSlotAvailable(cursor, date, now, bookedTimes),
				EmployeeID:   entry.Employee.ID,
				EmployeeName: entry.Employee.DisplayName,
			}

			if _, dup := seen[slot.Key()]; !dup {
				seen[slot.Key()] = struct{}{}
				slots = append(slots, slot)
			}

			cursor = slotEnd
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Time != slots[j].Time {
			return slots[i].Time.IsBefore(slots[j].Time)
		}
		return slots[i].EmployeeID < slots[j].EmployeeID
	})

	return slots
}

// isSlotAvailable проверяет доступность слота: не в прошлом и не занят
// Занятость сравнивается по метке "HH:MM" независимо от сотрудника
func isSlotAvailable(slotTime types.TimeString, date, now time.Time, bookedTimes map[string]struct{}) bool {
	moment, err := slotTime.OnDate(date)
	if err != nil {
		return false
	}

	if moment.Before(now) {
		return false
	}

	if _, booked := bookedTimes[slotTime.String()]; booked {
		return false
	}

	return true
}

// bookedTimeSet собирает множество меток "HH:MM" занятых слотов дня
// Неактивные записи (отмененные, no-show) слот не занимают
func bookedTimeSet(appointments []*domain.Appointment) map[string]struct{} {
	booked := make(map[string]struct{}, len(appointments))
	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		booked[types.FormatForDisplay(appt.StartTime.String())] = struct{}{}
	}
	return booked
}
