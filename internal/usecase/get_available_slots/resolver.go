package get_available_slots

import (
	"github.com/avkorn/ABS-AppointmentService/internal/domain"
	"github.com/avkorn/ABS-AppointmentService/pkg/weekday"
)

// resolveEligibleAvailability отбирает окна доступности, из которых можно
// генерировать слоты для услуги на заданный день недели
//
// Правила отбора:
//   - день недели окна (в любой из встречающихся кодировок) должен соответствовать
//     каноническому индексу dayIndex; нераспознанные значения дня - предупреждение
//     о качестве данных, окно пропускается
//   - строки с нарушенной связкой employee пропускаются, это не ошибка запроса
//   - выключенные сотрудники слотов не дают
//   - сотрудник должен выполнять запрошенную услугу; отсутствие окон или связей
//     у сотрудника - легитимный пустой вклад
func resolveEligibleAvailability(
	rows []*domain.AvailabilityWithEmployee,
	serviceID int64,
	dayIndex int,
	log Logger,
) []*domain.AvailabilityWithEmployee {
	eligible := make([]*domain.AvailabilityWithEmployee, 0, len(rows))

	for _, row := range rows {
		rawDay := row.Availability.DayOfWeek
		if !weekday.IsCanonical(weekday.Normalize(rawDay)) {
			log.Warn("resolveEligibleAvailability: unrecognized day_of_week %q in availability id=%d, skipping",
				rawDay, row.Availability.ID)
			continue
		}

		if !weekday.Matches(rawDay, dayIndex) {
			continue
		}

		if row.Employee == nil {
			log.Warn("resolveEligibleAvailability: availability id=%d has no employee row, skipping",
				row.Availability.ID)
			continue
		}

		if !row.Employee.Active {
			continue
		}

		if !row.CanPerform(serviceID) {
			continue
		}

		eligible = append(eligible, row)
	}

	return eligible
}
