package create_appointment

import (
	"github.com/avkorn/ABS-AppointmentService/internal/domain"
	"github.com/avkorn/ABS-AppointmentService/pkg/types"
	"github.com/avkorn/ABS-AppointmentService/pkg/weekday"
)

type eligibility int

const (
	// сотрудник не выполняет услугу либо не работает в этот день
	eligibilityNotEligible eligibility = iota
	// сотрудник подходит, но запрошенный интервал не помещается ни в одно окно
	eligibilityNoWindow
	eligibilityOK
)

// eligibleWindowsFor проверяет запрошенный слот против окон доступности сотрудника
//
// Слот легитимен, когда сотрудник выполняет услугу, работает в день записи
// и интервал [start, start+duration] целиком лежит в одном из его окон.
// Строки с нераспознанным днем недели или битым временем пропускаются
// с предупреждением, как и при генерации слотов.
func eligibleWindowsFor(rows []*domain.AvailabilityWithEmployee, req *Request, durationMinutes int, log Logger) eligibility {
	dayIndex := weekday.FromDate(req.Date)
	result := eligibilityNotEligible

	slotEnd, err := req.StartTime.AddMinutes(durationMinutes)
	if err != nil {
		return eligibilityNotEligible
	}

	for _, entry := range rows {
		if entry.Employee == nil || entry.Employee.ID != req.EmployeeID {
			continue
		}
		if !entry.Employee.Active {
			continue
		}
		if !entry.CanPerform(req.ServiceID) {
			continue
		}
		if !weekday.Matches(entry.Availability.DayOfWeek, dayIndex) {
			continue
		}

		// Сотрудник подходит, осталось найти вмещающее окно
		if result == eligibilityNotEligible {
			result = eligibilityNoWindow
		}

		start, err := types.NewTimeStringFromString(entry.Availability.StartTime)
		if err != nil {
			log.Warn("eligibleWindowsFor: bad start_time %q in availability id=%d: %v",
				entry.Availability.StartTime, entry.Availability.ID, err)
			continue
		}

		end, err := types.NewTimeStringFromString(entry.Availability.EndTime)
		if err != nil {
			log.Warn("eligibleWindowsFor: bad end_time %q in availability id=%d: %v",
				entry.Availability.EndTime, entry.Availability.ID, err)
			continue
		}

		if !req.StartTime.IsBefore(start) && !slotEnd.IsAfter(end) && slotEnd.IsAfter(req.StartTime) {
			return eligibilityOK
		}
	}

	return result
}
