package create_appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avkorn/ABS-AppointmentService/internal/domain"
	"github.com/avkorn/ABS-AppointmentService/pkg/types"
)

func window(employeeID int64, day, start, end string, serviceIDs ...int64) *domain.AvailabilityWithEmployee {
	return &domain.AvailabilityWithEmployee{
		Availability: domain.EmployeeAvailability{
			ID: 1, EmployeeID: employeeID, DayOfWeek: day,
			StartTime: start, EndTime: end,
		},
		Employee:   &domain.Employee{ID: employeeID, BusinessID: 1, Active: true},
		ServiceIDs: serviceIDs,
	}
}

func eligibilityRequest(start types.TimeString) *Request {
	return &Request{
		BusinessID: 1,
		ServiceID:  10,
		EmployeeID: 100,
		Date:       testDate, // понедельник
		StartTime:  start,
	}
}

func TestEligibleWindowsFor(t *testing.T) {
	tests := []struct {
		name     string
		rows     []*domain.AvailabilityWithEmployee
		start    types.TimeString
		duration int
		expected eligibility
	}{
		{
			"слот внутри окна",
			[]*domain.AvailabilityWithEmployee{window(100, "1", "09:00:00", "18:00:00", 10)},
			"10:00", 30, eligibilityOK,
		},
		{
			"слот вровень с границами окна",
			[]*domain.AvailabilityWithEmployee{window(100, "1", "10:00:00", "10:30:00", 10)},
			"10:00", 30, eligibilityOK,
		},
		{
			"конец слота вылезает за окно",
			[]*domain.AvailabilityWithEmployee{window(100, "1", "09:00:00", "18:00:00", 10)},
			"17:45", 30, eligibilityNoWindow,
		},
		{
			"начало слота раньше окна",
			[]*domain.AvailabilityWithEmployee{window(100, "1", "09:00:00", "18:00:00", 10)},
			"08:45", 30, eligibilityNoWindow,
		},
		{
			"второе окно дня вмещает слот",
			[]*domain.AvailabilityWithEmployee{
				window(100, "1", "09:00:00", "12:00:00", 10),
				window(100, "1", "14:00:00", "18:00:00", 10),
			},
			"14:30", 30, eligibilityOK,
		},
		{
			"сотрудник не выполняет услугу",
			[]*domain.AvailabilityWithEmployee{window(100, "1", "09:00:00", "18:00:00", 99)},
			"10:00", 30, eligibilityNotEligible,
		},
		{
			"сотрудник не работает в этот день",
			[]*domain.AvailabilityWithEmployee{window(100, "2", "09:00:00", "18:00:00", 10)},
			"10:00", 30, eligibilityNotEligible,
		},
		{
			"окно чужого сотрудника не считается",
			[]*domain.AvailabilityWithEmployee{window(200, "1", "09:00:00", "18:00:00", 10)},
			"10:00", 30, eligibilityNotEligible,
		},
		{
			"выключенный сотрудник не подходит",
			func() []*domain.AvailabilityWithEmployee {
				row := window(100, "1", "09:00:00", "18:00:00", 10)
				row.Employee.Active = false
				return []*domain.AvailabilityWithEmployee{row}
			}(),
			"10:00", 30, eligibilityNotEligible,
		},
		{
			"битое окно пропускается, целое работает",
			[]*domain.AvailabilityWithEmployee{
				window(100, "1", "garbage", "18:00:00", 10),
				window(100, "1", "09:00:00", "18:00:00", 10),
			},
			"10:00", 30, eligibilityOK,
		},
		{
			"день недели как название дня",
			[]*domain.AvailabilityWithEmployee{window(100, "Monday", "09:00:00", "18:00:00", 10)},
			"10:00", 30, eligibilityOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eligibleWindowsFor(tt.rows, eligibilityRequest(tt.start), tt.duration, nopLogger{})
			assert.Equal(t, tt.expected, got)
		})
	}
}
