package get_available_slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avkorn/ABS-AppointmentService/internal/domain"
)

func TestResolveEligibleAvailability(t *testing.T) {
	const serviceID = int64(10)
	const monday = 1

	base := func() *domain.AvailabilityWithEmployee {
		return availabilityRow(1, 100, "Анна", "1", "09:00:00", "18:00:00")
	}

	tests := []struct {
		name    string
		mutate  func(row *domain.AvailabilityWithEmployee)
		wantLen int
	}{
		{"подходящее окно проходит", func(row *domain.AvailabilityWithEmployee) {}, 1},
		{"день недели как название", func(row *domain.AvailabilityWithEmployee) {
			row.Availability.DayOfWeek = "Monday"
		}, 1},
		{"другой день недели отсеивается", func(row *domain.AvailabilityWithEmployee) {
			row.Availability.DayOfWeek = "2"
		}, 0},
		{"нераспознанный день отсеивается", func(row *domain.AvailabilityWithEmployee) {
			row.Availability.DayOfWeek = "someday"
		}, 0},
		{"строка без сотрудника отсеивается", func(row *domain.AvailabilityWithEmployee) {
			row.Employee = nil
		}, 0},
		{"выключенный сотрудник отсеивается", func(row *domain.AvailabilityWithEmployee) {
			row.Employee.Active = false
		}, 0},
		{"сотрудник без нужной услуги отсеивается", func(row *domain.AvailabilityWithEmployee) {
			row.ServiceIDs = []int64{99}
		}, 0},
		{"сотрудник без услуг вовсе отсеивается", func(row *domain.AvailabilityWithEmployee) {
			row.ServiceIDs = nil
		}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := base()
			tt.mutate(row)

			eligible := resolveEligibleAvailability(
				[]*domain.AvailabilityWithEmployee{row}, serviceID, monday, nopLogger{})

			assert.Len(t, eligible, tt.wantLen)
		})
	}
}

func TestResolveEligibleAvailability_MixedDayEncodings(t *testing.T) {
	// Воскресенье в трех кодировках: "0", "7" и "Sunday" совпадают между собой
	rows := []*domain.AvailabilityWithEmployee{
		availabilityRow(1, 100, "Анна", "0", "09:00:00", "12:00:00"),
		availabilityRow(2, 200, "Борис", "7", "09:00:00", "12:00:00"),
		availabilityRow(3, 300, "Вера", "Sunday", "09:00:00", "12:00:00"),
		availabilityRow(4, 400, "Глеб", "1", "09:00:00", "12:00:00"),
	}

	eligible := resolveEligibleAvailability(rows, 10, 0, nopLogger{})

	require.Len(t, eligible, 3)
	ids := []int64{eligible[0].Employee.ID, eligible[1].Employee.ID, eligible[2].Employee.ID}
	assert.Equal(t, []int64{100, 200, 300}, ids)
}

func TestResolveEligibleAvailability_PreservesOrder(t *testing.T) {
	rows := []*domain.AvailabilityWithEmployee{
		availabilityRow(1, 300, "Вера", "1", "12:00:00", "18:00:00"),
		availabilityRow(2, 100, "Анна", "1", "09:00:00", "12:00:00"),
	}

	eligible := resolveEligibleAvailability(rows, 10, 1, nopLogger{})

	require.Len(t, eligible, 2)
	assert.Equal(t, int64(300), eligible[0].Employee.ID)
	assert.Equal(t, int64(100), eligible[1].Employee.ID)
}
