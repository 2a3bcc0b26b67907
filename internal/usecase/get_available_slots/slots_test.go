package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avkorn/ABS-AppointmentService/internal/domain"
	"github.com/avkorn/ABS-AppointmentService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// 2026-03-16 - понедельник
var testDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

// farPast - now задолго до testDate, чтобы фильтр прошедшего не срабатывал
var farPast = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func testService(duration int) *domain.Service {
	return &domain.Service{
		ID:              10,
		BusinessID:      1,
		Name:            "Стрижка",
		DurationMinutes: duration,
		Active:          true,
	}
}

func availabilityRow(availID, employeeID int64, name, day, start, end string) *domain.AvailabilityWithEmployee {
	return &domain.AvailabilityWithEmployee{
		Availability: domain.EmployeeAvailability{
			ID:         availID,
			EmployeeID: employeeID,
			DayOfWeek:  day,
			StartTime:  start,
			EndTime:    end,
		},
		Employee: &domain.Employee{
			ID:          employeeID,
			BusinessID:  1,
			DisplayName: name,
			Active:      true,
		},
		ServiceIDs: []int64{10},
	}
}

func slotTimes(slots []domain.TimeSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Time.String())
	}
	return out
}

func TestGenerateTimeSlots_WindowExpansion(t *testing.T) {
	// Окно 09:00-11:00, услуга 30 минут: ровно 4 слота, хвоста нет
	eligible := []*domain.AvailabilityWithEmployee{
		availabilityRow(1, 100, "Анна", "1", "09:00:00", "11:00:00"),
	}

	slots := generateTimeSlots(testDate, testService(30), eligible, nil, farPast, nopLogger{})

	require.Len(t, slots, 4)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, slotTimes(slots))
	for _, s := range slots {
		assert.True(t, s.Available)
		assert.Equal(t, int64(100), s.EmployeeID)
		assert.Equal(t, "Анна", s.EmployeeName)
	}
}

func TestGenerateTimeSlots_NoPartialTrailingSlot(t *testing.T) {
	// Окно 09:00-10:45, услуга 30 минут: слот 10:30-11:00 не помещается
	eligible := []*domain.AvailabilityWithEmployee{
		availabilityRow(1, 100, "Анна", "1", "09:00:00", "10:45:00"),
	}

	slots := generateTimeSlots(testDate, testService(30), eligible, nil, farPast, nopLogger{})

	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, slotTimes(slots))
}

func TestGenerateTimeSlots_DurationLongerThanWindow(t *testing.T) {
	eligible := []*domain.AvailabilityWithEmployee{
		availabilityRow(1, 100, "Анна", "1", "09:00:00", "10:00:00"),
	}

	slots := generateTimeSlots(testDate, testService(90), eligible, nil, farPast, nopLogger{})

	assert.Empty(t, slots)
}

func TestGenerateTimeSlots_BookedTimesBlockAllEmployees(t *testing.T) {
	// Занятая метка 09:30 гасит слот у обоих сотрудников
	eligible := []*domain.AvailabilityWithEmployee{
		availabilityRow(1, 100, "Анна", "1", "09:00:00", "10:00:00"),
		availabilityRow(2, 200, "Борис", "1", "09:00:00", "10:00:00"),
	}
	booked := map[string]struct{}{"09:30": {}}

	slots := generateTimeSlots(testDate, testService(30), eligible, booked, farPast, nopLogger{})

	require.Len(t, slots, 4)
	for _, s := range slots {
		if s.Time == "09:30" {
			assert.False(t, s.Available, "employee %d", s.EmployeeID)
		} else {
			assert.True(t, s.Available, "employee %d", s.EmployeeID)
		}
	}
}

func TestGenerateTimeSlots_PastSlotsUnavailable(t *testing.T) {
	// now в середине дня запроса: слоты до now недоступны, начиная с now - доступны
	now := time.Date(2026, 3, 16, 9, 30, 0, 0, time.UTC)
	eligible := []*domain.AvailabilityWithEmployee{
		availabilityRow(1, 100, "Анна", "1", "09:00:00", "11:00:00"),
	}

	slots := generateTimeSlots(testDate, testService(30), eligible, nil, now, nopLogger{})

	require.Len(t, slots, 4)
	available := map[string]bool{}
	for _, s := range slots {
		available[s.Time.String()] = s.Available
	}
	assert.False(t, available["09:00"])
	assert.True(t, available["09:30"])
	assert.True(t, available["10:00"])
	assert.True(t, available["10:30"])
}

func TestGenerateTimeSlots_FutureDateIgnoresTimeOfDay(t *testing.T) {
	// Дата запроса завтра: текущее время суток слоты не гасит
	now := time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC)
	eligible := []*domain.AvailabilityWithEmployee{
		availabilityRow(1, 100, "Анна", "1", "09:00:00", "10:00:00"),
	}

	slots := generateTimeSlots(testDate, testService(30), eligible, nil, now, nopLogger{})

	require.Len(t, slots, 2)
	for _, s := range slots {
		assert.True(t, s.Available)
	}
}

func TestGenerateTimeSlots_DeduplicatesOverlappingWindows(t *testing.T) {
	// Два пересекающихся окна одного сотрудника не дают дублей (время, сотрудник)
	eligible := []*domain.AvailabilityWithEmployee{
		availabilityRow(1, 100, "Анна", "1", "09:00:00", "10:00:00"),
		availabilityRow(2, 100, "Анна", "1", "09:00:00", "10:30:00"),
	}

	slots := generateTimeSlots(testDate, testService(30), eligible, nil, farPast, nopLogger{})

	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, slotTimes(slots))
}

func TestGenerateTimeSlots_SortsByTimeThenEmployee(t *testing.T) {
	eligible := []*domain.AvailabilityWithEmployee{
		availabilityRow(1, 200, "Борис", "1", "09:30:00", "10:30:00"),
		availabilityRow(2, 100, "Анна", "1", "09:00:00", "10:00:00"),
	}

	slots := generateTimeSlots(testDate, testService(30), eligible, nil, farPast, nopLogger{})

	require.Len(t, slots, 4)
	assert.Equal(t, "09:00", slots[0].Time.String())
	assert.Equal(t, int64(100), slots[0].EmployeeID)
	assert.Equal(t, "09:30", slots[1].Time.String())
	assert.Equal(t, int64(100), slots[1].EmployeeID)
	assert.Equal(t, "09:30", slots[2].Time.String())
	assert.Equal(t, int64(200), slots[2].EmployeeID)
	assert.Equal(t, "10:00", slots[3].Time.String())
	assert.Equal(t, int64(200), slots[3].EmployeeID)
}

func TestGenerateTimeSlots_SkipsMalformedWindow(t *testing.T) {
	eligible := []*domain.AvailabilityWithEmployee{
		availabilityRow(1, 100, "Анна", "1", "garbage", "11:00:00"),
		availabilityRow(2, 100, "Анна", "1", "10:00:00", "09:00:00"),
		availabilityRow(3, 200, "Борис", "1", "09:00:00", "10:00:00"),
	}

	slots := generateTimeSlots(testDate, testService(30), eligible, nil, farPast, nopLogger{})

	assert.Equal(t, []string{"09:00", "09:30"}, slotTimes(slots))
	for _, s := range slots {
		assert.Equal(t, int64(200), s.EmployeeID)
	}
}

func TestGenerateTimeSlots_Deterministic(t *testing.T) {
	eligible := []*domain.AvailabilityWithEmployee{
		availabilityRow(1, 200, "Борис", "1", "09:00:00", "12:00:00"),
		availabilityRow(2, 100, "Анна", "1", "10:00:00", "13:00:00"),
	}
	booked := map[string]struct{}{"10:30": {}}

	first := generateTimeSlots(testDate, testService(45), eligible, booked, farPast, nopLogger{})
	second := generateTimeSlots(testDate, testService(45), eligible, booked, farPast, nopLogger{})

	assert.Equal(t, first, second)
}

func TestBookedTimeSet(t *testing.T) {
	appointments := []*domain.Appointment{
		{StartTime: types.TimeString("09:00"), Status: domain.StatusScheduled},
		{StartTime: types.TimeString("09:30:00"), Status: domain.StatusCompleted},
		{StartTime: types.TimeString("10:00"), Status: domain.StatusCancelledByCustomer},
		{StartTime: types.TimeString("10:30"), Status: domain.StatusNoShow},
	}

	booked := bookedTimeSet(appointments)

	assert.Contains(t, booked, "09:00")
	assert.Contains(t, booked, "09:30")
	assert.NotContains(t, booked, "10:00")
	assert.NotContains(t, booked, "10:30")
}
