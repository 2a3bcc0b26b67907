package domain

import "time"

// Employee сотрудник бизнеса
type Employee struct {
	ID          int64
	BusinessID  int64
	DisplayName string
	Active      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EmployeeAvailability окно недельной доступности сотрудника
//
// DayOfWeek хранится как сырое значение - в данных встречаются кодировки
// 0-6, 1-7 и полные названия дней. Сравнения идут только через pkg/weekday.
// Инвариант: StartTime < EndTime (время стены, "HH:MM:SS", без таймзоны)
type EmployeeAvailability struct {
	ID         int64
	EmployeeID int64
	DayOfWeek  string
	StartTime  string
	EndTime    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AvailabilityWithEmployee строка доступности вместе с данными сотрудника
// и набором услуг, которые он выполняет
//
// Employee может быть nil при нарушенной связке в хранилище - потребители
// обязаны обрабатывать отсутствие без падения
type AvailabilityWithEmployee struct {
	Availability EmployeeAvailability
	Employee     *Employee
	ServiceIDs   []int64
}

// CanPerform проверяет, что сотрудник выполняет услугу
func (a *AvailabilityWithEmployee) CanPerform(serviceID int64) bool {
	for _, id := range a.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// WeeklySchedule недельное расписание сотрудника для операции замены
type WeeklySchedule struct {
	EmployeeID int64
	Windows    []ScheduleWindow
}

// ScheduleWindow одно окно доступности в недельном расписании
type ScheduleWindow struct {
	DayOfWeek string // канонизируется при записи
	StartTime string // "HH:MM" или "HH:MM:SS"
	EndTime   string
}
