package domain

// Форматы времени
const (
	TimeFormat        = "15:04"      // HH:MM - отображение и сравнение слотов
	StorageTimeFormat = "15:04:05"   // HH:MM:SS - формат хранения
	DateFormat        = "2006-01-02" // YYYY-MM-DD
)

// Ограничения валидации
const (
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 480 // 8 часов
	MaxServiceNameLength        = 200
	MaxEmployeeNameLength       = 200
	MaxCustomerNameLength       = 200
	MaxPhoneLength              = 32
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// InactiveStatuses статусы записей, не занимающих слот
// Используется при фильтрации для подсчета занятых слотов
var InactiveStatuses = []AppointmentStatus{
	StatusCancelledByCustomer,
	StatusCancelledByBusiness,
	StatusNoShow,
}
