package create_appointment

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = errors.New("create_appointment: employee not found")

	// ErrEmployeeNotEligible возвращается, когда сотрудник не выполняет услугу
	// или не работает в запрошенный день
	ErrEmployeeNotEligible = errors.New("create_appointment: employee is not eligible for this service")

	// ErrSlotNotAvailable возвращается, когда слот уже занят или находится в прошлом
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
