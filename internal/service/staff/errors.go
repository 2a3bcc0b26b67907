package staff

import "errors"

var (
	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrServiceNotFound возвращается, когда услуга из набора не найдена в бизнесе
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidSchedule возвращается при некорректном недельном расписании
	ErrInvalidSchedule = errors.New("invalid weekly schedule")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
