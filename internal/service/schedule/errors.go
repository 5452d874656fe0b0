package schedule

import "errors"

var (
	// ErrBlockedDateNotFound возвращается, когда блокировка не найдена
	ErrBlockedDateNotFound = errors.New("blocked date not found")

	// ErrInvalidWorkingHours возвращается при некорректном расписании дня
	ErrInvalidWorkingHours = errors.New("invalid working hours")

	// ErrInvalidTimeRange возвращается при некорректном временном диапазоне блокировки
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
