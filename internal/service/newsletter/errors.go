package newsletter

import "errors"

var (
	// ErrSubscriberNotFound возвращается, когда подписчик не найден
	ErrSubscriberNotFound = errors.New("subscriber not found")

	// ErrInvalidEmail возвращается при некорректном email
	ErrInvalidEmail = errors.New("invalid email")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrExport возвращается при ошибке записи CSV
	ErrExport = errors.New("failed to write export")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
