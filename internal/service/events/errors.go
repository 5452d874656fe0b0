package events

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие не найдено
	ErrEventNotFound = errors.New("event not found")

	// ErrSlugTaken возвращается, когда slug уже занят
	ErrSlugTaken = errors.New("slug already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrQRCode возвращается при ошибке генерации QR кода
	ErrQRCode = errors.New("failed to render qr code")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
