package contact

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrDeliveryFailed возвращается, когда сообщение не удалось доставить
	ErrDeliveryFailed = errors.New("contact message delivery failed")
)
