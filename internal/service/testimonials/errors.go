package testimonials

import "errors"

var (
	// ErrTestimonialNotFound возвращается, когда отзыв не найден
	ErrTestimonialNotFound = errors.New("testimonial not found")

	// ErrInvalidStatus возвращается при неизвестном статусе модерации
	ErrInvalidStatus = errors.New("invalid testimonial status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
