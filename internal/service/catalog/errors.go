package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrCategoryNotFound возвращается, когда категория услуг не найдена
	ErrCategoryNotFound = errors.New("service category not found")

	// ErrServiceHasChildren возвращается при удалении услуги с подуслугами
	ErrServiceHasChildren = errors.New("service has sub-services, delete them first")

	// ErrServiceInUse возвращается при удалении услуги, на которую есть бронирования
	ErrServiceInUse = errors.New("service has bookings")

	// ErrCategoryHasServices возвращается при удалении категории, в которой есть услуги
	ErrCategoryHasServices = errors.New("service category has services")

	// ErrSlugTaken возвращается, когда slug уже занят
	ErrSlugTaken = errors.New("slug already taken")

	// ErrInvalidParent возвращается, когда родитель нарушает двухуровневую структуру дерева
	ErrInvalidParent = errors.New("invalid parent service")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
