package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("catalog.repository: service not found")

	// ErrServiceHasChildren возвращается при удалении услуги, у которой есть подуслуги
	ErrServiceHasChildren = errors.New("catalog.repository: service has sub-services")

	// ErrServiceInUse возвращается при удалении услуги, на которую ссылаются бронирования
	ErrServiceInUse = errors.New("catalog.repository: service is referenced by bookings")

	// ErrCategoryNotFound возвращается, когда категория услуг не найдена
	ErrCategoryNotFound = errors.New("catalog.repository: service category not found")

	// ErrCategoryHasServices возвращается при удалении категории, к которой привязаны услуги
	ErrCategoryHasServices = errors.New("catalog.repository: service category has services")

	// ErrSlugTaken возвращается при нарушении уникальности slug
	ErrSlugTaken = errors.New("catalog.repository: slug already taken")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
