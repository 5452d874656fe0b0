package products

import "errors"

var (
	// ErrProductNotFound возвращается, когда товар не найден
	ErrProductNotFound = errors.New("product not found")

	// ErrProductInUse возвращается при удалении товара, на который ссылаются продажи
	ErrProductInUse = errors.New("product has sales")

	// ErrCategoryNotFound возвращается, когда категория товаров не найдена
	ErrCategoryNotFound = errors.New("product category not found")

	// ErrCategoryHasProducts возвращается при удалении категории с товарами
	ErrCategoryHasProducts = errors.New("product category has products")

	// ErrSlugTaken возвращается, когда slug уже занят
	ErrSlugTaken = errors.New("slug already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
