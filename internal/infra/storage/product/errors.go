package product

import "errors"

var (
	// ErrProductNotFound возвращается, когда товар не найден
	ErrProductNotFound = errors.New("product.repository: product not found")

	// ErrProductInUse возвращается при удалении товара, на который ссылаются продажи
	ErrProductInUse = errors.New("product.repository: product is referenced by sales")

	// ErrCategoryNotFound возвращается, когда категория товаров не найдена
	ErrCategoryNotFound = errors.New("product.repository: product category not found")

	// ErrCategoryHasProducts возвращается при удалении категории с товарами
	ErrCategoryHasProducts = errors.New("product.repository: product category has products")

	// ErrSlugTaken возвращается при нарушении уникальности slug
	ErrSlugTaken = errors.New("product.repository: slug already taken")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("product.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("product.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("product.repository: failed to scan row")
)
