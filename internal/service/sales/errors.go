package sales

import "errors"

var (
	// ErrSaleNotFound возвращается, когда продажа не найдена
	ErrSaleNotFound = errors.New("sale not found")

	// ErrProductNotFound возвращается, когда товар не найден или неактивен
	ErrProductNotFound = errors.New("product not found")

	// ErrOutOfStock возвращается, когда учитываемый остаток товара закончился
	ErrOutOfStock = errors.New("product is out of stock")

	// ErrInvalidStatus возвращается при некорректном статусе продажи
	ErrInvalidStatus = errors.New("invalid sale status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrReceipt возвращается при ошибке формирования квитанции
	ErrReceipt = errors.New("failed to render receipt")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
