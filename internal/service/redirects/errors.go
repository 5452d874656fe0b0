package redirects

import "errors"

var (
	// ErrRedirectNotFound возвращается, когда редирект не найден
	ErrRedirectNotFound = errors.New("redirect not found")

	// ErrPathTaken возвращается, когда редирект с таким путем уже существует
	ErrPathTaken = errors.New("redirect from path already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
