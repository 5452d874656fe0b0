package redirect

import "errors"

var (
	// ErrRedirectNotFound возвращается, когда редирект не найден
	ErrRedirectNotFound = errors.New("redirect.repository: redirect not found")

	// ErrPathTaken возвращается, когда для пути уже есть редирект
	ErrPathTaken = errors.New("redirect.repository: from path already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("redirect.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("redirect.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("redirect.repository: failed to scan row")
)
