package dashboard

import "errors"

var (
	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("dashboard.repository: failed to execute query")
)
