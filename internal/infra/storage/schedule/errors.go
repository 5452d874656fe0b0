package schedule

import "errors"

var (
	// ErrWorkingHourNotFound возвращается, когда для дня недели нет строки расписания
	ErrWorkingHourNotFound = errors.New("schedule.repository: working hour not found")

	// ErrBlockedDateNotFound возвращается, когда блокировка не найдена
	ErrBlockedDateNotFound = errors.New("schedule.repository: blocked date not found")

	// ErrContactInfoNotFound возвращается, когда строка контактов отсутствует
	ErrContactInfoNotFound = errors.New("schedule.repository: contact info not found")

	// ErrSerialization возвращается, когда чтение прервано конфликтом сериализуемой транзакции
	ErrSerialization = errors.New("schedule.repository: serialization conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
