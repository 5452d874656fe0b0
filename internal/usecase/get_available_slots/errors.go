package get_available_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrServiceInactive возвращается, когда услуга отключена
	ErrServiceInactive = errors.New("get_available_slots: service is not active")

	// ErrServiceNotBookable возвращается для родительской услуги с подуслугами: записываются на подуслугу
	ErrServiceNotBookable = errors.New("get_available_slots: service groups sub-services and cannot be booked")

	// ErrInvalidSchedule возвращается, когда расписание или блокировки содержат некорректное время
	ErrInvalidSchedule = errors.New("get_available_slots: invalid schedule data")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
