package domain

import "errors"

var (
	// ErrInvalidStatus возвращается при неизвестном значении статуса
	ErrInvalidStatus = errors.New("domain: invalid status")

	// ErrParentNotFound возвращается, когда родительская услуга не существует
	ErrParentNotFound = errors.New("domain: parent service not found")

	// ErrParentIsChild возвращается при попытке сделать родителем подуслугу (глубина дерева > 2)
	ErrParentIsChild = errors.New("domain: parent service is itself a sub-service")

	// ErrHasChildren возвращается, когда услуга с подуслугами становится подуслугой
	ErrHasChildren = errors.New("domain: service has sub-services")

	// ErrSelfParent возвращается при попытке сделать услугу родителем самой себя
	ErrSelfParent = errors.New("domain: service cannot be its own parent")
)
