package notifier

import "errors"

var (
	// ErrSendFailed возвращается, когда внешний канал не принял сообщение
	ErrSendFailed = errors.New("notifier: failed to send notification")

	// ErrRender возвращается при ошибке подготовки текста уведомления
	ErrRender = errors.New("notifier: failed to render template")

	// ErrInvalidRecipient возвращается при пустом или некорректном получателе
	ErrInvalidRecipient = errors.New("notifier: invalid recipient")
)
