package contact

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/integrations/notifier"
)

// Notifier пересылает сообщение администратору
type Notifier interface {
	ContactReceived(ctx context.Context, msg notifier.ContactMessage) error
}

// NewsletterSubscriber подписка на рассылку из формы
type NewsletterSubscriber interface {
	SubscribeFrom(ctx context.Context, email string, name *string, source domain.SubscriberSource) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
