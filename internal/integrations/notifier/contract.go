package notifier

import "context"

// WhatsAppSender канал отправки WhatsApp сообщений
type WhatsAppSender interface {
	SendWhatsApp(ctx context.Context, to, body string) error
}

// EmailSender канал отправки писем
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// MetricsRecorder учет отправленных уведомлений
type MetricsRecorder interface {
	RecordNotification(channel, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
