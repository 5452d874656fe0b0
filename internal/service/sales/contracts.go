package sales

import (
	"context"
	"io"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	saleRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/sale"
)

// SaleRepository интерфейс репозитория продаж
type SaleRepository interface {
	Create(ctx context.Context, s *domain.Sale) (*domain.Sale, error)
	GetByID(ctx context.Context, id int64) (*domain.Sale, error)
	List(ctx context.Context, status *domain.SaleStatus) ([]*domain.Sale, error)
	Update(ctx context.Context, id int64, fields saleRepo.UpdateFields) (*domain.Sale, error)
	Delete(ctx context.Context, id int64) error
}

// ProductRepository чтение товара для публичной заявки
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// NewsletterSubscriber подписка покупателя, давшего согласие
type NewsletterSubscriber interface {
	SubscribeFrom(ctx context.Context, email string, name *string, source domain.SubscriberSource) error
}

// Notifier уведомление администратора о новой заявке
type Notifier interface {
	SaleCreated(ctx context.Context, sale *domain.Sale) error
}

// ReceiptRenderer генератор PDF квитанции
type ReceiptRenderer interface {
	Render(w io.Writer, sale *domain.Sale) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
