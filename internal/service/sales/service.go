package sales

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	productRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/product"
	saleRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/sale"
	"github.com/m04kA/SMC-ClinicService/internal/service/sales/models"
	"github.com/m04kA/SMC-ClinicService/pkg/email"
)

// Service сервис продаж товаров
type Service struct {
	saleRepo    SaleRepository
	productRepo ProductRepository
	newsletter  NewsletterSubscriber
	notifier    Notifier
	receipts    ReceiptRenderer
	logger      Logger
}

// NewService создает новый экземпляр сервиса продаж
func NewService(
	saleRepo SaleRepository,
	productRepo ProductRepository,
	newsletter NewsletterSubscriber,
	notifier Notifier,
	receipts ReceiptRenderer,
	logger Logger,
) *Service {
	return &Service{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		newsletter:  newsletter,
		notifier:    notifier,
		receipts:    receipts,
		logger:      logger,
	}
}

// Create регистрирует публичную заявку на покупку со статусом PENDING.
// Подписка и уведомление не влияют на результат.
func (s *Service) Create(ctx context.Context, req *models.CreateSaleRequest) (*models.SaleResponse, error) {
	s.logger.Info("Create: creating sale for product=%d optIn=%t", req.ProductID, req.NewsletterOptIn)

	// 1. Валидируем данные клиента
	sale, err := toDomainSale(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем товар
	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			s.logger.Warn("Create: product id=%d not found", req.ProductID)
			return nil, ErrProductNotFound
		}
		s.logger.Error("Create: failed to get product id=%d: %v", req.ProductID, err)
		return nil, fmt.Errorf("%w: Create - failed to get product: %v", ErrInternal, err)
	}
	if !product.IsActive {
		s.logger.Warn("Create: product id=%d is inactive", req.ProductID)
		return nil, ErrProductNotFound
	}
	if !product.InStock() {
		s.logger.Warn("Create: product id=%d is out of stock", req.ProductID)
		return nil, ErrOutOfStock
	}

	// 3. Сохраняем заявку
	created, err := s.saleRepo.Create(ctx, sale)
	if err != nil {
		if errors.Is(err, saleRepo.ErrProductNotFound) {
			s.logger.Warn("Create: product id=%d disappeared", req.ProductID)
			return nil, ErrProductNotFound
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	// 4. Подписка и уведомление
	if created.NewsletterOptIn {
		if err := s.newsletter.SubscribeFrom(ctx, created.ClientEmail, &created.ClientName, domain.SubscriberSourceSale); err != nil {
			s.logger.Warn("Create: newsletter subscription failed for sale id=%d: %v", created.ID, err)
		}
	}
	if err := s.notifier.SaleCreated(ctx, created); err != nil {
		s.logger.Warn("Create: notification failed for sale id=%d: %v", created.ID, err)
	}

	s.logger.Info("Create: successfully created sale id=%d", created.ID)
	return models.FromDomainSale(created), nil
}

// GetByID получает продажу по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SaleResponse, error) {
	s.logger.Info("GetByID: fetching sale id=%d", id)

	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}
	return models.FromDomainSale(sale), nil
}

// List получает продажи, опционально по статусу
func (s *Service) List(ctx context.Context, status *string) (*models.SaleListResponse, error) {
	s.logger.Info("List: fetching sales status=%v", status)

	var filter *domain.SaleStatus
	if status != nil && *status != "" {
		parsed, err := domain.ParseSaleStatus(strings.ToUpper(strings.TrimSpace(*status)))
		if err != nil {
			s.logger.Warn("List: invalid status=%s", *status)
			return nil, ErrInvalidStatus
		}
		filter = &parsed
	}

	sales, err := s.saleRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d sales", len(sales))
	return models.FromDomainSaleList(sales), nil
}

// Update меняет статус, итоговую цену и заметки. Переходы статусов не ограничены.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateSaleRequest) (*models.SaleResponse, error) {
	s.logger.Info("Update: updating sale id=%d status=%v", id, req.Status)

	fields := saleRepo.UpdateFields{ClearPrice: req.ClearFinalPrice}
	if req.Status != nil {
		status, err := domain.ParseSaleStatus(strings.ToUpper(strings.TrimSpace(*req.Status)))
		if err != nil {
			s.logger.Warn("Update: invalid status=%s for sale id=%d", *req.Status, id)
			return nil, ErrInvalidStatus
		}
		fields.Status = &status
	}
	if req.FinalPrice != nil && !req.ClearFinalPrice {
		if req.FinalPrice.IsNegative() {
			s.logger.Warn("Update: negative finalPrice for sale id=%d", id)
			return nil, fmt.Errorf("%w: finalPrice must not be negative", ErrInvalidInput)
		}
		fields.FinalPrice = req.FinalPrice
	}
	if req.AdminNotes != nil {
		notes := strings.TrimSpace(*req.AdminNotes)
		if utf8.RuneCountInString(notes) > domain.MaxNotesLength {
			return nil, fmt.Errorf("%w: adminNotes is too long", ErrInvalidInput)
		}
		fields.AdminNotes = &notes
	}

	updated, err := s.saleRepo.Update(ctx, id, fields)
	if err != nil {
		return nil, s.mapRepoError("Update", id, err)
	}

	s.logger.Info("Update: successfully updated sale id=%d status=%s", id, updated.Status)
	return models.FromDomainSale(updated), nil
}

// Delete удаляет продажу
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting sale id=%d", id)

	if err := s.saleRepo.Delete(ctx, id); err != nil {
		return s.mapRepoError("Delete", id, err)
	}

	s.logger.Info("Delete: successfully deleted sale id=%d", id)
	return nil
}

// Receipt пишет PDF квитанцию продажи
func (s *Service) Receipt(ctx context.Context, id int64, w io.Writer) error {
	s.logger.Info("Receipt: rendering receipt for sale id=%d", id)

	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return s.mapRepoError("Receipt", id, err)
	}

	if err := s.receipts.Render(w, sale); err != nil {
		s.logger.Error("Receipt: failed to render sale id=%d: %v", id, err)
		return fmt.Errorf("%w: %v", ErrReceipt, err)
	}
	return nil
}

// Вспомогательные методы

func toDomainSale(req *models.CreateSaleRequest) (*domain.Sale, error) {
	name := strings.TrimSpace(req.ClientName)
	if name == "" {
		return nil, fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: clientName is too long", ErrInvalidInput)
	}

	address, err := email.Normalize(req.ClientEmail)
	if err != nil {
		return nil, fmt.Errorf("%w: clientEmail is not a valid email", ErrInvalidInput)
	}

	phone := strings.TrimSpace(req.ClientPhone)
	if phone == "" {
		return nil, fmt.Errorf("%w: clientPhone is required", ErrInvalidInput)
	}

	if req.ProductID <= 0 {
		return nil, fmt.Errorf("%w: productId must be positive", ErrInvalidInput)
	}

	var notes *string
	if req.ClientNotes != nil {
		trimmed := strings.TrimSpace(*req.ClientNotes)
		if utf8.RuneCountInString(trimmed) > domain.MaxNotesLength {
			return nil, fmt.Errorf("%w: clientNotes is too long", ErrInvalidInput)
		}
		if trimmed != "" {
			notes = &trimmed
		}
	}

	return &domain.Sale{
		ClientName:      name,
		ClientEmail:     address,
		ClientPhone:     phone,
		ProductID:       req.ProductID,
		Status:          domain.SaleStatusPending,
		NewsletterOptIn: req.NewsletterOptIn,
		ClientNotes:     notes,
	}, nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, saleRepo.ErrSaleNotFound) {
		s.logger.Warn("%s: sale id=%d not found", op, id)
		return ErrSaleNotFound
	}
	s.logger.Error("%s: repository error for sale id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
