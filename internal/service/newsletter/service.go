package newsletter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	newsletterRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/newsletter"
	"github.com/m04kA/SMC-ClinicService/internal/service/newsletter/models"
	"github.com/m04kA/SMC-ClinicService/pkg/email"
)

// Service сервис рассылки
type Service struct {
	repo     SubscriberRepository
	location *time.Location
	logger   Logger
}

// NewService создает новый экземпляр сервиса рассылки.
// location используется для дат в CSV выгрузке.
func NewService(repo SubscriberRepository, location *time.Location, logger Logger) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		repo:     repo,
		location: location,
		logger:   logger,
	}
}

// Subscribe подписывает email. Повторная подписка идемпотентна и реактивирует отписавшегося.
func (s *Service) Subscribe(ctx context.Context, req *models.SubscribeRequest) (*models.SubscriberResponse, error) {
	s.logger.Info("Subscribe: subscribing source=%q", req.Source)

	source, err := domain.ParseSubscriberSource(strings.TrimSpace(req.Source))
	if err != nil {
		s.logger.Warn("Subscribe: invalid source=%q", req.Source)
		return nil, fmt.Errorf("%w: unknown source", ErrInvalidInput)
	}

	sub, err := s.subscribe(ctx, req.Email, req.Name, source)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSubscriber(sub), nil
}

// SubscribeFrom подписывает email из другого сценария (продажа, форма контакта)
func (s *Service) SubscribeFrom(ctx context.Context, rawEmail string, name *string, source domain.SubscriberSource) error {
	s.logger.Info("SubscribeFrom: subscribing source=%s", source)

	_, err := s.subscribe(ctx, rawEmail, name, source)
	return err
}

// Unsubscribe мягко отписывает по email. Неизвестный email не считается ошибкой.
func (s *Service) Unsubscribe(ctx context.Context, req *models.UnsubscribeRequest) error {
	s.logger.Info("Unsubscribe: unsubscribing")

	address, err := email.Normalize(req.Email)
	if err != nil {
		s.logger.Warn("Unsubscribe: invalid email")
		return ErrInvalidEmail
	}

	if err := s.repo.Unsubscribe(ctx, address); err != nil {
		if errors.Is(err, newsletterRepo.ErrSubscriberNotFound) {
			s.logger.Info("Unsubscribe: email is not subscribed, nothing to do")
			return nil
		}
		s.logger.Error("Unsubscribe: repository error: %v", err)
		return fmt.Errorf("%w: Unsubscribe - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Unsubscribe: successfully unsubscribed")
	return nil
}

// List возвращает подписчиков, включая отписавшихся, если onlyActive=false
func (s *Service) List(ctx context.Context, onlyActive bool) (*models.SubscriberListResponse, error) {
	s.logger.Info("List: fetching subscribers onlyActive=%t", onlyActive)

	subscribers, err := s.repo.List(ctx, onlyActive)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d subscribers", len(subscribers))
	return models.FromDomainSubscriberList(subscribers), nil
}

// Deactivate мягко отписывает подписчика из панели администратора
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	s.logger.Info("Deactivate: deactivating subscriber id=%d", id)

	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, newsletterRepo.ErrSubscriberNotFound) {
			s.logger.Warn("Deactivate: subscriber id=%d not found", id)
			return ErrSubscriberNotFound
		}
		s.logger.Error("Deactivate: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Deactivate: successfully deactivated subscriber id=%d", id)
	return nil
}

// Export пишет CSV активных подписчиков: email,name,source,date
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	s.logger.Info("Export: exporting active subscribers")

	subscribers, err := s.repo.List(ctx, true)
	if err != nil {
		s.logger.Error("Export: repository error: %v", err)
		return fmt.Errorf("%w: Export - repository error: %v", ErrInternal, err)
	}

	written, err := writeCSV(w, subscribers, s.location)
	if err != nil {
		s.logger.Error("Export: failed to write csv after %d rows: %v", written, err)
		return fmt.Errorf("%w: %v", ErrExport, err)
	}

	s.logger.Info("Export: successfully exported %d subscribers", written)
	return nil
}

func (s *Service) subscribe(ctx context.Context, rawEmail string, name *string, source domain.SubscriberSource) (*domain.Subscriber, error) {
	address, err := email.Normalize(rawEmail)
	if err != nil {
		s.logger.Warn("subscribe: invalid email")
		return nil, ErrInvalidEmail
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if utf8.RuneCountInString(trimmed) > domain.MaxNameLength {
			return nil, fmt.Errorf("%w: name is too long", ErrInvalidInput)
		}
		name = &trimmed
		if trimmed == "" {
			name = nil
		}
	}

	sub, err := s.repo.Subscribe(ctx, &domain.Subscriber{Email: address, Name: name, Source: source})
	if err != nil {
		s.logger.Error("subscribe: repository error: %v", err)
		return nil, fmt.Errorf("%w: Subscribe - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("subscribe: subscriber id=%d is active", sub.ID)
	return sub, nil
}
