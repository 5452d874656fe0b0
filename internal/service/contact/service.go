package contact

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ClinicService/internal/service/contact/models"
	"github.com/m04kA/SMC-ClinicService/pkg/email"
)

// Service сервис формы обратной связи
type Service struct {
	notifier   Notifier
	newsletter NewsletterSubscriber
	logger     Logger
}

// NewService создает новый экземпляр сервиса формы обратной связи
func NewService(notifier Notifier, newsletter NewsletterSubscriber, logger Logger) *Service {
	return &Service{
		notifier:   notifier,
		newsletter: newsletter,
		logger:     logger,
	}
}

// Send пересылает сообщение администратору и, по желанию клиента, подписывает на рассылку
func (s *Service) Send(ctx context.Context, req *models.ContactRequest) (*models.ContactResponse, error) {
	s.logger.Info("Send: contact message from %q", req.Email)

	// 1. Валидируем форму
	msg, err := toContactMessage(req)
	if err != nil {
		s.logger.Warn("Send: validation failed: %v", err)
		return nil, err
	}

	// 2. Сообщение нигде не хранится, поэтому ошибка доставки возвращается клиенту
	if err := s.notifier.ContactReceived(ctx, msg); err != nil {
		s.logger.Error("Send: delivery failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	// 3. Подписка на рассылку не влияет на результат
	resp := &models.ContactResponse{Sent: true}
	if req.NewsletterOptIn {
		name := msg.Name
		if err := s.newsletter.SubscribeFrom(ctx, msg.Email, &name, domain.SubscriberSourceContactForm); err != nil {
			s.logger.Warn("Send: newsletter subscription failed: %v", err)
		} else {
			resp.Subscribed = true
		}
	}

	s.logger.Info("Send: contact message from %q delivered", msg.Email)
	return resp, nil
}

func toContactMessage(req *models.ContactRequest) (notifier.ContactMessage, error) {
	var msg notifier.ContactMessage

	msg.Name = strings.TrimSpace(req.Name)
	if msg.Name == "" {
		return msg, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(msg.Name) > domain.MaxNameLength {
		return msg, fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}

	normalized, err := email.Normalize(req.Email)
	if err != nil {
		return msg, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	msg.Email = normalized

	msg.Message = strings.TrimSpace(req.Message)
	if msg.Message == "" {
		return msg, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(msg.Message) > domain.MaxTextLength {
		return msg, fmt.Errorf("%w: message is too long", ErrInvalidInput)
	}

	if req.Phone != nil {
		msg.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Subject != nil {
		msg.Subject = strings.TrimSpace(*req.Subject)
		if utf8.RuneCountInString(msg.Subject) > domain.MaxNameLength {
			return msg, fmt.Errorf("%w: subject is too long", ErrInvalidInput)
		}
	}
	return msg, nil
}
