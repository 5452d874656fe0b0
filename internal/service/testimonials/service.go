package testimonials

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	testimonialRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/testimonial"
	"github.com/m04kA/SMC-ClinicService/internal/service/testimonials/models"
	"github.com/m04kA/SMC-ClinicService/pkg/email"
)

// Service сервис отзывов клиентов с модерацией
type Service struct {
	repo   TestimonialRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(repo TestimonialRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Submit сохраняет отзыв с сайта; отзыв ждет модерации
func (s *Service) Submit(ctx context.Context, req *models.SubmitTestimonialRequest) (*models.TestimonialResponse, error) {
	s.logger.Info("Submit: new testimonial from %q", req.ClientName)

	t := &domain.Testimonial{
		ClientName:   req.ClientName,
		ClientEmail:  req.ClientEmail,
		Text:         req.Text,
		Rating:       req.Rating,
		ServiceLabel: req.ServiceLabel,
		Status:       domain.TestimonialStatusPending,
	}
	if err := prepareTestimonial(t); err != nil {
		s.logger.Warn("Submit: validation failed: %v", err)
		return nil, err
	}

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return nil, s.mapRepoError("Submit", err)
	}

	s.logger.Info("Submit: testimonial id=%d waiting for moderation", created.ID)
	return models.FromDomainTestimonial(created), nil
}

// ListApproved возвращает одобренные отзывы для сайта
func (s *Service) ListApproved(ctx context.Context) (*models.TestimonialListResponse, error) {
	s.logger.Info("ListApproved: fetching approved testimonials")

	status := domain.TestimonialStatusApproved
	items, err := s.repo.List(ctx, &status)
	if err != nil {
		s.logger.Error("ListApproved: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListApproved - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTestimonialList(items, true), nil
}

// List возвращает отзывы для панели администратора, опционально по статусу
func (s *Service) List(ctx context.Context, rawStatus *string) (*models.TestimonialListResponse, error) {
	s.logger.Info("List: fetching testimonials")

	var status *domain.TestimonialStatus
	if rawStatus != nil {
		parsed, err := models.ToDomainTestimonialStatus(*rawStatus)
		if err != nil {
			s.logger.Warn("List: invalid status %q", *rawStatus)
			return nil, ErrInvalidStatus
		}
		status = &parsed
	}

	items, err := s.repo.List(ctx, status)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d testimonials", len(items))
	return models.FromDomainTestimonialList(items, false), nil
}

// Update заменяет поля отзыва
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateTestimonialRequest) (*models.TestimonialResponse, error) {
	s.logger.Info("Update: updating testimonial id=%d", id)

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("Update", err)
	}

	t := &domain.Testimonial{
		ID:           id,
		ClientName:   req.ClientName,
		ClientEmail:  req.ClientEmail,
		Text:         req.Text,
		Rating:       req.Rating,
		ServiceLabel: req.ServiceLabel,
		Status:       existing.Status,
		DisplayOrder: req.DisplayOrder,
		CreatedAt:    existing.CreatedAt,
	}
	if req.Status != nil {
		status, err := models.ToDomainTestimonialStatus(*req.Status)
		if err != nil {
			s.logger.Warn("Update: invalid status %q", *req.Status)
			return nil, ErrInvalidStatus
		}
		t.Status = status
	}
	if err := prepareTestimonial(t); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.repo.Update(ctx, t)
	if err != nil {
		return nil, s.mapRepoError("Update", err)
	}

	s.logger.Info("Update: successfully updated testimonial id=%d", id)
	return models.FromDomainTestimonial(updated), nil
}

// UpdateStatus меняет статус модерации
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.TestimonialResponse, error) {
	s.logger.Info("UpdateStatus: testimonial id=%d status=%q", id, req.Status)

	status, err := models.ToDomainTestimonialStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status %q", req.Status)
		return nil, ErrInvalidStatus
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, s.mapRepoError("UpdateStatus", err)
	}

	s.logger.Info("UpdateStatus: testimonial id=%d is %s", id, status)
	return models.FromDomainTestimonial(updated), nil
}

// Delete удаляет отзыв
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting testimonial id=%d", id)

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError("Delete", err)
	}

	s.logger.Info("Delete: successfully deleted testimonial id=%d", id)
	return nil
}

// Вспомогательные методы

func prepareTestimonial(t *domain.Testimonial) error {
	t.ClientName = strings.TrimSpace(t.ClientName)
	if t.ClientName == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(t.ClientName) > domain.MaxNameLength {
		return fmt.Errorf("%w: clientName is too long", ErrInvalidInput)
	}

	t.Text = strings.TrimSpace(t.Text)
	if t.Text == "" {
		return fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(t.Text) > domain.MaxTextLength {
		return fmt.Errorf("%w: text is too long", ErrInvalidInput)
	}

	if t.Rating < domain.MinRating || t.Rating > domain.MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}

	if t.ClientEmail != nil {
		if strings.TrimSpace(*t.ClientEmail) == "" {
			t.ClientEmail = nil
		} else {
			normalized, err := email.Normalize(*t.ClientEmail)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			t.ClientEmail = &normalized
		}
	}

	if t.ServiceLabel != nil {
		label := strings.TrimSpace(*t.ServiceLabel)
		if label == "" {
			t.ServiceLabel = nil
		} else {
			t.ServiceLabel = &label
		}
	}
	return nil
}

func (s *Service) mapRepoError(op string, err error) error {
	if errors.Is(err, testimonialRepo.ErrTestimonialNotFound) {
		s.logger.Warn("%s: testimonial not found", op)
		return ErrTestimonialNotFound
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
