package events

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	eventRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/event"
	"github.com/m04kA/SMC-ClinicService/internal/service/events/models"
	"github.com/m04kA/SMC-ClinicService/pkg/slug"
)

// publicPathPrefix путь страницы события на публичном сайте
const publicPathPrefix = "/eventos/"

// Service сервис событий: мастер-классы, ретриты, курсы
type Service struct {
	repo     EventRepository
	qr       QRRenderer
	baseURL  string
	location *time.Location
	now      func() time.Time
	logger   Logger
}

// NewService создает новый экземпляр сервиса событий
func NewService(repo EventRepository, qr QRRenderer, baseURL string, location *time.Location, logger Logger) *Service {
	return &Service{
		repo:     repo,
		qr:       qr,
		baseURL:  strings.TrimRight(baseURL, "/"),
		location: location,
		now:      time.Now,
		logger:   logger,
	}
}

// ListPublic возвращает активные события, кроме черновиков
func (s *Service) ListPublic(ctx context.Context, upcoming bool) (*models.EventListResponse, error) {
	s.logger.Info("ListPublic: fetching public events upcoming=%t", upcoming)

	filter := domain.EventsFilter{OnlyPublic: true}
	if upcoming {
		from := domain.DateOnly(s.now().In(s.location))
		filter.From = &from
	}

	events, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListPublic: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPublic - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListPublic: successfully fetched %d events", len(events))
	return models.FromDomainEventList(events), nil
}

// List возвращает все события для панели администратора
func (s *Service) List(ctx context.Context, req *models.ListEventsRequest) (*models.EventListResponse, error) {
	s.logger.Info("List: fetching events")

	var filter domain.EventsFilter
	if req.Status != nil {
		status, err := models.ToDomainEventStatus(*req.Status)
		if err != nil {
			s.logger.Warn("List: invalid status %q", *req.Status)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Status = &status
	}
	if req.Upcoming {
		from := domain.DateOnly(s.now().In(s.location))
		filter.From = &from
	}

	events, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d events", len(events))
	return models.FromDomainEventList(events), nil
}

// Get получает событие по ID или slug.
// Скрытые события (неактивные и черновики) видны только при includeHidden.
func (s *Service) Get(ctx context.Context, idOrSlug string, includeHidden bool) (*models.EventResponse, error) {
	s.logger.Info("Get: fetching event %s", idOrSlug)

	event, err := s.find(ctx, idOrSlug)
	if err != nil {
		return nil, s.mapRepoError("Get", err)
	}
	if !event.IsPublic() && !includeHidden {
		s.logger.Warn("Get: event %s is hidden", idOrSlug)
		return nil, ErrEventNotFound
	}

	return models.FromDomainEvent(event), nil
}

// Create создает событие
func (s *Service) Create(ctx context.Context, req *models.EventRequest) (*models.EventResponse, error) {
	s.logger.Info("Create: creating event title=%q", req.Title)

	event, err := req.ToDomainEvent()
	if err != nil {
		s.logger.Warn("Create: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	// При создании свободных мест столько же, сколько всего
	if event.AvailablePlaces == nil && event.MaxPlaces != nil {
		places := *event.MaxPlaces
		event.AvailablePlaces = &places
	}
	if err := prepareEvent(event, req.Slug); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return nil, s.mapRepoError("Create", err)
	}

	s.logger.Info("Create: successfully created event id=%d", created.ID)
	return models.FromDomainEvent(created), nil
}

// Update заменяет поля события
func (s *Service) Update(ctx context.Context, id int64, req *models.EventRequest) (*models.EventResponse, error) {
	s.logger.Info("Update: updating event id=%d", id)

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("Update", err)
	}

	event, err := req.ToDomainEvent()
	if err != nil {
		s.logger.Warn("Update: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	event.ID = id
	event.CreatedAt = existing.CreatedAt
	slugValue := req.Slug
	if slugValue == nil {
		slugValue = &existing.Slug
	}
	if err := prepareEvent(event, slugValue); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return nil, s.mapRepoError("Update", err)
	}

	s.logger.Info("Update: successfully updated event id=%d", id)
	return models.FromDomainEvent(updated), nil
}

// Delete удаляет событие
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting event id=%d", id)

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError("Delete", err)
	}

	s.logger.Info("Delete: successfully deleted event id=%d", id)
	return nil
}

// QRCode возвращает PNG QR код со ссылкой на публичную страницу события
func (s *Service) QRCode(ctx context.Context, idOrSlug string) ([]byte, error) {
	s.logger.Info("QRCode: rendering qr for event %s", idOrSlug)

	event, err := s.find(ctx, idOrSlug)
	if err != nil {
		return nil, s.mapRepoError("QRCode", err)
	}

	png, err := s.qr.Render(s.PublicURL(event.Slug))
	if err != nil {
		s.logger.Error("QRCode: render failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrQRCode, err)
	}
	return png, nil
}

// PublicURL ссылка на страницу события на сайте
func (s *Service) PublicURL(eventSlug string) string {
	return s.baseURL + publicPathPrefix + eventSlug
}

// Вспомогательные методы

func (s *Service) find(ctx context.Context, idOrSlug string) (*domain.Event, error) {
	if id, err := strconv.ParseInt(idOrSlug, 10, 64); err == nil {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.GetBySlug(ctx, idOrSlug)
}

// prepareEvent нормализует событие и проверяет даты, цену и места
func prepareEvent(event *domain.Event, requestedSlug *string) error {
	event.Title = strings.TrimSpace(event.Title)
	if event.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(event.Title) > domain.MaxNameLength {
		return fmt.Errorf("%w: title is too long", ErrInvalidInput)
	}

	source := event.Title
	if requestedSlug != nil && strings.TrimSpace(*requestedSlug) != "" {
		source = *requestedSlug
	}
	event.Slug = slug.Make(source)
	if event.Slug == "" {
		return fmt.Errorf("%w: slug cannot be derived from title", ErrInvalidInput)
	}

	if event.StartsAt.IsZero() {
		return fmt.Errorf("%w: startsAt is required", ErrInvalidInput)
	}
	if event.EndsAt != nil && !event.EndsAt.After(event.StartsAt) {
		return fmt.Errorf("%w: endsAt must be after startsAt", ErrInvalidInput)
	}

	if event.IsFree {
		event.Price = nil
	} else if event.Price != nil && event.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	if event.MaxPlaces != nil && *event.MaxPlaces < 0 {
		return fmt.Errorf("%w: maxPlaces must not be negative", ErrInvalidInput)
	}
	if event.AvailablePlaces != nil {
		if *event.AvailablePlaces < 0 {
			return fmt.Errorf("%w: availablePlaces must not be negative", ErrInvalidInput)
		}
		if event.MaxPlaces != nil && *event.AvailablePlaces > *event.MaxPlaces {
			return fmt.Errorf("%w: availablePlaces exceeds maxPlaces", ErrInvalidInput)
		}
	}

	for _, im := range event.Gallery {
		if strings.TrimSpace(im.URL) == "" {
			return fmt.Errorf("%w: image url is required", ErrInvalidInput)
		}
	}
	event.Includes = compact(event.Includes)
	event.WhatToBring = compact(event.WhatToBring)
	return nil
}

// compact убирает пустые строки из списка
func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (s *Service) mapRepoError(op string, err error) error {
	switch {
	case errors.Is(err, eventRepo.ErrEventNotFound):
		s.logger.Warn("%s: event not found", op)
		return ErrEventNotFound
	case errors.Is(err, eventRepo.ErrSlugTaken):
		s.logger.Warn("%s: slug already taken", op)
		return ErrSlugTaken
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
