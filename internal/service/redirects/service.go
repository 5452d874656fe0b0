package redirects

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	redirectRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/redirect"
	"github.com/m04kA/SMC-ClinicService/internal/service/redirects/models"
)

// Service сервис редиректов старых адресов сайта
type Service struct {
	repo   RedirectRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса редиректов
func NewService(repo RedirectRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Resolve ищет активный редирект для пути и учитывает переход
func (s *Service) Resolve(ctx context.Context, path string) (*models.Target, error) {
	normalized, err := NormalizePath(path)
	if err != nil {
		return nil, ErrRedirectNotFound
	}

	rd, err := s.repo.Hit(ctx, normalized)
	if err != nil {
		if errors.Is(err, redirectRepo.ErrRedirectNotFound) {
			return nil, ErrRedirectNotFound
		}
		s.logger.Error("Resolve: repository error: %v", err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Resolve: %s -> %s (%d)", normalized, rd.ToPath, rd.StatusCode)
	code := http.StatusFound
	if rd.IsPermanent() {
		code = http.StatusMovedPermanently
	}
	return &models.Target{Location: rd.ToPath, StatusCode: code}, nil
}

// List возвращает все редиректы
func (s *Service) List(ctx context.Context) (*models.RedirectListResponse, error) {
	s.logger.Info("List: fetching redirects")

	items, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainRedirectList(items), nil
}

// GetByID получает редирект по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.RedirectResponse, error) {
	s.logger.Info("GetByID: fetching redirect id=%d", id)

	rd, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", err)
	}
	return models.FromDomainRedirect(rd), nil
}

// Create создает редирект
func (s *Service) Create(ctx context.Context, req *models.RedirectRequest) (*models.RedirectResponse, error) {
	s.logger.Info("Create: creating redirect from=%q", req.FromPath)

	rd := req.ToDomainRedirect()
	if err := prepareRedirect(rd); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.repo.Create(ctx, rd)
	if err != nil {
		return nil, s.mapRepoError("Create", err)
	}

	s.logger.Info("Create: successfully created redirect id=%d", created.ID)
	return models.FromDomainRedirect(created), nil
}

// Update заменяет поля редиректа; счетчик переходов сохраняется
func (s *Service) Update(ctx context.Context, id int64, req *models.RedirectRequest) (*models.RedirectResponse, error) {
	s.logger.Info("Update: updating redirect id=%d", id)

	rd := req.ToDomainRedirect()
	rd.ID = id
	if err := prepareRedirect(rd); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.repo.Update(ctx, rd)
	if err != nil {
		return nil, s.mapRepoError("Update", err)
	}

	s.logger.Info("Update: successfully updated redirect id=%d", id)
	return models.FromDomainRedirect(updated), nil
}

// Delete удаляет редирект
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting redirect id=%d", id)

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError("Delete", err)
	}

	s.logger.Info("Delete: successfully deleted redirect id=%d", id)
	return nil
}

// NormalizePath приводит путь к виду "/a/b": без query, fragment и завершающего слэша
func NormalizePath(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return "", fmt.Errorf("%w: path must start with a single /", ErrInvalidInput)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: invalid path: %v", ErrInvalidInput, err)
	}

	path := u.Path
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path, nil
}

// Вспомогательные методы

func prepareRedirect(rd *domain.Redirect) error {
	from, err := NormalizePath(rd.FromPath)
	if err != nil {
		return err
	}
	rd.FromPath = from

	rd.ToPath = strings.TrimSpace(rd.ToPath)
	if rd.ToPath == "" {
		return fmt.Errorf("%w: toPath is required", ErrInvalidInput)
	}
	if strings.HasPrefix(rd.ToPath, "/") {
		to, err := NormalizePath(rd.ToPath)
		if err != nil {
			return err
		}
		if to == rd.FromPath {
			return fmt.Errorf("%w: redirect points to itself", ErrInvalidInput)
		}
	} else {
		u, err := url.Parse(rd.ToPath)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: toPath must be a path or an absolute http(s) url", ErrInvalidInput)
		}
	}

	switch rd.StatusCode {
	case 0:
		rd.StatusCode = http.StatusMovedPermanently
	case http.StatusMovedPermanently, http.StatusFound:
	default:
		return fmt.Errorf("%w: statusCode must be 301 or 302", ErrInvalidInput)
	}
	return nil
}

func (s *Service) mapRepoError(op string, err error) error {
	switch {
	case errors.Is(err, redirectRepo.ErrRedirectNotFound):
		s.logger.Warn("%s: redirect not found", op)
		return ErrRedirectNotFound
	case errors.Is(err, redirectRepo.ErrPathTaken):
		s.logger.Warn("%s: from path already exists", op)
		return ErrPathTaken
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
