package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	adminRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/admin"
	"github.com/m04kA/SMC-ClinicService/internal/service/auth/models"
	"github.com/m04kA/SMC-ClinicService/pkg/email"
	"github.com/m04kA/SMC-ClinicService/pkg/password"
)

// dummyHash проверяется вместо хеша при неизвестном email
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z8Lh6CmJ1pUu0vQy3v4ZyN3K"

// Service сервис входа администраторов
type Service struct {
	repo   AdminRepository
	tokens TokenIssuer
	logger Logger
}

// NewService создает новый экземпляр сервиса входа
func NewService(repo AdminRepository, tokens TokenIssuer, logger Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		logger: logger,
	}
}

// Login проверяет email и пароль и выпускает токен
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	s.logger.Info("Login: attempt for %q", req.Email)

	addr := strings.ToLower(strings.TrimSpace(req.Email))
	if addr == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	admin, err := s.repo.GetByEmail(ctx, addr)
	if err != nil {
		if errors.Is(err, adminRepo.ErrAdminNotFound) {
			_ = password.Check(dummyHash, req.Password)
			s.logger.Warn("Login: unknown admin %q", addr)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error: %v", err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := password.Check(admin.PasswordHash, req.Password); err != nil {
		s.logger.Warn("Login: password check failed for %q: %v", addr, err)
		return nil, ErrInvalidCredentials
	}
	if !admin.IsActive {
		s.logger.Warn("Login: admin %q is disabled", addr)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(admin.ID, admin.Email)
	if err != nil {
		s.logger.Error("Login: failed to issue token: %v", err)
		return nil, fmt.Errorf("%w: Login - issue token: %v", ErrInternal, err)
	}

	if err := s.repo.TouchLastLogin(ctx, admin.ID); err != nil {
		s.logger.Warn("Login: failed to update last login: %v", err)
	}

	s.logger.Info("Login: admin id=%d logged in", admin.ID)
	return &models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Admin:     models.FromDomainAdmin(admin),
	}, nil
}

// EnsureAdmin создает администратора или меняет ему имя и пароль
func (s *Service) EnsureAdmin(ctx context.Context, rawEmail, name, plainPassword string) (*models.AdminResponse, error) {
	s.logger.Info("EnsureAdmin: upserting admin %q", rawEmail)

	addr, err := email.Normalize(rawEmail)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		if errors.Is(err, password.ErrTooShort) {
			return nil, fmt.Errorf("%w: password must have at least %d characters", ErrInvalidInput, password.MinLength)
		}
		return nil, fmt.Errorf("%w: EnsureAdmin - hash password: %v", ErrInternal, err)
	}

	admin, err := s.repo.Upsert(ctx, &domain.AdminUser{Email: addr, Name: name, PasswordHash: hash})
	if err != nil {
		s.logger.Error("EnsureAdmin: repository error: %v", err)
		return nil, fmt.Errorf("%w: EnsureAdmin - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("EnsureAdmin: admin id=%d saved", admin.ID)
	resp := models.FromDomainAdmin(admin)
	return &resp, nil
}
