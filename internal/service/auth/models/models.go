package models

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// LoginRequest запрос на вход в панель
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminResponse данные администратора
type AdminResponse struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
}

// LoginResponse токен доступа
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Admin     AdminResponse `json:"admin"`
}

// FromDomainAdmin конвертирует domain модель в DTO
func FromDomainAdmin(a *domain.AdminUser) AdminResponse {
	return AdminResponse{
		ID:          a.ID,
		Email:       a.Email,
		Name:        a.Name,
		LastLoginAt: a.LastLoginAt,
	}
}
