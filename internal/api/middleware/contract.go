package middleware

import "github.com/m04kA/SMC-ClinicService/pkg/jwtauth"

// TokenParser проверяет токен администратора
type TokenParser interface {
	Parse(token string) (*jwtauth.Claims, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
