package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
)

type contextKey string

const (
	adminIDKey    contextKey = "admin_id"
	adminEmailKey contextKey = "admin_email"

	msgMissingToken = "требуется авторизация"
	msgInvalidToken = "недействительный или просроченный токен"
)

// Auth пропускает только запросы с валидным Bearer токеном администратора
func Auth(parser TokenParser, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				logger.Warn("%s %s - missing bearer token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			ctx, err := authenticate(r.Context(), parser, token)
			if err != nil {
				logger.Warn("%s %s - invalid token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth распознает администратора, если токен валиден, но никогда не отклоняет запрос
func OptionalAuth(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, ok := bearerToken(r); ok {
				if ctx, err := authenticate(r.Context(), parser, token); err == nil {
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetAdminID извлекает ID администратора из контекста
func GetAdminID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(adminIDKey).(int64)
	return id, ok
}

// GetAdminEmail извлекает email администратора из контекста
func GetAdminEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(adminEmailKey).(string)
	return email, ok
}

// IsAdmin true, если запрос пришел от авторизованного администратора
func IsAdmin(ctx context.Context) bool {
	_, ok := GetAdminID(ctx)
	return ok
}

// WithAdmin кладет администратора в контекст
func WithAdmin(ctx context.Context, id int64, email string) context.Context {
	ctx = context.WithValue(ctx, adminIDKey, id)
	return context.WithValue(ctx, adminEmailKey, email)
}

func authenticate(ctx context.Context, parser TokenParser, token string) (context.Context, error) {
	claims, err := parser.Parse(token)
	if err != nil {
		return nil, err
	}
	id, err := claims.AdminID()
	if err != nil {
		return nil, err
	}
	return WithAdmin(ctx, id, claims.Email), nil
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
