package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	authService "github.com/m04kA/SMC-ClinicService/internal/service/auth"
	"github.com/m04kA/SMC-ClinicService/internal/service/auth/models"
)

type stubService struct {
	got *models.LoginRequest
	err error
}

func (s *stubService) Login(_ context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.LoginResponse{
		Token:     "signed.jwt.token",
		ExpiresAt: time.Date(2026, 3, 17, 9, 0, 0, 0, time.UTC),
		Admin:     models.AdminResponse{ID: 1, Email: req.Email, Name: "Admin"},
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandler_Login(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"admin@clinic.es","password":"secreto123"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "secreto123", svc.got.Password)

	var body models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "signed.jwt.token", body.Token)
	assert.Equal(t, int64(1), body.Admin.ID)
}

func TestHandler_Login_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		code int
	}{
		{name: "bad body", body: `nope`, code: http.StatusBadRequest},
		{name: "missing fields", body: `{}`, err: authService.ErrInvalidInput, code: http.StatusBadRequest},
		{name: "wrong password", body: `{"email":"a@b.es","password":"x"}`, err: authService.ErrInvalidCredentials, code: http.StatusUnauthorized},
		{name: "internal", body: `{"email":"a@b.es","password":"x"}`, err: authService.ErrInternal, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubService{err: tt.err}, nopLogger{})
			rec := httptest.NewRecorder()
			h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tt.body)))
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestHandler_Me(t *testing.T) {
	h := NewHandler(&stubService{}, nopLogger{})

	rec := httptest.NewRecorder()
	h.Me(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(middleware.WithAdmin(req.Context(), 3, "admin@clinic.es"))
	rec = httptest.NewRecorder()
	h.Me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"admin@clinic.es"`)
	assert.Contains(t, rec.Body.String(), `"id":3`)
}
