package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/service/dashboard/models"
)

type stubService struct {
	resp *models.StatsResponse
	err  error
}

func (s *stubService) Stats(context.Context) (*models.StatsResponse, error) {
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandler_Handle(t *testing.T) {
	h := NewHandler(&stubService{resp: &models.StatsResponse{Date: "2026-03-16", BookingsToday: 4, PendingSales: 1}}, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"bookingsToday":4`)
	assert.Contains(t, rec.Body.String(), `"date":"2026-03-16"`)
}

func TestHandler_Handle_Error(t *testing.T) {
	h := NewHandler(&stubService{err: errors.New("db down")}, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
}
