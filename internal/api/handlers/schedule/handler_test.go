package schedule

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scheduleService "github.com/m04kA/SMC-ClinicService/internal/service/schedule"
	"github.com/m04kA/SMC-ClinicService/internal/service/schedule/models"
)

type stubService struct {
	hours     []models.WorkingHourRequest
	from, to  *time.Time
	blocked   *models.BlockedDateRequest
	deletedID int64
	contact   *models.ContactInfoRequest
	err       error
}

func (s *stubService) ListWorkingHours(context.Context) (*models.WorkingHoursResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.WorkingHoursResponse{WorkingHours: make([]models.WorkingHourResponse, 7)}, nil
}

func (s *stubService) UpsertWorkingHours(_ context.Context, reqs []models.WorkingHourRequest) (*models.WorkingHoursResponse, error) {
	s.hours = reqs
	if s.err != nil {
		return nil, s.err
	}
	return &models.WorkingHoursResponse{WorkingHours: make([]models.WorkingHourResponse, 7)}, nil
}

func (s *stubService) ListBlockedDates(_ context.Context, from, to *time.Time) (*models.BlockedDateListResponse, error) {
	s.from, s.to = from, to
	if s.err != nil {
		return nil, s.err
	}
	return &models.BlockedDateListResponse{BlockedDates: []models.BlockedDateResponse{}}, nil
}

func (s *stubService) CreateBlockedDate(_ context.Context, req *models.BlockedDateRequest) (*models.BlockedDateResponse, error) {
	s.blocked = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BlockedDateResponse{ID: 3, Date: req.Date, AllDay: req.AllDay}, nil
}

func (s *stubService) DeleteBlockedDate(_ context.Context, id int64) error {
	s.deletedID = id
	return s.err
}

func (s *stubService) GetContactInfo(context.Context) (*models.ContactInfoResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.ContactInfoResponse{BufferMinutes: 15}, nil
}

func (s *stubService) SaveContactInfo(_ context.Context, req *models.ContactInfoRequest) (*models.ContactInfoResponse, error) {
	s.contact = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.ContactInfoResponse{Phone: req.Phone, BufferMinutes: req.BufferMinutes}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/working-hours", h.ListWorkingHours).Methods(http.MethodGet)
	router.HandleFunc("/api/working-hours", h.UpsertWorkingHours).Methods(http.MethodPost)
	router.HandleFunc("/api/blocked-dates", h.ListBlockedDates).Methods(http.MethodGet)
	router.HandleFunc("/api/blocked-dates", h.CreateBlockedDate).Methods(http.MethodPost)
	router.HandleFunc("/api/blocked-dates/{id}", h.DeleteBlockedDate).Methods(http.MethodDelete)
	router.HandleFunc("/api/contact-info", h.GetContactInfo).Methods(http.MethodGet)
	router.HandleFunc("/api/contact-info", h.SaveContactInfo).Methods(http.MethodPut)
	return router
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestHandler_WorkingHours(t *testing.T) {
	svc := &stubService{}
	router := newRouter(NewHandler(svc, nopLogger{}))

	rec := do(router, http.MethodGet, "/api/working-hours", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body models.WorkingHoursResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.WorkingHours, 7)

	rec = do(router, http.MethodPost, "/api/working-hours",
		`[{"dayOfWeek":1,"openTime":"09:00","closeTime":"18:00","breakStart":"14:00","breakEnd":"15:00","isOpen":true}]`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.hours, 1)
	assert.Equal(t, 1, svc.hours[0].DayOfWeek)
	require.NotNil(t, svc.hours[0].BreakStart)
	assert.Equal(t, "14:00", *svc.hours[0].BreakStart)

	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodPost, "/api/working-hours", `{"dayOfWeek":1}`).Code)
}

func TestHandler_WorkingHours_Invalid(t *testing.T) {
	router := newRouter(NewHandler(&stubService{err: scheduleService.ErrInvalidWorkingHours}, nopLogger{}))

	rec := do(router, http.MethodPost, "/api/working-hours", `[{"dayOfWeek":9}]`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_BlockedDates(t *testing.T) {
	svc := &stubService{}
	router := newRouter(NewHandler(svc, nopLogger{}))

	rec := do(router, http.MethodGet, "/api/blocked-dates?from=2026-03-01&to=2026-03-31", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.from)
	require.NotNil(t, svc.to)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *svc.from)
	assert.Equal(t, 31, svc.to.Day())

	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodGet, "/api/blocked-dates?from=01-03-2026", "").Code)

	rec = do(router, http.MethodPost, "/api/blocked-dates", `{"date":"2026-03-19","allDay":true,"reason":"Festivo"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, svc.blocked.AllDay)
	assert.Equal(t, "2026-03-19", svc.blocked.Date)

	rec = do(router, http.MethodDelete, "/api/blocked-dates/3", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(3), svc.deletedID)
}

func TestHandler_BlockedDates_Errors(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		err    error
		code   int
	}{
		{name: "bad range", method: http.MethodGet, path: "/api/blocked-dates?from=2026-03-10&to=2026-03-01", err: scheduleService.ErrInvalidInput, code: http.StatusBadRequest},
		{name: "partial without end", method: http.MethodPost, path: "/api/blocked-dates", body: `{"date":"2026-03-19","startTime":"10:00"}`, err: scheduleService.ErrInvalidTimeRange, code: http.StatusBadRequest},
		{name: "delete missing", method: http.MethodDelete, path: "/api/blocked-dates/8", err: scheduleService.ErrBlockedDateNotFound, code: http.StatusNotFound},
		{name: "delete bad id", method: http.MethodDelete, path: "/api/blocked-dates/abc", code: http.StatusBadRequest},
		{name: "internal", method: http.MethodGet, path: "/api/blocked-dates", err: scheduleService.ErrInternal, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(NewHandler(&stubService{err: tt.err}, nopLogger{}))
			assert.Equal(t, tt.code, do(router, tt.method, tt.path, tt.body).Code)
		})
	}
}

func TestHandler_ContactInfo(t *testing.T) {
	svc := &stubService{}
	router := newRouter(NewHandler(svc, nopLogger{}))

	rec := do(router, http.MethodGet, "/api/contact-info", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"bufferMinutes":15`)

	rec = do(router, http.MethodPut, "/api/contact-info", `{"phone":"+34600111222","bufferMinutes":30}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.contact.Phone)
	assert.Equal(t, "+34600111222", *svc.contact.Phone)
	assert.Equal(t, 30, svc.contact.BufferMinutes)

	router = newRouter(NewHandler(&stubService{err: scheduleService.ErrInvalidInput}, nopLogger{}))
	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodPut, "/api/contact-info", `{"bufferMinutes":500}`).Code)
}
