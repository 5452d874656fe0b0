package update_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/service/bookings"
	"github.com/m04kA/SMC-ClinicService/internal/service/bookings/models"
)

type stubService struct {
	gotID int64
	got   *models.UpdateBookingRequest
	err   error
}

func (s *stubService) Update(_ context.Context, id int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.gotID, s.got = id, req
	if s.err != nil {
		return nil, s.err
	}
	status := "PENDING"
	if req.Status != nil {
		status = strings.ToUpper(*req.Status)
	}
	return &models.BookingResponse{ID: id, Status: status, AdminNotes: req.AdminNotes}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, path, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/bookings/{id}", h.Handle).Methods(http.MethodPatch)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body)))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, nopLogger{})

	rec := serve(h, "/api/bookings/5", `{"status":"confirmed","adminNotes":"llamar antes"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), svc.gotID)
	require.NotNil(t, svc.got.Status)
	assert.Equal(t, "confirmed", *svc.got.Status)
	assert.Nil(t, svc.got.ClientNotes)

	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "CONFIRMED", body.Status)
	require.NotNil(t, body.AdminNotes)
	assert.Equal(t, "llamar antes", *body.AdminNotes)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
		err  error
		code int
	}{
		{name: "bad id", path: "/api/bookings/x", body: `{}`, code: http.StatusBadRequest},
		{name: "bad body", path: "/api/bookings/1", body: `{`, code: http.StatusBadRequest},
		{name: "empty body", path: "/api/bookings/1", body: ``, code: http.StatusBadRequest},
		{name: "not found", path: "/api/bookings/1", body: `{"status":"CANCELLED"}`, err: bookings.ErrBookingNotFound, code: http.StatusNotFound},
		{name: "bad status", path: "/api/bookings/1", body: `{"status":"LOST"}`, err: bookings.ErrInvalidStatus, code: http.StatusBadRequest},
		{name: "slot taken", path: "/api/bookings/1", body: `{"status":"PENDING"}`, err: bookings.ErrSlotNotAvailable, code: http.StatusConflict},
		{name: "nothing to update", path: "/api/bookings/1", body: `{}`, err: bookings.ErrInvalidInput, code: http.StatusBadRequest},
		{name: "internal", path: "/api/bookings/1", body: `{"status":"PENDING"}`, err: bookings.ErrInternal, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubService{err: tt.err}, nopLogger{})
			rec := serve(h, tt.path, tt.body)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

// Возврат отмененной записи в занятое время отклоняется ограничением пересечений
func TestHandler_Handle_RestoreIntoOccupiedSlot(t *testing.T) {
	svc := &stubService{err: bookings.ErrSlotNotAvailable}
	h := NewHandler(svc, nopLogger{})

	rec := serve(h, "/api/bookings/7", `{"status":"CONFIRMED"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, int64(7), svc.gotID)
	require.NotNil(t, svc.got.Status)
	assert.Equal(t, "CONFIRMED", *svc.got.Status)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, msgSlotNotAvailable, body["error"])
}
