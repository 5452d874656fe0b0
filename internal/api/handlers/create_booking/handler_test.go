package create_booking

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

	createBooking "github.com/m04kA/SMC-ClinicService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

type stubUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{
	"clientName": "Ana García",
	"clientEmail": "ana@example.com",
	"clientPhone": "+34600000000",
	"serviceId": 4,
	"date": "2026-03-16",
	"startTime": "10:00",
	"clientNotes": "Primera visita"
}`

func TestHandler_Handle_Created(t *testing.T) {
	uc := &stubUseCase{resp: &createBooking.Response{
		ID:           12,
		ClientName:   "Ana García",
		ClientEmail:  "ana@example.com",
		ClientPhone:  "+34600000000",
		ServiceID:    4,
		ServiceName:  "Masaje",
		BookingDate:  time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		StartTime:    "10:00",
		EndTime:      "11:00",
		Status:       "PENDING",
		CreatedAt:    time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		WhatsAppLink: "https://wa.me/34600111222?text=hola",
	}}
	h := NewHandler(uc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(validBody)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, types.TimeString("10:00"), uc.got.StartTime)
	assert.Equal(t, "2026-03-16", uc.got.Date.Format("2006-01-02"))

	var body BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(12), body.ID)
	assert.Equal(t, "11:00", body.EndTime)
	assert.Equal(t, "PENDING", body.Status)
	require.NotNil(t, body.WhatsAppLink)
	assert.Contains(t, *body.WhatsAppLink, "wa.me")
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"broken json", "{", nil, http.StatusBadRequest},
		{"bad date", strings.Replace(validBody, "2026-03-16", "16-03-2026", 1), nil, http.StatusBadRequest},
		{"slot taken", validBody, createBooking.ErrSlotNotAvailable, http.StatusConflict},
		{"service missing", validBody, createBooking.ErrServiceNotFound, http.StatusNotFound},
		{"service inactive", validBody, createBooking.ErrServiceInactive, http.StatusBadRequest},
		{"parent service", validBody, createBooking.ErrServiceNotBookable, http.StatusBadRequest},
		{"past date", validBody, createBooking.ErrInvalidDate, http.StatusBadRequest},
		{"invalid input", validBody, createBooking.ErrInvalidInput, http.StatusBadRequest},
		{"internal", validBody, createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, nopLogger{})
			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(tt.body)))

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}
