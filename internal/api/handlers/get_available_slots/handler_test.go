package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ClinicService/internal/usecase/get_available_slots"
)

type stubUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	s.got = req
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandler_Handle(t *testing.T) {
	uc := &stubUseCase{resp: &getAvailableSlots.Response{
		Date:            time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		ServiceID:       3,
		DurationMinutes: 60,
		Slots: []domain.Slot{
			{StartTime: "10:00", EndTime: "11:00", Available: true},
			{StartTime: "11:00", EndTime: "12:00", Available: false},
		},
	}}
	h := NewHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/available-slots?serviceId=3&date=2026-03-16", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), uc.got.ServiceID)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2026-03-16", body.Date)
	assert.Equal(t, 60, body.DurationMinutes)
	assert.Equal(t, []SlotResponse{
		{StartTime: "10:00", EndTime: "11:00", Available: true},
		{StartTime: "11:00", EndTime: "12:00", Available: false},
	}, body.Slots)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		err    error
		status int
	}{
		{"missing service", "?date=2026-03-16", nil, http.StatusBadRequest},
		{"bad service", "?serviceId=x&date=2026-03-16", nil, http.StatusBadRequest},
		{"missing date", "?serviceId=1", nil, http.StatusBadRequest},
		{"bad date", "?serviceId=1&date=16/03/2026", nil, http.StatusBadRequest},
		{"not found", "?serviceId=1&date=2026-03-16", getAvailableSlots.ErrServiceNotFound, http.StatusNotFound},
		{"inactive", "?serviceId=1&date=2026-03-16", getAvailableSlots.ErrServiceInactive, http.StatusBadRequest},
		{"parent", "?serviceId=1&date=2026-03-16", getAvailableSlots.ErrServiceNotBookable, http.StatusBadRequest},
		{"bad schedule", "?serviceId=1&date=2026-03-16", getAvailableSlots.ErrInvalidSchedule, http.StatusBadRequest},
		{"internal", "?serviceId=1&date=2026-03-16", getAvailableSlots.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, nopLogger{})
			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/bookings/available-slots"+tt.query, nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

