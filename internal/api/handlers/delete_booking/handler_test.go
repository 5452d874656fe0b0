package delete_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ClinicService/internal/service/bookings"
)

type stubService struct {
	deleted []int64
	err     error
}

func (s *stubService) Delete(_ context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/bookings/{id}", h.Handle).Methods(http.MethodDelete)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, path, nil))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	svc := &stubService{}
	rec := serve(NewHandler(svc, nopLogger{}), "/api/bookings/9")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []int64{9}, svc.deleted)
}

func TestHandler_Handle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(NewHandler(&stubService{}, nopLogger{}), "/api/bookings/-1").Code)
	assert.Equal(t, http.StatusNotFound,
		serve(NewHandler(&stubService{err: bookings.ErrBookingNotFound}, nopLogger{}), "/api/bookings/2").Code)
	assert.Equal(t, http.StatusInternalServerError,
		serve(NewHandler(&stubService{err: bookings.ErrInternal}, nopLogger{}), "/api/bookings/2").Code)
}
