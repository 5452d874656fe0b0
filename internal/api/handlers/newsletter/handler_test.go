package newsletter

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	newsletterService "github.com/m04kA/SMC-ClinicService/internal/service/newsletter"
	"github.com/m04kA/SMC-ClinicService/internal/service/newsletter/models"
)

type stubService struct {
	subscribed   *models.SubscribeRequest
	unsubscribed *models.UnsubscribeRequest
	onlyActive   bool
	deactivated  int64
	err          error
}

func (s *stubService) Subscribe(_ context.Context, req *models.SubscribeRequest) (*models.SubscriberResponse, error) {
	s.subscribed = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.SubscriberResponse{ID: 1, Email: req.Email, Source: "footer", IsActive: true}, nil
}

func (s *stubService) Unsubscribe(_ context.Context, req *models.UnsubscribeRequest) error {
	s.unsubscribed = req
	return s.err
}

func (s *stubService) List(_ context.Context, onlyActive bool) (*models.SubscriberListResponse, error) {
	s.onlyActive = onlyActive
	if s.err != nil {
		return nil, s.err
	}
	return &models.SubscriberListResponse{Subscribers: []models.SubscriberResponse{}}, nil
}

func (s *stubService) Deactivate(_ context.Context, id int64) error {
	s.deactivated = id
	return s.err
}

func (s *stubService) Export(_ context.Context, w io.Writer) error {
	if s.err != nil {
		return s.err
	}
	_, err := io.WriteString(w, "email,name,source,date\nana@example.com,Ana,Footer,16/03/2026\n")
	return err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/newsletter", h.Subscribe).Methods(http.MethodPost)
	router.HandleFunc("/api/newsletter/unsubscribe", h.Unsubscribe).Methods(http.MethodPost)
	router.HandleFunc("/api/newsletter", h.List).Methods(http.MethodGet)
	router.HandleFunc("/api/newsletter/export", h.Export).Methods(http.MethodGet)
	router.HandleFunc("/api/newsletter/{id}", h.Delete).Methods(http.MethodDelete)
	return router
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestHandler_SubscribeAndUnsubscribe(t *testing.T) {
	svc := &stubService{}
	router := newRouter(NewHandler(svc, nopLogger{}))

	rec := do(router, http.MethodPost, "/api/newsletter", `{"email":"ana@example.com","name":"Ana"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ana@example.com", svc.subscribed.Email)

	rec = do(router, http.MethodPost, "/api/newsletter/unsubscribe", `{"email":"ana@example.com"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "ana@example.com", svc.unsubscribed.Email)
}

func TestHandler_ListAndDelete(t *testing.T) {
	svc := &stubService{}
	router := newRouter(NewHandler(svc, nopLogger{}))

	require.Equal(t, http.StatusOK, do(router, http.MethodGet, "/api/newsletter?active=true", "").Code)
	assert.True(t, svc.onlyActive)

	require.Equal(t, http.StatusNoContent, do(router, http.MethodDelete, "/api/newsletter/6", "").Code)
	assert.Equal(t, int64(6), svc.deactivated)
}

func TestHandler_Export(t *testing.T) {
	router := newRouter(NewHandler(&stubService{}, nopLogger{}))

	rec := do(router, http.MethodGet, "/api/newsletter/export", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "suscriptores.csv")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "email,name,source,date\n"))
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		err    error
		code   int
	}{
		{name: "invalid email", method: http.MethodPost, path: "/api/newsletter", body: `{"email":"nope"}`, err: newsletterService.ErrInvalidEmail, code: http.StatusBadRequest},
		{name: "invalid source", method: http.MethodPost, path: "/api/newsletter", body: `{"email":"a@b.es","source":"x"}`, err: newsletterService.ErrInvalidInput, code: http.StatusBadRequest},
		{name: "empty body", method: http.MethodPost, path: "/api/newsletter/unsubscribe", code: http.StatusBadRequest},
		{name: "missing", method: http.MethodDelete, path: "/api/newsletter/6", err: newsletterService.ErrSubscriberNotFound, code: http.StatusNotFound},
		{name: "export failed", method: http.MethodGet, path: "/api/newsletter/export", err: newsletterService.ErrExport, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(NewHandler(&stubService{err: tt.err}, nopLogger{}))
			assert.Equal(t, tt.code, do(router, tt.method, tt.path, tt.body).Code)
		})
	}
}
