package redirects

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redirectsService "github.com/m04kA/SMC-ClinicService/internal/service/redirects"
	"github.com/m04kA/SMC-ClinicService/internal/service/redirects/models"
)

type stubService struct {
	targets  map[string]*models.Target
	resolved []string
	created  *models.RedirectRequest
	err      error
}

func (s *stubService) Resolve(_ context.Context, path string) (*models.Target, error) {
	s.resolved = append(s.resolved, path)
	if s.err != nil {
		return nil, s.err
	}
	if target, ok := s.targets[path]; ok {
		return target, nil
	}
	return nil, redirectsService.ErrRedirectNotFound
}

func (s *stubService) List(context.Context) (*models.RedirectListResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.RedirectListResponse{Redirects: []models.RedirectResponse{}}, nil
}

func (s *stubService) GetByID(_ context.Context, id int64) (*models.RedirectResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.RedirectResponse{ID: id}, nil
}

func (s *stubService) Create(_ context.Context, req *models.RedirectRequest) (*models.RedirectResponse, error) {
	s.created = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.RedirectResponse{ID: 1, FromPath: req.FromPath, ToPath: req.ToPath, StatusCode: 301}, nil
}

func (s *stubService) Update(_ context.Context, id int64, req *models.RedirectRequest) (*models.RedirectResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.RedirectResponse{ID: id, FromPath: req.FromPath}, nil
}

func (s *stubService) Delete(context.Context, int64) error { return s.err }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/redirects", h.List).Methods(http.MethodGet)
	router.HandleFunc("/api/redirects", h.Create).Methods(http.MethodPost)
	router.HandleFunc("/api/redirects/{id}", h.Get).Methods(http.MethodGet)
	router.HandleFunc("/api/redirects/{id}", h.Update).Methods(http.MethodPut)
	router.HandleFunc("/api/redirects/{id}", h.Delete).Methods(http.MethodDelete)
	router.NotFoundHandler = http.HandlerFunc(h.Resolve)
	return router
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestHandler_Resolve(t *testing.T) {
	svc := &stubService{targets: map[string]*models.Target{
		"/tratamientos": {Location: "/servicios", StatusCode: http.StatusMovedPermanently},
		"/promo":        {Location: "https://example.com/oferta", StatusCode: http.StatusFound},
	}}
	router := newRouter(NewHandler(svc, nopLogger{}))

	rec := do(router, http.MethodGet, "/tratamientos", "")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/servicios", rec.Header().Get("Location"))

	rec = do(router, http.MethodGet, "/promo?utm=1", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://example.com/oferta", rec.Header().Get("Location"))

	rec = do(router, http.MethodGet, "/desconocido", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(router, http.MethodPost, "/tratamientos", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, []string{"/tratamientos", "/promo", "/desconocido"}, svc.resolved)
}

func TestHandler_Resolve_InternalErrorIsNotFound(t *testing.T) {
	router := newRouter(NewHandler(&stubService{err: redirectsService.ErrInternal}, nopLogger{}))

	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/viejo", "").Code)
}

func TestHandler_Create(t *testing.T) {
	svc := &stubService{}
	router := newRouter(NewHandler(svc, nopLogger{}))

	rec := do(router, http.MethodPost, "/api/redirects", `{"fromPath":"/viejo","toPath":"/nuevo"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/viejo", svc.created.FromPath)
	assert.Equal(t, 0, svc.created.StatusCode)
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
		{name: "path taken", method: http.MethodPost, path: "/api/redirects", body: `{"fromPath":"/a","toPath":"/b"}`, err: redirectsService.ErrPathTaken, code: http.StatusConflict},
		{name: "invalid", method: http.MethodPut, path: "/api/redirects/1", body: `{"fromPath":"a"}`, err: redirectsService.ErrInvalidInput, code: http.StatusBadRequest},
		{name: "missing", method: http.MethodGet, path: "/api/redirects/1", err: redirectsService.ErrRedirectNotFound, code: http.StatusNotFound},
		{name: "bad id", method: http.MethodDelete, path: "/api/redirects/x", code: http.StatusBadRequest},
		{name: "internal", method: http.MethodGet, path: "/api/redirects", err: redirectsService.ErrInternal, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(NewHandler(&stubService{err: tt.err}, nopLogger{}))
			assert.Equal(t, tt.code, do(router, tt.method, tt.path, tt.body).Code)
		})
	}
}
