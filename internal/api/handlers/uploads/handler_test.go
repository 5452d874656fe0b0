package uploads

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/infra/upload"
)

type stubStore struct {
	gotName string
	gotData []byte
	deleted string
	err     error
}

func (s *stubStore) Save(_ context.Context, src io.Reader, filename string) (*upload.Result, error) {
	s.gotName = filename
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	s.gotData = data
	if s.err != nil {
		return nil, s.err
	}
	return &upload.Result{URL: "/uploads/abc.jpg", ThumbURL: "/uploads/thumbs/abc.jpg", Width: 800, Height: 600}, nil
}

func (s *stubStore) Delete(_ context.Context, url string) error {
	s.deleted = url
	return s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func multipartRequest(t *testing.T, field, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHandler_Upload(t *testing.T) {
	store := &stubStore{}
	h := NewHandler(store, 5<<20, nopLogger{})

	rec := httptest.NewRecorder()
	h.Upload(rec, multipartRequest(t, "file", "foto.jpg", []byte("jpeg-bytes")))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "foto.jpg", store.gotName)
	assert.Equal(t, []byte("jpeg-bytes"), store.gotData)
	assert.Contains(t, rec.Body.String(), `"thumbUrl":"/uploads/thumbs/abc.jpg"`)
}

func TestHandler_Upload_Errors(t *testing.T) {
	tests := []struct {
		name  string
		field string
		err   error
		code  int
	}{
		{name: "missing field", field: "image", code: http.StatusBadRequest},
		{name: "too large", field: "file", err: upload.ErrTooLarge, code: http.StatusBadRequest},
		{name: "format", field: "file", err: upload.ErrUnsupportedFormat, code: http.StatusBadRequest},
		{name: "decode", field: "file", err: upload.ErrDecode, code: http.StatusBadRequest},
		{name: "save", field: "file", err: upload.ErrSave, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubStore{err: tt.err}, 5<<20, nopLogger{})
			rec := httptest.NewRecorder()
			h.Upload(rec, multipartRequest(t, tt.field, "foto.jpg", []byte("data")))
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestHandler_Upload_BodyLimit(t *testing.T) {
	h := NewHandler(&stubStore{}, 16, nopLogger{})

	rec := httptest.NewRecorder()
	h.Upload(rec, multipartRequest(t, "file", "foto.jpg", bytes.Repeat([]byte{'x'}, multipartOverhead+1024)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Delete(t *testing.T) {
	store := &stubStore{}
	h := NewHandler(store, 5<<20, nopLogger{})

	rec := httptest.NewRecorder()
	h.Delete(rec, httptest.NewRequest(http.MethodDelete, "/api/uploads?url=/uploads/abc.jpg", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "/uploads/abc.jpg", store.deleted)

	rec = httptest.NewRecorder()
	h.Delete(rec, httptest.NewRequest(http.MethodDelete, "/api/uploads", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	NewHandler(&stubStore{err: upload.ErrNotFound}, 5<<20, nopLogger{}).
		Delete(rec, httptest.NewRequest(http.MethodDelete, "/api/uploads?url=/uploads/x.jpg", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
