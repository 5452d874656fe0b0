package uploads

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/infra/upload"
)

const (
	formField = "file"

	// multipartOverhead запас на заголовки multipart сверх размера файла
	multipartOverhead = 1 << 20

	msgMissingFile       = "файл не передан"
	msgTooLarge          = "файл слишком большой"
	msgUnsupportedFormat = "неподдерживаемый формат изображения"
	msgDecode            = "не удалось прочитать изображение"
	msgMissingURL        = "не указан url файла"
	msgFileNotFound      = "файл не найден"
)

type Handler struct {
	store    ImageStore
	maxBytes int64
	logger   Logger
}

func NewHandler(store ImageStore, maxBytes int64, logger Logger) *Handler {
	return &Handler{
		store:    store,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// Upload POST /api/uploads (multipart, поле file)
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)

	file, header, err := r.FormFile(formField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.logger.Warn("POST /uploads - Request too large: limit=%d", maxErr.Limit)
			handlers.RespondBadRequest(w, msgTooLarge)
			return
		}
		h.logger.Warn("POST /uploads - Missing file: %v", err)
		handlers.RespondBadRequest(w, msgMissingFile)
		return
	}
	defer file.Close()

	result, err := h.store.Save(r.Context(), file, header.Filename)
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrTooLarge):
			h.logger.Warn("POST /uploads - File too large: name=%s, size=%d", header.Filename, header.Size)
			handlers.RespondBadRequest(w, msgTooLarge)

		case errors.Is(err, upload.ErrUnsupportedFormat):
			h.logger.Warn("POST /uploads - Unsupported format: name=%s", header.Filename)
			handlers.RespondBadRequest(w, msgUnsupportedFormat)

		case errors.Is(err, upload.ErrDecode):
			h.logger.Warn("POST /uploads - Failed to decode: name=%s, error=%v", header.Filename, err)
			handlers.RespondBadRequest(w, msgDecode)

		default:
			h.logger.Error("POST /uploads - Failed to save: name=%s, error=%v", header.Filename, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /uploads - Image saved: url=%s, size=%dx%d", result.URL, result.Width, result.Height)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Delete DELETE /api/uploads?url=
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	url := handlers.QueryString(r, "url")
	if url == nil {
		handlers.RespondBadRequest(w, msgMissingURL)
		return
	}

	if err := h.store.Delete(r.Context(), *url); err != nil {
		if errors.Is(err, upload.ErrNotFound) {
			h.logger.Warn("DELETE /uploads - File not found: url=%s", *url)
			handlers.RespondNotFound(w, msgFileNotFound)
			return
		}
		h.logger.Error("DELETE /uploads - Failed to delete: url=%s, error=%v", *url, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /uploads - Image deleted: url=%s", *url)
	handlers.RespondNoContent(w)
}
