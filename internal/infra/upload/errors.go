package upload

import "errors"

var (
	ErrTooLarge          = errors.New("upload: file too large")
	ErrUnsupportedFormat = errors.New("upload: unsupported image format")
	ErrDecode            = errors.New("upload: failed to decode image")
	ErrSave              = errors.New("upload: failed to save image")
	ErrNotFound          = errors.New("upload: file not found")
)
