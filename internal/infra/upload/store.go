package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const thumbDir = "thumb"

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".bmp":  {},
	".tif":  {},
	".tiff": {},
}

// Options параметры хранилища изображений
type Options struct {
	Dir         string
	PublicPath  string
	MaxBytes    int64
	MaxWidth    int
	ThumbWidth  int
	JPEGQuality int
}

// Result публичные адреса сохраненного изображения
type Result struct {
	URL      string `json:"url"`
	ThumbURL string `json:"thumbUrl"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// Store сохраняет загруженные изображения на локальный диск.
// Оригинал уменьшается до MaxWidth, рядом кладется миниатюра шириной ThumbWidth.
type Store struct {
	opts Options
}

// NewStore создает хранилище и директории под него
func NewStore(opts Options) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(opts.Dir, thumbDir), 0o755); err != nil {
		return nil, fmt.Errorf("%w: NewStore - mkdir: %v", ErrSave, err)
	}
	if opts.JPEGQuality <= 0 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = 85
	}
	opts.PublicPath = "/" + strings.Trim(opts.PublicPath, "/")
	return &Store{opts: opts}, nil
}

// Save декодирует изображение, масштабирует и сохраняет под новым uuid именем в JPEG
func (s *Store) Save(ctx context.Context, src io.Reader, filename string) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	// Читаем на байт больше лимита, чтобы отличить "ровно лимит" от "больше"
	data, err := io.ReadAll(io.LimitReader(src, s.opts.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: Save - read: %v", ErrDecode, err)
	}
	if int64(len(data)) > s.opts.MaxBytes {
		return nil, ErrTooLarge
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if s.opts.MaxWidth > 0 && img.Bounds().Dx() > s.opts.MaxWidth {
		img = imaging.Resize(img, s.opts.MaxWidth, 0, imaging.Lanczos)
	}

	name := uuid.New().String() + ".jpg"
	originalPath := filepath.Join(s.opts.Dir, name)
	if err := imaging.Save(img, originalPath, imaging.JPEGQuality(s.opts.JPEGQuality)); err != nil {
		return nil, fmt.Errorf("%w: Save - original: %v", ErrSave, err)
	}

	thumb := img
	if s.opts.ThumbWidth > 0 && img.Bounds().Dx() > s.opts.ThumbWidth {
		thumb = imaging.Resize(img, s.opts.ThumbWidth, 0, imaging.Lanczos)
	}
	thumbPath := filepath.Join(s.opts.Dir, thumbDir, name)
	if err := imaging.Save(thumb, thumbPath, imaging.JPEGQuality(s.opts.JPEGQuality)); err != nil {
		_ = os.Remove(originalPath)
		return nil, fmt.Errorf("%w: Save - thumbnail: %v", ErrSave, err)
	}

	return &Result{
		URL:      path.Join(s.opts.PublicPath, name),
		ThumbURL: path.Join(s.opts.PublicPath, thumbDir, name),
		Width:    img.Bounds().Dx(),
		Height:   img.Bounds().Dy(),
	}, nil
}

// Delete удаляет изображение и его миниатюру по публичному адресу
func (s *Store) Delete(_ context.Context, url string) error {
	name := path.Base(url)
	if !strings.HasPrefix(url, s.opts.PublicPath+"/") || name == "." || name == "/" {
		return fmt.Errorf("%w: %q", ErrNotFound, url)
	}

	err := os.Remove(filepath.Join(s.opts.Dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %q", ErrNotFound, url)
	}
	if err != nil {
		return fmt.Errorf("%w: Delete - original: %v", ErrSave, err)
	}

	if err := os.Remove(filepath.Join(s.opts.Dir, thumbDir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: Delete - thumbnail: %v", ErrSave, err)
	}
	return nil
}
