package upload

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestStore(t *testing.T, maxBytes int64) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewStore(Options{
		Dir:        dir,
		PublicPath: "uploads/",
		MaxBytes:   maxBytes,
		MaxWidth:   200,
		ThumbWidth: 50,
	})
	require.NoError(t, err)
	return s, dir
}

func TestStore_SaveResizesAndCreatesThumbnail(t *testing.T) {
	s, dir := newTestStore(t, 1<<20)

	res, err := s.Save(context.Background(), bytes.NewReader(pngBytes(t, 400, 100)), "Foto.PNG")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.URL, "/uploads/"))
	assert.True(t, strings.HasSuffix(res.URL, ".jpg"))
	assert.Equal(t, "/uploads/thumb/"+filepath.Base(res.URL), res.ThumbURL)
	assert.Equal(t, 200, res.Width)
	assert.Equal(t, 50, res.Height)

	original, err := imaging.Open(filepath.Join(dir, filepath.Base(res.URL)))
	require.NoError(t, err)
	assert.Equal(t, 200, original.Bounds().Dx())

	thumb, err := imaging.Open(filepath.Join(dir, thumbDir, filepath.Base(res.URL)))
	require.NoError(t, err)
	assert.Equal(t, 50, thumb.Bounds().Dx())
}

func TestStore_SmallImageKeepsSize(t *testing.T) {
	s, _ := newTestStore(t, 1<<20)

	res, err := s.Save(context.Background(), bytes.NewReader(pngBytes(t, 40, 30)), "a.png")
	require.NoError(t, err)
	assert.Equal(t, 40, res.Width)
	assert.Equal(t, 30, res.Height)
}

func TestStore_Rejections(t *testing.T) {
	s, _ := newTestStore(t, 64)

	_, err := s.Save(context.Background(), bytes.NewReader([]byte("x")), "doc.pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = s.Save(context.Background(), bytes.NewReader(pngBytes(t, 100, 100)), "big.png")
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = s.Save(context.Background(), bytes.NewReader([]byte("not an image")), "broken.jpg")
	assert.ErrorIs(t, err, ErrDecode)
}

func TestStore_Delete(t *testing.T) {
	s, dir := newTestStore(t, 1<<20)

	res, err := s.Save(context.Background(), bytes.NewReader(pngBytes(t, 80, 80)), "a.png")
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), res.URL))
	_, statErr := os.Stat(filepath.Join(dir, filepath.Base(res.URL)))
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(filepath.Join(dir, thumbDir, filepath.Base(res.URL)))
	assert.True(t, os.IsNotExist(statErr))

	assert.ErrorIs(t, s.Delete(context.Background(), res.URL), ErrNotFound)
	assert.ErrorIs(t, s.Delete(context.Background(), "/elsewhere/x.jpg"), ErrNotFound)
}
