package documents

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultQRSize размер стороны QR кода в пикселях
const DefaultQRSize = 512

// QRCodePNG кодирует ссылку в PNG QR код
func QRCodePNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}

	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderQR, err)
	}
	return png, nil
}

// QRRenderer рендерит QR коды фиксированного размера
type QRRenderer struct {
	size int
}

// NewQRRenderer создает рендерер QR кодов
func NewQRRenderer(size int) *QRRenderer {
	return &QRRenderer{size: size}
}

// Render кодирует ссылку в PNG
func (r *QRRenderer) Render(content string) ([]byte, error) {
	return QRCodePNG(content, r.size)
}
