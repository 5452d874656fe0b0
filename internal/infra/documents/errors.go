package documents

import "errors"

var (
	// ErrRenderPDF возвращается при ошибке формирования PDF
	ErrRenderPDF = errors.New("documents: failed to render pdf")

	// ErrRenderQR возвращается при ошибке формирования QR кода
	ErrRenderQR = errors.New("documents: failed to render qr code")
)
