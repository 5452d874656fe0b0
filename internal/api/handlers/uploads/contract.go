package uploads

import (
	"context"
	"io"

	"github.com/m04kA/SMC-ClinicService/internal/infra/upload"
)

type ImageStore interface {
	Save(ctx context.Context, src io.Reader, filename string) (*upload.Result, error)
	Delete(ctx context.Context, url string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
