package redirects

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/service/redirects/models"
)

type RedirectService interface {
	Resolve(ctx context.Context, path string) (*models.Target, error)
	List(ctx context.Context) (*models.RedirectListResponse, error)
	GetByID(ctx context.Context, id int64) (*models.RedirectResponse, error)
	Create(ctx context.Context, req *models.RedirectRequest) (*models.RedirectResponse, error)
	Update(ctx context.Context, id int64, req *models.RedirectRequest) (*models.RedirectResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
