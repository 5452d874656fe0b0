package sales

import (
	"context"
	"io"

	"github.com/m04kA/SMC-ClinicService/internal/service/sales/models"
)

type SaleService interface {
	Create(ctx context.Context, req *models.CreateSaleRequest) (*models.SaleResponse, error)
	GetByID(ctx context.Context, id int64) (*models.SaleResponse, error)
	List(ctx context.Context, status *string) (*models.SaleListResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateSaleRequest) (*models.SaleResponse, error)
	Delete(ctx context.Context, id int64) error
	Receipt(ctx context.Context, id int64, w io.Writer) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
