package contact

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/service/contact/models"
)

type ContactService interface {
	Send(ctx context.Context, req *models.ContactRequest) (*models.ContactResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
