package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListWorkingHours(ctx context.Context) (*models.WorkingHoursResponse, error)
	UpsertWorkingHours(ctx context.Context, reqs []models.WorkingHourRequest) (*models.WorkingHoursResponse, error)
	ListBlockedDates(ctx context.Context, from, to *time.Time) (*models.BlockedDateListResponse, error)
	CreateBlockedDate(ctx context.Context, req *models.BlockedDateRequest) (*models.BlockedDateResponse, error)
	DeleteBlockedDate(ctx context.Context, id int64) error
	GetContactInfo(ctx context.Context) (*models.ContactInfoResponse, error)
	SaveContactInfo(ctx context.Context, req *models.ContactInfoRequest) (*models.ContactInfoResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
