package list_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/service/bookings/models"
)

// ToServiceRequest собирает фильтры из query параметров
func ToServiceRequest(r *http.Request) (*models.ListBookingsRequest, error) {
	serviceID, err := handlers.QueryInt64(r, "serviceId")
	if err != nil {
		return nil, err
	}

	return &models.ListBookingsRequest{
		Status:    handlers.QueryString(r, "status"),
		Date:      handlers.QueryString(r, "date"),
		From:      handlers.QueryString(r, "from"),
		To:        handlers.QueryString(r, "to"),
		ServiceID: serviceID,
	}, nil
}
