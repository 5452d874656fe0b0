package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientName  string
	ClientEmail string
	ClientPhone string
	ServiceID   int64
	Date        time.Time        // Дата бронирования (без времени)
	StartTime   types.TimeString // Время начала слота, "HH:MM"
	ClientNotes *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64
	ClientName  string
	ClientEmail string
	ClientPhone string
	ServiceID   int64
	ServiceName string
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      string
	ClientNotes *string
	CreatedAt   time.Time

	// WhatsAppLink ссылка для связи с центром, пустая если номер не задан
	WhatsAppLink string
}
