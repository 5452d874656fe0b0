package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	ServiceID int64     // ID услуги
	Date      time.Time // Дата (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	Date            time.Time
	ServiceID       int64
	DurationMinutes int
	Slots           []domain.Slot // Все слоты дня, включая занятые (Available=false)
}
