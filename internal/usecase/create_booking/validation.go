package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/email"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// normalizeRequest обрезает пробелы и приводит время к виду HH:MM
func normalizeRequest(req *Request) error {
	req.ClientName = strings.TrimSpace(req.ClientName)
	req.ClientEmail = strings.ToLower(strings.TrimSpace(req.ClientEmail))
	req.ClientPhone = strings.TrimSpace(req.ClientPhone)
	if req.ClientNotes != nil {
		notes := strings.TrimSpace(*req.ClientNotes)
		if notes == "" {
			req.ClientNotes = nil
		} else {
			req.ClientNotes = &notes
		}
	}

	start, err := types.NewTimeStringFromString(string(req.StartTime))
	if err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	req.StartTime = start
	return nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientName == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.ClientName) > domain.MaxNameLength {
		return fmt.Errorf("%w: clientName is too long", ErrInvalidInput)
	}

	if req.ClientEmail == "" {
		return fmt.Errorf("%w: clientEmail is required", ErrInvalidInput)
	}
	if _, err := email.Normalize(req.ClientEmail); err != nil {
		return fmt.Errorf("%w: clientEmail is not a valid email", ErrInvalidInput)
	}

	if req.ClientPhone == "" {
		return fmt.Errorf("%w: clientPhone is required", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.ClientNotes != nil && utf8.RuneCountInString(*req.ClientNotes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: clientNotes is too long", ErrInvalidInput)
	}

	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня (сравниваются только календарные даты)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
