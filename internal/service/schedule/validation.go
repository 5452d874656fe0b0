package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/service/schedule/models"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// Время, которое сохраняется для выходного дня без указанных часов
const (
	defaultOpenTime  types.TimeString = "09:00"
	defaultCloseTime types.TimeString = "18:00"
)

// toWorkingHour проверяет и конвертирует расписание дня.
// Для открытого дня open < close, перерыв задается целиком и лежит внутри рабочих часов.
func toWorkingHour(req models.WorkingHourRequest) (*domain.WorkingHour, error) {
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return nil, fmt.Errorf("%w: dayOfWeek must be between 0 and 6", ErrInvalidWorkingHours)
	}

	wh := &domain.WorkingHour{DayOfWeek: req.DayOfWeek, IsOpen: req.IsOpen}

	open, err := parseOptionalTime(req.OpenTime, defaultOpenTime)
	if err != nil {
		return nil, fmt.Errorf("%w: day %d openTime: %v", ErrInvalidWorkingHours, req.DayOfWeek, err)
	}
	closing, err := parseOptionalTime(req.CloseTime, defaultCloseTime)
	if err != nil {
		return nil, fmt.Errorf("%w: day %d closeTime: %v", ErrInvalidWorkingHours, req.DayOfWeek, err)
	}
	wh.OpenTime, wh.CloseTime = open, closing

	breakStart, err := parseTimePtr(req.BreakStart)
	if err != nil {
		return nil, fmt.Errorf("%w: day %d breakStart: %v", ErrInvalidWorkingHours, req.DayOfWeek, err)
	}
	breakEnd, err := parseTimePtr(req.BreakEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: day %d breakEnd: %v", ErrInvalidWorkingHours, req.DayOfWeek, err)
	}
	if (breakStart == nil) != (breakEnd == nil) {
		return nil, fmt.Errorf("%w: day %d: breakStart and breakEnd must be set together", ErrInvalidWorkingHours, req.DayOfWeek)
	}
	wh.BreakStart, wh.BreakEnd = breakStart, breakEnd

	if !wh.IsOpen {
		return wh, nil
	}

	if !wh.OpenTime.IsBefore(wh.CloseTime) {
		return nil, fmt.Errorf("%w: day %d: openTime must be before closeTime", ErrInvalidWorkingHours, req.DayOfWeek)
	}
	if wh.HasBreak() {
		if !wh.BreakStart.IsBefore(*wh.BreakEnd) {
			return nil, fmt.Errorf("%w: day %d: breakStart must be before breakEnd", ErrInvalidWorkingHours, req.DayOfWeek)
		}
		if wh.BreakStart.IsBefore(wh.OpenTime) || wh.BreakEnd.IsAfter(wh.CloseTime) {
			return nil, fmt.Errorf("%w: day %d: break must be within open hours", ErrInvalidWorkingHours, req.DayOfWeek)
		}
	}

	return wh, nil
}

// toBlockedDate проверяет и конвертирует блокировку. allDay обнуляет время.
func toBlockedDate(req *models.BlockedDateRequest) (*domain.BlockedDate, error) {
	date, err := time.Parse(domain.DateFormat, strings.TrimSpace(req.Date))
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	bd := &domain.BlockedDate{Date: date, Reason: req.Reason, AllDay: req.AllDay}
	if bd.Reason != nil && strings.TrimSpace(*bd.Reason) == "" {
		bd.Reason = nil
	}
	if bd.AllDay {
		return bd, nil
	}

	start, err := parseTimePtr(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidTimeRange, err)
	}
	end, err := parseTimePtr(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: endTime: %v", ErrInvalidTimeRange, err)
	}
	if start == nil || end == nil {
		return nil, fmt.Errorf("%w: startTime and endTime are required unless allDay", ErrInvalidTimeRange)
	}
	if !start.IsBefore(*end) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidTimeRange)
	}

	bd.StartTime, bd.EndTime = start, end
	return bd, nil
}

func validateContactInfo(info *domain.ContactInfo) error {
	if info.BufferMinutes < domain.MinBufferMinutes || info.BufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: bufferMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}

	for _, field := range []**string{&info.Phone, &info.Email, &info.WhatsApp, &info.Address,
		&info.Instagram, &info.Facebook, &info.MapsURL} {
		if *field == nil {
			continue
		}
		trimmed := strings.TrimSpace(**field)
		if trimmed == "" {
			*field = nil
			continue
		}
		*field = &trimmed
	}
	return nil
}

func parseOptionalTime(value string, fallback types.TimeString) (types.TimeString, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	return types.NewTimeStringFromString(value)
}

func parseTimePtr(value *string) (*types.TimeString, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := types.NewTimeStringFromString(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
