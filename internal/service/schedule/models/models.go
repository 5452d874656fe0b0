package models

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// Request модели

// WorkingHourRequest расписание одного дня недели
type WorkingHourRequest struct {
	DayOfWeek  int     `json:"dayOfWeek"` // 0 = воскресенье
	OpenTime   string  `json:"openTime"`  // "HH:MM"
	CloseTime  string  `json:"closeTime"` // "HH:MM"
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
	IsOpen     bool    `json:"isOpen"`
}

// BlockedDateRequest запрос на создание блокировки
type BlockedDateRequest struct {
	Date      string  `json:"date"` // "2006-01-02"
	Reason    *string `json:"reason,omitempty"`
	AllDay    bool    `json:"allDay"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
}

// ContactInfoRequest запрос на сохранение контактов (PUT заменяет все поля)
type ContactInfoRequest struct {
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	WhatsApp      *string `json:"whatsapp"`
	Address       *string `json:"address"`
	Instagram     *string `json:"instagram"`
	Facebook      *string `json:"facebook"`
	MapsURL       *string `json:"mapsUrl"`
	BufferMinutes int     `json:"bufferMinutes"`
}

// Response модели

// WorkingHourResponse расписание дня недели
type WorkingHourResponse struct {
	DayOfWeek  int               `json:"dayOfWeek"`
	OpenTime   types.TimeString  `json:"openTime"`
	CloseTime  types.TimeString  `json:"closeTime"`
	BreakStart *types.TimeString `json:"breakStart"`
	BreakEnd   *types.TimeString `json:"breakEnd"`
	IsOpen     bool              `json:"isOpen"`
}

// WorkingHoursResponse недельное расписание, всегда 7 дней
type WorkingHoursResponse struct {
	WorkingHours []WorkingHourResponse `json:"workingHours"`
}

// BlockedDateResponse блокировка
type BlockedDateResponse struct {
	ID        int64             `json:"id"`
	Date      string            `json:"date"` // "2006-01-02"
	Reason    *string           `json:"reason"`
	AllDay    bool              `json:"allDay"`
	StartTime *types.TimeString `json:"startTime"`
	EndTime   *types.TimeString `json:"endTime"`
	CreatedAt time.Time         `json:"createdAt"`
}

// BlockedDateListResponse список блокировок
type BlockedDateListResponse struct {
	BlockedDates []BlockedDateResponse `json:"blockedDates"`
}

// ContactInfoResponse контакты и буфер между записями
type ContactInfoResponse struct {
	Phone         *string   `json:"phone"`
	Email         *string   `json:"email"`
	WhatsApp      *string   `json:"whatsapp"`
	Address       *string   `json:"address"`
	Instagram     *string   `json:"instagram"`
	Facebook      *string   `json:"facebook"`
	MapsURL       *string   `json:"mapsUrl"`
	BufferMinutes int       `json:"bufferMinutes"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Методы конвертации

// FromDomainWorkingHour конвертирует domain модель в DTO
func FromDomainWorkingHour(wh *domain.WorkingHour) WorkingHourResponse {
	return WorkingHourResponse{
		DayOfWeek:  wh.DayOfWeek,
		OpenTime:   wh.OpenTime,
		CloseTime:  wh.CloseTime,
		BreakStart: wh.BreakStart,
		BreakEnd:   wh.BreakEnd,
		IsOpen:     wh.IsOpen,
	}
}

// FromDomainBlockedDate конвертирует domain модель в DTO
func FromDomainBlockedDate(bd *domain.BlockedDate) *BlockedDateResponse {
	if bd == nil {
		return nil
	}

	return &BlockedDateResponse{
		ID:        bd.ID,
		Date:      bd.Date.Format(domain.DateFormat),
		Reason:    bd.Reason,
		AllDay:    bd.AllDay,
		StartTime: bd.StartTime,
		EndTime:   bd.EndTime,
		CreatedAt: bd.CreatedAt,
	}
}

// FromDomainBlockedDateList конвертирует список блокировок
func FromDomainBlockedDateList(blocked []*domain.BlockedDate) *BlockedDateListResponse {
	resp := &BlockedDateListResponse{BlockedDates: make([]BlockedDateResponse, 0, len(blocked))}
	for _, bd := range blocked {
		resp.BlockedDates = append(resp.BlockedDates, *FromDomainBlockedDate(bd))
	}
	return resp
}

// FromDomainContactInfo конвертирует domain модель в DTO
func FromDomainContactInfo(info *domain.ContactInfo) *ContactInfoResponse {
	if info == nil {
		return nil
	}

	return &ContactInfoResponse{
		Phone:         info.Phone,
		Email:         info.Email,
		WhatsApp:      info.WhatsApp,
		Address:       info.Address,
		Instagram:     info.Instagram,
		Facebook:      info.Facebook,
		MapsURL:       info.MapsURL,
		BufferMinutes: info.BufferMinutes,
		UpdatedAt:     info.UpdatedAt,
	}
}

// ToDomainContactInfo конвертирует запрос в domain модель
func (r *ContactInfoRequest) ToDomainContactInfo() *domain.ContactInfo {
	return &domain.ContactInfo{
		Phone:         r.Phone,
		Email:         r.Email,
		WhatsApp:      r.WhatsApp,
		Address:       r.Address,
		Instagram:     r.Instagram,
		Facebook:      r.Facebook,
		MapsURL:       r.MapsURL,
		BufferMinutes: r.BufferMinutes,
	}
}
