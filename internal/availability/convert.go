package availability

import "github.com/m04kA/SMC-ClinicService/internal/domain"

// ScheduleFromWorkingHour преобразует строку расписания; nil остается nil
func ScheduleFromWorkingHour(wh *domain.WorkingHour) *DaySchedule {
	if wh == nil {
		return nil
	}
	schedule := &DaySchedule{
		IsOpen:    wh.IsOpen,
		OpenTime:  wh.OpenTime,
		CloseTime: wh.CloseTime,
	}
	// Половина перерыва передается как есть, движок отклонит ее
	if wh.BreakStart != nil && !wh.BreakStart.IsZero() {
		schedule.BreakStart = wh.BreakStart
	}
	if wh.BreakEnd != nil && !wh.BreakEnd.IsZero() {
		schedule.BreakEnd = wh.BreakEnd
	}
	return schedule
}

// BlocksFromBlockedDates преобразует блокировки даты
func BlocksFromBlockedDates(blocked []*domain.BlockedDate) []Block {
	blocks := make([]Block, 0, len(blocked))
	for _, b := range blocked {
		blocks = append(blocks, Block{
			AllDay:    b.AllDay,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
		})
	}
	return blocks
}

// BookedFromBookings оставляет только бронирования, занимающие слот
func BookedFromBookings(bookings []*domain.Booking) []Booked {
	booked := make([]Booked, 0, len(bookings))
	for _, b := range bookings {
		if !b.OccupiesSlot() {
			continue
		}
		booked = append(booked, Booked{StartTime: b.StartTime, EndTime: b.EndTime})
	}
	return booked
}
