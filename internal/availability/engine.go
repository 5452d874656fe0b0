package availability

import (
	"errors"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

var (
	// ErrInvalidTime возвращается, когда в расписании, блокировке или бронировании некорректное время
	ErrInvalidTime = errors.New("availability: invalid time value")

	// ErrInvalidDuration возвращается при неположительной длительности услуги
	ErrInvalidDuration = errors.New("availability: duration must be positive")

	// ErrInvalidBuffer возвращается при отрицательном буфере
	ErrInvalidBuffer = errors.New("availability: buffer must not be negative")
)

// DaySchedule рабочее расписание на конкретный день недели
type DaySchedule struct {
	IsOpen     bool
	OpenTime   types.TimeString
	CloseTime  types.TimeString
	BreakStart *types.TimeString
	BreakEnd   *types.TimeString
}

// Block блокировка на дату: весь день или окно [StartTime, EndTime)
type Block struct {
	AllDay    bool
	StartTime *types.TimeString
	EndTime   *types.TimeString
}

// Booked занятый интервал [StartTime, EndTime) существующего бронирования
type Booked struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Input входные данные расчета. Schedule == nil означает отсутствие строки расписания
type Input struct {
	Schedule        *DaySchedule
	Blocks          []Block
	BufferMinutes   int
	DurationMinutes int
	Bookings        []Booked
	// NotBefore минута суток, раньше которой слоты недоступны (используется для сегодняшней даты)
	NotBefore *int
}

type interval struct {
	start, end int
}

// Compute рассчитывает слоты длиной DurationMinutes на день.
// Функция чистая: все данные передаются во Input.
func Compute(in Input) ([]domain.Slot, error) {
	if in.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDuration, in.DurationMinutes)
	}
	if in.BufferMinutes < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBuffer, in.BufferMinutes)
	}

	// 1. Выходной день
	if in.Schedule == nil || !in.Schedule.IsOpen {
		return []domain.Slot{}, nil
	}

	// 2. Заблокирован весь день
	for _, block := range in.Blocks {
		if block.AllDay {
			return []domain.Slot{}, nil
		}
	}

	// 3. Рабочий интервал минус перерыв
	open, err := minutes("openTime", in.Schedule.OpenTime)
	if err != nil {
		return nil, err
	}
	closeAt, err := minutes("closeTime", in.Schedule.CloseTime)
	if err != nil {
		return nil, err
	}
	if open >= closeAt {
		return []domain.Slot{}, nil
	}

	free := []interval{{start: open, end: closeAt}}

	if (in.Schedule.BreakStart == nil) != (in.Schedule.BreakEnd == nil) {
		return nil, fmt.Errorf("%w: break must have both start and end", ErrInvalidTime)
	}
	if in.Schedule.BreakStart != nil {
		breakStart, err := minutes("breakStart", *in.Schedule.BreakStart)
		if err != nil {
			return nil, err
		}
		breakEnd, err := minutes("breakEnd", *in.Schedule.BreakEnd)
		if err != nil {
			return nil, err
		}
		if breakStart >= breakEnd {
			return nil, fmt.Errorf("%w: break %s-%s is empty or inverted", ErrInvalidTime, *in.Schedule.BreakStart, *in.Schedule.BreakEnd)
		}
		free = subtract(free, interval{start: breakStart, end: breakEnd})
	}

	// 4. Частичные блокировки вычитаются так же, как перерыв
	for i, block := range in.Blocks {
		if block.StartTime == nil || block.EndTime == nil {
			return nil, fmt.Errorf("%w: block #%d has no time window", ErrInvalidTime, i)
		}
		start, err := minutes("block.startTime", *block.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := minutes("block.endTime", *block.EndTime)
		if err != nil {
			return nil, err
		}
		if start >= end {
			return nil, fmt.Errorf("%w: block #%d window %s-%s is empty or inverted", ErrInvalidTime, i, *block.StartTime, *block.EndTime)
		}
		free = subtract(free, interval{start: start, end: end})
	}

	// Занятость: [start, end + buffer)
	busy := make([]interval, 0, len(in.Bookings))
	for _, b := range in.Bookings {
		start, err := minutes("booking.startTime", b.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := minutes("booking.endTime", b.EndTime)
		if err != nil {
			return nil, err
		}
		busy = append(busy, interval{start: start, end: end + in.BufferMinutes})
	}

	// 5-6. Шагаем с шагом длительности услуги внутри каждого свободного интервала
	slots := make([]domain.Slot, 0)
	for _, iv := range free {
		for start := iv.start; start+in.DurationMinutes <= iv.end; start += in.DurationMinutes {
			end := start + in.DurationMinutes
			available := !overlapsAny(start, end, busy)
			if in.NotBefore != nil && start < *in.NotBefore {
				available = false
			}

			startTS, err := types.NewTimeStringFromMinutes(start)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidTime, err)
			}
			endTS, err := types.NewTimeStringFromMinutes(end)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidTime, err)
			}

			slots = append(slots, domain.Slot{
				StartTime: startTS,
				EndTime:   endTS,
				Available: available,
			})
		}
	}

	// 7. Хронологический порядок
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})

	return slots, nil
}

// Find ищет слот, начинающийся в start
func Find(slots []domain.Slot, start types.TimeString) (domain.Slot, bool) {
	for _, slot := range slots {
		if slot.StartTime == start {
			return slot, true
		}
	}
	return domain.Slot{}, false
}

// subtract вычитает cut из каждого интервала; cut непустой
func subtract(ivs []interval, cut interval) []interval {
	if cut.start >= cut.end {
		return ivs
	}

	result := make([]interval, 0, len(ivs)+1)
	for _, iv := range ivs {
		if cut.end <= iv.start || cut.start >= iv.end {
			result = append(result, iv)
			continue
		}
		if cut.start > iv.start {
			result = append(result, interval{start: iv.start, end: cut.start})
		}
		if cut.end < iv.end {
			result = append(result, interval{start: cut.end, end: iv.end})
		}
	}
	return result
}

// overlapsAny строгое пересечение: граничащие интервалы не пересекаются
func overlapsAny(start, end int, busy []interval) bool {
	for _, b := range busy {
		if start < b.end && end > b.start {
			return true
		}
	}
	return false
}

func minutes(field string, t types.TimeString) (int, error) {
	m, err := t.Minutes()
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q: %v", ErrInvalidTime, field, t, err)
	}
	return m, nil
}
