package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

func ts(s string) types.TimeString { return types.TimeString(s) }

func tsPtr(s string) *types.TimeString {
	v := types.TimeString(s)
	return &v
}

func openDay(open, close string) *DaySchedule {
	return &DaySchedule{IsOpen: true, OpenTime: ts(open), CloseTime: ts(close)}
}

func starts(slots []domain.Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.StartTime.String())
	}
	return out
}

func slotAt(t *testing.T, slots []domain.Slot, start string) domain.Slot {
	t.Helper()
	slot, ok := Find(slots, ts(start))
	require.True(t, ok, "slot %s not found in %v", start, starts(slots))
	return slot
}

func TestCompute_ClosedDay(t *testing.T) {
	tests := []struct {
		name     string
		schedule *DaySchedule
	}{
		{name: "no working hour row", schedule: nil},
		{name: "isOpen false", schedule: &DaySchedule{IsOpen: false, OpenTime: ts("09:00"), CloseTime: ts("17:00")}},
		{name: "open equals close", schedule: openDay("09:00", "09:00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := Compute(Input{Schedule: tt.schedule, DurationMinutes: 60})
			require.NoError(t, err)
			assert.NotNil(t, slots)
			assert.Empty(t, slots)
		})
	}
}

func TestCompute_AllDayBlock(t *testing.T) {
	slots, err := Compute(Input{
		Schedule: openDay("09:00", "17:00"),
		Blocks: []Block{
			{StartTime: tsPtr("10:00"), EndTime: tsPtr("11:00")},
			{AllDay: true},
		},
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestCompute_BufferAfterBooking(t *testing.T) {
	slots, err := Compute(Input{
		Schedule:        openDay("09:00", "20:00"),
		BufferMinutes:   15,
		DurationMinutes: 60,
		Bookings:        []Booked{{StartTime: ts("10:00"), EndTime: ts("11:00")}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"09:00", "10:00", "11:00", "12:00", "13:00", "14:00",
		"15:00", "16:00", "17:00", "18:00", "19:00",
	}, starts(slots))

	assert.True(t, slotAt(t, slots, "09:00").Available)
	assert.False(t, slotAt(t, slots, "10:00").Available)
	assert.False(t, slotAt(t, slots, "11:00").Available, "buffer keeps 11:00-11:15 occupied")
	assert.True(t, slotAt(t, slots, "12:00").Available)
}

func TestCompute_BufferIsOneDirectional(t *testing.T) {
	slots, err := Compute(Input{
		Schedule:        openDay("09:00", "12:00"),
		BufferMinutes:   30,
		DurationMinutes: 60,
		Bookings:        []Booked{{StartTime: ts("10:00"), EndTime: ts("11:00")}},
	})
	require.NoError(t, err)

	assert.True(t, slotAt(t, slots, "09:00").Available, "slot ending exactly at booking start is free")
	assert.False(t, slotAt(t, slots, "11:00").Available)
}

func TestCompute_BreakSplitsDay(t *testing.T) {
	schedule := openDay("09:00", "17:00")
	schedule.BreakStart = tsPtr("13:00")
	schedule.BreakEnd = tsPtr("14:00")

	slots, err := Compute(Input{Schedule: schedule, DurationMinutes: 60})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "10:00", "11:00", "12:00", "14:00", "15:00", "16:00"}, starts(slots))
	_, found := Find(slots, ts("12:30"))
	assert.False(t, found)
	_, found = Find(slots, ts("13:00"))
	assert.False(t, found)
	assert.True(t, slotAt(t, slots, "14:00").Available)
}

func TestCompute_BreakWithUnalignedDuration(t *testing.T) {
	schedule := openDay("09:00", "17:00")
	schedule.BreakStart = tsPtr("13:00")
	schedule.BreakEnd = tsPtr("14:00")

	slots, err := Compute(Input{Schedule: schedule, DurationMinutes: 90})
	require.NoError(t, err)

	// 09:00-13:00 fits 2 slots with a 60 minute gap, 14:00-17:00 fits 2 slots exactly
	assert.Equal(t, []string{"09:00", "10:30", "14:00", "15:30"}, starts(slots))
	for _, slot := range slots {
		end, err := slot.EndTime.Minutes()
		require.NoError(t, err)
		start, err := slot.StartTime.Minutes()
		require.NoError(t, err)
		assert.Equal(t, 90, end-start)
		assert.False(t, start < 14*60 && end > 13*60, "slot %s overlaps break", slot.StartTime)
	}
}

func TestCompute_BreakConsumesWholeDay(t *testing.T) {
	schedule := openDay("09:00", "12:00")
	schedule.BreakStart = tsPtr("08:00")
	schedule.BreakEnd = tsPtr("13:00")

	slots, err := Compute(Input{Schedule: schedule, DurationMinutes: 30})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestCompute_PartialBlocks(t *testing.T) {
	slots, err := Compute(Input{
		Schedule: openDay("09:00", "14:00"),
		Blocks: []Block{
			{StartTime: tsPtr("10:00"), EndTime: tsPtr("11:30")},
			{StartTime: tsPtr("13:30"), EndTime: tsPtr("15:00")},
		},
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "11:30", "12:00", "12:30", "13:00"}, starts(slots))
}

func TestCompute_StepsEqualDuration(t *testing.T) {
	durations := []int{15, 20, 45, 50, 60, 75, 120}

	for _, duration := range durations {
		slots, err := Compute(Input{Schedule: openDay("08:00", "19:30"), DurationMinutes: duration})
		require.NoError(t, err)
		require.NotEmpty(t, slots)

		prev := -1
		for _, slot := range slots {
			start, err := slot.StartTime.Minutes()
			require.NoError(t, err)
			end, err := slot.EndTime.Minutes()
			require.NoError(t, err)

			assert.Equal(t, duration, end-start)
			assert.LessOrEqual(t, end, 19*60+30)
			if prev >= 0 {
				assert.Equal(t, duration, start-prev, "duration=%d", duration)
			}
			prev = start
		}
	}
}

func TestCompute_NotBefore(t *testing.T) {
	notBefore := 11*60 + 10
	slots, err := Compute(Input{
		Schedule:        openDay("09:00", "13:00"),
		DurationMinutes: 60,
		NotBefore:       &notBefore,
	})
	require.NoError(t, err)

	assert.False(t, slotAt(t, slots, "09:00").Available)
	assert.False(t, slotAt(t, slots, "11:00").Available)
	assert.True(t, slotAt(t, slots, "12:00").Available)
}

func TestCompute_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		wantErr error
	}{
		{
			name:    "zero duration",
			in:      Input{Schedule: openDay("09:00", "17:00")},
			wantErr: ErrInvalidDuration,
		},
		{
			name:    "negative buffer",
			in:      Input{Schedule: openDay("09:00", "17:00"), DurationMinutes: 30, BufferMinutes: -5},
			wantErr: ErrInvalidBuffer,
		},
		{
			name:    "malformed open time",
			in:      Input{Schedule: openDay("9am", "17:00"), DurationMinutes: 30},
			wantErr: ErrInvalidTime,
		},
		{
			name: "malformed break",
			in: Input{
				Schedule:        &DaySchedule{IsOpen: true, OpenTime: ts("09:00"), CloseTime: ts("17:00"), BreakStart: tsPtr("13"), BreakEnd: tsPtr("14:00")},
				DurationMinutes: 30,
			},
			wantErr: ErrInvalidTime,
		},
		{
			name: "malformed block",
			in: Input{
				Schedule:        openDay("09:00", "17:00"),
				Blocks:          []Block{{StartTime: tsPtr("10:00"), EndTime: tsPtr("25:00")}},
				DurationMinutes: 30,
			},
			wantErr: ErrInvalidTime,
		},
		{
			name: "break without end",
			in: Input{
				Schedule:        &DaySchedule{IsOpen: true, OpenTime: ts("09:00"), CloseTime: ts("17:00"), BreakStart: tsPtr("13:00")},
				DurationMinutes: 30,
			},
			wantErr: ErrInvalidTime,
		},
		{
			name: "break without start",
			in: Input{
				Schedule:        &DaySchedule{IsOpen: true, OpenTime: ts("09:00"), CloseTime: ts("17:00"), BreakEnd: tsPtr("14:00")},
				DurationMinutes: 30,
			},
			wantErr: ErrInvalidTime,
		},
		{
			name: "inverted break",
			in: Input{
				Schedule:        &DaySchedule{IsOpen: true, OpenTime: ts("09:00"), CloseTime: ts("17:00"), BreakStart: tsPtr("14:00"), BreakEnd: tsPtr("13:00")},
				DurationMinutes: 30,
			},
			wantErr: ErrInvalidTime,
		},
		{
			name: "inverted partial block",
			in: Input{
				Schedule:        openDay("09:00", "17:00"),
				Blocks:          []Block{{StartTime: tsPtr("12:00"), EndTime: tsPtr("11:00")}},
				DurationMinutes: 30,
			},
			wantErr: ErrInvalidTime,
		},
		{
			name: "empty partial block",
			in: Input{
				Schedule:        openDay("09:00", "17:00"),
				Blocks:          []Block{{StartTime: tsPtr("12:00"), EndTime: tsPtr("12:00")}},
				DurationMinutes: 30,
			},
			wantErr: ErrInvalidTime,
		},
		{
			name: "partial block without window",
			in: Input{
				Schedule:        openDay("09:00", "17:00"),
				Blocks:          []Block{{}},
				DurationMinutes: 30,
			},
			wantErr: ErrInvalidTime,
		},
		{
			name: "malformed booking",
			in: Input{
				Schedule:        openDay("09:00", "17:00"),
				Bookings:        []Booked{{StartTime: ts("10:00"), EndTime: ts("xx:yy")}},
				DurationMinutes: 30,
			},
			wantErr: ErrInvalidTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCompute_ClosedDayIgnoresMalformedTimes(t *testing.T) {
	slots, err := Compute(Input{
		Schedule:        &DaySchedule{IsOpen: false, OpenTime: ts("bad"), CloseTime: ts("bad")},
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestConverters(t *testing.T) {
	assert.Nil(t, ScheduleFromWorkingHour(nil))

	wh := &domain.WorkingHour{IsOpen: true, OpenTime: ts("09:00"), CloseTime: ts("18:00"), BreakStart: tsPtr("14:00")}
	schedule := ScheduleFromWorkingHour(wh)
	require.NotNil(t, schedule)
	require.NotNil(t, schedule.BreakStart)
	assert.Nil(t, schedule.BreakEnd)
	_, err := Compute(Input{Schedule: schedule, DurationMinutes: 30})
	assert.ErrorIs(t, err, ErrInvalidTime, "half-defined break is rejected")

	empty := types.TimeString("")
	schedule = ScheduleFromWorkingHour(&domain.WorkingHour{IsOpen: true, OpenTime: ts("09:00"), CloseTime: ts("18:00"), BreakStart: &empty, BreakEnd: &empty})
	assert.Nil(t, schedule.BreakStart)
	assert.Nil(t, schedule.BreakEnd)

	booked := BookedFromBookings([]*domain.Booking{
		{Status: domain.BookingStatusPending, StartTime: ts("09:00"), EndTime: ts("10:00")},
		{Status: domain.BookingStatusCancelled, StartTime: ts("10:00"), EndTime: ts("11:00")},
		{Status: domain.BookingStatusNoShow, StartTime: ts("11:00"), EndTime: ts("12:00")},
		{Status: domain.BookingStatusCompleted, StartTime: ts("12:00"), EndTime: ts("13:00")},
	})
	assert.Len(t, booked, 2)

	blocks := BlocksFromBlockedDates([]*domain.BlockedDate{{AllDay: true}})
	require.Len(t, blocks, 1)
	assert.True(t, blocks[0].AllDay)
}
