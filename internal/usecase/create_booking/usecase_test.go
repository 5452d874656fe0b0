package create_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ClinicService/pkg/ptr"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

type fakeBookings struct {
	existing  []*domain.Booking
	created   []*domain.Booking
	createErr error
	listErr   error
}

func (f *fakeBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	copied := *b
	copied.ID = int64(len(f.created) + 1)
	copied.CreatedAt = time.Now()
	f.created = append(f.created, &copied)
	return &copied, nil
}

func (f *fakeBookings) List(context.Context, domain.BookingsFilter) ([]*domain.Booking, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append(f.existing, f.created...), nil
}

type fakeServices struct {
	services map[int64]*domain.Service
	parents  map[int64]bool
}

func (f *fakeServices) GetServiceByID(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

func (f *fakeServices) HasChildren(_ context.Context, id int64) (bool, error) {
	return f.parents[id], nil
}

type fakeSchedule struct {
	hours   map[int]*domain.WorkingHour
	blocked []*domain.BlockedDate
	contact *domain.ContactInfo
	readErr error
}

func (f *fakeSchedule) GetWorkingHour(_ context.Context, day int) (*domain.WorkingHour, error) {
	wh, ok := f.hours[day]
	if !ok {
		return nil, scheduleRepo.ErrWorkingHourNotFound
	}
	return wh, nil
}

func (f *fakeSchedule) ListBlockedDates(context.Context, *time.Time, *time.Time) ([]*domain.BlockedDate, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.blocked, nil
}

func (f *fakeSchedule) GetContactInfo(context.Context) (*domain.ContactInfo, error) {
	if f.contact == nil {
		return nil, scheduleRepo.ErrContactInfoNotFound
	}
	return f.contact, nil
}

type fakeNotifier struct {
	notified []*domain.Booking
	err      error
}

func (f *fakeNotifier) BookingCreated(_ context.Context, b *domain.Booking) error {
	f.notified = append(f.notified, b)
	return f.err
}

type fakeMetrics struct {
	created   int
	conflicts int
}

func (f *fakeMetrics) RecordBookingCreated(string) { f.created++ }
func (f *fakeMetrics) RecordSlotConflict(string)   { f.conflicts++ }

type fakeTx struct {
	calls     int
	commitErr error
}

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return f.commitErr
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 2026-03-16 понедельник
var monday = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

type fixture struct {
	bookings *fakeBookings
	services *fakeServices
	schedule *fakeSchedule
	notifier *fakeNotifier
	metrics  *fakeMetrics
	tx       *fakeTx
	now      time.Time
}

func newFixture() *fixture {
	return &fixture{
		bookings: &fakeBookings{},
		services: &fakeServices{
			services: map[int64]*domain.Service{
				1: {ID: 1, Name: "Masaje", DurationMinutes: 60, IsActive: true},
				2: {ID: 2, Name: "Inactiva", DurationMinutes: 60},
				3: {ID: 3, Name: "Grupo", DurationMinutes: 60, IsActive: true},
			},
			parents: map[int64]bool{3: true},
		},
		schedule: &fakeSchedule{
			hours: map[int]*domain.WorkingHour{
				1: {DayOfWeek: 1, IsOpen: true, OpenTime: "09:00", CloseTime: "17:00"},
			},
			contact: &domain.ContactInfo{BufferMinutes: 15, WhatsApp: ptr.Ptr("+34 600 111 222")},
		},
		notifier: &fakeNotifier{},
		metrics:  &fakeMetrics{},
		tx:       &fakeTx{},
		now:      time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) useCase() *UseCase {
	return NewUseCase(f.bookings, f.services, f.schedule, f.notifier, f.metrics, f.tx, fixedTime{now: f.now}, nopLogger{})
}

func validRequest() *Request {
	return &Request{
		ClientName:  "  Lucía Pérez ",
		ClientEmail: "Lucia@Example.com",
		ClientPhone: "+34 600 000 000",
		ServiceID:   1,
		Date:        monday,
		StartTime:   types.TimeString("10:00"),
		ClientNotes: ptr.Ptr("  "),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.useCase().Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "Lucía Pérez", resp.ClientName)
	assert.Equal(t, "lucia@example.com", resp.ClientEmail)
	assert.Equal(t, "Masaje", resp.ServiceName)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.EndTime)
	assert.Equal(t, string(domain.BookingStatusPending), resp.Status)
	assert.Nil(t, resp.ClientNotes)
	assert.Contains(t, resp.WhatsAppLink, "https://wa.me/34600111222?text=")

	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, 1, f.metrics.created)
	require.Len(t, f.notifier.notified, 1)
	assert.Equal(t, "Masaje", f.notifier.notified[0].ServiceName)
}

func TestExecute_SecondBookingOfSameSlotConflicts(t *testing.T) {
	f := newFixture()
	uc := f.useCase()

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 1, f.metrics.conflicts)
	assert.Len(t, f.bookings.created, 1)
}

func TestExecute_BufferBlocksNextSlot(t *testing.T) {
	f := newFixture()
	f.bookings.existing = []*domain.Booking{
		{StartTime: "09:00", EndTime: "10:00", Status: domain.BookingStatusConfirmed},
	}

	_, err := f.useCase().Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_CancelledBookingFreesSlot(t *testing.T) {
	f := newFixture()
	f.bookings.existing = []*domain.Booking{
		{StartTime: "10:00", EndTime: "11:00", Status: domain.BookingStatusCancelled},
		{StartTime: "10:00", EndTime: "11:00", Status: domain.BookingStatusNoShow},
	}

	_, err := f.useCase().Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_StartOffGrid(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.StartTime = "10:30"

	_, err := f.useCase().Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_NormalizesStartTime(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.StartTime = "10:00:00"

	resp, err := f.useCase().Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
}

func TestExecute_StorageConflicts(t *testing.T) {
	tests := []struct {
		name      string
		createErr error
		commitErr error
	}{
		{
			name:      "exclusion constraint",
			createErr: fmt.Errorf("%w: Create - conflict", bookingRepo.ErrSlotNotAvailable),
		},
		{
			name:      "serialization failure on commit",
			commitErr: fmt.Errorf("commit: %w", &pq.Error{Code: "40001"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.bookings.createErr = tt.createErr
			f.tx.commitErr = tt.commitErr

			_, err := f.useCase().Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
			assert.Equal(t, 1, f.metrics.conflicts)
			assert.Empty(t, f.notifier.notified)
		})
	}
}

func TestExecute_ConflictWhileReadingDay(t *testing.T) {
	serialization := &pq.Error{Code: "40001"}

	tests := []struct {
		name     string
		listErr  error
		readErr  error
		conflict bool
	}{
		{
			name:     "bookings lock",
			listErr:  fmt.Errorf("%w: List - lock bookings: %v", bookingRepo.ErrSlotNotAvailable, serialization),
			conflict: true,
		},
		{
			name:     "blocked dates read",
			readErr:  fmt.Errorf("%w: ListBlockedDates - %v", scheduleRepo.ErrSerialization, serialization),
			conflict: true,
		},
		{
			name:    "other storage failure",
			listErr: fmt.Errorf("%w: List - execute query: %v", bookingRepo.ErrExecQuery, errors.New("connection reset")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.bookings.listErr = tt.listErr
			f.schedule.readErr = tt.readErr

			_, err := f.useCase().Execute(context.Background(), validRequest())
			if tt.conflict {
				assert.ErrorIs(t, err, ErrSlotNotAvailable)
				assert.NotErrorIs(t, err, ErrInternal)
				assert.Equal(t, 1, f.metrics.conflicts)
			} else {
				assert.ErrorIs(t, err, ErrInternal)
				assert.Zero(t, f.metrics.conflicts)
			}
			assert.Empty(t, f.bookings.created)
		})
	}
}

func TestExecute_NotificationFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	f.notifier.err = errors.New("smtp down")

	resp, err := f.useCase().Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
}

func TestExecute_TodayElapsedSlotRejected(t *testing.T) {
	f := newFixture()
	f.now = monday.Add(10*time.Hour + 5*time.Minute)

	_, err := f.useCase().Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{name: "empty name", mutate: func(r *Request) { r.ClientName = " " }, wantErr: ErrInvalidInput},
		{name: "bad email", mutate: func(r *Request) { r.ClientEmail = "lucia@" }, wantErr: ErrInvalidInput},
		{name: "email with display name", mutate: func(r *Request) { r.ClientEmail = "Lucia <lucia@example.com>" }, wantErr: ErrInvalidInput},
		{name: "empty phone", mutate: func(r *Request) { r.ClientPhone = "" }, wantErr: ErrInvalidInput},
		{name: "bad time", mutate: func(r *Request) { r.StartTime = "9h" }, wantErr: ErrInvalidInput},
		{name: "past date", mutate: func(r *Request) { r.Date = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC) }, wantErr: ErrInvalidDate},
		{name: "unknown service", mutate: func(r *Request) { r.ServiceID = 42 }, wantErr: ErrServiceNotFound},
		{name: "inactive service", mutate: func(r *Request) { r.ServiceID = 2 }, wantErr: ErrServiceInactive},
		{name: "parent service", mutate: func(r *Request) { r.ServiceID = 3 }, wantErr: ErrServiceNotBookable},
		{name: "closed day", mutate: func(r *Request) { r.Date = monday.AddDate(0, 0, 1) }, wantErr: ErrSlotNotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.mutate(req)

			_, err := f.useCase().Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.bookings.created)
		})
	}
}
