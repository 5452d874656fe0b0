package newsletter

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	newsletterRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/newsletter"
	"github.com/m04kA/SMC-ClinicService/internal/service/newsletter/models"
	"github.com/m04kA/SMC-ClinicService/pkg/ptr"
)

// fakeRepo повторяет семантику upsert: источник первой подписки сохраняется
type fakeRepo struct {
	byEmail map[string]*domain.Subscriber
	order   []string
	now     time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmail: make(map[string]*domain.Subscriber), now: time.Date(2026, 3, 5, 23, 30, 0, 0, time.UTC)}
}

func (r *fakeRepo) Subscribe(_ context.Context, sub *domain.Subscriber) (*domain.Subscriber, error) {
	if existing, ok := r.byEmail[sub.Email]; ok {
		existing.IsActive = true
		existing.UnsubscribedAt = nil
		if sub.Name != nil {
			existing.Name = sub.Name
		}
		return existing, nil
	}
	copied := *sub
	copied.ID = int64(len(r.order) + 1)
	copied.IsActive = true
	copied.SubscribedAt = r.now
	r.byEmail[sub.Email] = &copied
	r.order = append(r.order, sub.Email)
	return &copied, nil
}

func (r *fakeRepo) Unsubscribe(_ context.Context, address string) error {
	sub, ok := r.byEmail[address]
	if !ok {
		return newsletterRepo.ErrSubscriberNotFound
	}
	sub.IsActive = false
	sub.UnsubscribedAt = &r.now
	return nil
}

func (r *fakeRepo) Deactivate(_ context.Context, id int64) error {
	for _, sub := range r.byEmail {
		if sub.ID == id {
			sub.IsActive = false
			return nil
		}
	}
	return newsletterRepo.ErrSubscriberNotFound
}

func (r *fakeRepo) List(_ context.Context, onlyActive bool) ([]*domain.Subscriber, error) {
	var result []*domain.Subscriber
	for _, address := range r.order {
		sub := r.byEmail[address]
		if onlyActive && !sub.IsActive {
			continue
		}
		result = append(result, sub)
	}
	return result, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestService_SubscribeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	s := NewService(repo, time.UTC, nopLogger{})

	first, err := s.Subscribe(ctx, &models.SubscribeRequest{Email: " Ana@Example.com ", Name: ptr.Ptr("Ana")})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", first.Email)
	assert.Equal(t, string(domain.SubscriberSourceFooter), first.Source)

	require.NoError(t, s.Unsubscribe(ctx, &models.UnsubscribeRequest{Email: "ana@example.com"}))
	assert.False(t, repo.byEmail["ana@example.com"].IsActive)

	again, err := s.Subscribe(ctx, &models.SubscribeRequest{Email: "ana@example.com", Source: "manual"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.True(t, again.IsActive)
	assert.Equal(t, "Ana", *again.Name)
	assert.Len(t, repo.order, 1)
}

func TestService_SubscribeValidation(t *testing.T) {
	s := NewService(newFakeRepo(), nil, nopLogger{})

	_, err := s.Subscribe(context.Background(), &models.SubscribeRequest{Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = s.Subscribe(context.Background(), &models.SubscribeRequest{Email: "a@b.es", Source: "twitter"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_UnsubscribeUnknownEmailIsNoop(t *testing.T) {
	s := NewService(newFakeRepo(), nil, nopLogger{})
	assert.NoError(t, s.Unsubscribe(context.Background(), &models.UnsubscribeRequest{Email: "ghost@example.com"}))
}

func TestService_Deactivate(t *testing.T) {
	repo := newFakeRepo()
	s := NewService(repo, nil, nopLogger{})
	require.NoError(t, s.SubscribeFrom(context.Background(), "b@example.com", nil, domain.SubscriberSourceSale))

	require.NoError(t, s.Deactivate(context.Background(), 1))
	assert.False(t, repo.byEmail["b@example.com"].IsActive)
	assert.ErrorIs(t, s.Deactivate(context.Background(), 42), ErrSubscriberNotFound)

	all, err := s.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all.Subscribers, 1)
	assert.Equal(t, "Compra", all.Subscribers[0].SourceLabel)
}

func TestService_ExportOnlyActiveRows(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	madrid, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)
	s := NewService(repo, madrid, nopLogger{})

	require.NoError(t, s.SubscribeFrom(ctx, "ana@example.com", ptr.Ptr("Ana, Pérez"), domain.SubscriberSourceContactForm))
	require.NoError(t, s.SubscribeFrom(ctx, "luis@example.com", nil, domain.SubscriberSourceSale))
	require.NoError(t, s.SubscribeFrom(ctx, "gone@example.com", nil, domain.SubscriberSourceFooter))
	require.NoError(t, s.Unsubscribe(ctx, &models.UnsubscribeRequest{Email: "gone@example.com"}))

	var buf bytes.Buffer
	require.NoError(t, s.Export(ctx, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"email", "name", "source", "date"}, records[0])
	// 23:30 UTC 5 марта это уже 6 марта в Мадриде
	assert.Equal(t, []string{"ana@example.com", "Ana, Pérez", "Formulario de contacto", "06/03/2026"}, records[1])
	assert.Equal(t, []string{"luis@example.com", "", "Compra", "06/03/2026"}, records[2])
}
