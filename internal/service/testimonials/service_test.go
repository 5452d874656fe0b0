package testimonials

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	testimonialRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/testimonial"
	"github.com/m04kA/SMC-ClinicService/internal/service/testimonials/models"
	"github.com/m04kA/SMC-ClinicService/pkg/ptr"
)

type fakeRepo struct {
	items  map[int64]*domain.Testimonial
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[int64]*domain.Testimonial)}
}

func (r *fakeRepo) List(_ context.Context, status *domain.TestimonialStatus) ([]*domain.Testimonial, error) {
	var result []*domain.Testimonial
	for id := int64(1); id <= r.nextID; id++ {
		t, ok := r.items[id]
		if !ok || (status != nil && t.Status != *status) {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Testimonial, error) {
	t, ok := r.items[id]
	if !ok {
		return nil, testimonialRepo.ErrTestimonialNotFound
	}
	return t, nil
}

func (r *fakeRepo) Create(_ context.Context, t *domain.Testimonial) (*domain.Testimonial, error) {
	r.nextID++
	copied := *t
	copied.ID = r.nextID
	r.items[copied.ID] = &copied
	return &copied, nil
}

func (r *fakeRepo) Update(_ context.Context, t *domain.Testimonial) (*domain.Testimonial, error) {
	if _, ok := r.items[t.ID]; !ok {
		return nil, testimonialRepo.ErrTestimonialNotFound
	}
	copied := *t
	r.items[t.ID] = &copied
	return &copied, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.TestimonialStatus) (*domain.Testimonial, error) {
	t, ok := r.items[id]
	if !ok {
		return nil, testimonialRepo.ErrTestimonialNotFound
	}
	t.Status = status
	return t, nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return testimonialRepo.ErrTestimonialNotFound
	}
	delete(r.items, id)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validSubmit() *models.SubmitTestimonialRequest {
	return &models.SubmitTestimonialRequest{
		ClientName:   " Carmen ",
		ClientEmail:  ptr.Ptr("Carmen@Example.com"),
		Text:         "Un masaje increíble, repetiré.",
		Rating:       5,
		ServiceLabel: ptr.Ptr("Masaje relajante"),
	}
}

func TestService_Submit(t *testing.T) {
	svc := NewService(newFakeRepo(), nopLogger{})

	resp, err := svc.Submit(context.Background(), validSubmit())
	require.NoError(t, err)

	assert.Equal(t, "Carmen", resp.ClientName)
	assert.Equal(t, "PENDING", resp.Status)
	require.NotNil(t, resp.ClientEmail)
	assert.Equal(t, "carmen@example.com", *resp.ClientEmail)
}

func TestService_Submit_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *models.SubmitTestimonialRequest)
	}{
		{"rating too low", func(r *models.SubmitTestimonialRequest) { r.Rating = 0 }},
		{"rating too high", func(r *models.SubmitTestimonialRequest) { r.Rating = 6 }},
		{"empty text", func(r *models.SubmitTestimonialRequest) { r.Text = " " }},
		{"empty name", func(r *models.SubmitTestimonialRequest) { r.ClientName = "" }},
		{"bad email", func(r *models.SubmitTestimonialRequest) { r.ClientEmail = ptr.Ptr("nope") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newFakeRepo(), nopLogger{})
			req := validSubmit()
			tt.modify(req)

			_, err := svc.Submit(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_ListApproved_HidesPendingAndEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	first, err := svc.Submit(ctx, validSubmit())
	require.NoError(t, err)
	_, err = svc.Submit(ctx, validSubmit())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, first.ID, &models.UpdateStatusRequest{Status: "approved"})
	require.NoError(t, err)

	resp, err := svc.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, resp.Testimonials, 1)
	assert.Equal(t, first.ID, resp.Testimonials[0].ID)
	assert.Nil(t, resp.Testimonials[0].ClientEmail)

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all.Testimonials, 2)

	pending, err := svc.List(ctx, ptr.Ptr("PENDING"))
	require.NoError(t, err)
	assert.Len(t, pending.Testimonials, 1)
}

func TestService_UpdateStatus_Invalid(t *testing.T) {
	svc := NewService(newFakeRepo(), nopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "HIDDEN"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "REJECTED"})
	assert.ErrorIs(t, err, ErrTestimonialNotFound)
}

func TestService_Update(t *testing.T) {
	svc := NewService(newFakeRepo(), nopLogger{})
	ctx := context.Background()
	created, err := svc.Submit(ctx, validSubmit())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, &models.UpdateTestimonialRequest{
		ClientName:   "Carmen R.",
		Text:         "Texto corregido",
		Rating:       4,
		DisplayOrder: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "PENDING", updated.Status)
	assert.Equal(t, 2, updated.DisplayOrder)
	assert.Nil(t, updated.ClientEmail)

	updated, err = svc.Update(ctx, created.ID, &models.UpdateTestimonialRequest{
		ClientName: "Carmen R.",
		Text:       "Texto corregido",
		Rating:     4,
		Status:     ptr.Ptr("approved"),
	})
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", updated.Status)

	_, err = svc.Update(ctx, 99, &models.UpdateTestimonialRequest{ClientName: "x", Text: "y", Rating: 3})
	assert.ErrorIs(t, err, ErrTestimonialNotFound)
}

func TestService_Delete(t *testing.T) {
	svc := NewService(newFakeRepo(), nopLogger{})
	_, err := svc.Submit(context.Background(), validSubmit())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.ErrorIs(t, svc.Delete(context.Background(), 1), ErrTestimonialNotFound)
}
