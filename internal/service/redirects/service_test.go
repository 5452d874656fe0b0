package redirects

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	redirectRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/redirect"
	"github.com/m04kA/SMC-ClinicService/internal/service/redirects/models"
	"github.com/m04kA/SMC-ClinicService/pkg/ptr"
)

type fakeRepo struct {
	items  map[int64]*domain.Redirect
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[int64]*domain.Redirect)}
}

func (r *fakeRepo) List(_ context.Context) ([]*domain.Redirect, error) {
	var result []*domain.Redirect
	for id := int64(1); id <= r.nextID; id++ {
		if rd, ok := r.items[id]; ok {
			result = append(result, rd)
		}
	}
	return result, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Redirect, error) {
	rd, ok := r.items[id]
	if !ok {
		return nil, redirectRepo.ErrRedirectNotFound
	}
	return rd, nil
}

func (r *fakeRepo) Hit(_ context.Context, fromPath string) (*domain.Redirect, error) {
	for _, rd := range r.items {
		if rd.FromPath == fromPath && rd.IsActive {
			rd.Hits++
			now := time.Now()
			rd.LastHitAt = &now
			return rd, nil
		}
	}
	return nil, redirectRepo.ErrRedirectNotFound
}

func (r *fakeRepo) Create(_ context.Context, rd *domain.Redirect) (*domain.Redirect, error) {
	for _, existing := range r.items {
		if existing.FromPath == rd.FromPath {
			return nil, redirectRepo.ErrPathTaken
		}
	}
	r.nextID++
	copied := *rd
	copied.ID = r.nextID
	r.items[copied.ID] = &copied
	return &copied, nil
}

func (r *fakeRepo) Update(_ context.Context, rd *domain.Redirect) (*domain.Redirect, error) {
	existing, ok := r.items[rd.ID]
	if !ok {
		return nil, redirectRepo.ErrRedirectNotFound
	}
	copied := *rd
	copied.Hits = existing.Hits
	copied.LastHitAt = existing.LastHitAt
	r.items[rd.ID] = &copied
	return &copied, nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return redirectRepo.ErrRedirectNotFound
	}
	delete(r.items, id)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "/tratamientos/", want: "/tratamientos"},
		{in: " /blog/post?utm=x#top ", want: "/blog/post"},
		{in: "/", want: "/"},
		{in: "tratamientos", wantErr: true},
		{in: "//evil.example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizePath(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Create(t *testing.T) {
	svc := NewService(newFakeRepo(), nopLogger{})

	resp, err := svc.Create(context.Background(), &models.RedirectRequest{
		FromPath: "/old-page/",
		ToPath:   "/servicios",
	})
	require.NoError(t, err)
	assert.Equal(t, "/old-page", resp.FromPath)
	assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
	assert.True(t, resp.IsActive)

	_, err = svc.Create(context.Background(), &models.RedirectRequest{FromPath: "/old-page", ToPath: "/x"})
	assert.ErrorIs(t, err, ErrPathTaken)
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.RedirectRequest
	}{
		{"relative from", models.RedirectRequest{FromPath: "old", ToPath: "/new"}},
		{"empty to", models.RedirectRequest{FromPath: "/old", ToPath: " "}},
		{"self loop", models.RedirectRequest{FromPath: "/old", ToPath: "/old/"}},
		{"bad scheme", models.RedirectRequest{FromPath: "/old", ToPath: "ftp://example.com"}},
		{"bad code", models.RedirectRequest{FromPath: "/old", ToPath: "/new", StatusCode: 307}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newFakeRepo(), nopLogger{})
			req := tt.req
			_, err := svc.Create(context.Background(), &req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_Resolve(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.RedirectRequest{FromPath: "/promo", ToPath: "https://shop.example.com/", StatusCode: 302})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &models.RedirectRequest{FromPath: "/inactive", ToPath: "/x", IsActive: ptr.Ptr(false)})
	require.NoError(t, err)

	target, err := svc.Resolve(ctx, "/promo/?ref=ig")
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/", target.Location)
	assert.Equal(t, http.StatusFound, target.StatusCode)
	assert.Equal(t, int64(1), repo.items[1].Hits)
	assert.NotNil(t, repo.items[1].LastHitAt)

	_, err = svc.Resolve(ctx, "/inactive")
	assert.ErrorIs(t, err, ErrRedirectNotFound)

	_, err = svc.Resolve(ctx, "/missing")
	assert.ErrorIs(t, err, ErrRedirectNotFound)
}

func TestService_Update_KeepsHits(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.RedirectRequest{FromPath: "/a", ToPath: "/b"})
	require.NoError(t, err)
	_, err = svc.Resolve(ctx, "/a")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, 1, &models.RedirectRequest{FromPath: "/a", ToPath: "/c", StatusCode: 302})
	require.NoError(t, err)
	assert.Equal(t, "/c", updated.ToPath)
	assert.Equal(t, int64(1), updated.Hits)

	_, err = svc.Update(ctx, 5, &models.RedirectRequest{FromPath: "/a", ToPath: "/c"})
	assert.ErrorIs(t, err, ErrRedirectNotFound)
}

func TestService_Delete(t *testing.T) {
	svc := NewService(newFakeRepo(), nopLogger{})
	_, err := svc.Create(context.Background(), &models.RedirectRequest{FromPath: "/a", ToPath: "/b"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), 1))
	_, err = svc.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrRedirectNotFound)
}
