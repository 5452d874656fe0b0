package products

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	productRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/product"
	"github.com/m04kA/SMC-ClinicService/internal/service/products/models"
	"github.com/m04kA/SMC-ClinicService/pkg/ptr"
)

type fakeRepo struct {
	products   map[int64]*domain.Product
	categories map[int64]*domain.ProductCategory
	sold       map[int64]bool
	listCalls  int
	nextID     int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products:   make(map[int64]*domain.Product),
		categories: make(map[int64]*domain.ProductCategory),
		sold:       make(map[int64]bool),
	}
}

func (r *fakeRepo) List(_ context.Context, filter domain.ProductsFilter) ([]*domain.Product, error) {
	r.listCalls++
	var result []*domain.Product
	for id := int64(1); id <= r.nextID; id++ {
		p, ok := r.products[id]
		if !ok || (!filter.IncludeInactive && !p.IsActive) {
			continue
		}
		if filter.Featured != nil && p.IsFeatured != *filter.Featured {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, productRepo.ErrProductNotFound
	}
	return p, nil
}

func (r *fakeRepo) GetBySlug(_ context.Context, value string) (*domain.Product, error) {
	for _, p := range r.products {
		if p.Slug == value {
			return p, nil
		}
	}
	return nil, productRepo.ErrProductNotFound
}

func (r *fakeRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	for _, existing := range r.products {
		if existing.Slug == p.Slug {
			return nil, productRepo.ErrSlugTaken
		}
	}
	if p.CategoryID != nil {
		if _, ok := r.categories[*p.CategoryID]; !ok {
			return nil, productRepo.ErrCategoryNotFound
		}
	}
	r.nextID++
	copied := *p
	copied.ID = r.nextID
	r.products[copied.ID] = &copied
	return &copied, nil
}

func (r *fakeRepo) Update(_ context.Context, p *domain.Product) (*domain.Product, error) {
	copied := *p
	r.products[p.ID] = &copied
	return &copied, nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.products[id]; !ok {
		return productRepo.ErrProductNotFound
	}
	if r.sold[id] {
		return productRepo.ErrProductInUse
	}
	delete(r.products, id)
	return nil
}

func (r *fakeRepo) ListCategories(context.Context) ([]*domain.ProductCategory, error) {
	var result []*domain.ProductCategory
	for _, c := range r.categories {
		result = append(result, c)
	}
	return result, nil
}

func (r *fakeRepo) GetCategoryByID(_ context.Context, id int64) (*domain.ProductCategory, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, productRepo.ErrCategoryNotFound
	}
	return c, nil
}

func (r *fakeRepo) CreateCategory(_ context.Context, c *domain.ProductCategory) (*domain.ProductCategory, error) {
	r.nextID++
	copied := *c
	copied.ID = r.nextID
	r.categories[copied.ID] = &copied
	return &copied, nil
}

func (r *fakeRepo) UpdateCategory(_ context.Context, c *domain.ProductCategory) (*domain.ProductCategory, error) {
	copied := *c
	r.categories[c.ID] = &copied
	return &copied, nil
}

func (r *fakeRepo) DeleteCategory(_ context.Context, id int64) error {
	if _, ok := r.categories[id]; !ok {
		return productRepo.ErrCategoryNotFound
	}
	for _, p := range r.products {
		if p.CategoryID != nil && *p.CategoryID == id {
			return productRepo.ErrCategoryHasProducts
		}
	}
	delete(r.categories, id)
	return nil
}

type countingCache struct {
	values      map[string]interface{}
	invalidated []string
}

func (c *countingCache) Get(_ context.Context, key string, dst interface{}) (bool, error) {
	v, ok := c.values[key]
	if !ok {
		return false, nil
	}
	*(dst.(*models.ProductListResponse)) = *(v.(*models.ProductListResponse))
	return true, nil
}

func (c *countingCache) Set(_ context.Context, key string, value interface{}) error {
	if _, ok := value.(*models.ProductListResponse); ok {
		c.values[key] = value
	}
	return nil
}

func (c *countingCache) DeleteByPrefix(_ context.Context, prefix string) error {
	c.invalidated = append(c.invalidated, prefix)
	c.values = make(map[string]interface{})
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakeRepo, *countingCache) {
	repo := newFakeRepo()
	c := &countingCache{values: make(map[string]interface{})}
	return NewService(repo, c, nopLogger{}), repo, c
}

func TestService_CreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("stock dropped when not tracked and images sorted", func(t *testing.T) {
		s, _, c := newTestService()

		resp, err := s.Create(ctx, &models.ProductRequest{
			Name:       "Aceite Esencial Lavanda",
			Price:      decimal.RequireFromString("12.90"),
			TrackStock: false,
			Stock:      ptr.Ptr(5),
			Images: []models.ImageDTO{
				{URL: "/uploads/b.jpg", Position: 2},
				{URL: "/uploads/a.jpg", Position: 1},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "aceite-esencial-lavanda", resp.Slug)
		assert.Nil(t, resp.Stock)
		assert.True(t, resp.InStock)
		require.Len(t, resp.Images, 2)
		assert.Equal(t, "/uploads/a.jpg", resp.Images[0].URL)
		assert.True(t, decimal.RequireFromString("12.9").Equal(resp.Price))
		assert.Contains(t, c.invalidated, productsCachePrefix)
	})

	t.Run("tracked stock zero is out of stock", func(t *testing.T) {
		s, _, _ := newTestService()

		resp, err := s.Create(ctx, &models.ProductRequest{Name: "Crema", Price: decimal.NewFromInt(20), TrackStock: true, Stock: ptr.Ptr(0)})
		require.NoError(t, err)
		require.NotNil(t, resp.Stock)
		assert.False(t, resp.InStock)
	})

	t.Run("unknown category", func(t *testing.T) {
		s, _, _ := newTestService()

		_, err := s.Create(ctx, &models.ProductRequest{Name: "Crema", Price: decimal.NewFromInt(20), CategoryID: ptr.Ptr(int64(9))})
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		s, _, _ := newTestService()

		_, err := s.Create(ctx, &models.ProductRequest{Name: "Crema", Price: decimal.NewFromInt(20)})
		require.NoError(t, err)
		_, err = s.Create(ctx, &models.ProductRequest{Name: "Otra", Slug: ptr.Ptr("crema"), Price: decimal.NewFromInt(20)})
		assert.ErrorIs(t, err, ErrSlugTaken)
	})

	invalid := []struct {
		name string
		req  models.ProductRequest
	}{
		{name: "empty name", req: models.ProductRequest{Name: " ", Price: decimal.NewFromInt(1)}},
		{name: "negative price", req: models.ProductRequest{Name: "A", Price: decimal.NewFromInt(-1)}},
		{name: "negative stock", req: models.ProductRequest{Name: "A", Price: decimal.NewFromInt(1), TrackStock: true, Stock: ptr.Ptr(-1)}},
		{name: "image without url", req: models.ProductRequest{Name: "A", Price: decimal.NewFromInt(1), Images: []models.ImageDTO{{Position: 1}}}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTestService()
			req := tt.req
			_, err := s.Create(ctx, &req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_GetProduct(t *testing.T) {
	ctx := context.Background()
	s, repo, _ := newTestService()

	created, err := s.Create(ctx, &models.ProductRequest{Name: "Sérum Vitamina C", Price: decimal.NewFromInt(30), IsActive: ptr.Ptr(false)})
	require.NoError(t, err)

	_, err = s.Get(ctx, "serum-vitamina-c", false)
	assert.ErrorIs(t, err, ErrProductNotFound)

	resp, err := s.Get(ctx, "serum-vitamina-c", true)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.ID)

	repo.products[created.ID].IsActive = true
	byID, err := s.Get(ctx, "1", false)
	require.NoError(t, err)
	assert.Equal(t, "Sérum Vitamina C", byID.Name)
}

func TestService_ListCachesPublicOnly(t *testing.T) {
	ctx := context.Background()
	s, repo, _ := newTestService()

	_, err := s.Create(ctx, &models.ProductRequest{Name: "Crema", Price: decimal.NewFromInt(20), IsFeatured: true})
	require.NoError(t, err)

	featured := domain.ProductsFilter{Featured: ptr.Ptr(true)}
	first, err := s.List(ctx, featured)
	require.NoError(t, err)
	require.Len(t, first.Products, 1)
	_, err = s.List(ctx, featured)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)

	_, err = s.List(ctx, domain.ProductsFilter{IncludeInactive: true})
	require.NoError(t, err)
	_, err = s.List(ctx, domain.ProductsFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.Equal(t, 3, repo.listCalls)
}

func TestService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	s, repo, _ := newTestService()

	created, err := s.Create(ctx, &models.ProductRequest{Name: "Crema", Price: decimal.NewFromInt(20)})
	require.NoError(t, err)

	updated, err := s.Update(ctx, created.ID, &models.ProductRequest{Name: "Crema Hidratante", Price: decimal.NewFromInt(25), MetaTitle: ptr.Ptr("Crema")})
	require.NoError(t, err)
	assert.Equal(t, "crema", updated.Slug)
	assert.Equal(t, "Crema", *updated.MetaTitle)

	_, err = s.Update(ctx, 99, &models.ProductRequest{Name: "X", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrProductNotFound)

	repo.sold[created.ID] = true
	assert.ErrorIs(t, s.Delete(ctx, created.ID), ErrProductInUse)
	repo.sold[created.ID] = false
	require.NoError(t, s.Delete(ctx, created.ID))
	assert.ErrorIs(t, s.Delete(ctx, created.ID), ErrProductNotFound)
}

func TestService_ProductCategories(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestService()

	category, err := s.CreateCategory(ctx, &models.CategoryRequest{Name: "Aceites"})
	require.NoError(t, err)
	assert.Equal(t, "aceites", category.Slug)

	_, err = s.Create(ctx, &models.ProductRequest{Name: "Lavanda", Price: decimal.NewFromInt(10), CategoryID: ptr.Ptr(category.ID)})
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteCategory(ctx, category.ID), ErrCategoryHasProducts)
	assert.ErrorIs(t, s.DeleteCategory(ctx, 404), ErrCategoryNotFound)

	_, err = s.UpdateCategory(ctx, category.ID, &models.CategoryRequest{Name: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
