package usecase

import (
	"context"

	"github.com/Dpak2002/go-ecommerce-api/internal/entity"
)

// CatalogService fronts product and category writes so that every
// mutation invalidates the matching cache keys before the response is
// returned. Reads go straight to the stores; the HTTP layer handles
// read-through caching of the rendered snapshots.
type CatalogService struct {
	products   ProductStore
	categories CategoryStore
	cache      CacheInvalidator
}

func NewCatalogService(products ProductStore, categories CategoryStore, cache CacheInvalidator) *CatalogService {
	return &CatalogService{products: products, categories: categories, cache: cache}
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *CatalogService) ListProducts(ctx context.Context, p ListParams) ([]entity.Product, error) {
	return s.products.List(ctx, p)
}

func (s *CatalogService) CreateProduct(ctx context.Context, prod *entity.Product) error {
	if err := s.products.Create(ctx, prod); err != nil {
		return err
	}
	s.cache.InvalidateProduct(ctx, prod.ID)
	return nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, prod *entity.Product) error {
	if err := s.products.Update(ctx, prod); err != nil {
		return err
	}
	s.cache.InvalidateProduct(ctx, prod.ID)
	return nil
}

func (s *CatalogService) DeactivateProduct(ctx context.Context, id int64) error {
	if err := s.products.Deactivate(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidateProduct(ctx, id)
	return nil
}

func (s *CatalogService) SetStock(ctx context.Context, id int64, stock int) (*entity.Product, error) {
	if stock < 0 {
		return nil, ErrInvalidInput
	}
	if err := s.products.SetStock(ctx, id, stock); err != nil {
		return nil, err
	}
	s.cache.InvalidateProduct(ctx, id)
	return s.products.GetByID(ctx, id)
}

func (s *CatalogService) GetCategory(ctx context.Context, id int64) (*entity.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *CatalogService) ListCategories(ctx context.Context, p ListParams) ([]entity.Category, error) {
	return s.categories.List(ctx, p)
}

func (s *CatalogService) CreateCategory(ctx context.Context, cat *entity.Category) error {
	if err := s.categories.Create(ctx, cat); err != nil {
		return err
	}
	s.cache.InvalidateCategory(ctx, cat.ID)
	return nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, cat *entity.Category) error {
	if err := s.categories.Update(ctx, cat); err != nil {
		return err
	}
	s.cache.InvalidateCategory(ctx, cat.ID)
	return nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidateCategory(ctx, id)
	return nil
}
