package services

import (
	"context"
	"encoding/json"
	"time"

	"greenbytes/internal/cache"
	"greenbytes/internal/domain"
	"greenbytes/internal/repos"
)

const productListKey = "products:all"

// CatalogService fronts the product repo with a short-lived list cache.
// Writes go straight through and invalidate the cached listing so that
// checkout re-validation always sees fresh stock on the :id route.
type CatalogService struct {
	Prods *repos.ProductRepo
	Cache cache.Cache
	TTL   time.Duration
}

func NewCatalogService(prods *repos.ProductRepo, c cache.Cache, ttl time.Duration) *CatalogService {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &CatalogService{Prods: prods, Cache: c, TTL: ttl}
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	if s.Cache != nil {
		if b, err := s.Cache.Get(ctx, productListKey); err == nil {
			var out []domain.Product
			if json.Unmarshal(b, &out) == nil {
				return out, nil
			}
		}
	}
	out, err := s.Prods.List()
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		if b, err := json.Marshal(out); err == nil {
			_ = s.Cache.Set(ctx, productListKey, b, s.TTL)
		}
	}
	return out, nil
}

func (s *CatalogService) Get(id string) (domain.Product, error) {
	return s.Prods.Get(id)
}

func (s *CatalogService) Create(ctx context.Context, p domain.Product) error {
	if err := s.Prods.Create(p); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) Update(ctx context.Context, id string, p domain.Product) (int64, error) {
	n, err := s.Prods.Update(id, p)
	if err == nil && n > 0 {
		s.invalidate(ctx)
	}
	return n, err
}

func (s *CatalogService) Delete(ctx context.Context, id string) (int64, error) {
	n, err := s.Prods.Delete(id)
	if err == nil && n > 0 {
		s.invalidate(ctx)
	}
	return n, err
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.Cache != nil {
		_ = s.Cache.Delete(ctx, productListKey)
	}
}
