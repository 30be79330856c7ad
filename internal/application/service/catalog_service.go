package service

import (
	"context"
	"time"

	"github.com/sangkips/shopdesk-pos/internal/domain/entity"
	"github.com/sangkips/shopdesk-pos/internal/domain/repository"
	"github.com/sangkips/shopdesk-pos/internal/metrics"
)

// CatalogService reads products and customers through the catalog cache
type CatalogService struct {
	gateway repository.CatalogGateway
	cache   repository.ProductCache
	ttl     time.Duration
}

// NewCatalogService creates a new catalog service
func NewCatalogService(gateway repository.CatalogGateway, cache repository.ProductCache, ttl time.Duration) *CatalogService {
	return &CatalogService{
		gateway: gateway,
		cache:   cache,
		ttl:     ttl,
	}
}

// GetProduct returns a product, preferring the cache
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	if p, ok := s.cache.GetProduct(ctx, id); ok {
		metrics.CatalogCacheLookups.WithLabelValues("hit").Inc()
		return p, nil
	}
	metrics.CatalogCacheLookups.WithLabelValues("miss").Inc()

	p, err := s.gateway.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetProduct(ctx, p, s.ttl)
	return p, nil
}

// FreshProduct bypasses the cache and refreshes it. AddItem uses it to
// recheck stock before rejecting a product the cache shows as sold out.
func (s *CatalogService) FreshProduct(ctx context.Context, id string) (*entity.Product, error) {
	p, err := s.gateway.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetProduct(ctx, p, s.ttl)
	return p, nil
}

// SearchProducts returns products whose name or barcode contains term
func (s *CatalogService) SearchProducts(ctx context.Context, term string) ([]entity.Product, error) {
	products, ok := s.cache.GetProducts(ctx)
	if ok {
		metrics.CatalogCacheLookups.WithLabelValues("hit").Inc()
	} else {
		metrics.CatalogCacheLookups.WithLabelValues("miss").Inc()
		var err error
		products, err = s.gateway.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		s.cache.SetProducts(ctx, products, s.ttl)
	}

	result := make([]entity.Product, 0, len(products))
	for i := range products {
		if products[i].Matches(term) {
			result = append(result, products[i])
		}
	}
	return result, nil
}

// SearchCustomers returns customers whose name or phone contains term
func (s *CatalogService) SearchCustomers(ctx context.Context, term string) ([]entity.Customer, error) {
	customers, err := s.gateway.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]entity.Customer, 0, len(customers))
	for i := range customers {
		if customers[i].Matches(term) {
			result = append(result, customers[i])
		}
	}
	return result, nil
}

// Invalidate drops cached catalog data. Called after a sale changes stock.
func (s *CatalogService) Invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx)
}
