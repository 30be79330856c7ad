package repository

import (
	"context"
	"time"

	"github.com/sangkips/shopdesk-pos/internal/domain/entity"
)

// CatalogGateway reads products and customers from the shop backend.
type CatalogGateway interface {
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	ListProducts(ctx context.Context) ([]entity.Product, error)
	ListCustomers(ctx context.Context) ([]entity.Customer, error)
}

// ProductCache caches catalog lookups. A miss returns nil, false.
type ProductCache interface {
	GetProduct(ctx context.Context, id string) (*entity.Product, bool)
	SetProduct(ctx context.Context, p *entity.Product, ttl time.Duration)
	GetProducts(ctx context.Context) ([]entity.Product, bool)
	SetProducts(ctx context.Context, products []entity.Product, ttl time.Duration)
	// Invalidate drops cached entries after stock changes.
	Invalidate(ctx context.Context)
}
