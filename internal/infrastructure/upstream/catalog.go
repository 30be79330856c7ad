package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/sangkips/shopdesk-pos/internal/domain/entity"
	"github.com/sangkips/shopdesk-pos/internal/domain/repository"
	"github.com/sangkips/shopdesk-pos/pkg/apperror"
)

// catalogPageSize matches the page size the till UI requests when it loads
// the whole catalog at once.
const catalogPageSize = "1000"

var _ repository.CatalogGateway = (*Client)(nil)

func (c *Client) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	data, err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var dto productDTO
	raw := dig(data, "data.product", "product", "data")
	if raw == nil || json.Unmarshal(raw, &dto) != nil || dto.value() == "" {
		return nil, apperror.ErrUpstreamResponse
	}
	p := dto.toEntity()
	return &p, nil
}

func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	data, err := c.do(ctx, http.MethodGet, "/products", fullPage(), nil)
	if err != nil {
		return nil, err
	}

	var dtos []productDTO
	if raw := dig(data, "data.products", "products"); raw != nil {
		if err := json.Unmarshal(raw, &dtos); err != nil {
			return nil, apperror.ErrUpstreamResponse
		}
	}
	products := make([]entity.Product, 0, len(dtos))
	for _, d := range dtos {
		products = append(products, d.toEntity())
	}
	return products, nil
}

func (c *Client) ListCustomers(ctx context.Context) ([]entity.Customer, error) {
	data, err := c.do(ctx, http.MethodGet, "/customers", fullPage(), nil)
	if err != nil {
		return nil, err
	}

	var dtos []customerDTO
	if raw := dig(data, "data.customers", "customers"); raw != nil {
		if err := json.Unmarshal(raw, &dtos); err != nil {
			return nil, apperror.ErrUpstreamResponse
		}
	}
	customers := make([]entity.Customer, 0, len(dtos))
	for _, d := range dtos {
		customers = append(customers, d.toEntity())
	}
	return customers, nil
}

func fullPage() url.Values {
	return url.Values{"page": {"1"}, "limit": {catalogPageSize}}
}
