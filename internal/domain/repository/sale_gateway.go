package repository

import (
	"context"

	"github.com/sangkips/shopdesk-pos/internal/domain/entity"
	"github.com/sangkips/shopdesk-pos/pkg/pagination"
)

// SaleGateway records and fetches sales on the shop backend.
type SaleGateway interface {
	// CreateSale records a sale and returns the backend's print data.
	CreateSale(ctx context.Context, req entity.SaleRequest) (*entity.PrintData, error)
	// Reprint returns the print data of a recorded sale.
	Reprint(ctx context.Context, saleID string) (*entity.PrintData, error)
	GetSale(ctx context.Context, saleID string) (*entity.SaleDetail, error)
	ListSales(ctx context.Context, params *pagination.PaginationParams) ([]entity.SaleSummary, int64, error)
}
