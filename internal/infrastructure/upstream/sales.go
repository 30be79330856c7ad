package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sangkips/shopdesk-pos/internal/domain/entity"
	"github.com/sangkips/shopdesk-pos/internal/domain/repository"
	"github.com/sangkips/shopdesk-pos/pkg/apperror"
	"github.com/sangkips/shopdesk-pos/pkg/pagination"
)

var _ repository.SaleGateway = (*Client)(nil)

// CreateSale records a sale. A success response without print data still
// counts as a recorded sale and yields an empty PrintData.
func (c *Client) CreateSale(ctx context.Context, req entity.SaleRequest) (*entity.PrintData, error) {
	data, err := c.do(ctx, http.MethodPost, "/sales", nil, req)
	if err != nil {
		return nil, err
	}
	pd := entity.DecodePrintData(dig(data, "printData", "data.printData"))
	return &pd, nil
}

func (c *Client) Reprint(ctx context.Context, saleID string) (*entity.PrintData, error) {
	data, err := c.do(ctx, http.MethodPost, "/sales/"+url.PathEscape(saleID)+"/reprint", nil, nil)
	if err != nil {
		return nil, err
	}
	pd := entity.DecodePrintData(dig(data, "printData", "data.printData"))
	return &pd, nil
}

func (c *Client) GetSale(ctx context.Context, saleID string) (*entity.SaleDetail, error) {
	data, err := c.do(ctx, http.MethodGet, "/sales/"+url.PathEscape(saleID), nil, nil)
	if err != nil {
		return nil, err
	}

	var dto saleDTO
	raw := dig(data, "data.sale", "sale", "data", "")
	if raw == nil || json.Unmarshal(raw, &dto) != nil {
		return nil, apperror.ErrUpstreamResponse
	}
	detail := dto.toDetail()
	return &detail, nil
}

func (c *Client) ListSales(ctx context.Context, params *pagination.PaginationParams) ([]entity.SaleSummary, int64, error) {
	query := url.Values{
		"page":  {strconv.Itoa(params.Page)},
		"limit": {strconv.Itoa(params.PerPage)},
	}
	data, err := c.do(ctx, http.MethodGet, "/sales", query, nil)
	if err != nil {
		return nil, 0, err
	}

	var dtos []saleDTO
	if raw := dig(data, "data.sales", "sales"); raw != nil {
		if err := json.Unmarshal(raw, &dtos); err != nil {
			return nil, 0, apperror.ErrUpstreamResponse
		}
	}

	total := int64(len(dtos))
	if raw := dig(data, "data.pagination.total", "data.total", "pagination.total", "total"); raw != nil {
		var n count
		_ = json.Unmarshal(raw, &n)
		if int64(n) > total {
			total = int64(n)
		}
	}

	sales := make([]entity.SaleSummary, 0, len(dtos))
	for _, d := range dtos {
		sales = append(sales, d.toSummary())
	}
	return sales, total, nil
}
