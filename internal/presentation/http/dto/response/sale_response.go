package response

import (
	"time"

	"github.com/sangkips/shopdesk-pos/internal/domain/entity"
)

// SaleSummaryResponse is one row of the sales history
type SaleSummaryResponse struct {
	ID            string    `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	CustomerName  string    `json:"customer_name"`
	NetTotal      float64   `json:"net_total"`
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
}

// SaleItemResponse is one recorded line of a sale
type SaleItemResponse struct {
	ProductName string  `json:"product_name"`
	Qty         int     `json:"qty"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

// SaleDetailResponse is a recorded sale
type SaleDetailResponse struct {
	SaleSummaryResponse
	GrossTotal     float64            `json:"gross_total"`
	DiscountAmount float64            `json:"discount_amount"`
	AmountPaid     float64            `json:"amount_paid"`
	Items          []SaleItemResponse `json:"items"`
}

// NewSaleSummaryResponse converts a sale summary
func NewSaleSummaryResponse(s *entity.SaleSummary) SaleSummaryResponse {
	return SaleSummaryResponse{
		ID:            s.ID,
		InvoiceNumber: s.InvoiceNumber,
		CustomerName:  s.CustomerName,
		NetTotal:      money(s.NetTotal),
		PaymentMethod: s.PaymentMethod,
		CreatedAt:     s.CreatedAt,
	}
}

// NewSaleSummaryListResponse converts a page of sale summaries
func NewSaleSummaryListResponse(sales []entity.SaleSummary) []SaleSummaryResponse {
	out := make([]SaleSummaryResponse, 0, len(sales))
	for i := range sales {
		out = append(out, NewSaleSummaryResponse(&sales[i]))
	}
	return out
}

// NewSaleDetailResponse converts a sale detail
func NewSaleDetailResponse(s *entity.SaleDetail) *SaleDetailResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, SaleItemResponse{
			ProductName: it.ProductName,
			Qty:         it.Qty,
			UnitPrice:   money(it.UnitPrice),
			LineTotal:   money(it.LineTotal()),
		})
	}
	return &SaleDetailResponse{
		SaleSummaryResponse: NewSaleSummaryResponse(&s.SaleSummary),
		GrossTotal:          money(s.GrossTotal),
		DiscountAmount:      money(s.DiscountAmount),
		AmountPaid:          money(s.AmountPaid),
		Items:               items,
	}
}

// ProductResponse is a catalog product
type ProductResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Barcode      string  `json:"barcode,omitempty"`
	SellingPrice float64 `json:"selling_price"`
	Unit         string  `json:"unit"`
	PcsPerUnit   int     `json:"pcs_per_unit"`
	Stock        int     `json:"stock"`
	InStock      bool    `json:"in_stock"`
	CategoryName string  `json:"category_name,omitempty"`
}

// NewProductListResponse converts catalog products
func NewProductListResponse(products []entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		p := &products[i]
		out = append(out, ProductResponse{
			ID:           p.ID,
			Name:         p.Name,
			Barcode:      p.Barcode,
			SellingPrice: money(p.SellingPrice),
			Unit:         p.Unit.String(),
			PcsPerUnit:   p.PcsPerUnit,
			Stock:        p.Stock,
			InStock:      p.InStock(),
			CategoryName: p.CategoryName,
		})
	}
	return out
}

// CustomerResponse is a customer picker entry
type CustomerResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Phone       string  `json:"phone,omitempty"`
	Address     string  `json:"address,omitempty"`
	Area        string  `json:"area,omitempty"`
	Balance     float64 `json:"balance"`
	CreditLimit float64 `json:"credit_limit"`
}

// NewCustomerListResponse converts customers
func NewCustomerListResponse(customers []entity.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		c := &customers[i]
		out = append(out, CustomerResponse{
			ID:          c.ID,
			Name:        c.Name,
			Phone:       c.Phone,
			Address:     c.Address,
			Area:        c.Area,
			Balance:     money(c.Balance),
			CreditLimit: money(c.CreditLimit),
		})
	}
	return out
}
