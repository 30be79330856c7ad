package entity

import (
	"github.com/sangkips/shopdesk-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Product is a read-only catalog snapshot fetched from the shop backend.
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Barcode      string          `json:"barcode,omitempty"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Unit         enum.UnitKind   `json:"unit"`
	PcsPerUnit   int             `json:"pcs_per_unit"`
	Stock        int             `json:"stock"`
	CategoryID   string          `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
}

// InStock reports whether at least one unit can be sold.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// Matches reports whether the product name or barcode contains term,
// ignoring case. An empty term matches everything.
func (p *Product) Matches(term string) bool {
	return containsFold(p.Name, term) || containsFold(p.Barcode, term)
}

// Customer is a read-only customer snapshot fetched from the shop backend.
type Customer struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone,omitempty"`
	Address     string          `json:"address,omitempty"`
	Area        string          `json:"area,omitempty"`
	Balance     decimal.Decimal `json:"balance"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
}

// Matches reports whether the customer name or phone contains term,
// ignoring case.
func (c *Customer) Matches(term string) bool {
	return containsFold(c.Name, term) || containsFold(c.Phone, term)
}
