package entity

import (
	"encoding/json"
	"time"

	"github.com/sangkips/shopdesk-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// InvoiceMeta holds the free-text fields printed on detailed invoices.
type InvoiceMeta struct {
	CustomerNo  string `json:"customer_no,omitempty"`
	Area        string `json:"area,omitempty"`
	DeliveredBy string `json:"delivered_by,omitempty"`
	BookedBy    string `json:"booked_by,omitempty"`
	LicenseNo   string `json:"license_no,omitempty"`
	CNIC        string `json:"cnic,omitempty"`
	OrderNo     string `json:"order_no,omitempty"`
}

// Checkout holds the payment inputs collected alongside a cart.
type Checkout struct {
	CustomerID    string
	Discount      DiscountSpec
	PaymentMethod enum.PaymentMethod
	AmountPaid    decimal.Decimal
	Meta          InvoiceMeta
	DueDate       *time.Time
}

// HasCustomer reports whether a named customer is attached.
func (c Checkout) HasCustomer() bool {
	return c.CustomerID != ""
}

// SaleItemRequest is one line of a sale creation request.
type SaleItemRequest struct {
	ProductID  string      `json:"productId"`
	Qty        int         `json:"qty"`
	QtyInUnits int         `json:"qtyInUnits"`
	Unit       string      `json:"unit"`
	PcsPerUnit int         `json:"pcsPerUnit"`
	UnitPrice  json.Number `json:"unitPrice"`
}

// SaleRequest is the body sent to the backend to record a sale.
// Amounts are encoded as exact JSON numbers.
type SaleRequest struct {
	CustomerID     *string           `json:"customerId"`
	Items          []SaleItemRequest `json:"items"`
	DiscountAmount json.Number       `json:"discountAmount"`
	PaymentMethod  string            `json:"paymentMethod"`
	AmountPaid     json.Number       `json:"amountPaid"`
	IsCredit       bool              `json:"isCredit"`
	CustomerNo     string            `json:"customerNo"`
	Area           string            `json:"area"`
	DeliveredBy    string            `json:"deliveredBy"`
	BookedBy       string            `json:"bookedBy"`
	LicenseNo      string            `json:"licenseNo"`
	CNIC           string            `json:"cnic"`
	OrderNo        string            `json:"orderNo"`
	DueDate        *string           `json:"dueDate"`
}

// NewSaleRequest snapshots cart and checkout into a sale creation request.
// The discount is sent as the resolved amount, not the percentage.
func NewSaleRequest(cart *Cart, checkout Checkout) SaleRequest {
	totals := ComputeTotals(cart, checkout.Discount, checkout.AmountPaid)

	req := SaleRequest{
		Items:          make([]SaleItemRequest, 0, cart.Len()),
		DiscountAmount: number(totals.DiscountAmount),
		PaymentMethod:  checkout.PaymentMethod.String(),
		AmountPaid:     number(totals.AmountPaid),
		IsCredit:       checkout.PaymentMethod.IsCredit(),
		CustomerNo:     checkout.Meta.CustomerNo,
		Area:           checkout.Meta.Area,
		DeliveredBy:    checkout.Meta.DeliveredBy,
		BookedBy:       checkout.Meta.BookedBy,
		LicenseNo:      checkout.Meta.LicenseNo,
		CNIC:           checkout.Meta.CNIC,
		OrderNo:        checkout.Meta.OrderNo,
	}
	if checkout.HasCustomer() {
		id := checkout.CustomerID
		req.CustomerID = &id
	}
	if checkout.DueDate != nil {
		d := checkout.DueDate.Format("2006-01-02")
		req.DueDate = &d
	}

	for _, l := range cart.Lines() {
		req.Items = append(req.Items, SaleItemRequest{
			ProductID:  l.ProductID,
			Qty:        l.TotalPieces(),
			QtyInUnits: l.QuantityInUnits,
			Unit:       l.Unit.String(),
			PcsPerUnit: l.PcsPerUnit,
			UnitPrice:  number(l.UnitPrice),
		})
	}
	return req
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// SaleSummary is one row of the sales history.
type SaleSummary struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerName  string          `json:"customer_name"`
	NetTotal      decimal.Decimal `json:"net_total"`
	PaymentMethod string          `json:"payment_method"`
	CreatedAt     time.Time       `json:"created_at"`
}

// MatchesSearch reports whether the invoice number or customer name
// contains term, ignoring case.
func (s *SaleSummary) MatchesSearch(term string) bool {
	return containsFold(s.InvoiceNumber, term) || containsFold(s.CustomerName, term)
}

// SaleDetailItem is one recorded line of a sale.
type SaleDetailItem struct {
	ProductName string          `json:"product_name"`
	Qty         int             `json:"qty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// LineTotal is Qty multiplied by UnitPrice.
func (i SaleDetailItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Qty)))
}

// SaleDetail is a recorded sale as returned by the backend.
type SaleDetail struct {
	SaleSummary
	GrossTotal     decimal.Decimal  `json:"gross_total"`
	DiscountAmount decimal.Decimal  `json:"discount_amount"`
	AmountPaid     decimal.Decimal  `json:"amount_paid"`
	Items          []SaleDetailItem `json:"items"`
}
