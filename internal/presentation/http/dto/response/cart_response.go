package response

import (
	"math"
	"time"

	"github.com/sangkips/shopdesk-pos/internal/application/service"
	"github.com/sangkips/shopdesk-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CartLineResponse is one line of a cart
type CartLineResponse struct {
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	PcsPerUnit   int     `json:"pcs_per_unit"`
	CategoryName string  `json:"category_name"`
	Quantity     int     `json:"quantity"`
	TotalPieces  int     `json:"total_pieces"`
	UnitPrice    float64 `json:"unit_price"`
	LineTotal    float64 `json:"line_total"`
}

// TotalsResponse holds provisional invoice totals
type TotalsResponse struct {
	GrossTotal         float64 `json:"gross_total"`
	DiscountAmount     float64 `json:"discount_amount"`
	NetTotal           float64 `json:"net_total"`
	AmountPaid         float64 `json:"amount_paid"`
	CurrentBillBalance float64 `json:"current_bill_balance"`
}

// CheckoutResponse echoes the payment inputs of a cart
type CheckoutResponse struct {
	CustomerID     string             `json:"customer_id,omitempty"`
	DiscountAmount float64            `json:"discount_amount"`
	DiscountType   string             `json:"discount_type"`
	PaymentMethod  string             `json:"payment_method"`
	IsCredit       bool               `json:"is_credit"`
	AmountPaid     float64            `json:"amount_paid"`
	DueDate        *string            `json:"due_date,omitempty"`
	Meta           entity.InvoiceMeta `json:"meta"`
}

// CartResponse is a cart session with its lines and totals
type CartResponse struct {
	ID        string             `json:"id"`
	State     string             `json:"state"`
	Lines     []CartLineResponse `json:"lines"`
	ItemCount int                `json:"item_count"`
	Checkout  CheckoutResponse   `json:"checkout"`
	Totals    TotalsResponse     `json:"totals"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// NewCartResponse converts a cart view
func NewCartResponse(v *service.CartView) *CartResponse {
	lines := make([]CartLineResponse, 0, len(v.Lines))
	for _, l := range v.Lines {
		lines = append(lines, CartLineResponse{
			ProductID:    l.ProductID,
			Name:         l.Name,
			Unit:         l.Unit.String(),
			PcsPerUnit:   l.PcsPerUnit,
			CategoryName: l.CategoryName,
			Quantity:     l.QuantityInUnits,
			TotalPieces:  l.TotalPieces(),
			UnitPrice:    money(l.UnitPrice),
			LineTotal:    money(l.LineTotal()),
		})
	}

	co := CheckoutResponse{
		CustomerID:     v.Checkout.CustomerID,
		DiscountAmount: money(v.Checkout.Discount.Amount),
		DiscountType:   v.Checkout.Discount.Kind.String(),
		PaymentMethod:  v.Checkout.PaymentMethod.String(),
		IsCredit:       v.Checkout.PaymentMethod.IsCredit(),
		AmountPaid:     money(v.Checkout.AmountPaid),
		Meta:           v.Checkout.Meta,
	}
	if v.Checkout.DueDate != nil {
		d := v.Checkout.DueDate.Format("2006-01-02")
		co.DueDate = &d
	}

	return &CartResponse{
		ID:        v.ID.String(),
		State:     v.State.String(),
		Lines:     lines,
		ItemCount: len(lines),
		Checkout:  co,
		Totals: TotalsResponse{
			GrossTotal:         money(v.Totals.GrossTotal),
			DiscountAmount:     money(v.Totals.DiscountAmount),
			NetTotal:           money(v.Totals.NetTotal),
			AmountPaid:         money(v.Totals.AmountPaid),
			CurrentBillBalance: money(v.Totals.CurrentBillBalance),
		},
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// money rounds to paisa for display. Amounts a float64 cannot hold render
// as 0 so the response still encodes.
func money(d decimal.Decimal) float64 {
	if d.NumDigits()+int(d.Exponent()) > 300 {
		return 0
	}
	f := d.Round(2).InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}
