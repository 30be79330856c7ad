package entity

import (
	"github.com/sangkips/shopdesk-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DiscountSpec is a discount applied to the gross total.
type DiscountSpec struct {
	Amount decimal.Decimal
	Kind   enum.DiscountKind
}

// InvoiceTotals is derived from a cart, a discount and the amount paid.
// Values are never rounded; rendering rounds to two places.
type InvoiceTotals struct {
	GrossTotal         decimal.Decimal
	DiscountAmount     decimal.Decimal
	NetTotal           decimal.Decimal
	AmountPaid         decimal.Decimal
	CurrentBillBalance decimal.Decimal
}

// ComputeTotals derives the totals for cart. Negative discount amounts and
// payments count as zero. NetTotal goes negative when a fixed discount
// exceeds the gross total.
func ComputeTotals(cart *Cart, discount DiscountSpec, amountPaid decimal.Decimal) InvoiceTotals {
	gross := decimal.Zero
	if cart != nil {
		for _, l := range cart.lines {
			gross = gross.Add(l.LineTotal())
		}
	}

	amount := nonNegative(discount.Amount)
	discountAmount := amount
	if discount.Kind == enum.DiscountKindPercentage {
		discountAmount = gross.Mul(amount).Div(hundred)
	}

	net := gross.Sub(discountAmount)
	paid := nonNegative(amountPaid)

	return InvoiceTotals{
		GrossTotal:         gross,
		DiscountAmount:     discountAmount,
		NetTotal:           net,
		AmountPaid:         paid,
		CurrentBillBalance: net.Sub(paid),
	}
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
