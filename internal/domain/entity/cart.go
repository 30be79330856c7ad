package entity

import (
	"github.com/sangkips/shopdesk-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// CartLine is one product in a cart. QuantityInUnits is always >= 1.
type CartLine struct {
	ProductID       string
	Name            string
	Unit            enum.UnitKind
	PcsPerUnit      int
	CategoryName    string
	QuantityInUnits int
	UnitPrice       decimal.Decimal
}

// TotalPieces is the line quantity expressed in pieces.
func (l CartLine) TotalPieces() int {
	return TotalPieces(l.QuantityInUnits, l.PcsPerUnit)
}

// LineTotal is UnitPrice multiplied by TotalPieces.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.TotalPieces())))
}

// Cart is an insertion-ordered set of lines keyed by product ID. None of
// its operations fail: references to missing lines are ignored.
// The zero value is an empty cart.
type Cart struct {
	lines []CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) find(productID string) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddOrIncrement adds qty units of product, merging into an existing line.
// A merged quantity that drops to zero or below removes the line.
func (c *Cart) AddOrIncrement(product Product, qty int) {
	if product.ID == "" {
		return
	}
	if i := c.find(product.ID); i >= 0 {
		c.setAt(i, c.lines[i].QuantityInUnits+qty)
		return
	}
	if qty <= 0 {
		return
	}
	c.lines = append(c.lines, CartLine{
		ProductID:       product.ID,
		Name:            product.Name,
		Unit:            product.Unit,
		PcsPerUnit:      NormalizePcsPerUnit(product.PcsPerUnit),
		CategoryName:    product.CategoryName,
		QuantityInUnits: qty,
		UnitPrice:       product.SellingPrice,
	})
}

// SetQuantity replaces the quantity of a line. qty <= 0 removes it.
func (c *Cart) SetQuantity(productID string, qty int) {
	if i := c.find(productID); i >= 0 {
		c.setAt(i, qty)
	}
}

// SetUnitPrice overrides the price copied from the product. Negative
// prices are ignored.
func (c *Cart) SetUnitPrice(productID string, price decimal.Decimal) {
	if price.IsNegative() {
		return
	}
	if i := c.find(productID); i >= 0 {
		c.lines[i].UnitPrice = price
	}
}

func (c *Cart) setAt(i, qty int) {
	if qty <= 0 {
		c.removeAt(i)
		return
	}
	c.lines[i].QuantityInUnits = qty
}

func (c *Cart) Remove(productID string) {
	if i := c.find(productID); i >= 0 {
		c.removeAt(i)
	}
}

func (c *Cart) removeAt(i int) {
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Line returns the line for productID, if any.
func (c *Cart) Line(productID string) (CartLine, bool) {
	if i := c.find(productID); i >= 0 {
		return c.lines[i], true
	}
	return CartLine{}, false
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Clone returns an independent copy of the cart.
func (c *Cart) Clone() *Cart {
	return &Cart{lines: c.Lines()}
}
