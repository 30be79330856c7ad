package entity

import (
	"time"

	"github.com/sangkips/shopdesk-pos/internal/domain/enum"
	"github.com/sangkips/shopdesk-pos/pkg/numwords"
	"github.com/shopspring/decimal"
)

// UncategorizedLabel groups items whose category is unknown.
const UncategorizedLabel = "Uncategorized"

// ShopHeader is the shop identity printed on every invoice.
type ShopHeader struct {
	Name               string
	Address            string
	Phone              string
	Email              string
	GST                string
	ShowGST            bool
	FooterText         string
	TermsAndConditions string
	Currency           string
}

// InvoiceItem is one printed invoice line. UnitQuantity is set only for
// units where the selling unit differs from a piece.
type InvoiceItem struct {
	Name         string
	Unit         enum.UnitKind
	Pieces       int
	UnitQuantity *int
	UnitPrice    decimal.Decimal
	LineTotal    decimal.Decimal
}

// Cartons is the carton count column value.
func (i InvoiceItem) Cartons() int {
	if i.Unit.IsCarton() && i.UnitQuantity != nil {
		return *i.UnitQuantity
	}
	return 0
}

// LoosePieces is the piece count column value for piece-sold products.
func (i InvoiceItem) LoosePieces() int {
	if i.Unit == enum.UnitKindPCS {
		return i.Pieces
	}
	return 0
}

// Kilograms is the weight column value.
func (i InvoiceItem) Kilograms() int {
	if i.Unit.IsWeight() && i.UnitQuantity != nil {
		return *i.UnitQuantity
	}
	return 0
}

// InvoiceCategory is an ordered group of items sharing a category name.
type InvoiceCategory struct {
	Name  string
	Items []InvoiceItem
}

// InvoiceDocument is the render model for a printed invoice.
type InvoiceDocument struct {
	Shop               ShopHeader
	InvoiceNumber      string
	IssuedAt           time.Time
	DueDate            *time.Time
	Customer           *CustomerSnapshot
	Meta               InvoiceMeta
	PaymentMethod      string
	Categories         []InvoiceCategory
	ItemCount          int
	GrossTotal         decimal.Decimal
	DiscountAmount     decimal.Decimal
	NetTotal           decimal.Decimal
	AmountPaid         decimal.Decimal
	CurrentBillBalance decimal.Decimal
	PreviousBalance    decimal.Decimal
	NewBalance         *decimal.Decimal
	AmountInWords      string
}

// HasCustomer reports whether the sale was made to a named customer.
func (d *InvoiceDocument) HasCustomer() bool {
	return d.Customer != nil
}

// CustomerName is the printed customer name.
func (d *InvoiceDocument) CustomerName() string {
	if d.Customer == nil || d.Customer.Name == "" {
		return "Walk-in Customer"
	}
	return d.Customer.Name
}

// BuildInvoiceDocument turns backend print data into a render model. It is
// a pure function of its inputs, so submit and reprint produce identical
// documents for identical data.
func BuildInvoiceDocument(pd PrintData, shop ShopHeader) *InvoiceDocument {
	doc := &InvoiceDocument{
		Shop:            shop,
		InvoiceNumber:   pd.InvoiceNumber,
		IssuedAt:        pd.Date,
		Meta:            pd.Meta,
		PaymentMethod:   pd.PaymentMethod,
		GrossTotal:      pd.GrossTotal,
		DiscountAmount:  pd.DiscountAmount,
		NetTotal:        pd.NetTotal,
		AmountPaid:      pd.AmountPaid,
		PreviousBalance: pd.PreviousBalance,
		AmountInWords:   numwords.ToWords(pd.NetTotal),
	}
	if pd.DueDate != nil {
		due := *pd.DueDate
		doc.DueDate = &due
	}
	if pd.Customer != nil {
		c := *pd.Customer
		if c.Area == "" {
			c.Area = pd.Meta.Area
		}
		doc.Customer = &c
	}

	if len(pd.Items) > 0 {
		doc.Categories = groupByCategory(pd.Items)
	} else {
		doc.Categories = regroup(pd.Categories)
	}
	for _, c := range doc.Categories {
		doc.ItemCount += len(c.Items)
	}

	if pd.Balance != nil {
		doc.CurrentBillBalance = *pd.Balance
	} else {
		doc.CurrentBillBalance = pd.NetTotal.Sub(pd.AmountPaid)
	}

	if doc.Customer != nil {
		var nb decimal.Decimal
		if pd.NewBalance != nil {
			nb = *pd.NewBalance
		} else {
			nb = pd.PreviousBalance.Add(doc.CurrentBillBalance)
		}
		doc.NewBalance = &nb
	}
	return doc
}

// groupByCategory groups items by category name in first-seen order.
func groupByCategory(items []PrintItem) []InvoiceCategory {
	var groups []InvoiceCategory
	index := make(map[string]int)
	for _, it := range items {
		name := it.Category
		if name == "" {
			name = UncategorizedLabel
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, InvoiceCategory{Name: name})
		}
		groups[i].Items = append(groups[i].Items, toInvoiceItem(it))
	}
	return groups
}

// regroup flattens pre-grouped categories, keeping their order.
func regroup(categories []PrintCategory) []InvoiceCategory {
	var items []PrintItem
	for _, c := range categories {
		for _, it := range c.Items {
			it.Category = c.Name
			items = append(items, it)
		}
	}
	return groupByCategory(items)
}

func toInvoiceItem(it PrintItem) InvoiceItem {
	item := InvoiceItem{
		Name:      it.Name,
		Unit:      it.Unit,
		Pieces:    it.Qty,
		UnitPrice: it.UnitPrice,
		LineTotal: it.LineTotal,
	}
	if it.Unit.ShowsUnitQuantity() {
		q := it.QtyInUnits
		item.UnitQuantity = &q
	}
	return item
}
