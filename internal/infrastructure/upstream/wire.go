package upstream

import (
	"encoding/json"
	"time"

	"github.com/sangkips/shopdesk-pos/internal/domain/entity"
	"github.com/sangkips/shopdesk-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// ref decodes either a bare id or a populated object with a name.
type ref struct {
	ID   string
	Name string
}

func (r *ref) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.ID = s
		return nil
	}
	var obj struct {
		MongoID string `json:"_id"`
		ID      string `json:"id"`
		Name    string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	r.ID = obj.MongoID
	if r.ID == "" {
		r.ID = obj.ID
	}
	r.Name = obj.Name
	return nil
}

// count decodes integers that may arrive as floats or numeric strings.
type count int

func (c *count) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err == nil {
		*c = count(d.IntPart())
	}
	return nil
}

type identity struct {
	MongoID string `json:"_id"`
	ID      string `json:"id"`
}

func (i identity) value() string {
	if i.MongoID != "" {
		return i.MongoID
	}
	return i.ID
}

type productDTO struct {
	identity
	Name         string          `json:"name"`
	Barcode      string          `json:"barcode"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	Unit         string          `json:"unit"`
	PcsPerUnit   count           `json:"pcsPerUnit"`
	Stock        count           `json:"stock"`
	Category     ref             `json:"category"`
}

func (p productDTO) toEntity() entity.Product {
	return entity.Product{
		ID:           p.value(),
		Name:         p.Name,
		Barcode:      p.Barcode,
		SellingPrice: p.SellingPrice,
		Unit:         enum.ParseUnitKind(p.Unit),
		PcsPerUnit:   entity.NormalizePcsPerUnit(int(p.PcsPerUnit)),
		Stock:        int(p.Stock),
		CategoryID:   p.Category.ID,
		CategoryName: p.Category.Name,
	}
}

type customerDTO struct {
	identity
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	Area        string          `json:"area"`
	Balance     decimal.Decimal `json:"balance"`
	CreditLimit decimal.Decimal `json:"creditLimit"`
}

func (c customerDTO) toEntity() entity.Customer {
	return entity.Customer{
		ID:          c.value(),
		Name:        c.Name,
		Phone:       c.Phone,
		Address:     c.Address,
		Area:        c.Area,
		Balance:     c.Balance,
		CreditLimit: c.CreditLimit,
	}
}

type saleItemDTO struct {
	Product     ref             `json:"product"`
	ProductName string          `json:"productName"`
	Qty         count           `json:"qty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

type saleDTO struct {
	identity
	InvoiceNumber  string          `json:"invoiceNumber"`
	Customer       ref             `json:"customer"`
	GrossTotal     decimal.Decimal `json:"grossTotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	NetTotal       decimal.Decimal `json:"netTotal"`
	AmountPaid     decimal.Decimal `json:"amountPaid"`
	PaymentMethod  string          `json:"paymentMethod"`
	CreatedAt      string          `json:"createdAt"`
	Items          []saleItemDTO   `json:"items"`
}

func (s saleDTO) toSummary() entity.SaleSummary {
	created, _ := time.Parse(time.RFC3339, s.CreatedAt)
	return entity.SaleSummary{
		ID:            s.value(),
		InvoiceNumber: s.InvoiceNumber,
		CustomerName:  s.Customer.Name,
		NetTotal:      s.NetTotal,
		PaymentMethod: s.PaymentMethod,
		CreatedAt:     created,
	}
}

func (s saleDTO) toDetail() entity.SaleDetail {
	detail := entity.SaleDetail{
		SaleSummary:    s.toSummary(),
		GrossTotal:     s.GrossTotal,
		DiscountAmount: s.DiscountAmount,
		AmountPaid:     s.AmountPaid,
		Items:          make([]entity.SaleDetailItem, 0, len(s.Items)),
	}
	for _, it := range s.Items {
		name := it.Product.Name
		if name == "" {
			name = it.ProductName
		}
		detail.Items = append(detail.Items, entity.SaleDetailItem{
			ProductName: name,
			Qty:         int(it.Qty),
			UnitPrice:   it.UnitPrice,
		})
	}
	return detail
}
