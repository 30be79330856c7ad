package response

import (
	"time"

	"github.com/sangkips/shopdesk-pos/internal/application/service"
	"github.com/sangkips/shopdesk-pos/internal/domain/entity"
)

// ShopResponse is the shop header printed on an invoice
type ShopResponse struct {
	Name       string `json:"name"`
	Address    string `json:"address,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	GST        string `json:"gst,omitempty"`
	FooterText string `json:"footer_text,omitempty"`
	Currency   string `json:"currency"`
}

// InvoiceItemResponse is one printed line
type InvoiceItemResponse struct {
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	Pieces       int     `json:"pieces"`
	UnitQuantity *int    `json:"unit_quantity,omitempty"`
	Cartons      int     `json:"cartons"`
	LoosePieces  int     `json:"loose_pieces"`
	Kilograms    int     `json:"kilograms"`
	UnitPrice    float64 `json:"unit_price"`
	LineTotal    float64 `json:"line_total"`
}

// InvoiceCategoryResponse is a named group of items
type InvoiceCategoryResponse struct {
	Name  string                `json:"name"`
	Items []InvoiceItemResponse `json:"items"`
}

// InvoiceResponse is the render model of an invoice
type InvoiceResponse struct {
	Shop               ShopResponse              `json:"shop"`
	InvoiceNumber      string                    `json:"invoice_number"`
	Date               *time.Time                `json:"date,omitempty"`
	DueDate            *time.Time                `json:"due_date,omitempty"`
	CustomerName       string                    `json:"customer_name"`
	Customer           *entity.CustomerSnapshot  `json:"customer,omitempty"`
	Meta               entity.InvoiceMeta        `json:"meta"`
	PaymentMethod      string                    `json:"payment_method"`
	Categories         []InvoiceCategoryResponse `json:"categories"`
	ItemCount          int                       `json:"item_count"`
	GrossTotal         float64                   `json:"gross_total"`
	DiscountAmount     float64                   `json:"discount_amount"`
	NetTotal           float64                   `json:"net_total"`
	AmountPaid         float64                   `json:"amount_paid"`
	CurrentBillBalance float64                   `json:"current_bill_balance"`
	PreviousBalance    float64                   `json:"previous_balance"`
	NewBalance         *float64                  `json:"new_balance,omitempty"`
	AmountInWords      string                    `json:"amount_in_words"`
}

// NewInvoiceResponse converts an invoice document
func NewInvoiceResponse(doc *entity.InvoiceDocument) *InvoiceResponse {
	categories := make([]InvoiceCategoryResponse, 0, len(doc.Categories))
	for _, c := range doc.Categories {
		items := make([]InvoiceItemResponse, 0, len(c.Items))
		for _, it := range c.Items {
			items = append(items, InvoiceItemResponse{
				Name:         it.Name,
				Unit:         it.Unit.String(),
				Pieces:       it.Pieces,
				UnitQuantity: it.UnitQuantity,
				Cartons:      it.Cartons(),
				LoosePieces:  it.LoosePieces(),
				Kilograms:    it.Kilograms(),
				UnitPrice:    money(it.UnitPrice),
				LineTotal:    money(it.LineTotal),
			})
		}
		categories = append(categories, InvoiceCategoryResponse{Name: c.Name, Items: items})
	}

	shop := ShopResponse{
		Name:       doc.Shop.Name,
		Address:    doc.Shop.Address,
		Phone:      doc.Shop.Phone,
		Email:      doc.Shop.Email,
		FooterText: doc.Shop.FooterText,
		Currency:   doc.Shop.Currency,
	}
	if doc.Shop.ShowGST {
		shop.GST = doc.Shop.GST
	}

	resp := &InvoiceResponse{
		Shop:               shop,
		InvoiceNumber:      doc.InvoiceNumber,
		DueDate:            doc.DueDate,
		CustomerName:       doc.CustomerName(),
		Customer:           doc.Customer,
		Meta:               doc.Meta,
		PaymentMethod:      doc.PaymentMethod,
		Categories:         categories,
		ItemCount:          doc.ItemCount,
		GrossTotal:         money(doc.GrossTotal),
		DiscountAmount:     money(doc.DiscountAmount),
		NetTotal:           money(doc.NetTotal),
		AmountPaid:         money(doc.AmountPaid),
		CurrentBillBalance: money(doc.CurrentBillBalance),
		PreviousBalance:    money(doc.PreviousBalance),
		AmountInWords:      doc.AmountInWords,
	}
	if !doc.IssuedAt.IsZero() {
		issued := doc.IssuedAt
		resp.Date = &issued
	}
	if doc.NewBalance != nil {
		nb := money(*doc.NewBalance)
		resp.NewBalance = &nb
	}
	return resp
}

// SaleResultResponse is a rendered invoice and its print outcome
type SaleResultResponse struct {
	Invoice    *InvoiceResponse `json:"invoice"`
	Template   string           `json:"template"`
	Printed    bool             `json:"printed"`
	PrintError string           `json:"print_error,omitempty"`
}

// NewSaleResultResponse converts a sale result
func NewSaleResultResponse(r *service.SaleResult) *SaleResultResponse {
	return &SaleResultResponse{
		Invoice:    NewInvoiceResponse(r.Document),
		Template:   r.Template.String(),
		Printed:    r.Printed,
		PrintError: r.PrintError,
	}
}
