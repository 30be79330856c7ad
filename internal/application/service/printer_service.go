package service

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/sangkips/shopdesk-pos/internal/domain/entity"
	"github.com/sangkips/shopdesk-pos/internal/domain/enum"
	"github.com/sangkips/shopdesk-pos/internal/metrics"
	"github.com/sangkips/shopdesk-pos/pkg/printer"
	"github.com/shopspring/decimal"
)

// PrinterService handles invoice rendering and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	printerType string
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, printerType string) *PrinterService {
	return &PrinterService{
		printer:     p,
		printerType: printerType,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a sample invoice to the printer using the shop settings.
// The document is returned even when printing fails.
func (s *PrinterService) TestPrint(settings *entity.ShopSettings) (*entity.InvoiceDocument, error) {
	doc := sampleInvoice(settings.Header())

	data := FormatInvoiceReceipt(doc, settings.ThermalWidth())
	if err := s.printer.Print(data); err != nil {
		metrics.PrintJobs.WithLabelValues("test", "failed").Inc()
		return doc, fmt.Errorf("test print failed: %w", err)
	}
	metrics.PrintJobs.WithLabelValues("test", "printed").Inc()
	return doc, nil
}

// PrintInvoice sends doc to the thermal printer when the shop uses the
// thermal template. A4 invoices are served as PDF instead and are not sent
// to the device; printed reports whether bytes went to the printer.
func (s *PrinterService) PrintInvoice(doc *entity.InvoiceDocument, settings *entity.ShopSettings) (printed bool, err error) {
	template := settings.InvoiceTemplate.String()
	if settings.InvoiceTemplate == enum.InvoiceTemplateA4 {
		metrics.PrintJobs.WithLabelValues(template, "skipped").Inc()
		return false, nil
	}

	data := FormatInvoiceReceipt(doc, settings.ThermalWidth())
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (invoice %s): %v", doc.InvoiceNumber, err)
		metrics.PrintJobs.WithLabelValues(template, "failed").Inc()
		return false, fmt.Errorf("failed to print invoice: %w", err)
	}
	metrics.PrintJobs.WithLabelValues(template, "printed").Inc()
	return true, nil
}

// FormatInvoiceReceipt converts an invoice into ESC/POS bytes.
func FormatInvoiceReceipt(doc *entity.InvoiceDocument, width int) []byte {
	d := printer.NewDocument(width)
	cur := currency(doc.Shop)

	// Header
	d.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(doc.Shop.Name).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if doc.Shop.Address != "" {
		d.Text(doc.Shop.Address)
	}
	if doc.Shop.Phone != "" {
		d.TextF("Ph: %s", doc.Shop.Phone)
	}
	if doc.Shop.ShowGST && doc.Shop.GST != "" {
		d.TextF("GST: %s", doc.Shop.GST)
	}

	d.SetBold(true).Text("INVOICE").SetBold(false)
	d.SetAlign(printer.AlignLeft).
		Separator('-')

	// Invoice info
	d.KeyValue("Invoice #:", doc.InvoiceNumber).
		KeyValue("Date:", formatDateTime(doc.IssuedAt)).
		KeyValue("Customer:", doc.CustomerName())

	if doc.Customer != nil && doc.Customer.Phone != "" {
		d.KeyValue("Phone:", doc.Customer.Phone)
	}
	if doc.PaymentMethod != "" {
		d.KeyValue("Payment:", doc.PaymentMethod)
	}
	if doc.DueDate != nil {
		d.KeyValue("Due Date:", doc.DueDate.Format("02-Jan-2006"))
	}

	d.Separator('-')

	// Items, grouped by category
	for _, cat := range doc.Categories {
		d.SetBold(true).Text(cat.Name).SetBold(false)
		for _, item := range cat.Items {
			d.ItemLine(quantityLabel(item), item.Name, item.LineTotal.StringFixed(2))
			if item.Pieces > 1 || item.UnitQuantity != nil {
				d.TextF("   @ %s %s", cur, item.UnitPrice.StringFixed(2))
			}
		}
	}

	d.Separator('-')

	// Totals
	d.KeyValue("Items:", strconv.Itoa(doc.ItemCount)).
		KeyValue("Gross Total:", money(cur, doc.GrossTotal))
	if !doc.DiscountAmount.IsZero() {
		d.KeyValue("Discount:", money(cur, doc.DiscountAmount))
	}
	d.SetBold(true).
		KeyValue("Net Total:", money(cur, doc.NetTotal)).
		SetBold(false).
		KeyValue("Amount Paid:", money(cur, doc.AmountPaid)).
		KeyValue("Current Bill Balance:", money(cur, doc.CurrentBillBalance))

	if doc.HasCustomer() && doc.NewBalance != nil {
		d.Separator('=').
			KeyValue("Previous Balance:", money(cur, doc.PreviousBalance)).
			SetBold(true).
			KeyValue("Total Outstanding Balance:", money(cur, *doc.NewBalance)).
			SetBold(false)
	}

	d.Separator('-').
		Text(doc.AmountInWords)

	// Footer
	footer := doc.Shop.FooterText
	if footer == "" {
		footer = "Thank you for your business!"
	}
	d.SetAlign(printer.AlignCenter).
		LineFeed().
		Text(footer).
		LineFeed().
		SetAlign(printer.AlignLeft)

	d.FeedLines(3).
		PartialCut()

	return d.Bytes()
}

// quantityLabel is "2 CTN" for carton and weight units, the piece count
// otherwise.
func quantityLabel(item entity.InvoiceItem) string {
	if item.UnitQuantity != nil {
		return fmt.Sprintf("%d %s", *item.UnitQuantity, item.Unit)
	}
	return strconv.Itoa(item.Pieces)
}

func currency(shop entity.ShopHeader) string {
	if shop.Currency == "" {
		return "Rs"
	}
	return shop.Currency
}

func money(cur string, d decimal.Decimal) string {
	return cur + " " + d.StringFixed(2)
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02-Jan-2006 03:04 PM")
}

func sampleInvoice(shop entity.ShopHeader) *entity.InvoiceDocument {
	pd := entity.PrintData{
		InvoiceNumber: "TEST-001",
		Date:          time.Now(),
		PaymentMethod: "cash",
		Items: []entity.PrintItem{
			{Name: "Test Item 1", Category: "Test", Unit: enum.UnitKindPCS, Qty: 1, QtyInUnits: 1, UnitPrice: decimal.NewFromInt(10), LineTotal: decimal.NewFromInt(10)},
			{Name: "Test Item 2", Category: "Test", Unit: enum.UnitKindCTN, Qty: 24, QtyInUnits: 2, UnitPrice: decimal.NewFromInt(5), LineTotal: decimal.NewFromInt(120)},
		},
		GrossTotal: decimal.NewFromInt(130),
		NetTotal:   decimal.NewFromInt(130),
		AmountPaid: decimal.NewFromInt(130),
	}
	return entity.BuildInvoiceDocument(pd, shop)
}
