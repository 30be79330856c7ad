package service

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/sangkips/shopdesk-pos/internal/domain/entity"
	"github.com/sangkips/shopdesk-pos/internal/metrics"
)

// Column widths of the item table, in mm. They add up to the 190mm
// printable width of a portrait A4 page with 10mm margins.
var pdfItemColumns = []struct {
	title string
	width float64
	align string
}{
	{"Item", 70, "L"},
	{"Price", 22, "R"},
	{"QTY", 18, "C"},
	{"CTN", 16, "C"},
	{"PCS", 16, "C"},
	{"KG", 16, "C"},
	{"Total", 32, "R"},
}

// RenderInvoicePDF renders the detailed A4 sales invoice.
func (s *PrinterService) RenderInvoicePDF(doc *entity.InvoiceDocument) ([]byte, error) {
	data, err := FormatInvoicePDF(doc)
	if err != nil {
		metrics.PrintJobs.WithLabelValues("a4", "failed").Inc()
		return nil, err
	}
	metrics.PrintJobs.WithLabelValues("a4", "rendered").Inc()
	return data, nil
}

// FormatInvoicePDF converts an invoice into an A4 PDF.
func FormatInvoicePDF(doc *entity.InvoiceDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetTitle("Invoice "+doc.InvoiceNumber, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	cur := currency(doc.Shop)

	// Shop header
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(190, 10, tr(doc.Shop.Name), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	if doc.Shop.Address != "" {
		pdf.CellFormat(190, 5, tr(doc.Shop.Address), "", 1, "C", false, 0, "")
	}
	contact := doc.Shop.Phone
	if doc.Shop.Email != "" {
		if contact != "" {
			contact += "  |  "
		}
		contact += doc.Shop.Email
	}
	if contact != "" {
		pdf.CellFormat(190, 5, tr(contact), "", 1, "C", false, 0, "")
	}
	if doc.Shop.ShowGST && doc.Shop.GST != "" {
		pdf.CellFormat(190, 5, tr("GST: "+doc.Shop.GST), "", 1, "C", false, 0, "")
	}
	pdf.Ln(3)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(190, 9, "SALES INVOICE", "1", 1, "C", true, 0, "")
	pdf.Ln(2)

	// Meta block, two columns
	pdf.SetFont("Arial", "", 10)
	left := []string{
		"Invoice #: " + doc.InvoiceNumber,
		"Customer: " + doc.CustomerName(),
	}
	right := []string{
		"Date: " + formatDateTime(doc.IssuedAt),
		"Payment: " + doc.PaymentMethod,
	}
	if doc.Customer != nil {
		if doc.Customer.Address != "" {
			left = append(left, "Address: "+doc.Customer.Address)
		}
		if doc.Customer.Phone != "" {
			right = append(right, "Phone: "+doc.Customer.Phone)
		}
		if doc.Customer.Area != "" {
			left = append(left, "Area: "+doc.Customer.Area)
		}
	} else if doc.Meta.Area != "" {
		left = append(left, "Area: "+doc.Meta.Area)
	}
	if doc.DueDate != nil {
		right = append(right, "Due Date: "+doc.DueDate.Format("02-Jan-2006"))
	}
	for _, f := range []struct{ label, value string }{
		{"Customer No", doc.Meta.CustomerNo},
		{"Order No", doc.Meta.OrderNo},
		{"Booked By", doc.Meta.BookedBy},
		{"Delivered By", doc.Meta.DeliveredBy},
		{"License No", doc.Meta.LicenseNo},
		{"CNIC", doc.Meta.CNIC},
	} {
		if f.value == "" {
			continue
		}
		if len(left) <= len(right) {
			left = append(left, f.label+": "+f.value)
		} else {
			right = append(right, f.label+": "+f.value)
		}
	}
	for i := 0; i < len(left) || i < len(right); i++ {
		var l, r string
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		pdf.CellFormat(95, 6, tr(l), "", 0, "L", false, 0, "")
		pdf.CellFormat(95, 6, tr(r), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// Items per category
	for _, cat := range doc.Categories {
		pdf.SetFont("Arial", "B", 11)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(190, 7, tr(cat.Name), "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(200, 200, 200)
		for i, col := range pdfItemColumns {
			ln := 0
			if i == len(pdfItemColumns)-1 {
				ln = 1
			}
			pdf.CellFormat(col.width, 7, col.title, "1", ln, "C", true, 0, "")
		}

		pdf.SetFont("Arial", "", 9)
		for _, item := range cat.Items {
			values := []string{
				item.Name,
				item.UnitPrice.StringFixed(2),
				strconv.Itoa(item.Pieces),
				countOrDash(item.Cartons()),
				countOrDash(item.LoosePieces()),
				countOrDash(item.Kilograms()),
				item.LineTotal.StringFixed(2),
			}
			for i, col := range pdfItemColumns {
				ln := 0
				if i == len(pdfItemColumns)-1 {
					ln = 1
				}
				pdf.CellFormat(col.width, 6, tr(fitText(pdf, values[i], col.width-2)), "1", ln, col.align, false, 0, "")
			}
		}
		pdf.Ln(2)
	}

	// Summary
	pdf.Ln(2)
	pdf.SetFont("Arial", "", 10)
	summaryRow(pdf, "Total Items", strconv.Itoa(doc.ItemCount), false)
	summaryRow(pdf, "Gross Total", money(cur, doc.GrossTotal), false)
	summaryRow(pdf, "Discount", money(cur, doc.DiscountAmount), false)
	summaryRow(pdf, "Grand Total", money(cur, doc.NetTotal), true)
	summaryRow(pdf, "Cash Received", money(cur, doc.AmountPaid), false)
	summaryRow(pdf, "Current Bill Balance", money(cur, doc.CurrentBillBalance), false)
	if doc.HasCustomer() && doc.NewBalance != nil {
		summaryRow(pdf, "Previous Balance", money(cur, doc.PreviousBalance), false)
		summaryRow(pdf, "Net Balance", money(cur, *doc.NewBalance), true)
	}

	pdf.Ln(3)
	pdf.SetFont("Arial", "I", 10)
	pdf.MultiCell(190, 6, tr("Amount in words: "+doc.AmountInWords), "", "L", false)

	if doc.Shop.TermsAndConditions != "" {
		pdf.Ln(3)
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(190, 5, "Terms & Conditions", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 8)
		pdf.MultiCell(190, 4, tr(doc.Shop.TermsAndConditions), "", "L", false)
	}

	footer := doc.Shop.FooterText
	if footer == "" {
		footer = "Thank you for your business!"
	}
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, tr(footer), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func summaryRow(pdf *gofpdf.Fpdf, label, value string, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	pdf.SetFont("Arial", style, 10)
	pdf.CellFormat(110, 6, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(45, 6, label, "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 6, value, "1", 1, "R", false, 0, "")
}

func countOrDash(n int) string {
	if n == 0 {
		return "-"
	}
	return strconv.Itoa(n)
}

// fitText shortens s with an ellipsis until it fits width at the current font.
func fitText(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
