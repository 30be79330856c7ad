package service

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sangkips/shopdesk-pos/internal/domain/entity"
)

func walkInPrintData() entity.PrintData {
	pd := *customerPrintData()
	pd.Customer = nil
	pd.NewBalance = nil
	pd.PreviousBalance = dec("0")
	return pd
}

func testHeader() entity.ShopHeader {
	return entity.ShopHeader{Name: "Corner Store", Address: "Main Road", Currency: "Rs", GST: "29ABCDE", ShowGST: true}
}

func TestFormatInvoiceReceiptWithCustomer(t *testing.T) {
	doc := entity.BuildInvoiceDocument(*customerPrintData(), testHeader())
	out := string(FormatInvoiceReceipt(doc, 48))

	for _, want := range []string{
		"Corner Store",
		"GST: 29ABCDE",
		"Invoice #:",
		"Ravi Traders",
		"Drinks",
		"2 CTN x Juice",
		"3 x Soap",
		"Rs 630.00",
		"Current Bill Balance:",
		"Rs 350.00",
		"Previous Balance:",
		"Total Outstanding Balance:",
		"Rs 1350.00",
		"Six Hundred Thirty Only",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("receipt missing %q", want)
		}
	}
	if strings.Index(out, "Drinks") > strings.Index(out, "Household") {
		t.Errorf("categories out of first-seen order")
	}
}

func TestFormatInvoiceReceiptWalkIn(t *testing.T) {
	doc := entity.BuildInvoiceDocument(walkInPrintData(), testHeader())
	out := string(FormatInvoiceReceipt(doc, 32))

	if !strings.Contains(out, "Walk-in Customer") {
		t.Errorf("expected walk-in customer label")
	}
	if strings.Contains(out, "Total Outstanding Balance") || strings.Contains(out, "Previous Balance") {
		t.Errorf("walk-in receipt must not show ledger balances")
	}
}

func TestFormatInvoiceReceiptHidesZeroDiscount(t *testing.T) {
	doc := entity.BuildInvoiceDocument(walkInPrintData(), testHeader())
	if strings.Contains(string(FormatInvoiceReceipt(doc, 48)), "Discount:") {
		t.Errorf("zero discount should not be printed")
	}

	pd := walkInPrintData()
	pd.DiscountAmount = dec("30")
	doc = entity.BuildInvoiceDocument(pd, testHeader())
	if !strings.Contains(string(FormatInvoiceReceipt(doc, 48)), "Discount:") {
		t.Errorf("discount should be printed")
	}
}

func TestFormatInvoicePDF(t *testing.T) {
	doc := entity.BuildInvoiceDocument(*customerPrintData(), testHeader())
	doc.Meta = entity.InvoiceMeta{CustomerNo: "C-7", DeliveredBy: "Anil", CNIC: "12345"}

	data, err := FormatInvoicePDF(doc)
	if err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("expected PDF header")
	}
}

func TestFormatInvoicePDFEmptyDocument(t *testing.T) {
	doc := entity.BuildInvoiceDocument(entity.PrintData{}, entity.ShopHeader{})

	data, err := FormatInvoicePDF(doc)
	if err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("expected PDF header")
	}
}

func TestPrinterServiceStatusAndTestPrint(t *testing.T) {
	p := &capturePrinter{}
	svc := NewPrinterService(p, "usb")

	status := svc.GetStatus()
	if !status.Configured || !status.Connected || status.Type != "usb" {
		t.Errorf("unexpected status %+v", status)
	}

	settings := &entity.ShopSettings{ShopName: "Corner Store", PaperSize: entity.PaperSize58mm}
	doc, err := svc.TestPrint(settings)
	if err != nil {
		t.Fatalf("test print: %v", err)
	}
	if doc.InvoiceNumber != "TEST-001" || len(p.jobs) != 1 {
		t.Errorf("expected one test job, got %d", len(p.jobs))
	}

	if NewPrinterService(p, "none").GetStatus().Configured {
		t.Errorf("printer type none should not be configured")
	}
}
