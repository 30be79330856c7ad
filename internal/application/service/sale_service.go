package service

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/shopdesk-pos/internal/domain/entity"
	"github.com/sangkips/shopdesk-pos/internal/domain/enum"
	"github.com/sangkips/shopdesk-pos/internal/domain/repository"
	"github.com/sangkips/shopdesk-pos/pkg/apperror"
	"github.com/sangkips/shopdesk-pos/pkg/pagination"
)

// searchWindow is how many recent sales are scanned when filtering by text.
const searchWindow = 1000

// SaleService turns submitted carts and recorded sales into invoices
type SaleService struct {
	carts    *CartService
	sales    repository.SaleGateway
	catalog  *CatalogService
	settings *SettingsService
	printer  *PrinterService
}

// NewSaleService creates a new sale service
func NewSaleService(
	carts *CartService,
	sales repository.SaleGateway,
	catalog *CatalogService,
	settings *SettingsService,
	printer *PrinterService,
) *SaleService {
	return &SaleService{
		carts:    carts,
		sales:    sales,
		catalog:  catalog,
		settings: settings,
		printer:  printer,
	}
}

// SaleResult is a rendered invoice and what happened when printing it.
type SaleResult struct {
	Document   *entity.InvoiceDocument
	Template   enum.InvoiceTemplate
	Printed    bool
	PrintError string
}

// Checkout submits the cart of a session and builds its invoice. The sale
// stands even if printing fails; the failure is reported in the result.
func (s *SaleService) Checkout(ctx context.Context, operatorID string, sessionID uuid.UUID) (*SaleResult, error) {
	pd, err := s.carts.Submit(ctx, operatorID, sessionID)
	if err != nil {
		return nil, err
	}

	// Stock moved on the backend.
	s.catalog.Invalidate(ctx)

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		log.Printf("Failed to load shop settings after sale %s: %v", pd.InvoiceNumber, err)
		settings = s.settings.newDefaults()
	}

	return s.render(pd, settings, settings.AutoPrint), nil
}

// Reprint rebuilds the invoice of a recorded sale from the backend's print
// data and optionally prints it.
func (s *SaleService) Reprint(ctx context.Context, saleID string, print bool) (*SaleResult, error) {
	pd, err := s.sales.Reprint(ctx, saleID)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	return s.render(pd, settings, print), nil
}

// InvoicePDF renders the A4 invoice of a recorded sale.
func (s *SaleService) InvoicePDF(ctx context.Context, saleID string) ([]byte, *entity.InvoiceDocument, error) {
	pd, err := s.sales.Reprint(ctx, saleID)
	if err != nil {
		return nil, nil, err
	}

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, nil, err
	}

	doc := entity.BuildInvoiceDocument(*pd, settings.Header())
	data, err := s.printer.RenderInvoicePDF(doc)
	if err != nil {
		return nil, nil, apperror.NewAppError(http.StatusInternalServerError, err.Error())
	}
	return data, doc, nil
}

func (s *SaleService) render(pd *entity.PrintData, settings *entity.ShopSettings, print bool) *SaleResult {
	doc := entity.BuildInvoiceDocument(*pd, settings.Header())
	result := &SaleResult{
		Document: doc,
		Template: settings.InvoiceTemplate,
	}
	if !print {
		return result
	}

	printed, err := s.printer.PrintInvoice(doc, settings)
	result.Printed = printed
	if err != nil {
		result.PrintError = err.Error()
	}
	return result
}

// GetSale returns a recorded sale
func (s *SaleService) GetSale(ctx context.Context, saleID string) (*entity.SaleDetail, error) {
	return s.sales.GetSale(ctx, saleID)
}

// ListSales returns a page of recorded sales. With a search term, the most
// recent sales are filtered by invoice number or customer name and paged
// locally.
func (s *SaleService) ListSales(ctx context.Context, search string, params *pagination.PaginationParams) ([]entity.SaleSummary, int64, error) {
	params.Validate()

	search = strings.TrimSpace(search)
	if search == "" {
		return s.sales.ListSales(ctx, params)
	}

	all, _, err := s.sales.ListSales(ctx, &pagination.PaginationParams{Page: 1, PerPage: searchWindow})
	if err != nil {
		return nil, 0, err
	}

	matched := make([]entity.SaleSummary, 0)
	for i := range all {
		if all[i].MatchesSearch(search) {
			matched = append(matched, all[i])
		}
	}

	start, end := params.Bounds(len(matched))
	return matched[start:end], int64(len(matched)), nil
}
