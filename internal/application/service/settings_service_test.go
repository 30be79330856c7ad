package service

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/shopdesk-pos/internal/domain/entity"
	"github.com/sangkips/shopdesk-pos/internal/domain/enum"
	"github.com/sangkips/shopdesk-pos/pkg/apperror"
)

func TestSettingsServiceCreatesDefaults(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo, &entity.ShopSettings{ShopName: "Seeded", Currency: "Rs", PaperSize: entity.PaperSizeA4})

	settings, err := svc.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if settings.ShopName != "Seeded" || repo.settings == nil {
		t.Errorf("expected seeded defaults to be saved, got %+v", settings)
	}
}

func TestSettingsServiceUpdate(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo, nil)

	settings, err := svc.UpdateSettings(context.Background(), &UpdateSettingsInput{
		ShopName:           "  New Name ",
		DefaultCreditLimit: dec("2500.75"),
		CreditDays:         15,
		PaperSize:          entity.PaperSize58mm,
		InvoiceTemplate:    "a4",
		AutoPrint:          false,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if settings.ShopName != "New Name" {
		t.Errorf("expected trimmed name, got %q", settings.ShopName)
	}
	if settings.DefaultCreditLimit != 250075 {
		t.Errorf("expected credit limit in paisa, got %d", settings.DefaultCreditLimit)
	}
	if settings.InvoiceTemplate != enum.InvoiceTemplateA4 || settings.PaperSize != entity.PaperSize58mm {
		t.Errorf("unexpected printer settings %+v", settings)
	}
	if settings.Currency != "Rs" {
		t.Errorf("expected default currency kept, got %q", settings.Currency)
	}
}

func TestSettingsServiceUpdateValidation(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{}, nil)

	_, err := svc.UpdateSettings(context.Background(), &UpdateSettingsInput{
		ShopName:   "",
		PaperSize:  "A5",
		CreditDays: -1,
	})
	appErr := apperror.GetAppError(err)
	if appErr.Code != 422 || len(appErr.Errors) != 3 {
		t.Fatalf("expected 3 field errors, got %d %+v", appErr.Code, appErr.Errors)
	}
}

func TestCatalogServiceCachesProducts(t *testing.T) {
	gateway := newFakeCatalog(defaultProducts()...)
	svc := NewCatalogService(gateway, newMemoryCache(), time.Minute)
	ctx := context.Background()

	if _, err := svc.GetProduct(ctx, "soap"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, err := svc.GetProduct(ctx, "soap"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gateway.calls != 1 {
		t.Errorf("expected one backend call, got %d", gateway.calls)
	}

	svc.Invalidate(ctx)
	_, _ = svc.GetProduct(ctx, "soap")
	if gateway.calls != 2 {
		t.Errorf("expected refetch after invalidate, got %d calls", gateway.calls)
	}
}

func TestCatalogServiceSearch(t *testing.T) {
	gateway := newFakeCatalog(defaultProducts()...)
	gateway.customers = []entity.Customer{
		{ID: "1", Name: "Ravi Traders", Phone: "98450"},
		{ID: "2", Name: "Meena", Phone: "99000"},
	}
	svc := NewCatalogService(gateway, newMemoryCache(), time.Minute)
	ctx := context.Background()

	products, err := svc.SearchProducts(ctx, "JUICE")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(products) != 1 || products[0].ID != "juice" {
		t.Errorf("unexpected products %+v", products)
	}

	customers, _ := svc.SearchCustomers(ctx, "9900")
	if len(customers) != 1 || customers[0].Name != "Meena" {
		t.Errorf("unexpected customers %+v", customers)
	}
}
