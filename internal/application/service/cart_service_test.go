package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shopdesk-pos/internal/domain/entity"
	"github.com/sangkips/shopdesk-pos/internal/domain/enum"
	"github.com/sangkips/shopdesk-pos/pkg/apperror"
)

const operator = "op-1"

func newTestCartService(sales *fakeSales, products ...entity.Product) *CartService {
	catalog := NewCatalogService(newFakeCatalog(products...), newMemoryCache(), time.Minute)
	return NewCartService(catalog, sales, CartServiceConfig{IdleTTL: time.Hour})
}

func defaultProducts() []entity.Product {
	return []entity.Product{
		product("soap", 50, enum.UnitKindPCS, 1, 10),
		product("juice", 20, enum.UnitKindCTN, 12, 5),
		product("empty", 10, enum.UnitKindPCS, 1, 0),
	}
}

func assertAppError(t *testing.T, err error, want *apperror.AppError) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %q, got nil", want.Message)
	}
	if !errors.Is(err, want) {
		t.Fatalf("expected %q (%d), got %v", want.Message, want.Code, err)
	}
}

func TestCartServiceAddItemMergesAndTotals(t *testing.T) {
	svc := newTestCartService(&fakeSales{}, defaultProducts()...)
	ctx := context.Background()
	cart := svc.Open(operator)

	if _, err := svc.AddItem(ctx, operator, cart.ID, "soap", 1); err != nil {
		t.Fatalf("add soap: %v", err)
	}
	if _, err := svc.AddItem(ctx, operator, cart.ID, "juice", 2); err != nil {
		t.Fatalf("add juice: %v", err)
	}
	view, err := svc.AddItem(ctx, operator, cart.ID, "soap", 2)
	if err != nil {
		t.Fatalf("add soap again: %v", err)
	}

	if len(view.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(view.Lines))
	}
	if view.Lines[0].ProductID != "soap" || view.Lines[0].QuantityInUnits != 3 {
		t.Errorf("unexpected first line %+v", view.Lines[0])
	}
	// 3 x 50 + 2 cartons x 12 pcs x 20
	if !view.Totals.GrossTotal.Equal(dec("630")) {
		t.Errorf("expected gross 630, got %s", view.Totals.GrossTotal)
	}
}

func TestCartServiceRejectsOutOfStock(t *testing.T) {
	svc := newTestCartService(&fakeSales{}, defaultProducts()...)
	cart := svc.Open(operator)

	_, err := svc.AddItem(context.Background(), operator, cart.ID, "empty", 1)
	assertAppError(t, err, apperror.ErrOutOfStock)
}

func TestCartServiceAddItemRechecksStaleStock(t *testing.T) {
	gateway := newFakeCatalog(product("soap", 50, enum.UnitKindPCS, 1, 8))
	cache := newMemoryCache()
	soldOut := product("soap", 50, enum.UnitKindPCS, 1, 0)
	cache.SetProduct(context.Background(), &soldOut, time.Minute)

	catalog := NewCatalogService(gateway, cache, time.Minute)
	svc := NewCartService(catalog, &fakeSales{}, CartServiceConfig{IdleTTL: time.Hour})
	cart := svc.Open(operator)

	view, err := svc.AddItem(context.Background(), operator, cart.ID, "soap", 1)
	if err != nil {
		t.Fatalf("restocked product rejected: %v", err)
	}
	if len(view.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(view.Lines))
	}
	if gateway.calls != 1 {
		t.Errorf("expected one backend lookup, got %d", gateway.calls)
	}
	cached, _ := cache.GetProduct(context.Background(), "soap")
	if cached.Stock != 8 {
		t.Errorf("cache not refreshed, stock %d", cached.Stock)
	}

	// Still sold out after the refetch.
	gateway.products["soap"] = soldOut
	cache.SetProduct(context.Background(), &soldOut, time.Minute)
	_, err = svc.AddItem(context.Background(), operator, cart.ID, "soap", 1)
	assertAppError(t, err, apperror.ErrOutOfStock)
}

func TestCartServiceSessionOwnership(t *testing.T) {
	svc := newTestCartService(&fakeSales{}, defaultProducts()...)
	cart := svc.Open(operator)

	_, err := svc.Get("someone-else", cart.ID)
	assertAppError(t, err, apperror.ErrSessionForbidden)

	_, err = svc.Get(operator, uuid.New())
	assertAppError(t, err, apperror.ErrSessionNotFound)
}

func TestCartServiceUpdateAndRemove(t *testing.T) {
	svc := newTestCartService(&fakeSales{}, defaultProducts()...)
	ctx := context.Background()
	cart := svc.Open(operator)
	_, _ = svc.AddItem(ctx, operator, cart.ID, "soap", 1)

	qty := 4
	price := dec("45.50")
	view, err := svc.UpdateItem(operator, cart.ID, "soap", UpdateItemInput{Quantity: &qty, UnitPrice: &price})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !view.Totals.GrossTotal.Equal(dec("182")) {
		t.Errorf("expected gross 182, got %s", view.Totals.GrossTotal)
	}

	zero := 0
	view, err = svc.UpdateItem(operator, cart.ID, "soap", UpdateItemInput{Quantity: &zero})
	if err != nil {
		t.Fatalf("update to zero: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Errorf("expected line removed, got %d lines", len(view.Lines))
	}

	_, _ = svc.AddItem(ctx, operator, cart.ID, "juice", 1)
	view, _ = svc.RemoveItem(operator, cart.ID, "juice")
	if len(view.Lines) != 0 {
		t.Errorf("expected empty cart after remove")
	}
}

func TestCartServiceSubmitEmptyCart(t *testing.T) {
	sales := &fakeSales{}
	svc := newTestCartService(sales, defaultProducts()...)
	cart := svc.Open(operator)

	_, err := svc.Submit(context.Background(), operator, cart.ID)
	assertAppError(t, err, apperror.ErrCartEmpty)
	if sales.requestCount() != 0 {
		t.Errorf("empty cart must not reach the backend")
	}
}

func TestCartServiceSubmitNegativeNetTotal(t *testing.T) {
	sales := &fakeSales{}
	svc := newTestCartService(sales, defaultProducts()...)
	ctx := context.Background()
	cart := svc.Open(operator)
	_, _ = svc.AddItem(ctx, operator, cart.ID, "soap", 1)
	_, _ = svc.SetCheckout(operator, cart.ID, entity.Checkout{
		Discount: entity.DiscountSpec{Amount: dec("80"), Kind: enum.DiscountKindFixed},
	})

	_, err := svc.Submit(ctx, operator, cart.ID)
	assertAppError(t, err, apperror.ErrNegativeNetTotal)
	if sales.requestCount() != 0 {
		t.Errorf("negative total must not reach the backend")
	}
}

func TestCartServiceSubmitSuccessClearsCart(t *testing.T) {
	sales := &fakeSales{result: &entity.PrintData{InvoiceNumber: "INV-1"}}
	svc := newTestCartService(sales, defaultProducts()...)
	ctx := context.Background()
	cart := svc.Open(operator)
	_, _ = svc.AddItem(ctx, operator, cart.ID, "juice", 2)
	_, _ = svc.SetCheckout(operator, cart.ID, entity.Checkout{
		CustomerID:    "cust-1",
		Discount:      entity.DiscountSpec{Amount: dec("10"), Kind: enum.DiscountKindPercentage},
		PaymentMethod: enum.PaymentMethodCredit,
		AmountPaid:    dec("100"),
	})

	pd, err := svc.Submit(ctx, operator, cart.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if pd.InvoiceNumber != "INV-1" {
		t.Errorf("expected INV-1, got %q", pd.InvoiceNumber)
	}

	req := sales.requests[0]
	if req.CustomerID == nil || *req.CustomerID != "cust-1" {
		t.Errorf("expected customer id in request")
	}
	if !req.IsCredit || req.PaymentMethod != "credit" {
		t.Errorf("expected credit sale, got %q credit=%v", req.PaymentMethod, req.IsCredit)
	}
	if req.Items[0].Qty != 24 || req.Items[0].QtyInUnits != 2 {
		t.Errorf("expected 24 pieces in 2 units, got %+v", req.Items[0])
	}
	// 10% of 480
	if req.DiscountAmount.String() != "48" {
		t.Errorf("expected resolved discount 48, got %s", req.DiscountAmount)
	}

	view, _ := svc.Get(operator, cart.ID)
	if len(view.Lines) != 0 || view.Checkout.HasCustomer() {
		t.Errorf("expected cart and checkout cleared, got %+v", view)
	}
	if view.State != enum.CartStateOpen {
		t.Errorf("expected Open state, got %s", view.State)
	}
}

func TestCartServiceSubmitFailureKeepsCart(t *testing.T) {
	sales := &fakeSales{err: apperror.NewBadRequestError("Insufficient stock for Product soap")}
	svc := newTestCartService(sales, defaultProducts()...)
	ctx := context.Background()
	cart := svc.Open(operator)
	_, _ = svc.AddItem(ctx, operator, cart.ID, "soap", 2)
	_, _ = svc.SetCheckout(operator, cart.ID, entity.Checkout{CustomerID: "cust-1", AmountPaid: dec("20")})

	_, err := svc.Submit(ctx, operator, cart.ID)
	if err == nil {
		t.Fatal("expected submission error")
	}
	if appErr := apperror.GetAppError(err); appErr.Code != 400 || appErr.Message != "Insufficient stock for Product soap" {
		t.Errorf("expected backend message to propagate, got %d %q", appErr.Code, appErr.Message)
	}

	view, _ := svc.Get(operator, cart.ID)
	if len(view.Lines) != 1 || view.Lines[0].QuantityInUnits != 2 {
		t.Errorf("expected cart preserved, got %+v", view.Lines)
	}
	if view.Checkout.CustomerID != "cust-1" {
		t.Errorf("expected checkout preserved")
	}
	if view.State != enum.CartStateOpen {
		t.Errorf("expected Open after failure, got %s", view.State)
	}
}

func TestCartServiceSingleSubmissionInFlight(t *testing.T) {
	sales := &fakeSales{
		result:  &entity.PrintData{InvoiceNumber: "INV-2"},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := newTestCartService(sales, defaultProducts()...)
	ctx := context.Background()
	cart := svc.Open(operator)
	_, _ = svc.AddItem(ctx, operator, cart.ID, "soap", 1)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(ctx, operator, cart.ID)
		done <- err
	}()
	<-sales.started

	_, err := svc.Submit(ctx, operator, cart.ID)
	assertAppError(t, err, apperror.ErrCartSubmitting)

	_, err = svc.AddItem(ctx, operator, cart.ID, "soap", 1)
	assertAppError(t, err, apperror.ErrCartSubmitting)

	_, err = svc.Reset(operator, cart.ID)
	assertAppError(t, err, apperror.ErrCartSubmitting)

	err = svc.Discard(operator, cart.ID)
	assertAppError(t, err, apperror.ErrCartSubmitting)

	view, _ := svc.Get(operator, cart.ID)
	if view.State != enum.CartStateSubmitting {
		t.Errorf("expected Submitting, got %s", view.State)
	}

	close(sales.release)
	if err := <-done; err != nil {
		t.Fatalf("first submission failed: %v", err)
	}
	if sales.requestCount() != 1 {
		t.Errorf("expected exactly one backend call, got %d", sales.requestCount())
	}
}

func TestCartServiceResetClearsCheckout(t *testing.T) {
	svc := newTestCartService(&fakeSales{}, defaultProducts()...)
	ctx := context.Background()
	cart := svc.Open(operator)
	_, _ = svc.AddItem(ctx, operator, cart.ID, "soap", 1)
	_, _ = svc.SetCheckout(operator, cart.ID, entity.Checkout{CustomerID: "c"})

	view, err := svc.Reset(operator, cart.ID)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(view.Lines) != 0 || view.Checkout.HasCustomer() {
		t.Errorf("expected empty cart and checkout")
	}
}

func TestCartServiceEvictIdle(t *testing.T) {
	svc := newTestCartService(&fakeSales{}, defaultProducts()...)
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	stale := svc.Open(operator)
	now = now.Add(90 * time.Minute)
	fresh := svc.Open(operator)
	now = now.Add(31 * time.Minute)

	if n := svc.EvictIdle(); n != 1 {
		t.Fatalf("expected 1 eviction, got %d", n)
	}
	if _, err := svc.Get(operator, stale.ID); err == nil {
		t.Errorf("stale session should be gone")
	}
	if _, err := svc.Get(operator, fresh.ID); err != nil {
		t.Errorf("fresh session should survive: %v", err)
	}
}

func TestCartServiceDiscard(t *testing.T) {
	svc := newTestCartService(&fakeSales{}, defaultProducts()...)
	cart := svc.Open(operator)

	if err := svc.Discard(operator, cart.ID); err != nil {
		t.Fatalf("discard: %v", err)
	}
	if svc.Count() != 0 {
		t.Errorf("expected no sessions, got %d", svc.Count())
	}
}

func TestCartServiceDiscardedHandleIsUnusable(t *testing.T) {
	sales := &fakeSales{result: &entity.PrintData{}}
	svc := newTestCartService(sales, defaultProducts()...)
	cart := svc.Open(operator)
	_, _ = svc.AddItem(context.Background(), operator, cart.ID, "soap", 1)

	sess, err := svc.lookup(operator, cart.ID)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if err := svc.Discard(operator, cart.ID); err != nil {
		t.Fatalf("discard: %v", err)
	}

	_, err = sess.mutate(time.Now(), func(c *entity.Cart, _ *entity.Checkout) {})
	assertAppError(t, err, apperror.ErrSessionNotFound)
	_, err = svc.Submit(context.Background(), operator, cart.ID)
	assertAppError(t, err, apperror.ErrSessionNotFound)
	if sales.requestCount() != 0 {
		t.Errorf("discarded cart reached the backend")
	}
}

func TestCartServiceDiscardRacesSubmit(t *testing.T) {
	for i := 0; i < 50; i++ {
		sales := &fakeSales{result: &entity.PrintData{}}
		svc := newTestCartService(sales, defaultProducts()...)
		cart := svc.Open(operator)
		_, _ = svc.AddItem(context.Background(), operator, cart.ID, "soap", 1)

		var wg sync.WaitGroup
		var submitErr, discardErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, submitErr = svc.Submit(context.Background(), operator, cart.ID)
		}()
		go func() {
			defer wg.Done()
			discardErr = svc.Discard(operator, cart.ID)
		}()
		wg.Wait()

		// A sale reached the backend only if the discard lost.
		if sales.requestCount() == 1 && discardErr == nil {
			if _, err := svc.Get(operator, cart.ID); err == nil {
				t.Fatalf("cart survived a successful discard")
			}
			if submitErr != nil {
				t.Fatalf("submit failed after reaching backend: %v", submitErr)
			}
		}
		if sales.requestCount() == 0 && submitErr == nil {
			t.Fatalf("submit reported success without a backend call")
		}
	}
}
