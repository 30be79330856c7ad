package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sangkips/shopdesk-pos/internal/domain/enum"
)

func TestNewSaleRequest(t *testing.T) {
	cart := NewCart()
	cart.AddOrIncrement(testProduct("A", 100, 1), 2)
	carton := testProduct("B", 50, 10)
	carton.Unit = enum.UnitKindCTN
	cart.AddOrIncrement(carton, 1)

	due := time.Date(2024, 4, 4, 0, 0, 0, 0, time.UTC)
	req := NewSaleRequest(cart, Checkout{
		CustomerID:    "c1",
		Discount:      DiscountSpec{Amount: dec("10"), Kind: enum.DiscountKindPercentage},
		PaymentMethod: enum.PaymentMethodCredit,
		AmountPaid:    dec("600"),
		Meta:          InvoiceMeta{OrderNo: "PO-9"},
		DueDate:       &due,
	})

	if req.CustomerID == nil || *req.CustomerID != "c1" {
		t.Errorf("unexpected customer id %v", req.CustomerID)
	}
	if !req.IsCredit || req.PaymentMethod != "credit" {
		t.Errorf("expected credit sale, got %q credit=%v", req.PaymentMethod, req.IsCredit)
	}
	if req.DiscountAmount != "70" {
		t.Errorf("discount amount = %s, want 70", req.DiscountAmount)
	}
	if len(req.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(req.Items))
	}
	b := req.Items[1]
	if b.Qty != 10 || b.QtyInUnits != 1 || b.Unit != "CTN" || b.PcsPerUnit != 10 {
		t.Errorf("unexpected carton item %+v", b)
	}
	if req.DueDate == nil || *req.DueDate != "2024-04-04" {
		t.Errorf("unexpected due date %v", req.DueDate)
	}
}

func TestNewSaleRequestWalkInEncodesNulls(t *testing.T) {
	cart := NewCart()
	cart.AddOrIncrement(testProduct("A", 100, 1), 1)

	body, err := json.Marshal(NewSaleRequest(cart, Checkout{AmountPaid: dec("100.50")}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["customerId"] != nil || decoded["dueDate"] != nil {
		t.Errorf("expected null customerId and dueDate, got %v / %v", decoded["customerId"], decoded["dueDate"])
	}
	if decoded["amountPaid"] != 100.5 {
		t.Errorf("expected numeric amountPaid, got %v", decoded["amountPaid"])
	}
	if decoded["isCredit"] != false || decoded["paymentMethod"] != "cash" {
		t.Errorf("unexpected payment fields %v %v", decoded["paymentMethod"], decoded["isCredit"])
	}
}
