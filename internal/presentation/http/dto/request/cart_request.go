package request

import (
	"strings"
	"time"

	"github.com/sangkips/shopdesk-pos/internal/domain/entity"
	"github.com/sangkips/shopdesk-pos/internal/domain/enum"
	"github.com/sangkips/shopdesk-pos/pkg/apperror"
	"github.com/shopspring/decimal"
)

// AddItemRequest adds a product to a cart. A zero quantity adds one unit;
// a negative quantity decrements the existing line.
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// Units returns the quantity to add in selling units.
func (r *AddItemRequest) Units() int {
	if r.Quantity == 0 {
		return 1
	}
	return r.Quantity
}

// UpdateItemRequest changes the quantity and/or unit price of a cart line
type UpdateItemRequest struct {
	Quantity  *int             `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// CheckoutRequest sets the payment inputs of a cart
type CheckoutRequest struct {
	CustomerID     string          `json:"customer_id"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	DiscountType   string          `json:"discount_type" binding:"omitempty,oneof=percentage fixed"`
	PaymentMethod  string          `json:"payment_method" binding:"omitempty,oneof=cash card upi credit"`
	AmountPaid     decimal.Decimal `json:"amount_paid"`
	DueDate        string          `json:"due_date"`
	CustomerNo     string          `json:"customer_no" binding:"max=100"`
	Area           string          `json:"area" binding:"max=100"`
	DeliveredBy    string          `json:"delivered_by" binding:"max=100"`
	BookedBy       string          `json:"booked_by" binding:"max=100"`
	LicenseNo      string          `json:"license_no" binding:"max=100"`
	CNIC           string          `json:"cnic" binding:"max=50"`
	OrderNo        string          `json:"order_no" binding:"max=100"`
}

// ToCheckout converts the request into checkout inputs
func (r *CheckoutRequest) ToCheckout() (entity.Checkout, error) {
	var errs []apperror.FieldError
	if r.DiscountAmount.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "discount_amount", Message: "Discount cannot be negative"})
	}
	if r.AmountPaid.IsNegative() {
		errs = append(errs, apperror.FieldError{Field: "amount_paid", Message: "Amount paid cannot be negative"})
	}

	method := enum.PaymentMethodCash
	if r.PaymentMethod != "" {
		pm, ok := enum.ParsePaymentMethod(r.PaymentMethod)
		if !ok {
			errs = append(errs, apperror.FieldError{Field: "payment_method", Message: "Payment method must be cash, card, upi or credit"})
		}
		method = pm
	}

	var due *time.Time
	if d := strings.TrimSpace(r.DueDate); d != "" {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			errs = append(errs, apperror.FieldError{Field: "due_date", Message: "Due date must be YYYY-MM-DD"})
		} else {
			due = &t
		}
	}

	if len(errs) > 0 {
		return entity.Checkout{}, apperror.NewValidationError(errs)
	}

	return entity.Checkout{
		CustomerID: strings.TrimSpace(r.CustomerID),
		Discount: entity.DiscountSpec{
			Amount: r.DiscountAmount,
			Kind:   enum.ParseDiscountKind(r.DiscountType),
		},
		PaymentMethod: method,
		AmountPaid:    r.AmountPaid,
		DueDate:       due,
		Meta: entity.InvoiceMeta{
			CustomerNo:  strings.TrimSpace(r.CustomerNo),
			Area:        strings.TrimSpace(r.Area),
			DeliveredBy: strings.TrimSpace(r.DeliveredBy),
			BookedBy:    strings.TrimSpace(r.BookedBy),
			LicenseNo:   strings.TrimSpace(r.LicenseNo),
			CNIC:        strings.TrimSpace(r.CNIC),
			OrderNo:     strings.TrimSpace(r.OrderNo),
		},
	}, nil
}
