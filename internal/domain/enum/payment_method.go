package enum

import (
	"encoding/json"
	"strings"
)

// PaymentMethod is how the customer settles a sale.
type PaymentMethod int

const (
	PaymentMethodCash   PaymentMethod = 0
	PaymentMethodCard   PaymentMethod = 1
	PaymentMethodUPI    PaymentMethod = 2
	PaymentMethodCredit PaymentMethod = 3
)

func (p PaymentMethod) String() string {
	switch p {
	case PaymentMethodCard:
		return "card"
	case PaymentMethodUPI:
		return "upi"
	case PaymentMethodCredit:
		return "credit"
	default:
		return "cash"
	}
}

// ParsePaymentMethod returns the method for a label and whether the label
// was recognised.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash", "":
		return PaymentMethodCash, true
	case "card":
		return PaymentMethodCard, true
	case "upi":
		return PaymentMethodUPI, true
	case "credit":
		return PaymentMethodCredit, true
	default:
		return PaymentMethodCash, false
	}
}

// IsCredit reports whether the sale is booked on the customer ledger.
func (p PaymentMethod) IsCredit() bool {
	return p == PaymentMethodCredit
}

func (p PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*p = PaymentMethod(i)
		return nil
	}
	*p, _ = ParsePaymentMethod(str)
	return nil
}
