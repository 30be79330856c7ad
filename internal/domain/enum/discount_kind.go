package enum

import (
	"encoding/json"
	"strings"
)

// DiscountKind selects how a discount amount is applied to the gross total.
type DiscountKind int

const (
	DiscountKindPercentage DiscountKind = 0
	DiscountKindFixed      DiscountKind = 1
)

func (d DiscountKind) String() string {
	if d == DiscountKindFixed {
		return "fixed"
	}
	return "percentage"
}

func ParseDiscountKind(s string) DiscountKind {
	if strings.EqualFold(strings.TrimSpace(s), "fixed") {
		return DiscountKindFixed
	}
	return DiscountKindPercentage
}

func (d DiscountKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DiscountKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*d = DiscountKind(i)
		return nil
	}
	*d = ParseDiscountKind(str)
	return nil
}
