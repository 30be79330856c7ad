package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// UnitKind is the selling unit of a product. PCS is piece-like, CTN and BOX
// are carton-like, KG is weight-like.
type UnitKind int

const (
	UnitKindPCS UnitKind = 0
	UnitKindCTN UnitKind = 1
	UnitKindBOX UnitKind = 2
	UnitKindKG  UnitKind = 3
)

func (u UnitKind) String() string {
	switch u {
	case UnitKindCTN:
		return "CTN"
	case UnitKindBOX:
		return "BOX"
	case UnitKindKG:
		return "KG"
	default:
		return "PCS"
	}
}

// ParseUnitKind maps a unit label to a UnitKind. Unknown or empty labels
// fall back to PCS.
func ParseUnitKind(s string) UnitKind {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CTN", "CARTON":
		return UnitKindCTN
	case "BOX":
		return UnitKindBOX
	case "KG", "KGS":
		return UnitKindKG
	default:
		return UnitKindPCS
	}
}

// IsCarton reports whether the unit is sold by the carton.
func (u UnitKind) IsCarton() bool {
	return u == UnitKindCTN || u == UnitKindBOX
}

// IsWeight reports whether the unit is sold by weight.
func (u UnitKind) IsWeight() bool {
	return u == UnitKindKG
}

// ShowsUnitQuantity reports whether invoices print the quantity in units
// next to the piece count.
func (u UnitKind) ShowsUnitQuantity() bool {
	return u.IsCarton() || u.IsWeight()
}

func (u UnitKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

func (u *UnitKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			*u = UnitKindPCS
			return nil
		}
		*u = UnitKind(i)
		if *u < UnitKindPCS || *u > UnitKindKG {
			*u = UnitKindPCS
		}
		return nil
	}
	*u = ParseUnitKind(str)
	return nil
}

func (u UnitKind) Value() (driver.Value, error) {
	return u.String(), nil
}

func (u *UnitKind) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*u = ParseUnitKind(v)
	case []byte:
		*u = ParseUnitKind(string(v))
	default:
		*u = UnitKindPCS
	}
	return nil
}
