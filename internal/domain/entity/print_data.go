package entity

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/sangkips/shopdesk-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// CustomerSnapshot is the customer as printed on an invoice.
type CustomerSnapshot struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Area    string `json:"area,omitempty"`
}

// PrintItem is one sold line as confirmed by the backend.
type PrintItem struct {
	Name       string
	Category   string
	Unit       enum.UnitKind
	Qty        int
	QtyInUnits int
	UnitPrice  decimal.Decimal
	LineTotal  decimal.Decimal
}

// PrintCategory is a named group taken from a pre-grouped payload.
type PrintCategory struct {
	Name  string
	Items []PrintItem
}

// PrintData is the backend's authoritative invoice payload. It decodes
// leniently: missing or mistyped fields become zero values and decoding
// never fails. Balance and NewBalance stay nil when the backend omits them.
type PrintData struct {
	InvoiceNumber   string
	Date            time.Time
	DueDate         *time.Time
	Customer        *CustomerSnapshot
	Meta            InvoiceMeta
	PaymentMethod   string
	Items           []PrintItem
	Categories      []PrintCategory
	GrossTotal      decimal.Decimal
	DiscountAmount  decimal.Decimal
	NetTotal        decimal.Decimal
	AmountPaid      decimal.Decimal
	PreviousBalance decimal.Decimal
	Balance         *decimal.Decimal
	NewBalance      *decimal.Decimal
}

func (p *PrintData) UnmarshalJSON(data []byte) error {
	*p = DecodePrintData(data)
	return nil
}

// DecodePrintData decodes a printData object.
func DecodePrintData(data []byte) PrintData {
	var pd PrintData
	f, ok := decodeObject(data)
	if !ok {
		return pd
	}

	pd.InvoiceNumber = looseString(f["invoiceNumber"])
	pd.Date = looseTime(f["date"])
	if due := looseTime(f["dueDate"]); !due.IsZero() {
		pd.DueDate = &due
	}
	pd.Customer = decodeCustomer(f["customer"])
	pd.Meta = InvoiceMeta{
		CustomerNo:  looseString(f["customerNo"]),
		Area:        looseString(f["area"]),
		DeliveredBy: looseString(f["deliveredBy"]),
		BookedBy:    looseString(f["bookedBy"]),
		LicenseNo:   looseString(f["licenseNo"]),
		CNIC:        looseString(f["cnic"]),
		OrderNo:     looseString(f["orderNo"]),
	}
	pd.PaymentMethod = looseString(f["paymentMethod"])
	pd.Items = decodeItems(f["items"], "")
	pd.Categories = decodeCategorized(f["categorizedItems"])
	pd.GrossTotal = looseDecimal(f["grossTotal"])
	pd.DiscountAmount = looseDecimal(f["discountAmount"])
	pd.NetTotal = looseDecimal(f["netTotal"])
	pd.AmountPaid = looseDecimal(f["amountPaid"])
	pd.PreviousBalance = looseDecimal(f["previousBalance"])
	pd.Balance = optionalDecimal(f["balance"])
	pd.NewBalance = optionalDecimal(f["newBalance"])
	return pd
}

func decodeObject(data []byte) (map[string]json.RawMessage, bool) {
	var f map[string]json.RawMessage
	if err := json.Unmarshal(data, &f); err != nil || f == nil {
		return nil, false
	}
	return f, true
}

func isNull(raw json.RawMessage) bool {
	s := bytes.TrimSpace(raw)
	return len(s) == 0 || bytes.Equal(s, []byte("null"))
}

func looseString(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func looseDecimal(raw json.RawMessage) decimal.Decimal {
	if d := optionalDecimal(raw); d != nil {
		return *d
	}
	return decimal.Zero
}

func optionalDecimal(raw json.RawMessage) *decimal.Decimal {
	if isNull(raw) {
		return nil
	}
	var d decimal.Decimal
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil
	}
	return &d
}

// looseInt reads a count. Values outside int32 degrade to 0.
func looseInt(raw json.RawMessage) int {
	d := looseDecimal(raw)
	if d.NumDigits()+int(d.Exponent()) > 10 {
		return 0
	}
	n := d.IntPart()
	if n > math.MaxInt32 || n < math.MinInt32 {
		return 0
	}
	return int(n)
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func looseTime(raw json.RawMessage) time.Time {
	s := looseString(raw)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// firstString returns the first non-empty string among the named fields.
func firstString(f map[string]json.RawMessage, keys ...string) string {
	for _, k := range keys {
		if s := looseString(f[k]); s != "" {
			return s
		}
	}
	return ""
}

func decodeCustomer(raw json.RawMessage) *CustomerSnapshot {
	if isNull(raw) {
		return nil
	}
	if id := looseString(raw); id != "" {
		return &CustomerSnapshot{ID: id}
	}
	f, ok := decodeObject(raw)
	if !ok {
		return nil
	}
	c := CustomerSnapshot{
		ID:      firstString(f, "_id", "id"),
		Name:    looseString(f["name"]),
		Address: looseString(f["address"]),
		Phone:   looseString(f["phone"]),
		Area:    looseString(f["area"]),
	}
	if c == (CustomerSnapshot{}) {
		return nil
	}
	return &c
}

// categoryName accepts either a plain name or an object with a name field.
func categoryName(raw json.RawMessage) string {
	if s := looseString(raw); s != "" {
		return s
	}
	if f, ok := decodeObject(raw); ok {
		return looseString(f["name"])
	}
	return ""
}

func decodeItems(raw json.RawMessage, category string) []PrintItem {
	var list []json.RawMessage
	if isNull(raw) || json.Unmarshal(raw, &list) != nil {
		return nil
	}
	items := make([]PrintItem, 0, len(list))
	for _, r := range list {
		f, ok := decodeObject(r)
		if !ok {
			continue
		}
		product, _ := decodeObject(f["product"])

		item := PrintItem{
			Name:       firstString(f, "name", "productName"),
			Category:   category,
			Unit:       enum.ParseUnitKind(firstString(f, "unit")),
			Qty:        looseInt(f["qty"]),
			QtyInUnits: looseInt(f["qtyInUnits"]),
			UnitPrice:  looseDecimal(f["unitPrice"]),
			LineTotal:  looseDecimal(f["lineTotal"]),
		}
		if item.Name == "" {
			item.Name = looseString(product["name"])
		}
		if item.Category == "" {
			item.Category = categoryName(f["category"])
		}
		if item.Category == "" {
			item.Category = categoryName(product["category"])
		}
		if looseString(f["unit"]) == "" {
			item.Unit = enum.ParseUnitKind(looseString(product["unit"]))
		}
		items = append(items, item)
	}
	return items
}

// decodeCategorized reads a name -> items object, keeping key order.
func decodeCategorized(raw json.RawMessage) []PrintCategory {
	if isNull(raw) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil
	}

	var groups []PrintCategory
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			break
		}
		name, _ := keyTok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			break
		}
		groups = append(groups, PrintCategory{
			Name:  strings.TrimSpace(name),
			Items: decodeItems(value, strings.TrimSpace(name)),
		})
	}
	return groups
}
