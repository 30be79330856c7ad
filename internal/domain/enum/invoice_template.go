package enum

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// InvoiceTemplate selects the printed layout of an invoice.
type InvoiceTemplate int

const (
	InvoiceTemplateThermal InvoiceTemplate = 0
	InvoiceTemplateA4      InvoiceTemplate = 1
)

func (t InvoiceTemplate) String() string {
	if t == InvoiceTemplateA4 {
		return "a4"
	}
	return "thermal"
}

func ParseInvoiceTemplate(s string) InvoiceTemplate {
	if strings.EqualFold(strings.TrimSpace(s), "a4") {
		return InvoiceTemplateA4
	}
	return InvoiceTemplateThermal
}

func (t InvoiceTemplate) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *InvoiceTemplate) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = InvoiceTemplate(i)
		return nil
	}
	*t = ParseInvoiceTemplate(str)
	return nil
}

func (t InvoiceTemplate) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *InvoiceTemplate) Scan(value interface{}) error {
	if value == nil {
		*t = InvoiceTemplateThermal
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = InvoiceTemplate(v)
	case int:
		*t = InvoiceTemplate(v)
	}
	return nil
}
