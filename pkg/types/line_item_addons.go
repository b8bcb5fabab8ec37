package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// LineItemAddOn is one selected add-on embedded on its parent line item.
// Add-ons are metadata on the line, never separate invoice lines.
type LineItemAddOn struct {
	AddOnID        string          `json:"addon_id"`
	Name           string          `json:"name"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	IsSubscription bool            `json:"is_subscription"`
}

// LineItemAddOns is the JSONB column type for the embedded add-on list.
type LineItemAddOns []LineItemAddOn

// Value implements driver.Valuer for JSONB storage.
func (a LineItemAddOns) Value() (driver.Value, error) {
	if a == nil {
		return json.Marshal([]LineItemAddOn{})
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for JSONB storage.
func (a *LineItemAddOns) Scan(value interface{}) error {
	if value == nil {
		*a = LineItemAddOns{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("unsupported add-ons source type %T", value)
	}
}
