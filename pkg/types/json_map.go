package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap is a loosely-typed JSONB column, used for free-form blocks such as
// a service product's SLA terms.
type JSONMap map[string]interface{}

// Value implements driver.Valuer for JSONB storage.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return json.Marshal(map[string]interface{}{})
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for JSONB storage.
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = JSONMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported json map source type %T", value)
	}
}
