package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap stores a schemaless document in a jsonb column.
type JSONMap map[string]any

// Scan implements sql.Scanner interface
func (slf *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*slf = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, slf)
	case string:
		return json.Unmarshal([]byte(v), slf)
	default:
		return fmt.Errorf("cannot scan type %T into JSONMap", value)
	}
}

// Value implements driver.Valuer interface
func (slf JSONMap) Value() (driver.Value, error) {
	if slf == nil {
		return nil, nil
	}
	return json.Marshal(slf)
}

// DeepCopy returns a structurally independent copy of the map.
func (slf JSONMap) DeepCopy() JSONMap {
	if slf == nil {
		return nil
	}
	raw, err := json.Marshal(slf)
	if err != nil {
		return JSONMap{}
	}
	var out JSONMap
	if err := json.Unmarshal(raw, &out); err != nil {
		return JSONMap{}
	}
	return out
}

// JSONArray stores a schemaless list in a jsonb column.
type JSONArray []any

func (slf *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*slf = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, slf)
	case string:
		return json.Unmarshal([]byte(v), slf)
	default:
		return fmt.Errorf("cannot scan type %T into JSONArray", value)
	}
}

func (slf JSONArray) Value() (driver.Value, error) {
	if slf == nil {
		return json.Marshal([]any{})
	}
	return json.Marshal(slf)
}

// IDList is an ordered list of storage identifiers held in a jsonb column.
// Membership of a node or edge in a graph is defined solely by appearing
// in one of these lists.
type IDList []uint

func (slf *IDList) Scan(value interface{}) error {
	if value == nil {
		*slf = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, slf)
	case string:
		return json.Unmarshal([]byte(v), slf)
	default:
		return fmt.Errorf("cannot scan type %T into IDList", value)
	}
}

func (slf IDList) Value() (driver.Value, error) {
	if slf == nil {
		return json.Marshal([]uint{})
	}
	return json.Marshal(slf)
}
