package storage

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// jsonColumn adapts a Go value to a JSONB column in both directions.
type jsonColumn struct {
	target interface{}
}

func jsonb(target interface{}) jsonColumn {
	return jsonColumn{target: target}
}

func (c jsonColumn) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("failed to scan json column: %T", value)
	}
	return json.Unmarshal(raw, c.target)
}

func (c jsonColumn) Value() (driver.Value, error) {
	payload, err := json.Marshal(c.target)
	if err != nil {
		return nil, err
	}
	return string(payload), nil
}
