package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

// Attributes is the open-ended per-category field bag. It is stored as a
// single JSONB column and round-trips through database/sql via the
// Valuer/Scanner implementations below.
type Attributes map[string]any

// Value marshals the bag for a JSONB column. A nil bag is stored as an
// empty object rather than SQL NULL.
func (a Attributes) Value() (driver.Value, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(a)
}

// Scan reads a JSONB column back into the bag.
func (a *Attributes) Scan(src any) error {
	if src == nil {
		*a = Attributes{}
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("attributes: unsupported scan type %T", src)
	}
	if len(b) == 0 {
		*a = Attributes{}
		return nil
	}
	return json.Unmarshal(b, a)
}

// Str returns the attribute as a string. Scalar non-strings (numbers,
// booleans) are stringified the way JSON object keys would render them, so
// a form that submits a bare number still groups under "123" rather than
// the missing-value sentinel. Absent keys, nulls, and composite values
// read as "".
func (a Attributes) Str(key string) string {
	switch v := a[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Num returns the attribute as a float64. JSON numbers decode as float64;
// numeric strings are parsed; anything else (missing, malformed, wrong
// type) coerces to zero so derivations never fail on a stored record.
func (a Attributes) Num(key string) float64 {
	switch v := a[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Has reports whether the key is present with a non-empty value.
func (a Attributes) Has(key string) bool {
	v, ok := a[key]
	if !ok || v == nil {
		return false
	}
	if s, isStr := v.(string); isStr && s == "" {
		return false
	}
	return true
}
