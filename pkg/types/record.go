package types

import (
	"encoding/json"
	"strconv"
)

// Field accessors tolerate the type drift between the two backends: the
// SQL engine returns int64/float64/string, the docstore returns whatever
// survived a JSON round trip (float64, string, bool, nil).

// StringField returns the field as a string, or "" when absent or nil.
func StringField(r Record, key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// FloatField returns the field as a float64, or 0 when absent or unparseable.
func FloatField(r Record, key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}

// IntField returns the field as an int, or 0 when absent or unparseable.
func IntField(r Record, key string) int {
	return int(FloatField(r, key))
}

// BoolField returns the field as a bool. Numeric 0/1 and the strings
// "0"/"1"/"true"/"false" are accepted, matching how the read flag is
// persisted as an integer column.
func BoolField(r Record, key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case int64:
		return v != 0
	case string:
		return v == "1" || v == "true"
	default:
		return false
	}
}

// EncodeStringList serializes a string slice as JSON text for storage in a
// text column. A nil slice encodes as "[]".
func EncodeStringList(values []string) string {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// DecodeStringList materializes a stored array-as-JSON-text value back into
// a string slice. Absent, malformed, or non-array text yields an empty
// slice, never an error: corrupt rows must not poison read paths.
func DecodeStringList(v any) []string {
	switch val := v.(type) {
	case nil:
		return []string{}
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		var out []string
		if err := json.Unmarshal([]byte(val), &out); err != nil || out == nil {
			return []string{}
		}
		return out
	default:
		return []string{}
	}
}
