package types

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Value is a decimal figure that is either known or explicitly unknown.
// The zero Value is unknown. A known Value never holds NaN or Inf.
type Value struct {
	d     decimal.Decimal
	known bool
}

// Unknown is the explicit absent-value marker.
var Unknown = Value{}

// Known wraps a decimal as a known value.
func Known(d decimal.Decimal) Value {
	return Value{d: d, known: true}
}

// FromInt returns a known value for an integer.
func FromInt(n int64) Value {
	return Known(decimal.NewFromInt(n))
}

// FromFloat returns a known value for f, or Unknown when f is NaN or infinite.
func FromFloat(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Unknown
	}
	return Known(decimal.NewFromFloat(f))
}

// FromString parses a numeric string. Thousands separators and surrounding
// whitespace are ignored; anything unparseable is Unknown.
func FromString(s string) Value {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" || s == "-" {
		return Unknown
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Unknown
	}
	return Known(d)
}

// ParseValue converts a loosely typed JSON-ish value into a Value.
func ParseValue(raw interface{}) Value {
	switch v := raw.(type) {
	case nil:
		return Unknown
	case Value:
		return v
	case decimal.Decimal:
		return Known(v)
	case float64:
		return FromFloat(v)
	case float32:
		return FromFloat(float64(v))
	case int:
		return FromInt(int64(v))
	case int64:
		return FromInt(v)
	case json.Number:
		return FromString(v.String())
	case json.RawMessage:
		var out Value
		if err := out.UnmarshalJSON(v); err != nil {
			return Unknown
		}
		return out
	case string:
		return FromString(v)
	default:
		return Unknown
	}
}

// IsKnown reports whether v holds a number.
func (v Value) IsKnown() bool { return v.known }

// Decimal returns the underlying decimal and whether it is known.
func (v Value) Decimal() (decimal.Decimal, bool) {
	return v.d, v.known
}

// Float64 returns the nearest float64 and whether the value is known.
func (v Value) Float64() (float64, bool) {
	if !v.known {
		return 0, false
	}
	f, _ := v.d.Float64()
	return f, true
}

// IsPositive reports whether v is known and strictly greater than zero.
func (v Value) IsPositive() bool {
	return v.known && v.d.IsPositive()
}

// IsNonZero reports whether v is known and not equal to zero.
func (v Value) IsNonZero() bool {
	return v.known && !v.d.IsZero()
}

// Equal reports whether both values are unknown or both hold the same number.
func (v Value) Equal(o Value) bool {
	if v.known != o.known {
		return false
	}
	return !v.known || v.d.Equal(o.d)
}

// StringFixed formats a known value with the given number of decimal places
// and returns fallback for unknown.
func (v Value) StringFixed(places int32, fallback string) string {
	if !v.known {
		return fallback
	}
	return v.d.StringFixed(places)
}

func (v Value) String() string {
	if !v.known {
		return "unknown"
	}
	return v.d.String()
}

// MarshalJSON writes a bare JSON number, or null when unknown.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.known {
		return []byte("null"), nil
	}
	return []byte(v.d.String()), nil
}

// UnmarshalJSON accepts null, a JSON number, or a quoted numeric string.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Unknown
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FromString(s)
		return nil
	}
	if data[0] == '{' || data[0] == '[' || data[0] == 't' || data[0] == 'f' {
		*v = Unknown
		return nil
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return err
	}
	*v = Known(d)
	return nil
}
