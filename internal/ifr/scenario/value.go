package scenario

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Type is the type of a Variable.
type Type int

const (
	// TypeBoolean holds true or false.
	TypeBoolean Type = iota + 1
	// TypeNumber holds a float64.
	TypeNumber
	// TypeString holds text.
	TypeString
)

// String returns the wire name of the type.
func (t Type) String() string {
	switch t {
	case TypeBoolean:
		return "boolean"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

// ParseType parses a wire type name.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "boolean", "bool":
		return TypeBoolean, nil
	case "number":
		return TypeNumber, nil
	case "string":
		return TypeString, nil
	default:
		return 0, fail(ErrVariableTypeInvalid, fmt.Sprintf("unknown variable type %q", name), "Type", name)
	}
}

// Value is a typed Variable value. The zero Value has no type and matches no
// Variable.
type Value struct {
	typ  Type
	b    bool
	n    float64
	text string
}

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value {
	return Value{typ: TypeBoolean, b: b}
}

// NumberValue returns a number Value.
func NumberValue(n float64) Value {
	return Value{typ: TypeNumber, n: n}
}

// StringValue returns a string Value.
func StringValue(s string) Value {
	return Value{typ: TypeString, text: s}
}

// ValueFromAny converts a decoded JSON or Lua value into a Value of type t.
func ValueFromAny(t Type, raw any) (Value, error) {
	mismatch := func() (Value, error) {
		return Value{}, fail(ErrVariableTypeMismatch, fmt.Sprintf("value %v is not a %s", raw, t), "Type", t.String(), "Value", fmt.Sprint(raw))
	}
	switch t {
	case TypeBoolean:
		b, ok := raw.(bool)
		if !ok {
			return mismatch()
		}
		return BoolValue(b), nil
	case TypeNumber:
		var n float64
		switch v := raw.(type) {
		case float64:
			n = v
		case float32:
			n = float64(v)
		case int:
			n = float64(v)
		case int32:
			n = float64(v)
		case int64:
			n = float64(v)
		case uint:
			n = float64(v)
		case uint32:
			n = float64(v)
		case uint64:
			n = float64(v)
		default:
			return mismatch()
		}
		return NumberValue(n), nil
	case TypeString:
		s, ok := raw.(string)
		if !ok {
			return mismatch()
		}
		return StringValue(s), nil
	default:
		return Value{}, fail(ErrVariableTypeInvalid, fmt.Sprintf("unknown variable type %d", int(t)), "Type", t.String())
	}
}

// Type returns the type of v.
func (v Value) Type() Type {
	return v.typ
}

// Bool returns the boolean payload.
func (v Value) Bool() bool {
	return v.b
}

// Number returns the number payload.
func (v Value) Number() float64 {
	return v.n
}

// Text returns the string payload.
func (v Value) Text() string {
	return v.text
}

// IsZero reports whether v carries no type.
func (v Value) IsZero() bool {
	return v.typ == 0
}

// Equal reports whether v and other have the same type and payload.
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case TypeBoolean:
		return v.b == other.b
	case TypeNumber:
		return v.n == other.n
	case TypeString:
		return v.text == other.text
	default:
		return true
	}
}

// Any returns the payload as bool, float64 or string, or nil for the zero
// Value.
func (v Value) Any() any {
	switch v.typ {
	case TypeBoolean:
		return v.b
	case TypeNumber:
		return v.n
	case TypeString:
		return v.text
	default:
		return nil
	}
}

// String renders the payload for display. Integral numbers render without a
// fractional part.
func (v Value) String() string {
	switch v.typ {
	case TypeBoolean:
		return strconv.FormatBool(v.b)
	case TypeNumber:
		return FormatNumber(v.n)
	case TypeString:
		return v.text
	default:
		return ""
	}
}

// FormatNumber renders n the way templates and tools display numbers.
func FormatNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func finite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}
