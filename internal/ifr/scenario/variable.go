package scenario

import (
	"fmt"
	"regexp"
)

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Variable is a named, typed slot of session data.
//
// Number bounds are an inclusive [min, max] pair; string bounds are the set of
// allowed values. Boolean variables cannot be bounded.
type Variable struct {
	name         string
	typ          Type
	defaultValue Value
	bounded      bool
	min, max     float64
	allowed      []string
	registered   bool
}

// NewVariable creates a Variable. The name must be identifier-shaped so it can
// be referenced from task templates, and defaultValue must match typ.
func NewVariable(name string, typ Type, defaultValue Value) (*Variable, error) {
	if !namePattern.MatchString(name) {
		return nil, fail(ErrVariableNameInvalid, fmt.Sprintf("invalid variable name %q", name), "Name", name)
	}
	if typ < TypeBoolean || typ > TypeString {
		return nil, fail(ErrVariableTypeInvalid, fmt.Sprintf("variable %q has unknown type", name), "Name", name, "Type", typ.String())
	}
	if defaultValue.Type() != typ {
		return nil, fail(ErrVariableTypeMismatch, fmt.Sprintf("default of %q must be a %s", name, typ), "Name", name, "Type", typ.String())
	}
	if typ == TypeNumber && !finite(defaultValue.Number()) {
		return nil, fail(ErrVariableTypeMismatch, fmt.Sprintf("default of %q must be finite", name), "Name", name, "Type", typ.String())
	}
	return &Variable{name: name, typ: typ, defaultValue: defaultValue}, nil
}

// AddBounds sets the bounds of v. Numbers take exactly two values [min, max];
// strings take a non-empty set of allowed values. The default value must lie
// within the new bounds. Bounds can be set only once, and not after v is
// added to a Scenario.
func (v *Variable) AddBounds(bounds ...Value) error {
	if v.bounded {
		return fail(ErrVariableBoundsSet, fmt.Sprintf("bounds of %q already set", v.name), "Name", v.name)
	}
	if v.registered {
		return fail(ErrVariableBoundsSet, fmt.Sprintf("variable %q is registered; its bounds are fixed", v.name), "Name", v.name)
	}
	invalid := func(reason string) error {
		return fail(ErrVariableBoundsInvalid, fmt.Sprintf("bounds of %q: %s", v.name, reason), "Name", v.name)
	}

	switch v.typ {
	case TypeNumber:
		if len(bounds) != 2 {
			return invalid("number bounds need min and max")
		}
		for _, b := range bounds {
			if b.Type() != TypeNumber || !finite(b.Number()) {
				return invalid("number bounds must be finite numbers")
			}
		}
		lo, hi := bounds[0].Number(), bounds[1].Number()
		if lo > hi {
			return invalid("min exceeds max")
		}
		if d := v.defaultValue.Number(); d < lo || d > hi {
			return invalid("default lies outside bounds")
		}
		v.min, v.max = lo, hi
	case TypeString:
		if len(bounds) == 0 {
			return invalid("string bounds need at least one value")
		}
		allowed := make([]string, 0, len(bounds))
		seen := make(map[string]bool, len(bounds))
		for _, b := range bounds {
			if b.Type() != TypeString {
				return invalid("string bounds must be strings")
			}
			if !seen[b.Text()] {
				seen[b.Text()] = true
				allowed = append(allowed, b.Text())
			}
		}
		if !seen[v.defaultValue.Text()] {
			return invalid("default lies outside bounds")
		}
		v.allowed = allowed
	default:
		return invalid("boolean variables cannot be bounded")
	}
	v.bounded = true
	return nil
}

// Name returns the variable name.
func (v *Variable) Name() string { return v.name }

// Type returns the variable type.
func (v *Variable) Type() Type { return v.typ }

// Default returns the value a session starts with.
func (v *Variable) Default() Value { return v.defaultValue }

// Bounded reports whether bounds were set.
func (v *Variable) Bounded() bool { return v.bounded }

// Bounds returns [min, max] for numbers or the allowed set for strings, and
// nil when unbounded.
func (v *Variable) Bounds() []Value {
	if !v.bounded {
		return nil
	}
	if v.typ == TypeNumber {
		return []Value{NumberValue(v.min), NumberValue(v.max)}
	}
	out := make([]Value, 0, len(v.allowed))
	for _, s := range v.allowed {
		out = append(out, StringValue(s))
	}
	return out
}

// Valid reports whether value may be stored in v: the type matches and, when
// bounded, the value lies within the bounds. Unbounded numbers must be finite.
func (v *Variable) Valid(value Value) bool {
	if value.Type() != v.typ {
		return false
	}
	switch v.typ {
	case TypeNumber:
		n := value.Number()
		if !finite(n) {
			return false
		}
		return !v.bounded || (n >= v.min && n <= v.max)
	case TypeString:
		if !v.bounded {
			return true
		}
		for _, s := range v.allowed {
			if s == value.Text() {
				return true
			}
		}
		return false
	default:
		return true
	}
}
