// Package narrative renders task description templates against live session
// values.
//
// Two token shapes are recognized:
//
//	{{ name }}             the roll or a variable value
//	{{ name op operand }}  arithmetic on the roll or a number variable, op in + - * /
//
// The reserved name "roll" reads the current roll and renders as "?" before
// the event is rolled. Tokens that cannot be resolved stay verbatim.
package narrative

import (
	"regexp"
	"strconv"

	"github.com/OtherAytay/IFR/internal/ifr/scenario"
)

const (
	// RollName is the reserved template name of the current roll.
	RollName = "roll"
	// PendingRoll is rendered for the roll before the event is rolled.
	PendingRoll = "?"

	maxPasses = 16
)

var (
	bareToken       = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)
	arithmeticToken = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*([-+*/])\s*(-?[0-9]+(?:\.[0-9]+)?)\s*\}\}`)
)

// Lookup resolves a variable name to its current value.
type Lookup func(name string) (scenario.Value, bool)

// Context is the live state a template is rendered against.
type Context struct {
	Roll   int
	Rolled bool
	Lookup Lookup
}

// Render substitutes tokens in template until a pass changes nothing.
func Render(template string, ctx Context) string {
	out := template
	for i := 0; i < maxPasses; i++ {
		next := arithmeticToken.ReplaceAllStringFunc(out, func(token string) string {
			return ctx.arithmetic(token)
		})
		next = bareToken.ReplaceAllStringFunc(next, func(token string) string {
			return ctx.bare(token)
		})
		if next == out {
			break
		}
		out = next
	}
	return out
}

func (c Context) bare(token string) string {
	name := bareToken.FindStringSubmatch(token)[1]
	if name == RollName {
		if !c.Rolled {
			return PendingRoll
		}
		return strconv.Itoa(c.Roll)
	}
	value, ok := c.lookup(name)
	if !ok {
		return token
	}
	return value.String()
}

func (c Context) arithmetic(token string) string {
	parts := arithmeticToken.FindStringSubmatch(token)
	name, op := parts[1], parts[2]
	operand, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return token
	}

	var base float64
	if name == RollName {
		if !c.Rolled {
			return PendingRoll
		}
		base = float64(c.Roll)
	} else {
		value, ok := c.lookup(name)
		if !ok || value.Type() != scenario.TypeNumber {
			return token
		}
		base = value.Number()
	}

	switch op {
	case "+":
		return scenario.FormatNumber(base + operand)
	case "-":
		return scenario.FormatNumber(base - operand)
	case "*":
		return scenario.FormatNumber(base * operand)
	default:
		if operand == 0 {
			return token
		}
		return scenario.FormatNumber(base / operand)
	}
}

func (c Context) lookup(name string) (scenario.Value, bool) {
	if c.Lookup == nil {
		return scenario.Value{}, false
	}
	return c.Lookup(name)
}
