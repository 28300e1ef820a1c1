package scenario

import "fmt"

// Comparator is a Condition operation.
type Comparator string

const (
	CompareEquals        Comparator = "eq"
	CompareNotEquals     Comparator = "neq"
	CompareLess          Comparator = "lt"
	CompareLessEquals    Comparator = "le"
	CompareGreater       Comparator = "gt"
	CompareGreaterEquals Comparator = "ge"
	CompareAny           Comparator = "any"
)

var comparatorsByType = map[Type][]Comparator{
	TypeBoolean: {CompareEquals},
	TypeNumber:  {CompareLess, CompareLessEquals, CompareEquals, CompareGreater, CompareGreaterEquals, CompareNotEquals, CompareAny},
	TypeString:  {CompareEquals, CompareNotEquals, CompareAny},
}

// Condition is a read-only predicate over one Variable.
type Condition struct {
	variable *Variable
	op       Comparator
	targets  []Value
}

// NewCondition creates a Condition comparing variable against target. Use
// NewAnyCondition for CompareAny.
func NewCondition(variable *Variable, op Comparator, target Value) (*Condition, error) {
	if op == CompareAny {
		return NewAnyCondition(variable, target)
	}
	return newCondition(variable, op, []Value{target})
}

// NewAnyCondition creates a Condition that holds when the variable equals any
// of targets.
func NewAnyCondition(variable *Variable, targets ...Value) (*Condition, error) {
	if len(targets) == 0 {
		name := ""
		if variable != nil {
			name = variable.Name()
		}
		return nil, fail(ErrConditionTarget, "any condition needs at least one target", "Name", name)
	}
	return newCondition(variable, CompareAny, targets)
}

func newCondition(variable *Variable, op Comparator, targets []Value) (*Condition, error) {
	if variable == nil {
		return nil, fail(ErrConditionTarget, "condition needs a variable", "Name", "")
	}
	if !allowed(comparatorsByType[variable.Type()], op) {
		return nil, fail(ErrConditionOperation,
			fmt.Sprintf("operation %q not allowed on %s variable %q", op, variable.Type(), variable.Name()),
			"Name", variable.Name(), "Type", variable.Type().String(), "Operation", string(op))
	}
	for _, target := range targets {
		if target.Type() != variable.Type() {
			return nil, fail(ErrConditionTarget,
				fmt.Sprintf("condition target for %q must be a %s", variable.Name(), variable.Type()),
				"Name", variable.Name())
		}
	}
	return &Condition{variable: variable, op: op, targets: append([]Value(nil), targets...)}, nil
}

// Variable returns the variable the condition reads.
func (c *Condition) Variable() *Variable { return c.variable }

// Operation returns the comparator.
func (c *Condition) Operation() Comparator { return c.op }

// Targets returns the comparison targets. Only CompareAny has more than one.
func (c *Condition) Targets() []Value { return append([]Value(nil), c.targets...) }

// Evaluate reports whether value satisfies the condition.
func (c *Condition) Evaluate(value Value) bool {
	if value.Type() != c.variable.Type() {
		return false
	}
	target := c.targets[0]
	switch c.op {
	case CompareEquals:
		return value.Equal(target)
	case CompareNotEquals:
		return !value.Equal(target)
	case CompareLess:
		return value.Number() < target.Number()
	case CompareLessEquals:
		return value.Number() <= target.Number()
	case CompareGreater:
		return value.Number() > target.Number()
	case CompareGreaterEquals:
		return value.Number() >= target.Number()
	case CompareAny:
		for _, candidate := range c.targets {
			if value.Equal(candidate) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// String renders the condition as "name op target".
func (c *Condition) String() string {
	if c.op == CompareAny {
		return fmt.Sprintf("%s any %v", c.variable.Name(), c.targets)
	}
	return fmt.Sprintf("%s %s %s", c.variable.Name(), c.op, c.targets[0])
}

// ConditionGroup combines Conditions with logical AND. An empty group holds.
type ConditionGroup struct {
	conditions []*Condition
}

// NewConditionGroup creates a group of the non-nil conditions.
func NewConditionGroup(conditions ...*Condition) *ConditionGroup {
	g := &ConditionGroup{}
	for _, c := range conditions {
		_ = g.AddCondition(c)
	}
	return g
}

// AddCondition appends a condition to the group.
func (g *ConditionGroup) AddCondition(c *Condition) error {
	if c == nil {
		return fail(ErrConditionTarget, "condition group member is nil", "Name", "")
	}
	g.conditions = append(g.conditions, c)
	return nil
}

// Conditions returns the members in declared order.
func (g *ConditionGroup) Conditions() []*Condition {
	return append([]*Condition(nil), g.conditions...)
}

func allowed[T comparable](set []T, op T) bool {
	for _, candidate := range set {
		if candidate == op {
			return true
		}
	}
	return false
}
