package play

import "github.com/OtherAytay/IFR/internal/ifr/scenario"

// VariableState holds the live value of one Variable.
type VariableState struct {
	variable *scenario.Variable
	value    scenario.Value
}

func newVariableState(v *scenario.Variable) *VariableState {
	return &VariableState{variable: v, value: v.Default()}
}

// Variable returns the static variable.
func (s *VariableState) Variable() *scenario.Variable { return s.variable }

// Value returns the current value.
func (s *VariableState) Value() scenario.Value { return s.value }

// SetValue commits v when the variable accepts it. It reports false and
// leaves the value unchanged otherwise.
func (s *VariableState) SetValue(v scenario.Value) bool {
	if !s.variable.Valid(v) {
		return false
	}
	s.value = v
	return true
}

// ConditionState evaluates a Condition against the session's live variable.
type ConditionState struct {
	condition *scenario.Condition
	variable  *VariableState
}

// Condition returns the static condition.
func (c *ConditionState) Condition() *scenario.Condition { return c.condition }

// Check evaluates the condition against the current value.
func (c *ConditionState) Check() bool {
	return c.condition.Evaluate(c.variable.Value())
}

func (c *ConditionState) satisfied() bool { return c.Check() }

// ConditionGroupState is the conjunction of its conditions. An empty group
// holds.
type ConditionGroupState struct {
	group      *scenario.ConditionGroup
	conditions []*ConditionState
}

// Check reports whether every condition holds.
func (g *ConditionGroupState) Check() bool {
	for _, c := range g.conditions {
		if !c.Check() {
			return false
		}
	}
	return true
}
