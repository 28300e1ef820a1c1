package scenario

import "fmt"

// Mutation is an Outcome operation.
type Mutation string

const (
	MutationSet      Mutation = "set"
	MutationFlip     Mutation = "flip"
	MutationAdd      Mutation = "add"
	MutationSubtract Mutation = "sub"
	MutationMultiply Mutation = "mult"
	MutationDivide   Mutation = "div"
)

var mutationsByType = map[Type][]Mutation{
	TypeBoolean: {MutationSet, MutationFlip},
	TypeNumber:  {MutationSet, MutationAdd, MutationSubtract, MutationMultiply, MutationDivide},
	TypeString:  {MutationSet},
}

// Outcome is a typed mutation of one Variable.
type Outcome struct {
	variable *Variable
	op       Mutation
	target   Value
}

// NewOutcome creates an Outcome. Except for MutationFlip, which ignores
// target, the target must be a valid value of the variable. Dividing by zero
// is rejected.
func NewOutcome(variable *Variable, op Mutation, target Value) (*Outcome, error) {
	if variable == nil {
		return nil, fail(ErrOutcomeTarget, "outcome needs a variable", "Name", "")
	}
	name := variable.Name()
	if !allowed(mutationsByType[variable.Type()], op) {
		return nil, fail(ErrOutcomeOperation,
			fmt.Sprintf("operation %q not allowed on %s variable %q", op, variable.Type(), name),
			"Name", name, "Type", variable.Type().String(), "Operation", string(op))
	}
	if op == MutationFlip {
		return &Outcome{variable: variable, op: op}, nil
	}
	if !variable.Valid(target) {
		return nil, fail(ErrOutcomeTarget, fmt.Sprintf("outcome target %q is not valid for %q", target, name), "Name", name)
	}
	if op == MutationDivide && target.Number() == 0 {
		return nil, fail(ErrOutcomeTarget, fmt.Sprintf("outcome for %q divides by zero", name), "Name", name)
	}
	return &Outcome{variable: variable, op: op, target: target}, nil
}

// Variable returns the variable the outcome mutates.
func (o *Outcome) Variable() *Variable { return o.variable }

// Operation returns the mutation.
func (o *Outcome) Operation() Mutation { return o.op }

// Target returns the operand. It is the zero Value for MutationFlip.
func (o *Outcome) Target() Value { return o.target }

// Compute returns the value current becomes under the outcome. The result is
// not bounds-checked.
func (o *Outcome) Compute(current Value) Value {
	switch o.op {
	case MutationSet:
		return o.target
	case MutationFlip:
		return BoolValue(!current.Bool())
	case MutationAdd:
		return NumberValue(current.Number() + o.target.Number())
	case MutationSubtract:
		return NumberValue(current.Number() - o.target.Number())
	case MutationMultiply:
		return NumberValue(current.Number() * o.target.Number())
	case MutationDivide:
		return NumberValue(current.Number() / o.target.Number())
	default:
		return current
	}
}

// String renders the outcome as "name op target".
func (o *Outcome) String() string {
	if o.op == MutationFlip {
		return fmt.Sprintf("%s flip", o.variable.Name())
	}
	return fmt.Sprintf("%s %s %s", o.variable.Name(), o.op, o.target)
}

// EffectKind tags the payload of an Effect.
type EffectKind int

const (
	// EffectNone completes the task without mutating anything.
	EffectNone EffectKind = iota
	// EffectOutcome applies an Outcome.
	EffectOutcome
	// EffectReroll leaves the task open so the event must be rolled again.
	EffectReroll
)

// String returns the kind name.
func (k EffectKind) String() string {
	switch k {
	case EffectOutcome:
		return "outcome"
	case EffectReroll:
		return "reroll"
	default:
		return "none"
	}
}

// Effect is what completing a task does for one branch. The zero Effect is
// EffectNone.
type Effect struct {
	kind    EffectKind
	outcome *Outcome
}

// NoEffect returns an Effect that changes nothing.
func NoEffect() Effect { return Effect{} }

// ApplyOutcome returns an Effect that applies o. A nil o yields NoEffect.
func ApplyOutcome(o *Outcome) Effect {
	if o == nil {
		return Effect{}
	}
	return Effect{kind: EffectOutcome, outcome: o}
}

// Reroll returns the reroll sentinel Effect.
func Reroll() Effect { return Effect{kind: EffectReroll} }

// Kind returns the effect kind.
func (e Effect) Kind() EffectKind { return e.kind }

// Outcome returns the outcome for EffectOutcome and nil otherwise.
func (e Effect) Outcome() *Outcome { return e.outcome }

// Task is a narrative unit selected by a roll.
type Task struct {
	title       string
	flavor      string
	description string
	pass        Effect
	fail        Effect
}

// NewTask creates a Task. description is a template; see package narrative.
func NewTask(title, flavor, description string, pass, fail Effect) *Task {
	return &Task{title: title, flavor: flavor, description: description, pass: pass, fail: fail}
}

// Title returns the task title.
func (t *Task) Title() string { return t.title }

// Flavor returns the optional flavor text.
func (t *Task) Flavor() string { return t.flavor }

// Description returns the raw description template.
func (t *Task) Description() string { return t.description }

// Pass returns the effect of passing the task.
func (t *Task) Pass() Effect { return t.pass }

// Fail returns the effect of failing the task.
func (t *Task) Fail() Effect { return t.fail }

// Effect returns the effect for the pass or fail branch.
func (t *Task) Effect(pass bool) Effect {
	if pass {
		return t.pass
	}
	return t.fail
}

func (t *Task) outcomes() []*Outcome {
	var out []*Outcome
	for _, e := range []Effect{t.pass, t.fail} {
		if e.kind == EffectOutcome {
			out = append(out, e.outcome)
		}
	}
	return out
}
