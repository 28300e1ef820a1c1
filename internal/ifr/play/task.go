package play

import (
	"fmt"

	"github.com/OtherAytay/IFR/internal/ifr/narrative"
	"github.com/OtherAytay/IFR/internal/ifr/scenario"
)

// Resolution reports what completing a task did.
type Resolution int

const (
	// ResolutionNoOp completed the task without mutating anything.
	ResolutionNoOp Resolution = iota
	// ResolutionApplied completed the task and committed its outcome.
	ResolutionApplied
	// ResolutionRejected completed the task but the variable refused the
	// computed value.
	ResolutionRejected
	// ResolutionReroll left the task open; the event must be rolled again.
	ResolutionReroll
)

// String returns the resolution name.
func (r Resolution) String() string {
	switch r {
	case ResolutionApplied:
		return "applied"
	case ResolutionRejected:
		return "rejected"
	case ResolutionReroll:
		return "reroll"
	default:
		return "no-op"
	}
}

// TaskState is the live state of one task range of an event.
type TaskState struct {
	task    *scenario.Task
	session *Session
	// Variable states targeted by the pass and fail outcomes, nil for
	// non-outcome effects.
	passVariable *VariableState
	failVariable *VariableState

	currentRoll    int
	lastRoll       int
	reroll         bool
	complete       bool
	passed         bool
	timesCompleted int
}

func newTaskState(session *Session, task *scenario.Task) *TaskState {
	return &TaskState{
		task:         task,
		session:      session,
		passVariable: session.effectVariable(task.Pass()),
		failVariable: session.effectVariable(task.Fail()),
	}
}

// Task returns the static task.
func (t *TaskState) Task() *scenario.Task { return t.task }

// CurrentRoll returns the roll awaiting resolution, if any.
func (t *TaskState) CurrentRoll() (int, bool) { return t.currentRoll, t.currentRoll > 0 }

// IsComplete reports whether the last resolution completed the task.
func (t *TaskState) IsComplete() bool { return t.complete }

// Reroll reports whether the last resolution asked for a new roll.
func (t *TaskState) Reroll() bool { return t.reroll }

// Passed reports the pass flag of the last resolution.
func (t *TaskState) Passed() bool { return t.passed }

// TimesCompleted counts resolutions, rerolls included.
func (t *TaskState) TimesCompleted() int { return t.timesCompleted }

// Description renders the task description against the latest roll and the
// live variable values.
func (t *TaskState) Description() string {
	return narrative.Render(t.task.Description(), narrative.Context{
		Roll:   t.lastRoll,
		Rolled: t.lastRoll > 0,
		Lookup: t.session.lookup,
	})
}

func (t *TaskState) stamp(roll int) {
	t.currentRoll = roll
	t.lastRoll = roll
}

func (t *TaskState) clearRoll() {
	t.currentRoll = 0
	t.lastRoll = 0
}

// resolve applies the pass or fail effect. Nothing changes when the effect's
// variable is not the one the state was wired to.
func (t *TaskState) resolve(pass bool) (Resolution, error) {
	effect := t.task.Effect(pass)
	target := t.failVariable
	if pass {
		target = t.passVariable
	}
	if effect.Kind() == scenario.EffectOutcome {
		want := effect.Outcome().Variable()
		if target == nil || target.Variable() != want {
			other := ""
			if target != nil {
				other = target.Variable().Name()
			}
			return ResolutionNoOp, fail(ErrVariableMismatch,
				fmt.Sprintf("task %q: outcome for %q applied to %q", t.task.Title(), want.Name(), other),
				"Name", want.Name(), "Other", other)
		}
	}

	t.reroll = false
	t.currentRoll = 0
	t.passed = pass
	t.timesCompleted++

	switch effect.Kind() {
	case scenario.EffectReroll:
		t.reroll = true
		t.complete = false
		t.lastRoll = 0
		return ResolutionReroll, nil
	case scenario.EffectOutcome:
		t.complete = true
		if target.SetValue(effect.Outcome().Compute(target.Value())) {
			return ResolutionApplied, nil
		}
		return ResolutionRejected, nil
	default:
		t.complete = true
		return ResolutionNoOp, nil
	}
}
