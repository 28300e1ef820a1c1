package play

import (
	"fmt"

	"github.com/OtherAytay/IFR/internal/core/dice"
	"github.com/OtherAytay/IFR/internal/ifr/scenario"
)

// dependency is a resolved gate: an EventState, an EventGroupState or a
// ConditionState.
type dependency interface {
	satisfied() bool
}

func allSatisfied(deps []dependency) bool {
	for _, d := range deps {
		if !d.satisfied() {
			return false
		}
	}
	return true
}

// EventState is the live state of one Event placed in a Stage.
type EventState struct {
	event        *scenario.Event
	session      *Session
	stage        *StageState
	group        *EventGroupState
	tasks        []*TaskState
	dependencies []dependency

	currentRoll int
	activeTask  int
	completed   bool
	timesRolled int
}

func newEventState(session *Session, stage *StageState, group *EventGroupState, e *scenario.Event) *EventState {
	ranges := e.Tasks()
	state := &EventState{
		event:      e,
		session:    session,
		stage:      stage,
		group:      group,
		tasks:      make([]*TaskState, 0, len(ranges)),
		activeTask: -1,
	}
	for _, r := range ranges {
		state.tasks = append(state.tasks, newTaskState(session, r.Task))
	}
	return state
}

// Event returns the static event.
func (e *EventState) Event() *scenario.Event { return e.event }

// Title returns the event title.
func (e *EventState) Title() string { return e.event.Title() }

// Stage returns the stage holding the event.
func (e *EventState) Stage() *StageState { return e.stage }

// Group returns the enclosing group, or nil.
func (e *EventState) Group() *EventGroupState { return e.group }

// Tasks returns one TaskState per task range, in range order.
func (e *EventState) Tasks() []*TaskState { return append([]*TaskState(nil), e.tasks...) }

// ActiveTask returns the task selected by the latest roll, or nil.
func (e *EventState) ActiveTask() *TaskState {
	if e.activeTask < 0 {
		return nil
	}
	return e.tasks[e.activeTask]
}

// CurrentRoll returns the roll awaiting completion, if any.
func (e *EventState) CurrentRoll() (int, bool) { return e.currentRoll, e.currentRoll > 0 }

// TimesRolled counts successful rolls.
func (e *EventState) TimesRolled() int { return e.timesRolled }

// IsComplete reports whether a non-reroll resolution completed the event.
func (e *EventState) IsComplete() bool { return e.completed }

func (e *EventState) satisfied() bool { return e.completed }

// IsAvailable reports whether the event may be played: its dependencies
// hold, its group is available, and the completion cap of its container is
// not reached. A completed event stays available.
func (e *EventState) IsAvailable() bool {
	if !e.locallyAvailable() {
		return false
	}
	return e.group == nil || e.group.IsAvailable()
}

// locallyAvailable ignores the enclosing group's own gate.
func (e *EventState) locallyAvailable() bool {
	if !allSatisfied(e.dependencies) {
		return false
	}
	if e.completed {
		return true
	}
	if e.group != nil {
		return !capReached(e.group.group.MaxComplete(), e.group.completedCount())
	}
	return !capReached(e.stage.stage.MaxComplete(), e.stage.completedCount())
}

// Roll draws a roll in [scenario.MinRoll, MaxRoll] and activates the task
// whose range contains it. An event may be rolled again until it completes.
func (e *EventState) Roll() (int, error) {
	title := e.event.Title()
	if e.completed {
		return 0, fail(ErrEventCompleted, fmt.Sprintf("event %q already completed", title), "Event", title)
	}
	if !e.IsAvailable() {
		return 0, fail(ErrEventUnavailable, fmt.Sprintf("event %q is not available", title), "Event", title)
	}
	roll, err := dice.RollDie(e.session.source, e.event.MaxRoll())
	if err != nil {
		return 0, fmt.Errorf("roll %q: %w", title, err)
	}
	index, err := e.event.TaskFor(roll)
	if err != nil {
		return 0, err
	}
	if active := e.ActiveTask(); active != nil {
		active.clearRoll()
	}
	e.activeTask = index
	e.currentRoll = roll
	e.tasks[index].stamp(roll)
	e.timesRolled++
	return roll, nil
}

// Complete resolves the active task with the pass or fail branch. A reroll
// resolution clears the current roll and leaves the event incomplete.
func (e *EventState) Complete(pass bool) (Resolution, error) {
	title := e.event.Title()
	if e.completed {
		return ResolutionNoOp, fail(ErrEventCompleted, fmt.Sprintf("event %q already completed", title), "Event", title)
	}
	if e.currentRoll == 0 {
		return ResolutionNoOp, fail(ErrEventNotRolled, fmt.Sprintf("event %q has not been rolled", title), "Event", title)
	}
	res, err := e.tasks[e.activeTask].resolve(pass)
	if err != nil {
		return res, err
	}
	e.currentRoll = 0
	if res != ResolutionReroll {
		e.completed = true
	}
	return res, nil
}

// EventGroupState is the live state of one EventGroup placed in a Stage.
type EventGroupState struct {
	group        *scenario.EventGroup
	stage        *StageState
	events       []*EventState
	dependencies []dependency
}

// Group returns the static group.
func (g *EventGroupState) Group() *scenario.EventGroup { return g.group }

// Title returns the group title.
func (g *EventGroupState) Title() string { return g.group.Title() }

// Stage returns the stage holding the group.
func (g *EventGroupState) Stage() *StageState { return g.stage }

// Events returns the member states in declared order.
func (g *EventGroupState) Events() []*EventState { return append([]*EventState(nil), g.events...) }

// IsAvailable reports whether the group's dependencies hold and the stage
// cap leaves room for it. A complete group stays available.
func (g *EventGroupState) IsAvailable() bool {
	if !allSatisfied(g.dependencies) {
		return false
	}
	if g.IsComplete() {
		return true
	}
	return !capReached(g.stage.stage.MaxComplete(), g.stage.completedCount())
}

// IsComplete reports whether the group's dependencies hold and enough of
// its events are complete.
func (g *EventGroupState) IsComplete() bool {
	if !allSatisfied(g.dependencies) {
		return false
	}
	var t tally
	for _, e := range g.events {
		t.add(e.IsComplete(), e.locallyAvailable(), e.event.Required())
	}
	return t.holds(g.group.MinComplete())
}

func (g *EventGroupState) satisfied() bool { return g.IsComplete() }

func (g *EventGroupState) completedCount() int {
	n := 0
	for _, e := range g.events {
		if e.completed {
			n++
		}
	}
	return n
}

// tally accumulates the members of a Stage or EventGroup for the completion
// rule.
type tally struct {
	completed    int
	open         int
	requiredOpen bool
}

func (t *tally) add(complete, available, required bool) {
	switch {
	case complete:
		t.completed++
	case available:
		t.open++
		if required {
			t.requiredOpen = true
		}
	}
}

// holds applies the completion rule: every available member must be done,
// or minComplete of them when set, and no available required member may be
// left open. The minimum is capped by what is reachable.
func (t tally) holds(minComplete int) bool {
	if t.requiredOpen {
		return false
	}
	need := t.completed + t.open
	if minComplete > 0 && minComplete < need {
		need = minComplete
	}
	return t.completed >= need
}

func capReached(maxComplete, completed int) bool {
	return maxComplete > 0 && completed >= maxComplete
}
