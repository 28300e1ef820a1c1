package scenario

import (
	"fmt"
	"sort"
)

// MinRoll is the lowest face of every event roll.
const MinRoll = 1

// TaskRange maps the inclusive roll range [Min, Max] to a Task.
type TaskRange struct {
	Min  int
	Max  int
	Task *Task
}

// Contains reports whether roll falls within the range.
func (r TaskRange) Contains(roll int) bool {
	return roll >= r.Min && roll <= r.Max
}

// Event is a dice roll decision point. Rolling draws a face in
// [MinRoll, MaxRoll] and selects the Task whose range contains it.
type Event struct {
	title        string
	subtitle     string
	maxRoll      int
	required     bool
	tasks        []TaskRange
	dependencies dependencies
}

// NewEvent creates an Event whose roll domain is [MinRoll, maxRoll].
func NewEvent(title, subtitle string, maxRoll int) (*Event, error) {
	if title == "" {
		return nil, fail(ErrEventTitleEmpty, "event title is required")
	}
	if maxRoll < MinRoll {
		return nil, fail(ErrEventMaxRoll, fmt.Sprintf("event %q max roll %d below %d", title, maxRoll, MinRoll),
			"Event", title, "Min", itoa(MinRoll))
	}
	return &Event{title: title, subtitle: subtitle, maxRoll: maxRoll}, nil
}

// SetRequired flags the event as required for its container's completion.
func (e *Event) SetRequired(required bool) {
	e.required = required
}

// AddTask maps [min, max] to task. The range must lie within the roll domain
// and must not overlap an existing range.
func (e *Event) AddTask(min, max int, task *Task) error {
	if task == nil {
		return fail(ErrTaskInvalid, fmt.Sprintf("event %q: task is nil", e.title), "Event", e.title)
	}
	rangeMeta := []string{"Event", e.title, "Min", itoa(min), "Max", itoa(max)}
	if min > max || min < MinRoll || max > e.maxRoll {
		return fail(ErrTaskRange, fmt.Sprintf("event %q: range %d-%d outside [%d, %d]", e.title, min, max, MinRoll, e.maxRoll), rangeMeta...)
	}
	for _, existing := range e.tasks {
		if min <= existing.Max && existing.Min <= max {
			return fail(ErrTaskOverlap, fmt.Sprintf("event %q: range %d-%d overlaps %d-%d", e.title, min, max, existing.Min, existing.Max), rangeMeta...)
		}
	}
	e.tasks = append(e.tasks, TaskRange{Min: min, Max: max, Task: task})
	return nil
}

// AddDependency gates the event on d.
func (e *Event) AddDependency(d Dependency) error {
	return e.dependencies.add(e.title, e, d)
}

// Validate checks that every face of the roll domain is covered by a task.
func (e *Event) Validate() error {
	ranges := append([]TaskRange(nil), e.tasks...)
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Min < ranges[j].Min })
	next := MinRoll
	for _, r := range ranges {
		if r.Min > next {
			break
		}
		next = r.Max + 1
	}
	if next <= e.maxRoll {
		return fail(ErrTaskCoverage, fmt.Sprintf("event %q: roll %d not covered by any task", e.title, next),
			"Event", e.title, "Roll", itoa(next))
	}
	return nil
}

// TaskFor returns the index of the range containing roll.
func (e *Event) TaskFor(roll int) (int, error) {
	if roll < MinRoll || roll > e.maxRoll {
		return -1, fail(ErrRollOutOfBounds, fmt.Sprintf("event %q: roll %d outside [%d, %d]", e.title, roll, MinRoll, e.maxRoll),
			"Event", e.title, "Roll", itoa(roll), "Min", itoa(MinRoll), "Max", itoa(e.maxRoll))
	}
	for i, r := range e.tasks {
		if r.Contains(roll) {
			return i, nil
		}
	}
	return -1, fail(ErrRollUnbound, fmt.Sprintf("event %q: roll %d not bound by any task", e.title, roll),
		"Event", e.title, "Roll", itoa(roll))
}

// Title returns the event title.
func (e *Event) Title() string { return e.title }

// Subtitle returns the event subtitle.
func (e *Event) Subtitle() string { return e.subtitle }

// MaxRoll returns the highest face of the roll domain.
func (e *Event) MaxRoll() int { return e.maxRoll }

// Required reports whether the event is flagged required.
func (e *Event) Required() bool { return e.required }

// Tasks returns the task ranges in declared order.
func (e *Event) Tasks() []TaskRange { return append([]TaskRange(nil), e.tasks...) }

// Dependencies returns the declared dependencies.
func (e *Event) Dependencies() []Dependency { return append([]Dependency(nil), e.dependencies...) }

// EventGroup bundles Events behind a shared gate and completion rule.
type EventGroup struct {
	title        string
	minComplete  int
	maxComplete  int
	events       []*Event
	dependencies dependencies
}

// NewEventGroup creates an EventGroup. Zero leaves a completion bound unset.
func NewEventGroup(title string, minComplete, maxComplete int) (*EventGroup, error) {
	if title == "" {
		return nil, fail(ErrEventTitleEmpty, "event group title is required")
	}
	if err := checkCompletionBounds(title, minComplete, maxComplete); err != nil {
		return nil, err
	}
	return &EventGroup{title: title, minComplete: minComplete, maxComplete: maxComplete}, nil
}

// AddEvent appends e. The event must cover its roll domain, may be added
// once and must not share a title with another member.
func (g *EventGroup) AddEvent(e *Event) error {
	if e == nil {
		return fail(ErrEventSpaceInvalid, fmt.Sprintf("group %q: event is nil", g.title), "Title", g.title)
	}
	for _, existing := range g.events {
		if existing == e || existing.title == e.title {
			return fail(ErrEventSpaceDuplicate, fmt.Sprintf("group %q already holds %q", g.title, e.Title()), "Title", g.title, "Event", e.Title())
		}
	}
	if err := e.Validate(); err != nil {
		return err
	}
	g.events = append(g.events, e)
	return nil
}

// AddDependency gates the group on d.
func (g *EventGroup) AddDependency(d Dependency) error {
	if d.kind == DependencyEvent {
		for _, member := range g.events {
			if member == d.event {
				return fail(ErrDependencyInvalid, fmt.Sprintf("group %q cannot depend on its own event %q", g.title, member.Title()), "Title", g.title)
			}
		}
	}
	return g.dependencies.add(g.title, g, d)
}

// Title returns the group title.
func (g *EventGroup) Title() string { return g.title }

// MinComplete returns the completion minimum, or 0 when unset.
func (g *EventGroup) MinComplete() int { return g.minComplete }

// MaxComplete returns the completion cap, or 0 when unset.
func (g *EventGroup) MaxComplete() int { return g.maxComplete }

// Events returns the member events in declared order.
func (g *EventGroup) Events() []*Event { return append([]*Event(nil), g.events...) }

// Dependencies returns the declared dependencies.
func (g *EventGroup) Dependencies() []Dependency { return append([]Dependency(nil), g.dependencies...) }

func checkCompletionBounds(title string, minComplete, maxComplete int) error {
	if minComplete < 0 || maxComplete < 0 || (maxComplete > 0 && minComplete > maxComplete) {
		return fail(ErrCompletionBounds, fmt.Sprintf("%q: invalid completion bounds %d-%d", title, minComplete, maxComplete),
			"Title", title, "Min", itoa(minComplete), "Max", itoa(maxComplete))
	}
	return nil
}
