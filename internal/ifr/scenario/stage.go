package scenario

import "fmt"

// EventSpace is an Event or EventGroup placed in a Stage.
type EventSpace struct {
	event *Event
	group *EventGroup
}

// SpaceEvent wraps an Event as an event space.
func SpaceEvent(e *Event) EventSpace { return EventSpace{event: e} }

// SpaceGroup wraps an EventGroup as an event space.
func SpaceGroup(g *EventGroup) EventSpace { return EventSpace{group: g} }

// Event returns the event, or nil for a group space.
func (s EventSpace) Event() *Event { return s.event }

// Group returns the group, or nil for an event space.
func (s EventSpace) Group() *EventGroup { return s.group }

// Title returns the title of the wrapped event or group.
func (s EventSpace) Title() string {
	if s.group != nil {
		return s.group.Title()
	}
	if s.event != nil {
		return s.event.Title()
	}
	return ""
}

// titles lists the group title, if any, followed by the event titles.
func (s EventSpace) titles() []string {
	var out []string
	if s.group != nil {
		out = append(out, s.group.title)
	}
	for _, e := range s.events() {
		out = append(out, e.title)
	}
	return out
}

func (s EventSpace) events() []*Event {
	if s.group != nil {
		return s.group.events
	}
	if s.event != nil {
		return []*Event{s.event}
	}
	return nil
}

// ProgressKind tags the key of a Progression.
type ProgressKind int

const (
	// ProgressCondition holds when a Condition holds.
	ProgressCondition ProgressKind = iota + 1
	// ProgressConditionGroup holds when every condition of a group holds.
	ProgressConditionGroup
	// ProgressDefault always holds.
	ProgressDefault
)

// ProgressKey is the predicate of a Progression.
type ProgressKey struct {
	kind      ProgressKind
	condition *Condition
	group     *ConditionGroup
}

// WhenCondition keys a progression on c.
func WhenCondition(c *Condition) ProgressKey {
	return ProgressKey{kind: ProgressCondition, condition: c}
}

// WhenAll keys a progression on every condition of g.
func WhenAll(g *ConditionGroup) ProgressKey {
	return ProgressKey{kind: ProgressConditionGroup, group: g}
}

// Default keys the unconditional progression.
func Default() ProgressKey {
	return ProgressKey{kind: ProgressDefault}
}

// Kind returns the key kind.
func (k ProgressKey) Kind() ProgressKind { return k.kind }

// Condition returns the payload of a ProgressCondition key.
func (k ProgressKey) Condition() *Condition { return k.condition }

// Group returns the payload of a ProgressConditionGroup key.
func (k ProgressKey) Group() *ConditionGroup { return k.group }

func (k ProgressKey) valid() bool {
	switch k.kind {
	case ProgressCondition:
		return k.condition != nil
	case ProgressConditionGroup:
		return k.group != nil
	case ProgressDefault:
		return true
	default:
		return false
	}
}

// Progression maps a key to the next Stage.
type Progression struct {
	Key  ProgressKey
	Next *Stage
}

// Stage is an ordered phase of a scenario.
type Stage struct {
	title        string
	subtitle     string
	description  string
	minComplete  int
	maxComplete  int
	spaces       []EventSpace
	progressions []Progression
}

// NewStage creates a Stage. Zero leaves a completion bound unset.
func NewStage(title, subtitle, description string, minComplete, maxComplete int) (*Stage, error) {
	if title == "" {
		return nil, fail(ErrStageTitleEmpty, "stage title is required")
	}
	if err := checkCompletionBounds(title, minComplete, maxComplete); err != nil {
		return nil, err
	}
	return &Stage{title: title, subtitle: subtitle, description: description, minComplete: minComplete, maxComplete: maxComplete}, nil
}

// AddEventSpace appends an event or group. Every event must cover its roll
// domain. Titles are unique within a stage, including the titles of grouped
// events.
func (s *Stage) AddEventSpace(space EventSpace) error {
	if (space.event == nil) == (space.group == nil) {
		return fail(ErrEventSpaceInvalid, fmt.Sprintf("stage %q: event space needs exactly one event or group", s.title), "Title", s.title)
	}
	taken := make(map[string]bool)
	for _, existing := range s.spaces {
		for _, title := range existing.titles() {
			taken[title] = true
		}
	}
	for _, title := range space.titles() {
		if taken[title] {
			return fail(ErrEventSpaceDuplicate, fmt.Sprintf("stage %q already holds %q", s.title, title),
				"Title", s.title, "Event", title)
		}
		taken[title] = true
	}
	for _, e := range space.events() {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	s.spaces = append(s.spaces, space)
	return nil
}

// AddProgression appends a progression. Progressions are evaluated in the
// order they were added; a stage holds at most one Default.
func (s *Stage) AddProgression(key ProgressKey, next *Stage) error {
	if !key.valid() || next == nil {
		return fail(ErrProgressionInvalid, fmt.Sprintf("stage %q: progression needs a key and a next stage", s.title), "Stage", s.title)
	}
	if key.kind == ProgressDefault {
		for _, p := range s.progressions {
			if p.Key.kind == ProgressDefault {
				return fail(ErrProgressionDefault, fmt.Sprintf("stage %q already has a default progression", s.title), "Stage", s.title)
			}
		}
	}
	s.progressions = append(s.progressions, Progression{Key: key, Next: next})
	return nil
}

// Title returns the stage title.
func (s *Stage) Title() string { return s.title }

// Subtitle returns the stage subtitle.
func (s *Stage) Subtitle() string { return s.subtitle }

// Description returns the stage description.
func (s *Stage) Description() string { return s.description }

// MinComplete returns the completion minimum, or 0 when unset.
func (s *Stage) MinComplete() int { return s.minComplete }

// MaxComplete returns the completion cap, or 0 when unset.
func (s *Stage) MaxComplete() int { return s.maxComplete }

// EventSpaces returns the event spaces in declared order.
func (s *Stage) EventSpaces() []EventSpace { return append([]EventSpace(nil), s.spaces...) }

// Progressions returns the progressions in declared order.
func (s *Stage) Progressions() []Progression { return append([]Progression(nil), s.progressions...) }

// IsTerminal reports whether the stage has no progressions.
func (s *Stage) IsTerminal() bool { return len(s.progressions) == 0 }

// Events returns every event of the stage, groups flattened, in order.
func (s *Stage) Events() []*Event {
	var out []*Event
	for _, space := range s.spaces {
		out = append(out, space.events()...)
	}
	return out
}
