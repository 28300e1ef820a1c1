package play

import "github.com/OtherAytay/IFR/internal/ifr/scenario"

// Space is one event space of a StageState. Exactly one field is set.
type Space struct {
	Event *EventState
	Group *EventGroupState
}

// Title returns the title of the event or group.
func (s Space) Title() string {
	if s.Group != nil {
		return s.Group.Title()
	}
	return s.Event.Title()
}

// IsComplete reports whether the event or group is complete.
func (s Space) IsComplete() bool {
	if s.Group != nil {
		return s.Group.IsComplete()
	}
	return s.Event.IsComplete()
}

// IsAvailable reports whether the event or group is available.
func (s Space) IsAvailable() bool {
	if s.Group != nil {
		return s.Group.IsAvailable()
	}
	return s.Event.IsAvailable()
}

func (s Space) required() bool {
	return s.Event != nil && s.Event.event.Required()
}

type progressionState struct {
	key       scenario.ProgressKind
	condition *ConditionState
	group     *ConditionGroupState
	next      *StageState
}

func (p progressionState) holds() bool {
	switch p.key {
	case scenario.ProgressCondition:
		return p.condition.Check()
	case scenario.ProgressConditionGroup:
		return p.group.Check()
	default:
		return true
	}
}

// StageState is the live state of one Stage.
type StageState struct {
	stage        *scenario.Stage
	spaces       []Space
	progressions []progressionState

	events map[*scenario.Event]*EventState
	groups map[*scenario.EventGroup]*EventGroupState
}

// Stage returns the static stage.
func (s *StageState) Stage() *scenario.Stage { return s.stage }

// Title returns the stage title.
func (s *StageState) Title() string { return s.stage.Title() }

// Spaces returns the event spaces in declared order.
func (s *StageState) Spaces() []Space { return append([]Space(nil), s.spaces...) }

// Event finds an event by title, including events inside groups.
func (s *StageState) Event(title string) *EventState {
	for _, e := range s.EventStates() {
		if e.Title() == title {
			return e
		}
	}
	return nil
}

// Group finds a group by title.
func (s *StageState) Group(title string) *EventGroupState {
	for _, sp := range s.spaces {
		if sp.Group != nil && sp.Group.Title() == title {
			return sp.Group
		}
	}
	return nil
}

// EventStates flattens the stage's events in declared order.
func (s *StageState) EventStates() []*EventState {
	var out []*EventState
	for _, sp := range s.spaces {
		if sp.Group != nil {
			out = append(out, sp.Group.events...)
			continue
		}
		out = append(out, sp.Event)
	}
	return out
}

// IsComplete applies the completion rule over the stage's event spaces.
func (s *StageState) IsComplete() bool {
	var t tally
	for _, sp := range s.spaces {
		t.add(sp.IsComplete(), sp.IsAvailable(), sp.required())
	}
	return t.holds(s.stage.MinComplete())
}

// Progress returns the next stage: the target of the first progression, in
// declared order, whose key holds. It returns nil while the stage is
// incomplete or when no key holds.
func (s *StageState) Progress() *StageState {
	if !s.IsComplete() {
		return nil
	}
	for _, p := range s.progressions {
		if p.holds() {
			return p.next
		}
	}
	return nil
}

func (s *StageState) completedCount() int {
	n := 0
	for _, sp := range s.spaces {
		if sp.IsComplete() {
			n++
		}
	}
	return n
}
