package scenario

// DependencyKind tags the payload of a Dependency.
type DependencyKind int

const (
	// DependencyEvent requires a sibling Event to be complete.
	DependencyEvent DependencyKind = iota + 1
	// DependencyGroup requires a sibling EventGroup to be complete.
	DependencyGroup
	// DependencyCondition requires a Condition to hold.
	DependencyCondition
)

// String returns the kind name.
func (k DependencyKind) String() string {
	switch k {
	case DependencyEvent:
		return "event"
	case DependencyGroup:
		return "group"
	case DependencyCondition:
		return "condition"
	default:
		return "unknown"
	}
}

// Dependency gates an Event or EventGroup. Structural dependencies (event,
// group) must name event spaces of the same Stage.
type Dependency struct {
	kind      DependencyKind
	event     *Event
	group     *EventGroup
	condition *Condition
}

// OnEvent returns a dependency on e being complete.
func OnEvent(e *Event) Dependency {
	return Dependency{kind: DependencyEvent, event: e}
}

// OnGroup returns a dependency on g being complete.
func OnGroup(g *EventGroup) Dependency {
	return Dependency{kind: DependencyGroup, group: g}
}

// OnCondition returns a dependency on c holding.
func OnCondition(c *Condition) Dependency {
	return Dependency{kind: DependencyCondition, condition: c}
}

// Kind returns the dependency kind.
func (d Dependency) Kind() DependencyKind { return d.kind }

// Event returns the payload of a DependencyEvent.
func (d Dependency) Event() *Event { return d.event }

// Group returns the payload of a DependencyGroup.
func (d Dependency) Group() *EventGroup { return d.group }

// Condition returns the payload of a DependencyCondition.
func (d Dependency) Condition() *Condition { return d.condition }

// Title names the dependency target for messages.
func (d Dependency) Title() string {
	switch d.kind {
	case DependencyEvent:
		return d.event.Title()
	case DependencyGroup:
		return d.group.Title()
	case DependencyCondition:
		return d.condition.String()
	default:
		return ""
	}
}

func (d Dependency) valid() bool {
	switch d.kind {
	case DependencyEvent:
		return d.event != nil
	case DependencyGroup:
		return d.group != nil
	case DependencyCondition:
		return d.condition != nil
	default:
		return false
	}
}

type dependencies []Dependency

func (ds *dependencies) add(owner string, self any, d Dependency) error {
	if !d.valid() {
		return fail(ErrDependencyInvalid, "dependency of "+owner+" has no target", "Title", owner)
	}
	if (d.kind == DependencyEvent && any(d.event) == self) || (d.kind == DependencyGroup && any(d.group) == self) {
		return fail(ErrDependencyInvalid, owner+" cannot depend on itself", "Title", owner)
	}
	for _, existing := range *ds {
		if existing == d {
			return fail(ErrDependencyDuplicate, owner+" already depends on "+d.Title(), "Title", owner)
		}
	}
	*ds = append(*ds, d)
	return nil
}
