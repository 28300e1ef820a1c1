package scenario

import "fmt"

// graphNode is an event or group in a stage's dependency graph.
type graphNode struct {
	event *Event
	group *EventGroup
}

func (n graphNode) title() string {
	if n.group != nil {
		return n.group.Title()
	}
	return n.event.Title()
}

// edges lists the nodes whose completion n's availability or completion is
// computed from. A group is computed from its own dependencies and from the
// availability of its members.
func (n graphNode) edges() []graphNode {
	var deps []Dependency
	var out []graphNode
	if n.group != nil {
		deps = n.group.dependencies
		for _, e := range n.group.events {
			out = append(out, graphNode{event: e})
		}
	} else {
		deps = n.event.dependencies
	}
	for _, d := range deps {
		switch d.Kind() {
		case DependencyEvent:
			out = append(out, graphNode{event: d.Event()})
		case DependencyGroup:
			out = append(out, graphNode{group: d.Group()})
		}
	}
	return out
}

// checkCycles rejects structural dependency cycles within a stage. A cycle
// would leave its members unavailable forever.
func checkCycles(st *Stage) error {
	const (
		visiting = iota + 1
		done
	)
	marks := map[graphNode]int{}

	var visit func(n graphNode) error
	visit = func(n graphNode) error {
		switch marks[n] {
		case visiting:
			return fail(ErrDependencyInvalid, fmt.Sprintf("dependency cycle through %q", n.title()), "Title", n.title())
		case done:
			return nil
		}
		marks[n] = visiting
		for _, next := range n.edges() {
			if err := visit(next); err != nil {
				return err
			}
		}
		marks[n] = done
		return nil
	}

	for _, space := range st.spaces {
		root := graphNode{event: space.event, group: space.group}
		if err := visit(root); err != nil {
			return err
		}
	}
	return nil
}
