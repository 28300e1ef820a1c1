package luascript

// document records what a script declared.
type document struct {
	title     string
	link      string
	image     string
	variables []map[string]any
	stages    []*stageDoc
}

type stageDoc struct {
	args         map[string]any
	spaces       []spaceDoc
	progressions []map[string]any
}

// spaceDoc is one event space. Exactly one field is set.
type spaceDoc struct {
	event *eventDoc
	group *groupDoc
}

type eventDoc struct {
	args  map[string]any
	tasks []map[string]any
}

type groupDoc struct {
	args   map[string]any
	events []*eventDoc
}

func (s *stageDoc) title() string { return stringArg(s.args, "title") }
func (e *eventDoc) title() string { return stringArg(e.args, "title") }
func (g *groupDoc) title() string { return stringArg(g.args, "title") }

func (d spaceDoc) events() []*eventDoc {
	if d.group != nil {
		return d.group.events
	}
	return []*eventDoc{d.event}
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}
