package luascript

import (
	"fmt"

	"github.com/OtherAytay/IFR/internal/ifr/scenario"
)

// compiler turns a document into a scenario. Entities are indexed by their
// document so handles and titles both resolve.
type compiler struct {
	script   string
	scenario *scenario.Scenario
	stages   map[*stageDoc]*scenario.Stage
}

func compile(script string, doc *document) (*scenario.Scenario, error) {
	c := &compiler{
		script:   script,
		scenario: scenario.New(doc.title),
		stages:   make(map[*stageDoc]*scenario.Stage),
	}
	c.scenario.SetLink(doc.link)
	c.scenario.SetImage(doc.image)

	for i, args := range doc.variables {
		if err := c.variable(args); err != nil {
			return nil, fmt.Errorf("variable %d: %w", i+1, err)
		}
	}
	for _, sd := range doc.stages {
		st, err := scenario.NewStage(sd.title(), stringArg(sd.args, "subtitle"), stringArg(sd.args, "description"),
			intArg(sd.args, "min_complete", 0), intArg(sd.args, "max_complete", 0))
		if err != nil {
			return nil, fmt.Errorf("stage %q: %w", sd.title(), err)
		}
		if err := c.scenario.AddStage(st); err != nil {
			return nil, err
		}
		c.stages[sd] = st
	}
	for _, sd := range doc.stages {
		if err := c.stage(sd); err != nil {
			return nil, fmt.Errorf("stage %q: %w", sd.title(), err)
		}
	}
	return c.scenario, nil
}

func (c *compiler) variable(args map[string]any) error {
	name := stringArg(args, "name")
	typ, err := scenario.ParseType(stringArg(args, "type"))
	if err != nil {
		return err
	}
	raw, ok := args["default"]
	if !ok {
		switch typ {
		case scenario.TypeBoolean:
			raw = false
		case scenario.TypeNumber:
			raw = 0
		case scenario.TypeString:
			raw = ""
		}
	}
	def, err := scenario.ValueFromAny(typ, raw)
	if err != nil {
		return err
	}
	v, err := scenario.NewVariable(name, typ, def)
	if err != nil {
		return err
	}
	if rawBounds, ok := args["bounds"]; ok {
		items, err := c.list(rawBounds, "bounds of "+name)
		if err != nil {
			return err
		}
		bounds := make([]scenario.Value, 0, len(items))
		for _, item := range items {
			b, err := scenario.ValueFromAny(typ, item)
			if err != nil {
				return err
			}
			bounds = append(bounds, b)
		}
		if err := v.AddBounds(bounds...); err != nil {
			return err
		}
	}
	return c.scenario.AddVariable(v)
}

// stage builds the event spaces of sd in three steps: events and groups,
// then dependencies, then placement. Dependencies may name siblings
// declared later in the stage.
func (c *compiler) stage(sd *stageDoc) error {
	st := c.stages[sd]
	events := make(map[*eventDoc]*scenario.Event)
	groups := make(map[*groupDoc]*scenario.EventGroup)
	titles := make(map[string]scenario.Dependency)

	for _, space := range sd.spaces {
		for _, ed := range space.events() {
			e, err := c.event(ed)
			if err != nil {
				return fmt.Errorf("event %q: %w", ed.title(), err)
			}
			if _, dup := titles[e.Title()]; dup {
				return fmt.Errorf("stage %q: title %q used twice: %w", sd.title(), e.Title(), scenario.ErrEventSpaceDuplicate)
			}
			events[ed] = e
			titles[e.Title()] = scenario.OnEvent(e)
		}
		if gd := space.group; gd != nil {
			g, err := scenario.NewEventGroup(gd.title(), intArg(gd.args, "min_complete", 0), intArg(gd.args, "max_complete", 0))
			if err != nil {
				return fmt.Errorf("group %q: %w", gd.title(), err)
			}
			for _, ed := range gd.events {
				if err := g.AddEvent(events[ed]); err != nil {
					return fmt.Errorf("group %q: %w", gd.title(), err)
				}
			}
			if _, dup := titles[g.Title()]; dup {
				return fmt.Errorf("stage %q: title %q used twice: %w", sd.title(), g.Title(), scenario.ErrEventSpaceDuplicate)
			}
			groups[gd] = g
			titles[g.Title()] = scenario.OnGroup(g)
		}
	}

	resolve := func(raw any) (scenario.Dependency, error) {
		switch v := raw.(type) {
		case string:
			d, ok := titles[v]
			if !ok {
				return scenario.Dependency{}, scriptError(c.script, fmt.Sprintf("unknown dependency %q", v))
			}
			return d, nil
		case *eventDoc:
			if e, ok := events[v]; ok {
				return scenario.OnEvent(e), nil
			}
		case *groupDoc:
			if g, ok := groups[v]; ok {
				return scenario.OnGroup(g), nil
			}
		case map[string]any:
			cond, err := c.condition(v)
			if err != nil {
				return scenario.Dependency{}, err
			}
			return scenario.OnCondition(cond), nil
		}
		return scenario.Dependency{}, scriptError(c.script, fmt.Sprintf("invalid dependency %v", raw))
	}
	addDependencies := func(owner string, args map[string]any, add func(scenario.Dependency) error) error {
		raw, ok := args["depends_on"]
		if !ok {
			return nil
		}
		items, err := c.list(raw, "depends_on of "+owner)
		if err != nil {
			return err
		}
		for _, item := range items {
			d, err := resolve(item)
			if err != nil {
				return fmt.Errorf("%q: %w", owner, err)
			}
			if err := add(d); err != nil {
				return err
			}
		}
		return nil
	}

	for _, space := range sd.spaces {
		if gd := space.group; gd != nil {
			if err := addDependencies(gd.title(), gd.args, groups[gd].AddDependency); err != nil {
				return err
			}
		}
		for _, ed := range space.events() {
			if err := addDependencies(ed.title(), ed.args, events[ed].AddDependency); err != nil {
				return err
			}
		}
	}

	for _, space := range sd.spaces {
		es := scenario.SpaceEvent(events[space.event])
		if space.group != nil {
			es = scenario.SpaceGroup(groups[space.group])
		}
		if err := st.AddEventSpace(es); err != nil {
			return err
		}
	}

	for i, args := range sd.progressions {
		if err := c.progression(st, args); err != nil {
			return fmt.Errorf("progression %d: %w", i+1, err)
		}
	}
	return nil
}

func (c *compiler) event(ed *eventDoc) (*scenario.Event, error) {
	e, err := scenario.NewEvent(ed.title(), stringArg(ed.args, "subtitle"), intArg(ed.args, "max_roll", 0))
	if err != nil {
		return nil, err
	}
	if required, ok := ed.args["required"].(bool); ok {
		e.SetRequired(required)
	}
	for _, args := range ed.tasks {
		title := stringArg(args, "title")
		pass, err := c.effect(args["pass"])
		if err != nil {
			return nil, fmt.Errorf("task %q pass: %w", title, err)
		}
		fail, err := c.effect(args["fail"])
		if err != nil {
			return nil, fmt.Errorf("task %q fail: %w", title, err)
		}
		task := scenario.NewTask(title, stringArg(args, "flavor"), stringArg(args, "description"), pass, fail)
		if err := e.AddTask(intArg(args, "min", scenario.MinRoll), intArg(args, "max", e.MaxRoll()), task); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// effect reads a pass or fail branch: nil or "none" changes nothing,
// "reroll" asks for a new roll, a table is an outcome.
func (c *compiler) effect(raw any) (scenario.Effect, error) {
	switch v := raw.(type) {
	case nil:
		return scenario.NoEffect(), nil
	case string:
		switch v {
		case "none":
			return scenario.NoEffect(), nil
		case "reroll":
			return scenario.Reroll(), nil
		}
	case map[string]any:
		variable, err := c.lookupVariable(v)
		if err != nil {
			return scenario.Effect{}, err
		}
		op := scenario.Mutation(stringArg(v, "op"))
		if op == "" {
			op = scenario.MutationSet
		}
		var target scenario.Value
		if op != scenario.MutationFlip {
			if target, err = scenario.ValueFromAny(variable.Type(), v["target"]); err != nil {
				return scenario.Effect{}, err
			}
		}
		o, err := scenario.NewOutcome(variable, op, target)
		if err != nil {
			return scenario.Effect{}, err
		}
		return scenario.ApplyOutcome(o), nil
	}
	return scenario.Effect{}, scriptError(c.script, fmt.Sprintf("invalid effect %v", raw))
}

// condition reads {variable, op, target} or {variable, op = "any",
// targets = {...}}. The operation defaults to "eq".
func (c *compiler) condition(args map[string]any) (*scenario.Condition, error) {
	variable, err := c.lookupVariable(args)
	if err != nil {
		return nil, err
	}
	op := scenario.Comparator(stringArg(args, "op"))
	if op == "" {
		op = scenario.CompareEquals
	}
	if op == scenario.CompareAny {
		items, err := c.list(args["targets"], "targets of "+variable.Name())
		if err != nil {
			return nil, err
		}
		targets := make([]scenario.Value, 0, len(items))
		for _, item := range items {
			t, err := scenario.ValueFromAny(variable.Type(), item)
			if err != nil {
				return nil, err
			}
			targets = append(targets, t)
		}
		return scenario.NewAnyCondition(variable, targets...)
	}
	target, err := scenario.ValueFromAny(variable.Type(), args["target"])
	if err != nil {
		return nil, err
	}
	return scenario.NewCondition(variable, op, target)
}

func (c *compiler) progression(st *scenario.Stage, args map[string]any) error {
	var next *scenario.Stage
	switch v := args["next"].(type) {
	case string:
		next = c.scenario.Stage(v)
	case *stageDoc:
		next = c.stages[v]
	}
	if next == nil {
		return scriptError(c.script, fmt.Sprintf("unknown next stage %v", args["next"]))
	}

	raw, ok := args["when"]
	if !ok {
		return st.AddProgression(scenario.Default(), next)
	}
	switch v := raw.(type) {
	case map[string]any:
		// An empty table is an empty condition group, which always holds.
		if len(v) == 0 {
			return st.AddProgression(scenario.WhenAll(scenario.NewConditionGroup()), next)
		}
		cond, err := c.condition(v)
		if err != nil {
			return err
		}
		return st.AddProgression(scenario.WhenCondition(cond), next)
	case []any:
		group := scenario.NewConditionGroup()
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return scriptError(c.script, fmt.Sprintf("invalid condition %v", item))
			}
			cond, err := c.condition(m)
			if err != nil {
				return err
			}
			if err := group.AddCondition(cond); err != nil {
				return err
			}
		}
		return st.AddProgression(scenario.WhenAll(group), next)
	}
	return scriptError(c.script, fmt.Sprintf("invalid progression key %v", raw))
}

func (c *compiler) lookupVariable(args map[string]any) (*scenario.Variable, error) {
	name := stringArg(args, "variable")
	v := c.scenario.Variable(name)
	if v == nil {
		return nil, scriptError(c.script, fmt.Sprintf("unknown variable %q", name))
	}
	return v, nil
}

// list accepts a sequence or an empty table.
func (c *compiler) list(raw any, what string) ([]any, error) {
	switch v := raw.(type) {
	case []any:
		return v, nil
	case map[string]any:
		if len(v) == 0 {
			return nil, nil
		}
	}
	return nil, scriptError(c.script, what+" must be a list")
}

func intArg(args map[string]any, key string, fallback int) int {
	switch v := args[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return fallback
	}
}
