package scenario

import "fmt"

// Scenario is the static definition root: ordered Variables and Stages.
type Scenario struct {
	title     string
	link      string
	image     string
	variables []*Variable
	stages    []*Stage
}

// New creates an empty Scenario.
func New(title string) *Scenario {
	return &Scenario{title: title}
}

// SetLink records an opaque external link.
func (s *Scenario) SetLink(link string) { s.link = link }

// SetImage records an opaque image reference.
func (s *Scenario) SetImage(image string) { s.image = image }

// AddVariable registers v. Names are unique. The bounds of v are fixed from
// here on.
func (s *Scenario) AddVariable(v *Variable) error {
	if v == nil {
		return fail(ErrVariableNameInvalid, "variable is nil", "Name", "")
	}
	if s.Variable(v.Name()) != nil {
		return fail(ErrVariableDuplicate, fmt.Sprintf("variable %q already defined", v.Name()), "Name", v.Name())
	}
	v.registered = true
	s.variables = append(s.variables, v)
	return nil
}

// AddStage registers st. Titles are unique; the first stage added is where
// sessions start.
func (s *Scenario) AddStage(st *Stage) error {
	if st == nil {
		return fail(ErrStageTitleEmpty, "stage is nil")
	}
	if s.Stage(st.Title()) != nil {
		return fail(ErrStageDuplicate, fmt.Sprintf("stage %q already defined", st.Title()), "Stage", st.Title())
	}
	s.stages = append(s.stages, st)
	return nil
}

// Title returns the scenario title.
func (s *Scenario) Title() string { return s.title }

// Link returns the external link.
func (s *Scenario) Link() string { return s.link }

// Image returns the image reference.
func (s *Scenario) Image() string { return s.image }

// Variables returns the variables in declared order.
func (s *Scenario) Variables() []*Variable { return append([]*Variable(nil), s.variables...) }

// Stages returns the stages in declared order.
func (s *Scenario) Stages() []*Stage { return append([]*Stage(nil), s.stages...) }

// Variable looks up a variable by name.
func (s *Scenario) Variable(name string) *Variable {
	for _, v := range s.variables {
		if v.Name() == name {
			return v
		}
	}
	return nil
}

// Stage looks up a stage by title.
func (s *Scenario) Stage(title string) *Stage {
	for _, st := range s.stages {
		if st.Title() == title {
			return st
		}
	}
	return nil
}

// Validate checks the whole graph once it is built:
//
//   - there is at least one stage;
//   - every variable read or written is registered;
//   - every progression leads to a registered stage;
//   - every event covers its roll domain and appears once per stage;
//   - event and group titles are unique within a stage and no group is
//     empty;
//   - structural dependencies name event spaces of the same stage and do
//     not form cycles.
func (s *Scenario) Validate() error {
	if len(s.stages) == 0 {
		return fail(ErrScenarioEmpty, fmt.Sprintf("scenario %q has no stages", s.title), "Title", s.title)
	}
	registered := make(map[*Variable]bool, len(s.variables))
	for _, v := range s.variables {
		registered[v] = true
	}
	checkVariable := func(v *Variable) error {
		if !registered[v] {
			return fail(ErrVariableUnregistered, fmt.Sprintf("variable %q is not registered", v.Name()), "Name", v.Name())
		}
		return nil
	}
	checkCondition := func(c *Condition) error { return checkVariable(c.Variable()) }

	stages := make(map[*Stage]bool, len(s.stages))
	for _, st := range s.stages {
		stages[st] = true
	}

	for _, st := range s.stages {
		if err := s.validateStage(st, stages, checkVariable, checkCondition); err != nil {
			return fmt.Errorf("stage %q: %w", st.Title(), err)
		}
	}
	return nil
}

func (s *Scenario) validateStage(st *Stage, stages map[*Stage]bool, checkVariable func(*Variable) error, checkCondition func(*Condition) error) error {
	events := map[*Event]bool{}
	groups := map[*EventGroup]bool{}
	titles := map[string]bool{}
	for _, space := range st.spaces {
		if g := space.group; g != nil {
			if len(g.events) == 0 {
				return fail(ErrEventSpaceInvalid, fmt.Sprintf("group %q has no events", g.Title()), "Title", g.Title())
			}
			groups[g] = true
		}
		for _, e := range space.events() {
			if events[e] {
				return fail(ErrEventSpaceDuplicate, fmt.Sprintf("event %q placed twice", e.Title()), "Title", st.Title(), "Event", e.Title())
			}
			events[e] = true
		}
		for _, title := range space.titles() {
			if titles[title] {
				return fail(ErrEventSpaceDuplicate, fmt.Sprintf("title %q used twice", title), "Title", st.Title(), "Event", title)
			}
			titles[title] = true
		}
	}

	checkDependencies := func(owner string, deps []Dependency) error {
		for _, d := range deps {
			outside := false
			switch d.Kind() {
			case DependencyEvent:
				outside = !events[d.Event()]
			case DependencyGroup:
				outside = !groups[d.Group()]
			case DependencyCondition:
				if err := checkCondition(d.Condition()); err != nil {
					return err
				}
			}
			if outside {
				return fail(ErrDependencyOutsideStage, fmt.Sprintf("%q depends on %q outside the stage", owner, d.Title()),
					"Title", owner, "Dependency", d.Title(), "Stage", st.Title())
			}
		}
		return nil
	}

	for _, space := range st.spaces {
		if g := space.group; g != nil {
			if err := checkDependencies(g.Title(), g.Dependencies()); err != nil {
				return err
			}
		}
		for _, e := range space.events() {
			if err := e.Validate(); err != nil {
				return err
			}
			if err := checkDependencies(e.Title(), e.Dependencies()); err != nil {
				return err
			}
			for _, r := range e.tasks {
				for _, o := range r.Task.outcomes() {
					if err := checkVariable(o.Variable()); err != nil {
						return err
					}
				}
			}
		}
	}

	if err := checkCycles(st); err != nil {
		return err
	}

	for _, p := range st.progressions {
		if !stages[p.Next] {
			return fail(ErrStageUnregistered, fmt.Sprintf("progression leads to unregistered stage %q", p.Next.Title()), "Stage", p.Next.Title())
		}
		switch p.Key.Kind() {
		case ProgressCondition:
			if err := checkCondition(p.Key.Condition()); err != nil {
				return err
			}
		case ProgressConditionGroup:
			for _, c := range p.Key.Group().conditions {
				if err := checkCondition(c); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
