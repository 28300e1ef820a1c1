package play

import (
	"fmt"

	"github.com/OtherAytay/IFR/internal/core/dice"
	"github.com/OtherAytay/IFR/internal/ifr/scenario"
	"github.com/OtherAytay/IFR/internal/random"
)

// Option configures a Session.
type Option func(*Session)

// WithSource rolls events from src.
func WithSource(src dice.Source) Option {
	return func(s *Session) {
		s.source = src
	}
}

// WithSeed rolls events from a deterministic source seeded with seed.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.source = dice.NewSource(seed)
	}
}

// Session is one play-through of a Scenario.
type Session struct {
	scenario *scenario.Scenario
	source   dice.Source

	variables     []*VariableState
	variableIndex map[*scenario.Variable]*VariableState
	conditions    map[*scenario.Condition]*ConditionState
	stages        []*StageState
	stageIndex    map[*scenario.Stage]*StageState

	current *StageState
	path    []*StageState
}

// NewSession validates scn and builds its runtime state. Without a source
// option the session is seeded from crypto/rand.
func NewSession(scn *scenario.Scenario, opts ...Option) (*Session, error) {
	if scn == nil {
		return nil, fmt.Errorf("new session: scenario is required")
	}
	if err := scn.Validate(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	s := &Session{
		scenario:      scn,
		variableIndex: make(map[*scenario.Variable]*VariableState),
		conditions:    make(map[*scenario.Condition]*ConditionState),
		stageIndex:    make(map[*scenario.Stage]*StageState),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.source == nil {
		seed, err := random.NewSeed()
		if err != nil {
			return nil, fmt.Errorf("new session: %w", err)
		}
		s.source = dice.NewSource(seed)
	}

	s.allocate()
	s.wire()

	s.current = s.stages[0]
	s.path = []*StageState{s.current}
	return s, nil
}

// allocate creates one state per static entity.
func (s *Session) allocate() {
	for _, v := range s.scenario.Variables() {
		state := newVariableState(v)
		s.variables = append(s.variables, state)
		s.variableIndex[v] = state
	}
	for _, st := range s.scenario.Stages() {
		stage := &StageState{
			stage:  st,
			events: make(map[*scenario.Event]*EventState),
			groups: make(map[*scenario.EventGroup]*EventGroupState),
		}
		for _, space := range st.EventSpaces() {
			if g := space.Group(); g != nil {
				group := &EventGroupState{group: g, stage: stage}
				for _, e := range g.Events() {
					event := newEventState(s, stage, group, e)
					group.events = append(group.events, event)
					stage.events[e] = event
				}
				stage.groups[g] = group
				stage.spaces = append(stage.spaces, Space{Group: group})
				continue
			}
			event := newEventState(s, stage, nil, space.Event())
			stage.events[space.Event()] = event
			stage.spaces = append(stage.spaces, Space{Event: event})
		}
		s.stages = append(s.stages, stage)
		s.stageIndex[st] = stage
	}
}

// wire resolves dependencies and progressions through the indices built by
// allocate. Validate guarantees every reference resolves.
func (s *Session) wire() {
	for _, stage := range s.stages {
		for _, sp := range stage.spaces {
			if sp.Group != nil {
				sp.Group.dependencies = s.resolve(stage, sp.Group.group.Dependencies())
			}
		}
		for _, event := range stage.EventStates() {
			event.dependencies = s.resolve(stage, event.event.Dependencies())
		}
		for _, p := range stage.stage.Progressions() {
			ps := progressionState{key: p.Key.Kind(), next: s.stageIndex[p.Next]}
			switch p.Key.Kind() {
			case scenario.ProgressCondition:
				ps.condition = s.condition(p.Key.Condition())
			case scenario.ProgressConditionGroup:
				ps.group = s.conditionGroup(p.Key.Group())
			}
			stage.progressions = append(stage.progressions, ps)
		}
	}
}

func (s *Session) resolve(stage *StageState, deps []scenario.Dependency) []dependency {
	out := make([]dependency, 0, len(deps))
	for _, d := range deps {
		switch d.Kind() {
		case scenario.DependencyEvent:
			out = append(out, stage.events[d.Event()])
		case scenario.DependencyGroup:
			out = append(out, stage.groups[d.Group()])
		case scenario.DependencyCondition:
			out = append(out, s.condition(d.Condition()))
		}
	}
	return out
}

func (s *Session) condition(c *scenario.Condition) *ConditionState {
	if state, ok := s.conditions[c]; ok {
		return state
	}
	state := &ConditionState{condition: c, variable: s.variableIndex[c.Variable()]}
	s.conditions[c] = state
	return state
}

func (s *Session) conditionGroup(g *scenario.ConditionGroup) *ConditionGroupState {
	state := &ConditionGroupState{group: g}
	for _, c := range g.Conditions() {
		state.conditions = append(state.conditions, s.condition(c))
	}
	return state
}

func (s *Session) effectVariable(e scenario.Effect) *VariableState {
	if e.Kind() != scenario.EffectOutcome {
		return nil
	}
	return s.variableIndex[e.Outcome().Variable()]
}

func (s *Session) lookup(name string) (scenario.Value, bool) {
	state := s.Variable(name)
	if state == nil {
		return scenario.Value{}, false
	}
	return state.Value(), true
}

// Scenario returns the static scenario.
func (s *Session) Scenario() *scenario.Scenario { return s.scenario }

// CurrentStage returns the stage being played.
func (s *Session) CurrentStage() *StageState { return s.current }

// Stages returns every stage state in declared order.
func (s *Session) Stages() []*StageState { return append([]*StageState(nil), s.stages...) }

// Stage finds a stage state by title.
func (s *Session) Stage(title string) *StageState {
	for _, st := range s.stages {
		if st.Title() == title {
			return st
		}
	}
	return nil
}

// Variables returns every variable state in declared order.
func (s *Session) Variables() []*VariableState {
	return append([]*VariableState(nil), s.variables...)
}

// Variable finds a variable state by name.
func (s *Session) Variable(name string) *VariableState {
	for _, v := range s.variables {
		if v.variable.Name() == name {
			return v
		}
	}
	return nil
}

// Snapshot copies the current variable values by name.
func (s *Session) Snapshot() map[string]scenario.Value {
	out := make(map[string]scenario.Value, len(s.variables))
	for _, v := range s.variables {
		out[v.variable.Name()] = v.value
	}
	return out
}

// Path returns the stages entered so far, starting with the first.
func (s *Session) Path() []*StageState { return append([]*StageState(nil), s.path...) }

// Progress moves to the next stage when the current one is complete and a
// progression holds. It reports whether the session moved.
func (s *Session) Progress() bool {
	next := s.current.Progress()
	if next == nil {
		return false
	}
	s.current = next
	s.path = append(s.path, next)
	return true
}

// Finished reports whether the current stage is complete and leads nowhere.
func (s *Session) Finished() bool {
	return s.current.IsComplete() && s.current.Progress() == nil
}
