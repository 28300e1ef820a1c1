package play

import (
	"testing"

	"github.com/OtherAytay/IFR/internal/core/dice"
	"github.com/OtherAytay/IFR/internal/ifr/scenario"
)

func mustVariable(t *testing.T, name string, typ scenario.Type, def scenario.Value, bounds ...scenario.Value) *scenario.Variable {
	t.Helper()
	v, err := scenario.NewVariable(name, typ, def)
	if err != nil {
		t.Fatalf("NewVariable(%q) error = %v", name, err)
	}
	if len(bounds) > 0 {
		if err := v.AddBounds(bounds...); err != nil {
			t.Fatalf("AddBounds(%q) error = %v", name, err)
		}
	}
	return v
}

func mustCondition(t *testing.T, v *scenario.Variable, op scenario.Comparator, target scenario.Value) *scenario.Condition {
	t.Helper()
	c, err := scenario.NewCondition(v, op, target)
	if err != nil {
		t.Fatalf("NewCondition(%q) error = %v", v.Name(), err)
	}
	return c
}

func mustOutcome(t *testing.T, v *scenario.Variable, op scenario.Mutation, target scenario.Value) scenario.Effect {
	t.Helper()
	o, err := scenario.NewOutcome(v, op, target)
	if err != nil {
		t.Fatalf("NewOutcome(%q) error = %v", v.Name(), err)
	}
	return scenario.ApplyOutcome(o)
}

func plainTask(title string) *scenario.Task {
	return scenario.NewTask(title, "", "", scenario.NoEffect(), scenario.NoEffect())
}

// mustEvent builds a one-task event covering [1, maxRoll].
func mustEvent(t *testing.T, title string, maxRoll int, task *scenario.Task) *scenario.Event {
	t.Helper()
	e, err := scenario.NewEvent(title, "", maxRoll)
	if err != nil {
		t.Fatalf("NewEvent(%q) error = %v", title, err)
	}
	if task == nil {
		task = plainTask(title)
	}
	if err := e.AddTask(scenario.MinRoll, maxRoll, task); err != nil {
		t.Fatalf("AddTask(%q) error = %v", title, err)
	}
	return e
}

func mustStage(t *testing.T, title string, minComplete, maxComplete int, spaces ...scenario.EventSpace) *scenario.Stage {
	t.Helper()
	st, err := scenario.NewStage(title, "", "", minComplete, maxComplete)
	if err != nil {
		t.Fatalf("NewStage(%q) error = %v", title, err)
	}
	for _, sp := range spaces {
		if err := st.AddEventSpace(sp); err != nil {
			t.Fatalf("AddEventSpace(%q) error = %v", sp.Title(), err)
		}
	}
	return st
}

func mustGroup(t *testing.T, title string, minComplete, maxComplete int, events ...*scenario.Event) *scenario.EventGroup {
	t.Helper()
	g, err := scenario.NewEventGroup(title, minComplete, maxComplete)
	if err != nil {
		t.Fatalf("NewEventGroup(%q) error = %v", title, err)
	}
	for _, e := range events {
		if err := g.AddEvent(e); err != nil {
			t.Fatalf("AddEvent(%q) error = %v", e.Title(), err)
		}
	}
	return g
}

func mustScenario(t *testing.T, variables []*scenario.Variable, stages ...*scenario.Stage) *scenario.Scenario {
	t.Helper()
	s := scenario.New("Crypt")
	for _, v := range variables {
		if err := s.AddVariable(v); err != nil {
			t.Fatalf("AddVariable(%q) error = %v", v.Name(), err)
		}
	}
	for _, st := range stages {
		if err := s.AddStage(st); err != nil {
			t.Fatalf("AddStage(%q) error = %v", st.Title(), err)
		}
	}
	return s
}

func mustSession(t *testing.T, scn *scenario.Scenario, faces ...int) *Session {
	t.Helper()
	s, err := NewSession(scn, WithSource(dice.NewFaces(faces...)))
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	return s
}

// play rolls and completes the named event of the current stage.
func play(t *testing.T, s *Session, title string, pass bool) Resolution {
	t.Helper()
	e := s.CurrentStage().Event(title)
	if e == nil {
		t.Fatalf("event %q not found in %q", title, s.CurrentStage().Title())
	}
	if _, err := e.Roll(); err != nil {
		t.Fatalf("Roll(%q) error = %v", title, err)
	}
	res, err := e.Complete(pass)
	if err != nil {
		t.Fatalf("Complete(%q) error = %v", title, err)
	}
	return res
}
