package scenario

import (
	"errors"
	"testing"
)

func mustStage(t *testing.T, title string) *Stage {
	t.Helper()
	st, err := NewStage(title, "", "", 0, 0)
	if err != nil {
		t.Fatalf("NewStage(%q) error = %v", title, err)
	}
	return st
}

func TestScenarioRejectsDuplicates(t *testing.T) {
	s := New("Crypt")
	gold := mustVariable(t, "gold", TypeNumber, NumberValue(0))
	if err := s.AddVariable(gold); err != nil {
		t.Fatalf("AddVariable() error = %v", err)
	}
	again := mustVariable(t, "gold", TypeString, StringValue(""))
	if err := s.AddVariable(again); !errors.Is(err, ErrVariableDuplicate) {
		t.Fatalf("duplicate AddVariable() error = %v, want %v", err, ErrVariableDuplicate)
	}
	if vars := s.Variables(); len(vars) != 1 || vars[0] != gold {
		t.Fatalf("Variables() = %v, want only the original", vars)
	}

	gate := mustStage(t, "Gate")
	if err := s.AddStage(gate); err != nil {
		t.Fatalf("AddStage() error = %v", err)
	}
	if err := s.AddStage(mustStage(t, "Gate")); !errors.Is(err, ErrStageDuplicate) {
		t.Fatalf("duplicate AddStage() error = %v, want %v", err, ErrStageDuplicate)
	}
	if stages := s.Stages(); len(stages) != 1 || stages[0] != gate {
		t.Fatalf("Stages() = %v, want only the original", stages)
	}
}

func TestStageAddEventSpace(t *testing.T) {
	st := mustStage(t, "Gate")
	door := mustEvent(t, "Door", 2, [2]int{1, 2})
	group, _ := NewEventGroup("Search", 0, 0)
	shelf := mustEvent(t, "Shelf", 2, [2]int{1, 2})
	if err := group.AddEvent(shelf); err != nil {
		t.Fatalf("AddEvent() error = %v", err)
	}

	if err := st.AddEventSpace(SpaceEvent(door)); err != nil {
		t.Fatalf("AddEventSpace(event) error = %v", err)
	}
	if err := st.AddEventSpace(SpaceGroup(group)); err != nil {
		t.Fatalf("AddEventSpace(group) error = %v", err)
	}
	if err := st.AddEventSpace(SpaceEvent(door)); !errors.Is(err, ErrEventSpaceDuplicate) {
		t.Fatalf("duplicate event error = %v, want %v", err, ErrEventSpaceDuplicate)
	}
	if err := st.AddEventSpace(SpaceEvent(shelf)); !errors.Is(err, ErrEventSpaceDuplicate) {
		t.Fatalf("grouped event error = %v, want %v", err, ErrEventSpaceDuplicate)
	}
	if err := st.AddEventSpace(SpaceGroup(group)); !errors.Is(err, ErrEventSpaceDuplicate) {
		t.Fatalf("duplicate group error = %v, want %v", err, ErrEventSpaceDuplicate)
	}
	if err := st.AddEventSpace(SpaceEvent(mustEvent(t, "Door", 1, [2]int{1, 1}))); !errors.Is(err, ErrEventSpaceDuplicate) {
		t.Fatalf("event title reused error = %v, want %v", err, ErrEventSpaceDuplicate)
	}
	if err := st.AddEventSpace(SpaceEvent(mustEvent(t, "Search", 1, [2]int{1, 1}))); !errors.Is(err, ErrEventSpaceDuplicate) {
		t.Fatalf("group title reused error = %v, want %v", err, ErrEventSpaceDuplicate)
	}
	other, _ := NewEventGroup("Other", 0, 0)
	if err := other.AddEvent(mustEvent(t, "Shelf", 1, [2]int{1, 1})); err != nil {
		t.Fatalf("AddEvent() error = %v", err)
	}
	if err := st.AddEventSpace(SpaceGroup(other)); !errors.Is(err, ErrEventSpaceDuplicate) {
		t.Fatalf("grouped title reused error = %v, want %v", err, ErrEventSpaceDuplicate)
	}
	if err := st.AddEventSpace(EventSpace{}); !errors.Is(err, ErrEventSpaceInvalid) {
		t.Fatalf("empty space error = %v, want %v", err, ErrEventSpaceInvalid)
	}
	if err := st.AddEventSpace(SpaceEvent(mustEvent(t, "Gap", 3, [2]int{1, 1}))); !errors.Is(err, ErrTaskCoverage) {
		t.Fatalf("uncovered event error = %v, want %v", err, ErrTaskCoverage)
	}
	if got := len(st.Events()); got != 2 {
		t.Fatalf("len(Events()) = %d, want 2", got)
	}
}

func TestStageAddProgression(t *testing.T) {
	gate := mustStage(t, "Gate")
	hall := mustStage(t, "Hall")
	gold := mustVariable(t, "gold", TypeNumber, NumberValue(0))
	rich, _ := NewCondition(gold, CompareGreaterEquals, NumberValue(5))

	if !gate.IsTerminal() {
		t.Fatal("expected stage without progressions to be terminal")
	}
	if err := gate.AddProgression(WhenCondition(rich), hall); err != nil {
		t.Fatalf("AddProgression(condition) error = %v", err)
	}
	if err := gate.AddProgression(WhenAll(NewConditionGroup(rich)), hall); err != nil {
		t.Fatalf("AddProgression(group) error = %v", err)
	}
	if err := gate.AddProgression(Default(), hall); err != nil {
		t.Fatalf("AddProgression(default) error = %v", err)
	}
	if err := gate.AddProgression(Default(), gate); !errors.Is(err, ErrProgressionDefault) {
		t.Fatalf("second default error = %v, want %v", err, ErrProgressionDefault)
	}
	if err := gate.AddProgression(WhenCondition(nil), hall); !errors.Is(err, ErrProgressionInvalid) {
		t.Fatalf("nil condition error = %v, want %v", err, ErrProgressionInvalid)
	}
	if err := gate.AddProgression(WhenCondition(rich), nil); !errors.Is(err, ErrProgressionInvalid) {
		t.Fatalf("nil next error = %v, want %v", err, ErrProgressionInvalid)
	}

	progressions := gate.Progressions()
	want := []ProgressKind{ProgressCondition, ProgressConditionGroup, ProgressDefault}
	if len(progressions) != len(want) {
		t.Fatalf("len(Progressions()) = %d, want %d", len(progressions), len(want))
	}
	for i, p := range progressions {
		if p.Key.Kind() != want[i] {
			t.Fatalf("Progressions()[%d] kind = %v, want %v", i, p.Key.Kind(), want[i])
		}
	}
}

func TestScenarioValidate(t *testing.T) {
	build := func(t *testing.T, mutate func(t *testing.T, s *Scenario, gate, hall *Stage)) *Scenario {
		t.Helper()
		s := New("Crypt")
		gold := mustVariable(t, "gold", TypeNumber, NumberValue(0))
		if err := s.AddVariable(gold); err != nil {
			t.Fatalf("AddVariable() error = %v", err)
		}
		gate := mustStage(t, "Gate")
		hall := mustStage(t, "Hall")
		door := mustEvent(t, "Door", 2, [2]int{1, 2})
		if err := gate.AddEventSpace(SpaceEvent(door)); err != nil {
			t.Fatalf("AddEventSpace() error = %v", err)
		}
		if err := gate.AddProgression(Default(), hall); err != nil {
			t.Fatalf("AddProgression() error = %v", err)
		}
		if err := s.AddStage(gate); err != nil {
			t.Fatalf("AddStage() error = %v", err)
		}
		if err := s.AddStage(hall); err != nil {
			t.Fatalf("AddStage() error = %v", err)
		}
		if mutate != nil {
			mutate(t, s, gate, hall)
		}
		return s
	}

	tests := []struct {
		name    string
		mutate  func(t *testing.T, s *Scenario, gate, hall *Stage)
		wantErr error
	}{
		{name: "valid"},
		{
			name: "unregistered outcome variable",
			mutate: func(t *testing.T, s *Scenario, gate, hall *Stage) {
				ghost := mustVariable(t, "ghost", TypeNumber, NumberValue(0))
				o, _ := NewOutcome(ghost, MutationAdd, NumberValue(1))
				e, _ := NewEvent("Crypt", "", 1)
				_ = e.AddTask(1, 1, NewTask("Boo", "", "", ApplyOutcome(o), NoEffect()))
				if err := hall.AddEventSpace(SpaceEvent(e)); err != nil {
					t.Fatalf("AddEventSpace() error = %v", err)
				}
			},
			wantErr: ErrVariableUnregistered,
		},
		{
			name: "unregistered condition variable",
			mutate: func(t *testing.T, s *Scenario, gate, hall *Stage) {
				ghost := mustVariable(t, "ghost", TypeNumber, NumberValue(0))
				c, _ := NewCondition(ghost, CompareEquals, NumberValue(1))
				_ = hall.AddProgression(WhenCondition(c), gate)
			},
			wantErr: ErrVariableUnregistered,
		},
		{
			name: "unregistered next stage",
			mutate: func(t *testing.T, s *Scenario, gate, hall *Stage) {
				_ = hall.AddProgression(Default(), mustStage(t, "Nowhere"))
			},
			wantErr: ErrStageUnregistered,
		},
		{
			name: "cross stage dependency",
			mutate: func(t *testing.T, s *Scenario, gate, hall *Stage) {
				e := mustEvent(t, "Altar", 1, [2]int{1, 1})
				_ = e.AddDependency(OnEvent(gate.Events()[0]))
				if err := hall.AddEventSpace(SpaceEvent(e)); err != nil {
					t.Fatalf("AddEventSpace() error = %v", err)
				}
			},
			wantErr: ErrDependencyOutsideStage,
		},
		{
			name: "event dependency cycle",
			mutate: func(t *testing.T, s *Scenario, gate, hall *Stage) {
				a := mustEvent(t, "A", 1, [2]int{1, 1})
				b := mustEvent(t, "B", 1, [2]int{1, 1})
				_ = a.AddDependency(OnEvent(b))
				_ = b.AddDependency(OnEvent(a))
				_ = hall.AddEventSpace(SpaceEvent(a))
				_ = hall.AddEventSpace(SpaceEvent(b))
			},
			wantErr: ErrDependencyInvalid,
		},
		{
			name: "member depends on its group",
			mutate: func(t *testing.T, s *Scenario, gate, hall *Stage) {
				g, _ := NewEventGroup("Search", 0, 0)
				e := mustEvent(t, "Shelf", 1, [2]int{1, 1})
				_ = e.AddDependency(OnGroup(g))
				_ = g.AddEvent(e)
				_ = hall.AddEventSpace(SpaceGroup(g))
			},
			wantErr: ErrDependencyInvalid,
		},
		{
			name: "acyclic group chain",
			mutate: func(t *testing.T, s *Scenario, gate, hall *Stage) {
				first, _ := NewEventGroup("First", 0, 0)
				second, _ := NewEventGroup("Second", 0, 0)
				_ = first.AddEvent(mustEvent(t, "One", 1, [2]int{1, 1}))
				_ = second.AddEvent(mustEvent(t, "Two", 1, [2]int{1, 1}))
				_ = second.AddDependency(OnGroup(first))
				_ = hall.AddEventSpace(SpaceGroup(first))
				_ = hall.AddEventSpace(SpaceGroup(second))
			},
		},
		{
			name: "event placed twice through a group",
			mutate: func(t *testing.T, s *Scenario, gate, hall *Stage) {
				g, _ := NewEventGroup("Search", 0, 0)
				if err := hall.AddEventSpace(SpaceGroup(g)); err != nil {
					t.Fatalf("AddEventSpace() error = %v", err)
				}
				e := mustEvent(t, "Shelf", 2, [2]int{1, 2})
				if err := hall.AddEventSpace(SpaceEvent(e)); err != nil {
					t.Fatalf("AddEventSpace() error = %v", err)
				}
				if err := g.AddEvent(e); err != nil {
					t.Fatalf("AddEvent() error = %v", err)
				}
			},
			wantErr: ErrEventSpaceDuplicate,
		},
		{
			name: "empty group",
			mutate: func(t *testing.T, s *Scenario, gate, hall *Stage) {
				g, _ := NewEventGroup("Nothing", 0, 0)
				if err := hall.AddEventSpace(SpaceGroup(g)); err != nil {
					t.Fatalf("AddEventSpace() error = %v", err)
				}
			},
			wantErr: ErrEventSpaceInvalid,
		},
		{
			name: "group filled with a taken title",
			mutate: func(t *testing.T, s *Scenario, gate, hall *Stage) {
				g, _ := NewEventGroup("Search", 0, 0)
				if err := hall.AddEventSpace(SpaceGroup(g)); err != nil {
					t.Fatalf("AddEventSpace() error = %v", err)
				}
				if err := hall.AddEventSpace(SpaceEvent(mustEvent(t, "Shelf", 1, [2]int{1, 1}))); err != nil {
					t.Fatalf("AddEventSpace() error = %v", err)
				}
				if err := g.AddEvent(mustEvent(t, "Shelf", 1, [2]int{1, 1})); err != nil {
					t.Fatalf("AddEvent() error = %v", err)
				}
			},
			wantErr: ErrEventSpaceDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := build(t, tt.mutate).Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestScenarioValidateEmpty(t *testing.T) {
	if err := New("Empty").Validate(); !errors.Is(err, ErrScenarioEmpty) {
		t.Fatalf("Validate() error = %v, want %v", err, ErrScenarioEmpty)
	}
}

func TestScenarioLookups(t *testing.T) {
	s := New("Crypt")
	s.SetLink("https://example.com/crypt")
	s.SetImage("crypt.png")
	gold := mustVariable(t, "gold", TypeNumber, NumberValue(0))
	_ = s.AddVariable(gold)
	gate := mustStage(t, "Gate")
	_ = s.AddStage(gate)

	if s.Variable("gold") != gold || s.Variable("silver") != nil {
		t.Fatal("unexpected Variable lookup result")
	}
	if s.Stage("Gate") != gate || s.Stage("Hall") != nil {
		t.Fatal("unexpected Stage lookup result")
	}
	if s.Link() != "https://example.com/crypt" || s.Image() != "crypt.png" {
		t.Fatalf("metadata = %q, %q", s.Link(), s.Image())
	}
}
