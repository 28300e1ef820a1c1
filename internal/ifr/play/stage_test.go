package play

import (
	"errors"
	"testing"

	"github.com/OtherAytay/IFR/internal/ifr/scenario"
)

func TestStageCompletionPolicy(t *testing.T) {
	tests := []struct {
		name string
		// build returns the stage under test.
		build func(t *testing.T) *scenario.Stage
		// played events, in order, all passed.
		played   []string
		complete bool
	}{
		{
			name: "empty stage",
			build: func(t *testing.T) *scenario.Stage {
				return mustStage(t, "Gate", 0, 0)
			},
			complete: true,
		},
		{
			name: "every available event by default",
			build: func(t *testing.T) *scenario.Stage {
				return mustStage(t, "Gate", 0, 0,
					scenario.SpaceEvent(mustEvent(t, "A", 1, nil)),
					scenario.SpaceEvent(mustEvent(t, "B", 1, nil)))
			},
			played: []string{"A"},
		},
		{
			name: "every available event done",
			build: func(t *testing.T) *scenario.Stage {
				return mustStage(t, "Gate", 0, 0,
					scenario.SpaceEvent(mustEvent(t, "A", 1, nil)),
					scenario.SpaceEvent(mustEvent(t, "B", 1, nil)))
			},
			played:   []string{"A", "B"},
			complete: true,
		},
		{
			name: "minimum reached",
			build: func(t *testing.T) *scenario.Stage {
				return mustStage(t, "Gate", 1, 0,
					scenario.SpaceEvent(mustEvent(t, "A", 1, nil)),
					scenario.SpaceEvent(mustEvent(t, "B", 1, nil)))
			},
			played:   []string{"B"},
			complete: true,
		},
		{
			name: "required event left open",
			build: func(t *testing.T) *scenario.Stage {
				a := mustEvent(t, "A", 1, nil)
				a.SetRequired(true)
				return mustStage(t, "Gate", 1, 0, scenario.SpaceEvent(a), scenario.SpaceEvent(mustEvent(t, "B", 1, nil)))
			},
			played: []string{"B"},
		},
		{
			name: "group minimum",
			build: func(t *testing.T) *scenario.Stage {
				g := mustGroup(t, "Search", 1, 0, mustEvent(t, "Shelf", 1, nil), mustEvent(t, "Desk", 1, nil))
				return mustStage(t, "Gate", 0, 0, scenario.SpaceGroup(g))
			},
			played:   []string{"Desk"},
			complete: true,
		},
		{
			name: "group needs every event",
			build: func(t *testing.T) *scenario.Stage {
				g := mustGroup(t, "Search", 0, 0, mustEvent(t, "Shelf", 1, nil), mustEvent(t, "Desk", 1, nil))
				return mustStage(t, "Gate", 0, 0, scenario.SpaceGroup(g))
			},
			played: []string{"Desk"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustSession(t, mustScenario(t, nil, tt.build(t)))
			for _, title := range tt.played {
				play(t, s, title, true)
			}
			if got := s.CurrentStage().IsComplete(); got != tt.complete {
				t.Fatalf("IsComplete() = %v, want %v", got, tt.complete)
			}
		})
	}
}

func TestStageUnreachableMinimumIsCapped(t *testing.T) {
	lit := mustVariable(t, "lit", scenario.TypeBoolean, scenario.BoolValue(false))
	dark := mustEvent(t, "Dark", 1, nil)
	if err := dark.AddDependency(scenario.OnCondition(mustCondition(t, lit, scenario.CompareEquals, scenario.BoolValue(true)))); err != nil {
		t.Fatalf("AddDependency() error = %v", err)
	}
	scn := mustScenario(t, []*scenario.Variable{lit}, mustStage(t, "Gate", 2, 0,
		scenario.SpaceEvent(mustEvent(t, "Door", 1, nil)),
		scenario.SpaceEvent(dark)))
	s := mustSession(t, scn)

	if s.CurrentStage().IsComplete() {
		t.Fatal("stage complete before any event")
	}
	play(t, s, "Door", true)
	if !s.CurrentStage().IsComplete() {
		t.Fatal("unreachable minimum blocks completion")
	}
	s.Variable("lit").SetValue(scenario.BoolValue(true))
	if s.CurrentStage().IsComplete() {
		t.Fatal("stage complete while a newly available event is open")
	}
}

func TestStageMaxCompleteCapsEvents(t *testing.T) {
	scn := mustScenario(t, nil, mustStage(t, "Gate", 0, 1,
		scenario.SpaceEvent(mustEvent(t, "Left", 1, nil)),
		scenario.SpaceEvent(mustEvent(t, "Right", 1, nil))))
	s := mustSession(t, scn)
	stage := s.CurrentStage()

	if !stage.Event("Right").IsAvailable() {
		t.Fatal("Right unavailable before the cap is reached")
	}
	play(t, s, "Left", true)
	if stage.Event("Right").IsAvailable() {
		t.Fatal("Right available after the cap is reached")
	}
	if !stage.Event("Left").IsAvailable() {
		t.Fatal("completed event no longer available")
	}
	if !stage.IsComplete() {
		t.Fatal("stage incomplete once the cap is reached")
	}
}

func TestStageRejectsEmptyGroupUnderCap(t *testing.T) {
	door := mustEvent(t, "Door", 1, nil)
	door.SetRequired(true)
	scn := mustScenario(t, nil, mustStage(t, "Gate", 0, 1,
		scenario.SpaceGroup(mustGroup(t, "Nothing", 0, 0)),
		scenario.SpaceEvent(door)))

	if _, err := NewSession(scn); !errors.Is(err, scenario.ErrEventSpaceInvalid) {
		t.Fatalf("NewSession() error = %v, want %v", err, scenario.ErrEventSpaceInvalid)
	}
}

func TestGroupMaxCompleteCapsMembers(t *testing.T) {
	g := mustGroup(t, "Search", 0, 1, mustEvent(t, "Shelf", 1, nil), mustEvent(t, "Desk", 1, nil))
	s := mustSession(t, mustScenario(t, nil, mustStage(t, "Gate", 0, 0, scenario.SpaceGroup(g))))
	stage := s.CurrentStage()

	play(t, s, "Shelf", true)
	if stage.Event("Desk").IsAvailable() {
		t.Fatal("Desk available after the group cap is reached")
	}
	if !stage.Group("Search").IsComplete() {
		t.Fatal("group incomplete once its cap is reached")
	}
}

func TestGroupDependencyGatesMembers(t *testing.T) {
	key := mustEvent(t, "Key", 1, nil)
	g := mustGroup(t, "Vault", 0, 0, mustEvent(t, "Chest", 1, nil))
	if err := g.AddDependency(scenario.OnEvent(key)); err != nil {
		t.Fatalf("AddDependency() error = %v", err)
	}
	after := mustEvent(t, "Leave", 1, nil)
	if err := after.AddDependency(scenario.OnGroup(g)); err != nil {
		t.Fatalf("AddDependency() error = %v", err)
	}
	s := mustSession(t, mustScenario(t, nil, mustStage(t, "Gate", 0, 0,
		scenario.SpaceEvent(key), scenario.SpaceGroup(g), scenario.SpaceEvent(after))))
	stage := s.CurrentStage()

	if stage.Group("Vault").IsAvailable() || stage.Event("Chest").IsAvailable() {
		t.Fatal("group available before its dependency")
	}
	if stage.Group("Vault").IsComplete() {
		t.Fatal("gated group reported complete")
	}
	play(t, s, "Key", true)
	if !stage.Event("Chest").IsAvailable() {
		t.Fatal("member unavailable after the group dependency completed")
	}
	if stage.Event("Leave").IsAvailable() {
		t.Fatal("Leave available before the group completed")
	}
	play(t, s, "Chest", true)
	if !stage.Event("Leave").IsAvailable() {
		t.Fatal("Leave unavailable after the group completed")
	}
}

func TestStageProgress(t *testing.T) {
	build := func(t *testing.T, withDefault bool) (*scenario.Scenario, *scenario.Variable) {
		gold := mustVariable(t, "gold", scenario.TypeNumber, scenario.NumberValue(0))
		gate := mustStage(t, "Gate", 0, 0, scenario.SpaceEvent(mustEvent(t, "Door", 1, nil)))
		vault := mustStage(t, "Vault", 0, 0)
		hall := mustStage(t, "Hall", 0, 0)
		if err := gate.AddProgression(scenario.WhenCondition(mustCondition(t, gold, scenario.CompareGreaterEquals, scenario.NumberValue(5))), vault); err != nil {
			t.Fatalf("AddProgression(Vault) error = %v", err)
		}
		rich := scenario.NewConditionGroup(
			mustCondition(t, gold, scenario.CompareGreaterEquals, scenario.NumberValue(1)),
			mustCondition(t, gold, scenario.CompareLess, scenario.NumberValue(3)),
		)
		if err := gate.AddProgression(scenario.WhenAll(rich), hall); err != nil {
			t.Fatalf("AddProgression(Hall) error = %v", err)
		}
		if withDefault {
			if err := gate.AddProgression(scenario.Default(), hall); err != nil {
				t.Fatalf("AddProgression(default) error = %v", err)
			}
		}
		return mustScenario(t, []*scenario.Variable{gold}, gate, vault, hall), gold
	}

	tests := []struct {
		name        string
		gold        float64
		withDefault bool
		want        string
	}{
		{name: "first matching condition", gold: 7, want: "Vault"},
		{name: "condition group", gold: 2, want: "Hall"},
		{name: "earlier key wins over default", gold: 5, withDefault: true, want: "Vault"},
		{name: "default", gold: 4, withDefault: true, want: "Hall"},
		{name: "nothing matches", gold: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scn, _ := build(t, tt.withDefault)
			s := mustSession(t, scn)
			gate := s.CurrentStage()
			if gate.Progress() != nil {
				t.Fatal("Progress() returned a stage before completion")
			}
			play(t, s, "Door", true)
			s.Variable("gold").SetValue(scenario.NumberValue(tt.gold))

			next := gate.Progress()
			if tt.want == "" {
				if next != nil {
					t.Fatalf("Progress() = %q, want nil", next.Title())
				}
				return
			}
			if next == nil || next.Title() != tt.want {
				t.Fatalf("Progress() = %v, want %q", next, tt.want)
			}
		})
	}
}
