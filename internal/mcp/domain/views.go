package domain

import (
	"strings"

	"github.com/OtherAytay/IFR/internal/ifr/play"
	"github.com/OtherAytay/IFR/internal/ifr/scenario"
)

// VariableView is the JSON shape of a scenario variable and its value.
type VariableView struct {
	Name   string `json:"name" jsonschema:"variable name"`
	Type   string `json:"type" jsonschema:"variable type (bool, number, string)"`
	Value  any    `json:"value" jsonschema:"current value, or the default when describing the scenario"`
	Bounds []any  `json:"bounds,omitempty" jsonschema:"inclusive range for numbers or allowed values for strings"`
}

// TaskView is the JSON shape of the active task of an event.
type TaskView struct {
	Title          string `json:"title" jsonschema:"task title"`
	Flavor         string `json:"flavor,omitempty" jsonschema:"task flavor text"`
	Description    string `json:"description" jsonschema:"task description with roll and variables substituted"`
	Roll           int    `json:"roll,omitempty" jsonschema:"roll that selected the task while it is pending"`
	Reroll         bool   `json:"reroll" jsonschema:"true when the last completion asked for a new roll"`
	TimesCompleted int    `json:"times_completed" jsonschema:"number of times the task was resolved"`
}

// EventView is the JSON shape of one event of the current stage.
type EventView struct {
	Title       string    `json:"title" jsonschema:"event title"`
	Subtitle    string    `json:"subtitle,omitempty" jsonschema:"event subtitle"`
	Group       string    `json:"group,omitempty" jsonschema:"title of the enclosing event group"`
	Required    bool      `json:"required" jsonschema:"true when the stage cannot complete without this event"`
	MaxRoll     int       `json:"max_roll" jsonschema:"die size rolled for this event"`
	Available   bool      `json:"available" jsonschema:"true when the event can be rolled or is complete"`
	Complete    bool      `json:"complete" jsonschema:"true when the event is complete"`
	CurrentRoll int       `json:"current_roll,omitempty" jsonschema:"pending roll awaiting completion"`
	TimesRolled int       `json:"times_rolled" jsonschema:"number of rolls made for this event"`
	ActiveTask  *TaskView `json:"active_task,omitempty" jsonschema:"task selected by the latest roll"`
}

// StageView is the JSON shape of the current stage.
type StageView struct {
	Title       string      `json:"title" jsonschema:"stage title"`
	Subtitle    string      `json:"subtitle,omitempty" jsonschema:"stage subtitle"`
	Description string      `json:"description,omitempty" jsonschema:"stage description"`
	Complete    bool        `json:"complete" jsonschema:"true when the stage completion policy holds"`
	Terminal    bool        `json:"terminal" jsonschema:"true when the stage has no progressions"`
	Next        string      `json:"next,omitempty" jsonschema:"stage the session would progress to now"`
	Events      []EventView `json:"events" jsonschema:"events of the stage in declaration order"`
}

// SessionState is the JSON shape of a play session.
type SessionState struct {
	SessionID string         `json:"session_id" jsonschema:"session identifier"`
	Scenario  string         `json:"scenario" jsonschema:"scenario title"`
	Stage     StageView      `json:"stage" jsonschema:"current stage"`
	Variables []VariableView `json:"variables" jsonschema:"current variable values"`
	Path      []string       `json:"path" jsonschema:"stage titles entered so far"`
	Finished  bool           `json:"finished" jsonschema:"true when the current stage is complete and no progression holds"`
}

// StageSummary is the static JSON shape of a scenario stage.
type StageSummary struct {
	Title        string            `json:"title" jsonschema:"stage title"`
	Subtitle     string            `json:"subtitle,omitempty" jsonschema:"stage subtitle"`
	Description  string            `json:"description,omitempty" jsonschema:"stage description"`
	MinComplete  int               `json:"min_complete,omitempty" jsonschema:"minimum completed spaces, zero when unset"`
	MaxComplete  int               `json:"max_complete,omitempty" jsonschema:"maximum completed spaces, zero when unset"`
	Spaces       []string          `json:"spaces" jsonschema:"titles of the stage's events and groups"`
	Progressions []ProgressionView `json:"progressions,omitempty" jsonschema:"progressions in evaluation order"`
}

// ProgressionView is the JSON shape of one stage progression.
type ProgressionView struct {
	When string `json:"when" jsonschema:"condition text or default"`
	Next string `json:"next" jsonschema:"title of the next stage"`
}

func variableView(v *scenario.Variable, value scenario.Value) VariableView {
	view := VariableView{
		Name:  v.Name(),
		Type:  v.Type().String(),
		Value: value.Any(),
	}
	for _, b := range v.Bounds() {
		view.Bounds = append(view.Bounds, b.Any())
	}
	return view
}

func taskView(t *play.TaskState) *TaskView {
	if t == nil {
		return nil
	}
	view := &TaskView{
		Title:          t.Task().Title(),
		Flavor:         t.Task().Flavor(),
		Description:    t.Description(),
		Reroll:         t.Reroll(),
		TimesCompleted: t.TimesCompleted(),
	}
	if roll, ok := t.CurrentRoll(); ok {
		view.Roll = roll
	}
	return view
}

func eventView(e *play.EventState) EventView {
	view := EventView{
		Title:       e.Title(),
		Subtitle:    e.Event().Subtitle(),
		Required:    e.Event().Required(),
		MaxRoll:     e.Event().MaxRoll(),
		Available:   e.IsAvailable(),
		Complete:    e.IsComplete(),
		TimesRolled: e.TimesRolled(),
		ActiveTask:  taskView(e.ActiveTask()),
	}
	if g := e.Group(); g != nil {
		view.Group = g.Title()
	}
	if roll, ok := e.CurrentRoll(); ok {
		view.CurrentRoll = roll
	}
	return view
}

func stageView(st *play.StageState) StageView {
	view := StageView{
		Title:       st.Title(),
		Subtitle:    st.Stage().Subtitle(),
		Description: st.Stage().Description(),
		Complete:    st.IsComplete(),
		Terminal:    st.Stage().IsTerminal(),
		Events:      []EventView{},
	}
	if next := st.Progress(); next != nil {
		view.Next = next.Title()
	}
	for _, e := range st.EventStates() {
		view.Events = append(view.Events, eventView(e))
	}
	return view
}

func sessionState(sessionID string, s *play.Session) SessionState {
	state := SessionState{
		SessionID: sessionID,
		Scenario:  s.Scenario().Title(),
		Stage:     stageView(s.CurrentStage()),
		Variables: []VariableView{},
		Path:      []string{},
		Finished:  s.Finished(),
	}
	for _, v := range s.Variables() {
		state.Variables = append(state.Variables, variableView(v.Variable(), v.Value()))
	}
	for _, st := range s.Path() {
		state.Path = append(state.Path, st.Title())
	}
	return state
}

func stageSummary(st *scenario.Stage) StageSummary {
	summary := StageSummary{
		Title:       st.Title(),
		Subtitle:    st.Subtitle(),
		Description: st.Description(),
		MinComplete: st.MinComplete(),
		MaxComplete: st.MaxComplete(),
		Spaces:      []string{},
	}
	for _, space := range st.EventSpaces() {
		summary.Spaces = append(summary.Spaces, space.Title())
	}
	for _, p := range st.Progressions() {
		summary.Progressions = append(summary.Progressions, ProgressionView{
			When: progressionText(p.Key),
			Next: p.Next.Title(),
		})
	}
	return summary
}

func progressionText(key scenario.ProgressKey) string {
	switch key.Kind() {
	case scenario.ProgressCondition:
		return key.Condition().String()
	case scenario.ProgressConditionGroup:
		parts := make([]string, 0, len(key.Group().Conditions()))
		for _, c := range key.Group().Conditions() {
			parts = append(parts, c.String())
		}
		return strings.Join(parts, " and ")
	default:
		return "default"
	}
}
