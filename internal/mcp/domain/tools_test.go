package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/OtherAytay/IFR/internal/ifr/play"
	"github.com/OtherAytay/IFR/internal/ifr/scenario"
	apperrors "github.com/OtherAytay/IFR/internal/platform/errors"
)

func startSession(t *testing.T, reg *Registry) SessionState {
	t.Helper()
	result, state, err := SessionStartHandler(reg)(context.Background(), nil, SessionStartInput{})
	if err != nil {
		t.Fatalf("session_start error = %v", err)
	}
	if result == nil || result.Meta[InvocationIDKey] == "" {
		t.Fatalf("session_start meta = %+v, want invocation id", result)
	}
	if got := result.Meta[SessionIDKey]; got != state.SessionID {
		t.Fatalf("session_start meta session = %v, want %q", got, state.SessionID)
	}
	return state
}

func TestScenarioDescribe(t *testing.T) {
	reg := cellarRegistry(t)

	_, result, err := ScenarioDescribeHandler(reg)(context.Background(), nil, ScenarioDescribeInput{})
	if err != nil {
		t.Fatalf("scenario_describe error = %v", err)
	}
	if result.Title != "Cellar" {
		t.Fatalf("Title = %q, want Cellar", result.Title)
	}
	if len(result.Variables) != 2 {
		t.Fatalf("Variables = %+v, want 2", result.Variables)
	}
	coins := result.Variables[0]
	if coins.Name != "coins" || coins.Type != scenario.TypeNumber.String() || coins.Value != 0.0 || len(coins.Bounds) != 2 {
		t.Fatalf("coins = %+v", coins)
	}
	if len(result.Stages) != 2 {
		t.Fatalf("Stages = %+v, want 2", result.Stages)
	}
	cellar := result.Stages[0]
	if len(cellar.Spaces) != 1 || cellar.Spaces[0] != "Crate" {
		t.Fatalf("Cellar spaces = %v, want [Crate]", cellar.Spaces)
	}
	if len(cellar.Progressions) != 1 || cellar.Progressions[0] != (ProgressionView{When: "default", Next: "Street"}) {
		t.Fatalf("Cellar progressions = %+v", cellar.Progressions)
	}
	if len(result.Stages[1].Progressions) != 0 {
		t.Fatalf("Street progressions = %+v, want none", result.Stages[1].Progressions)
	}
}

func TestSessionStartState(t *testing.T) {
	reg := cellarRegistry(t)
	state := startSession(t, reg)

	if state.Scenario != "Cellar" || state.Stage.Title != "Cellar" {
		t.Fatalf("state = %+v, want Cellar stage", state)
	}
	if len(state.Path) != 1 || state.Path[0] != "Cellar" {
		t.Fatalf("Path = %v, want [Cellar]", state.Path)
	}
	if state.Finished || state.Stage.Complete {
		t.Fatalf("new session finished = %v, complete = %v", state.Finished, state.Stage.Complete)
	}
	if len(state.Stage.Events) != 1 || !state.Stage.Events[0].Available {
		t.Fatalf("Events = %+v, want one available event", state.Stage.Events)
	}

	_, again, err := SessionStateHandler(reg)(context.Background(), nil, SessionStateInput{SessionID: state.SessionID})
	if err != nil {
		t.Fatalf("session_state error = %v", err)
	}
	if again.SessionID != state.SessionID || again.Stage.Title != "Cellar" {
		t.Fatalf("session_state = %+v", again)
	}
}

func TestSessionStateErrors(t *testing.T) {
	reg := cellarRegistry(t)
	tests := []struct {
		name     string
		input    SessionStateInput
		notFound bool
	}{
		{name: "missing id", input: SessionStateInput{}},
		{name: "unknown id", input: SessionStateInput{SessionID: "nope"}, notFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := SessionStateHandler(reg)(context.Background(), nil, tt.input)
			if err == nil {
				t.Fatal("session_state error = nil, want error")
			}
			if got := errors.Is(err, ErrNotFound); got != tt.notFound {
				t.Fatalf("errors.Is(err, ErrNotFound) = %v, want %v (err %v)", got, tt.notFound, err)
			}
		})
	}
}

func TestSessionEnd(t *testing.T) {
	reg := cellarRegistry(t)
	state := startSession(t, reg)

	result, ended, err := SessionEndHandler(reg)(context.Background(), nil, SessionEndInput{SessionID: state.SessionID})
	if err != nil {
		t.Fatalf("session_end error = %v", err)
	}
	if !ended.Ended || ended.SessionID != state.SessionID {
		t.Fatalf("session_end = %+v", ended)
	}
	if got := result.Meta[SessionIDKey]; got != state.SessionID {
		t.Fatalf("session_end meta session = %v, want %q", got, state.SessionID)
	}
	if _, _, err := SessionStateHandler(reg)(context.Background(), nil, SessionStateInput{SessionID: state.SessionID}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("session_state after end error = %v, want %v", err, ErrNotFound)
	}
	if _, _, err := SessionEndHandler(reg)(context.Background(), nil, SessionEndInput{SessionID: state.SessionID}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second session_end error = %v, want %v", err, ErrNotFound)
	}
	if _, _, err := SessionEndHandler(reg)(context.Background(), nil, SessionEndInput{}); err == nil {
		t.Fatal("session_end without id succeeded")
	}
}

func TestEventRollAndComplete(t *testing.T) {
	reg := cellarRegistry(t, 1, 2, 1)
	state := startSession(t, reg)
	ctx := context.Background()
	roll := EventRollHandler(reg)
	complete := EventCompleteHandler(reg)

	_, rolled, err := roll(ctx, nil, EventRollInput{SessionID: state.SessionID, Event: "Crate"})
	if err != nil {
		t.Fatalf("event_roll error = %v", err)
	}
	if rolled.Roll != 1 || rolled.Event.ActiveTask == nil || rolled.Event.ActiveTask.Title != "Empty" {
		t.Fatalf("event_roll = %+v, want Empty on 1", rolled)
	}
	if got := rolled.Event.ActiveTask.Description; got != "Nothing on a 1." {
		t.Fatalf("Description = %q", got)
	}

	_, done, err := complete(ctx, nil, EventCompleteInput{SessionID: state.SessionID, Event: "Crate", Pass: false})
	if err != nil {
		t.Fatalf("event_complete error = %v", err)
	}
	if done.Resolution != play.ResolutionReroll.String() {
		t.Fatalf("Resolution = %q, want reroll", done.Resolution)
	}
	if done.State.Stage.Events[0].Complete {
		t.Fatal("Crate complete after reroll")
	}

	_, rolled, err = roll(ctx, nil, EventRollInput{SessionID: state.SessionID, Event: "Crate"})
	if err != nil {
		t.Fatalf("event_roll error = %v", err)
	}
	if rolled.Roll != 2 || rolled.Event.ActiveTask.Title != "Coins" {
		t.Fatalf("event_roll = %+v, want Coins on 2", rolled)
	}

	_, done, err = complete(ctx, nil, EventCompleteInput{SessionID: state.SessionID, Event: "Crate", Pass: true})
	if err != nil {
		t.Fatalf("event_complete error = %v", err)
	}
	if done.Resolution != play.ResolutionApplied.String() {
		t.Fatalf("Resolution = %q, want applied", done.Resolution)
	}
	if got := done.State.Variables[0].Value; got != 3.0 {
		t.Fatalf("coins = %v, want 3", got)
	}
	if !done.State.Stage.Complete || done.State.Stage.Next != "Street" {
		t.Fatalf("stage = %+v, want complete with next Street", done.State.Stage)
	}

	_, _, err = roll(ctx, nil, EventRollInput{SessionID: state.SessionID, Event: "Crate"})
	if !errors.Is(err, play.ErrEventCompleted) {
		t.Fatalf("event_roll on completed event error = %v, want %v", err, play.ErrEventCompleted)
	}
}

func TestEventToolErrors(t *testing.T) {
	reg := cellarRegistry(t)
	state := startSession(t, reg)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{
			name: "roll unknown event",
			call: func() error {
				_, _, err := EventRollHandler(reg)(ctx, nil, EventRollInput{SessionID: state.SessionID, Event: "Walk"})
				return err
			},
			want: ErrNotFound,
		},
		{
			name: "complete before roll",
			call: func() error {
				_, _, err := EventCompleteHandler(reg)(ctx, nil, EventCompleteInput{SessionID: state.SessionID, Event: "Crate"})
				return err
			},
			want: play.ErrEventNotRolled,
		},
		{
			name: "roll unknown session",
			call: func() error {
				_, _, err := EventRollHandler(reg)(ctx, nil, EventRollInput{SessionID: "nope", Event: "Crate"})
				return err
			},
			want: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSessionProgress(t *testing.T) {
	reg := cellarRegistry(t, 2, 1)
	state := startSession(t, reg)
	ctx := context.Background()
	progress := SessionProgressHandler(reg)

	_, moved, err := progress(ctx, nil, SessionProgressInput{SessionID: state.SessionID})
	if err != nil {
		t.Fatalf("session_progress error = %v", err)
	}
	if moved.Moved || moved.From != "Cellar" {
		t.Fatalf("session_progress = %+v, want no move from incomplete Cellar", moved)
	}

	if _, _, err := EventRollHandler(reg)(ctx, nil, EventRollInput{SessionID: state.SessionID, Event: "Crate"}); err != nil {
		t.Fatalf("event_roll error = %v", err)
	}
	if _, _, err := EventCompleteHandler(reg)(ctx, nil, EventCompleteInput{SessionID: state.SessionID, Event: "Crate", Pass: true}); err != nil {
		t.Fatalf("event_complete error = %v", err)
	}

	_, moved, err = progress(ctx, nil, SessionProgressInput{SessionID: state.SessionID})
	if err != nil {
		t.Fatalf("session_progress error = %v", err)
	}
	if !moved.Moved || moved.State.Stage.Title != "Street" {
		t.Fatalf("session_progress = %+v, want move to Street", moved)
	}
	if len(moved.State.Path) != 2 || moved.State.Path[1] != "Street" {
		t.Fatalf("Path = %v, want [Cellar Street]", moved.State.Path)
	}

	if _, _, err := EventRollHandler(reg)(ctx, nil, EventRollInput{SessionID: state.SessionID, Event: "Walk"}); err != nil {
		t.Fatalf("event_roll error = %v", err)
	}
	_, done, err := EventCompleteHandler(reg)(ctx, nil, EventCompleteInput{SessionID: state.SessionID, Event: "Walk", Pass: true})
	if err != nil {
		t.Fatalf("event_complete error = %v", err)
	}
	if done.Resolution != play.ResolutionNoOp.String() || !done.State.Finished {
		t.Fatalf("event_complete = %+v, want finished no-op", done)
	}
}

func TestVariableSet(t *testing.T) {
	reg := cellarRegistry(t)
	state := startSession(t, reg)
	set := VariableSetHandler(reg)

	tests := []struct {
		name  string
		input VariableSetInput
		want  any
		code  apperrors.Code
	}{
		{name: "number", input: VariableSetInput{Name: "coins", Value: 4.0}, want: 4.0},
		{name: "boolean", input: VariableSetInput{Name: "lamp", Value: true}, want: true},
		{name: "out of bounds", input: VariableSetInput{Name: "coins", Value: 11.0}, code: apperrors.CodeVariableValueOutOfBounds},
		{name: "wrong type", input: VariableSetInput{Name: "lamp", Value: "on"}, code: apperrors.CodeVariableTypeMismatch},
		{name: "unknown variable", input: VariableSetInput{Name: "torch", Value: true}, code: apperrors.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.SessionID = state.SessionID
			_, result, err := set(context.Background(), nil, tt.input)
			if tt.code != "" {
				if got := apperrors.CodeOf(err); got != tt.code {
					t.Fatalf("variable_set code = %q, want %q (err %v)", got, tt.code, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("variable_set error = %v", err)
			}
			if result.Variable.Value != tt.want {
				t.Fatalf("Value = %v, want %v", result.Variable.Value, tt.want)
			}
		})
	}

	err := reg.With(state.SessionID, func(s *play.Session) error {
		if got := s.Variable("coins").Value().Number(); got != 4 {
			t.Fatalf("coins = %v, want 4 after rejected update", got)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("With() error = %v", err)
	}
}
