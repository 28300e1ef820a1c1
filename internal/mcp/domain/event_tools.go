package domain

import (
	"context"
	"fmt"

	"github.com/OtherAytay/IFR/internal/ifr/play"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
)

// EventRollInput represents the MCP tool input for rolling an event.
type EventRollInput struct {
	SessionID string `json:"session_id" jsonschema:"session identifier"`
	Event     string `json:"event" jsonschema:"title of an event in the current stage"`
}

// EventRollResult represents the MCP tool output for rolling an event.
type EventRollResult struct {
	Roll  int       `json:"roll" jsonschema:"rolled value"`
	Event EventView `json:"event" jsonschema:"event state after the roll"`
}

// EventRollTool defines the MCP tool schema for rolling an event.
func EventRollTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "event_roll",
		Description: "Rolls the die of an available event in the current stage and selects the matching task.",
	}
}

// EventRollHandler executes an event roll request.
func EventRollHandler(reg *Registry) mcp.ToolHandlerFor[EventRollInput, EventRollResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input EventRollInput) (*mcp.CallToolResult, EventRollResult, error) {
		_, span, meta, err := startToolSpan(ctx, "event_roll",
			attribute.String("ifr.session_id", input.SessionID),
			attribute.String("ifr.event", input.Event),
		)
		defer span.End()
		if err != nil {
			return nil, EventRollResult{}, recordError(span, fmt.Errorf("generate invocation id: %w", err))
		}

		var result EventRollResult
		err = reg.With(input.SessionID, func(s *play.Session) error {
			event, err := currentEvent(s, input.Event)
			if err != nil {
				return err
			}
			roll, err := event.Roll()
			if err != nil {
				return fmt.Errorf("roll %s: %w", input.Event, err)
			}
			result = EventRollResult{Roll: roll, Event: eventView(event)}
			return nil
		})
		if err != nil {
			return nil, EventRollResult{}, recordError(span, err)
		}
		span.SetAttributes(attribute.Int("ifr.roll", result.Roll))
		meta.SessionID = input.SessionID
		return CallToolResultWithMetadata(meta), result, nil
	}
}

// EventCompleteInput represents the MCP tool input for completing an event.
type EventCompleteInput struct {
	SessionID string `json:"session_id" jsonschema:"session identifier"`
	Event     string `json:"event" jsonschema:"title of a rolled event in the current stage"`
	Pass      bool   `json:"pass" jsonschema:"true when the player passed the active task"`
}

// EventCompleteResult represents the MCP tool output for completing an event.
type EventCompleteResult struct {
	Resolution string       `json:"resolution" jsonschema:"applied, rejected, no-op or reroll"`
	State      SessionState `json:"state" jsonschema:"session state after the completion"`
}

// EventCompleteTool defines the MCP tool schema for completing an event.
func EventCompleteTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "event_complete",
		Description: "Completes the active task of a rolled event, applying its pass or fail effect.",
	}
}

// EventCompleteHandler executes an event complete request.
func EventCompleteHandler(reg *Registry) mcp.ToolHandlerFor[EventCompleteInput, EventCompleteResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input EventCompleteInput) (*mcp.CallToolResult, EventCompleteResult, error) {
		_, span, meta, err := startToolSpan(ctx, "event_complete",
			attribute.String("ifr.session_id", input.SessionID),
			attribute.String("ifr.event", input.Event),
			attribute.Bool("ifr.pass", input.Pass),
		)
		defer span.End()
		if err != nil {
			return nil, EventCompleteResult{}, recordError(span, fmt.Errorf("generate invocation id: %w", err))
		}

		var result EventCompleteResult
		err = reg.With(input.SessionID, func(s *play.Session) error {
			event, err := currentEvent(s, input.Event)
			if err != nil {
				return err
			}
			resolution, err := event.Complete(input.Pass)
			if err != nil {
				return fmt.Errorf("complete %s: %w", input.Event, err)
			}
			result = EventCompleteResult{
				Resolution: resolution.String(),
				State:      sessionState(input.SessionID, s),
			}
			return nil
		})
		if err != nil {
			return nil, EventCompleteResult{}, recordError(span, err)
		}
		span.SetAttributes(attribute.String("ifr.resolution", result.Resolution))
		meta.SessionID = input.SessionID
		return CallToolResultWithMetadata(meta), result, nil
	}
}

func currentEvent(s *play.Session, title string) (*play.EventState, error) {
	if title == "" {
		return nil, fmt.Errorf("event is required")
	}
	stage := s.CurrentStage()
	for _, e := range stage.EventStates() {
		if e.Title() == title {
			return e, nil
		}
	}
	return nil, notFound("event", title)
}
