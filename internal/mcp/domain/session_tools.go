package domain

import (
	"context"
	"fmt"

	"github.com/OtherAytay/IFR/internal/ifr/play"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
)

// SessionStartInput represents the MCP tool input for starting a session.
type SessionStartInput struct {
	Seed *int64 `json:"seed,omitempty" jsonschema:"optional seed for reproducible rolls"`
}

// SessionStartTool defines the MCP tool schema for starting a session.
func SessionStartTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "session_start",
		Description: "Starts a play session at the first stage of the scenario with default variable values.",
	}
}

// SessionStartHandler executes a session start request.
func SessionStartHandler(reg *Registry) mcp.ToolHandlerFor[SessionStartInput, SessionState] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SessionStartInput) (*mcp.CallToolResult, SessionState, error) {
		_, span, meta, err := startToolSpan(ctx, "session_start")
		defer span.End()
		if err != nil {
			return nil, SessionState{}, recordError(span, fmt.Errorf("generate invocation id: %w", err))
		}

		sessionID, err := reg.Start(input.Seed)
		if err != nil {
			return nil, SessionState{}, recordError(span, fmt.Errorf("session start failed: %w", err))
		}
		span.SetAttributes(attribute.String("ifr.session_id", sessionID))

		var result SessionState
		err = reg.With(sessionID, func(s *play.Session) error {
			result = sessionState(sessionID, s)
			return nil
		})
		if err != nil {
			return nil, SessionState{}, recordError(span, err)
		}
		meta.SessionID = sessionID
		return CallToolResultWithMetadata(meta), result, nil
	}
}

// SessionStateInput represents the MCP tool input for reading a session.
type SessionStateInput struct {
	SessionID string `json:"session_id" jsonschema:"session identifier"`
}

// SessionStateTool defines the MCP tool schema for reading a session.
func SessionStateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "session_state",
		Description: "Returns the current stage, its events and the variable values of a session.",
	}
}

// SessionStateHandler executes a session state request.
func SessionStateHandler(reg *Registry) mcp.ToolHandlerFor[SessionStateInput, SessionState] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SessionStateInput) (*mcp.CallToolResult, SessionState, error) {
		_, span, meta, err := startToolSpan(ctx, "session_state", attribute.String("ifr.session_id", input.SessionID))
		defer span.End()
		if err != nil {
			return nil, SessionState{}, recordError(span, fmt.Errorf("generate invocation id: %w", err))
		}
		if input.SessionID == "" {
			return nil, SessionState{}, recordError(span, fmt.Errorf("session_id is required"))
		}

		var result SessionState
		err = reg.With(input.SessionID, func(s *play.Session) error {
			result = sessionState(input.SessionID, s)
			return nil
		})
		if err != nil {
			return nil, SessionState{}, recordError(span, err)
		}
		meta.SessionID = input.SessionID
		return CallToolResultWithMetadata(meta), result, nil
	}
}

// SessionProgressInput represents the MCP tool input for progressing a session.
type SessionProgressInput struct {
	SessionID string `json:"session_id" jsonschema:"session identifier"`
}

// SessionProgressResult represents the MCP tool output for progressing a session.
type SessionProgressResult struct {
	Moved bool         `json:"moved" jsonschema:"true when the session entered a new stage"`
	From  string       `json:"from" jsonschema:"stage title before the call"`
	State SessionState `json:"state" jsonschema:"session state after the call"`
}

// SessionProgressTool defines the MCP tool schema for progressing a session.
func SessionProgressTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "session_progress",
		Description: "Moves the session to the next stage when the current stage is complete and a progression holds.",
	}
}

// SessionProgressHandler executes a session progress request.
func SessionProgressHandler(reg *Registry) mcp.ToolHandlerFor[SessionProgressInput, SessionProgressResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SessionProgressInput) (*mcp.CallToolResult, SessionProgressResult, error) {
		_, span, meta, err := startToolSpan(ctx, "session_progress", attribute.String("ifr.session_id", input.SessionID))
		defer span.End()
		if err != nil {
			return nil, SessionProgressResult{}, recordError(span, fmt.Errorf("generate invocation id: %w", err))
		}
		if input.SessionID == "" {
			return nil, SessionProgressResult{}, recordError(span, fmt.Errorf("session_id is required"))
		}

		var result SessionProgressResult
		err = reg.With(input.SessionID, func(s *play.Session) error {
			result.From = s.CurrentStage().Title()
			result.Moved = s.Progress()
			result.State = sessionState(input.SessionID, s)
			return nil
		})
		if err != nil {
			return nil, SessionProgressResult{}, recordError(span, err)
		}
		span.SetAttributes(attribute.Bool("ifr.moved", result.Moved), attribute.String("ifr.stage", result.State.Stage.Title))
		meta.SessionID = input.SessionID
		return CallToolResultWithMetadata(meta), result, nil
	}
}

// SessionEndInput represents the MCP tool input for ending a session.
type SessionEndInput struct {
	SessionID string `json:"session_id" jsonschema:"session identifier"`
}

// SessionEndResult represents the MCP tool output for ending a session.
type SessionEndResult struct {
	SessionID string `json:"session_id" jsonschema:"identifier of the ended session"`
	Ended     bool   `json:"ended" jsonschema:"true once the session is dropped"`
}

// SessionEndTool defines the MCP tool schema for ending a session.
func SessionEndTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "session_end",
		Description: "Ends a play session and frees it. Later calls with its id fail.",
	}
}

// SessionEndHandler executes a session end request.
func SessionEndHandler(reg *Registry) mcp.ToolHandlerFor[SessionEndInput, SessionEndResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SessionEndInput) (*mcp.CallToolResult, SessionEndResult, error) {
		_, span, meta, err := startToolSpan(ctx, "session_end", attribute.String("ifr.session_id", input.SessionID))
		defer span.End()
		if err != nil {
			return nil, SessionEndResult{}, recordError(span, fmt.Errorf("generate invocation id: %w", err))
		}
		if input.SessionID == "" {
			return nil, SessionEndResult{}, recordError(span, fmt.Errorf("session_id is required"))
		}
		if err := reg.End(input.SessionID); err != nil {
			return nil, SessionEndResult{}, recordError(span, err)
		}
		meta.SessionID = input.SessionID
		return CallToolResultWithMetadata(meta), SessionEndResult{SessionID: input.SessionID, Ended: true}, nil
	}
}
