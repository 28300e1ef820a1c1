package domain

import (
	"context"
	"fmt"

	"github.com/OtherAytay/IFR/internal/ifr/play"
	"github.com/OtherAytay/IFR/internal/ifr/scenario"
	apperrors "github.com/OtherAytay/IFR/internal/platform/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
)

// VariableSetInput represents the MCP tool input for setting a variable.
type VariableSetInput struct {
	SessionID string `json:"session_id" jsonschema:"session identifier"`
	Name      string `json:"name" jsonschema:"variable name"`
	Value     any    `json:"value" jsonschema:"new value matching the variable type"`
}

// VariableSetResult represents the MCP tool output for setting a variable.
type VariableSetResult struct {
	Variable VariableView `json:"variable" jsonschema:"variable after the update"`
}

// VariableSetTool defines the MCP tool schema for setting a variable.
func VariableSetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "variable_set",
		Description: "Sets a session variable. Values outside the variable bounds are rejected.",
	}
}

// VariableSetHandler executes a variable set request.
func VariableSetHandler(reg *Registry) mcp.ToolHandlerFor[VariableSetInput, VariableSetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input VariableSetInput) (*mcp.CallToolResult, VariableSetResult, error) {
		_, span, meta, err := startToolSpan(ctx, "variable_set",
			attribute.String("ifr.session_id", input.SessionID),
			attribute.String("ifr.variable", input.Name),
		)
		defer span.End()
		if err != nil {
			return nil, VariableSetResult{}, recordError(span, fmt.Errorf("generate invocation id: %w", err))
		}

		var result VariableSetResult
		err = reg.With(input.SessionID, func(s *play.Session) error {
			state := s.Variable(input.Name)
			if state == nil {
				return notFound("variable", input.Name)
			}
			value, err := scenario.ValueFromAny(state.Variable().Type(), input.Value)
			if err != nil {
				return err
			}
			if !state.SetValue(value) {
				return apperrors.WithMetadata(apperrors.CodeVariableValueOutOfBounds,
					fmt.Sprintf("value %s is outside the bounds of %s", value, input.Name),
					map[string]string{"Name": input.Name, "Value": value.String()})
			}
			result.Variable = variableView(state.Variable(), state.Value())
			return nil
		})
		if err != nil {
			return nil, VariableSetResult{}, recordError(span, err)
		}
		meta.SessionID = input.SessionID
		return CallToolResultWithMetadata(meta), result, nil
	}
}
