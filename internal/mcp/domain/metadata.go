package domain

import (
	"context"

	"github.com/OtherAytay/IFR/internal/platform/id"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// InvocationIDKey names the invocation identifier in tool result metadata.
	InvocationIDKey = "x-ifr-invocation-id"
	// SessionIDKey names the play session identifier in tool result metadata.
	SessionIDKey = "x-ifr-session-id"

	tracerName = "github.com/OtherAytay/IFR/internal/mcp"
)

// ToolCallMetadata carries correlation identifiers for MCP tool calls.
type ToolCallMetadata struct {
	InvocationID string
	SessionID    string
}

// NewInvocationID generates an invocation identifier for a tool call.
func NewInvocationID() (string, error) {
	return id.NewID()
}

// CallToolResultWithMetadata builds a tool result with correlation metadata.
func CallToolResultWithMetadata(meta ToolCallMetadata) *mcp.CallToolResult {
	result := &mcp.CallToolResult{
		Meta: map[string]any{
			InvocationIDKey: meta.InvocationID,
		},
	}
	if meta.SessionID != "" {
		result.Meta[SessionIDKey] = meta.SessionID
	}
	return result
}

// startToolSpan opens a span for one tool call and allocates its invocation
// id. The caller must end the span.
func startToolSpan(ctx context.Context, tool string, attrs ...attribute.KeyValue) (context.Context, trace.Span, ToolCallMetadata, error) {
	invocationID, err := NewInvocationID()
	if err != nil {
		return ctx, trace.SpanFromContext(ctx), ToolCallMetadata{}, err
	}
	attrs = append(attrs,
		attribute.String("mcp.tool", tool),
		attribute.String("ifr.invocation_id", invocationID),
	)
	ctx, span := otel.Tracer(tracerName).Start(ctx, "mcp."+tool, trace.WithAttributes(attrs...))
	return ctx, span, ToolCallMetadata{InvocationID: invocationID}, nil
}

// recordError marks span as failed and returns err.
func recordError(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
