package domain

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
)

// ScenarioDescribeInput represents the MCP tool input for describing the scenario.
type ScenarioDescribeInput struct{}

// ScenarioDescribeResult represents the MCP tool output for describing the scenario.
type ScenarioDescribeResult struct {
	Title     string         `json:"title" jsonschema:"scenario title"`
	Link      string         `json:"link,omitempty" jsonschema:"scenario link"`
	Image     string         `json:"image,omitempty" jsonschema:"scenario image"`
	Variables []VariableView `json:"variables" jsonschema:"variables with their default values"`
	Stages    []StageSummary `json:"stages" jsonschema:"stages in declaration order, the first is the start"`
}

// ScenarioDescribeTool defines the MCP tool schema for describing the scenario.
func ScenarioDescribeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "scenario_describe",
		Description: "Describes the served scenario: variables, stages, event spaces and progressions.",
	}
}

// ScenarioDescribeHandler executes a scenario describe request.
func ScenarioDescribeHandler(reg *Registry) mcp.ToolHandlerFor[ScenarioDescribeInput, ScenarioDescribeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ ScenarioDescribeInput) (*mcp.CallToolResult, ScenarioDescribeResult, error) {
		scn := reg.Scenario()
		_, span, meta, err := startToolSpan(ctx, "scenario_describe", attribute.String("ifr.scenario", scn.Title()))
		defer span.End()
		if err != nil {
			return nil, ScenarioDescribeResult{}, recordError(span, err)
		}

		result := ScenarioDescribeResult{
			Title:     scn.Title(),
			Link:      scn.Link(),
			Image:     scn.Image(),
			Variables: []VariableView{},
			Stages:    []StageSummary{},
		}
		for _, v := range scn.Variables() {
			result.Variables = append(result.Variables, variableView(v, v.Default()))
		}
		for _, st := range scn.Stages() {
			result.Stages = append(result.Stages, stageSummary(st))
		}
		return CallToolResultWithMetadata(meta), result, nil
	}
}
