package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/OtherAytay/IFR/internal/ifr/play"
	"github.com/OtherAytay/IFR/internal/ifr/scenario"
	"github.com/OtherAytay/IFR/internal/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "IFR Scenario MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
	// defaultHTTPAddr is the loopback address used when HTTPAddr is empty.
	defaultHTTPAddr = "localhost:8081"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP serves the streamable HTTP transport.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	HTTPAddr  string // HTTP server address. Defaults to localhost:8081.
	// SessionTTL drops sessions idle for longer. Zero keeps them until
	// session_end.
	SessionTTL time.Duration
}

// Server hosts one scenario over MCP.
type Server struct {
	mcpServer *mcp.Server
	registry  *domain.Registry
}

// New creates a configured MCP server over scn. Sessions are built with opts.
func New(scn *scenario.Scenario, opts ...play.Option) (*Server, error) {
	if scn == nil {
		return nil, fmt.Errorf("scenario is required")
	}
	if err := scn.Validate(); err != nil {
		return nil, fmt.Errorf("validate scenario: %w", err)
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	registry := domain.NewRegistry(scn, opts...)
	registerTools(mcpServer, registry)

	return &Server{mcpServer: mcpServer, registry: registry}, nil
}

func registerTools(server *mcp.Server, reg *domain.Registry) {
	mcp.AddTool(server, domain.ScenarioDescribeTool(), domain.ScenarioDescribeHandler(reg))
	mcp.AddTool(server, domain.SessionStartTool(), domain.SessionStartHandler(reg))
	mcp.AddTool(server, domain.SessionStateTool(), domain.SessionStateHandler(reg))
	mcp.AddTool(server, domain.SessionProgressTool(), domain.SessionProgressHandler(reg))
	mcp.AddTool(server, domain.SessionEndTool(), domain.SessionEndHandler(reg))
	mcp.AddTool(server, domain.EventRollTool(), domain.EventRollHandler(reg))
	mcp.AddTool(server, domain.EventCompleteTool(), domain.EventCompleteHandler(reg))
	mcp.AddTool(server, domain.VariableSetTool(), domain.VariableSetHandler(reg))
}

// Run creates and serves the MCP server until the context ends.
func Run(ctx context.Context, cfg Config, scn *scenario.Scenario) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	server, err := New(scn)
	if err != nil {
		return err
	}
	server.registry.SetIdleTTL(cfg.SessionTTL)

	switch cfg.Transport {
	case TransportStdio:
		return server.Serve(ctx)
	case TransportHTTP:
		addr := cfg.HTTPAddr
		if addr == "" {
			addr = defaultHTTPAddr
		}
		return server.ServeHTTP(ctx, addr)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// Serve starts the MCP server on stdio and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// serveWithTransport starts the MCP server using the provided transport.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
