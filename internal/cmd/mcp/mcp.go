// Package mcp parses MCP command flags and serves a Lua scenario over stdio or HTTP.
package mcp

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/OtherAytay/IFR/internal/ifr/luascript"
	"github.com/OtherAytay/IFR/internal/mcp/service"
	platformcmd "github.com/OtherAytay/IFR/internal/platform/cmd"
)

// Config holds MCP command configuration.
type Config struct {
	Scenario   string        `env:"IFR_SCENARIO_FILE"`
	HTTPAddr   string        `env:"IFR_MCP_HTTP_ADDR"   envDefault:"localhost:8081"`
	Transport  string        `env:"IFR_MCP_TRANSPORT"   envDefault:"stdio"`
	SessionTTL time.Duration `env:"IFR_MCP_SESSION_TTL" envDefault:"1h"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "path to scenario lua file")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "drop sessions idle for longer (0 keeps them)")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run loads the scenario and starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Scenario == "" {
		return errors.New("scenario path is required")
	}
	scn, err := luascript.LoadFile(cfg.Scenario)
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}

	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceMCP, func(ctx context.Context) error {
		return service.Run(ctx, service.Config{
			Transport:  service.TransportKind(cfg.Transport),
			HTTPAddr:   cfg.HTTPAddr,
			SessionTTL: cfg.SessionTTL,
		}, scn)
	})
}
