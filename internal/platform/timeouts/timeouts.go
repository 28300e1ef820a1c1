// Package timeouts defines the timeouts shared by the IFR binaries.
package timeouts

import "time"

// ReadHeader limits how long the MCP HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the MCP HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// TelemetryShutdown limits how long a binary waits for pending spans to flush.
const TelemetryShutdown = 5 * time.Second
