package config

import (
	"fmt"
	"os"
)

// Exitf prints a formatted message to stderr and terminates with status 1.
// Entry points in cmd/ use it for unrecoverable startup and run failures.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
