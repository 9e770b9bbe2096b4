// Package pkg provides shared utilities for the softport stack.
//
// This package contains functionality used by the port handles, the HAL
// implementations and the command-line tool:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Sentinel errors for port and HAL failures
//   - Component identifiers for log filtering
//
// # Logging
//
// The logging subsystem wraps [log/slog] with a component attribute:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentPort, "port initialized", "port", "Port1")
//
// # Errors
//
// HAL failures surface as sentinel values:
//
//	if errors.Is(err, pkg.ErrInvalidPort) {
//	    // Port name not known to this HAL
//	}
package pkg
