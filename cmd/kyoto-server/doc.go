// Package main provides the entry point for kyoto-server.
//
// The server owns one shared command core and exposes it through:
//
//   - an admin HTTP endpoint (/healthz, /readyz, /metrics, /info, /stats)
//   - a local Unix socket accepting one command per line
//
// Usage:
//
//	kyoto-server [flags]
//	kyoto-server --config /path/to/config.yaml
//
// Changes to the config file are watched; a new log level applies without
// a restart.
package main
