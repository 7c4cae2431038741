// Package logger provides structured logging for Kyoto.
//
// It wraps log/slog:
//
//   - logger.go: Logger interface, configuration, global default
//   - context.go: Context-aware logging with request IDs
//   - redact.go: Sensitive attribute redaction
//
// The level is held in a shared slog.LevelVar so SetLevel takes effect on
// every logger created by New, including ones already handed out. This is
// how kyoto-server applies log level changes from a reloaded config file.
package logger
