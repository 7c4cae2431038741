// Package handler provides the admin HTTP request handlers.
//
//   - health.go: liveness and readiness checks
//   - info.go: INFO report and data statistics
//
// JSON responses share the Response envelope; /info and /metrics are plain
// text.
package handler
