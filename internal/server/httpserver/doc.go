// Package httpserver provides the admin HTTP endpoint for Kyoto.
//
// It uses the standard library net/http and serves:
//
//   - Health endpoints: /healthz, /readyz
//   - Metrics: /metrics (Prometheus text format)
//   - Introspection: /info (INFO report as text), /stats (data statistics as JSON)
//
// Middleware chain: Recover, RequestID, ClientIP, NetworkACL, RateLimit, AccessLog.
// Forwarding headers are only read from admin.trusted_proxies peers.
// Clients do not read or write keys over HTTP.
package httpserver
