// Package metric provides Prometheus metrics for Kyoto.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: Registry of command metrics and the HTTP handler
//   - collector.go: Collector reading the stored key count at scrape time
//
// Metrics are exposed at /metrics in Prometheus text format. Each Registry
// owns its own prometheus.Registry, so tests can create as many as they
// need without duplicate registration panics.
package metric
