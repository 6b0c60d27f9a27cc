// Package observability exposes traversal health as Prometheus metrics.
// The core stays metrics-free; the engine's hooks are bound to a Metrics
// instance by whoever composes the application.
package observability
