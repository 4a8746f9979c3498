// Package observability turns engine lifecycle hooks into Prometheus metrics
// and structured log lines.
package observability
