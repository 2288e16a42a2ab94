// Package metrics exposes Prometheus instrumentation for the HTTP API and the
// catalog cache on a private registry.
package metrics
