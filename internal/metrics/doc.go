// Package metrics provides Prometheus collectors for the orchestration loop
// and local text features used by telemetry.
package metrics
