// Package otel bridges sessiongate metrics into an OpenTelemetry meter as
// observable counters. The bridge reads a snapshot on every collection
// cycle; it adds no overhead to the engine's write path.
package otel
