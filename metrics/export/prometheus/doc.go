// Package prometheus renders sessiongate metrics in Prometheus text
// exposition format. The renderer is dependency-free: it writes the format
// directly from a metrics snapshot.
package prometheus
