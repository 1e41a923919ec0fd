// Package internaldefs holds the shared counter definitions consumed by the
// Prometheus and OTel exporters. It exists so both exporters render the same
// names and help strings without duplicating the table.
package internaldefs
