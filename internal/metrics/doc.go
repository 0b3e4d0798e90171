// Package metrics records operation counts, latencies and memory usage in a
// Prometheus registry owned by the application. The registry can be dumped to
// a text file in the exposition format for node_exporter's textfile
// collector.
package metrics
