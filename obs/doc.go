// Package obs wires observability for relabuf binaries: zerolog setup, an
// HTTP access log middleware, and a Prometheus implementation of
// buffer.StatsCollector.
package obs
