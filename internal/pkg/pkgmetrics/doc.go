// Package pkgmetrics holds the Prometheus collectors for navigation.
//
// Collectors are registered on an injected prometheus.Registerer so tests
// and the application can each use their own registry.
package pkgmetrics
