package pkgmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultNamespace prefixes every collector name.
const DefaultNamespace = "gonav"

// Navigation outcomes recorded by NavigationDone.
const (
	OutcomeSuccess    = "success"
	OutcomeFallback   = "fallback"
	OutcomeCanceled   = "canceled"
	OutcomeSuperseded = "superseded"
	OutcomeError      = "error"
)

// Navigation collects router and fetcher metrics.
type Navigation struct {
	navigations   *prometheus.CounterVec
	cacheLookups  *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
}

// NewNavigation registers the navigation collectors on reg. A nil reg falls
// back to prometheus.DefaultRegisterer.
func NewNavigation(reg prometheus.Registerer, namespace string) *Navigation {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}

	factory := promauto.With(reg)

	return &Navigation{
		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "navigations_total",
			Help:      "Total number of navigations by outcome",
		}, []string{"outcome"}),

		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "cache_lookups_total",
			Help:      "Page cache lookups by result",
		}, []string{"result"}),

		fetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "duration_seconds",
			Help:      "Page fetch duration in seconds",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"outcome"}),
	}
}

// NavigationDone counts a finished navigation.
func (n *Navigation) NavigationDone(outcome string) {
	n.navigations.WithLabelValues(outcome).Inc()
}

// CacheLookup counts a page cache hit or miss.
func (n *Navigation) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	n.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveFetch records how long a fetch took and how it ended.
func (n *Navigation) ObserveFetch(outcome string, d time.Duration) {
	n.fetchDuration.WithLabelValues(outcome).Observe(d.Seconds())
}
