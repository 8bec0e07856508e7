package router

import (
	"github.com/fasthttp/routetable/routing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeMatched   = "matched"
	outcomeNotFound  = "not_found"
	outcomeNoHandler = "no_handler"
	outcomeStatic    = "static"
	outcomeRouted    = "routed"
	outcomeFallback  = "fallback"
)

// Metrics counts what the router does with requests and links.
// A nil *Metrics counts nothing.
type Metrics struct {
	dispatch *prometheus.CounterVec
	links    *prometheus.CounterVec
	swaps    prometheus.Counter
	routes   prometheus.Gauge
}

// NewMetrics registers the router metrics on the given registerer, under
// the given namespace.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		dispatch: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "dispatch_total",
			Help:      "Total number of dispatched requests by outcome",
		}, []string{"outcome"}),

		links: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "links_total",
			Help:      "Total number of generated links by outcome",
		}, []string{"outcome"}),

		swaps: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "table_swaps_total",
			Help:      "Total number of routing table replacements",
		}),

		routes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "router",
			Name:      "routes",
			Help:      "Number of routes in the served routing table",
		}),
	}
}

func (m *Metrics) dispatched(outcome string) {
	if m == nil {
		return
	}

	m.dispatch.WithLabelValues(outcome).Inc()
}

func (m *Metrics) linked(outcome string) {
	if m == nil {
		return
	}

	m.links.WithLabelValues(outcome).Inc()
}

func (m *Metrics) swapped(table *routing.Table) {
	if m == nil {
		return
	}

	m.swaps.Inc()
	m.routes.Set(float64(table.Len()))
}

// Observe sets the route gauge from the given table, e.g. the one a Router
// was created with.
func (m *Metrics) Observe(table *routing.Table) {
	if m == nil {
		return
	}

	m.routes.Set(float64(table.Len()))
}
