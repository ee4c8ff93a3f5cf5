package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CatalogLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_catalog_loads_total",
			Help: "Catalog load cycles by the source that served them",
		},
		[]string{"source"},
	)

	CatalogSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_catalog_games",
			Help: "Number of games in the current catalog",
		},
	)

	AssistantRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_assistant_requests_total",
			Help: "Assistant exchanges by outcome (ok, fallback, busy)",
		},
		[]string{"outcome"},
	)

	CartAdds = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_cart_adds_total",
			Help: "Games newly added to a cart",
		},
	)

	PaymentHandoffs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_payment_handoffs_total",
			Help: "Payment views opened, by kind (single, all)",
		},
		[]string{"kind"},
	)

	BreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "storefront_circuit_breaker_state",
			Help: "Current state of an outbound circuit breaker (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

func init() {
	prometheus.MustRegister(CatalogLoads, CatalogSize, AssistantRequests, CartAdds, PaymentHandoffs, BreakerState)
}

// Handler exposes the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
