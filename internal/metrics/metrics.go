// Package metrics считает события шины уведомлений для Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmeshcher/auction-storefront/internal/events"
)

// eventsTotal считает публикации по имени события. Имена событий
// фиксированы в коде, поэтому кардинальность метки ограничена.
var eventsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_events_total",
		Help: "Total number of notifications emitted on the storefront bus.",
	},
	[]string{"event"},
)

func init() {
	prometheus.MustRegister(eventsTotal)
}

// Observe подписывает счётчик событий на все публикации шины.
func Observe(bus *events.Bus) events.Subscription {
	return bus.SubscribeAll(func(name string, _ any) {
		eventsTotal.WithLabelValues(name).Inc()
	})
}
