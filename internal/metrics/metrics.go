package metrics

import (
	"sync"

	"globeswap/internal/events"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ListingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "globeswap_listings_created_total", Help: "Total listings created"},
	)
	ListingsUpdated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "globeswap_listings_updated_total", Help: "Total listings updated"},
	)
	ListingsDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "globeswap_listings_deleted_total", Help: "Total listings deleted"},
	)
	InteractionsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "globeswap_interactions_created_total", Help: "Total interactions sent"},
	)
	InteractionTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "globeswap_interaction_transitions_total",
			Help: "Total interaction status decisions by resulting status",
		},
		[]string{"status"},
	)
	DomainErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "globeswap_domain_errors_total",
			Help: "Total request errors by error kind",
		},
		[]string{"kind"},
	)
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			ListingsCreated,
			ListingsUpdated,
			ListingsDeleted,
			InteractionsCreated,
			InteractionTransitions,
			DomainErrors,
		)
	})
}

// HandleEvent counts domain events published on the event bus.
func HandleEvent(event events.Event) error {
	switch event.Type {
	case events.LISTING_CREATED:
		ListingsCreated.Inc()
	case events.LISTING_UPDATED:
		ListingsUpdated.Inc()
	case events.LISTING_DELETED:
		ListingsDeleted.Inc()
	case events.INTERACTION_CREATED:
		InteractionsCreated.Inc()
	case events.INTERACTION_STATUS_CHANGED:
		status, _ := event.Data["status"].(string)
		InteractionTransitions.WithLabelValues(status).Inc()
	}
	return nil
}

// Subscribe attaches HandleEvent to every domain channel. Only events this
// instance published are counted, so series summed across instances count
// each event once.
func Subscribe(bus *events.EventBus) error {
	for _, channel := range []events.Channel{events.LISTING_CHANNEL, events.INTERACTION_CHANNEL} {
		if err := bus.SubscribeLocal(channel, HandleEvent); err != nil {
			return err
		}
	}
	return nil
}
