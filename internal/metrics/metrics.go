// Package metrics holds the prometheus collectors textroom exposes on
// GET /metrics. This is additive instrumentation the teacher repo has no
// equivalent of; it is grounded in RoseWrightdev-Video-Conferencing's use of
// prometheus/client_golang.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RoomsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "textroom_rooms_created_total",
		Help: "Total rooms created via the service actor.",
	})

	RoomsDestroyed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "textroom_rooms_destroyed_total",
		Help: "Total rooms destroyed (moderator call or socket request).",
	})

	MessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "textroom_messages_total",
		Help: "Total announcements and user messages broadcast, by kind.",
	}, []string{"kind"})

	WebhookFailures = counterNoLabels("textroom_webhook_failures_total",
		"Total webhook POST attempts that did not complete with a 200 response.")

	ActiveRooms = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "textroom_active_rooms",
		Help: "Current number of non-destroyed rooms.",
	})

	ActiveClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "textroom_active_clients",
		Help: "Current number of connected client actors, summed across rooms.",
	})
)

func counterNoLabels(name, help string) prometheus.Counter {
	return promauto.NewCounter(prometheus.CounterOpts{Name: name, Help: help})
}
