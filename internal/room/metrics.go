package room

import "github.com/prometheus/client_golang/prometheus"

var (
	roomsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rooms_created_total",
		Help: "Total rooms created",
	})
	matchesStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "matches_started_total",
		Help: "Total matches that reached the playing state",
	})
	matchesFinished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "matches_finished_total",
		Help: "Total finished matches by result reason",
	}, []string{"reason"})
	actionsAccepted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "actions_accepted_total",
		Help: "Total accepted player actions by type",
	}, []string{"action"})
	actionsRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "actions_rejected_total",
		Help: "Total rejected player actions (out of turn, invalid target)",
	})
	activeRooms = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "active_rooms",
		Help: "Rooms currently held in memory",
	})
)

func init() {
	prometheus.MustRegister(roomsCreated, matchesStarted, matchesFinished,
		actionsAccepted, actionsRejected, activeRooms)
}
