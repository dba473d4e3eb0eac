package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CommandRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slash_command_requests_total",
		Help: "Total number of application command REST requests",
	}, []string{"operation", "status"})

	CommandRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "slash_command_request_duration_seconds",
		Help:    "Duration of application command REST requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "status"})

	InteractionsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slash_interactions_dispatched_total",
		Help: "Total number of command interactions seen by the dispatcher",
	}, []string{"result"})

	RegisteredHandlers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slash_registered_handlers",
		Help: "Number of command names with a bound handler",
	})

	DiscordMessagesSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "discord_messages_sent_total",
		Help: "Total number of interaction responses sent",
	}, []string{"command", "status"})

	GuildSettingsQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "guild_settings_queries_total",
		Help: "Total number of guild settings database queries",
	}, []string{"query", "status"})
)
