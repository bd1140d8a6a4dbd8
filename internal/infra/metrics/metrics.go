package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_updates_total",
		Help: "Processed Telegram updates by type.",
	}, []string{"type"})

	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_commands_total",
		Help: "Handled bot commands.",
	}, []string{"command"})

	RedemptionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_invite_redemptions_total",
		Help: "Invite redemption outcomes.",
	}, []string{"result"})

	InvitesIssuedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_invites_issued_total",
		Help: "Issued invite codes by granted role.",
	}, []string{"role"})

	HandlerDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bot_handler_duration_seconds",
		Help:    "Update handling latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"handler"})
)
