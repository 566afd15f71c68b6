package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_messages_processed_total",
			Help: "Total number of inbound messages processed, by detected intent",
		},
		[]string{"intent"},
	)

	HandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_handler_errors_total",
			Help: "Total number of handler failures converted to apology responses",
		},
		[]string{"handler"},
	)

	MessageHandleDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "bot_message_handle_duration_seconds",
			Help: "Duration of message handling in seconds",
		},
		[]string{"intent"},
	)

	OrdersCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_orders_created_total",
			Help: "Total number of orders created, by creation channel",
		},
		[]string{"via"},
	)

	OrdersCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_orders_cancelled_total",
			Help: "Total number of orders cancelled through the bot",
		},
	)

	Rejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_rejections_total",
			Help: "Total number of rejection messages, by rejection type",
		},
		[]string{"type"},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bot_pending_order_sessions",
			Help: "Number of pending order wizard sessions currently open",
		},
	)
)
