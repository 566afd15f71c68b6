// Package router turns one inbound message into exactly one reply. An open
// order wizard session takes precedence over whatever the classifier says;
// everything else dispatches on the detected intent. Handler failures are
// contained here, the router never returns empty text.
package router

import (
	"context"
	"fmt"
	"strings"
	"time"

	"whatsapp-orderbot/internal/common/config"
	"whatsapp-orderbot/internal/common/logger"
	"whatsapp-orderbot/internal/common/metrics"
	"whatsapp-orderbot/internal/common/observability"
	"whatsapp-orderbot/internal/handlers/faq"
	"whatsapp-orderbot/internal/handlers/order"
	"whatsapp-orderbot/internal/handlers/reject"
	"whatsapp-orderbot/internal/models"
	"whatsapp-orderbot/internal/parser"
	"whatsapp-orderbot/internal/session"
	"whatsapp-orderbot/internal/store"
)

// Archiver mirrors conversation entries to the analytics index. Optional.
type Archiver interface {
	IndexConversation(ctx context.Context, entry models.ConversationEntry) error
}

type Router struct {
	cfg      config.BotConfig
	store    store.Store
	sessions session.Store
	orders   *order.Handler
	faqs     *faq.Handler
	rejects  *reject.Handler
	archiver Archiver
	obs      *observability.Observability
	logger   logger.Logger
	now      func() time.Time
}

func New(
	cfg config.BotConfig,
	st store.Store,
	sessions session.Store,
	orders *order.Handler,
	faqs *faq.Handler,
	rejects *reject.Handler,
	archiver Archiver,
	obs *observability.Observability,
	log logger.Logger,
) *Router {
	return &Router{
		cfg:      cfg,
		store:    st,
		sessions: sessions,
		orders:   orders,
		faqs:     faqs,
		rejects:  rejects,
		archiver: archiver,
		obs:      obs,
		logger:   log.WithFields(map[string]interface{}{"component": "router"}),
		now:      time.Now,
	}
}

// Route handles one inbound message and returns the reply text.
func (r *Router) Route(ctx context.Context, msg models.Message) (reply string) {
	start := r.now()
	status := "ok"

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("panic while routing message", map[string]interface{}{
				"sender": msg.Sender,
				"panic":  fmt.Sprintf("%v", rec),
			})
			status = "panic"
			reply = errorResponse
		}
		if r.obs != nil {
			r.obs.RecordMessageProcessed(ctx, status)
			r.obs.RecordMessageDuration(ctx, r.now().Sub(start), status)
		}
	}()

	// An open wizard session wins over any classification; the message is
	// the answer to the current step.
	pending, err := r.sessions.Get(ctx, msg.Sender)
	if err != nil {
		r.logger.WithError(err).Error("session lookup failed", map[string]interface{}{"sender": msg.Sender})
	}
	if pending != nil {
		r.logConversation(ctx, msg.Sender, models.DirectionIncoming, msg.Body, "order_session")
		reply = r.orders.Continue(ctx, msg.Sender, msg.Body, pending)
		metrics.MessageHandleDuration.WithLabelValues("order_session").Observe(r.now().Sub(start).Seconds())
		r.logConversation(ctx, msg.Sender, models.DirectionOutgoing, reply, "")
		return reply
	}

	parsed := parser.Parse(msg.Body)
	metrics.MessagesProcessed.WithLabelValues(string(parsed.Intent)).Inc()
	r.logger.Info("intent detected", map[string]interface{}{
		"sender":     msg.Sender,
		"intent":     parsed.Intent,
		"confidence": parsed.Confidence,
	})
	r.logConversation(ctx, msg.Sender, models.DirectionIncoming, msg.Body, string(parsed.Intent))

	reply = r.dispatch(ctx, msg, parsed)
	if reply == "" {
		status = "empty"
		reply = errorResponse
	}

	metrics.MessageHandleDuration.WithLabelValues(string(parsed.Intent)).Observe(r.now().Sub(start).Seconds())
	r.logConversation(ctx, msg.Sender, models.DirectionOutgoing, reply, "")
	return reply
}

func (r *Router) dispatch(ctx context.Context, msg models.Message, parsed models.ParsedMessage) string {
	if parsed.Intent.IsOrderRelated() {
		return r.guard("order", func() string {
			switch parsed.Intent {
			case models.IntentOrderCreate:
				return r.orders.Create(ctx, msg.Sender, msg.Body, parsed)
			case models.IntentOrderStatus:
				return r.orders.Status(ctx, msg.Sender, msg.Body)
			default:
				return r.orders.Cancel(ctx, msg.Sender, msg.Body)
			}
		})
	}

	switch {
	case parsed.Intent.IsFaq() || parsed.Intent == models.IntentHelp:
		return r.guard("faq", func() string { return r.faqs.Handle(parsed.Intent, msg.Body) })
	case parsed.Intent == models.IntentRejectResponse:
		return r.guard("reject", func() string { return r.rejects.Handle(msg.Sender, msg.Body) })
	case parsed.Intent == models.IntentGreeting:
		return r.guard("greeting", func() string { return r.greet(ctx, msg.Sender) })
	default:
		return r.unknown(msg.Body)
	}
}

// guard converts any handler panic into the generic error response.
func (r *Router) guard(handler string, fn func() string) (reply string) {
	defer func() {
		if rec := recover(); rec != nil {
			metrics.HandlerErrors.WithLabelValues(handler).Inc()
			r.logger.Error("handler panicked", map[string]interface{}{
				"handler": handler,
				"panic":   fmt.Sprintf("%v", rec),
			})
			reply = errorResponse
		}
	}()
	return fn()
}

// greet welcomes the sender, by name when the customer row has one.
func (r *Router) greet(ctx context.Context, sender string) string {
	customer, err := r.store.GetCustomer(ctx, sender)
	if err != nil {
		r.logger.WithError(err).Warn("customer lookup failed for greeting", map[string]interface{}{
			"sender": sender,
		})
	}
	if customer != nil && customer.Name != "" && customer.Name != "Unknown" {
		return returningGreeting(r.cfg.Name, customer.Name)
	}
	return newGreeting(r.cfg.Name)
}

// unknown scans for a few helpful keywords before falling back to the generic
// nudge.
func (r *Router) unknown(body string) string {
	lower := strings.ToLower(body)

	if containsAny(lower, "price", "cost", "how much") {
		return pricingHint
	}
	if containsAny(lower, "delivery", "shipping", "when") {
		return deliveryHint
	}
	return unknownResponse
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func (r *Router) logConversation(ctx context.Context, sender, direction, body, intent string) {
	if err := r.store.LogConversation(ctx, sender, direction, body, intent); err != nil {
		r.logger.WithError(err).Warn("conversation log failed", map[string]interface{}{
			"sender":    sender,
			"direction": direction,
		})
	}
	if r.archiver == nil {
		return
	}
	entry := models.ConversationEntry{
		CustomerPhone: sender,
		Direction:     direction,
		Body:          body,
		Intent:        intent,
		CreatedAt:     r.now(),
	}
	if err := r.archiver.IndexConversation(ctx, entry); err != nil {
		r.logger.WithError(err).Warn("conversation archive failed", map[string]interface{}{
			"sender": sender,
		})
	}
}
