// Package order handles order creation, status checks and cancellations. The
// creation flow has two paths: a single message carrying at least three of the
// four required fields is committed immediately, anything else opens the
// step-by-step wizard backed by the session store.
package order

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	stderrors "whatsapp-orderbot/internal/common/errors"
	"whatsapp-orderbot/internal/common/logger"
	"whatsapp-orderbot/internal/common/metrics"
	"whatsapp-orderbot/internal/models"
	"whatsapp-orderbot/internal/parser"
	"whatsapp-orderbot/internal/session"
	"whatsapp-orderbot/internal/store"
)

const errGenericText = "❌ Sorry, I encountered an error processing your order request. Please try again."

// Notifier sends an out-of-band order confirmation. Implemented by the notify
// package; nil disables confirmations.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, order *models.Order, email string) error
}

type Handler struct {
	store    store.Store
	sessions session.Store
	notifier Notifier
	logger   logger.Logger
	now      func() time.Time
	newID    func() string
}

func NewHandler(st store.Store, sessions session.Store, notifier Notifier, log logger.Logger) *Handler {
	return &Handler{
		store:    st,
		sessions: sessions,
		notifier: notifier,
		logger:   log.WithFields(map[string]interface{}{"handler": "order"}),
		now:      time.Now,
		newID:    newOrderID,
	}
}

func newOrderID() string {
	return "ORD-" + strings.ToUpper(uuid.New().String()[:8])
}

// Create handles an order_create message from a sender with no open wizard
// session.
func (h *Handler) Create(ctx context.Context, sender, body string, parsed models.ParsedMessage) string {
	if isCompleteOrder(body) {
		return h.createFromMessage(ctx, sender, body, parsed)
	}

	pending := session.NewPendingOrder(h.now())
	if err := h.sessions.Put(ctx, sender, pending); err != nil {
		h.logger.WithError(err).Error("failed to open order session", map[string]interface{}{"sender": sender})
		return errGenericText
	}
	return wizardStartText
}

// isCompleteOrder reports whether the message names at least three of the four
// required fields.
func isCompleteOrder(body string) bool {
	lower := strings.ToLower(body)
	found := 0
	for _, field := range []string{"product", "name", "phone", "address"} {
		if strings.Contains(lower, field) {
			found++
		}
	}
	return found >= 3
}

func (h *Handler) createFromMessage(ctx context.Context, sender, body string, parsed models.ParsedMessage) string {
	details := parser.ExtractOrderDetails(body)

	quantity, err := strconv.Atoi(details.Quantity)
	if err != nil || quantity <= 0 {
		quantity = 1
	}

	customerPhone := details.CustomerPhone
	if customerPhone == "" {
		customerPhone = sender
	}

	bag := map[string]interface{}{
		"customer_name":   details.CustomerName,
		"customer_phone":  customerPhone,
		"address":         details.Address,
		"notes":           details.Notes,
		"created_via":     "whatsapp",
		"agent_processed": true,
	}
	if err := validateDetails(bag); err != nil {
		h.logger.WithError(err).Error("order details failed validation", map[string]interface{}{"sender": sender})
		return errProcessText
	}

	if err := h.ensureCustomer(ctx, sender, details.CustomerName); err != nil {
		h.logger.WithError(err).Error("failed to ensure customer", map[string]interface{}{"sender": sender})
		return errCreateText
	}

	product := details.Product
	if product == "" {
		product = "Product not specified"
	}
	order := &models.Order{
		OrderID:       h.newID(),
		CustomerPhone: sender,
		Product:       product,
		Quantity:      quantity,
		Details:       bag,
	}
	if err := h.store.CreateOrder(ctx, order); err != nil {
		h.logger.WithError(err).Error("failed to create order", map[string]interface{}{"sender": sender})
		return errCreateText
	}

	metrics.OrdersCreated.WithLabelValues("whatsapp").Inc()
	h.logger.Info("order created", map[string]interface{}{
		"orderId": order.OrderID,
		"sender":  sender,
	})
	h.sendConfirmation(ctx, order, parsed.Entities["email"])

	return confirmationText(order.OrderID, map[string]string{
		"product":        details.Product,
		"customer_name":  details.CustomerName,
		"customer_phone": customerPhone,
		"address":        details.Address,
	})
}

// ensureCustomer creates the customer row on first contact. An order that
// carries a real name replaces the placeholder left by an earlier contact.
func (h *Handler) ensureCustomer(ctx context.Context, sender, name string) error {
	customer, err := h.store.GetCustomer(ctx, sender)
	if err != nil {
		return err
	}
	if customer != nil {
		if name != "" && (customer.Name == "" || customer.Name == "Unknown") {
			customer.Name = name
			return h.store.UpdateCustomer(ctx, customer)
		}
		return nil
	}
	if name == "" {
		name = "Unknown"
	}
	return h.store.CreateCustomer(ctx, sender, name, map[string]interface{}{"source": "whatsapp_order"})
}

func (h *Handler) sendConfirmation(ctx context.Context, order *models.Order, emails []string) {
	if h.notifier == nil {
		return
	}
	email := ""
	if len(emails) > 0 {
		email = emails[0]
	}
	if err := h.notifier.SendOrderConfirmation(ctx, order, email); err != nil {
		h.logger.WithError(err).Warn("order confirmation not sent", map[string]interface{}{
			"orderId":   order.OrderID,
			"retryable": stderrors.IsRetryable(err),
		})
	}
}

// Status answers order_status messages, for one order when an id is present
// and with the recent order list otherwise.
func (h *Handler) Status(ctx context.Context, sender, body string) string {
	if id := parser.ExtractOrderID(body); id != "" {
		orderID := "ORD-" + id
		order, err := h.store.GetOrder(ctx, orderID)
		if err != nil {
			h.logger.WithError(err).Error("order lookup failed", map[string]interface{}{"orderId": orderID})
			return errGenericText
		}
		if order == nil {
			return fmt.Sprintf("❌ Order %s not found. Please check the order number and try again.", orderID)
		}
		return orderStatusText(order)
	}

	orders, err := h.store.GetCustomerOrders(ctx, sender)
	if err != nil {
		h.logger.WithError(err).Error("order list failed", map[string]interface{}{"sender": sender})
		return errGenericText
	}
	if len(orders) == 0 {
		return noOrdersText
	}
	return orderListText(orders)
}

// Cancel handles order_cancel messages. Without an order id it lists the
// sender's cancellable orders instead.
func (h *Handler) Cancel(ctx context.Context, sender, body string) string {
	id := parser.ExtractOrderID(body)
	if id == "" {
		return h.listCancellable(ctx, sender)
	}

	orderID := "ORD-" + id
	order, err := h.store.GetOrder(ctx, orderID)
	if err != nil {
		h.logger.WithError(err).Error("order lookup failed", map[string]interface{}{"orderId": orderID})
		return errGenericText
	}
	if order == nil {
		return fmt.Sprintf("❌ Order %s not found.", orderID)
	}
	if order.CustomerPhone != sender {
		return "❌ You can only cancel your own orders."
	}

	reason := "Customer request via WhatsApp"
	if lower := strings.ToLower(body); strings.Contains(lower, "reason:") {
		reason = strings.TrimSpace(strings.SplitN(lower, "reason:", 2)[1])
	}

	ok, msg, err := h.store.CancelOrder(ctx, orderID, reason)
	if err != nil {
		h.logger.WithError(err).Error("cancellation failed", map[string]interface{}{"orderId": orderID})
		return errGenericText
	}
	if !ok {
		return "❌ **Cannot Cancel Order**\n\n" + msg
	}

	metrics.OrdersCancelled.Inc()
	h.logger.Info("order cancelled", map[string]interface{}{
		"orderId": orderID,
		"reason":  reason,
	})
	return cancelConfirmationText(orderID, reason)
}

func (h *Handler) listCancellable(ctx context.Context, sender string) string {
	orders, err := h.store.GetCustomerOrders(ctx, sender)
	if err != nil {
		h.logger.WithError(err).Error("order list failed", map[string]interface{}{"sender": sender})
		return errGenericText
	}

	var cancellable []models.Order
	for _, order := range orders {
		if !order.Status.IsTerminal() {
			cancellable = append(cancellable, order)
		}
	}
	if len(cancellable) == 0 {
		return "❌ You don't have any orders that can be cancelled."
	}
	return cancellableOrdersText(cancellable)
}

// Help is the fallback for order-ish messages no operation matched.
func (h *Handler) Help() string {
	return orderHelpText
}
