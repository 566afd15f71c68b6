package order

import (
	"context"
	"strings"

	"whatsapp-orderbot/internal/common/metrics"
	"whatsapp-orderbot/internal/models"
	"whatsapp-orderbot/internal/session"
)

// stepField maps each wizard step to the detail field its answer fills.
var stepField = map[session.Step]string{
	session.StepProduct: "product",
	session.StepName:    "customer_name",
	session.StepPhone:   "customer_phone",
	session.StepAddress: "address",
}

// Continue records the sender's answer for the current wizard step and either
// asks the next question or commits the finished order. Any failure tears the
// session down so the sender can start over cleanly.
func (h *Handler) Continue(ctx context.Context, sender, body string, pending *session.PendingOrder) string {
	field, ok := stepField[pending.Step]
	if !ok {
		h.abandonSession(ctx, sender)
		return errRestartText
	}
	pending.Fields[field] = strings.TrimSpace(body)

	next := pending.Step.Next()
	if next == "" {
		return h.commitWizard(ctx, sender, pending)
	}

	pending.Step = next
	if err := h.sessions.Put(ctx, sender, pending); err != nil {
		h.logger.WithError(err).Error("failed to save order session", map[string]interface{}{"sender": sender})
		h.abandonSession(ctx, sender)
		return errRestartText
	}
	return wizardStepText(next)
}

func (h *Handler) commitWizard(ctx context.Context, sender string, pending *session.PendingOrder) string {
	// The session is finished either way; a failed commit must not trap the
	// sender in the address step.
	h.abandonSession(ctx, sender)

	bag := map[string]interface{}{
		"product":         pending.Fields["product"],
		"customer_name":   pending.Fields["customer_name"],
		"customer_phone":  pending.Fields["customer_phone"],
		"address":         pending.Fields["address"],
		"created_via":     "whatsapp_guided",
		"agent_processed": true,
	}
	if err := validateDetails(bag); err != nil {
		h.logger.WithError(err).Error("guided order details failed validation", map[string]interface{}{"sender": sender})
		return errCreateText
	}

	if err := h.ensureCustomer(ctx, sender, pending.Fields["customer_name"]); err != nil {
		h.logger.WithError(err).Error("failed to ensure customer", map[string]interface{}{"sender": sender})
		return errCreateText
	}

	order := &models.Order{
		OrderID:       h.newID(),
		CustomerPhone: sender,
		Product:       pending.Fields["product"],
		Quantity:      1,
		Details:       bag,
	}
	if err := h.store.CreateOrder(ctx, order); err != nil {
		h.logger.WithError(err).Error("failed to create guided order", map[string]interface{}{"sender": sender})
		return errCreateText
	}

	metrics.OrdersCreated.WithLabelValues("whatsapp_guided").Inc()
	h.logger.Info("guided order created", map[string]interface{}{
		"orderId": order.OrderID,
		"sender":  sender,
	})
	h.sendConfirmation(ctx, order, nil)

	return confirmationText(order.OrderID, pending.Fields)
}

func (h *Handler) abandonSession(ctx context.Context, sender string) {
	if err := h.sessions.Delete(ctx, sender); err != nil {
		h.logger.WithError(err).Warn("failed to delete order session", map[string]interface{}{"sender": sender})
	}
}
