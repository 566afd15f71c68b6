package order

import (
	"fmt"
	"strings"

	"whatsapp-orderbot/internal/models"
	"whatsapp-orderbot/internal/session"
)

var statusEmoji = map[models.OrderStatus]string{
	models.OrderStatusPending:    "⏳",
	models.OrderStatusProcessing: "🔄",
	models.OrderStatusShipped:    "🚚",
	models.OrderStatusDelivered:  "✅",
	models.OrderStatusCancelled:  "❌",
}

const (
	errCreateText  = "❌ Sorry, there was an error creating your order. Please try again."
	errProcessText = "❌ Sorry, I couldn't process your order. Please check the format and try again."
	errRestartText = "❌ Sorry, there was an error. Let's start over. Type *order* to begin again."
)

const wizardStartText = `📦 **Let's create your order!**

I'll help you step by step.

**Step 1: What would you like to order?**
Please tell me the product/service you want.

*Examples:*
• 2 laptops
• 1 smartphone
• Office chair

What would you like to order? 🛍️`

// wizardStepText acknowledges the answer just recorded and asks for the next
// field.
func wizardStepText(next session.Step) string {
	switch next {
	case session.StepName:
		return `✅ **Product recorded!**

**Step 2: Your name**
Please provide your full name for the order.

*Example:* John Doe`
	case session.StepPhone:
		return `✅ **Name recorded!**

**Step 3: Contact number**
Please provide your phone number.

*Example:* +1-555-0123`
	case session.StepAddress:
		return `✅ **Phone recorded!**

**Step 4: Delivery address**
Please provide your complete delivery address.

*Example:* 123 Main St, Apt 4B, New York, NY 10001`
	default:
		return ""
	}
}

func confirmationText(orderID string, fields map[string]string) string {
	get := func(key string) string {
		if v := fields[key]; v != "" {
			return v
		}
		return "N/A"
	}

	return fmt.Sprintf(`✅ **Order Created Successfully!**

**Order ID:** %s
**Product:** %s
**Customer:** %s
**Phone:** %s
**Address:** %s

**Status:** Processing
**Estimated Delivery:** 2-3 business days

📱 You'll receive updates via WhatsApp
📧 Confirmation email will be sent if provided

**Need help?**
• Type *status %s* to check status
• Type *contact* for support

Thank you for your order! 🎉`,
		orderID, get("product"), get("customer_name"), get("customer_phone"), get("address"),
		strings.TrimPrefix(orderID, "ORD-"))
}

func orderStatusText(order *models.Order) string {
	emoji, ok := statusEmoji[order.Status]
	if !ok {
		emoji = "📦"
	}

	return fmt.Sprintf(`%s **Order Status**

**Order ID:** %s
**Product:** %s
**Quantity:** %d
**Status:** %s
**Created:** %s

Need help? Type *contact* or *help*`,
		emoji, order.OrderID, order.Product, order.Quantity,
		titleCase(string(order.Status)), order.CreatedAt.Format("2006-01-02"))
}

func orderListText(orders []models.Order) string {
	var lines []string
	for i, order := range orders {
		if i == 5 {
			break
		}
		emoji, ok := statusEmoji[order.Status]
		if !ok {
			emoji = "📦"
		}
		lines = append(lines, fmt.Sprintf("%s %s - %s (%s)", emoji, order.OrderID, order.Product, order.Status))
	}

	return fmt.Sprintf(`📋 **Your Orders**

%s

**To check specific order:**
Type *status* + order number
*Example:* status 12345

**Need help?** Type *help* or *contact*`, strings.Join(lines, "\n"))
}

const noOrdersText = `📋 **No orders found**

You don't have any orders yet.

Would you like to:
• Type *order* to place a new order
• Type *help* for more options`

func cancelConfirmationText(orderID, reason string) string {
	return fmt.Sprintf(`✅ **Order Cancelled**

**Order ID:** %s
**Status:** Cancelled
**Reason:** %s

If you need assistance, type *contact* for support.
Need to place a new order? Type *order*`, orderID, reason)
}

func cancellableOrdersText(orders []models.Order) string {
	var lines []string
	for i, order := range orders {
		if i == 5 {
			break
		}
		lines = append(lines, fmt.Sprintf("• %s - %s (%s)", order.OrderID, order.Product, order.Status))
	}

	return fmt.Sprintf(`❌ **Cancel Order**

Your cancellable orders:
%s

To cancel, reply with:
*cancel ORD-XXXXX*

*Example:* cancel ORD-12345

⚠️ Orders can only be cancelled within 24 hours.`, strings.Join(lines, "\n"))
}

const orderHelpText = `📦 **Order Help**

**Create Order:**
• Type *order* and follow the guided process
• Or send complete details in one message

**Check Status:**
• Type *status* + order number
• Type *status* to see all your orders

**Cancel Order:**
• Type *cancel* + order number
• Orders can be cancelled within 24 hours

**Need more help?** Type *contact*`

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
