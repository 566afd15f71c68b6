package router

import "fmt"

func returningGreeting(botName, customerName string) string {
	return fmt.Sprintf(`👋 Hello %s! Welcome back to %s!

How can I assist you today?

💡 **Quick options:**
• Type *order* - Place a new order
• Type *status* - Check order status
• Type *help* - See all commands`, customerName, botName)
}

func newGreeting(botName string) string {
	return fmt.Sprintf(`👋 Hello! Welcome to %s!

I'm your virtual assistant here to help with:
📦 Orders and order status
ℹ️ Product information
📞 Contact details
🕒 Business hours

Type *help* to see all available commands or just tell me what you need! 😊`, botName)
}

const pricingHint = `💰 **Pricing Information**

For product pricing and quotes, please:
• Type *contact* to speak with our sales team
• Call us directly during business hours
• Type *help* for more options

How else can I assist you?`

const deliveryHint = `🚚 **Delivery Information**

For delivery details:
• Type *status* + your order number to track existing orders
• New orders typically take 2-3 business days
• Type *contact* for specific delivery questions

Anything else I can help with?`

const unknownResponse = `🤔 I didn't quite understand that.

Here's what I can help you with:
• *order* - Place a new order
• *status* - Check order status
• *contact* - Get contact information
• *help* - See all commands

Just type one of these keywords or describe what you need! 😊`

const errorResponse = `❌ I encountered an issue processing your request.

Please try again, or:
• Type *help* for available commands
• Type *contact* to reach our support team

Sorry for the inconvenience! 🙏`
