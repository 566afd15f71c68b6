package faq

import "fmt"

func (h *Handler) hoursResponse() string {
	status := "🔴 Currently Closed"
	if h.openNow() {
		status = "🟢 We're Open!"
	}

	return fmt.Sprintf(`🕒 **Business Hours**

**%s**
📅 Monday - Friday: %s
📅 Saturday: 10:00 AM - 2:00 PM
📅 Sunday: Closed

**Current Status:** %s

**Weekend Support:**
Limited support available
Response time: 24-48 hours

💡 **Note:** You can send messages anytime - we'll respond during business hours!

**Need immediate help?** Type *contact* for emergency contact info.`,
		h.cfg.Name, h.cfg.BusinessHours, status)
}

func (h *Handler) contactResponse() string {
	return fmt.Sprintf(`📞 **Contact Information**

**%s**

📧 **Email:** %s
📱 **Phone:** %s

**For urgent matters:**
📞 Call us directly during business hours
📧 Email for non-urgent inquiries

**Support Channels:**
• 💬 WhatsApp (here!) - Fastest response
• 📧 Email - Within 24 hours
• 📞 Phone - Immediate during business hours

**Business Hours:** %s

**What can we help you with today?** 😊`,
		h.cfg.Name, h.cfg.ContactEmail, h.cfg.ContactPhone, h.cfg.BusinessHours)
}

const deliveryText = `🚚 **Delivery Information**

**Standard Delivery:**
📦 2-3 business days (most items)
🆓 Free shipping on orders over $50

**Express Delivery:**
⚡ Next business day available
💰 Additional charges apply

**Tracking:**
📱 Real-time updates via WhatsApp
🔍 Track with your order number

**Questions?** Type *status* + order number to track your order!`

const paymentText = `💳 **Payment Information**

**Accepted Payment Methods:**
💳 Credit Cards (Visa, MasterCard, Amex)
💰 Debit Cards
🏦 Bank Transfer
📱 Digital Wallets (PayPal, Apple Pay, Google Pay)
💵 Cash on Delivery (select areas)

**Payment Terms:**
✅ Payment required at order
🔄 Refunds processed within 5-7 business days
📄 Digital receipts provided

**Questions about billing?** Our support team is here to help!`

const returnsText = `🔄 **Returns & Warranty**

**Return Policy:**
📅 30-day return window
📦 Items must be in original condition
🆓 Free returns on defective items

**Return Process:**
1️⃣ Contact support for return authorization
2️⃣ Pack item securely with original packaging
3️⃣ Ship using provided return label
4️⃣ Refund processed within 5-7 business days

**Warranty Coverage:**
🛡️ 1-year manufacturer warranty
🔧 Repair or replacement for defects

**Need to return something?** Type *contact* to start the process!`

const productsText = `🛍️ **Our Products**

**Categories:**
💻 Electronics & Computers
📱 Mobile Devices & Accessories
🏠 Home & Office Equipment
⌚ Smart Devices & Wearables
🎮 Gaming & Entertainment

**Featured Products:**
⭐ Laptops & Computers
⭐ Smartphones & Tablets
⭐ Audio & Video Equipment

**Browse Products:**
📞 Call for product consultation
💬 Type *order* to start shopping!

**Questions about specific products?** Our team is here to help!`

func (h *Handler) helpResponse() string {
	return fmt.Sprintf(`🤖 **%s - How I Can Help**

**📦 Order Management:**
• *order* - Create a new order
• *status* - Check order status
• *cancel* - Cancel an order

**ℹ️ Information:**
• *hours* - Business hours
• *contact* - Contact details
• *delivery* - Shipping information
• *payment* - Payment options
• *returns* - Return policy

**🔍 Smart Search:**
Ask me questions like:
• "What are your business hours?"
• "How do I return an item?"
• "What payment methods do you accept?"

**🆘 Need Human Help?**
Type *contact* to reach our support team

**What would you like to know?** 😊`, h.cfg.Name)
}
