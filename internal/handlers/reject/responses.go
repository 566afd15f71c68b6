package reject

var rejectionResponses = map[RejectionType]string{
	NotInterested: `No problem! Thanks for letting me know.

🤝 **We respect your decision**

If circumstances change, we're always here to help:
• Type *help* - For any questions
• Type *contact* - To reach our team

Thank you for your time! 😊`,

	TooExpensive: `I understand pricing is important. Would you like information about our current promotions?

💰 **Money-Saving Options:**
• 🎯 Current promotions and discounts
• 📅 Seasonal sales notifications
• 💳 Flexible payment plans
• 📦 Bundle deals for better value

Type *contact* if you'd like to discuss pricing options! 💬`,

	WrongTiming: `No worries! Would you like me to follow up with you at a better time?

⏰ **We understand timing is everything**

Options for later:
• 📅 Schedule a follow-up reminder
• 📧 Join our mailing list for updates
• 💬 Reach out anytime you're ready

Just let me know and I can follow up then! 🕒`,

	NeedToThink: `Of course! Take all the time you need to decide.

🤔 **Take your time!**

**Resources available:**
• Type *help* - For quick questions
• Type *contact* - To speak with our team

**No pressure** - we're here when you're ready! 😊`,

	GeneralNo: `I understand. Thank you for your time!

🙏 **Thank you for being direct**

**Still here to help:**
• Questions about anything? Type *help*
• Need support? Type *contact*
• Changed your mind? Type *order*

Have a great day! 😊`,
}
