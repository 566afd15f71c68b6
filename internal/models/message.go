package models

import "time"

// Intent is the closed set of message classifications produced by the parser.
type Intent string

const (
	IntentOrderCreate    Intent = "order_create"
	IntentOrderStatus    Intent = "order_status"
	IntentOrderCancel    Intent = "order_cancel"
	IntentFaqGeneral     Intent = "faq_general"
	IntentFaqHours       Intent = "faq_hours"
	IntentFaqContact     Intent = "faq_contact"
	IntentHelp           Intent = "help"
	IntentGreeting       Intent = "greeting"
	IntentRejectResponse Intent = "reject_response"
	IntentUnknown        Intent = "unknown"
)

// IsOrderRelated reports whether the intent dispatches to the order handler.
func (i Intent) IsOrderRelated() bool {
	return i == IntentOrderCreate || i == IntentOrderStatus || i == IntentOrderCancel
}

// IsFaq reports whether the intent dispatches to the FAQ handler.
func (i Intent) IsFaq() bool {
	return i == IntentFaqGeneral || i == IntentFaqHours || i == IntentFaqContact || i == IntentHelp
}

// Message is a single inbound message as delivered by the transport.
type Message struct {
	Sender     string    `json:"sender"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// ParsedMessage is the immutable result of classifying one inbound message.
type ParsedMessage struct {
	OriginalMessage string              `json:"originalMessage"`
	Intent          Intent              `json:"intent"`
	Confidence      float64             `json:"confidence"`
	Entities        map[string][]string `json:"entities,omitempty"`
	MessageLength   int                 `json:"messageLength"`
	WordCount       int                 `json:"wordCount"`
}
