package models

import "time"

// Message direction for conversation log entries.
const (
	DirectionIncoming = "incoming"
	DirectionOutgoing = "outgoing"
)

// ConversationEntry is one logged message, incoming or outgoing.
type ConversationEntry struct {
	ID            int64     `json:"id" db:"id"`
	CustomerPhone string    `json:"customerPhone" db:"customer_phone"`
	Direction     string    `json:"direction" db:"direction"`
	Body          string    `json:"body" db:"body"`
	Intent        string    `json:"intent,omitempty" db:"intent"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// OrderStats is an aggregate snapshot used for reporting.
type OrderStats struct {
	TotalOrders        int            `json:"totalOrders"`
	StatusDistribution map[string]int `json:"statusDistribution"`
	RecentOrders       int            `json:"recentOrders"`
}
