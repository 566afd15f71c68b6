package models

import "time"

// OrderStatus is the lifecycle state of an order row.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsTerminal reports whether the status admits no further transitions.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CancellationWindow is how long after creation an order may still be cancelled.
const CancellationWindow = 24 * time.Hour

// Order represents one persisted order row.
type Order struct {
	OrderID       string                 `json:"orderId" db:"order_id"`
	CustomerPhone string                 `json:"customerPhone" db:"customer_phone"`
	Product       string                 `json:"product" db:"product"`
	Quantity      int                    `json:"quantity" db:"quantity"`
	Status        OrderStatus            `json:"status" db:"status"`
	Details       map[string]interface{} `json:"details,omitempty" db:"details"`
	CreatedAt     time.Time              `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time              `json:"updatedAt" db:"updated_at"`
}

// Cancellable reports whether the order can still be cancelled at the given time.
func (o *Order) Cancellable(now time.Time) bool {
	if o.Status.IsTerminal() {
		return false
	}
	return now.Sub(o.CreatedAt) < CancellationWindow
}
