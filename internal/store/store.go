// Package store persists customers, orders and the conversation log. The
// handlers depend only on the Store interface; the postgres implementation
// lives alongside so tests can swap in fakes or sqlmock.
package store

import (
	"context"
	"time"

	"whatsapp-orderbot/internal/models"
)

// Store is the persistence contract consumed by the message handlers.
// Lookup methods return (nil, nil) when the row does not exist.
type Store interface {
	GetCustomer(ctx context.Context, phone string) (*models.Customer, error)
	CreateCustomer(ctx context.Context, phone, name string, metadata map[string]interface{}) error
	UpdateCustomer(ctx context.Context, customer *models.Customer) error

	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
	GetCustomerOrders(ctx context.Context, phone string) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus, details map[string]interface{}) error

	// CancelOrder refuses terminal orders and orders older than the
	// cancellation window; the returned message explains refusals.
	CancelOrder(ctx context.Context, orderID, reason string) (bool, string, error)

	LogConversation(ctx context.Context, phone, direction, body, intent string) error
	ConversationHistory(ctx context.Context, phone string, limit int) ([]models.ConversationEntry, error)
	CleanupConversations(ctx context.Context, olderThan time.Duration) (int64, error)

	OrderStats(ctx context.Context) (*models.OrderStats, error)
}
