package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	stderrors "whatsapp-orderbot/internal/common/errors"
	"whatsapp-orderbot/internal/common/logger"
	"whatsapp-orderbot/internal/models"
)

// Postgres implements Store on top of database/sql with lib/pq.
type Postgres struct {
	db     *sql.DB
	logger logger.Logger
	now    func() time.Time
}

// NewPostgres creates a postgres-backed store.
func NewPostgres(db *sql.DB, log logger.Logger) *Postgres {
	return &Postgres{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "store"}),
		now:    time.Now,
	}
}

// InitSchema creates the tables if they do not exist yet.
func (s *Postgres) InitSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS customers (
			phone_number TEXT PRIMARY KEY,
			name TEXT,
			email TEXT,
			metadata JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id TEXT PRIMARY KEY,
			customer_phone TEXT REFERENCES customers (phone_number),
			product TEXT NOT NULL,
			quantity INTEGER NOT NULL DEFAULT 1,
			status TEXT NOT NULL DEFAULT 'pending',
			details JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS conversations (
			id BIGSERIAL PRIMARY KEY,
			customer_phone TEXT,
			direction TEXT NOT NULL,
			body TEXT NOT NULL,
			intent TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// ==========================
// Customers
// ==========================

func (s *Postgres) GetCustomer(ctx context.Context, phone string) (*models.Customer, error) {
	query := `SELECT phone_number, name, email, metadata, created_at, updated_at
		FROM customers WHERE phone_number = $1`

	var (
		c        models.Customer
		name     sql.NullString
		email    sql.NullString
		metadata []byte
	)
	err := s.db.QueryRowContext(ctx, query, phone).Scan(
		&c.PhoneNumber, &name, &email, &metadata, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, stderrors.NewCustomerLookupFailedError(phone, err)
	}

	c.Name = name.String
	c.Email = email.String
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &c.Metadata); err != nil {
			return nil, fmt.Errorf("decode customer metadata: %w", err)
		}
	}
	return &c, nil
}

func (s *Postgres) CreateCustomer(ctx context.Context, phone, name string, metadata map[string]interface{}) error {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("encode customer metadata: %w", err)
	}

	query := `INSERT INTO customers (phone_number, name, metadata)
		VALUES ($1, $2, $3)
		ON CONFLICT (phone_number) DO UPDATE
		SET name = EXCLUDED.name, metadata = EXCLUDED.metadata, updated_at = NOW()`

	if _, err := s.db.ExecContext(ctx, query, phone, name, raw); err != nil {
		return stderrors.NewCustomerCreateFailedError(phone, err)
	}

	s.logger.Info("customer created", map[string]interface{}{"phone": phone})
	return nil
}

func (s *Postgres) UpdateCustomer(ctx context.Context, customer *models.Customer) error {
	raw, err := json.Marshal(customer.Metadata)
	if err != nil {
		return fmt.Errorf("encode customer metadata: %w", err)
	}

	query := `UPDATE customers SET name = $2, email = $3, metadata = $4, updated_at = NOW()
		WHERE phone_number = $1`

	if _, err := s.db.ExecContext(ctx, query, customer.PhoneNumber, customer.Name, customer.Email, raw); err != nil {
		return fmt.Errorf("update customer %s: %w", customer.PhoneNumber, err)
	}
	return nil
}

// ==========================
// Orders
// ==========================

func (s *Postgres) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	if order.Quantity <= 0 {
		order.Quantity = 1
	}
	raw, err := json.Marshal(order.Details)
	if err != nil {
		return fmt.Errorf("encode order details: %w", err)
	}

	query := `INSERT INTO orders (order_id, customer_phone, product, quantity, status, details)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := s.db.ExecContext(ctx, query,
		order.OrderID, order.CustomerPhone, order.Product, order.Quantity, order.Status, raw,
	); err != nil {
		return stderrors.NewOrderCreateFailedError(order.OrderID, err)
	}

	s.logger.Info("order created", map[string]interface{}{
		"orderId": order.OrderID,
		"phone":   order.CustomerPhone,
	})
	return nil
}

func (s *Postgres) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	query := `SELECT order_id, customer_phone, product, quantity, status, details, created_at, updated_at
		FROM orders WHERE order_id = $1`

	row := s.db.QueryRowContext(ctx, query, orderID)
	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}
	return order, nil
}

func (s *Postgres) GetCustomerOrders(ctx context.Context, phone string) ([]models.Order, error) {
	query := `SELECT order_id, customer_phone, product, quantity, status, details, created_at, updated_at
		FROM orders WHERE customer_phone = $1 ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, phone)
	if err != nil {
		return nil, fmt.Errorf("get orders for %s: %w", phone, err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (s *Postgres) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus, details map[string]interface{}) error {
	raw, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("encode order details: %w", err)
	}

	query := `UPDATE orders SET status = $2, details = $3, updated_at = NOW() WHERE order_id = $1`
	if _, err := s.db.ExecContext(ctx, query, orderID, status, raw); err != nil {
		return fmt.Errorf("update order %s: %w", orderID, err)
	}

	s.logger.Info("order status updated", map[string]interface{}{
		"orderId": orderID,
		"status":  status,
	})
	return nil
}

func (s *Postgres) CancelOrder(ctx context.Context, orderID, reason string) (bool, string, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return false, "", err
	}
	if order == nil {
		return false, "Order not found", nil
	}

	if order.Status.IsTerminal() {
		return false, fmt.Sprintf("Cannot cancel order with status: %s", order.Status), nil
	}
	if !order.Cancellable(s.now()) {
		return false, "Order cannot be cancelled after 24 hours", nil
	}

	if reason == "" {
		reason = "Customer request"
	}
	details := order.Details
	if details == nil {
		details = map[string]interface{}{}
	}
	details["cancellation_reason"] = reason
	details["cancelled_at"] = s.now().UTC().Format(time.RFC3339)

	if err := s.UpdateOrderStatus(ctx, orderID, models.OrderStatusCancelled, details); err != nil {
		return false, "", err
	}
	return true, "Order cancelled successfully", nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var (
		o       models.Order
		details []byte
	)
	if err := row.Scan(
		&o.OrderID, &o.CustomerPhone, &o.Product, &o.Quantity, &o.Status,
		&details, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &o.Details); err != nil {
			return nil, fmt.Errorf("decode order details: %w", err)
		}
	}
	return &o, nil
}

// ==========================
// Conversation log
// ==========================

func (s *Postgres) LogConversation(ctx context.Context, phone, direction, body, intent string) error {
	query := `INSERT INTO conversations (customer_phone, direction, body, intent)
		VALUES ($1, $2, $3, $4)`

	if _, err := s.db.ExecContext(ctx, query, phone, direction, body, intent); err != nil {
		return stderrors.NewConversationLogFailedError(phone, err)
	}
	return nil
}

func (s *Postgres) ConversationHistory(ctx context.Context, phone string, limit int) ([]models.ConversationEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, customer_phone, direction, body, intent, created_at
		FROM conversations WHERE customer_phone = $1
		ORDER BY created_at DESC LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, phone, limit)
	if err != nil {
		return nil, fmt.Errorf("conversation history for %s: %w", phone, err)
	}
	defer rows.Close()

	var entries []models.ConversationEntry
	for rows.Next() {
		var (
			e      models.ConversationEntry
			intent sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.CustomerPhone, &e.Direction, &e.Body, &intent, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan conversation entry: %w", err)
		}
		e.Intent = intent.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Postgres) CleanupConversations(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := s.now().Add(-olderThan)
	res, err := s.db.ExecContext(ctx, `DELETE FROM conversations WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup conversations: %w", err)
	}
	deleted, _ := res.RowsAffected()

	s.logger.Info("old conversations cleaned up", map[string]interface{}{"deleted": deleted})
	return deleted, nil
}

// ==========================
// Reporting
// ==========================

func (s *Postgres) OrderStats(ctx context.Context) (*models.OrderStats, error) {
	stats := &models.OrderStats{StatusDistribution: map[string]int{}}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&stats.TotalOrders); err != nil {
		return nil, fmt.Errorf("order stats total: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("order stats by status: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		stats.StatusDistribution[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	recentQuery := `SELECT COUNT(*) FROM orders WHERE created_at >= NOW() - INTERVAL '7 days'`
	if err := s.db.QueryRowContext(ctx, recentQuery).Scan(&stats.RecentOrders); err != nil {
		return nil, fmt.Errorf("order stats recent: %w", err)
	}

	return stats, nil
}
