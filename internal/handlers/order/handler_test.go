package order

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whatsapp-orderbot/internal/common/logger"
	"whatsapp-orderbot/internal/models"
	"whatsapp-orderbot/internal/parser"
	"whatsapp-orderbot/internal/session"
)

// ==========================
// Test Fakes
// ==========================

type fakeStore struct {
	customers map[string]*models.Customer
	orders    map[string]*models.Order

	createOrderErr error
	getOrderErr    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		customers: map[string]*models.Customer{},
		orders:    map[string]*models.Order{},
	}
}

func (f *fakeStore) GetCustomer(ctx context.Context, phone string) (*models.Customer, error) {
	return f.customers[phone], nil
}

func (f *fakeStore) CreateCustomer(ctx context.Context, phone, name string, metadata map[string]interface{}) error {
	f.customers[phone] = &models.Customer{PhoneNumber: phone, Name: name, Metadata: metadata}
	return nil
}

func (f *fakeStore) UpdateCustomer(ctx context.Context, customer *models.Customer) error {
	f.customers[customer.PhoneNumber] = customer
	return nil
}

func (f *fakeStore) CreateOrder(ctx context.Context, order *models.Order) error {
	if f.createOrderErr != nil {
		return f.createOrderErr
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	f.orders[order.OrderID] = order
	return nil
}

func (f *fakeStore) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	if f.getOrderErr != nil {
		return nil, f.getOrderErr
	}
	return f.orders[orderID], nil
}

func (f *fakeStore) GetCustomerOrders(ctx context.Context, phone string) ([]models.Order, error) {
	var orders []models.Order
	for _, order := range f.orders {
		if order.CustomerPhone == phone {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (f *fakeStore) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus, details map[string]interface{}) error {
	if order, ok := f.orders[orderID]; ok {
		order.Status = status
		order.Details = details
	}
	return nil
}

func (f *fakeStore) CancelOrder(ctx context.Context, orderID, reason string) (bool, string, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return false, "Order not found", nil
	}
	if order.Status.IsTerminal() {
		return false, fmt.Sprintf("Cannot cancel order with status: %s", order.Status), nil
	}
	order.Status = models.OrderStatusCancelled
	return true, "Order cancelled successfully", nil
}

func (f *fakeStore) LogConversation(ctx context.Context, phone, direction, body, intent string) error {
	return nil
}

func (f *fakeStore) ConversationHistory(ctx context.Context, phone string, limit int) ([]models.ConversationEntry, error) {
	return nil, nil
}

func (f *fakeStore) CleanupConversations(ctx context.Context, olderThan time.Duration) (int64, error) {
	return 0, nil
}

func (f *fakeStore) OrderStats(ctx context.Context) (*models.OrderStats, error) {
	return &models.OrderStats{}, nil
}

func newTestHandler(t *testing.T) (*Handler, *fakeStore, *session.MemoryStore) {
	st := newFakeStore()
	sessions := session.NewMemoryStore(30 * time.Minute)
	h := NewHandler(st, sessions, nil, logger.NewTestLogger(t))
	h.newID = func() string { return "ORD-TEST0001" }
	return h, st, sessions
}

// ==========================
// Order Creation Tests
// ==========================

func TestCreate_StartsWizardForIncompleteOrder(t *testing.T) {
	h, st, sessions := newTestHandler(t)
	ctx := context.Background()

	reply := h.Create(ctx, "+15550001", "I want to buy something", models.ParsedMessage{})

	assert.Contains(t, reply, "Step 1")
	assert.Empty(t, st.orders)

	pending, err := sessions.Get(ctx, "+15550001")
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, session.StepProduct, pending.Step)
}

func TestCreate_SingleShotWithLabeledFields(t *testing.T) {
	h, st, _ := newTestHandler(t)
	ctx := context.Background()

	body := "I want to order a laptop\nName: Jane Doe\nPhone: +1-555-0100\nAddress: 1 Main St"
	reply := h.Create(ctx, "+15550001", body, parser.Parse(body))

	assert.Contains(t, reply, "Order Created Successfully")
	assert.Contains(t, reply, "ORD-TEST0001")

	order := st.orders["ORD-TEST0001"]
	require.NotNil(t, order)
	assert.Equal(t, "+15550001", order.CustomerPhone)
	assert.Equal(t, "whatsapp", order.Details["created_via"])
	assert.Equal(t, true, order.Details["agent_processed"])
	assert.Equal(t, "Jane Doe", order.Details["customer_name"])

	// First contact creates the customer row.
	require.NotNil(t, st.customers["+15550001"])
	assert.Equal(t, "Jane Doe", st.customers["+15550001"].Name)
}

func TestCreate_ReplacesPlaceholderCustomerName(t *testing.T) {
	h, st, _ := newTestHandler(t)
	ctx := context.Background()
	st.customers["+15550001"] = &models.Customer{PhoneNumber: "+15550001", Name: "Unknown"}

	body := "I want to order a laptop\nName: Jane Doe\nPhone: +1-555-0100\nAddress: 1 Main St"
	reply := h.Create(ctx, "+15550001", body, parser.Parse(body))

	assert.Contains(t, reply, "Order Created Successfully")
	assert.Equal(t, "Jane Doe", st.customers["+15550001"].Name)
}

func TestCreate_SingleShotStoreFailure(t *testing.T) {
	h, st, _ := newTestHandler(t)
	st.createOrderErr = errors.New("db down")

	body := "order a laptop\nName: Jane\nPhone: 555\nAddress: 1 Main St"
	reply := h.Create(context.Background(), "+15550001", body, parser.Parse(body))

	assert.Equal(t, errCreateText, reply)
}

func TestIsCompleteOrder(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"all four fields", "product: x name: y phone: z address: w", true},
		{"three fields", "name: y phone: z address: w", true},
		{"two fields", "name: y phone: z", false},
		{"bare order request", "I want to order", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isCompleteOrder(tt.body))
		})
	}
}

// ==========================
// Wizard Tests
// ==========================

func TestWizard_FullFlow(t *testing.T) {
	h, st, sessions := newTestHandler(t)
	ctx := context.Background()
	sender := "+15550001"

	reply := h.Create(ctx, sender, "I want to place an order", models.ParsedMessage{})
	assert.Contains(t, reply, "Step 1")

	answers := []struct {
		body     string
		expected string
	}{
		{"2 laptops", "Step 2"},
		{"Jane Doe", "Step 3"},
		{"+1-555-0100", "Step 4"},
	}
	for _, step := range answers {
		pending, err := sessions.Get(ctx, sender)
		require.NoError(t, err)
		require.NotNil(t, pending)
		reply = h.Continue(ctx, sender, step.body, pending)
		assert.Contains(t, reply, step.expected)
	}

	pending, err := sessions.Get(ctx, sender)
	require.NoError(t, err)
	require.NotNil(t, pending)
	reply = h.Continue(ctx, sender, "1 Main St, Springfield", pending)

	assert.Contains(t, reply, "Order Created Successfully")

	order := st.orders["ORD-TEST0001"]
	require.NotNil(t, order)
	assert.Equal(t, "2 laptops", order.Product)
	assert.Equal(t, 1, order.Quantity)
	assert.Equal(t, "whatsapp_guided", order.Details["created_via"])
	assert.Equal(t, "2 laptops", order.Details["product"])
	assert.Equal(t, "Jane Doe", order.Details["customer_name"])
	assert.Equal(t, "+1-555-0100", order.Details["customer_phone"])
	assert.Equal(t, "1 Main St, Springfield", order.Details["address"])

	// Commit closes the session.
	pending, err = sessions.Get(ctx, sender)
	require.NoError(t, err)
	assert.Nil(t, pending)
}

func TestWizard_AdvancesExactlyOneStep(t *testing.T) {
	h, _, sessions := newTestHandler(t)
	ctx := context.Background()
	sender := "+15550001"

	h.Create(ctx, sender, "I want to order", models.ParsedMessage{})

	pending, err := sessions.Get(ctx, sender)
	require.NoError(t, err)
	// An order-intent message mid-session is treated as the step answer.
	h.Continue(ctx, sender, "I want to buy a monitor", pending)

	pending, err = sessions.Get(ctx, sender)
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, session.StepName, pending.Step)
	assert.Equal(t, "I want to buy a monitor", pending.Fields["product"])
}

func TestWizard_CommitFailureClearsSession(t *testing.T) {
	h, st, sessions := newTestHandler(t)
	ctx := context.Background()
	sender := "+15550001"
	st.createOrderErr = errors.New("db down")

	h.Create(ctx, sender, "I want to order", models.ParsedMessage{})
	for _, answer := range []string{"laptop", "Jane", "+1-555-0100", "1 Main St"} {
		pending, err := sessions.Get(ctx, sender)
		require.NoError(t, err)
		require.NotNil(t, pending)
		h.Continue(ctx, sender, answer, pending)
	}

	pending, err := sessions.Get(ctx, sender)
	require.NoError(t, err)
	assert.Nil(t, pending, "failed commit must not leave the session open")
}

// ==========================
// Order Status Tests
// ==========================

func TestStatus_ByOrderID(t *testing.T) {
	h, st, _ := newTestHandler(t)
	st.orders["ORD-1234"] = &models.Order{
		OrderID:       "ORD-1234",
		CustomerPhone: "+15550001",
		Product:       "laptop",
		Quantity:      2,
		Status:        models.OrderStatusShipped,
		CreatedAt:     time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}

	reply := h.Status(context.Background(), "+15550001", "status ORD-1234")

	assert.Contains(t, reply, "ORD-1234")
	assert.Contains(t, reply, "Shipped")
	assert.Contains(t, reply, "2026-08-01")
}

func TestStatus_UnknownOrderID(t *testing.T) {
	h, _, _ := newTestHandler(t)

	reply := h.Status(context.Background(), "+15550001", "status ORD-9999")
	assert.Contains(t, reply, "ORD-9999 not found")
}

func TestStatus_NoOrders(t *testing.T) {
	h, _, _ := newTestHandler(t)

	reply := h.Status(context.Background(), "+15550001", "where is my order")
	assert.Contains(t, reply, "No orders found")
}

// ==========================
// Cancellation Tests
// ==========================

func TestCancel_Success(t *testing.T) {
	h, st, _ := newTestHandler(t)
	st.orders["ORD-1234"] = &models.Order{
		OrderID:       "ORD-1234",
		CustomerPhone: "+15550001",
		Product:       "laptop",
		Status:        models.OrderStatusPending,
	}

	reply := h.Cancel(context.Background(), "+15550001", "cancel ORD-1234 reason: changed my mind")

	assert.Contains(t, reply, "Order Cancelled")
	assert.Contains(t, reply, "changed my mind")
	assert.Equal(t, models.OrderStatusCancelled, st.orders["ORD-1234"].Status)
}

func TestCancel_OwnershipCheck(t *testing.T) {
	h, st, _ := newTestHandler(t)
	st.orders["ORD-1234"] = &models.Order{
		OrderID:       "ORD-1234",
		CustomerPhone: "+15550002",
		Status:        models.OrderStatusPending,
	}

	reply := h.Cancel(context.Background(), "+15550001", "cancel ORD-1234")

	assert.Contains(t, reply, "only cancel your own orders")
	assert.Equal(t, models.OrderStatusPending, st.orders["ORD-1234"].Status)
}

func TestCancel_RefusalMessageSurfaced(t *testing.T) {
	h, st, _ := newTestHandler(t)
	st.orders["ORD-1234"] = &models.Order{
		OrderID:       "ORD-1234",
		CustomerPhone: "+15550001",
		Status:        models.OrderStatusDelivered,
	}

	reply := h.Cancel(context.Background(), "+15550001", "cancel ORD-1234")

	assert.Contains(t, reply, "Cannot Cancel Order")
	assert.Contains(t, reply, "delivered")
}

func TestCancel_ListsCancellableOrders(t *testing.T) {
	h, st, _ := newTestHandler(t)
	st.orders["ORD-1"] = &models.Order{OrderID: "ORD-1", CustomerPhone: "+15550001", Product: "laptop", Status: models.OrderStatusPending}
	st.orders["ORD-2"] = &models.Order{OrderID: "ORD-2", CustomerPhone: "+15550001", Product: "mouse", Status: models.OrderStatusDelivered}

	reply := h.Cancel(context.Background(), "+15550001", "I want to cancel")

	assert.Contains(t, reply, "ORD-1")
	assert.NotContains(t, reply, "ORD-2")
}

func TestHelp(t *testing.T) {
	h, _, _ := newTestHandler(t)
	assert.Contains(t, h.Help(), "Order Help")
}

// ==========================
// Detail Validation Tests
// ==========================

func TestValidateDetails(t *testing.T) {
	valid := map[string]interface{}{
		"product":         "laptop",
		"customer_name":   "Jane",
		"created_via":     "whatsapp",
		"agent_processed": true,
	}
	assert.NoError(t, validateDetails(valid))

	missing := map[string]interface{}{"customer_name": "Jane"}
	assert.Error(t, validateDetails(missing))

	unknownChannel := map[string]interface{}{
		"created_via":     "carrier_pigeon",
		"agent_processed": true,
	}
	assert.Error(t, validateDetails(unknownChannel))
}
