package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whatsapp-orderbot/internal/common/config"
	"whatsapp-orderbot/internal/common/logger"
	"whatsapp-orderbot/internal/handlers/faq"
	"whatsapp-orderbot/internal/handlers/order"
	"whatsapp-orderbot/internal/handlers/reject"
	"whatsapp-orderbot/internal/models"
	"whatsapp-orderbot/internal/router"
	"whatsapp-orderbot/internal/session"
)

type stubStore struct{}

func (stubStore) GetCustomer(ctx context.Context, phone string) (*models.Customer, error) {
	return nil, nil
}
func (stubStore) CreateCustomer(ctx context.Context, phone, name string, metadata map[string]interface{}) error {
	return nil
}
func (stubStore) UpdateCustomer(ctx context.Context, customer *models.Customer) error { return nil }
func (stubStore) CreateOrder(ctx context.Context, o *models.Order) error              { return nil }
func (stubStore) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	return nil, nil
}
func (stubStore) GetCustomerOrders(ctx context.Context, phone string) ([]models.Order, error) {
	return nil, nil
}
func (stubStore) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus, details map[string]interface{}) error {
	return nil
}
func (stubStore) CancelOrder(ctx context.Context, orderID, reason string) (bool, string, error) {
	return false, "Order not found", nil
}
func (stubStore) LogConversation(ctx context.Context, phone, direction, body, intent string) error {
	return nil
}
func (stubStore) ConversationHistory(ctx context.Context, phone string, limit int) ([]models.ConversationEntry, error) {
	return []models.ConversationEntry{
		{ID: 1, CustomerPhone: phone, Direction: models.DirectionIncoming, Body: "hello"},
	}, nil
}
func (stubStore) CleanupConversations(ctx context.Context, olderThan time.Duration) (int64, error) {
	return 0, nil
}
func (stubStore) OrderStats(ctx context.Context) (*models.OrderStats, error) {
	return &models.OrderStats{TotalOrders: 3, StatusDistribution: map[string]int{"pending": 3}}, nil
}

func newTestServer(t *testing.T) http.Handler {
	log := logger.NewTestLogger(t)
	botCfg := config.BotConfig{Name: "Test Bot", BusinessHours: "9-5"}
	st := stubStore{}
	sessions := session.NewMemoryStore(30 * time.Minute)

	orders := order.NewHandler(st, sessions, nil, log)
	rt := router.New(botCfg, st, sessions, orders, faq.NewHandler(botCfg, log), reject.NewHandler(log), nil, nil, log)

	srv := newWebhookServer(config.ServerConfig{Port: 0, VerifyToken: "secret-token"}, rt, st, log)
	return srv.Handler
}

func TestWebhookVerification(t *testing.T) {
	h := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/webhook?hub.verify_token=secret-token&hub.challenge=12345", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "12345", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/webhook?hub.verify_token=wrong&hub.challenge=12345", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestWebhookMessageRoundTrip(t *testing.T) {
	h := newTestServer(t)

	form := url.Values{}
	form.Set("From", "whatsapp:+15550001")
	form.Set("Body", "hello")

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome to Test Bot")
}

func TestWebhookRejectsEmptyPayload(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthAndStats(t *testing.T) {
	h := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalOrders":3`)
}

func TestHistory(t *testing.T) {
	h := newTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history?phone=%2B15550001&limit=10", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"customerPhone":"+15550001"`)
	assert.Contains(t, rec.Body.String(), `"body":"hello"`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
