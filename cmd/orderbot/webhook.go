// cmd/orderbot/webhook.go
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"whatsapp-orderbot/internal/common/config"
	"whatsapp-orderbot/internal/common/logger"
	"whatsapp-orderbot/internal/models"
	"whatsapp-orderbot/internal/router"
	"whatsapp-orderbot/internal/store"
)

type webhookServer struct {
	cfg    config.ServerConfig
	router *router.Router
	store  store.Store
	logger logger.Logger
}

func newWebhookServer(cfg config.ServerConfig, rt *router.Router, st store.Store, log logger.Logger) *http.Server {
	ws := &webhookServer{
		cfg:    cfg,
		router: rt,
		store:  st,
		logger: log.WithFields(map[string]interface{}{"component": "webhook"}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/webhook", ws.handleWebhook)
	mux.HandleFunc("/health", ws.handleHealth)
	mux.HandleFunc("/stats", ws.handleStats)
	mux.HandleFunc("/history", ws.handleHistory)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", ws.handleHome)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// handleWebhook serves the WhatsApp Business API contract: GET for the
// verification handshake, POST for inbound messages as form-encoded From/Body.
func (ws *webhookServer) handleWebhook(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		ws.verify(w, r)
	case http.MethodPost:
		ws.receive(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (ws *webhookServer) verify(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("hub.verify_token")
	challenge := r.URL.Query().Get("hub.challenge")

	if token != ws.cfg.VerifyToken {
		ws.logger.Warn("webhook verification failed", map[string]interface{}{
			"remote": r.RemoteAddr,
		})
		http.Error(w, "Verification failed", http.StatusForbidden)
		return
	}
	fmt.Fprint(w, challenge)
}

func (ws *webhookServer) receive(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form payload", http.StatusBadRequest)
		return
	}

	sender := strings.TrimPrefix(r.PostFormValue("From"), "whatsapp:")
	body := strings.TrimSpace(r.PostFormValue("Body"))
	if sender == "" || body == "" {
		http.Error(w, "missing From or Body", http.StatusBadRequest)
		return
	}

	reply := ws.router.Route(r.Context(), models.Message{
		Sender:     sender,
		Body:       body,
		ReceivedAt: time.Now(),
	})

	// TwiML-less plain-text reply; the gateway wraps it for WhatsApp.
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, reply)
}

func (ws *webhookServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleStats reports order totals for operational dashboards.
func (ws *webhookServer) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := ws.store.OrderStats(r.Context())
	if err != nil {
		ws.logger.WithError(err).Error("order stats failed", nil)
		http.Error(w, "stats unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// handleHistory returns the recent conversation log for one sender, used by
// support staff reviewing a session.
func (ws *webhookServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		http.Error(w, "missing phone", http.StatusBadRequest)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := ws.store.ConversationHistory(r.Context(), phone, limit)
	if err != nil {
		ws.logger.WithError(err).Error("conversation history failed", map[string]interface{}{"phone": phone})
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []models.ConversationEntry{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

func (ws *webhookServer) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "WhatsApp order bot is running",
	})
}
