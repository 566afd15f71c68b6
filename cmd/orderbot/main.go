// cmd/orderbot/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"whatsapp-orderbot/internal/archive"
	"whatsapp-orderbot/internal/common/config"
	"whatsapp-orderbot/internal/common/database"
	"whatsapp-orderbot/internal/common/logger"
	"whatsapp-orderbot/internal/common/observability"
	"whatsapp-orderbot/internal/handlers/faq"
	"whatsapp-orderbot/internal/handlers/order"
	"whatsapp-orderbot/internal/handlers/reject"
	"whatsapp-orderbot/internal/notify"
	"whatsapp-orderbot/internal/router"
	"whatsapp-orderbot/internal/session"
	"whatsapp-orderbot/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("config load failed: %v", err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting order bot...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New("orderbot")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	st := store.NewPostgres(pg.DB, log)
	if err := st.InitSchema(ctx); err != nil {
		zapLog.Fatal("schema init failed", zap.Error(err))
	}

	// --- Session backend selection ---
	var sessions session.Store
	switch cfg.Sessions.Backend {
	case "redis":
		var redisClient *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redisClient.Close()
		zapLog.Info("Redis connected successfully")
		sessions = session.NewRedisStore(redisClient.Client, cfg.Sessions.TTL, log)
	default:
		sessions = session.NewMemoryStore(cfg.Sessions.TTL)
	}

	// --- Maintenance: purge old conversation rows daily ---
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			deleted, err := st.CleanupConversations(ctx, 90*24*time.Hour)
			if err != nil {
				zapLog.Warn("conversation cleanup failed", zap.Error(err))
				continue
			}
			zapLog.Info("conversation cleanup done", zap.Int64("deleted", deleted))
		}
	}()

	// --- Optional conversation archive ---
	var archiver router.Archiver
	if cfg.Archive.Enabled {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 10, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")
		archiver = archive.NewIndexer(esClient.Client, cfg.Database.Elasticsearch.Index, log)
	}

	// --- Optional order confirmations ---
	var notifier order.Notifier
	if cfg.Notifications.Email.Enabled || cfg.Notifications.SMS.Enabled {
		n, err := notify.New(cfg.Notifications, log)
		if err != nil {
			zapLog.Fatal("notifier init failed", zap.Error(err))
		}
		notifier = n
	}

	// --- Handlers and router ---
	orders := order.NewHandler(st, sessions, notifier, log)
	faqs := faq.NewHandler(cfg.Bot, log)
	rejects := reject.NewHandler(log)
	rt := router.New(cfg.Bot, st, sessions, orders, faqs, rejects, archiver, obs, log)

	srv := newWebhookServer(cfg.Server, rt, st, log)
	go func() {
		zapLog.Info("Webhook server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("webhook server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down webhook server", zap.Error(err))
	}

	zapLog.Info("Order bot stopped gracefully")
}
