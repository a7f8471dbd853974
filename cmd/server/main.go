// cmd/server/main.go
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

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"matchtech-assistant/internal/assistant"
	"matchtech-assistant/internal/common/config"
	"matchtech-assistant/internal/common/database"
	"matchtech-assistant/internal/common/logger"
	"matchtech-assistant/internal/common/observability"
	"matchtech-assistant/internal/llm"
	"matchtech-assistant/internal/mail"
	"matchtech-assistant/internal/search"
	"matchtech-assistant/internal/server"
	"matchtech-assistant/internal/store"
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
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting MatchTech assistant server...",
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
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

	// --- Web search client, optionally cached through Redis ---
	searchCfg := search.LoadConfig(cfg)
	var searcher assistant.Searcher = search.NewClient(searchCfg, log)

	if searchCfg.CacheTTL > 0 {
		var rds *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rds, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rds.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Warn("redis unavailable, web search cache disabled", zap.Error(err))
		} else {
			defer rds.Close()
			searcher = search.NewCachedClient(searcher, rds.Client, searchCfg.CacheTTL, log)
			zapLog.Info("Redis connected successfully")
		}
	}

	// --- Bedrock generation client ---
	llmCfg := llm.LoadConfig(cfg)
	generator, err := llm.NewClient(ctx, llmCfg, log)
	if err != nil {
		zapLog.Fatal("bedrock client init failed", zap.Error(err))
	}

	as := assistant.New(assistant.DefaultVocabulary(), searcher, generator, log)
	as.SetObservability(obs)
	st := store.New(pg.DB, log)

	// --- Optional SES mailer ---
	var mailer server.Mailer
	if cfg.Integrations.AWS.SES.Enabled {
		m, err := mail.NewMailer(ctx, cfg.Integrations.AWS.Region, cfg.Integrations.AWS.SES.FromEmail, log)
		if err != nil {
			zapLog.Warn("ses mailer init failed, email delivery disabled", zap.Error(err))
		} else {
			mailer = m
		}
	}

	srv := server.New(st, as, mailer, llmCfg.ModelID, log)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      srv.Router(cfg.Server.AllowedOrigins),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	// Metrics and pprof on a separate port
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.Handle("/debug/", http.DefaultServeMux)
		addr := fmt.Sprintf(":%d", cfg.Server.MetricsPort)
		zapLog.Info("metrics server listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
			zapLog.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		zapLog.Info("HTTP server listening", zap.Int("port", cfg.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("server stopped")
}
