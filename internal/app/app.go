package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/secondbrain-backend/internal/adapter/postgres"
	"github.com/heartmarshall/secondbrain-backend/internal/config"
	"github.com/heartmarshall/secondbrain-backend/internal/transport/middleware"
	"github.com/heartmarshall/secondbrain-backend/internal/transport/rest"
)

// RunOptions tweaks server startup.
type RunOptions struct {
	// Migrate applies pending migrations before serving.
	Migrate bool
}

// Run loads configuration, wires the services and serves HTTP until ctx is
// cancelled, then shuts down gracefully.
func Run(ctx context.Context, opts RunOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)
	for _, w := range cfg.Warnings() {
		logger.Warn("insecure configuration", slog.String("detail", w))
	}

	if opts.Migrate {
		if err := migrateUp(ctx, cfg, logger); err != nil {
			return err
		}
	}

	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      newRouter(c),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

func newRouter(c *Container) http.Handler {
	cfg := c.Config
	log := c.Log

	health := rest.NewHealthHandler(c.Pool, Version, map[string]bool{
		"slack": cfg.Slack.BotToken != "",
		"llm":   cfg.LLM.APIKey != "",
	})

	return rest.NewRouter(log, rest.Handlers{
		Health:  health,
		Slack:   rest.NewSlackHandler(c.Capture, cfg.Capture.PipelineTimeout, log),
		Cron:    rest.NewCronHandler(c.Digest, log),
		Admin:   rest.NewAdminHandler(c.Guide, log),
		Records: rest.NewRecordsHandler(c.Records, log),
		Review:  rest.NewReviewHandler(c.Capture, log),
		Metrics: c.Metrics.Handler(log),
	}, rest.RouterConfig{
		SigningSecret:  cfg.Slack.SigningSecret,
		CronSecret:     cfg.Security.CronSecret,
		AdminSecret:    cfg.Security.AdminSecret,
		WebhookLimiter: middleware.NewRateLimiter(cfg.Security.WebhookRateLimit, cfg.Security.WebhookBurst, 10*time.Minute),
		HTTPMetrics:    c.Metrics.HTTP,
	})
}

func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Info("server stopped gracefully")
	return nil
}

func migrateUp(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	m, err := postgres.NewMigrator(ctx, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer m.Close()

	n, err := m.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	logger.Info("migrations applied", slog.Int("count", n))
	return nil
}
