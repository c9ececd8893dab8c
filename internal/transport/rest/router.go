package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/secondbrain-backend/internal/transport/middleware"
)

type requestObserver interface {
	ObserveRequest(method, route string, status int, d time.Duration)
}

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Health  *HealthHandler
	Slack   *SlackHandler
	Cron    *CronHandler
	Admin   *AdminHandler
	Records *RecordsHandler
	Review  *ReviewHandler
	Metrics http.Handler
}

// RouterConfig holds the secrets and limits applied per route group.
// Empty secrets leave the group unauthenticated.
type RouterConfig struct {
	SigningSecret  string
	CronSecret     string
	AdminSecret    string
	WebhookLimiter *middleware.RateLimiter
	HTTPMetrics    requestObserver
}

// NewRouter builds the full HTTP handler: routes, per-group auth and the
// global middleware chain.
func NewRouter(logger *slog.Logger, h Handlers, cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)
	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics)
	}

	webhook := []middleware.Middleware{middleware.SlackSignature(logger, cfg.SigningSecret)}
	if cfg.WebhookLimiter != nil {
		webhook = append([]middleware.Middleware{cfg.WebhookLimiter.Limit()}, webhook...)
	}
	events := middleware.Chain(webhook...)(http.HandlerFunc(h.Slack.Events))
	mux.Handle("POST /slack/events", events)
	mux.Handle("POST /api/webhooks/slack/capture", events)

	cron := middleware.RequireBearer(cfg.CronSecret)
	for path, fn := range map[string]http.HandlerFunc{
		"/cron/daily-digest":      h.Cron.DailyDigest,
		"/cron/weekly-review":     h.Cron.WeeklyReview,
		"/cron/backfill-examples": h.Cron.BackfillExamples,
	} {
		mux.Handle("GET "+path, cron(fn))
		mux.Handle("POST "+path, cron(fn))
	}

	admin := middleware.RequireAdminSecret(cfg.AdminSecret)
	mux.Handle("POST /admin/pin-instructions", admin(http.HandlerFunc(h.Admin.PinInstructions)))
	h.Records.Register(mux, admin)
	if h.Review != nil {
		h.Review.Register(mux, admin)
	}

	global := []middleware.Middleware{
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
	}
	if cfg.HTTPMetrics != nil {
		global = append(global, middleware.Metrics(cfg.HTTPMetrics))
	}
	return middleware.Chain(global...)(mux)
}
