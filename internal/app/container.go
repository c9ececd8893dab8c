package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/secondbrain-backend/internal/adapter/classifier"
	"github.com/heartmarshall/secondbrain-backend/internal/adapter/llm"
	"github.com/heartmarshall/secondbrain-backend/internal/adapter/postgres"
	"github.com/heartmarshall/secondbrain-backend/internal/adapter/postgres/admintask"
	"github.com/heartmarshall/secondbrain-backend/internal/adapter/postgres/ideas"
	"github.com/heartmarshall/secondbrain-backend/internal/adapter/postgres/inboxlog"
	"github.com/heartmarshall/secondbrain-backend/internal/adapter/postgres/people"
	"github.com/heartmarshall/secondbrain-backend/internal/adapter/postgres/projects"
	"github.com/heartmarshall/secondbrain-backend/internal/adapter/postgres/vocabulary"
	"github.com/heartmarshall/secondbrain-backend/internal/adapter/slack"
	"github.com/heartmarshall/secondbrain-backend/internal/config"
	"github.com/heartmarshall/secondbrain-backend/internal/observability/metrics"
	"github.com/heartmarshall/secondbrain-backend/internal/service/capture"
	"github.com/heartmarshall/secondbrain-backend/internal/service/digest"
	"github.com/heartmarshall/secondbrain-backend/internal/service/guide"
	"github.com/heartmarshall/secondbrain-backend/internal/service/records"
)

const day = 24 * time.Hour

// Container holds the wired services shared by the server and the CLI jobs.
type Container struct {
	Config  *config.Config
	Log     *slog.Logger
	Pool    *pgxpool.Pool
	Metrics *metrics.Metrics

	Capture *capture.Service
	Records *records.Service
	Digest  *digest.Service
	Guide   *guide.Service
}

// NewContainer connects to the database and builds every adapter and
// service. Call Close when done.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	m, err := metrics.New()
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("metrics: %w", err)
	}

	var (
		txm        = postgres.NewTxManager(pool)
		peopleRepo = people.New(pool)
		projRepo   = projects.New(pool)
		ideaRepo   = ideas.New(pool)
		adminRepo  = admintask.New(pool)
		vocabRepo  = vocabulary.New(pool)
		inboxRepo  = inboxlog.New(pool)
	)

	llmClient := llm.New(cfg.LLM, logger)
	messenger := slack.New(cfg.Slack, logger)
	cls := classifier.New(llmClient, cfg.LLM.ClassifyModel, cfg.LLM.MaxTokens, m.Pipeline, logger)

	captureSvc := capture.NewService(
		logger,
		cls,
		messenger,
		capture.Stores{
			Inbox:      inboxRepo,
			People:     peopleRepo,
			Projects:   projRepo,
			Ideas:      ideaRepo,
			Admin:      adminRepo,
			Vocabulary: vocabRepo,
		},
		txm,
		m.Pipeline,
		cfg.Capture.ConfidenceThreshold,
		cfg.Capture.PendingTTL,
	)

	recordsSvc := records.NewService(logger, records.Repos{
		People:     peopleRepo,
		Projects:   projRepo,
		Ideas:      ideaRepo,
		Admin:      adminRepo,
		Vocabulary: vocabRepo,
		Inbox:      inboxRepo,
	})

	digestSvc := digest.NewService(logger, llmClient, messenger, digest.Repos{
		Projects:   projRepo,
		Admin:      adminRepo,
		People:     peopleRepo,
		Ideas:      ideaRepo,
		Vocabulary: vocabRepo,
		Inbox:      inboxRepo,
	}, digest.Options{
		Channel:      cfg.Slack.DigestChannel,
		Model:        cfg.LLM.SummarizeModel,
		MaxTokens:    cfg.LLM.MaxTokens,
		StalledAfter: time.Duration(cfg.Digest.StalledAfterDays) * day,
		Lookback:     time.Duration(cfg.Digest.LookbackDays) * day,
	})

	return &Container{
		Config:  cfg,
		Log:     logger,
		Pool:    pool,
		Metrics: m,
		Capture: captureSvc,
		Records: recordsSvc,
		Digest:  digestSvc,
		Guide:   guide.NewService(logger, messenger),
	}, nil
}

// Close releases the database pool.
func (c *Container) Close() {
	c.Pool.Close()
}
