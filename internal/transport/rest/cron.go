package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/secondbrain-backend/internal/service/digest"
)

type digestService interface {
	Daily(ctx context.Context) (*digest.DailyResult, error)
	Weekly(ctx context.Context) (*digest.WeeklyResult, error)
	BackfillExamples(ctx context.Context) (*digest.BackfillReport, error)
}

// CronHandler serves scheduled jobs. Authentication is applied by middleware.
type CronHandler struct {
	digest digestService
	log    *slog.Logger
}

// NewCronHandler creates a CronHandler.
func NewCronHandler(d digestService, logger *slog.Logger) *CronHandler {
	return &CronHandler{
		digest: d,
		log:    logger.With("handler", "cron"),
	}
}

type jobResponse struct {
	OK     bool `json:"ok"`
	Result any  `json:"result"`
}

// DailyDigest handles GET|POST /cron/daily-digest.
func (h *CronHandler) DailyDigest(w http.ResponseWriter, r *http.Request) {
	res, err := h.digest.Daily(r.Context())
	h.respond(w, r, "daily digest", res, err)
}

// WeeklyReview handles GET|POST /cron/weekly-review.
func (h *CronHandler) WeeklyReview(w http.ResponseWriter, r *http.Request) {
	res, err := h.digest.Weekly(r.Context())
	h.respond(w, r, "weekly review", res, err)
}

// BackfillExamples handles GET|POST /cron/backfill-examples.
func (h *CronHandler) BackfillExamples(w http.ResponseWriter, r *http.Request) {
	res, err := h.digest.BackfillExamples(r.Context())
	h.respond(w, r, "backfill examples", res, err)
}

func (h *CronHandler) respond(w http.ResponseWriter, r *http.Request, job string, res any, err error) {
	if errors.Is(err, digest.ErrNoChannel) {
		writeError(w, http.StatusInternalServerError, "digest channel not configured")
		return
	}
	if err != nil {
		h.log.ErrorContext(r.Context(), "job failed",
			slog.String("job", job),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to run "+job)
		return
	}
	writeJSON(w, http.StatusOK, jobResponse{OK: true, Result: res})
}
