package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/secondbrain-backend/internal/domain"
	"github.com/heartmarshall/secondbrain-backend/internal/service/capture"
	"github.com/slack-go/slack/slackevents"
)

type pipeline interface {
	Capture(ctx context.Context, input capture.CaptureInput) (capture.Outcome, error)
	Correct(ctx context.Context, input capture.CorrectionInput) (capture.Outcome, error)
}

// SlackHandler receives Slack Events API deliveries. Signature checks happen
// in middleware before it runs.
type SlackHandler struct {
	pipeline pipeline
	timeout  time.Duration
	log      *slog.Logger
}

// NewSlackHandler creates a SlackHandler. Each pipeline run is bounded by timeout.
func NewSlackHandler(p pipeline, timeout time.Duration, logger *slog.Logger) *SlackHandler {
	return &SlackHandler{
		pipeline: p,
		timeout:  timeout,
		log:      logger.With("handler", "slack"),
	}
}

type okResponse struct {
	OK bool `json:"ok"`
}

type challengeResponse struct {
	Challenge string `json:"challenge"`
}

// Events handles POST /slack/events.
// Every authenticated delivery is acknowledged with {"ok":true}; pipeline
// outcomes reach the user through Slack replies only.
func (h *SlackHandler) Events(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		h.log.WarnContext(r.Context(), "unparseable slack payload", slog.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	switch event.Type {
	case slackevents.URLVerification:
		verification, ok := event.Data.(*slackevents.EventsAPIURLVerificationEvent)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid payload")
			return
		}
		writeJSON(w, http.StatusOK, challengeResponse{Challenge: verification.Challenge})
		return
	case slackevents.CallbackEvent:
		if msg, ok := event.InnerEvent.Data.(*slackevents.MessageEvent); ok {
			h.dispatch(r.Context(), msg)
		}
	}

	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func (h *SlackHandler) dispatch(reqCtx context.Context, msg *slackevents.MessageEvent) {
	if msg.SubType != "" || msg.BotID != "" {
		return
	}

	// The pipeline keeps running if Slack drops the connection.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(reqCtx), h.timeout)
	defer cancel()

	isReply := msg.ThreadTimeStamp != "" && msg.ThreadTimeStamp != msg.TimeStamp
	if isReply {
		if _, ok := domain.ParseCorrection(msg.Text); !ok {
			return
		}
		outcome, err := h.pipeline.Correct(ctx, capture.CorrectionInput{
			Text:      msg.Text,
			Channel:   msg.Channel,
			MessageID: msg.TimeStamp,
			ParentID:  msg.ThreadTimeStamp,
		})
		h.logOutcome(ctx, "correction", msg, string(outcome), err)
		return
	}

	outcome, err := h.pipeline.Capture(ctx, capture.CaptureInput{
		Text:      msg.Text,
		Channel:   msg.Channel,
		MessageID: msg.TimeStamp,
		ThreadID:  msg.ThreadTimeStamp,
	})
	h.logOutcome(ctx, "capture", msg, string(outcome), err)
}

func (h *SlackHandler) logOutcome(ctx context.Context, kind string, msg *slackevents.MessageEvent, outcome string, err error) {
	attrs := []any{
		slog.String("kind", kind),
		slog.String("message_id", msg.TimeStamp),
		slog.String("channel", msg.Channel),
		slog.String("outcome", outcome),
	}
	if err != nil {
		h.log.ErrorContext(ctx, "slack event failed", append(attrs, slog.String("error", err.Error()))...)
		return
	}
	h.log.DebugContext(ctx, "slack event handled", attrs...)
}
