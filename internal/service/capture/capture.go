package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

// Capture turns one inbound message into a filed record or a needs_review
// log entry. Each message id is processed at most once.
//
// Failures are reported to the user in the message thread whenever the
// message can be addressed, and returned with OutcomeFailed.
func (s *Service) Capture(ctx context.Context, input CaptureInput) (Outcome, error) {
	if err := input.Validate(); err != nil {
		if input.Channel == "" || input.MessageID == "" {
			return OutcomeFailed, err
		}
		log := s.log.With(slog.String("message_id", input.MessageID), slog.String("channel", input.Channel))
		return s.failCapture(ctx, log, input, "validate", "", err)
	}

	log := s.log.With(
		slog.String("message_id", input.MessageID),
		slog.String("channel", input.Channel),
	)

	release, ok := s.pending.Acquire(input.MessageID)
	if !ok {
		log.DebugContext(ctx, "duplicate delivery ignored", slog.String("reason", "in_flight"))
		s.metrics.RecordCapture(OutcomeDuplicate.String())
		return OutcomeDuplicate, nil
	}
	defer release()

	_, err := s.inbox.GetByMessageID(ctx, input.MessageID)
	switch {
	case err == nil:
		log.DebugContext(ctx, "duplicate delivery ignored", slog.String("reason", "logged"))
		s.metrics.RecordCapture(OutcomeDuplicate.String())
		return OutcomeDuplicate, nil
	case !errors.Is(err, domain.ErrNotFound):
		return s.failCapture(ctx, log, input, "lookup", "", fmt.Errorf("lookup inbox log: %w", err))
	}

	text := input.Text
	forced, rest, hasPrefix := domain.ParseDestinationPrefix(input.Text)
	if hasPrefix {
		text = rest
	}

	cls, err := s.classifier.Classify(ctx, text, forced)
	if err != nil {
		return s.failCapture(ctx, log, input, "classify", forced, fmt.Errorf("classify: %w", err))
	}
	if hasPrefix {
		cls.Destination = forced
		cls.Confidence = 1.0
	}
	log = log.With(slog.String("destination", cls.Destination.String()))

	now := s.now()
	entry := domain.InboxLogEntry{
		ID:             uuid.New(),
		OriginalText:   input.Text,
		Destination:    cls.Destination,
		RecordTitle:    cls.Title,
		Confidence:     cls.Confidence,
		SlackMessageID: input.MessageID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if cls.Confidence < s.threshold {
		entry.Status = domain.LogStatusNeedsReview
		if _, err := s.inbox.Create(ctx, &entry); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				log.DebugContext(ctx, "duplicate delivery ignored", slog.String("reason", "concurrent"))
				s.metrics.RecordCapture(OutcomeDuplicate.String())
				return OutcomeDuplicate, nil
			}
			return s.failCapture(ctx, log, input, "log", cls.Destination, fmt.Errorf("create inbox log: %w", err))
		}

		log.InfoContext(ctx, "capture held for review", slog.Float64("confidence", cls.Confidence))
		s.reply(ctx, log, input.Channel, input.replyThread(), reviewMessage(cls))
		s.metrics.RecordCapture(OutcomeNeedsReview.String())
		return OutcomeNeedsReview, nil
	}

	var (
		rec       domain.CapturedRecord
		duplicate bool
	)
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		created, err := s.routeAndCreate(ctx, cls, now)
		if err != nil {
			return fmt.Errorf("create %s record: %w", cls.Destination, err)
		}
		rec = created

		entry.Status = domain.LogStatusFiled
		entry.RecordID = &created.ID
		entry.RecordTitle = created.Title
		if _, err := s.inbox.Create(ctx, &entry); err != nil {
			duplicate = errors.Is(err, domain.ErrAlreadyExists)
			return fmt.Errorf("create inbox log: %w", err)
		}
		return nil
	})
	if duplicate {
		log.DebugContext(ctx, "duplicate delivery ignored", slog.String("reason", "concurrent"))
		s.metrics.RecordCapture(OutcomeDuplicate.String())
		return OutcomeDuplicate, nil
	}
	if err != nil {
		return s.failCapture(ctx, log, input, "persist", cls.Destination, err)
	}

	log.InfoContext(ctx, "capture filed",
		slog.String("record_id", rec.ID.String()),
		slog.Float64("confidence", cls.Confidence),
	)

	s.react(ctx, log, input.Channel, input.MessageID, reactionFiled)
	s.reply(ctx, log, input.Channel, input.replyThread(), filedMessage(rec, cls.Confidence))
	s.metrics.RecordCapture(OutcomeFiled.String())
	return OutcomeFiled, nil
}

func (s *Service) failCapture(
	ctx context.Context,
	log *slog.Logger,
	input CaptureInput,
	stage string,
	dest domain.Destination,
	err error,
) (Outcome, error) {
	log.ErrorContext(ctx, "capture failed",
		slog.String("stage", stage),
		slog.String("destination", dest.String()),
		slog.String("error", err.Error()),
	)
	s.reply(ctx, log, input.Channel, input.replyThread(), failureMessage())
	s.metrics.RecordCapture(OutcomeFailed.String())
	return OutcomeFailed, err
}

// reply and react are best effort: a delivery failure is logged and counted
// but never changes the pipeline outcome.

func (s *Service) reply(ctx context.Context, log *slog.Logger, channel, threadTS, text string) {
	if _, err := s.messenger.PostMessage(ctx, channel, text, threadTS); err != nil {
		log.WarnContext(ctx, "reply not delivered", slog.String("error", err.Error()))
		s.metrics.RecordNotificationError("post_message")
	}
}

func (s *Service) react(ctx context.Context, log *slog.Logger, channel, ts, name string) {
	if err := s.messenger.AddReaction(ctx, channel, ts, name); err != nil {
		log.WarnContext(ctx, "reaction not added", slog.String("error", err.Error()))
		s.metrics.RecordNotificationError("add_reaction")
	}
}
