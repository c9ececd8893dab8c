package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

// Correct applies a "fix: <target>" reply to the capture its thread belongs
// to. The target is either a destination keyword or a delete keyword.
//
// A deleted entry is terminal: later corrections are refused and a repeated
// delete is acknowledged without touching the entry.
func (s *Service) Correct(ctx context.Context, input CorrectionInput) (Outcome, error) {
	if err := input.Validate(); err != nil {
		return OutcomeFailed, err
	}

	target, ok := domain.ParseCorrection(input.Text)
	if !ok {
		return OutcomeIgnored, nil
	}

	log := s.log.With(
		slog.String("message_id", input.MessageID),
		slog.String("parent_id", input.ParentID),
		slog.String("channel", input.Channel),
		slog.String("target", target),
	)

	release, ok := s.pending.Acquire(input.MessageID)
	if !ok {
		log.DebugContext(ctx, "duplicate correction ignored", slog.String("reason", "in_flight"))
		s.metrics.RecordCorrection(OutcomeDuplicate.String())
		return OutcomeDuplicate, nil
	}
	defer release()

	entry, err := s.inbox.GetByMessageID(ctx, input.ParentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.InfoContext(ctx, "correction target not found")
			return s.finishCorrection(ctx, log, input, OutcomeNotFound, notFoundMessage())
		}
		return s.failCorrection(ctx, log, input, "lookup", fmt.Errorf("lookup inbox log: %w", err))
	}

	applied, err := s.inbox.HasCorrection(ctx, input.MessageID)
	if err != nil {
		return s.failCorrection(ctx, log, input, "lookup", fmt.Errorf("lookup correction: %w", err))
	}
	if applied {
		log.DebugContext(ctx, "duplicate correction ignored", slog.String("reason", "applied"))
		s.metrics.RecordCorrection(OutcomeDuplicate.String())
		return OutcomeDuplicate, nil
	}

	deleteRequested := domain.IsDeleteKeyword(target)

	if entry.Status == domain.LogStatusDeleted {
		return s.finishOnDeleted(ctx, log, input, deleteRequested)
	}

	if deleteRequested {
		already, err := s.markDeleted(ctx, entry.ID, input.MessageID)
		switch {
		case errors.Is(err, errReplyApplied):
			log.DebugContext(ctx, "duplicate correction ignored", slog.String("reason", "applied"))
			s.metrics.RecordCorrection(OutcomeDuplicate.String())
			return OutcomeDuplicate, nil
		case err != nil:
			return s.failCorrection(ctx, log, input, "delete", err)
		case already:
			return s.finishOnDeleted(ctx, log, input, true)
		}
		log.InfoContext(ctx, "capture deleted", slog.String("entry_id", entry.ID.String()))
		return s.finishCorrection(ctx, log, input, OutcomeDeleted, deletedMessage())
	}

	dest, err := domain.ResolveDestination(target)
	if err != nil {
		log.InfoContext(ctx, "unknown correction target")
		return s.finishCorrection(ctx, log, input, OutcomeInvalidTarget, invalidTargetMessage(target))
	}
	log = log.With(slog.String("destination", dest.String()))

	rec, _, err := s.refile(ctx, refileRequest{
		entry:   entry,
		dest:    dest,
		status:  domain.LogStatusCorrected,
		replyID: input.MessageID,
	})
	switch {
	case errors.Is(err, domain.ErrEntryDeleted):
		return s.finishOnDeleted(ctx, log, input, false)
	case errors.Is(err, errReplyApplied):
		log.DebugContext(ctx, "duplicate correction ignored", slog.String("reason", "applied"))
		s.metrics.RecordCorrection(OutcomeDuplicate.String())
		return OutcomeDuplicate, nil
	case err != nil:
		return s.failCorrection(ctx, log, input, "persist", err)
	}

	attrs := []any{slog.String("record_id", rec.ID.String())}
	if entry.RecordID != nil {
		attrs = append(attrs, slog.String("previous_record_id", entry.RecordID.String()))
	}
	log.InfoContext(ctx, "capture corrected", attrs...)

	return s.finishCorrection(ctx, log, input, OutcomeCorrected, correctedMessage(rec))
}

func (s *Service) finishCorrection(
	ctx context.Context,
	log *slog.Logger,
	input CorrectionInput,
	outcome Outcome,
	text string,
) (Outcome, error) {
	s.reply(ctx, log, input.Channel, input.ParentID, text)
	s.metrics.RecordCorrection(outcome.String())
	return outcome, nil
}

// finishOnDeleted answers a correction aimed at a deleted entry.
func (s *Service) finishOnDeleted(
	ctx context.Context,
	log *slog.Logger,
	input CorrectionInput,
	deleteRequested bool,
) (Outcome, error) {
	if deleteRequested {
		return s.finishCorrection(ctx, log, input, OutcomeDeleted, alreadyDeletedMessage())
	}
	log.InfoContext(ctx, "correction refused", slog.String("error", domain.ErrEntryDeleted.Error()))
	return s.finishCorrection(ctx, log, input, OutcomeRefused, refusedMessage())
}

func (s *Service) failCorrection(
	ctx context.Context,
	log *slog.Logger,
	input CorrectionInput,
	stage string,
	err error,
) (Outcome, error) {
	log.ErrorContext(ctx, "correction failed",
		slog.String("stage", stage),
		slog.String("error", err.Error()),
	)
	s.reply(ctx, log, input.Channel, input.ParentID, failureMessage())
	s.metrics.RecordCorrection(OutcomeFailed.String())
	return OutcomeFailed, err
}
