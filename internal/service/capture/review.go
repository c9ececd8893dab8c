package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

// FileEntry files an inbox entry from the dashboard. An empty destination
// files it where the classifier suggested; any other value is a destination
// keyword and moves the entry there with a new record, the same way a
// "fix: <destination>" reply does.
func (s *Service) FileEntry(ctx context.Context, id uuid.UUID, destination string) (*domain.InboxLogEntry, error) {
	entry, err := s.inbox.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get inbox log: %w", err)
	}
	if entry.Status == domain.LogStatusDeleted {
		return nil, domain.ErrEntryDeleted
	}

	dest := entry.Destination
	if destination != "" {
		dest, err = domain.ResolveDestination(destination)
		if err != nil {
			return nil, domain.NewValidationError("destination", fmt.Sprintf("unknown destination %q", destination))
		}
	}
	if dest == entry.Destination && entry.Status.HasRecord() {
		return nil, fmt.Errorf("inbox log %s already filed in %s: %w", id, dest, domain.ErrConflict)
	}

	status := domain.LogStatusCorrected
	if entry.Status == domain.LogStatusNeedsReview && dest == entry.Destination {
		status = domain.LogStatusFiled
	}

	log := s.log.With(
		slog.String("entry_id", id.String()),
		slog.String("destination", dest.String()),
	)

	rec, updated, err := s.refile(ctx, refileRequest{
		entry:  entry,
		dest:   dest,
		status: status,
		guard: func(locked *domain.InboxLogEntry) error {
			if locked.Status != entry.Status || locked.Destination != entry.Destination {
				return fmt.Errorf("inbox log %s changed during review: %w", id, domain.ErrConflict)
			}
			return nil
		},
	})
	if err != nil {
		if !errors.Is(err, domain.ErrEntryDeleted) && !errors.Is(err, domain.ErrConflict) {
			log.ErrorContext(ctx, "review filing failed", slog.String("error", err.Error()))
		}
		return nil, err
	}

	log.InfoContext(ctx, "capture filed from review",
		slog.String("record_id", rec.ID.String()),
		slog.String("status", status.String()),
	)
	s.metrics.RecordCorrection(OutcomeCorrected.String())
	return updated, nil
}

// DismissEntry soft-deletes an inbox entry from the dashboard. Dismissing a
// deleted entry returns it unchanged.
func (s *Service) DismissEntry(ctx context.Context, id uuid.UUID) (*domain.InboxLogEntry, error) {
	already, err := s.markDeleted(ctx, id, "")
	if err != nil {
		return nil, err
	}
	if !already {
		s.log.InfoContext(ctx, "capture dismissed from review", slog.String("entry_id", id.String()))
		s.metrics.RecordCorrection(OutcomeDeleted.String())
	}

	entry, err := s.inbox.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get inbox log: %w", err)
	}
	return entry, nil
}
