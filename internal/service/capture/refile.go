package capture

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

// errReplyApplied means the correction reply was already applied, possibly by
// another delivery that committed first.
var errReplyApplied = errors.New("correction reply already applied")

// refileRequest moves an inbox entry into a destination with a new record.
type refileRequest struct {
	entry  *domain.InboxLogEntry
	dest   domain.Destination
	status domain.LogStatus
	// replyID is the Slack reply that asked for the change; empty for
	// dashboard actions.
	replyID string
	// guard re-checks the locked entry; a non-nil error aborts the change.
	guard func(locked *domain.InboxLogEntry) error
}

// refile re-classifies the entry's text into req.dest, creates the record and
// points the entry at it. The classifier runs outside the transaction; the
// entry is locked and re-checked before anything is written, so a concurrent
// delete wins and the new record is rolled back.
func (s *Service) refile(ctx context.Context, req refileRequest) (domain.CapturedRecord, *domain.InboxLogEntry, error) {
	// An old prefix in the original text would contradict the new target.
	original := req.entry.OriginalText
	if _, rest, ok := domain.ParseDestinationPrefix(original); ok {
		original = rest
	}
	forced, text, _ := domain.ParseDestinationPrefix(domain.WithPrefix(req.dest, original))

	cls, err := s.classifier.Classify(ctx, text, forced)
	if err != nil {
		return domain.CapturedRecord{}, nil, fmt.Errorf("classify: %w", err)
	}
	cls.Destination = req.dest
	cls.Confidence = 1.0

	now := s.now()
	var (
		rec     domain.CapturedRecord
		updated *domain.InboxLogEntry
	)
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		locked, err := s.lockLive(ctx, req.entry.ID, req.replyID)
		if err != nil {
			return err
		}
		if req.guard != nil {
			if err := req.guard(locked); err != nil {
				return err
			}
		}

		created, err := s.routeAndCreate(ctx, cls, now)
		if err != nil {
			return fmt.Errorf("create %s record: %w", req.dest, err)
		}
		rec = created

		patch := domain.InboxLogPatch{
			Destination: &req.dest,
			RecordID:    &created.ID,
			RecordTitle: &created.Title,
			Status:      &req.status,
		}
		if req.replyID != "" {
			patch.CorrectionMessageID = &req.replyID
		}
		updated, err = s.inbox.Update(ctx, req.entry.ID, patch, now)
		if err != nil {
			return fmt.Errorf("update inbox log: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.CapturedRecord{}, nil, err
	}
	return rec, updated, nil
}

// markDeleted soft-deletes the entry. It reports alreadyDeleted without
// writing when the locked entry is deleted already.
func (s *Service) markDeleted(ctx context.Context, id uuid.UUID, replyID string) (alreadyDeleted bool, err error) {
	now := s.now()
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.lockLive(ctx, id, replyID); err != nil {
			return err
		}

		status := domain.LogStatusDeleted
		patch := domain.InboxLogPatch{Status: &status}
		if replyID != "" {
			patch.CorrectionMessageID = &replyID
		}
		if _, err := s.inbox.Update(ctx, id, patch, now); err != nil {
			return fmt.Errorf("mark deleted: %w", err)
		}
		return nil
	})
	if errors.Is(err, domain.ErrEntryDeleted) {
		return true, nil
	}
	return false, err
}

// lockLive locks the entry for the rest of the transaction. It fails with
// domain.ErrEntryDeleted once the entry is deleted and with errReplyApplied
// when replyID was recorded before.
func (s *Service) lockLive(ctx context.Context, id uuid.UUID, replyID string) (*domain.InboxLogEntry, error) {
	locked, err := s.inbox.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lock inbox log: %w", err)
	}
	if locked.Status == domain.LogStatusDeleted {
		return nil, domain.ErrEntryDeleted
	}
	if replyID == "" {
		return locked, nil
	}
	if err := s.inbox.AddCorrection(ctx, id, replyID, s.now()); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, errReplyApplied
		}
		return nil, fmt.Errorf("record correction: %w", err)
	}
	return locked, nil
}
