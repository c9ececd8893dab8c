package records

import (
	"context"

	"github.com/google/uuid"
	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

// ListInbox returns inbox log entries, newest first, optionally by status.
func (s *Service) ListInbox(ctx context.Context, status *domain.LogStatus) ([]domain.InboxLogEntry, error) {
	if status != nil && !status.IsValid() {
		return nil, domain.NewValidationError("status", "invalid value")
	}
	return s.inbox.List(ctx, status)
}

func (s *Service) GetInboxEntry(ctx context.Context, id uuid.UUID) (*domain.InboxLogEntry, error) {
	return s.inbox.GetByID(ctx, id)
}
