package records

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

// ListAdminTasks returns all tasks, or only pending ones ordered by due date.
func (s *Service) ListAdminTasks(ctx context.Context, pendingOnly bool) ([]domain.AdminTask, error) {
	if pendingOnly {
		return s.admin.ListPending(ctx)
	}
	return s.admin.List(ctx)
}

func (s *Service) GetAdminTask(ctx context.Context, id uuid.UUID) (*domain.AdminTask, error) {
	return s.admin.GetByID(ctx, id)
}

func (s *Service) CreateAdminTask(ctx context.Context, input CreateAdminTaskInput) (*domain.AdminTask, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	due := input.DueDate
	if due != nil {
		d := due.UTC()
		due = &d
	}
	task, err := s.admin.Create(ctx, &domain.AdminTask{
		ID:        uuid.New(),
		Task:      strings.TrimSpace(input.Task),
		DueDate:   due,
		Status:    domain.AdminStatusPending,
		Notes:     strings.TrimSpace(input.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create admin task: %w", err)
	}

	s.log.InfoContext(ctx, "admin task created", slog.String("id", task.ID.String()))
	return task, nil
}

func (s *Service) UpdateAdminTask(ctx context.Context, id uuid.UUID, patch domain.AdminTaskPatch) (*domain.AdminTask, error) {
	if err := validateAdminTaskPatch(patch); err != nil {
		return nil, err
	}
	task, err := s.admin.Update(ctx, id, patch, s.now())
	if err != nil {
		return nil, fmt.Errorf("update admin task: %w", err)
	}
	return task, nil
}

// CompleteAdminTask marks a task done.
func (s *Service) CompleteAdminTask(ctx context.Context, id uuid.UUID) (*domain.AdminTask, error) {
	task, err := s.admin.MarkDone(ctx, id, s.now())
	if err != nil {
		return nil, fmt.Errorf("complete admin task: %w", err)
	}
	s.log.InfoContext(ctx, "admin task completed", slog.String("id", id.String()))
	return task, nil
}

func (s *Service) DeleteAdminTask(ctx context.Context, id uuid.UUID) error {
	if err := s.admin.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete admin task: %w", err)
	}
	s.log.InfoContext(ctx, "admin task deleted", slog.String("id", id.String()))
	return nil
}
