package records

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

// ListProjects returns projects, optionally filtered by status.
func (s *Service) ListProjects(ctx context.Context, status *domain.ProjectStatus) ([]domain.Project, error) {
	if status == nil {
		return s.projects.List(ctx)
	}
	if !status.IsValid() {
		return nil, domain.NewValidationError("status", "invalid value")
	}
	return s.projects.ListByStatus(ctx, *status)
}

func (s *Service) GetProject(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *Service) CreateProject(ctx context.Context, input CreateProjectInput) (*domain.Project, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.ProjectStatusActive
	}

	now := s.now()
	p, err := s.projects.Create(ctx, &domain.Project{
		ID:         uuid.New(),
		Name:       strings.TrimSpace(input.Name),
		Status:     status,
		NextAction: strings.TrimSpace(input.NextAction),
		Notes:      strings.TrimSpace(input.Notes),
		Tags:       orEmpty(input.Tags),
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.log.InfoContext(ctx, "project created", slog.String("id", p.ID.String()))
	return p, nil
}

func (s *Service) UpdateProject(ctx context.Context, id uuid.UUID, patch domain.ProjectPatch) (*domain.Project, error) {
	if err := validateProjectPatch(patch); err != nil {
		return nil, err
	}
	p, err := s.projects.Update(ctx, id, patch, s.now())
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return p, nil
}

func (s *Service) DeleteProject(ctx context.Context, id uuid.UUID) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	s.log.InfoContext(ctx, "project deleted", slog.String("id", id.String()))
	return nil
}
