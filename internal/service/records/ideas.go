package records

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

func (s *Service) ListIdeas(ctx context.Context) ([]domain.Idea, error) {
	return s.ideas.List(ctx)
}

func (s *Service) GetIdea(ctx context.Context, id uuid.UUID) (*domain.Idea, error) {
	return s.ideas.GetByID(ctx, id)
}

func (s *Service) CreateIdea(ctx context.Context, input CreateIdeaInput) (*domain.Idea, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	idea, err := s.ideas.Create(ctx, &domain.Idea{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(input.Title),
		OneLiner:  strings.TrimSpace(input.OneLiner),
		Notes:     strings.TrimSpace(input.Notes),
		Tags:      orEmpty(input.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create idea: %w", err)
	}

	s.log.InfoContext(ctx, "idea created", slog.String("id", idea.ID.String()))
	return idea, nil
}

func (s *Service) UpdateIdea(ctx context.Context, id uuid.UUID, patch domain.IdeaPatch) (*domain.Idea, error) {
	if err := validateIdeaPatch(patch); err != nil {
		return nil, err
	}
	idea, err := s.ideas.Update(ctx, id, patch, s.now())
	if err != nil {
		return nil, fmt.Errorf("update idea: %w", err)
	}
	return idea, nil
}

func (s *Service) DeleteIdea(ctx context.Context, id uuid.UUID) error {
	if err := s.ideas.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete idea: %w", err)
	}
	s.log.InfoContext(ctx, "idea deleted", slog.String("id", id.String()))
	return nil
}
