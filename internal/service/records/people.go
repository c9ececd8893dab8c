package records

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

// ListPeople returns everyone, most recently touched first. With
// followUpsOnly set only people with open follow-ups are returned.
func (s *Service) ListPeople(ctx context.Context, followUpsOnly bool) ([]domain.Person, error) {
	if followUpsOnly {
		return s.people.ListWithFollowUps(ctx)
	}
	return s.people.List(ctx)
}

func (s *Service) GetPerson(ctx context.Context, id uuid.UUID) (*domain.Person, error) {
	return s.people.GetByID(ctx, id)
}

func (s *Service) CreatePerson(ctx context.Context, input CreatePersonInput) (*domain.Person, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	p, err := s.people.Create(ctx, &domain.Person{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(input.Name),
		Context:       strings.TrimSpace(input.Context),
		FollowUps:     orEmpty(input.FollowUps),
		Tags:          orEmpty(input.Tags),
		LastTouchedAt: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return nil, fmt.Errorf("create person: %w", err)
	}

	s.log.InfoContext(ctx, "person created", slog.String("id", p.ID.String()))
	return p, nil
}

func (s *Service) UpdatePerson(ctx context.Context, id uuid.UUID, patch domain.PersonPatch) (*domain.Person, error) {
	if err := validatePersonPatch(patch); err != nil {
		return nil, err
	}
	p, err := s.people.Update(ctx, id, patch, s.now())
	if err != nil {
		return nil, fmt.Errorf("update person: %w", err)
	}
	return p, nil
}

func (s *Service) DeletePerson(ctx context.Context, id uuid.UUID) error {
	if err := s.people.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	s.log.InfoContext(ctx, "person deleted", slog.String("id", id.String()))
	return nil
}
