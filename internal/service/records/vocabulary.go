package records

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

func (s *Service) ListVocabulary(ctx context.Context) ([]domain.VocabularyWord, error) {
	return s.vocabulary.List(ctx)
}

// SearchVocabulary matches term against words and definitions.
func (s *Service) SearchVocabulary(ctx context.Context, term string) ([]domain.VocabularyWord, error) {
	term = domain.NormalizeText(term)
	if term == "" {
		return nil, domain.NewValidationError("q", "required")
	}
	if len(term) > maxSearchTerm {
		return nil, domain.NewValidationError("q", "too long")
	}
	return s.vocabulary.Search(ctx, term)
}

func (s *Service) GetVocabularyWord(ctx context.Context, id uuid.UUID) (*domain.VocabularyWord, error) {
	return s.vocabulary.GetByID(ctx, id)
}

func (s *Service) CreateVocabularyWord(ctx context.Context, input CreateVocabularyInput) (*domain.VocabularyWord, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	w, err := s.vocabulary.Create(ctx, &domain.VocabularyWord{
		ID:           uuid.New(),
		Word:         strings.TrimSpace(input.Word),
		Definition:   strings.TrimSpace(input.Definition),
		PartOfSpeech: trimmed(input.PartOfSpeech),
		Example:      trimmed(input.Example),
		Source:       trimmed(input.Source),
		Tags:         orEmpty(input.Tags),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("create vocabulary word: %w", err)
	}

	s.log.InfoContext(ctx, "vocabulary word created", slog.String("id", w.ID.String()))
	return w, nil
}

func (s *Service) UpdateVocabularyWord(ctx context.Context, id uuid.UUID, patch domain.VocabularyPatch) (*domain.VocabularyWord, error) {
	if err := validateVocabularyPatch(patch); err != nil {
		return nil, err
	}
	w, err := s.vocabulary.Update(ctx, id, patch, s.now())
	if err != nil {
		return nil, fmt.Errorf("update vocabulary word: %w", err)
	}
	return w, nil
}

// MarkWordShown records that a word was displayed to the user.
func (s *Service) MarkWordShown(ctx context.Context, id uuid.UUID) (*domain.VocabularyWord, error) {
	w, err := s.vocabulary.MarkShown(ctx, id, s.now())
	if err != nil {
		return nil, fmt.Errorf("mark word shown: %w", err)
	}
	return w, nil
}

func (s *Service) DeleteVocabularyWord(ctx context.Context, id uuid.UUID) error {
	if err := s.vocabulary.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete vocabulary word: %w", err)
	}
	s.log.InfoContext(ctx, "vocabulary word deleted", slog.String("id", id.String()))
	return nil
}
