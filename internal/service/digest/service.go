package digest

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

// ErrNoChannel is returned when no digest channel is configured.
var ErrNoChannel = errors.New("digest channel not configured")

type summarizer interface {
	Complete(ctx context.Context, model, prompt string, maxTokens int) (string, error)
}

type poster interface {
	PostMessage(ctx context.Context, channel, text, threadTS string) (string, error)
}

type projectRepo interface {
	ListByStatus(ctx context.Context, status domain.ProjectStatus) ([]domain.Project, error)
	ListStalled(ctx context.Context, before time.Time) ([]domain.Project, error)
	ListCompletedSince(ctx context.Context, since time.Time) ([]domain.Project, error)
}

type adminRepo interface {
	ListOverdue(ctx context.Context, now time.Time) ([]domain.AdminTask, error)
	ListDueBetween(ctx context.Context, from, to time.Time) ([]domain.AdminTask, error)
}

type peopleRepo interface {
	ListWithFollowUps(ctx context.Context) ([]domain.Person, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}

type ideaRepo interface {
	CountSince(ctx context.Context, since time.Time) (int, error)
}

type vocabularyRepo interface {
	PickForReview(ctx context.Context) (*domain.VocabularyWord, error)
	MarkShown(ctx context.Context, id uuid.UUID, at time.Time) (*domain.VocabularyWord, error)
	ListMissingExample(ctx context.Context) ([]domain.VocabularyWord, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.VocabularyPatch, at time.Time) (*domain.VocabularyWord, error)
	Count(ctx context.Context) (int, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}

type inboxLogRepo interface {
	ActivitySince(ctx context.Context, since time.Time) (domain.InboxActivity, error)
}

// Repos groups the read contracts the digest draws on.
type Repos struct {
	Projects   projectRepo
	Admin      adminRepo
	People     peopleRepo
	Ideas      ideaRepo
	Vocabulary vocabularyRepo
	Inbox      inboxLogRepo
}

// Options configures the generator.
type Options struct {
	Channel      string
	Model        string
	MaxTokens    int
	StalledAfter time.Duration
	Lookback     time.Duration
}

// Service builds the daily digest, the weekly review and vocabulary examples.
type Service struct {
	log        *slog.Logger
	llm        summarizer
	poster     poster
	projects   projectRepo
	admin      adminRepo
	people     peopleRepo
	ideas      ideaRepo
	vocabulary vocabularyRepo
	inbox      inboxLogRepo
	opts       Options
	now        func() time.Time
}

// NewService creates a digest Service.
func NewService(log *slog.Logger, llm summarizer, p poster, repos Repos, opts Options) *Service {
	return &Service{
		log:        log.With("service", "digest"),
		llm:        llm,
		poster:     p,
		projects:   repos.Projects,
		admin:      repos.Admin,
		people:     repos.People,
		ideas:      repos.Ideas,
		vocabulary: repos.Vocabulary,
		inbox:      repos.Inbox,
		opts:       opts,
		now:        func() time.Time { return time.Now().UTC() },
	}
}
