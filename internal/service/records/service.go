package records

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

type peopleRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Person, error)
	List(ctx context.Context) ([]domain.Person, error)
	ListWithFollowUps(ctx context.Context) ([]domain.Person, error)
	Create(ctx context.Context, p *domain.Person) (*domain.Person, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.PersonPatch, at time.Time) (*domain.Person, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type projectRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	ListByStatus(ctx context.Context, status domain.ProjectStatus) ([]domain.Project, error)
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.ProjectPatch, at time.Time) (*domain.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ideaRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Idea, error)
	List(ctx context.Context) ([]domain.Idea, error)
	Create(ctx context.Context, i *domain.Idea) (*domain.Idea, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.IdeaPatch, at time.Time) (*domain.Idea, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type adminRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AdminTask, error)
	List(ctx context.Context) ([]domain.AdminTask, error)
	ListPending(ctx context.Context) ([]domain.AdminTask, error)
	Create(ctx context.Context, t *domain.AdminTask) (*domain.AdminTask, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.AdminTaskPatch, at time.Time) (*domain.AdminTask, error)
	MarkDone(ctx context.Context, id uuid.UUID, at time.Time) (*domain.AdminTask, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type vocabularyRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.VocabularyWord, error)
	List(ctx context.Context) ([]domain.VocabularyWord, error)
	Search(ctx context.Context, term string) ([]domain.VocabularyWord, error)
	Create(ctx context.Context, w *domain.VocabularyWord) (*domain.VocabularyWord, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.VocabularyPatch, at time.Time) (*domain.VocabularyWord, error)
	MarkShown(ctx context.Context, id uuid.UUID, at time.Time) (*domain.VocabularyWord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type inboxLogRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.InboxLogEntry, error)
	List(ctx context.Context, status *domain.LogStatus) ([]domain.InboxLogEntry, error)
}

// Repos groups the repositories the records service reads and writes.
type Repos struct {
	People     peopleRepo
	Projects   projectRepo
	Ideas      ideaRepo
	Admin      adminRepo
	Vocabulary vocabularyRepo
	Inbox      inboxLogRepo
}

// Service exposes manual record management for the dashboard API.
type Service struct {
	log        *slog.Logger
	people     peopleRepo
	projects   projectRepo
	ideas      ideaRepo
	admin      adminRepo
	vocabulary vocabularyRepo
	inbox      inboxLogRepo
	now        func() time.Time
}

// NewService creates a records Service.
func NewService(log *slog.Logger, repos Repos) *Service {
	return &Service{
		log:        log.With("service", "records"),
		people:     repos.People,
		projects:   repos.Projects,
		ideas:      repos.Ideas,
		admin:      repos.Admin,
		vocabulary: repos.Vocabulary,
		inbox:      repos.Inbox,
		now:        func() time.Time { return time.Now().UTC() },
	}
}
