package capture

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

type classifier interface {
	Classify(ctx context.Context, text string, forced domain.Destination) (domain.Classification, error)
}

type messenger interface {
	PostMessage(ctx context.Context, channel, text, threadTS string) (string, error)
	AddReaction(ctx context.Context, channel, ts, name string) error
}

type inboxLogRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.InboxLogEntry, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.InboxLogEntry, error)
	GetByMessageID(ctx context.Context, messageID string) (*domain.InboxLogEntry, error)
	Create(ctx context.Context, e *domain.InboxLogEntry) (*domain.InboxLogEntry, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.InboxLogPatch, at time.Time) (*domain.InboxLogEntry, error)
	HasCorrection(ctx context.Context, replyID string) (bool, error)
	AddCorrection(ctx context.Context, entryID uuid.UUID, replyID string, at time.Time) error
}

type peopleRepo interface {
	Create(ctx context.Context, p *domain.Person) (*domain.Person, error)
}

type projectRepo interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
}

type ideaRepo interface {
	Create(ctx context.Context, i *domain.Idea) (*domain.Idea, error)
}

type adminRepo interface {
	Create(ctx context.Context, t *domain.AdminTask) (*domain.AdminTask, error)
}

type vocabularyRepo interface {
	Create(ctx context.Context, w *domain.VocabularyWord) (*domain.VocabularyWord, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type recorder interface {
	RecordCapture(outcome string)
	RecordCorrection(outcome string)
	RecordNotificationError(operation string)
}

type noopRecorder struct{}

func (noopRecorder) RecordCapture(string)           {}
func (noopRecorder) RecordCorrection(string)        {}
func (noopRecorder) RecordNotificationError(string) {}

// Stores groups the record repositories a capture can be routed to.
type Stores struct {
	Inbox      inboxLogRepo
	People     peopleRepo
	Projects   projectRepo
	Ideas      ideaRepo
	Admin      adminRepo
	Vocabulary vocabularyRepo
}

// Service runs the capture and correction pipelines.
type Service struct {
	log        *slog.Logger
	classifier classifier
	messenger  messenger
	inbox      inboxLogRepo
	people     peopleRepo
	projects   projectRepo
	ideas      ideaRepo
	admin      adminRepo
	vocabulary vocabularyRepo
	tx         txManager
	metrics    recorder
	pending    *pendingSet
	threshold  float64
	now        func() time.Time
}

// NewService creates a capture Service. A nil metrics recorder disables metrics.
func NewService(
	log *slog.Logger,
	cls classifier,
	msg messenger,
	stores Stores,
	tx txManager,
	metrics recorder,
	threshold float64,
	pendingTTL time.Duration,
) *Service {
	if metrics == nil {
		metrics = noopRecorder{}
	}
	return &Service{
		log:        log.With("service", "capture"),
		classifier: cls,
		messenger:  msg,
		inbox:      stores.Inbox,
		people:     stores.People,
		projects:   stores.Projects,
		ideas:      stores.Ideas,
		admin:      stores.Admin,
		vocabulary: stores.Vocabulary,
		tx:         tx,
		metrics:    metrics,
		pending:    newPendingSet(pendingTTL),
		threshold:  threshold,
		now:        func() time.Time { return time.Now().UTC() },
	}
}
