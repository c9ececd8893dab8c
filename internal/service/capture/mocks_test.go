package capture

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

var _ classifier = &classifierMock{}

type classifierMock struct {
	ClassifyFunc func(ctx context.Context, text string, forced domain.Destination) (domain.Classification, error)

	mu    sync.Mutex
	calls []struct {
		Text   string
		Forced domain.Destination
	}
}

func (m *classifierMock) Classify(ctx context.Context, text string, forced domain.Destination) (domain.Classification, error) {
	m.mu.Lock()
	m.calls = append(m.calls, struct {
		Text   string
		Forced domain.Destination
	}{text, forced})
	m.mu.Unlock()
	return m.ClassifyFunc(ctx, text, forced)
}

func (m *classifierMock) ClassifyCalls() []struct {
	Text   string
	Forced domain.Destination
} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]struct {
		Text   string
		Forced domain.Destination
	}(nil), m.calls...)
}

var _ messenger = &messengerMock{}

type postedMessage struct {
	Channel  string
	Text     string
	ThreadTS string
}

type addedReaction struct {
	Channel string
	TS      string
	Name    string
}

// messengerMock records every call. Nil funcs succeed.
type messengerMock struct {
	PostMessageFunc func(ctx context.Context, channel, text, threadTS string) (string, error)
	AddReactionFunc func(ctx context.Context, channel, ts, name string) error

	mu        sync.Mutex
	posts     []postedMessage
	reactions []addedReaction
}

func (m *messengerMock) PostMessage(ctx context.Context, channel, text, threadTS string) (string, error) {
	m.mu.Lock()
	m.posts = append(m.posts, postedMessage{Channel: channel, Text: text, ThreadTS: threadTS})
	m.mu.Unlock()
	if m.PostMessageFunc != nil {
		return m.PostMessageFunc(ctx, channel, text, threadTS)
	}
	return "1700000099.000001", nil
}

func (m *messengerMock) AddReaction(ctx context.Context, channel, ts, name string) error {
	m.mu.Lock()
	m.reactions = append(m.reactions, addedReaction{Channel: channel, TS: ts, Name: name})
	m.mu.Unlock()
	if m.AddReactionFunc != nil {
		return m.AddReactionFunc(ctx, channel, ts, name)
	}
	return nil
}

func (m *messengerMock) Posts() []postedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]postedMessage(nil), m.posts...)
}

func (m *messengerMock) Reactions() []addedReaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]addedReaction(nil), m.reactions...)
}

var _ recorder = &recorderSpy{}

type recorderSpy struct {
	mu            sync.Mutex
	captures      map[string]int
	corrections   map[string]int
	notifications map[string]int
}

func newRecorderSpy() *recorderSpy {
	return &recorderSpy{
		captures:      map[string]int{},
		corrections:   map[string]int{},
		notifications: map[string]int{},
	}
}

func (r *recorderSpy) RecordCapture(outcome string) {
	r.mu.Lock()
	r.captures[outcome]++
	r.mu.Unlock()
}

func (r *recorderSpy) RecordCorrection(outcome string) {
	r.mu.Lock()
	r.corrections[outcome]++
	r.mu.Unlock()
}

func (r *recorderSpy) RecordNotificationError(operation string) {
	r.mu.Lock()
	r.notifications[operation]++
	r.mu.Unlock()
}

// ---------------------------------------------------------------------------
// In-memory store
// ---------------------------------------------------------------------------

// memStore is an in-memory record store with the same uniqueness rule on
// slack_message_id as the inbox_log table. RunInTx serializes transactions
// and restores a snapshot when fn fails.
type memStore struct {
	mu   sync.Mutex
	txMu sync.Mutex

	entries     map[string]domain.InboxLogEntry
	corrections map[string]uuid.UUID
	people      []domain.Person
	projects    []domain.Project
	ideas       []domain.Idea
	admin       []domain.AdminTask
	vocabulary  []domain.VocabularyWord

	// failCreate makes record creation in the given destination fail.
	failCreate map[domain.Destination]error
	// failUpdate makes every inbox log update fail.
	failUpdate  error
	updateCalls int
}

func newMemStore() *memStore {
	return &memStore{
		entries:     map[string]domain.InboxLogEntry{},
		corrections: map[string]uuid.UUID{},
		failCreate:  map[domain.Destination]error{},
	}
}

type memSnapshot struct {
	entries     map[string]domain.InboxLogEntry
	corrections map[string]uuid.UUID
	people      []domain.Person
	projects    []domain.Project
	ideas       []domain.Idea
	admin       []domain.AdminTask
	vocabulary  []domain.VocabularyWord
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make(map[string]domain.InboxLogEntry, len(s.entries))
	for k, v := range s.entries {
		entries[k] = v
	}
	corrections := make(map[string]uuid.UUID, len(s.corrections))
	for k, v := range s.corrections {
		corrections[k] = v
	}
	return memSnapshot{
		entries:     entries,
		corrections: corrections,
		people:      append([]domain.Person(nil), s.people...),
		projects:    append([]domain.Project(nil), s.projects...),
		ideas:       append([]domain.Idea(nil), s.ideas...),
		admin:       append([]domain.AdminTask(nil), s.admin...),
		vocabulary:  append([]domain.VocabularyWord(nil), s.vocabulary...),
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = snap.entries
	s.corrections = snap.corrections
	s.people = snap.people
	s.projects = snap.projects
	s.ideas = snap.ideas
	s.admin = snap.admin
	s.vocabulary = snap.vocabulary
}

func (s *memStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	snap := s.snapshot()
	if err := fn(ctx); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *memStore) GetByID(_ context.Context, id uuid.UUID) (*domain.InboxLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, fmt.Errorf("inbox_log %s: %w", id, domain.ErrNotFound)
}

// GetByIDForUpdate needs no row lock here: RunInTx already serializes.
func (s *memStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.InboxLogEntry, error) {
	return s.GetByID(ctx, id)
}

func (s *memStore) HasCorrection(_ context.Context, replyID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.corrections[replyID]
	return ok, nil
}

func (s *memStore) AddCorrection(_ context.Context, entryID uuid.UUID, replyID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.corrections[replyID]; ok {
		return fmt.Errorf("inbox_corrections %s: %w", replyID, domain.ErrAlreadyExists)
	}
	s.corrections[replyID] = entryID
	return nil
}

func (s *memStore) GetByMessageID(_ context.Context, messageID string) (*domain.InboxLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[messageID]
	if !ok {
		return nil, fmt.Errorf("inbox_log message %s: %w", messageID, domain.ErrNotFound)
	}
	return &e, nil
}

func (s *memStore) Create(_ context.Context, e *domain.InboxLogEntry) (*domain.InboxLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[e.SlackMessageID]; ok {
		return nil, fmt.Errorf("inbox_log message %s: %w", e.SlackMessageID, domain.ErrAlreadyExists)
	}
	s.entries[e.SlackMessageID] = *e
	out := *e
	return &out, nil
}

func (s *memStore) Update(_ context.Context, id uuid.UUID, patch domain.InboxLogPatch, at time.Time) (*domain.InboxLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateCalls++
	if s.failUpdate != nil {
		return nil, s.failUpdate
	}
	for k, e := range s.entries {
		if e.ID != id {
			continue
		}
		if patch.Destination != nil {
			e.Destination = *patch.Destination
		}
		if patch.RecordID != nil {
			rid := *patch.RecordID
			e.RecordID = &rid
		}
		if patch.RecordTitle != nil {
			e.RecordTitle = *patch.RecordTitle
		}
		if patch.Status != nil {
			e.Status = *patch.Status
		}
		if patch.CorrectionMessageID != nil {
			cid := *patch.CorrectionMessageID
			e.CorrectionMessageID = &cid
		}
		e.UpdatedAt = at
		s.entries[k] = e
		return &e, nil
	}
	return nil, fmt.Errorf("inbox_log %s: %w", id, domain.ErrNotFound)
}

func (s *memStore) entry(messageID string) (domain.InboxLogEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[messageID]
	return e, ok
}

func (s *memStore) counts() (entries, records int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries), len(s.people) + len(s.projects) + len(s.ideas) + len(s.admin) + len(s.vocabulary)
}

func (s *memStore) createErr(d domain.Destination) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failCreate[d]
}

type memPeople struct{ *memStore }

func (r memPeople) Create(_ context.Context, p *domain.Person) (*domain.Person, error) {
	if err := r.createErr(domain.DestinationPeople); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.people = append(r.people, *p)
	out := *p
	return &out, nil
}

type memProjects struct{ *memStore }

func (r memProjects) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	if err := r.createErr(domain.DestinationProjects); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects = append(r.projects, *p)
	out := *p
	return &out, nil
}

type memIdeas struct{ *memStore }

func (r memIdeas) Create(_ context.Context, i *domain.Idea) (*domain.Idea, error) {
	if err := r.createErr(domain.DestinationIdeas); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ideas = append(r.ideas, *i)
	out := *i
	return &out, nil
}

type memAdmin struct{ *memStore }

func (r memAdmin) Create(_ context.Context, t *domain.AdminTask) (*domain.AdminTask, error) {
	if err := r.createErr(domain.DestinationAdmin); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.admin = append(r.admin, *t)
	out := *t
	return &out, nil
}

type memVocabulary struct{ *memStore }

func (r memVocabulary) Create(_ context.Context, w *domain.VocabularyWord) (*domain.VocabularyWord, error) {
	if err := r.createErr(domain.DestinationVocabulary); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vocabulary = append(r.vocabulary, *w)
	out := *w
	return &out, nil
}

func (s *memStore) stores() Stores {
	return Stores{
		Inbox:      s,
		People:     memPeople{s},
		Projects:   memProjects{s},
		Ideas:      memIdeas{s},
		Admin:      memAdmin{s},
		Vocabulary: memVocabulary{s},
	}
}
