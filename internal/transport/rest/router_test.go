package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/secondbrain-backend/internal/domain"
	"github.com/heartmarshall/secondbrain-backend/internal/service/digest"
	"github.com/heartmarshall/secondbrain-backend/internal/service/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type digestMock struct {
	dailyErr error
	calls    []string
}

func (m *digestMock) Daily(context.Context) (*digest.DailyResult, error) {
	m.calls = append(m.calls, "daily")
	if m.dailyErr != nil {
		return nil, m.dailyErr
	}
	return &digest.DailyResult{ActiveProjects: 2, MessageTS: "1.1"}, nil
}

func (m *digestMock) Weekly(context.Context) (*digest.WeeklyResult, error) {
	m.calls = append(m.calls, "weekly")
	return &digest.WeeklyResult{TotalCaptures: 9}, nil
}

func (m *digestMock) BackfillExamples(context.Context) (*digest.BackfillReport, error) {
	m.calls = append(m.calls, "backfill")
	return &digest.BackfillReport{}, nil
}

type guideMock struct {
	channel string
}

func (m *guideMock) PinInstructions(_ context.Context, channel string) (string, error) {
	if channel == "" {
		return "", domain.NewValidationError("channelId", "required")
	}
	m.channel = channel
	return "1700000700.000100", nil
}

// recordsMock implements only what the tests call; anything else panics
// through the nil embedded interface.
type recordsMock struct {
	recordsService
	people map[uuid.UUID]domain.Person
	list   func(followUps bool) []domain.Person
	inbox  []*domain.LogStatus
}

func (m *recordsMock) ListPeople(_ context.Context, followUps bool) ([]domain.Person, error) {
	return m.list(followUps), nil
}

func (m *recordsMock) GetPerson(_ context.Context, id uuid.UUID) (*domain.Person, error) {
	p, ok := m.people[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (m *recordsMock) CreatePerson(_ context.Context, in records.CreatePersonInput) (*domain.Person, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p := domain.Person{ID: uuid.New(), Name: in.Name, Context: in.Context}
	m.people[p.ID] = p
	return &p, nil
}

func (m *recordsMock) DeletePerson(_ context.Context, id uuid.UUID) error {
	if _, ok := m.people[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.people, id)
	return nil
}

func (m *recordsMock) ListIdeas(context.Context) ([]domain.Idea, error) {
	return nil, nil
}

func (m *recordsMock) ListInbox(_ context.Context, status *domain.LogStatus) ([]domain.InboxLogEntry, error) {
	m.inbox = append(m.inbox, status)
	if status != nil && !status.IsValid() {
		return nil, domain.NewValidationError("status", "invalid value")
	}
	return []domain.InboxLogEntry{}, nil
}

type reviewMock struct {
	entries      map[uuid.UUID]domain.InboxLogEntry
	destinations []string
}

func (m *reviewMock) FileEntry(_ context.Context, id uuid.UUID, destination string) (*domain.InboxLogEntry, error) {
	m.destinations = append(m.destinations, destination)
	e, ok := m.entries[id]
	switch {
	case !ok:
		return nil, domain.ErrNotFound
	case e.Status == domain.LogStatusDeleted:
		return nil, domain.ErrEntryDeleted
	}
	if destination != "" {
		d, err := domain.ResolveDestination(destination)
		if err != nil {
			return nil, domain.NewValidationError("destination", "unknown destination")
		}
		e.Destination = d
	}
	e.Status = domain.LogStatusFiled
	m.entries[id] = e
	return &e, nil
}

func (m *reviewMock) DismissEntry(_ context.Context, id uuid.UUID) (*domain.InboxLogEntry, error) {
	e, ok := m.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	e.Status = domain.LogStatusDeleted
	m.entries[id] = e
	return &e, nil
}

type observerSpy struct {
	routes []string
}

func (s *observerSpy) ObserveRequest(_, route string, _ int, _ time.Duration) {
	s.routes = append(s.routes, route)
}

type fixture struct {
	handler http.Handler
	digest  *digestMock
	guide   *guideMock
	records *recordsMock
	review  *reviewMock
	metrics *observerSpy
}

func newFixture(t *testing.T, cfg RouterConfig) *fixture {
	t.Helper()

	log := slog.New(slog.DiscardHandler)
	f := &fixture{
		digest:  &digestMock{},
		guide:   &guideMock{},
		records: &recordsMock{people: map[uuid.UUID]domain.Person{}},
		review:  &reviewMock{entries: map[uuid.UUID]domain.InboxLogEntry{}},
		metrics: &observerSpy{},
	}
	cfg.HTTPMetrics = f.metrics
	f.handler = NewRouter(log, Handlers{
		Health:  NewHealthHandler(&dbPingerMock{}, "test", nil),
		Slack:   NewSlackHandler(&pipelineMock{}, time.Minute, log),
		Cron:    NewCronHandler(f.digest, log),
		Admin:   NewAdminHandler(f.guide, log),
		Records: NewRecordsHandler(f.records, log),
		Review:  NewReviewHandler(f.review, log),
	}, cfg)
	return f
}

func (f *fixture) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestRouter_CronRequiresBearer(t *testing.T) {
	t.Parallel()

	f := newFixture(t, RouterConfig{CronSecret: "cron-secret"})

	rec := f.do(http.MethodGet, "/cron/daily-digest", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, f.digest.calls)

	auth := map[string]string{"Authorization": "Bearer cron-secret"}
	rec = f.do(http.MethodGet, "/cron/daily-digest", "", auth)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"result":{"activeProjects":2,"stalledProjects":0,"overdueAdmin":0,"pendingFollowUps":0,"messageTs":"1.1"}}`, rec.Body.String())

	assert.Equal(t, http.StatusOK, f.do(http.MethodPost, "/cron/weekly-review", "", auth).Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodPost, "/cron/backfill-examples", "", auth).Code)
	assert.Equal(t, []string{"daily", "weekly", "backfill"}, f.digest.calls)
}

func TestRouter_CronMissingChannel(t *testing.T) {
	t.Parallel()

	f := newFixture(t, RouterConfig{})
	f.digest.dailyErr = digest.ErrNoChannel

	rec := f.do(http.MethodGet, "/cron/daily-digest", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "digest channel not configured")
}

func TestRouter_PinInstructions(t *testing.T) {
	t.Parallel()

	f := newFixture(t, RouterConfig{AdminSecret: "admin-secret"})
	secret := map[string]string{"X-Admin-Secret": "admin-secret"}

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodPost, "/admin/pin-instructions", `{"channelId":"C1"}`, nil).Code)

	rec := f.do(http.MethodPost, "/admin/pin-instructions", `{"channelId":"C1"}`, secret)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "C1", f.guide.channel)
	assert.JSONEq(t, `{"ok":true,"message":"Instructions posted and pinned","messageTs":"1700000700.000100"}`, rec.Body.String())

	rec = f.do(http.MethodPost, "/admin/pin-instructions", `{}`, secret)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"validation failed","fields":[{"field":"channelId","message":"required"}]}`, rec.Body.String())
}

func TestRouter_PeopleCRUD(t *testing.T) {
	t.Parallel()

	f := newFixture(t, RouterConfig{})

	rec := f.do(http.MethodPost, "/api/people", `{"name":"Sarah","context":"Acme Corp"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.Person
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "Sarah", created.Name)

	rec = f.do(http.MethodGet, "/api/people/"+created.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, http.StatusNoContent, f.do(http.MethodDelete, "/api/people/"+created.ID.String(), "", nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/api/people/"+created.ID.String(), "", nil).Code)
}

func TestRouter_RecordErrors(t *testing.T) {
	t.Parallel()

	f := newFixture(t, RouterConfig{})

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/api/people/not-a-uuid", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPost, "/api/people", `{"name":""}`, nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPost, "/api/people", `{"nickname":"x"}`, nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/api/people?followUps=maybe", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/api/inbox?status=bogus", "", nil).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, f.do(http.MethodPut, "/api/people", "", nil).Code)
}

func TestRouter_ListFilters(t *testing.T) {
	t.Parallel()

	f := newFixture(t, RouterConfig{})
	var gotFollowUps bool
	f.records.list = func(followUps bool) []domain.Person {
		gotFollowUps = followUps
		return nil
	}

	rec := f.do(http.MethodGet, "/api/people?followUps=true", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotFollowUps)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = f.do(http.MethodGet, "/api/ideas", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = f.do(http.MethodGet, "/api/inbox?status=needs_review", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, f.records.inbox, 1)
	assert.Equal(t, domain.LogStatus("needs_review"), *f.records.inbox[0])
}

func TestRouter_DashboardRequiresAdminSecret(t *testing.T) {
	t.Parallel()

	f := newFixture(t, RouterConfig{AdminSecret: "admin-secret"})

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/ideas", "", nil).Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/ideas", "", map[string]string{"X-Admin-Secret": "admin-secret"}).Code)
}

func TestRouter_InboxReviewActions(t *testing.T) {
	t.Parallel()

	f := newFixture(t, RouterConfig{AdminSecret: "admin-secret"})
	secret := map[string]string{"X-Admin-Secret": "admin-secret"}
	held := domain.InboxLogEntry{ID: uuid.New(), Destination: domain.DestinationAdmin, Status: domain.LogStatusNeedsReview}
	f.review.entries[held.ID] = held
	base := "/api/inbox/" + held.ID.String()

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodPost, base+"/file", `{}`, nil).Code)

	rec := f.do(http.MethodPost, base+"/file", `{"destination":"idea"}`, secret)
	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.InboxLogEntry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, domain.DestinationIdeas, got.Destination)
	assert.Equal(t, domain.LogStatusFiled, got.Status)

	assert.Equal(t, http.StatusOK, f.do(http.MethodPost, base+"/file", "", secret).Code)
	assert.Equal(t, []string{"idea", ""}, f.review.destinations)

	rec = f.do(http.MethodPost, base+"/file", `{"destination":"recipes"}`, secret)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"destination"`)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPost, base+"/file", `{"dest":"idea"}`, secret).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPost, "/api/inbox/nope/file", `{}`, secret).Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodPost, "/api/inbox/"+uuid.NewString()+"/delete", "", secret).Code)

	rec = f.do(http.MethodPost, base+"/delete", "", secret)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"deleted"`)

	rec = f.do(http.MethodPost, base+"/file", `{"destination":"project"}`, secret)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"entry is deleted"}`, rec.Body.String())
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	t.Parallel()

	f := newFixture(t, RouterConfig{})

	rec := f.do(http.MethodGet, "/live", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	f.do(http.MethodGet, "/api/ideas", "", nil)
	assert.Equal(t, []string{"GET /live", "GET /api/ideas"}, f.metrics.routes)
}

func TestRouter_WebhookAliases(t *testing.T) {
	t.Parallel()

	f := newFixture(t, RouterConfig{})
	body := `{"type":"url_verification","challenge":"abc"}`

	for _, path := range []string{"/slack/events", "/api/webhooks/slack/capture"} {
		rec := f.do(http.MethodPost, path, body, nil)
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, `{"challenge":"abc"}`, rec.Body.String())
	}
}
