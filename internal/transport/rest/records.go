package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/heartmarshall/secondbrain-backend/internal/domain"
	"github.com/heartmarshall/secondbrain-backend/internal/service/records"
)

type recordsService interface {
	ListPeople(ctx context.Context, followUpsOnly bool) ([]domain.Person, error)
	GetPerson(ctx context.Context, id uuid.UUID) (*domain.Person, error)
	CreatePerson(ctx context.Context, input records.CreatePersonInput) (*domain.Person, error)
	UpdatePerson(ctx context.Context, id uuid.UUID, patch domain.PersonPatch) (*domain.Person, error)
	DeletePerson(ctx context.Context, id uuid.UUID) error

	ListProjects(ctx context.Context, status *domain.ProjectStatus) ([]domain.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	CreateProject(ctx context.Context, input records.CreateProjectInput) (*domain.Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, patch domain.ProjectPatch) (*domain.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error

	ListIdeas(ctx context.Context) ([]domain.Idea, error)
	GetIdea(ctx context.Context, id uuid.UUID) (*domain.Idea, error)
	CreateIdea(ctx context.Context, input records.CreateIdeaInput) (*domain.Idea, error)
	UpdateIdea(ctx context.Context, id uuid.UUID, patch domain.IdeaPatch) (*domain.Idea, error)
	DeleteIdea(ctx context.Context, id uuid.UUID) error

	ListAdminTasks(ctx context.Context, pendingOnly bool) ([]domain.AdminTask, error)
	GetAdminTask(ctx context.Context, id uuid.UUID) (*domain.AdminTask, error)
	CreateAdminTask(ctx context.Context, input records.CreateAdminTaskInput) (*domain.AdminTask, error)
	UpdateAdminTask(ctx context.Context, id uuid.UUID, patch domain.AdminTaskPatch) (*domain.AdminTask, error)
	CompleteAdminTask(ctx context.Context, id uuid.UUID) (*domain.AdminTask, error)
	DeleteAdminTask(ctx context.Context, id uuid.UUID) error

	ListVocabulary(ctx context.Context) ([]domain.VocabularyWord, error)
	SearchVocabulary(ctx context.Context, term string) ([]domain.VocabularyWord, error)
	GetVocabularyWord(ctx context.Context, id uuid.UUID) (*domain.VocabularyWord, error)
	CreateVocabularyWord(ctx context.Context, input records.CreateVocabularyInput) (*domain.VocabularyWord, error)
	UpdateVocabularyWord(ctx context.Context, id uuid.UUID, patch domain.VocabularyPatch) (*domain.VocabularyWord, error)
	MarkWordShown(ctx context.Context, id uuid.UUID) (*domain.VocabularyWord, error)
	DeleteVocabularyWord(ctx context.Context, id uuid.UUID) error

	ListInbox(ctx context.Context, status *domain.LogStatus) ([]domain.InboxLogEntry, error)
	GetInboxEntry(ctx context.Context, id uuid.UUID) (*domain.InboxLogEntry, error)
}

// RecordsHandler serves the dashboard JSON API over the five record tables
// and the inbox log.
type RecordsHandler struct {
	svc recordsService
	log *slog.Logger
}

// NewRecordsHandler creates a RecordsHandler.
func NewRecordsHandler(svc recordsService, logger *slog.Logger) *RecordsHandler {
	return &RecordsHandler{
		svc: svc,
		log: logger.With("handler", "records"),
	}
}

// Register mounts the dashboard routes on mux.
func (h *RecordsHandler) Register(mux *http.ServeMux, wrap func(http.Handler) http.Handler) {
	route := func(pattern string, fn http.HandlerFunc) { mux.Handle(pattern, wrap(fn)) }

	route("GET /api/people", h.listPeople)
	route("POST /api/people", create(h, h.svc.CreatePerson))
	route("GET /api/people/{id}", get(h, h.svc.GetPerson))
	route("PATCH /api/people/{id}", update(h, h.svc.UpdatePerson))
	route("DELETE /api/people/{id}", remove(h, h.svc.DeletePerson))

	route("GET /api/projects", h.listProjects)
	route("POST /api/projects", create(h, h.svc.CreateProject))
	route("GET /api/projects/{id}", get(h, h.svc.GetProject))
	route("PATCH /api/projects/{id}", update(h, h.svc.UpdateProject))
	route("DELETE /api/projects/{id}", remove(h, h.svc.DeleteProject))

	route("GET /api/ideas", list(h, h.svc.ListIdeas))
	route("POST /api/ideas", create(h, h.svc.CreateIdea))
	route("GET /api/ideas/{id}", get(h, h.svc.GetIdea))
	route("PATCH /api/ideas/{id}", update(h, h.svc.UpdateIdea))
	route("DELETE /api/ideas/{id}", remove(h, h.svc.DeleteIdea))

	route("GET /api/admin", h.listAdminTasks)
	route("POST /api/admin", create(h, h.svc.CreateAdminTask))
	route("GET /api/admin/{id}", get(h, h.svc.GetAdminTask))
	route("PATCH /api/admin/{id}", update(h, h.svc.UpdateAdminTask))
	route("DELETE /api/admin/{id}", remove(h, h.svc.DeleteAdminTask))
	route("POST /api/admin/{id}/done", get(h, h.svc.CompleteAdminTask))

	route("GET /api/vocabulary", list(h, h.svc.ListVocabulary))
	route("GET /api/vocabulary/search", h.searchVocabulary)
	route("POST /api/vocabulary", create(h, h.svc.CreateVocabularyWord))
	route("GET /api/vocabulary/{id}", get(h, h.svc.GetVocabularyWord))
	route("PATCH /api/vocabulary/{id}", update(h, h.svc.UpdateVocabularyWord))
	route("DELETE /api/vocabulary/{id}", remove(h, h.svc.DeleteVocabularyWord))
	route("POST /api/vocabulary/{id}/shown", get(h, h.svc.MarkWordShown))

	route("GET /api/inbox", h.listInbox)
	route("GET /api/inbox/{id}", get(h, h.svc.GetInboxEntry))
}

func (h *RecordsHandler) listPeople(w http.ResponseWriter, r *http.Request) {
	followUps, ok := boolQuery(w, r, "followUps")
	if !ok {
		return
	}
	items, err := h.svc.ListPeople(r.Context(), followUps)
	writeList(h, w, r, items, err)
}

func (h *RecordsHandler) listProjects(w http.ResponseWriter, r *http.Request) {
	var status *domain.ProjectStatus
	if v := r.URL.Query().Get("status"); v != "" {
		s := domain.ProjectStatus(v)
		if !s.IsValid() {
			writeError(w, http.StatusBadRequest, "invalid status")
			return
		}
		status = &s
	}
	items, err := h.svc.ListProjects(r.Context(), status)
	writeList(h, w, r, items, err)
}

func (h *RecordsHandler) listAdminTasks(w http.ResponseWriter, r *http.Request) {
	pending, ok := boolQuery(w, r, "pending")
	if !ok {
		return
	}
	items, err := h.svc.ListAdminTasks(r.Context(), pending)
	writeList(h, w, r, items, err)
}

func (h *RecordsHandler) searchVocabulary(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.SearchVocabulary(r.Context(), r.URL.Query().Get("q"))
	writeList(h, w, r, items, err)
}

func (h *RecordsHandler) listInbox(w http.ResponseWriter, r *http.Request) {
	var status *domain.LogStatus
	if v := r.URL.Query().Get("status"); v != "" {
		s := domain.LogStatus(v)
		status = &s
	}
	items, err := h.svc.ListInbox(r.Context(), status)
	writeList(h, w, r, items, err)
}

func writeList[T any](h *RecordsHandler, w http.ResponseWriter, r *http.Request, items []T, err error) {
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, items)
}

func list[T any](h *RecordsHandler, fn func(context.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := fn(r.Context())
		writeList(h, w, r, items, err)
	}
}

// get also serves the POST actions that take only an id.
func get[T any](h *RecordsHandler, fn func(context.Context, uuid.UUID) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		item, err := fn(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

func create[In, T any](h *RecordsHandler, fn func(context.Context, In) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input In
		if !decodeJSON(w, r, &input) {
			return
		}
		item, err := fn(r.Context(), input)
		if err != nil {
			writeServiceError(w, r, h.log, err)
			return
		}
		writeJSON(w, http.StatusCreated, item)
	}
}

func update[P, T any](h *RecordsHandler, fn func(context.Context, uuid.UUID, P) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var patch P
		if !decodeJSON(w, r, &patch) {
			return
		}
		item, err := fn(r.Context(), id, patch)
		if err != nil {
			writeServiceError(w, r, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

func remove(h *RecordsHandler, fn func(context.Context, uuid.UUID) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := fn(r.Context(), id); err != nil {
			writeServiceError(w, r, h.log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func boolQuery(w http.ResponseWriter, r *http.Request, key string) (bool, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return false, true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+key)
		return false, false
	}
	return b, true
}
