// Package projects implements the Projects repository using PostgreSQL.
package projects

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/secondbrain-backend/internal/adapter/postgres"
	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

const table = "projects"

var columns = []string{
	"id", "name", "status", "next_action", "notes", "tags", "created_at", "updated_at",
}

// Repo provides project persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new projects repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a project by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	query := postgres.Builder.Select(columns...).From(table).Where(sq.Eq{"id": id})

	p, err := postgres.Get[domain.Project](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "project", id)
	}
	return &p, nil
}

// List returns every project, most recently updated first.
func (r *Repo) List(ctx context.Context) ([]domain.Project, error) {
	return r.selectWhere(ctx, nil, "list")
}

// ListByStatus returns projects in the given status, most recently updated first.
func (r *Repo) ListByStatus(ctx context.Context, status domain.ProjectStatus) ([]domain.Project, error) {
	return r.selectWhere(ctx, sq.Eq{"status": string(status)}, string(status))
}

// ListStalled returns active projects not updated since before.
func (r *Repo) ListStalled(ctx context.Context, before time.Time) ([]domain.Project, error) {
	return r.selectWhere(ctx, sq.And{
		sq.Eq{"status": string(domain.ProjectStatusActive)},
		sq.Lt{"updated_at": before},
	}, "stalled")
}

// ListCompletedSince returns projects moved to done at or after since.
func (r *Repo) ListCompletedSince(ctx context.Context, since time.Time) ([]domain.Project, error) {
	return r.selectWhere(ctx, sq.And{
		sq.Eq{"status": string(domain.ProjectStatusDone)},
		sq.GtOrEq{"updated_at": since},
	}, "completed")
}

func (r *Repo) selectWhere(ctx context.Context, pred sq.Sqlizer, label string) ([]domain.Project, error) {
	query := postgres.Builder.Select(columns...).From(table).OrderBy("updated_at DESC")
	if pred != nil {
		query = query.Where(pred)
	}

	projects, err := postgres.Select[domain.Project](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "projects", label)
	}
	return projects, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a project and returns the persisted row.
func (r *Repo) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	status := p.Status
	if status == "" {
		status = domain.ProjectStatusActive
	}

	query := postgres.Builder.Insert(table).Columns(columns...).
		Values(p.ID, p.Name, string(status), p.NextAction, p.Notes, postgres.TextArray(p.Tags),
			p.CreatedAt, p.UpdatedAt).
		Suffix(postgres.Returning(columns))

	created, err := postgres.Get[domain.Project](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "project", p.ID)
	}
	return &created, nil
}

// Update applies the non-nil fields of patch.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, patch domain.ProjectPatch, at time.Time) (*domain.Project, error) {
	query := postgres.Builder.Update(table).
		Set("updated_at", at).
		Where(sq.Eq{"id": id}).
		Suffix(postgres.Returning(columns))

	if patch.Name != nil {
		query = query.Set("name", *patch.Name)
	}
	if patch.Status != nil {
		query = query.Set("status", string(*patch.Status))
	}
	if patch.NextAction != nil {
		query = query.Set("next_action", *patch.NextAction)
	}
	if patch.Notes != nil {
		query = query.Set("notes", *patch.Notes)
	}
	if patch.Tags != nil {
		query = query.Set("tags", postgres.TextArray(*patch.Tags))
	}

	updated, err := postgres.Get[domain.Project](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "project", id)
	}
	return &updated, nil
}

// Delete removes a project. Returns domain.ErrNotFound if it does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	return postgres.DeleteByID(ctx, postgres.QuerierFromCtx(ctx, r.pool), table, "project", id)
}
