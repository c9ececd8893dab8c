// Package ideas implements the Ideas repository using PostgreSQL.
package ideas

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/secondbrain-backend/internal/adapter/postgres"
	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

const table = "ideas"

var columns = []string{"id", "title", "one_liner", "notes", "tags", "created_at", "updated_at"}

// Repo provides idea persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new ideas repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns an idea by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Idea, error) {
	query := postgres.Builder.Select(columns...).From(table).Where(sq.Eq{"id": id})

	idea, err := postgres.Get[domain.Idea](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "idea", id)
	}
	return &idea, nil
}

// List returns every idea, newest first.
func (r *Repo) List(ctx context.Context) ([]domain.Idea, error) {
	query := postgres.Builder.Select(columns...).From(table).OrderBy("created_at DESC")

	ideas, err := postgres.Select[domain.Idea](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "ideas", "list")
	}
	return ideas, nil
}

// CountSince returns how many ideas were created at or after since.
func (r *Repo) CountSince(ctx context.Context, since time.Time) (int, error) {
	query := postgres.Builder.Select("count(*)").From(table).Where(sq.GtOrEq{"created_at": since})

	n, err := postgres.Count(ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return 0, postgres.MapError(err, "ideas", "count")
	}
	return n, nil
}

// Create inserts an idea and returns the persisted row.
func (r *Repo) Create(ctx context.Context, idea *domain.Idea) (*domain.Idea, error) {
	query := postgres.Builder.Insert(table).Columns(columns...).
		Values(idea.ID, idea.Title, idea.OneLiner, idea.Notes, postgres.TextArray(idea.Tags),
			idea.CreatedAt, idea.UpdatedAt).
		Suffix(postgres.Returning(columns))

	created, err := postgres.Get[domain.Idea](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "idea", idea.ID)
	}
	return &created, nil
}

// Update applies the non-nil fields of patch.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, patch domain.IdeaPatch, at time.Time) (*domain.Idea, error) {
	query := postgres.Builder.Update(table).
		Set("updated_at", at).
		Where(sq.Eq{"id": id}).
		Suffix(postgres.Returning(columns))

	if patch.Title != nil {
		query = query.Set("title", *patch.Title)
	}
	if patch.OneLiner != nil {
		query = query.Set("one_liner", *patch.OneLiner)
	}
	if patch.Notes != nil {
		query = query.Set("notes", *patch.Notes)
	}
	if patch.Tags != nil {
		query = query.Set("tags", postgres.TextArray(*patch.Tags))
	}

	updated, err := postgres.Get[domain.Idea](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "idea", id)
	}
	return &updated, nil
}

// Delete removes an idea. Returns domain.ErrNotFound if it does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	return postgres.DeleteByID(ctx, postgres.QuerierFromCtx(ctx, r.pool), table, "idea", id)
}
