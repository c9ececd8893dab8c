// Package people implements the People repository using PostgreSQL.
package people

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/secondbrain-backend/internal/adapter/postgres"
	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

const table = "people"

var columns = []string{
	"id", "name", "context", "follow_ups", "tags", "last_touched_at", "created_at", "updated_at",
}

// Repo provides person persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new people repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a person by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Person, error) {
	query := postgres.Builder.Select(columns...).From(table).Where(sq.Eq{"id": id})

	p, err := postgres.Get[domain.Person](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "person", id)
	}
	return &p, nil
}

// List returns every person, most recently touched first.
func (r *Repo) List(ctx context.Context) ([]domain.Person, error) {
	query := postgres.Builder.Select(columns...).From(table).OrderBy("last_touched_at DESC")

	people, err := postgres.Select[domain.Person](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "people", "list")
	}
	return people, nil
}

// ListWithFollowUps returns people that have at least one pending follow-up.
func (r *Repo) ListWithFollowUps(ctx context.Context) ([]domain.Person, error) {
	query := postgres.Builder.Select(columns...).From(table).
		Where("cardinality(follow_ups) > 0").
		OrderBy("last_touched_at DESC")

	people, err := postgres.Select[domain.Person](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "people", "follow_ups")
	}
	return people, nil
}

// CountSince returns how many people were created at or after since.
func (r *Repo) CountSince(ctx context.Context, since time.Time) (int, error) {
	query := postgres.Builder.Select("count(*)").From(table).Where(sq.GtOrEq{"created_at": since})

	n, err := postgres.Count(ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return 0, postgres.MapError(err, "people", "count")
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a person and returns the persisted row.
func (r *Repo) Create(ctx context.Context, p *domain.Person) (*domain.Person, error) {
	query := postgres.Builder.Insert(table).Columns(columns...).
		Values(p.ID, p.Name, p.Context, postgres.TextArray(p.FollowUps), postgres.TextArray(p.Tags),
			p.LastTouchedAt, p.CreatedAt, p.UpdatedAt).
		Suffix(postgres.Returning(columns))

	created, err := postgres.Get[domain.Person](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "person", p.ID)
	}
	return &created, nil
}

// Update applies the non-nil fields of patch. Any update counts as touching
// the person, so last_touched_at moves together with updated_at.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, patch domain.PersonPatch, at time.Time) (*domain.Person, error) {
	query := postgres.Builder.Update(table).
		Set("updated_at", at).
		Set("last_touched_at", at).
		Where(sq.Eq{"id": id}).
		Suffix(postgres.Returning(columns))

	if patch.Name != nil {
		query = query.Set("name", *patch.Name)
	}
	if patch.Context != nil {
		query = query.Set("context", *patch.Context)
	}
	if patch.FollowUps != nil {
		query = query.Set("follow_ups", postgres.TextArray(*patch.FollowUps))
	}
	if patch.Tags != nil {
		query = query.Set("tags", postgres.TextArray(*patch.Tags))
	}

	updated, err := postgres.Get[domain.Person](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "person", id)
	}
	return &updated, nil
}

// Delete removes a person. Returns domain.ErrNotFound if it does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	return postgres.DeleteByID(ctx, postgres.QuerierFromCtx(ctx, r.pool), table, "person", id)
}
