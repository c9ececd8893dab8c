// Package admintask implements the admin task repository using PostgreSQL.
package admintask

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/secondbrain-backend/internal/adapter/postgres"
	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

const table = "admin_tasks"

var columns = []string{"id", "task", "due_date", "status", "notes", "created_at", "updated_at"}

var pending = sq.Eq{"status": string(domain.AdminStatusPending)}

// Repo provides admin task persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new admin task repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a task by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.AdminTask, error) {
	query := postgres.Builder.Select(columns...).From(table).Where(sq.Eq{"id": id})

	task, err := postgres.Get[domain.AdminTask](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "admin_task", id)
	}
	return &task, nil
}

// List returns every task, newest first.
func (r *Repo) List(ctx context.Context) ([]domain.AdminTask, error) {
	return r.selectWhere(ctx, nil, "created_at DESC", "list")
}

// ListPending returns tasks not yet done, earliest due first (undated last).
func (r *Repo) ListPending(ctx context.Context) ([]domain.AdminTask, error) {
	return r.selectWhere(ctx, pending, "due_date ASC NULLS LAST", "pending")
}

// ListOverdue returns pending tasks whose due date is before now.
func (r *Repo) ListOverdue(ctx context.Context, now time.Time) ([]domain.AdminTask, error) {
	return r.selectWhere(ctx, sq.And{pending, sq.Lt{"due_date": now}}, "due_date ASC", "overdue")
}

// ListDueBetween returns pending tasks due in [from, to).
func (r *Repo) ListDueBetween(ctx context.Context, from, to time.Time) ([]domain.AdminTask, error) {
	return r.selectWhere(ctx, sq.And{
		pending,
		sq.GtOrEq{"due_date": from},
		sq.Lt{"due_date": to},
	}, "due_date ASC", "due")
}

func (r *Repo) selectWhere(ctx context.Context, pred sq.Sqlizer, order, label string) ([]domain.AdminTask, error) {
	query := postgres.Builder.Select(columns...).From(table).OrderBy(order)
	if pred != nil {
		query = query.Where(pred)
	}

	tasks, err := postgres.Select[domain.AdminTask](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "admin_tasks", label)
	}
	return tasks, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a task and returns the persisted row.
func (r *Repo) Create(ctx context.Context, task *domain.AdminTask) (*domain.AdminTask, error) {
	status := task.Status
	if status == "" {
		status = domain.AdminStatusPending
	}

	query := postgres.Builder.Insert(table).Columns(columns...).
		Values(task.ID, task.Task, task.DueDate, string(status), task.Notes, task.CreatedAt, task.UpdatedAt).
		Suffix(postgres.Returning(columns))

	created, err := postgres.Get[domain.AdminTask](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "admin_task", task.ID)
	}
	return &created, nil
}

// Update applies the non-nil fields of patch.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, patch domain.AdminTaskPatch, at time.Time) (*domain.AdminTask, error) {
	query := postgres.Builder.Update(table).
		Set("updated_at", at).
		Where(sq.Eq{"id": id}).
		Suffix(postgres.Returning(columns))

	if patch.Task != nil {
		query = query.Set("task", *patch.Task)
	}
	if patch.DueDate != nil {
		query = query.Set("due_date", *patch.DueDate)
	}
	if patch.Status != nil {
		query = query.Set("status", string(*patch.Status))
	}
	if patch.Notes != nil {
		query = query.Set("notes", *patch.Notes)
	}

	updated, err := postgres.Get[domain.AdminTask](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "admin_task", id)
	}
	return &updated, nil
}

// MarkDone sets the task status to done.
func (r *Repo) MarkDone(ctx context.Context, id uuid.UUID, at time.Time) (*domain.AdminTask, error) {
	done := domain.AdminStatusDone
	return r.Update(ctx, id, domain.AdminTaskPatch{Status: &done}, at)
}

// Delete removes a task. Returns domain.ErrNotFound if it does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	return postgres.DeleteByID(ctx, postgres.QuerierFromCtx(ctx, r.pool), table, "admin_task", id)
}
