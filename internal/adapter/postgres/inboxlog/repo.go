// Package inboxlog implements the inbox log repository using PostgreSQL.
// Entries are never deleted; deletion is a status.
package inboxlog

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/secondbrain-backend/internal/adapter/postgres"
	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

const (
	table            = "inbox_log"
	correctionsTable = "inbox_corrections"
)

var columns = []string{
	"id", "original_text", "destination", "record_id", "record_title", "confidence", "status",
	"slack_message_id", "correction_message_id", "created_at", "updated_at",
}

// Repo provides inbox log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new inbox log repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an entry by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.InboxLogEntry, error) {
	query := postgres.Builder.Select(columns...).From(table).Where(sq.Eq{"id": id})

	e, err := postgres.Get[domain.InboxLogEntry](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "inbox_log", id)
	}
	return &e, nil
}

// GetByIDForUpdate returns an entry and locks its row until the surrounding
// transaction ends. Outside a transaction the lock is released immediately.
func (r *Repo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.InboxLogEntry, error) {
	query := postgres.Builder.Select(columns...).From(table).Where(sq.Eq{"id": id}).Suffix("FOR UPDATE")

	e, err := postgres.Get[domain.InboxLogEntry](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "inbox_log", id)
	}
	return &e, nil
}

// HasCorrection reports whether the Slack reply replyID was already applied
// to some entry.
func (r *Repo) HasCorrection(ctx context.Context, replyID string) (bool, error) {
	query := postgres.Builder.Select("count(*)").From(correctionsTable).Where(sq.Eq{"reply_message_id": replyID})

	n, err := postgres.Count(ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return false, postgres.MapError(err, "inbox_correction", replyID)
	}
	return n > 0, nil
}

// GetByMessageID returns the entry created for a Slack message.
// Returns domain.ErrNotFound if the message was never captured.
func (r *Repo) GetByMessageID(ctx context.Context, messageID string) (*domain.InboxLogEntry, error) {
	query := postgres.Builder.Select(columns...).From(table).Where(sq.Eq{"slack_message_id": messageID})

	e, err := postgres.Get[domain.InboxLogEntry](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "inbox_log message", messageID)
	}
	return &e, nil
}

// List returns entries newest first, optionally filtered by status.
func (r *Repo) List(ctx context.Context, status *domain.LogStatus) ([]domain.InboxLogEntry, error) {
	query := postgres.Builder.Select(columns...).From(table).OrderBy("created_at DESC")
	if status != nil {
		query = query.Where(sq.Eq{"status": string(*status)})
	}

	entries, err := postgres.Select[domain.InboxLogEntry](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "inbox_log", "list")
	}
	return entries, nil
}

// ListSince returns entries created at or after since, newest first.
func (r *Repo) ListSince(ctx context.Context, since time.Time) ([]domain.InboxLogEntry, error) {
	query := postgres.Builder.Select(columns...).From(table).
		Where(sq.GtOrEq{"created_at": since}).
		OrderBy("created_at DESC")

	entries, err := postgres.Select[domain.InboxLogEntry](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "inbox_log", "since")
	}
	return entries, nil
}

type activityRow struct {
	Destination domain.Destination `db:"destination"`
	Status      domain.LogStatus   `db:"status"`
	N           int                `db:"n"`
}

// ActivitySince aggregates entries created at or after since.
func (r *Repo) ActivitySince(ctx context.Context, since time.Time) (domain.InboxActivity, error) {
	query := postgres.Builder.Select("destination", "status", "count(*) AS n").From(table).
		Where(sq.GtOrEq{"created_at": since}).
		GroupBy("destination", "status")

	rows, err := postgres.Select[activityRow](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return domain.InboxActivity{}, postgres.MapError(err, "inbox_log", "activity")
	}

	activity := domain.InboxActivity{ByDestination: make(map[domain.Destination]int, len(domain.Destinations))}
	for _, d := range domain.Destinations {
		activity.ByDestination[d] = 0
	}
	for _, row := range rows {
		activity.Total += row.N
		activity.ByDestination[row.Destination] += row.N
		switch row.Status {
		case domain.LogStatusNeedsReview:
			activity.NeedsReview += row.N
		case domain.LogStatusCorrected:
			activity.Corrected += row.N
		case domain.LogStatusFiled, domain.LogStatusDeleted:
		}
	}
	return activity, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts an entry. A second entry for the same Slack message fails
// with domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, e *domain.InboxLogEntry) (*domain.InboxLogEntry, error) {
	query := postgres.Builder.Insert(table).Columns(columns...).
		Values(e.ID, e.OriginalText, string(e.Destination), e.RecordID, e.RecordTitle, e.Confidence,
			string(e.Status), e.SlackMessageID, e.CorrectionMessageID, e.CreatedAt, e.UpdatedAt).
		Suffix(postgres.Returning(columns))

	created, err := postgres.Get[domain.InboxLogEntry](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "inbox_log message", e.SlackMessageID)
	}
	return &created, nil
}

// Update applies the non-nil fields of patch.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, patch domain.InboxLogPatch, at time.Time) (*domain.InboxLogEntry, error) {
	query := postgres.Builder.Update(table).
		Set("updated_at", at).
		Where(sq.Eq{"id": id}).
		Suffix(postgres.Returning(columns))

	if patch.Destination != nil {
		query = query.Set("destination", string(*patch.Destination))
	}
	if patch.RecordID != nil {
		query = query.Set("record_id", *patch.RecordID)
	}
	if patch.RecordTitle != nil {
		query = query.Set("record_title", *patch.RecordTitle)
	}
	if patch.Status != nil {
		query = query.Set("status", string(*patch.Status))
	}
	if patch.CorrectionMessageID != nil {
		query = query.Set("correction_message_id", *patch.CorrectionMessageID)
	}

	updated, err := postgres.Get[domain.InboxLogEntry](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "inbox_log", id)
	}
	return &updated, nil
}

// AddCorrection records that the Slack reply replyID was applied to the entry.
// A reply recorded before fails with domain.ErrAlreadyExists.
func (r *Repo) AddCorrection(ctx context.Context, entryID uuid.UUID, replyID string, at time.Time) error {
	query := postgres.Builder.Insert(correctionsTable).
		Columns("reply_message_id", "inbox_log_id", "created_at").
		Values(replyID, entryID, at)

	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.pool), query); err != nil {
		return postgres.MapError(err, "inbox_correction", replyID)
	}
	return nil
}
