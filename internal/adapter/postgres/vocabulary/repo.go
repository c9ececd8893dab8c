// Package vocabulary implements the vocabulary repository using PostgreSQL.
// times_shown and last_shown_at are written only by MarkShown.
package vocabulary

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/secondbrain-backend/internal/adapter/postgres"
	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

const table = "vocabulary"

var columns = []string{
	"id", "word", "definition", "part_of_speech", "example", "source", "tags",
	"times_shown", "last_shown_at", "created_at", "updated_at",
}

// pickForReviewSQL picks a random word from the least-shown half of the table.
var pickForReviewSQL = `
WITH ranked AS (
    SELECT ` + strings.Join(columns, ", ") + `,
           row_number() OVER (ORDER BY times_shown ASC, created_at ASC) AS rn,
           count(*) OVER () AS total
    FROM vocabulary
)
SELECT ` + strings.Join(columns, ", ") + `
FROM ranked
WHERE rn <= GREATEST(1, ceil(total / 2.0))
ORDER BY random()
LIMIT 1`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Repo provides vocabulary persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new vocabulary repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a word by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.VocabularyWord, error) {
	query := postgres.Builder.Select(columns...).From(table).Where(sq.Eq{"id": id})

	w, err := postgres.Get[domain.VocabularyWord](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "vocabulary", id)
	}
	return &w, nil
}

// List returns every word, newest first.
func (r *Repo) List(ctx context.Context) ([]domain.VocabularyWord, error) {
	return r.selectWhere(ctx, nil, "list")
}

// Search returns words whose word or definition contains term, case-insensitively.
func (r *Repo) Search(ctx context.Context, term string) ([]domain.VocabularyWord, error) {
	pattern := "%" + likeEscaper.Replace(term) + "%"
	return r.selectWhere(ctx, sq.Or{
		sq.ILike{"word": pattern},
		sq.ILike{"definition": pattern},
	}, "search")
}

// ListMissingExample returns words without an example sentence.
func (r *Repo) ListMissingExample(ctx context.Context) ([]domain.VocabularyWord, error) {
	return r.selectWhere(ctx, sq.Or{
		sq.Eq{"example": nil},
		sq.Eq{"example": ""},
	}, "missing_example")
}

// PickForReview returns a random word among the least-shown half.
// Returns domain.ErrNotFound when the table is empty.
func (r *Repo) PickForReview(ctx context.Context) (*domain.VocabularyWord, error) {
	w, err := postgres.Get[domain.VocabularyWord](ctx, postgres.QuerierFromCtx(ctx, r.pool), sq.Expr(pickForReviewSQL))
	if err != nil {
		return nil, postgres.MapError(err, "vocabulary", "review")
	}
	return &w, nil
}

// Count returns the total number of words.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := postgres.Count(ctx, postgres.QuerierFromCtx(ctx, r.pool), postgres.Builder.Select("count(*)").From(table))
	if err != nil {
		return 0, postgres.MapError(err, "vocabulary", "count")
	}
	return n, nil
}

// CountSince returns how many words were created at or after since.
func (r *Repo) CountSince(ctx context.Context, since time.Time) (int, error) {
	query := postgres.Builder.Select("count(*)").From(table).Where(sq.GtOrEq{"created_at": since})

	n, err := postgres.Count(ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return 0, postgres.MapError(err, "vocabulary", "count")
	}
	return n, nil
}

func (r *Repo) selectWhere(ctx context.Context, pred sq.Sqlizer, label string) ([]domain.VocabularyWord, error) {
	query := postgres.Builder.Select(columns...).From(table).OrderBy("created_at DESC")
	if pred != nil {
		query = query.Where(pred)
	}

	words, err := postgres.Select[domain.VocabularyWord](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "vocabulary", label)
	}
	return words, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a word with zeroed display counters.
func (r *Repo) Create(ctx context.Context, w *domain.VocabularyWord) (*domain.VocabularyWord, error) {
	query := postgres.Builder.Insert(table).
		Columns("id", "word", "definition", "part_of_speech", "example", "source", "tags", "created_at", "updated_at").
		Values(w.ID, w.Word, w.Definition, w.PartOfSpeech, w.Example, w.Source, postgres.TextArray(w.Tags),
			w.CreatedAt, w.UpdatedAt).
		Suffix(postgres.Returning(columns))

	created, err := postgres.Get[domain.VocabularyWord](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "vocabulary", w.ID)
	}
	return &created, nil
}

// Update applies the non-nil fields of patch.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, patch domain.VocabularyPatch, at time.Time) (*domain.VocabularyWord, error) {
	query := postgres.Builder.Update(table).
		Set("updated_at", at).
		Where(sq.Eq{"id": id}).
		Suffix(postgres.Returning(columns))

	if patch.Word != nil {
		query = query.Set("word", *patch.Word)
	}
	if patch.Definition != nil {
		query = query.Set("definition", *patch.Definition)
	}
	if patch.PartOfSpeech != nil {
		query = query.Set("part_of_speech", *patch.PartOfSpeech)
	}
	if patch.Example != nil {
		query = query.Set("example", *patch.Example)
	}
	if patch.Source != nil {
		query = query.Set("source", *patch.Source)
	}
	if patch.Tags != nil {
		query = query.Set("tags", postgres.TextArray(*patch.Tags))
	}

	updated, err := postgres.Get[domain.VocabularyWord](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "vocabulary", id)
	}
	return &updated, nil
}

// MarkShown increments times_shown and moves last_shown_at forward to at.
// last_shown_at never moves backwards, even when at is older than the stored value.
func (r *Repo) MarkShown(ctx context.Context, id uuid.UUID, at time.Time) (*domain.VocabularyWord, error) {
	query := postgres.Builder.Update(table).
		Set("times_shown", sq.Expr("times_shown + 1")).
		Set("last_shown_at", sq.Expr("GREATEST(COALESCE(last_shown_at, ?), ?)", at, at)).
		Set("updated_at", at).
		Where(sq.Eq{"id": id}).
		Suffix(postgres.Returning(columns))

	updated, err := postgres.Get[domain.VocabularyWord](ctx, postgres.QuerierFromCtx(ctx, r.pool), query)
	if err != nil {
		return nil, postgres.MapError(err, "vocabulary", id)
	}
	return &updated, nil
}

// Delete removes a word. Returns domain.ErrNotFound if it does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	return postgres.DeleteByID(ctx, postgres.QuerierFromCtx(ctx, r.pool), table, "vocabulary", id)
}
