package postgres

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/secondbrain-backend/internal/domain"
)

// Builder is the squirrel statement builder configured for PostgreSQL ($n placeholders).
var Builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Get runs a query expected to return exactly one row and scans it into T.
// A missing row surfaces as pgx.ErrNoRows (wrapped), ready for MapError.
func Get[T any](ctx context.Context, q Querier, query sq.Sqlizer) (T, error) {
	var dst T

	sql, args, err := query.ToSql()
	if err != nil {
		return dst, fmt.Errorf("build query: %w", err)
	}
	if err := pgxscan.Get(ctx, q, &dst, sql, args...); err != nil {
		return dst, err
	}
	return dst, nil
}

// Select runs a query and scans all rows into a slice of T.
// An empty result is an empty, non-nil slice.
func Select[T any](ctx context.Context, q Querier, query sq.Sqlizer) ([]T, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	dst := make([]T, 0)
	if err := pgxscan.Select(ctx, q, &dst, sql, args...); err != nil {
		return nil, err
	}
	return dst, nil
}

// Exec runs a statement and returns the number of affected rows.
func Exec(ctx context.Context, q Querier, query sq.Sqlizer) (int64, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Count runs a SELECT count(*) query.
func Count(ctx context.Context, q Querier, query sq.SelectBuilder) (int, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var n int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, err
	}
	return int(n), nil
}

// TextArray normalizes a nil slice to an empty one so NOT NULL text[] columns
// never receive NULL.
func TextArray(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Returning renders a RETURNING clause for the given columns.
func Returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

// DeleteByID removes one row by primary key. Returns domain.ErrNotFound when
// no row matched.
func DeleteByID(ctx context.Context, q Querier, table, entity string, id uuid.UUID) error {
	n, err := Exec(ctx, q, Builder.Delete(table).Where(sq.Eq{"id": id}))
	if err != nil {
		return MapError(err, entity, id)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}
