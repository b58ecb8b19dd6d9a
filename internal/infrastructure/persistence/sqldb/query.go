package sqldb

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/course-hub/coursehub/internal/domain/education"
	"github.com/course-hub/coursehub/internal/domain/shared"

	"github.com/jmoiron/sqlx"
)

// ══════════════════════════════════════════════════════════════════════════════
// QUERY SOURCES
// ══════════════════════════════════════════════════════════════════════════════

// source describes one SELECT shape for an entity type: the plain table or a
// detail view joining related tables.
type source[T any] struct {
	// aggregate names the entity in errors and logs.
	aggregate string

	// columns is the select list; from includes any JOINs.
	columns string
	from    string

	// idColumn is the qualified primary key, used by Count.
	idColumn string

	// orderBy must keep the rows of one entity adjacent.
	orderBy string

	// fields maps logical field names accepted by Where to columns.
	fields map[string]string

	scan func(rows *sqlx.Rows) (*T, error)
	id   func(e *T) string

	// merge folds a follow-up row of the same entity into the first one.
	// Nil when every row is a distinct entity.
	merge func(into, row *T)
}

type condition struct {
	column string
	negate bool
	value  any
}

// ══════════════════════════════════════════════════════════════════════════════
// DEFERRED QUERY
// ══════════════════════════════════════════════════════════════════════════════

// query implements education.Query. It is immutable: Where and WhereNot
// return a copy, so a base query can be refined in several directions.
type query[T any] struct {
	store *Store
	src   *source[T]
	conds []condition
	err   error

	// attach registers loaded entities with the identity map; nil when
	// tracking is off.
	attach func(*T) *T
}

var _ education.Query[education.Course] = (*query[education.Course])(nil)

func newQuery[T any](store *Store, src *source[T], attach func(*T) *T) *query[T] {
	return &query[T]{store: store, src: src, attach: attach}
}

// failedQuery returns a query whose terminal methods all report err.
func failedQuery[T any](store *Store, src *source[T], err error) *query[T] {
	return &query[T]{store: store, src: src, err: err}
}

// Where adds an equality condition. A nil value matches NULL.
func (q *query[T]) Where(field string, value any) education.Query[T] {
	return q.with(field, false, value)
}

// WhereNot adds an inequality condition. A nil value matches NOT NULL.
func (q *query[T]) WhereNot(field string, value any) education.Query[T] {
	return q.with(field, true, value)
}

func (q *query[T]) with(field string, negate bool, value any) *query[T] {
	next := *q
	next.conds = slices.Clone(q.conds)

	column, ok := q.src.fields[field]
	if !ok {
		if next.err == nil {
			next.err = fmt.Errorf("%w: %s.%s", shared.ErrUnknownField, q.src.aggregate, field)
		}
		return &next
	}

	next.conds = append(next.conds, condition{column: column, negate: negate, value: normalizeArg(value)})
	return &next
}

// normalizeArg dereferences optional values so drivers only see plain
// values or nil.
func normalizeArg(v any) any {
	switch x := v.(type) {
	case *string:
		if x == nil {
			return nil
		}
		return *x
	case *int:
		if x == nil {
			return nil
		}
		return *x
	case *bool:
		if x == nil {
			return nil
		}
		return *x
	}
	return v
}

func (q *query[T]) whereClause() (string, []any) {
	if len(q.conds) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(q.conds))
	args := make([]any, 0, len(q.conds))
	for _, c := range q.conds {
		switch {
		case c.value == nil && c.negate:
			parts = append(parts, c.column+" IS NOT NULL")
		case c.value == nil:
			parts = append(parts, c.column+" IS NULL")
		case c.negate:
			parts = append(parts, c.column+" <> ?")
			args = append(args, c.value)
		default:
			parts = append(parts, c.column+" = ?")
			args = append(args, c.value)
		}
	}

	return " WHERE " + strings.Join(parts, " AND "), args
}

func (q *query[T]) storageErr(op string, err error) error {
	return shared.WrapError(q.src.aggregate, op, shared.ErrStorage, "query failed", err)
}

// Seq streams entities in store order. Rows are read lazily; breaking out of
// the loop closes the cursor.
func (q *query[T]) Seq(ctx context.Context) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		if q.err != nil {
			yield(nil, q.err)
			return
		}

		where, args := q.whereClause()
		stmt := "SELECT " + q.src.columns + " FROM " + q.src.from + where + " ORDER BY " + q.src.orderBy

		rows, err := q.store.queryx(ctx, stmt, args...)
		if err != nil {
			yield(nil, q.storageErr("List", err))
			return
		}
		defer rows.Close()

		var current *T
		for rows.Next() {
			e, err := q.src.scan(rows)
			if err != nil {
				yield(nil, q.storageErr("Scan", err))
				return
			}

			if q.src.merge != nil && current != nil && q.src.id(current) == q.src.id(e) {
				q.src.merge(current, e)
				continue
			}

			if current != nil && !yield(q.emit(current), nil) {
				return
			}
			current = e
		}

		if err := rows.Err(); err != nil {
			yield(nil, q.storageErr("List", err))
			return
		}

		if current != nil {
			yield(q.emit(current), nil)
		}
	}
}

func (q *query[T]) emit(e *T) *T {
	if q.attach == nil {
		return e
	}
	return q.attach(e)
}

// List materializes every matching entity.
func (q *query[T]) List(ctx context.Context) ([]*T, error) {
	var out []*T
	for e, err := range q.Seq(ctx) {
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// First returns the first matching entity, or nil when there is none.
func (q *query[T]) First(ctx context.Context) (*T, error) {
	for e, err := range q.Seq(ctx) {
		if err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, nil
}

// Any reports whether at least one entity matches.
func (q *query[T]) Any(ctx context.Context) (bool, error) {
	if q.err != nil {
		return false, q.err
	}

	where, args := q.whereClause()
	stmt := "SELECT EXISTS (SELECT 1 FROM " + q.src.from + where + ")"

	var exists bool
	if err := q.store.get(ctx, &exists, stmt, args...); err != nil {
		return false, q.storageErr("Any", err)
	}
	return exists, nil
}

// Count returns the number of matching entities, not joined rows.
func (q *query[T]) Count(ctx context.Context) (int, error) {
	if q.err != nil {
		return 0, q.err
	}

	where, args := q.whereClause()
	stmt := "SELECT COUNT(DISTINCT " + q.src.idColumn + ") FROM " + q.src.from + where

	var n int
	if err := q.store.get(ctx, &n, stmt, args...); err != nil {
		return 0, q.storageErr("Count", err)
	}
	return n, nil
}
