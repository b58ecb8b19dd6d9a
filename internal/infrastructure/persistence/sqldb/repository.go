package sqldb

import (
	"context"
	"strings"
	"time"

	"github.com/course-hub/coursehub/internal/domain/education"
	"github.com/course-hub/coursehub/internal/domain/shared"

	"github.com/google/uuid"
)

// ══════════════════════════════════════════════════════════════════════════════
// TABLE MAPPING
// ══════════════════════════════════════════════════════════════════════════════

// table describes how an entity type is written. columns lists every
// mutable column; id and created_date are handled separately because Update
// never touches them.
type table[T any] struct {
	aggregate string
	name      string
	columns   []string
	values    func(e *T) []any
	base      func(e *T) *education.BaseEntity

	// keepRelations copies navigation fields loaded on prev into a plain
	// reload, for every relation whose foreign key did not change.
	keepRelations func(into, prev *T)
}

func sameRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (t *table[T]) insertSQL() string {
	cols := append([]string{"id", "created_date"}, t.columns...)
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return "INSERT INTO " + t.name + " (" + strings.Join(cols, ", ") + ") VALUES (" + marks + ")"
}

func (t *table[T]) updateSQL() string {
	sets := make([]string, len(t.columns))
	for i, c := range t.columns {
		sets[i] = c + " = ?"
	}
	return "UPDATE " + t.name + " SET " + strings.Join(sets, ", ") + " WHERE id = ?"
}

func (t *table[T]) deleteSQL() string {
	return "DELETE FROM " + t.name + " WHERE id = ?"
}

// ══════════════════════════════════════════════════════════════════════════════
// GENERIC REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// repository implements education.Repository for one entity type. It belongs
// to exactly one unit of work: reads go straight to the pool, writes are
// staged on the unit of work until Commit.
type repository[T any] struct {
	uow   *unitOfWork
	table *table[T]
	plain *source[T]

	// tracked is the identity map for this entity type.
	tracked map[string]*T
}

func newRepository[T any](uow *unitOfWork, t *table[T], plain *source[T]) *repository[T] {
	return &repository[T]{
		uow:     uow,
		table:   t,
		plain:   plain,
		tracked: make(map[string]*T),
	}
}

// query builds a deferred query over src, optionally registering results in
// the identity map.
func (r *repository[T]) query(src *source[T], trackChanges bool) *query[T] {
	if r.uow.isClosed() {
		return failedQuery(r.uow.store, src, shared.ErrUnitOfWorkClosed)
	}
	if !trackChanges {
		return newQuery(r.uow.store, src, nil)
	}
	return newQuery(r.uow.store, src, func(e *T) *T { return r.attach(src, e) })
}

// attach keeps one instance per ID. A reload refreshes the tracked instance
// in place, so earlier holders observe the new values. A plain reload does
// not drop relations a detail read already loaded.
func (r *repository[T]) attach(src *source[T], e *T) *T {
	id := r.table.base(e).ID
	if existing, ok := r.tracked[id]; ok {
		if src == r.plain && r.table.keepRelations != nil {
			r.table.keepRelations(e, existing)
		}
		*existing = *e
		return existing
	}
	r.tracked[id] = e
	return e
}

// GetAll returns a deferred query over every row.
func (r *repository[T]) GetAll(trackChanges bool) education.Query[T] {
	return r.query(r.plain, trackChanges)
}

// GetByID returns the entity with the given ID or (nil, nil). A tracked
// lookup of an already tracked ID does not touch the store.
func (r *repository[T]) GetByID(ctx context.Context, id string, trackChanges bool) (*T, error) {
	return r.getByID(ctx, r.plain, id, trackChanges)
}

func (r *repository[T]) getByID(ctx context.Context, src *source[T], id string, trackChanges bool) (*T, error) {
	if r.uow.isClosed() {
		return nil, shared.ErrUnitOfWorkClosed
	}
	if trackChanges && src == r.plain {
		if e, ok := r.tracked[id]; ok {
			return e, nil
		}
	}
	return r.query(src, trackChanges).Where("ID", id).First(ctx)
}

// Create stages an insert. An entity without an ID is stamped with a new
// UUID and the current time.
func (r *repository[T]) Create(e *T) error {
	return stageInsert(r.uow, r.table, e)
}

func stageInsert[T any](uow *unitOfWork, t *table[T], e *T) error {
	if e == nil {
		return shared.ErrNilEntity
	}

	base := t.base(e)
	base.Stamp(uuid.NewString(), time.Now())

	args := append([]any{base.ID, base.CreatedDate}, t.values(e)...)
	return uow.stage(operation{
		aggregate: t.aggregate,
		kind:      opInsert,
		entityID:  base.ID,
		statement: t.insertSQL(),
		args:      args,
	})
}

// Update stages a full overwrite of every mutable column.
func (r *repository[T]) Update(e *T) error {
	if e == nil {
		return shared.ErrNilEntity
	}

	base := r.table.base(e)
	if !base.HasID() {
		return shared.ErrMissingID
	}

	args := append(r.table.values(e), base.ID)
	return r.uow.stage(operation{
		aggregate: r.table.aggregate,
		kind:      opUpdate,
		entityID:  base.ID,
		statement: r.table.updateSQL(),
		args:      args,
	})
}

// Remove stages a delete keyed by ID only.
func (r *repository[T]) Remove(e *T) error {
	if e == nil {
		return shared.ErrNilEntity
	}

	base := r.table.base(e)
	if !base.HasID() {
		return shared.ErrMissingID
	}

	if err := r.uow.stage(operation{
		aggregate: r.table.aggregate,
		kind:      opDelete,
		entityID:  base.ID,
		statement: r.table.deleteSQL(),
		args:      []any{base.ID},
	}); err != nil {
		return err
	}

	delete(r.tracked, base.ID)
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Column helpers
// ─────────────────────────────────────────────────────────────────────────────

// optional converts a nullable reference into a driver value.
func optional(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// ref converts a scanned nullable column back into a reference.
func ref(valid bool, s string) *string {
	if !valid {
		return nil
	}
	return &s
}
