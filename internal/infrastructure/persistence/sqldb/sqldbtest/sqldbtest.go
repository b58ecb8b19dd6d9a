// Package sqldbtest opens migrated throwaway SQLite stores for tests.
package sqldbtest

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/course-hub/coursehub/internal/infrastructure/persistence/sqldb"
	"github.com/course-hub/coursehub/pkg/logger"

	"github.com/stretchr/testify/require"
)

// Recorder collects store events so tests can count round trips.
type Recorder struct {
	mu     sync.Mutex
	events []sqldb.Event
}

// Hook returns the sqldb hook feeding this recorder.
func (r *Recorder) Hook() sqldb.Hook {
	return func(_ context.Context, ev sqldb.Event) {
		r.mu.Lock()
		r.events = append(r.events, ev)
		r.mu.Unlock()
	}
}

// Reset forgets every recorded event.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []sqldb.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sqldb.Event(nil), r.events...)
}

// Count returns the number of events of the given kind.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, ev := range r.Events() {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

// Total returns the number of recorded round trips of any kind.
func (r *Recorder) Total() int {
	return len(r.Events())
}

// Statements returns the recorded statements of the given kind.
func (r *Recorder) Statements(kind string) []string {
	var out []string
	for _, ev := range r.Events() {
		if ev.Kind == kind {
			out = append(out, strings.TrimSpace(ev.Statement))
		}
	}
	return out
}

// Open creates a migrated SQLite store in a temporary directory. The store
// is closed when the test ends; migration traffic is not recorded.
func Open(t testing.TB) (*sqldb.Store, *Recorder) {
	t.Helper()

	cfg := sqldb.DefaultConfig()
	cfg.URL = filepath.Join(t.TempDir(), "coursehub.db")

	rec := &Recorder{}
	store, err := sqldb.Open(context.Background(), cfg,
		sqldb.WithLogger(logger.Nop()),
		sqldb.WithHook(rec.Hook()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = sqldb.NewMigrator(store).Migrate(context.Background())
	require.NoError(t, err)

	rec.Reset()
	return store, rec
}
