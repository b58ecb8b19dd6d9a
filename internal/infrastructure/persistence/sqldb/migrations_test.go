package sqldb_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/course-hub/coursehub/internal/infrastructure/persistence/sqldb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openBare(t *testing.T) *sqldb.Store {
	t.Helper()
	cfg := sqldb.DefaultConfig()
	cfg.URL = filepath.Join(t.TempDir(), "bare.db")

	store, err := sqldb.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestMigrator_UpDownStatus(t *testing.T) {
	store := openBare(t)
	ctx := context.Background()
	m := sqldb.NewMigrator(store)
	total := len(sqldb.GetMigrations())

	n, err := m.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, total, n)

	n, err = m.Migrate(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "migrate is idempotent")

	status, err := m.Status(ctx)
	require.NoError(t, err)
	require.Len(t, status, total)
	for _, s := range status {
		assert.True(t, s.IsApplied, s.Name)
		assert.False(t, s.AppliedAt.IsZero(), s.Name)
	}

	version, err := m.Rollback(ctx)
	require.NoError(t, err)
	assert.Equal(t, total, version)

	status, err = m.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status[total-1].IsApplied)
	assert.True(t, status[0].IsApplied)

	n, err = m.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMigrator_RollbackAll(t *testing.T) {
	store := openBare(t)
	ctx := context.Background()
	m := sqldb.NewMigrator(store)

	_, err := m.Migrate(ctx)
	require.NoError(t, err)

	for range sqldb.GetMigrations() {
		_, err := m.Rollback(ctx)
		require.NoError(t, err)
	}

	version, err := m.Rollback(ctx)
	require.NoError(t, err)
	assert.Zero(t, version, "nothing left to roll back")
}

func TestStore_HealthAndClose(t *testing.T) {
	store := openBare(t)
	ctx := context.Background()

	h, err := store.Health(ctx)
	require.NoError(t, err)
	assert.True(t, h.Healthy)
	assert.Equal(t, sqldb.DriverSQLite, h.Driver)

	require.NoError(t, store.Close())
	assert.True(t, store.IsClosed())
	assert.ErrorIs(t, store.Ping(ctx), sqldb.ErrConnectionClosed)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := sqldb.Open(context.Background(), sqldb.Config{Driver: "oracle"})
	assert.ErrorIs(t, err, sqldb.ErrUnsupportedDriver)
}

func TestConfig_DSN(t *testing.T) {
	cfg := sqldb.Config{Driver: sqldb.DriverSQLite, URL: "/tmp/x.db"}
	assert.Equal(t, "file:/tmp/x.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate", cfg.DSN())

	pg := sqldb.Config{Driver: sqldb.DriverPgx, URL: "postgres://localhost/db"}
	assert.Equal(t, "postgres://localhost/db", pg.DSN())
}
