// Package sqldb implements the Course Hub persistence layer on top of sqlx.
// The same repositories and unit of work run against PostgreSQL (pgx or lib/pq
// driver) and SQLite (modernc driver); SQL is written with '?' placeholders
// and rebound for the active driver.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/course-hub/coursehub/pkg/logger"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Supported driver names, as registered with database/sql.
const (
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// ══════════════════════════════════════════════════════════════════════════════
// ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrConnectionClosed indicates the connection pool is closed.
	ErrConnectionClosed = errors.New("sqldb: connection pool is closed")

	// ErrMigrationFailed indicates a migration failure.
	ErrMigrationFailed = errors.New("sqldb: migration failed")

	// ErrTransactionFailed indicates a transaction failure.
	ErrTransactionFailed = errors.New("sqldb: transaction failed")

	// ErrUnsupportedDriver is returned by Open for unknown driver names.
	ErrUnsupportedDriver = errors.New("sqldb: unsupported driver")
)

// ══════════════════════════════════════════════════════════════════════════════
// DIALECT
// ══════════════════════════════════════════════════════════════════════════════

// dialect captures the few DDL differences between the backends.
type dialect struct {
	name      string
	timestamp string
}

var (
	postgresDialect = dialect{name: "postgres", timestamp: "TIMESTAMPTZ"}

	// modernc parses TEXT back into time.Time only for DATE, DATETIME and
	// TIMESTAMP declared types.
	sqliteDialect = dialect{name: "sqlite", timestamp: "TIMESTAMP"}
)

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case DriverPgx, DriverPostgres:
		return postgresDialect, nil
	case DriverSQLite:
		return sqliteDialect, nil
	default:
		return dialect{}, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// CONNECTION POOL
// ══════════════════════════════════════════════════════════════════════════════

// Config holds connection configuration.
type Config struct {
	// Driver is one of DriverPgx, DriverPostgres or DriverSQLite.
	Driver string

	// URL is the PostgreSQL connection string, or the database file path
	// for SQLite.
	URL string

	// MaxOpenConns is the maximum number of open connections.
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	MaxIdleConns int

	// ConnMaxLifetime is the maximum lifetime of a connection.
	ConnMaxLifetime time.Duration

	// ConnMaxIdleTime is the maximum idle time of a connection.
	ConnMaxIdleTime time.Duration

	// LogQueries logs every statement at debug level.
	LogQueries bool
}

// DefaultConfig returns a sensible default configuration for a local SQLite file.
func DefaultConfig() Config {
	return Config{
		Driver:          DriverSQLite,
		URL:             "coursehub.db",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

// DSN returns the data source name handed to database/sql.
// SQLite connections always enable foreign keys and a busy timeout, and
// begin transactions IMMEDIATE so concurrent commits wait instead of failing.
func (c Config) DSN() string {
	if c.Driver != DriverSQLite {
		return c.URL
	}

	dsn := c.URL
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"
}

// Event describes one statement sent to the database.
type Event struct {
	// Kind is "query", "exec" or "tx".
	Kind      string
	Statement string
	Args      []any
	Rows      int64
	Duration  time.Duration
	Err       error
}

// Hook observes every statement executed through a Store.
type Hook func(ctx context.Context, ev Event)

// Option configures a Store.
type Option func(*Store)

// WithHook registers a statement observer.
func WithHook(h Hook) Option {
	return func(s *Store) {
		s.hooks = append(s.hooks, h)
	}
}

// WithLogger sets the store logger.
func WithLogger(log *logger.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// Store is a sqlx connection pool with health checks, statement hooks and
// driver-aware error classification. It is safe for concurrent use.
type Store struct {
	db         *sqlx.DB
	driver     string
	dialect    dialect
	log        *logger.Logger
	logQueries bool
	hooks      []Hook
	closed     bool
	mu         sync.RWMutex
}

// Open creates a new connection pool and verifies it with a ping.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	d, err := dialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("sqldb: failed to open %s pool: %w", cfg.Driver, err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Verify connection
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqldb: failed to ping database: %w", err)
	}

	s := &Store{
		db:         db,
		driver:     cfg.Driver,
		dialect:    d,
		log:        logger.Nop(),
		logQueries: cfg.LogQueries,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("sqldb"))

	return s, nil
}

// DB returns the underlying sqlx handle.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Driver returns the database/sql driver name.
func (s *Store) Driver() string {
	return s.driver
}

// Close closes the connection pool.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

// IsClosed returns true if the connection pool is closed.
func (s *Store) IsClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Ping checks if the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrConnectionClosed
	}

	return s.db.PingContext(ctx)
}

// Health returns detailed health information.
func (s *Store) Health(ctx context.Context) (*HealthStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrConnectionClosed
	}

	status := &HealthStatus{
		Driver:    s.driver,
		CheckedAt: time.Now().UTC(),
	}

	// Check ping
	start := time.Now()
	if err := s.db.PingContext(ctx); err != nil {
		status.Healthy = false
		status.Error = err.Error()
		return status, nil
	}
	status.PingLatency = time.Since(start)

	// Get pool stats
	stats := s.db.Stats()
	status.OpenConns = stats.OpenConnections
	status.InUseConns = stats.InUse
	status.IdleConns = stats.Idle
	status.MaxOpenConns = stats.MaxOpenConnections
	status.WaitCount = stats.WaitCount
	status.WaitDuration = stats.WaitDuration

	status.Healthy = true
	return status, nil
}

// HealthStatus contains database health information.
type HealthStatus struct {
	Healthy      bool
	Driver       string
	Error        string
	CheckedAt    time.Time
	PingLatency  time.Duration
	OpenConns    int
	InUseConns   int
	IdleConns    int
	MaxOpenConns int
	WaitCount    int64
	WaitDuration time.Duration
}

// ══════════════════════════════════════════════════════════════════════════════
// TRANSACTION SUPPORT
// ══════════════════════════════════════════════════════════════════════════════

// BeginTx starts a new read-write transaction.
func (s *Store) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrConnectionClosed
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}

	return tx, nil
}

// WithTx executes a function within a transaction.
// The transaction is committed if the function returns nil, rolled back otherwise.
func (s *Store) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	start := time.Now()

	tx, err := s.BeginTx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			err = fmt.Errorf("tx error: %v, rollback error: %w", err, rbErr)
		}
		s.observe(ctx, Event{Kind: "tx", Statement: "ROLLBACK", Duration: time.Since(start), Err: err})
		return err
	}

	if err := tx.Commit(); err != nil {
		err = fmt.Errorf("commit error: %w", err)
		s.observe(ctx, Event{Kind: "tx", Statement: "COMMIT", Duration: time.Since(start), Err: err})
		return err
	}

	s.observe(ctx, Event{Kind: "tx", Statement: "COMMIT", Duration: time.Since(start)})
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// QUERY HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// queryx runs a row-returning statement on the pool.
func (s *Store) queryx(ctx context.Context, query string, args ...any) (*sqlx.Rows, error) {
	if s.IsClosed() {
		return nil, ErrConnectionClosed
	}

	query = s.db.Rebind(query)
	start := time.Now()
	rows, err := s.db.QueryxContext(ctx, query, args...)
	s.observe(ctx, Event{Kind: "query", Statement: query, Args: args, Duration: time.Since(start), Err: err})
	return rows, err
}

// get scans a single-row, single-value statement into dest.
func (s *Store) get(ctx context.Context, dest any, query string, args ...any) error {
	if s.IsClosed() {
		return ErrConnectionClosed
	}

	query = s.db.Rebind(query)
	start := time.Now()
	err := s.db.GetContext(ctx, dest, query, args...)
	s.observe(ctx, Event{Kind: "query", Statement: query, Args: args, Duration: time.Since(start), Err: err})
	return err
}

// exec runs a statement inside tx, or on the pool when tx is nil.
func (s *Store) exec(ctx context.Context, tx *sqlx.Tx, query string, args ...any) (int64, error) {
	if s.IsClosed() {
		return 0, ErrConnectionClosed
	}

	query = s.db.Rebind(query)
	start := time.Now()

	var (
		res sql.Result
		err error
	)
	if tx != nil {
		res, err = tx.ExecContext(ctx, query, args...)
	} else {
		res, err = s.db.ExecContext(ctx, query, args...)
	}

	var n int64
	if err == nil {
		n, err = res.RowsAffected()
	}

	s.observe(ctx, Event{Kind: "exec", Statement: query, Args: args, Rows: n, Duration: time.Since(start), Err: err})
	return n, err
}

func (s *Store) observe(ctx context.Context, ev Event) {
	if s.logQueries {
		s.log.Debug("sql statement",
			logger.String("kind", ev.Kind),
			logger.String("statement", ev.Statement),
			logger.Int64("rows", ev.Rows),
			logger.Latency(ev.Duration),
			logger.Err(ev.Err),
		)
	}
	for _, h := range s.hooks {
		h(ctx, ev)
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// ERROR HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// PostgreSQL SQLSTATE codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func sqliteCode(err error) int {
	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		return sqErr.Code()
	}
	return 0
}

// IsUniqueViolation checks if the error is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	if pgCode(err) == pgUniqueViolation {
		return true
	}
	code := sqliteCode(err)
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

// IsForeignKeyViolation checks if the error is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	return pgCode(err) == pgForeignKeyViolation ||
		sqliteCode(err) == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
}

// IsNotNullViolation checks if the error is a not null violation.
func IsNotNullViolation(err error) bool {
	return pgCode(err) == pgNotNullViolation ||
		sqliteCode(err) == sqlite3.SQLITE_CONSTRAINT_NOTNULL
}

// IsCheckViolation checks if the error is a CHECK constraint violation.
func IsCheckViolation(err error) bool {
	return pgCode(err) == pgCheckViolation ||
		sqliteCode(err) == sqlite3.SQLITE_CONSTRAINT_CHECK
}
