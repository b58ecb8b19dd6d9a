package sqldb

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/course-hub/coursehub/pkg/logger"

	"github.com/jmoiron/sqlx"
)

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION SUPPORT
// ══════════════════════════════════════════════════════════════════════════════

// Migration represents a database migration.
// UpSQL and DownSQL may use the {{timestamp}} placeholder, which is replaced
// with the dialect's timestamp type.
type Migration struct {
	Version   int
	Name      string
	UpSQL     string
	DownSQL   string
	AppliedAt time.Time
	IsApplied bool
}

// Migrator handles database migrations.
type Migrator struct {
	store      *Store
	migrations []Migration
	tableName  string
}

// NewMigrator creates a new migrator with embedded migrations.
func NewMigrator(store *Store) *Migrator {
	return NewMigratorWithMigrations(store, GetMigrations())
}

// NewMigratorWithMigrations creates a migrator with custom migrations.
func NewMigratorWithMigrations(store *Store, migrations []Migration) *Migrator {
	sorted := make([]Migration, len(migrations))
	copy(sorted, migrations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Version < sorted[j].Version })

	return &Migrator{
		store:      store,
		migrations: sorted,
		tableName:  "schema_migrations",
	}
}

func (m *Migrator) render(sqlText string) string {
	return strings.ReplaceAll(sqlText, "{{timestamp}}", m.store.dialect.timestamp)
}

// statements splits a migration body on ';' so each statement is sent on
// its own. Migration bodies must not contain ';' inside literals.
func statements(sqlText string) []string {
	var out []string
	for _, part := range strings.Split(sqlText, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// EnsureMigrationTable creates the migration tracking table if it doesn't exist.
func (m *Migrator) EnsureMigrationTable(ctx context.Context) error {
	query := m.render(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at {{timestamp}} NOT NULL
		)
	`, m.tableName))

	if _, err := m.store.exec(ctx, nil, query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	return nil
}

// GetAppliedMigrations returns all applied migrations.
func (m *Migrator) GetAppliedMigrations(ctx context.Context) (map[int]time.Time, error) {
	query := fmt.Sprintf("SELECT version, applied_at FROM %s ORDER BY version", m.tableName)

	rows, err := m.store.queryx(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]time.Time)
	for rows.Next() {
		var version int
		var appliedAt time.Time

		if err := rows.Scan(&version, &appliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}

		applied[version] = appliedAt
	}

	return applied, rows.Err()
}

// Migrate applies all pending migrations and returns how many were applied.
func (m *Migrator) Migrate(ctx context.Context) (int, error) {
	if err := m.EnsureMigrationTable(ctx); err != nil {
		return 0, err
	}

	applied, err := m.GetAppliedMigrations(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, mig := range m.migrations {
		if _, isApplied := applied[mig.Version]; isApplied {
			continue
		}

		if mig.UpSQL == "" {
			return count, fmt.Errorf("%w: missing up SQL for migration %d", ErrMigrationFailed, mig.Version)
		}

		// Apply migration in transaction
		err := m.store.WithTx(ctx, func(tx *sqlx.Tx) error {
			for _, stmt := range statements(m.render(mig.UpSQL)) {
				if _, err := m.store.exec(ctx, tx, stmt); err != nil {
					return fmt.Errorf("failed to execute migration %d: %w", mig.Version, err)
				}
			}

			// Record migration
			insertQuery := fmt.Sprintf("INSERT INTO %s (version, name, applied_at) VALUES (?, ?, ?)", m.tableName)
			_, err := m.store.exec(ctx, tx, insertQuery, mig.Version, mig.Name, time.Now().UTC())
			return err
		})
		if err != nil {
			return count, fmt.Errorf("%w: version %d: %v", ErrMigrationFailed, mig.Version, err)
		}

		m.store.log.Info("migration applied",
			logger.Int("version", mig.Version),
			logger.String("name", mig.Name),
		)
		count++
	}

	return count, nil
}

// Rollback rolls back the last applied migration. It returns the rolled back
// version, or 0 when nothing was applied.
func (m *Migrator) Rollback(ctx context.Context) (int, error) {
	if err := m.EnsureMigrationTable(ctx); err != nil {
		return 0, err
	}

	applied, err := m.GetAppliedMigrations(ctx)
	if err != nil {
		return 0, err
	}

	// Find the last applied migration
	var lastVersion int
	for v := range applied {
		if v > lastVersion {
			lastVersion = v
		}
	}

	if lastVersion == 0 {
		return 0, nil // Nothing to rollback
	}

	// Find the migration
	var migration *Migration
	for i := range m.migrations {
		if m.migrations[i].Version == lastVersion {
			migration = &m.migrations[i]
			break
		}
	}

	if migration == nil || migration.DownSQL == "" {
		return 0, fmt.Errorf("%w: missing down SQL for migration %d", ErrMigrationFailed, lastVersion)
	}

	// Rollback in transaction
	err = m.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, stmt := range statements(m.render(migration.DownSQL)) {
			if _, err := m.store.exec(ctx, tx, stmt); err != nil {
				return fmt.Errorf("failed to rollback migration %d: %w", lastVersion, err)
			}
		}

		// Remove migration record
		deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE version = ?", m.tableName)
		_, err := m.store.exec(ctx, tx, deleteQuery, lastVersion)
		return err
	})
	if err != nil {
		return 0, err
	}

	return lastVersion, nil
}

// Status returns the migration status.
func (m *Migrator) Status(ctx context.Context) ([]Migration, error) {
	if err := m.EnsureMigrationTable(ctx); err != nil {
		return nil, err
	}

	applied, err := m.GetAppliedMigrations(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]Migration, len(m.migrations))
	copy(result, m.migrations)

	for i := range result {
		if appliedAt, ok := applied[result[i].Version]; ok {
			result[i].IsApplied = true
			result[i].AppliedAt = appliedAt
		}
	}

	return result, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// EMBEDDED MIGRATIONS
// ══════════════════════════════════════════════════════════════════════════════

// GetMigrations returns all embedded migrations.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_instructors_and_courses",
			UpSQL:   migration001Up,
			DownSQL: migration001Down,
		},
		{
			Version: 2,
			Name:    "create_students_and_lessons",
			UpSQL:   migration002Up,
			DownSQL: migration002Down,
		},
		{
			Version: 3,
			Name:    "create_exams_and_registrations",
			UpSQL:   migration003Up,
			DownSQL: migration003Down,
		},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// MIGRATION 001: INSTRUCTORS AND COURSES
// ─────────────────────────────────────────────────────────────────────────────

const migration001Up = `
CREATE TABLE IF NOT EXISTS instructors (
    id VARCHAR(36) PRIMARY KEY,
    created_date {{timestamp}} NOT NULL,
    name VARCHAR(100) NOT NULL DEFAULT '',
    surname VARCHAR(100) NOT NULL DEFAULT '',
    email VARCHAR(200) NOT NULL DEFAULT '',
    professions VARCHAR(200) NOT NULL DEFAULT '',
    phone_number VARCHAR(30) NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS courses (
    id VARCHAR(36) PRIMARY KEY,
    created_date {{timestamp}} NOT NULL,
    course_name VARCHAR(100) NOT NULL DEFAULT '',
    start_date {{timestamp}} NOT NULL,
    end_date {{timestamp}} NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT FALSE,
    instructor_id VARCHAR(36) REFERENCES instructors(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_courses_instructor_id ON courses(instructor_id);
CREATE INDEX IF NOT EXISTS idx_courses_course_name ON courses(course_name);
`

const migration001Down = `
DROP TABLE IF EXISTS courses;
DROP TABLE IF EXISTS instructors;
`

// ─────────────────────────────────────────────────────────────────────────────
// MIGRATION 002: STUDENTS AND LESSONS
// ─────────────────────────────────────────────────────────────────────────────

const migration002Up = `
CREATE TABLE IF NOT EXISTS students (
    id VARCHAR(36) PRIMARY KEY,
    created_date {{timestamp}} NOT NULL,
    name VARCHAR(100) NOT NULL DEFAULT '',
    surname VARCHAR(100) NOT NULL DEFAULT '',
    birth_date {{timestamp}} NOT NULL,
    tc VARCHAR(20) NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS lessons (
    id VARCHAR(36) PRIMARY KEY,
    created_date {{timestamp}} NOT NULL,
    name VARCHAR(100) NOT NULL DEFAULT '',
    lesson_date {{timestamp}} NOT NULL,
    duration INTEGER NOT NULL DEFAULT 0,
    content TEXT NOT NULL DEFAULT '',
    lesson_time VARCHAR(50) NOT NULL DEFAULT '',
    course_id VARCHAR(36) REFERENCES courses(id) ON DELETE CASCADE,

    CONSTRAINT valid_duration CHECK (duration >= 0)
);

CREATE INDEX IF NOT EXISTS idx_lessons_course_id ON lessons(course_id);
`

const migration002Down = `
DROP TABLE IF EXISTS lessons;
DROP TABLE IF EXISTS students;
`

// ─────────────────────────────────────────────────────────────────────────────
// MIGRATION 003: EXAMS AND REGISTRATIONS
// ─────────────────────────────────────────────────────────────────────────────

const migration003Up = `
CREATE TABLE IF NOT EXISTS exams (
    id VARCHAR(36) PRIMARY KEY,
    created_date {{timestamp}} NOT NULL,
    name VARCHAR(100) NOT NULL DEFAULT '',
    exam_date {{timestamp}} NOT NULL,
    student_id VARCHAR(36) REFERENCES students(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_exams_student_id ON exams(student_id);

CREATE TABLE IF NOT EXISTS exam_results (
    id VARCHAR(36) PRIMARY KEY,
    created_date {{timestamp}} NOT NULL,
    exam_id VARCHAR(36) NOT NULL REFERENCES exams(id) ON DELETE CASCADE,
    grade NUMERIC(5,2) NOT NULL,

    CONSTRAINT valid_grade CHECK (grade >= 0)
);

CREATE INDEX IF NOT EXISTS idx_exam_results_exam_id ON exam_results(exam_id);

CREATE TABLE IF NOT EXISTS registrations (
    id VARCHAR(36) PRIMARY KEY,
    created_date {{timestamp}} NOT NULL,
    student_id VARCHAR(36) NOT NULL REFERENCES students(id) ON DELETE CASCADE,
    course_id VARCHAR(36) NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
    registration_date {{timestamp}} NOT NULL,
    price NUMERIC(12,2) NOT NULL,

    CONSTRAINT valid_price CHECK (price > 0)
);

CREATE INDEX IF NOT EXISTS idx_registrations_student_id ON registrations(student_id);
CREATE INDEX IF NOT EXISTS idx_registrations_course_id ON registrations(course_id);
`

const migration003Down = `
DROP TABLE IF EXISTS registrations;
DROP TABLE IF EXISTS exam_results;
DROP TABLE IF EXISTS exams;
`
