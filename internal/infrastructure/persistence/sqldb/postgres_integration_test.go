//go:build integration

package sqldb_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/course-hub/coursehub/internal/domain/education"
	"github.com/course-hub/coursehub/internal/domain/shared"
	"github.com/course-hub/coursehub/internal/infrastructure/persistence/sqldb"
	"github.com/course-hub/coursehub/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage         = "postgres:16-alpine"
	postgresPort          = "5432/tcp"
	containerStartTimeout = 120 * time.Second
)

// setupPostgres starts a PostgreSQL container and returns its connection URL.
func setupPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{postgresPort},
		Env: map[string]string{
			"POSTGRES_USER":     "coursehub",
			"POSTGRES_PASSWORD": "coursehub",
			"POSTGRES_DB":       "coursehub",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(containerStartTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("warning: failed to terminate PostgreSQL container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://coursehub:coursehub@%s:%s/coursehub?sslmode=disable", host, port.Port())
}

func TestPostgres_Drivers(t *testing.T) {
	url := setupPostgres(t)

	for _, driver := range []string{sqldb.DriverPgx, sqldb.DriverPostgres} {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()

			store, err := sqldb.Open(ctx, sqldb.Config{Driver: driver, URL: url, MaxOpenConns: 5})
			require.NoError(t, err)
			defer store.Close()

			m := sqldb.NewMigrator(store)
			_, err = m.Migrate(ctx)
			require.NoError(t, err)
			defer func() {
				for range sqldb.GetMigrations() {
					_, _ = m.Rollback(ctx)
				}
			}()

			f := sqldb.NewUnitOfWorkFactory(store, logger.Nop())
			uow := f.New()
			defer uow.Close()

			student := &education.Student{Name: "Ada", Surname: "Lovelace", BirthDate: day(2000, 5, 17)}
			course := &education.Course{CourseName: "Algorithms", StartDate: day(2024, 1, 1), EndDate: day(2024, 6, 1), IsActive: true}
			require.NoError(t, uow.Students().Create(student))
			require.NoError(t, uow.Courses().Create(course))
			require.NoError(t, uow.Registrations().Create(&education.Registration{
				StudentID:        student.ID,
				CourseID:         course.ID,
				RegistrationDate: day(2024, 1, 2),
				Price:            decimal.RequireFromString("100.50"),
			}))

			rows, err := uow.Commit(ctx)
			require.NoError(t, err)
			assert.Equal(t, 3, rows)

			regs, err := uow.Registrations().GetAllRegistrationDetail(false).List(ctx)
			require.NoError(t, err)
			require.Len(t, regs, 1)
			assert.Equal(t, "Algorithms", regs[0].CourseName())
			assert.Equal(t, "Ada Lovelace", regs[0].StudentName())
			assert.True(t, decimal.RequireFromString("100.5").Equal(regs[0].Price))

			require.NoError(t, uow.Registrations().Create(&education.Registration{
				StudentID: uuid.NewString(),
				CourseID:  course.ID,
				Price:     decimal.NewFromInt(1),
			}))
			_, err = uow.Commit(ctx)
			require.Error(t, err)
			assert.True(t, errors.Is(err, shared.ErrReferenceMissing), err.Error())
		})
	}
}
