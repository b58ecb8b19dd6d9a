package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/course-hub/coursehub/internal/application/service"
	"github.com/course-hub/coursehub/internal/domain/shared"
	"github.com/course-hub/coursehub/internal/infrastructure/persistence/sqldb"
	"github.com/course-hub/coursehub/internal/infrastructure/persistence/sqldb/sqldbtest"
	"github.com/course-hub/coursehub/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_Sample(t *testing.T) {
	store, _ := sqldbtest.Open(t)
	factory := sqldb.NewUnitOfWorkFactory(store, logger.Nop())
	ctx := context.Background()

	sum, err := NewSeeder(factory, logger.Nop()).Apply(ctx, Sample())
	require.NoError(t, err)
	assert.Equal(t, Summary{
		Instructors:   2,
		Courses:       3,
		Students:      2,
		Lessons:       2,
		Exams:         2,
		ExamResults:   3,
		Registrations: 2,
		Rows:          16,
	}, sum)

	m := service.NewManagers(factory, logger.Nop())

	regs, err := m.Registrations.GetAllRegistrationDetail(ctx, false)
	require.NoError(t, err)
	require.Len(t, regs.Data, 2)
	for _, r := range regs.Data {
		assert.NotEmpty(t, r.CourseName)
		assert.NotEmpty(t, r.StudentName)
	}

	exams, err := m.Exams.GetAllExamDetail(ctx, false)
	require.NoError(t, err)
	for _, e := range exams.Data {
		if e.ExamName == "Algorithms Final" {
			require.NotNil(t, e.Grade)
			assert.True(t, decimal.RequireFromString("90.25").Equal(*e.Grade))
		}
	}
}

func TestApply_InvalidFixturesWriteNothing(t *testing.T) {
	cases := map[string]string{
		"unknown key": `
courses:
  - course_name: Algorithms
    start_date: "2024-01-01"
    end_date: "2024-06-01"
    instructor: nobody
`,
		"non-positive price": `
students:
  - key: ada
    name: Ada
courses:
  - key: algo
    course_name: Algorithms
    start_date: "2024-01-01"
    end_date: "2024-06-01"
registrations:
  - student: ada
    course: algo
    price: "0"
`,
		"sub-cent price": `
students:
  - key: ada
    name: Ada
courses:
  - key: algo
    course_name: Algorithms
    start_date: "2024-01-01"
    end_date: "2024-06-01"
registrations:
  - student: ada
    course: algo
    price: "99.999"
`,
		"bad date": `
students:
  - name: Ada
    birth_date: "10/12/1995"
`,
		"reversed dates": `
courses:
  - course_name: Algorithms
    start_date: "2024-06-01"
    end_date: "2024-01-01"
`,
		"duplicate key": `
students:
  - key: ada
    name: Ada
  - key: ada
    name: Another
`,
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			store, rec := sqldbtest.Open(t)
			factory := sqldb.NewUnitOfWorkFactory(store, logger.Nop())

			fx, err := Parse(strings.NewReader(doc))
			require.NoError(t, err)

			_, err = NewSeeder(factory, nil).Apply(context.Background(), fx)
			require.Error(t, err)
			assert.True(t, shared.IsValidation(err), err.Error())
			assert.Zero(t, rec.Count("exec"))
		})
	}
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := Parse(strings.NewReader("teachers:\n  - name: Grace\n"))
	require.Error(t, err)

	fx, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, fx.Courses)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, []byte("students:\n  - name: Ada\n    surname: Lovelace\n"), 0o600))

	fx, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, fx.Students, 1)
	assert.Equal(t, "Lovelace", fx.Students[0].Surname)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
