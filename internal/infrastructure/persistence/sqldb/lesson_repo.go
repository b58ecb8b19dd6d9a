package sqldb

import (
	"context"
	"database/sql"
	"time"

	"github.com/course-hub/coursehub/internal/domain/education"

	"github.com/jmoiron/sqlx"
)

// ══════════════════════════════════════════════════════════════════════════════
// LESSON REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

type lessonRow struct {
	ID          string         `db:"id"`
	CreatedDate time.Time      `db:"created_date"`
	Name        string         `db:"name"`
	Date        time.Time      `db:"lesson_date"`
	Duration    int            `db:"duration"`
	Content     string         `db:"content"`
	Time        string         `db:"lesson_time"`
	CourseID    sql.NullString `db:"course_id"`
}

func (r lessonRow) entity() *education.Lesson {
	return &education.Lesson{
		BaseEntity: education.BaseEntity{ID: r.ID, CreatedDate: r.CreatedDate},
		Name:       r.Name,
		Date:       r.Date,
		Duration:   r.Duration,
		Content:    r.Content,
		Time:       r.Time,
		CourseID:   ref(r.CourseID.Valid, r.CourseID.String),
	}
}

type lessonDetailRow struct {
	lessonRow
	joinedCourse
}

var lessonTable = &table[education.Lesson]{
	aggregate: "lesson",
	name:      "lessons",
	columns:   []string{"name", "lesson_date", "duration", "content", "lesson_time", "course_id"},
	values: func(e *education.Lesson) []any {
		return []any{e.Name, e.Date, e.Duration, e.Content, e.Time, optional(e.CourseID)}
	},
	base: func(e *education.Lesson) *education.BaseEntity { return &e.BaseEntity },
	keepRelations: func(into, prev *education.Lesson) {
		if sameRef(into.CourseID, prev.CourseID) {
			into.Course = prev.Course
		}
	},
}

const lessonColumns = "l.id, l.created_date, l.name, l.lesson_date, l.duration, l.content, l.lesson_time, l.course_id"

var lessonFields = map[string]string{
	"ID":          "l.id",
	"CreatedDate": "l.created_date",
	"Name":        "l.name",
	"Date":        "l.lesson_date",
	"Duration":    "l.duration",
	"Content":     "l.content",
	"Time":        "l.lesson_time",
	"CourseID":    "l.course_id",
}

var lessonSource = &source[education.Lesson]{
	aggregate: "lesson",
	columns:   lessonColumns,
	from:      "lessons l",
	idColumn:  "l.id",
	orderBy:   "l.created_date, l.id",
	fields:    lessonFields,
	scan: func(rows *sqlx.Rows) (*education.Lesson, error) {
		var row lessonRow
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		return row.entity(), nil
	},
	id: func(e *education.Lesson) string { return e.ID },
}

var lessonDetailSource = &source[education.Lesson]{
	aggregate: "lesson",
	columns:   lessonColumns + ", " + joinedCourseColumns,
	from:      "lessons l LEFT JOIN courses c ON c.id = l.course_id",
	idColumn:  "l.id",
	orderBy:   "l.created_date, l.id",
	fields:    lessonFields,
	scan: func(rows *sqlx.Rows) (*education.Lesson, error) {
		var row lessonDetailRow
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		l := row.lessonRow.entity()
		l.Course = row.joinedCourse.entity(l.CourseID)
		return l, nil
	},
	id: func(e *education.Lesson) string { return e.ID },
}

// lessonRepository implements education.LessonRepository.
type lessonRepository struct {
	*repository[education.Lesson]
}

func newLessonRepository(uow *unitOfWork) *lessonRepository {
	return &lessonRepository{repository: newRepository(uow, lessonTable, lessonSource)}
}

// GetAllLessonDetails returns lessons with their course loaded in the same
// statement.
func (r *lessonRepository) GetAllLessonDetails(trackChanges bool) education.Query[education.Lesson] {
	return r.query(lessonDetailSource, trackChanges)
}

// GetByIDLessonDetails returns one lesson with its course, or (nil, nil).
func (r *lessonRepository) GetByIDLessonDetails(ctx context.Context, id string, trackChanges bool) (*education.Lesson, error) {
	return r.getByID(ctx, lessonDetailSource, id, trackChanges)
}
