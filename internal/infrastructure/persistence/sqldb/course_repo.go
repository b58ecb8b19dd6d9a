package sqldb

import (
	"database/sql"
	"time"

	"github.com/course-hub/coursehub/internal/domain/education"

	"github.com/jmoiron/sqlx"
)

// ══════════════════════════════════════════════════════════════════════════════
// COURSE REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

type courseRow struct {
	ID           string         `db:"id"`
	CreatedDate  time.Time      `db:"created_date"`
	CourseName   string         `db:"course_name"`
	StartDate    time.Time      `db:"start_date"`
	EndDate      time.Time      `db:"end_date"`
	IsActive     bool           `db:"is_active"`
	InstructorID sql.NullString `db:"instructor_id"`
}

func (r courseRow) entity() *education.Course {
	return &education.Course{
		BaseEntity:   education.BaseEntity{ID: r.ID, CreatedDate: r.CreatedDate},
		CourseName:   r.CourseName,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		IsActive:     r.IsActive,
		InstructorID: ref(r.InstructorID.Valid, r.InstructorID.String),
	}
}

// courseDetailRow is a course joined with its instructor.
type courseDetailRow struct {
	courseRow
	InstructorCreatedDate sql.NullTime   `db:"instructor_created_date"`
	InstructorName        sql.NullString `db:"instructor_name"`
	InstructorSurname     sql.NullString `db:"instructor_surname"`
	InstructorEmail       sql.NullString `db:"instructor_email"`
	InstructorProfessions sql.NullString `db:"instructor_professions"`
	InstructorPhoneNumber sql.NullString `db:"instructor_phone_number"`
}

func (r courseDetailRow) entity() *education.Course {
	c := r.courseRow.entity()
	if c.InstructorID != nil && r.InstructorCreatedDate.Valid {
		c.Instructor = &education.Instructor{
			BaseEntity:  education.BaseEntity{ID: *c.InstructorID, CreatedDate: r.InstructorCreatedDate.Time},
			Name:        r.InstructorName.String,
			Surname:     r.InstructorSurname.String,
			Email:       r.InstructorEmail.String,
			Professions: r.InstructorProfessions.String,
			PhoneNumber: r.InstructorPhoneNumber.String,
		}
	}
	return c
}

// joinedCourse holds course columns reached through a LEFT JOIN.
type joinedCourse struct {
	CreatedDate  sql.NullTime   `db:"course_created_date"`
	CourseName   sql.NullString `db:"course_name"`
	StartDate    sql.NullTime   `db:"course_start_date"`
	EndDate      sql.NullTime   `db:"course_end_date"`
	IsActive     sql.NullBool   `db:"course_is_active"`
	InstructorID sql.NullString `db:"course_instructor_id"`
}

const joinedCourseColumns = "c.created_date AS course_created_date, c.course_name AS course_name, " +
	"c.start_date AS course_start_date, c.end_date AS course_end_date, " +
	"c.is_active AS course_is_active, c.instructor_id AS course_instructor_id"

// entity returns nil when the join found no course.
func (j joinedCourse) entity(id *string) *education.Course {
	if id == nil || !j.CreatedDate.Valid {
		return nil
	}
	return &education.Course{
		BaseEntity:   education.BaseEntity{ID: *id, CreatedDate: j.CreatedDate.Time},
		CourseName:   j.CourseName.String,
		StartDate:    j.StartDate.Time,
		EndDate:      j.EndDate.Time,
		IsActive:     j.IsActive.Bool,
		InstructorID: ref(j.InstructorID.Valid, j.InstructorID.String),
	}
}

var courseTable = &table[education.Course]{
	aggregate: "course",
	name:      "courses",
	columns:   []string{"course_name", "start_date", "end_date", "is_active", "instructor_id"},
	values: func(e *education.Course) []any {
		return []any{e.CourseName, e.StartDate, e.EndDate, e.IsActive, optional(e.InstructorID)}
	},
	base: func(e *education.Course) *education.BaseEntity { return &e.BaseEntity },
	keepRelations: func(into, prev *education.Course) {
		if sameRef(into.InstructorID, prev.InstructorID) {
			into.Instructor = prev.Instructor
		}
	},
}

const courseColumns = "c.id, c.created_date, c.course_name, c.start_date, c.end_date, c.is_active, c.instructor_id"

var courseFields = map[string]string{
	"ID":           "c.id",
	"CreatedDate":  "c.created_date",
	"CourseName":   "c.course_name",
	"StartDate":    "c.start_date",
	"EndDate":      "c.end_date",
	"IsActive":     "c.is_active",
	"InstructorID": "c.instructor_id",
}

var courseSource = &source[education.Course]{
	aggregate: "course",
	columns:   courseColumns,
	from:      "courses c",
	idColumn:  "c.id",
	orderBy:   "c.created_date, c.id",
	fields:    courseFields,
	scan: func(rows *sqlx.Rows) (*education.Course, error) {
		var row courseRow
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		return row.entity(), nil
	},
	id: func(e *education.Course) string { return e.ID },
}

var courseDetailSource = &source[education.Course]{
	aggregate: "course",
	columns: courseColumns + ", i.created_date AS instructor_created_date, i.name AS instructor_name, " +
		"i.surname AS instructor_surname, i.email AS instructor_email, " +
		"i.professions AS instructor_professions, i.phone_number AS instructor_phone_number",
	from:     "courses c LEFT JOIN instructors i ON i.id = c.instructor_id",
	idColumn: "c.id",
	orderBy:  "c.created_date, c.id",
	fields:   courseFields,
	scan: func(rows *sqlx.Rows) (*education.Course, error) {
		var row courseDetailRow
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		return row.entity(), nil
	},
	id: func(e *education.Course) string { return e.ID },
}

// courseRepository implements education.CourseRepository.
type courseRepository struct {
	*repository[education.Course]
}

func newCourseRepository(uow *unitOfWork) *courseRepository {
	return &courseRepository{repository: newRepository(uow, courseTable, courseSource)}
}

// GetAllCourseDetail returns courses with their instructor loaded in the
// same statement.
func (r *courseRepository) GetAllCourseDetail(trackChanges bool) education.Query[education.Course] {
	return r.query(courseDetailSource, trackChanges)
}

// GetAllByInstructor returns the courses taught by one instructor.
func (r *courseRepository) GetAllByInstructor(instructorID string, trackChanges bool) education.Query[education.Course] {
	return r.query(courseSource, trackChanges).Where("InstructorID", instructorID)
}
