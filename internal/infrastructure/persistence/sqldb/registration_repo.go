package sqldb

import (
	"context"
	"time"

	"github.com/course-hub/coursehub/internal/domain/education"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// ══════════════════════════════════════════════════════════════════════════════
// REGISTRATION REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

type registrationRow struct {
	ID               string          `db:"id"`
	CreatedDate      time.Time       `db:"created_date"`
	StudentID        string          `db:"student_id"`
	CourseID         string          `db:"course_id"`
	RegistrationDate time.Time       `db:"registration_date"`
	Price            decimal.Decimal `db:"price"`
}

func (r registrationRow) entity() *education.Registration {
	return &education.Registration{
		BaseEntity:       education.BaseEntity{ID: r.ID, CreatedDate: r.CreatedDate},
		StudentID:        r.StudentID,
		CourseID:         r.CourseID,
		RegistrationDate: r.RegistrationDate,
		Price:            r.Price,
	}
}

type registrationDetailRow struct {
	registrationRow
	joinedCourse
	joinedStudent
}

var registrationTable = &table[education.Registration]{
	aggregate: "registration",
	name:      "registrations",
	columns:   []string{"student_id", "course_id", "registration_date", "price"},
	values: func(e *education.Registration) []any {
		return []any{e.StudentID, e.CourseID, e.RegistrationDate, e.Price.String()}
	},
	base: func(e *education.Registration) *education.BaseEntity { return &e.BaseEntity },
	keepRelations: func(into, prev *education.Registration) {
		if into.CourseID == prev.CourseID {
			into.Course = prev.Course
		}
		if into.StudentID == prev.StudentID {
			into.Student = prev.Student
		}
	},
}

const registrationColumns = "r.id, r.created_date, r.student_id, r.course_id, r.registration_date, r.price"

var registrationFields = map[string]string{
	"ID":               "r.id",
	"CreatedDate":      "r.created_date",
	"StudentID":        "r.student_id",
	"CourseID":         "r.course_id",
	"RegistrationDate": "r.registration_date",
	"Price":            "r.price",
}

var registrationSource = &source[education.Registration]{
	aggregate: "registration",
	columns:   registrationColumns,
	from:      "registrations r",
	idColumn:  "r.id",
	orderBy:   "r.created_date, r.id",
	fields:    registrationFields,
	scan: func(rows *sqlx.Rows) (*education.Registration, error) {
		var row registrationRow
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		return row.entity(), nil
	},
	id: func(e *education.Registration) string { return e.ID },
}

var registrationDetailSource = &source[education.Registration]{
	aggregate: "registration",
	columns:   registrationColumns + ", " + joinedCourseColumns + ", " + joinedStudentColumns,
	from: "registrations r " +
		"LEFT JOIN courses c ON c.id = r.course_id " +
		"LEFT JOIN students s ON s.id = r.student_id",
	idColumn: "r.id",
	orderBy:  "r.created_date, r.id",
	fields:   registrationFields,
	scan: func(rows *sqlx.Rows) (*education.Registration, error) {
		var row registrationDetailRow
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		reg := row.registrationRow.entity()
		reg.Course = row.joinedCourse.entity(&reg.CourseID)
		reg.Student = row.joinedStudent.entity(&reg.StudentID)
		return reg, nil
	},
	id: func(e *education.Registration) string { return e.ID },
}

// registrationRepository implements education.RegistrationRepository.
type registrationRepository struct {
	*repository[education.Registration]
}

func newRegistrationRepository(uow *unitOfWork) *registrationRepository {
	return &registrationRepository{repository: newRepository(uow, registrationTable, registrationSource)}
}

// GetAllRegistrationDetail returns registrations with course and student
// loaded in the same statement.
func (r *registrationRepository) GetAllRegistrationDetail(trackChanges bool) education.Query[education.Registration] {
	return r.query(registrationDetailSource, trackChanges)
}

// GetByIDRegistrationDetail returns one registration with course and
// student, or (nil, nil).
func (r *registrationRepository) GetByIDRegistrationDetail(ctx context.Context, id string, trackChanges bool) (*education.Registration, error) {
	return r.getByID(ctx, registrationDetailSource, id, trackChanges)
}
