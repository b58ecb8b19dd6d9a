package sqldb

import (
	"time"

	"github.com/course-hub/coursehub/internal/domain/education"

	"github.com/jmoiron/sqlx"
)

// ══════════════════════════════════════════════════════════════════════════════
// INSTRUCTOR REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

type instructorRow struct {
	ID          string    `db:"id"`
	CreatedDate time.Time `db:"created_date"`
	Name        string    `db:"name"`
	Surname     string    `db:"surname"`
	Email       string    `db:"email"`
	Professions string    `db:"professions"`
	PhoneNumber string    `db:"phone_number"`
}

func (r instructorRow) entity() *education.Instructor {
	return &education.Instructor{
		BaseEntity:  education.BaseEntity{ID: r.ID, CreatedDate: r.CreatedDate},
		Name:        r.Name,
		Surname:     r.Surname,
		Email:       r.Email,
		Professions: r.Professions,
		PhoneNumber: r.PhoneNumber,
	}
}

var instructorTable = &table[education.Instructor]{
	aggregate: "instructor",
	name:      "instructors",
	columns:   []string{"name", "surname", "email", "professions", "phone_number"},
	values: func(e *education.Instructor) []any {
		return []any{e.Name, e.Surname, e.Email, e.Professions, e.PhoneNumber}
	},
	base: func(e *education.Instructor) *education.BaseEntity { return &e.BaseEntity },
}

var instructorSource = &source[education.Instructor]{
	aggregate: "instructor",
	columns:   "i.id, i.created_date, i.name, i.surname, i.email, i.professions, i.phone_number",
	from:      "instructors i",
	idColumn:  "i.id",
	orderBy:   "i.created_date, i.id",
	fields: map[string]string{
		"ID":          "i.id",
		"CreatedDate": "i.created_date",
		"Name":        "i.name",
		"Surname":     "i.surname",
		"Email":       "i.email",
		"Professions": "i.professions",
		"PhoneNumber": "i.phone_number",
	},
	scan: func(rows *sqlx.Rows) (*education.Instructor, error) {
		var row instructorRow
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		return row.entity(), nil
	},
	id: func(e *education.Instructor) string { return e.ID },
}

// instructorRepository implements education.InstructorRepository.
type instructorRepository struct {
	*repository[education.Instructor]
}

func newInstructorRepository(uow *unitOfWork) *instructorRepository {
	return &instructorRepository{repository: newRepository(uow, instructorTable, instructorSource)}
}
