package sqldb

import (
	"database/sql"
	"time"

	"github.com/course-hub/coursehub/internal/domain/education"

	"github.com/jmoiron/sqlx"
)

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

type studentRow struct {
	ID          string    `db:"id"`
	CreatedDate time.Time `db:"created_date"`
	Name        string    `db:"name"`
	Surname     string    `db:"surname"`
	BirthDate   time.Time `db:"birth_date"`
	TC          string    `db:"tc"`
}

func (r studentRow) entity() *education.Student {
	return &education.Student{
		BaseEntity: education.BaseEntity{ID: r.ID, CreatedDate: r.CreatedDate},
		Name:       r.Name,
		Surname:    r.Surname,
		BirthDate:  r.BirthDate,
		TC:         r.TC,
	}
}

// joinedStudent holds student columns reached through a LEFT JOIN.
type joinedStudent struct {
	CreatedDate sql.NullTime   `db:"student_created_date"`
	Name        sql.NullString `db:"student_name"`
	Surname     sql.NullString `db:"student_surname"`
	BirthDate   sql.NullTime   `db:"student_birth_date"`
	TC          sql.NullString `db:"student_tc"`
}

const joinedStudentColumns = "s.created_date AS student_created_date, s.name AS student_name, " +
	"s.surname AS student_surname, s.birth_date AS student_birth_date, s.tc AS student_tc"

// entity returns nil when the join found no student.
func (j joinedStudent) entity(id *string) *education.Student {
	if id == nil || !j.CreatedDate.Valid {
		return nil
	}
	return &education.Student{
		BaseEntity: education.BaseEntity{ID: *id, CreatedDate: j.CreatedDate.Time},
		Name:       j.Name.String,
		Surname:    j.Surname.String,
		BirthDate:  j.BirthDate.Time,
		TC:         j.TC.String,
	}
}

var studentTable = &table[education.Student]{
	aggregate: "student",
	name:      "students",
	columns:   []string{"name", "surname", "birth_date", "tc"},
	values: func(e *education.Student) []any {
		return []any{e.Name, e.Surname, e.BirthDate, e.TC}
	},
	base: func(e *education.Student) *education.BaseEntity { return &e.BaseEntity },
}

var studentSource = &source[education.Student]{
	aggregate: "student",
	columns:   "s.id, s.created_date, s.name, s.surname, s.birth_date, s.tc",
	from:      "students s",
	idColumn:  "s.id",
	orderBy:   "s.created_date, s.id",
	fields: map[string]string{
		"ID":          "s.id",
		"CreatedDate": "s.created_date",
		"Name":        "s.name",
		"Surname":     "s.surname",
		"BirthDate":   "s.birth_date",
		"TC":          "s.tc",
	},
	scan: func(rows *sqlx.Rows) (*education.Student, error) {
		var row studentRow
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		return row.entity(), nil
	},
	id: func(e *education.Student) string { return e.ID },
}

// studentRepository implements education.StudentRepository.
type studentRepository struct {
	*repository[education.Student]
}

func newStudentRepository(uow *unitOfWork) *studentRepository {
	return &studentRepository{repository: newRepository(uow, studentTable, studentSource)}
}
