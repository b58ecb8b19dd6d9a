package sqldb

import (
	"database/sql"
	"time"

	"github.com/course-hub/coursehub/internal/domain/education"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// ══════════════════════════════════════════════════════════════════════════════
// EXAM REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

type examRow struct {
	ID          string         `db:"id"`
	CreatedDate time.Time      `db:"created_date"`
	Name        string         `db:"name"`
	Date        time.Time      `db:"exam_date"`
	StudentID   sql.NullString `db:"student_id"`
}

func (r examRow) entity() *education.Exam {
	return &education.Exam{
		BaseEntity: education.BaseEntity{ID: r.ID, CreatedDate: r.CreatedDate},
		Name:       r.Name,
		Date:       r.Date,
		StudentID:  ref(r.StudentID.Valid, r.StudentID.String),
	}
}

// examDetailRow is one exam joined with its student and at most one grade.
// An exam with several grades spans several rows.
type examDetailRow struct {
	examRow
	joinedStudent
	ResultID          sql.NullString      `db:"result_id"`
	ResultCreatedDate sql.NullTime        `db:"result_created_date"`
	ResultGrade       decimal.NullDecimal `db:"result_grade"`
}

var examTable = &table[education.Exam]{
	aggregate: "exam",
	name:      "exams",
	columns:   []string{"name", "exam_date", "student_id"},
	values: func(e *education.Exam) []any {
		return []any{e.Name, e.Date, optional(e.StudentID)}
	},
	base: func(e *education.Exam) *education.BaseEntity { return &e.BaseEntity },
	keepRelations: func(into, prev *education.Exam) {
		if sameRef(into.StudentID, prev.StudentID) {
			into.Student = prev.Student
		}
		into.ExamResults = prev.ExamResults
	},
}

var examResultTable = &table[education.ExamResult]{
	aggregate: "exam_result",
	name:      "exam_results",
	columns:   []string{"exam_id", "grade"},
	values: func(e *education.ExamResult) []any {
		return []any{e.ExamID, e.Grade.String()}
	},
	base: func(e *education.ExamResult) *education.BaseEntity { return &e.BaseEntity },
}

const examColumns = "e.id, e.created_date, e.name, e.exam_date, e.student_id"

var examFields = map[string]string{
	"ID":          "e.id",
	"CreatedDate": "e.created_date",
	"Name":        "e.name",
	"Date":        "e.exam_date",
	"StudentID":   "e.student_id",
}

var examSource = &source[education.Exam]{
	aggregate: "exam",
	columns:   examColumns,
	from:      "exams e",
	idColumn:  "e.id",
	orderBy:   "e.created_date, e.id",
	fields:    examFields,
	scan: func(rows *sqlx.Rows) (*education.Exam, error) {
		var row examRow
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		return row.entity(), nil
	},
	id: func(e *education.Exam) string { return e.ID },
}

var examDetailSource = &source[education.Exam]{
	aggregate: "exam",
	columns: examColumns + ", " + joinedStudentColumns +
		", x.id AS result_id, x.created_date AS result_created_date, x.grade AS result_grade",
	from: "exams e " +
		"LEFT JOIN students s ON s.id = e.student_id " +
		"LEFT JOIN exam_results x ON x.exam_id = e.id",
	idColumn: "e.id",
	orderBy:  "e.created_date, e.id, x.created_date, x.id",
	fields:   examFields,
	scan: func(rows *sqlx.Rows) (*education.Exam, error) {
		var row examDetailRow
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		exam := row.examRow.entity()
		exam.Student = row.joinedStudent.entity(exam.StudentID)
		if row.ResultID.Valid {
			exam.ExamResults = []education.ExamResult{{
				BaseEntity: education.BaseEntity{ID: row.ResultID.String, CreatedDate: row.ResultCreatedDate.Time},
				ExamID:     exam.ID,
				Grade:      row.ResultGrade.Decimal,
			}}
		}
		return exam, nil
	},
	id: func(e *education.Exam) string { return e.ID },
	merge: func(into, row *education.Exam) {
		into.ExamResults = append(into.ExamResults, row.ExamResults...)
	},
}

// examRepository implements education.ExamRepository.
type examRepository struct {
	*repository[education.Exam]
}

func newExamRepository(uow *unitOfWork) *examRepository {
	return &examRepository{repository: newRepository(uow, examTable, examSource)}
}

// GetAllExamDetail returns exams with their student and every grade, read in
// a single statement.
func (r *examRepository) GetAllExamDetail(trackChanges bool) education.Query[education.Exam] {
	return r.query(examDetailSource, trackChanges)
}

// AddResult stages a grade for an exam.
func (r *examRepository) AddResult(result *education.ExamResult) error {
	return stageInsert(r.uow, examResultTable, result)
}
