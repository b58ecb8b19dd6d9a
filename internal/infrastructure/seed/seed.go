// Package seed loads YAML fixtures into the database through a single unit
// of work, so a fixture file is applied completely or not at all.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/course-hub/coursehub/internal/domain/education"
	"github.com/course-hub/coursehub/internal/domain/shared"
	"github.com/course-hub/coursehub/pkg/logger"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed sample.yaml
var sample []byte

// ══════════════════════════════════════════════════════════════════════════════
// FIXTURE FORMAT
// ══════════════════════════════════════════════════════════════════════════════

// Fixtures is the root of a fixture file. Entities reference each other by
// key; keys exist only in the file and never reach the database.
type Fixtures struct {
	Instructors   []Instructor   `yaml:"instructors"`
	Courses       []Course       `yaml:"courses"`
	Students      []Student      `yaml:"students"`
	Lessons       []Lesson       `yaml:"lessons"`
	Exams         []Exam         `yaml:"exams"`
	Registrations []Registration `yaml:"registrations"`
}

type Instructor struct {
	Key         string `yaml:"key"`
	Name        string `yaml:"name"`
	Surname     string `yaml:"surname"`
	Email       string `yaml:"email"`
	Professions string `yaml:"professions"`
	PhoneNumber string `yaml:"phone_number"`
}

type Course struct {
	Key        string `yaml:"key"`
	CourseName string `yaml:"course_name"`
	StartDate  string `yaml:"start_date"`
	EndDate    string `yaml:"end_date"`
	IsActive   bool   `yaml:"is_active"`
	Instructor string `yaml:"instructor"`
}

type Student struct {
	Key       string `yaml:"key"`
	Name      string `yaml:"name"`
	Surname   string `yaml:"surname"`
	BirthDate string `yaml:"birth_date"`
	TC        string `yaml:"tc"`
}

type Lesson struct {
	Name     string `yaml:"name"`
	Date     string `yaml:"date"`
	Time     string `yaml:"time"`
	Duration int    `yaml:"duration"`
	Content  string `yaml:"content"`
	Course   string `yaml:"course"`
}

type Exam struct {
	Name    string   `yaml:"name"`
	Date    string   `yaml:"date"`
	Student string   `yaml:"student"`
	Grades  []string `yaml:"grades"`
}

type Registration struct {
	Student          string `yaml:"student"`
	Course           string `yaml:"course"`
	RegistrationDate string `yaml:"registration_date"`
	Price            string `yaml:"price"`
}

// Parse decodes fixtures. Unknown fields are rejected.
func Parse(r io.Reader) (*Fixtures, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var fx Fixtures
	if err := dec.Decode(&fx); err != nil {
		if errors.Is(err, io.EOF) {
			return &fx, nil
		}
		return nil, fmt.Errorf("seed: failed to decode fixtures: %w", err)
	}
	return &fx, nil
}

// LoadFile parses the fixture file at path.
func LoadFile(path string) (*Fixtures, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("seed: failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Sample returns the built-in sample fixtures.
func Sample() *Fixtures {
	fx, err := Parse(bytes.NewReader(sample))
	if err != nil {
		panic(err)
	}
	return fx
}

// ══════════════════════════════════════════════════════════════════════════════
// SEEDER
// ══════════════════════════════════════════════════════════════════════════════

// Summary reports what a seeding run staged and how many rows it wrote.
type Summary struct {
	Instructors   int
	Courses       int
	Students      int
	Lessons       int
	Exams         int
	ExamResults   int
	Registrations int
	Rows          int
}

// Seeder applies fixtures.
type Seeder struct {
	factory education.UnitOfWorkFactory
	log     *logger.Logger
}

// NewSeeder creates a seeder over factory.
func NewSeeder(factory education.UnitOfWorkFactory, log *logger.Logger) *Seeder {
	if log == nil {
		log = logger.Nop()
	}
	return &Seeder{factory: factory, log: log.With(logger.Component("seed"))}
}

// Apply stages every fixture and commits once. Invalid fixtures and unknown
// keys are reported before anything reaches the database.
func (s *Seeder) Apply(ctx context.Context, fx *Fixtures) (Summary, error) {
	var sum Summary
	if fx == nil {
		return sum, shared.NewDomainError("seed", "Apply", shared.ErrInvalidInput, "fixtures are nil")
	}

	uow := s.factory.New()
	defer uow.Close()

	st := &stager{uow: uow, instructors: map[string]string{}, courses: map[string]string{}, students: map[string]string{}}
	if err := st.stageAll(fx, &sum); err != nil {
		return Summary{}, err
	}

	rows, err := uow.Commit(ctx)
	if err != nil {
		return Summary{}, err
	}
	sum.Rows = rows

	s.log.Info("fixtures applied",
		logger.Int("instructors", sum.Instructors),
		logger.Int("courses", sum.Courses),
		logger.Int("students", sum.Students),
		logger.Int("lessons", sum.Lessons),
		logger.Int("exams", sum.Exams),
		logger.Int("registrations", sum.Registrations),
		logger.RowsAffected(rows),
	)
	return sum, nil
}

// stager resolves fixture keys into the IDs assigned while staging.
type stager struct {
	uow         education.UnitOfWork
	instructors map[string]string
	courses     map[string]string
	students    map[string]string
}

func (st *stager) stageAll(fx *Fixtures, sum *Summary) error {
	for i, in := range fx.Instructors {
		e := &education.Instructor{Name: in.Name, Surname: in.Surname, Email: in.Email, Professions: in.Professions, PhoneNumber: in.PhoneNumber}
		if err := st.uow.Instructors().Create(e); err != nil {
			return err
		}
		if err := remember(st.instructors, in.Key, e.ID, "instructors", i); err != nil {
			return err
		}
		sum.Instructors++
	}

	for i, in := range fx.Courses {
		start, err := parseDate(in.StartDate, "courses", i, "start_date")
		if err != nil {
			return err
		}
		end, err := parseDate(in.EndDate, "courses", i, "end_date")
		if err != nil {
			return err
		}
		instructorID, err := optionalRef(st.instructors, in.Instructor, "courses", i, "instructor")
		if err != nil {
			return err
		}

		e := &education.Course{CourseName: in.CourseName, StartDate: start, EndDate: end, IsActive: in.IsActive, InstructorID: instructorID}
		if !e.HasValidDates() {
			return invalid("courses", i, "end_date must be after start_date")
		}
		if err := st.uow.Courses().Create(e); err != nil {
			return err
		}
		if err := remember(st.courses, in.Key, e.ID, "courses", i); err != nil {
			return err
		}
		sum.Courses++
	}

	for i, in := range fx.Students {
		birth, err := parseDate(in.BirthDate, "students", i, "birth_date")
		if err != nil {
			return err
		}
		e := &education.Student{Name: in.Name, Surname: in.Surname, BirthDate: birth, TC: in.TC}
		if err := st.uow.Students().Create(e); err != nil {
			return err
		}
		if err := remember(st.students, in.Key, e.ID, "students", i); err != nil {
			return err
		}
		sum.Students++
	}

	for i, in := range fx.Lessons {
		date, err := parseDate(in.Date, "lessons", i, "date")
		if err != nil {
			return err
		}
		courseID, err := optionalRef(st.courses, in.Course, "lessons", i, "course")
		if err != nil {
			return err
		}
		if in.Duration < 0 {
			return invalid("lessons", i, "duration cannot be negative")
		}
		e := &education.Lesson{Name: in.Name, Date: date, Time: in.Time, Duration: in.Duration, Content: in.Content, CourseID: courseID}
		if err := st.uow.Lessons().Create(e); err != nil {
			return err
		}
		sum.Lessons++
	}

	for i, in := range fx.Exams {
		date, err := parseDate(in.Date, "exams", i, "date")
		if err != nil {
			return err
		}
		studentID, err := optionalRef(st.students, in.Student, "exams", i, "student")
		if err != nil {
			return err
		}
		e := &education.Exam{Name: in.Name, Date: date, StudentID: studentID}
		if err := st.uow.Exams().Create(e); err != nil {
			return err
		}
		sum.Exams++

		for _, g := range in.Grades {
			grade, err := decimal.NewFromString(g)
			if err != nil || grade.IsNegative() || !education.FitsMoneyScale(grade) {
				return invalid("exams", i, fmt.Sprintf("invalid grade %q", g))
			}
			if err := st.uow.Exams().AddResult(&education.ExamResult{ExamID: e.ID, Grade: grade}); err != nil {
				return err
			}
			sum.ExamResults++
		}
	}

	for i, in := range fx.Registrations {
		date, err := parseDate(in.RegistrationDate, "registrations", i, "registration_date")
		if err != nil {
			return err
		}
		studentID, err := requiredRef(st.students, in.Student, "registrations", i, "student")
		if err != nil {
			return err
		}
		courseID, err := requiredRef(st.courses, in.Course, "registrations", i, "course")
		if err != nil {
			return err
		}
		price, err := decimal.NewFromString(in.Price)
		if err != nil {
			return invalid("registrations", i, fmt.Sprintf("invalid price %q", in.Price))
		}

		e := &education.Registration{StudentID: studentID, CourseID: courseID, RegistrationDate: date, Price: price}
		if !e.HasValidPrice() {
			return invalid("registrations", i, "price must be greater than zero")
		}
		if !education.FitsMoneyScale(price) {
			return invalid("registrations", i, "price cannot have more than two decimal places")
		}
		if err := st.uow.Registrations().Create(e); err != nil {
			return err
		}
		sum.Registrations++
	}

	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func invalid(section string, index int, msg string) error {
	return shared.NewDomainError("seed", "Apply", shared.ErrValidation, fmt.Sprintf("%s[%d]: %s", section, index, msg))
}

func remember(keys map[string]string, key, id, section string, index int) error {
	if key == "" {
		return nil
	}
	if _, dup := keys[key]; dup {
		return invalid(section, index, fmt.Sprintf("duplicate key %q", key))
	}
	keys[key] = id
	return nil
}

func optionalRef(keys map[string]string, key, section string, index int, field string) (*string, error) {
	if key == "" {
		return nil, nil
	}
	id, ok := keys[key]
	if !ok {
		return nil, invalid(section, index, fmt.Sprintf("%s %q is not defined", field, key))
	}
	return &id, nil
}

func requiredRef(keys map[string]string, key, section string, index int, field string) (string, error) {
	if key == "" {
		return "", invalid(section, index, field+" is required")
	}
	id, err := optionalRef(keys, key, section, index, field)
	if err != nil {
		return "", err
	}
	return *id, nil
}

// parseDate accepts RFC 3339 timestamps and plain dates; a blank value is
// the zero time.
func parseDate(value, section string, index int, field string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, invalid(section, index, fmt.Sprintf("%s %q is not a date", field, value))
}
