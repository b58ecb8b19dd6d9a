package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/course-hub/coursehub/internal/application/dto"
	"github.com/course-hub/coursehub/internal/application/result"
	"github.com/course-hub/coursehub/internal/domain/education"
)

// ══════════════════════════════════════════════════════════════════════════════
// COURSE CHECKS
// Структурные проверки курса. Они не встроены в Create и Update как
// обязательные, а доступны через Validate и для более строгих правил.
// ══════════════════════════════════════════════════════════════════════════════

const (
	courseNameMinLen = 2
	courseNameMaxLen = 50
)

// dateLayouts - допустимые форматы дат во входных строках.
var dateLayouts = []string{time.RFC3339, time.DateOnly}

// Validate проверяет черновик курса, ничего не сохраняя.
// Хранилище затрагивается только после успешных локальных проверок.
func (m *CourseManager) Validate(ctx context.Context, in *dto.ValidateCourseDTO) (result.Result, error) {
	if in == nil {
		return result.Fail(MsgNilInput), nil
	}

	if r := result.Run(
		checkCourseNameNotEmpty(in.CourseName),
		checkCourseNameLength(in.CourseName),
		checkDateFormat(in.StartDate),
		checkDateFormat(in.EndDate),
	); !r.Success {
		return r, nil
	}

	start, _ := parseDate(in.StartDate)
	end, _ := parseDate(in.EndDate)
	if r := checkCourseDates(start, end); !r.Success {
		return r, nil
	}

	uow := m.factory.New()
	defer uow.Close()

	if in.InstructorID != nil {
		instructor, err := uow.Instructors().GetByID(ctx, *in.InstructorID, false)
		if err != nil {
			return result.Result{}, m.fault("Validate", err)
		}
		if instructor == nil {
			return result.Fail(MsgCourseInstructorGone), nil
		}
		if r := checkInstructorNameNotEmpty(instructor.Name); !r.Success {
			return r, nil
		}
	}

	r, err := checkCourseNameUnique(ctx, uow, in.ID, in.CourseName)
	if err != nil {
		return result.Result{}, m.fault("Validate", err)
	}
	if !r.Success {
		return r, nil
	}

	return result.Ok(MsgCourseValid), nil
}

func checkCourseNameNotEmpty(name string) result.Result {
	if strings.TrimSpace(name) == "" {
		return result.Fail(MsgCourseNameEmpty)
	}
	return result.Ok("")
}

// checkCourseNameLength считает символы, а не байты.
func checkCourseNameLength(name string) result.Result {
	n := utf8.RuneCountInString(name)
	if n < courseNameMinLen || n > courseNameMaxLen {
		return result.Fail(MsgCourseNameLength)
	}
	return result.Ok("")
}

// checkCourseNameUnique ищет другой курс с тем же именем; курс с exceptID
// не учитывается.
func checkCourseNameUnique(ctx context.Context, uow education.UnitOfWork, exceptID, name string) (result.Result, error) {
	q := uow.Courses().GetAll(false).Where("CourseName", name)
	if !blank(exceptID) {
		q = q.WhereNot("ID", exceptID)
	}

	taken, err := q.Any(ctx)
	if err != nil {
		return result.Result{}, err
	}
	if taken {
		return result.Fail(MsgCourseNameTaken), nil
	}
	return result.Ok(""), nil
}

func checkCourseDates(start, end time.Time) result.Result {
	if !end.After(start) {
		return result.Fail(MsgCourseDatesOrder)
	}
	return result.Ok("")
}

func checkDateFormat(value string) result.Result {
	if _, ok := parseDate(value); !ok {
		return result.Fail(MsgInvalidDateFormat)
	}
	return result.Ok("")
}

func checkInstructorNameNotEmpty(name string) result.Result {
	if strings.TrimSpace(name) == "" {
		return result.Fail(MsgInstructorNameEmpty)
	}
	return result.Ok("")
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
