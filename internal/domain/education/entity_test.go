package education

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBaseEntity_StampKeepsExistingID(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	var b BaseEntity
	b.Stamp("first", now)
	b.Stamp("second", now.Add(time.Hour))

	assert.Equal(t, "first", b.ID)
	assert.Equal(t, now, b.CreatedDate)
	assert.True(t, b.HasID())
}

func TestCourse_HasValidDates(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, (&Course{StartDate: start, EndDate: start.AddDate(0, 5, 0)}).HasValidDates())
	assert.False(t, (&Course{StartDate: start, EndDate: start}).HasValidDates())
	assert.False(t, (&Course{StartDate: start, EndDate: start.AddDate(0, 0, -1)}).HasValidDates())
}

func TestRegistration_HasValidPrice(t *testing.T) {
	assert.True(t, (&Registration{Price: decimal.NewFromInt(100)}).HasValidPrice())
	assert.False(t, (&Registration{Price: decimal.Zero}).HasValidPrice())
	assert.False(t, (&Registration{Price: decimal.NewFromInt(-5)}).HasValidPrice())
}

func TestFitsMoneyScale(t *testing.T) {
	for _, v := range []string{"100", "149.9", "149.90", "149.900", "0.01"} {
		assert.True(t, FitsMoneyScale(decimal.RequireFromString(v)), v)
	}
	for _, v := range []string{"0.001", "100.005", "87.125"} {
		assert.False(t, FitsMoneyScale(decimal.RequireFromString(v)), v)
	}
}

func TestNavigationNames_EmptyWhenNotLoaded(t *testing.T) {
	assert.Equal(t, "", (&Course{}).InstructorName())
	assert.Equal(t, "", (&Lesson{}).CourseName())
	assert.Equal(t, "", (&Registration{}).CourseName())
	assert.Equal(t, "", (&Registration{}).StudentName())
	assert.Equal(t, "", (&Exam{}).StudentName())

	r := &Registration{
		Course:  &Course{CourseName: "Algorithms"},
		Student: &Student{Name: "Ada", Surname: "Lovelace"},
	}
	assert.Equal(t, "Algorithms", r.CourseName())
	assert.Equal(t, "Ada Lovelace", r.StudentName())
}

func TestExam_AverageGrade(t *testing.T) {
	e := &Exam{}
	assert.Nil(t, e.AverageGrade())

	e.ExamResults = []ExamResult{
		{Grade: decimal.NewFromInt(80)},
		{Grade: decimal.NewFromInt(91)},
	}
	avg := e.AverageGrade()
	if assert.NotNil(t, avg) {
		assert.True(t, decimal.RequireFromString("85.5").Equal(*avg))
	}
}
