package service

// ══════════════════════════════════════════════════════════════════════════════
// MESSAGES
// Тексты результатов, которые видит вызывающая сторона.
// ══════════════════════════════════════════════════════════════════════════════

const (
	MsgInvalidID    = "invalid id"
	MsgNilInput     = "input is required"
	MsgInvalidPrice = "price must be greater than zero"
	MsgInvalidGrade = "grade cannot be negative"
	MsgPriceScale   = "price cannot have more than two decimal places"
	MsgGradeScale   = "grade cannot have more than two decimal places"
)

// Course
const (
	MsgCourseListSuccess    = "courses listed"
	MsgCourseListEmpty      = "course list is empty"
	MsgCourseDetailSuccess  = "course details listed"
	MsgCourseDetailEmpty    = "course details are empty"
	MsgCourseGetSuccess     = "course found"
	MsgCourseNotFound       = "course not found"
	MsgCourseCreateSuccess  = "course created"
	MsgCourseCreateFailed   = "course could not be created"
	MsgCourseUpdateSuccess  = "course updated"
	MsgCourseUpdateFailed   = "course could not be updated"
	MsgCourseDeleteSuccess  = "course deleted"
	MsgCourseDeleteFailed   = "course could not be deleted"
	MsgCourseValid          = "course is valid"
	MsgCourseNameEmpty      = "course name cannot be empty"
	MsgCourseNameLength     = "course name must be between 2 and 50 characters"
	MsgCourseNameTaken      = "a course with this name already exists"
	MsgCourseDatesOrder     = "end date must be after start date"
	MsgInvalidDateFormat    = "invalid date format"
	MsgInstructorNameEmpty  = "instructor name cannot be empty"
	MsgCourseInstructorGone = "instructor not found"
)

// Instructor
const (
	MsgInstructorListSuccess   = "instructors listed"
	MsgInstructorListEmpty     = "instructor list is empty"
	MsgInstructorGetSuccess    = "instructor found"
	MsgInstructorNotFound      = "instructor not found"
	MsgInstructorCreateSuccess = "instructor created"
	MsgInstructorCreateFailed  = "instructor could not be created"
	MsgInstructorUpdateSuccess = "instructor updated"
	MsgInstructorUpdateFailed  = "instructor could not be updated"
	MsgInstructorDeleteSuccess = "instructor deleted"
	MsgInstructorDeleteFailed  = "instructor could not be deleted"
)

// Lesson
const (
	MsgLessonListSuccess   = "lessons listed"
	MsgLessonListEmpty     = "lesson list is empty"
	MsgLessonDetailSuccess = "lesson details listed"
	MsgLessonDetailEmpty   = "lesson details are empty"
	MsgLessonGetSuccess    = "lesson found"
	MsgLessonNotFound      = "lesson not found"
	MsgLessonCreateSuccess = "lesson created"
	MsgLessonCreateFailed  = "lesson could not be created"
	MsgLessonUpdateSuccess = "lesson updated"
	MsgLessonUpdateFailed  = "lesson could not be updated"
	MsgLessonDeleteSuccess = "lesson deleted"
	MsgLessonDeleteFailed  = "lesson could not be deleted"
)

// Exam
const (
	MsgExamListSuccess   = "exams listed"
	MsgExamListEmpty     = "exam list is empty"
	MsgExamDetailSuccess = "exam details listed"
	MsgExamDetailEmpty   = "exam details are empty"
	MsgExamGetSuccess    = "exam found"
	MsgExamNotFound      = "exam not found"
	MsgExamCreateSuccess = "exam created"
	MsgExamCreateFailed  = "exam could not be created"
	MsgExamUpdateSuccess = "exam updated"
	MsgExamUpdateFailed  = "exam could not be updated"
	MsgExamDeleteSuccess = "exam deleted"
	MsgExamDeleteFailed  = "exam could not be deleted"
	MsgExamResultSuccess = "exam result recorded"
	MsgExamResultFailed  = "exam result could not be recorded"
)

// Student
const (
	MsgStudentListSuccess   = "students listed"
	MsgStudentListEmpty     = "student list is empty"
	MsgStudentGetSuccess    = "student found"
	MsgStudentNotFound      = "student not found"
	MsgStudentCreateSuccess = "student created"
	MsgStudentCreateFailed  = "student could not be created"
	MsgStudentUpdateSuccess = "student updated"
	MsgStudentUpdateFailed  = "student could not be updated"
	MsgStudentDeleteSuccess = "student deleted"
	MsgStudentDeleteFailed  = "student could not be deleted"
)

// Registration
const (
	MsgRegistrationListSuccess   = "registrations listed"
	MsgRegistrationListEmpty     = "registration list is empty"
	MsgRegistrationDetailSuccess = "registration details listed"
	MsgRegistrationDetailEmpty   = "registration details are empty"
	MsgRegistrationGetSuccess    = "registration found"
	MsgRegistrationNotFound      = "registration not found"
	MsgRegistrationCreateSuccess = "registration created"
	MsgRegistrationCreateFailed  = "registration could not be created"
	MsgRegistrationUpdateSuccess = "registration updated"
	MsgRegistrationUpdateFailed  = "registration could not be updated"
	MsgRegistrationDeleteSuccess = "registration deleted"
	MsgRegistrationDeleteFailed  = "registration could not be deleted"
)
