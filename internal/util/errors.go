package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrCategoryExists      = errors.New("category with this name already exists")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCourseNotFound      = errors.New("course not found")
	ErrModuleNotFound      = errors.New("module not found")
	ErrLessonNotFound      = errors.New("lesson not found")
	ErrQuizNotFound        = errors.New("quiz not found")
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrSubmissionNotFound  = errors.New("no submission found")
	ErrEnrollmentNotFound  = errors.New("enrollment not found")
	ErrAlreadyEnrolled     = errors.New("already enrolled in this course")
	ErrNotEnrolled         = errors.New("not enrolled in this course")
	ErrMaxAttemptsExceeded = errors.New("maximum attempts exceeded for this quiz")
	ErrForeignQuestion     = errors.New("answer references a question that does not belong to this quiz")
	ErrNoAttempts          = errors.New("no quiz attempts found")
	ErrDeadlinePassed      = errors.New("assignment deadline has passed")
	ErrEmptySubmission     = errors.New("at least one of file upload, submission URL, or content must be provided")
	ErrInvalidGrade        = errors.New("grade must be between 0 and 100")
	ErrReportNotFound      = errors.New("report not found")
)
