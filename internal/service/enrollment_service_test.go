package service

import (
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollAndDuplicate(t *testing.T) {
	e := newEnv(t)
	student := createUser(t, e.db, model.Student)
	instructor := createUser(t, e.db, model.Instructor)
	course, _ := createCourse(t, e.db, instructor.ID, 2)

	enrollment, err := e.enrollments.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, enrollment.Progress)

	_, err = e.enrollments.Enroll(student.ID, course.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyEnrolled)
}

func TestEnrollUnknownCourse(t *testing.T) {
	e := newEnv(t)
	student := createUser(t, e.db, model.Student)

	_, err := e.enrollments.Enroll(student.ID, 9999)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestUnenroll(t *testing.T) {
	e := newEnv(t)
	student := createUser(t, e.db, model.Student)
	instructor := createUser(t, e.db, model.Instructor)
	course, _ := createCourse(t, e.db, instructor.ID, 1)
	enroll(t, e.db, student.ID, course.ID)

	require.NoError(t, e.enrollments.Unenroll(student.ID, course.ID))
	assert.ErrorIs(t, e.enrollments.Unenroll(student.ID, course.ID), util.ErrNotEnrolled)
}

func TestUpdateProgressRounding(t *testing.T) {
	e := newEnv(t)
	student := createUser(t, e.db, model.Student)
	instructor := createUser(t, e.db, model.Instructor)
	course, lessons := createCourse(t, e.db, instructor.ID, 3)
	enrollment := enroll(t, e.db, student.ID, course.ID)

	// 1 of 3 rounds to 33, 2 of 3 rounds to 67.
	_, err := e.completions.MarkLessonComplete(student.ID, lessons[0].ID)
	require.NoError(t, err)
	progress, err := e.enrollments.UpdateProgress(enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, 33, progress)

	_, err = e.completions.MarkLessonComplete(student.ID, lessons[1].ID)
	require.NoError(t, err)
	progress, err = e.enrollments.UpdateProgress(enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, 67, progress)
}

func TestUpdateProgressEmptyCourse(t *testing.T) {
	e := newEnv(t)
	student := createUser(t, e.db, model.Student)
	instructor := createUser(t, e.db, model.Instructor)
	course, _ := createCourse(t, e.db, instructor.ID, 0)
	enrollment := enroll(t, e.db, student.ID, course.ID)

	progress, err := e.enrollments.UpdateProgress(enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, progress)
}

func TestUpdateProgressMissingEnrollment(t *testing.T) {
	e := newEnv(t)
	_, err := e.enrollments.UpdateProgress(424242)
	assert.ErrorIs(t, err, util.ErrEnrollmentNotFound)
}

func TestCompletedAtSetOnceAndKept(t *testing.T) {
	e := newEnv(t)
	student := createUser(t, e.db, model.Student)
	instructor := createUser(t, e.db, model.Instructor)
	course, lessons := createCourse(t, e.db, instructor.ID, 2)
	enrollment := enroll(t, e.db, student.ID, course.ID)

	for _, lesson := range lessons {
		_, err := e.completions.MarkLessonComplete(student.ID, lesson.ID)
		require.NoError(t, err)
	}

	var stored model.Enrollment
	require.NoError(t, e.db.First(&stored, enrollment.ID).Error)
	assert.Equal(t, 100, stored.Progress)
	require.NotNil(t, stored.CompletedAt)
	firstCompletion := *stored.CompletedAt

	// Unmarking drops progress but the completion timestamp survives.
	progress, err := e.completions.UnmarkLessonComplete(student.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 50, progress)

	require.NoError(t, e.db.First(&stored, enrollment.ID).Error)
	assert.Equal(t, 50, stored.Progress)
	require.NotNil(t, stored.CompletedAt)
	assert.Equal(t, firstCompletion.Unix(), stored.CompletedAt.Unix())

	// Reaching 100 again keeps the original timestamp.
	_, err = e.completions.MarkLessonComplete(student.ID, lessons[0].ID)
	require.NoError(t, err)
	require.NoError(t, e.db.First(&stored, enrollment.ID).Error)
	assert.Equal(t, firstCompletion.Unix(), stored.CompletedAt.Unix())
}
