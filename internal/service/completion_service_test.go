package service

import (
	"testing"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkLessonCompleteIdempotent(t *testing.T) {
	e := newEnv(t)
	student := createUser(t, e.db, model.Student)
	instructor := createUser(t, e.db, model.Instructor)
	course, lessons := createCourse(t, e.db, instructor.ID, 2)
	enroll(t, e.db, student.ID, course.ID)

	progress, err := e.completions.MarkLessonComplete(student.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 50, progress)

	var first model.LessonCompletion
	require.NoError(t, e.db.Where("user_id = ? AND lesson_id = ?", student.ID, lessons[0].ID).
		First(&first).Error)

	time.Sleep(10 * time.Millisecond)
	progress, err = e.completions.MarkLessonComplete(student.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 50, progress)

	var again model.LessonCompletion
	require.NoError(t, e.db.Where("user_id = ? AND lesson_id = ?", student.ID, lessons[0].ID).
		First(&again).Error)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, first.CompletedAt, again.CompletedAt)

	var count int64
	e.db.Model(&model.LessonCompletion{}).
		Where("user_id = ?", student.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestMarkLessonCompleteNotEnrolled(t *testing.T) {
	e := newEnv(t)
	student := createUser(t, e.db, model.Student)
	instructor := createUser(t, e.db, model.Instructor)
	_, lessons := createCourse(t, e.db, instructor.ID, 1)

	_, err := e.completions.MarkLessonComplete(student.ID, lessons[0].ID)
	assert.ErrorIs(t, err, util.ErrEnrollmentNotFound)
}

func TestUnmarkNeverCompletedLesson(t *testing.T) {
	e := newEnv(t)
	student := createUser(t, e.db, model.Student)
	instructor := createUser(t, e.db, model.Instructor)
	course, lessons := createCourse(t, e.db, instructor.ID, 1)
	enroll(t, e.db, student.ID, course.ID)

	progress, err := e.completions.UnmarkLessonComplete(student.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 0, progress)
}

func TestCompletionStatusAndListing(t *testing.T) {
	e := newEnv(t)
	student := createUser(t, e.db, model.Student)
	instructor := createUser(t, e.db, model.Instructor)
	course, lessons := createCourse(t, e.db, instructor.ID, 2)
	enroll(t, e.db, student.ID, course.ID)

	done, err := e.completions.IsCompleted(student.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.False(t, done)

	_, err = e.completions.MarkLessonComplete(student.ID, lessons[0].ID)
	require.NoError(t, err)

	done, err = e.completions.IsCompleted(student.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.True(t, done)

	completed, err := e.completions.GetCompletedLessonsByCourse(student.ID, course.ID)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, lessons[0].ID, completed[0].LessonID)
}
