package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStorage records uploads and deletes in memory and can be told to
// fail, standing in for the minio/oss providers.
type fakeStorage struct {
	objects    map[string][]byte
	deleted    []string
	failUpload bool
}

func (f *fakeStorage) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if f.failUpload {
		return "", errors.New("storage unavailable")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.objects[objectName] = data
	return f.GetURL(objectName), nil
}

func (f *fakeStorage) Delete(ctx context.Context, objectName string) error {
	delete(f.objects, objectName)
	f.deleted = append(f.deleted, objectName)
	return nil
}

func (f *fakeStorage) GetURL(objectName string) string {
	return "/fake/" + objectName
}

func assignmentFixture(t *testing.T, e *env, deadline *time.Time) (*model.User, *model.Assignment) {
	t.Helper()
	student := createUser(t, e.db, model.Student)
	instructor := createUser(t, e.db, model.Instructor)
	course, lessons := createCourse(t, e.db, instructor.ID, 2)
	enroll(t, e.db, student.ID, course.ID)

	assignment := &model.Assignment{
		LessonID: lessons[0].ID,
		Title:    "Essay",
		Deadline: deadline,
	}
	require.NoError(t, e.assignments.CreateAssignment(assignment))
	return student, assignment
}

func TestSubmitWithContentCompletesLesson(t *testing.T) {
	e := newEnv(t)
	student, assignment := assignmentFixture(t, e, nil)

	submission, progress, err := e.assignments.Submit(context.Background(), student.ID, assignment.ID,
		SubmissionInput{Content: "my essay text"})
	require.NoError(t, err)
	assert.Equal(t, "my essay text", submission.Content)
	assert.Equal(t, 50, progress)

	done, err := e.completions.IsCompleted(student.ID, assignment.LessonID)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestSubmitWithFileUploads(t *testing.T) {
	e := newEnv(t)
	student, assignment := assignmentFixture(t, e, nil)

	submission, _, err := e.assignments.Submit(context.Background(), student.ID, assignment.ID,
		SubmissionInput{
			File:        strings.NewReader("file body"),
			FileName:    "essay.pdf",
			FileSize:    9,
			ContentType: "application/pdf",
		})
	require.NoError(t, err)
	assert.NotEmpty(t, submission.StoredObject)
	assert.Contains(t, submission.SubmissionURL, "/fake/")
	assert.Contains(t, e.storage.objects, submission.StoredObject)
}

func TestSubmitEmptyRejected(t *testing.T) {
	e := newEnv(t)
	student, assignment := assignmentFixture(t, e, nil)

	_, _, err := e.assignments.Submit(context.Background(), student.ID, assignment.ID, SubmissionInput{})
	assert.ErrorIs(t, err, util.ErrEmptySubmission)
}

func TestSubmitAfterDeadlineRejected(t *testing.T) {
	e := newEnv(t)
	past := time.Now().Add(-time.Hour)
	student, assignment := assignmentFixture(t, e, &past)

	_, _, err := e.assignments.Submit(context.Background(), student.ID, assignment.ID,
		SubmissionInput{Content: "late"})
	assert.ErrorIs(t, err, util.ErrDeadlinePassed)
}

func TestSubmitNotEnrolledRejected(t *testing.T) {
	e := newEnv(t)
	_, assignment := assignmentFixture(t, e, nil)
	outsider := createUser(t, e.db, model.Student)

	_, _, err := e.assignments.Submit(context.Background(), outsider.ID, assignment.ID,
		SubmissionInput{Content: "hi"})
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
}

func TestSubmitUploadFailureAbortsEverything(t *testing.T) {
	e := newEnv(t)
	student, assignment := assignmentFixture(t, e, nil)
	e.storage.failUpload = true

	_, _, err := e.assignments.Submit(context.Background(), student.ID, assignment.ID,
		SubmissionInput{File: strings.NewReader("x"), FileName: "a.txt", FileSize: 1})
	require.Error(t, err)

	_, err = e.assignments.GetSubmission(student.ID, assignment.ID)
	assert.ErrorIs(t, err, util.ErrSubmissionNotFound)

	done, err := e.completions.IsCompleted(student.ID, assignment.LessonID)
	require.NoError(t, err)
	assert.False(t, done)
}

func TestResubmitResetsGradeAndReplacesFile(t *testing.T) {
	e := newEnv(t)
	student, assignment := assignmentFixture(t, e, nil)
	instructor := createUser(t, e.db, model.Instructor)

	first, _, err := e.assignments.Submit(context.Background(), student.ID, assignment.ID,
		SubmissionInput{File: strings.NewReader("v1"), FileName: "v1.txt", FileSize: 2})
	require.NoError(t, err)

	graded, err := e.assignments.GradeSubmission(instructor.ID, first.ID, 85, "good work")
	require.NoError(t, err)
	require.NotNil(t, graded.Grade)

	_, _, err = e.assignments.Submit(context.Background(), student.ID, assignment.ID,
		SubmissionInput{File: strings.NewReader("v2"), FileName: "v2.txt", FileSize: 2})
	require.NoError(t, err)

	current, err := e.assignments.GetSubmission(student.ID, assignment.ID)
	require.NoError(t, err)
	assert.Nil(t, current.Grade)
	assert.Empty(t, current.Feedback)
	assert.Nil(t, current.GradedAt)

	// The replaced file is removed from storage.
	assert.Contains(t, e.storage.deleted, first.StoredObject)
	assert.NotContains(t, e.storage.objects, first.StoredObject)
}

func TestDeleteSubmissionAfterDeadlineRejected(t *testing.T) {
	e := newEnv(t)
	future := time.Now().Add(time.Hour)
	student, assignment := assignmentFixture(t, e, &future)

	_, progress, err := e.assignments.Submit(context.Background(), student.ID, assignment.ID,
		SubmissionInput{Content: "on time"})
	require.NoError(t, err)
	assert.Equal(t, 50, progress)

	past := time.Now().Add(-time.Hour)
	require.NoError(t, e.db.Model(&model.Assignment{}).
		Where("id = ?", assignment.ID).Update("deadline", past).Error)

	_, err = e.assignments.DeleteSubmission(context.Background(), student.ID, assignment.ID)
	assert.ErrorIs(t, err, util.ErrDeadlinePassed)

	// The submission and the lesson completion both survive.
	_, err = e.assignments.GetSubmission(student.ID, assignment.ID)
	require.NoError(t, err)
	done, err := e.completions.IsCompleted(student.ID, assignment.LessonID)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestDeleteSubmissionRollsBackCompletion(t *testing.T) {
	e := newEnv(t)
	student, assignment := assignmentFixture(t, e, nil)

	submitted, progress, err := e.assignments.Submit(context.Background(), student.ID, assignment.ID,
		SubmissionInput{File: strings.NewReader("x"), FileName: "a.txt", FileSize: 1})
	require.NoError(t, err)
	assert.Equal(t, 50, progress)

	progress, err = e.assignments.DeleteSubmission(context.Background(), student.ID, assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, progress)

	_, err = e.assignments.GetSubmission(student.ID, assignment.ID)
	assert.ErrorIs(t, err, util.ErrSubmissionNotFound)
	assert.Contains(t, e.storage.deleted, submitted.StoredObject)

	done, err := e.completions.IsCompleted(student.ID, assignment.LessonID)
	require.NoError(t, err)
	assert.False(t, done)
}

func TestGradeSubmissionValidation(t *testing.T) {
	e := newEnv(t)
	student, assignment := assignmentFixture(t, e, nil)
	instructor := createUser(t, e.db, model.Instructor)

	submitted, _, err := e.assignments.Submit(context.Background(), student.ID, assignment.ID,
		SubmissionInput{Content: "work"})
	require.NoError(t, err)

	_, err = e.assignments.GradeSubmission(instructor.ID, submitted.ID, 101, "")
	assert.ErrorIs(t, err, util.ErrInvalidGrade)

	graded, err := e.assignments.GradeSubmission(instructor.ID, submitted.ID, 70, "solid")
	require.NoError(t, err)
	assert.Equal(t, 70, *graded.Grade)
	assert.Equal(t, instructor.ID, *graded.GradedBy)
	assert.NotNil(t, graded.GradedAt)
}
