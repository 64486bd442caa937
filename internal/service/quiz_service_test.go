package service

import (
	"testing"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quizFixture(t *testing.T, e *env, maxAttempts *int) (*model.User, *model.Enrollment, *model.Quiz) {
	t.Helper()
	student := createUser(t, e.db, model.Student)
	instructor := createUser(t, e.db, model.Instructor)
	course, lessons := createCourse(t, e.db, instructor.ID, 2)
	enrollment := enroll(t, e.db, student.ID, course.ID)
	quiz := createQuiz(t, e.db, e.quizzes, lessons[0].ID, maxAttempts)
	return student, enrollment, quiz
}

func TestSubmitQuizAllCorrect(t *testing.T) {
	e := newEnv(t)
	student, _, quiz := quizFixture(t, e, nil)

	submission, err := e.quizzes.SubmitQuiz(student.ID, quiz.ID, correctAnswers(quiz), nil)
	require.NoError(t, err)

	assert.Equal(t, 100, submission.Score)
	assert.True(t, submission.Passed)
	assert.Equal(t, 1, submission.AttemptNumber)
	assert.False(t, submission.IsRetake)
	assert.Equal(t, 4, submission.CorrectAnswers)
	assert.Equal(t, 4, submission.TotalPoints)

	// Attempting the quiz completes its lesson: 1 of 2 lessons done.
	assert.Equal(t, 50, submission.CourseProgress)

	var answers int64
	e.db.Model(&model.QuizAnswer{}).Where("result_id = ?", submission.ResultID).Count(&answers)
	assert.EqualValues(t, 4, answers)
}

func TestSubmitQuizPartialScore(t *testing.T) {
	e := newEnv(t)
	student, _, quiz := quizFixture(t, e, nil)

	// Only the first question answered correctly: 1 of 4 points is 25.
	correctID := quiz.Questions[0].Options[0].ID
	answers := []AnswerInput{{QuestionID: quiz.Questions[0].ID, OptionID: &correctID}}

	submission, err := e.quizzes.SubmitQuiz(student.ID, quiz.ID, answers, nil)
	require.NoError(t, err)
	assert.Equal(t, 25, submission.Score)
	assert.False(t, submission.Passed)
	assert.Equal(t, 1, submission.CorrectAnswers)
}

func TestSubmitQuizFailedAttemptStillCompletesLesson(t *testing.T) {
	e := newEnv(t)
	student, _, quiz := quizFixture(t, e, nil)

	submission, err := e.quizzes.SubmitQuiz(student.ID, quiz.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, submission.Score)
	assert.False(t, submission.Passed)
	assert.Equal(t, 50, submission.CourseProgress)

	done, err := e.completions.IsCompleted(student.ID, quiz.LessonID)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestSubmitQuizForeignQuestionRejected(t *testing.T) {
	e := newEnv(t)
	student, _, quiz := quizFixture(t, e, nil)

	answers := correctAnswers(quiz)
	answers = append(answers, AnswerInput{QuestionID: 999999})

	_, err := e.quizzes.SubmitQuiz(student.ID, quiz.ID, answers, nil)
	assert.ErrorIs(t, err, util.ErrForeignQuestion)

	// The whole submission is rejected before anything is written.
	var results int64
	e.db.Model(&model.QuizResult{}).Where("user_id = ?", student.ID).Count(&results)
	assert.EqualValues(t, 0, results)
}

func TestSubmitQuizNotEnrolled(t *testing.T) {
	e := newEnv(t)
	_, _, quiz := quizFixture(t, e, nil)
	outsider := createUser(t, e.db, model.Student)

	_, err := e.quizzes.SubmitQuiz(outsider.ID, quiz.ID, correctAnswers(quiz), nil)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
}

func TestSubmitQuizUnknownQuiz(t *testing.T) {
	e := newEnv(t)
	student := createUser(t, e.db, model.Student)

	_, err := e.quizzes.SubmitQuiz(student.ID, 31337, nil, nil)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestAttemptNumbering(t *testing.T) {
	e := newEnv(t)
	student, _, quiz := quizFixture(t, e, nil)

	first, err := e.quizzes.SubmitQuiz(student.ID, quiz.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, first.AttemptNumber)
	assert.False(t, first.IsRetake)

	second, err := e.quizzes.SubmitQuiz(student.ID, quiz.ID, correctAnswers(quiz), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, second.AttemptNumber)
	assert.True(t, second.IsRetake)

	var results int64
	e.db.Model(&model.QuizResult{}).
		Where("user_id = ? AND quiz_id = ?", student.ID, quiz.ID).Count(&results)
	assert.EqualValues(t, 2, results)
}

func TestMaxAttemptsExhausted(t *testing.T) {
	e := newEnv(t)
	two := 2
	student, _, quiz := quizFixture(t, e, &two)

	for i := 0; i < 2; i++ {
		_, err := e.quizzes.SubmitQuiz(student.ID, quiz.ID, nil, nil)
		require.NoError(t, err)
	}

	_, err := e.quizzes.SubmitQuiz(student.ID, quiz.ID, nil, nil)
	assert.ErrorIs(t, err, util.ErrMaxAttemptsExceeded)
}

func TestSingleAttemptQuizOverwritesInPlace(t *testing.T) {
	e := newEnv(t)
	one := 1
	student, _, quiz := quizFixture(t, e, &one)

	started := time.Now().Add(-5 * time.Minute)
	first, err := e.quizzes.SubmitQuiz(student.ID, quiz.ID, nil, &started)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Score)

	retake, err := e.quizzes.SubmitQuiz(student.ID, quiz.ID, correctAnswers(quiz), nil)
	require.NoError(t, err)
	assert.Equal(t, 100, retake.Score)
	assert.True(t, retake.IsRetake)
	assert.Equal(t, 1, retake.AttemptNumber)
	assert.Equal(t, first.ResultID, retake.ResultID)

	var results int64
	e.db.Model(&model.QuizResult{}).
		Where("user_id = ? AND quiz_id = ?", student.ID, quiz.ID).Count(&results)
	assert.EqualValues(t, 1, results)

	// The original start time survives the overwrite.
	var stored model.QuizResult
	require.NoError(t, e.db.First(&stored, retake.ResultID).Error)
	require.NotNil(t, stored.StartedAt)
	assert.Equal(t, started.Unix(), stored.StartedAt.Unix())
	assert.Equal(t, 100, stored.Score)

	// Old answers are replaced, not accumulated.
	var answers int64
	e.db.Model(&model.QuizAnswer{}).Where("result_id = ?", stored.ID).Count(&answers)
	assert.EqualValues(t, 4, answers)
}

func TestSingleAttemptRetakeDefaultsStartTime(t *testing.T) {
	e := newEnv(t)
	one := 1
	student, _, quiz := quizFixture(t, e, &one)

	_, err := e.quizzes.SubmitQuiz(student.ID, quiz.ID, nil, nil)
	require.NoError(t, err)

	before := time.Now()
	retake, err := e.quizzes.SubmitQuiz(student.ID, quiz.ID, nil, nil)
	require.NoError(t, err)

	// With no start time on record or in the request, the retake stamps one
	// so elapsed time stays computable.
	var stored model.QuizResult
	require.NoError(t, e.db.First(&stored, retake.ResultID).Error)
	require.NotNil(t, stored.StartedAt)
	assert.False(t, stored.StartedAt.Before(before.Add(-time.Second)))
	assert.False(t, stored.StartedAt.After(time.Now().Add(time.Second)))
}

func TestEmptyQuizScoresZero(t *testing.T) {
	e := newEnv(t)
	student := createUser(t, e.db, model.Student)
	instructor := createUser(t, e.db, model.Instructor)
	course, lessons := createCourse(t, e.db, instructor.ID, 1)
	enroll(t, e.db, student.ID, course.ID)

	quiz := &model.Quiz{LessonID: lessons[0].ID, Title: "Empty", Questions: []model.QuizQuestion{}}
	require.NoError(t, e.db.Create(quiz).Error)

	submission, err := e.quizzes.SubmitQuiz(student.ID, quiz.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, submission.Score)
	assert.False(t, submission.Passed)
}

func TestGetAttemptInfo(t *testing.T) {
	e := newEnv(t)
	two := 2
	student, _, quiz := quizFixture(t, e, &two)

	info, err := e.quizzes.GetAttemptInfo(student.ID, quiz.ID)
	require.NoError(t, err)
	assert.True(t, info.CanAttempt)
	require.NotNil(t, info.RemainingAttempts)
	assert.EqualValues(t, 2, *info.RemainingAttempts)

	_, err = e.quizzes.SubmitQuiz(student.ID, quiz.ID, nil, nil)
	require.NoError(t, err)

	info, err = e.quizzes.GetAttemptInfo(student.ID, quiz.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, *info.RemainingAttempts)
	assert.True(t, info.CanAttempt)
}

func TestGetAttemptInfoSingleAttemptAlwaysRetakable(t *testing.T) {
	e := newEnv(t)
	one := 1
	student, _, quiz := quizFixture(t, e, &one)

	_, err := e.quizzes.SubmitQuiz(student.ID, quiz.ID, nil, nil)
	require.NoError(t, err)

	info, err := e.quizzes.GetAttemptInfo(student.ID, quiz.ID)
	require.NoError(t, err)
	assert.True(t, info.CanAttempt)
	assert.Nil(t, info.RemainingAttempts)
}

func TestGetAllAttemptsStatsAndElapsed(t *testing.T) {
	e := newEnv(t)
	student, _, quiz := quizFixture(t, e, nil)

	started := time.Now().Add(-(3*time.Minute + 42*time.Second))
	_, err := e.quizzes.SubmitQuiz(student.ID, quiz.ID, correctAnswers(quiz), &started)
	require.NoError(t, err)

	attempts, err := e.quizzes.GetAllAttempts(student.ID, quiz.ID)
	require.NoError(t, err)
	require.Len(t, attempts, 1)

	attempt := attempts[0]
	assert.EqualValues(t, 4, attempt.TotalQuestions)
	assert.EqualValues(t, 4, attempt.CorrectAnswers)
	assert.EqualValues(t, 0, attempt.IncorrectAnswers)
	assert.Equal(t, "3m 42s", attempt.TimeTaken)
}

func TestGetLatestResultNoAttempts(t *testing.T) {
	e := newEnv(t)
	student, _, quiz := quizFixture(t, e, nil)

	_, err := e.quizzes.GetLatestResult(student.ID, quiz.ID)
	assert.ErrorIs(t, err, util.ErrNoAttempts)
}

func TestGetQuizHidesAnswerKeyForStudents(t *testing.T) {
	e := newEnv(t)
	_, _, quiz := quizFixture(t, e, nil)

	sanitized, err := e.quizzes.GetQuiz(quiz.ID, false)
	require.NoError(t, err)
	for _, question := range sanitized.Questions {
		for _, option := range question.Options {
			assert.False(t, option.IsCorrect)
		}
	}

	full, err := e.quizzes.GetQuiz(quiz.ID, true)
	require.NoError(t, err)
	assert.True(t, full.Questions[0].Options[0].IsCorrect)
}

func TestCreateQuizAppliesDefaultPassingScore(t *testing.T) {
	e := newEnv(t)
	instructor := createUser(t, e.db, model.Instructor)
	_, lessons := createCourse(t, e.db, instructor.ID, 1)

	quiz := &model.Quiz{
		LessonID: lessons[0].ID,
		Title:    "Defaults",
		Questions: []model.QuizQuestion{
			{QuestionText: "q", QuestionType: model.ShortAnswer},
		},
	}
	require.NoError(t, e.quizzes.CreateQuiz(quiz))
	assert.Equal(t, 50, quiz.PassingScore)
}
