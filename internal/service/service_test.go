package service

import (
	"fmt"
	"os"
	"sync/atomic"
	"testing"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/pkg/database"
	"lms_backend/pkg/logger"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.InitLogger("debug")
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A fresh connection would get its own empty in-memory database.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Quiz: config.QuizConfig{DefaultPassingScore: 50},
	}
}

// env bundles the wired services and repositories most tests need.
type env struct {
	db          *gorm.DB
	enrollments *EnrollmentService
	completions *CompletionService
	quizzes     *QuizService
	assignments *AssignmentService
	storage     *fakeStorage
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := newTestDB(t)

	courseRepo := repository.NewCourseRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	completionRepo := repository.NewCompletionRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	resultRepo := repository.NewQuizResultRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	storage := &fakeStorage{objects: map[string][]byte{}}

	enrollments := NewEnrollmentService(enrollmentRepo, completionRepo, courseRepo, lessonRepo)
	completions := NewCompletionService(completionRepo, enrollments)
	quizzes := NewQuizService(db, testConfig(), quizRepo, resultRepo, enrollmentRepo, completions)
	assignments := NewAssignmentService(assignmentRepo, enrollmentRepo, &StorageService{Provider: storage}, completions)

	return &env{
		db:          db,
		enrollments: enrollments,
		completions: completions,
		quizzes:     quizzes,
		assignments: assignments,
		storage:     storage,
	}
}

var userSeq uint64

func createUser(t *testing.T, db *gorm.DB, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{
		Name:     "Test " + string(role),
		Email:    fmt.Sprintf("%s-%d@example.com", role, atomic.AddUint64(&userSeq, 1)),
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createCourse builds a course with one module and the given number of
// lessons, returning the lessons in order.
func createCourse(t *testing.T, db *gorm.DB, instructorID uint, lessonCount int) (*model.Course, []model.Lesson) {
	t.Helper()
	course := &model.Course{Title: "Course", InstructorID: instructorID, IsPublished: true}
	require.NoError(t, db.Create(course).Error)

	module := &model.Module{CourseID: course.ID, Title: "Module 1", OrderNum: 1}
	require.NoError(t, db.Create(module).Error)

	lessons := make([]model.Lesson, 0, lessonCount)
	for i := 0; i < lessonCount; i++ {
		lesson := model.Lesson{
			ModuleID:    module.ID,
			Title:       "Lesson",
			ContentType: model.LessonText,
			OrderNum:    i + 1,
		}
		require.NoError(t, db.Create(&lesson).Error)
		lessons = append(lessons, lesson)
	}
	return course, lessons
}

func enroll(t *testing.T, db *gorm.DB, userID, courseID uint) *model.Enrollment {
	t.Helper()
	enrollment := &model.Enrollment{UserID: userID, CourseID: courseID}
	require.NoError(t, db.Create(enrollment).Error)
	return enrollment
}

// createQuiz attaches a quiz with two multiple-choice questions, one
// true/false and one short-answer question to the lesson. The first option
// of every selectable question is the correct one.
func createQuiz(t *testing.T, db *gorm.DB, quizzes *QuizService, lessonID uint, maxAttempts *int) *model.Quiz {
	t.Helper()
	quiz := &model.Quiz{
		LessonID:    lessonID,
		Title:       "Checkpoint",
		MaxAttempts: maxAttempts,
		Questions: []model.QuizQuestion{
			{
				QuestionText: "2 + 2?",
				QuestionType: model.MultipleChoice,
				Points:       1,
				Options: []model.QuizOption{
					{OptionText: "4", IsCorrect: true},
					{OptionText: "5"},
				},
			},
			{
				QuestionText: "Capital of France?",
				QuestionType: model.MultipleChoice,
				Points:       1,
				Options: []model.QuizOption{
					{OptionText: "Paris", IsCorrect: true},
					{OptionText: "Lyon"},
				},
			},
			{
				QuestionText: "The sky is blue.",
				QuestionType: model.TrueFalse,
				Points:       1,
				Options: []model.QuizOption{
					{OptionText: "True", IsCorrect: true},
					{OptionText: "False"},
				},
			},
			{
				QuestionText: "Describe gravity.",
				QuestionType: model.ShortAnswer,
				Points:       1,
			},
		},
	}
	require.NoError(t, quizzes.CreateQuiz(quiz))
	return quiz
}

// correctAnswers builds a fully correct submission for a quiz created via
// createQuiz.
func correctAnswers(quiz *model.Quiz) []AnswerInput {
	answers := make([]AnswerInput, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		if q.QuestionType == model.ShortAnswer {
			answers = append(answers, AnswerInput{QuestionID: q.ID, AnswerText: "It pulls things down."})
			continue
		}
		correctID := q.Options[0].ID
		answers = append(answers, AnswerInput{QuestionID: q.ID, OptionID: &correctID})
	}
	return answers
}
