package model

import "time"

// QuizResult is one graded attempt for a (user, quiz) pair. Attempt numbers
// are 1-based and sequential; for quizzes with max_attempts == 1 the single
// row is overwritten in place on retake.
type QuizResult struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint       `gorm:"uniqueIndex:idx_user_quiz_attempt;not null" json:"userId"`
	QuizID        uint       `gorm:"uniqueIndex:idx_user_quiz_attempt;not null" json:"quizId"`
	Score         int        `gorm:"not null" json:"score"`
	AttemptNumber int        `gorm:"uniqueIndex:idx_user_quiz_attempt;default:1" json:"attemptNumber"`
	StartedAt     *time.Time `json:"startedAt,omitempty"`
	CompletedAt   time.Time  `json:"completedAt"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}

// QuizAnswer records one submitted answer within an attempt.
type QuizAnswer struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ResultID   uint   `gorm:"index;not null" json:"resultId"`
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	OptionID   *uint  `json:"optionId,omitempty"`
	AnswerText string `gorm:"type:text" json:"answerText,omitempty"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
}

func (QuizAnswer) TableName() string {
	return "quiz_answers"
}

// QuizAttemptView enriches a result row with quiz metadata and per-attempt
// answer statistics for the results endpoints.
type QuizAttemptView struct {
	QuizResult
	QuizTitle        string `json:"quizTitle"`
	PassingScore     int    `json:"passingScore"`
	TimeLimit        *int   `json:"timeLimit,omitempty"`
	TotalQuestions   int64  `json:"totalQuestions"`
	CorrectAnswers   int64  `json:"correctAnswers"`
	IncorrectAnswers int64  `json:"incorrectAnswers"`
	TimeTaken        string `json:"timeTaken"`
}

// UserQuizOverview lists a quiz across the user's enrolled courses together
// with the best attempt so far.
type UserQuizOverview struct {
	QuizSummary
	LessonID      uint         `json:"lessonId"`
	CourseID      uint         `json:"courseId"`
	BestAttempt   *BestAttempt `json:"bestAttempt,omitempty"`
	TotalAttempts int64        `json:"totalAttempts"`
}

type BestAttempt struct {
	Score         int       `json:"score"`
	AttemptNumber int       `json:"attemptNumber"`
	CompletedAt   time.Time `json:"completedAt"`
}

// QuizResultExport is the flattened per-attempt row used by result exports.
type QuizResultExport struct {
	UserName      string    `json:"userName"`
	UserEmail     string    `json:"userEmail"`
	Score         int       `json:"score"`
	AttemptNumber int       `json:"attemptNumber"`
	CompletedAt   time.Time `json:"completedAt"`
}

// AttemptInfo reports how many attempts a user has left on a quiz.
type AttemptInfo struct {
	AttemptCount      int64  `json:"attemptCount"`
	MaxAttempts       *int   `json:"maxAttempts,omitempty"`
	RemainingAttempts *int64 `json:"remainingAttempts,omitempty"`
	CanAttempt        bool   `json:"canAttempt"`
}
