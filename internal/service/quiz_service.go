package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type QuizService struct {
	DB          *gorm.DB
	Config      *config.Config
	QuizRepo    *repository.QuizRepository
	ResultRepo  *repository.QuizResultRepository
	Enrollments *repository.EnrollmentRepository
	Completions *CompletionService
}

func NewQuizService(
	db *gorm.DB,
	cfg *config.Config,
	quizRepo *repository.QuizRepository,
	resultRepo *repository.QuizResultRepository,
	enrollments *repository.EnrollmentRepository,
	completions *CompletionService,
) *QuizService {
	return &QuizService{
		DB:          db,
		Config:      cfg,
		QuizRepo:    quizRepo,
		ResultRepo:  resultRepo,
		Enrollments: enrollments,
		Completions: completions,
	}
}

// QuizSubmission is the outcome of one graded attempt.
type QuizSubmission struct {
	ResultID       uint  `json:"resultId"`
	Score          int   `json:"score"`
	EarnedPoints   int   `json:"earnedPoints"`
	TotalPoints    int   `json:"totalPoints"`
	TotalQuestions int   `json:"totalQuestions"`
	CorrectAnswers int   `json:"correctAnswers"`
	Passed         bool  `json:"passed"`
	AttemptNumber  int   `json:"attemptNumber"`
	IsRetake       bool  `json:"isRetake"`
	CourseProgress int   `json:"courseProgress"`
}

// SubmitQuiz grades a full attempt and persists it atomically.
//
// Any answer referencing a question outside the quiz rejects the whole
// submission before grading. Attempt accounting and result persistence run
// in one transaction so concurrent submissions cannot both pass the
// max-attempts gate. A quiz with max_attempts == 1 allows unlimited retakes
// by overwriting the single result row in place, keeping the original
// started_at. After the attempt is durable the lesson is marked complete
// and course progress recomputed, regardless of pass or fail.
func (s *QuizService) SubmitQuiz(userID, quizID uint, answers []AnswerInput, startedAt *time.Time) (*QuizSubmission, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	enrollment, err := s.Enrollments.FindByUserAndQuiz(userID, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			monitoring.QuizSubmissions.WithLabelValues("rejected").Inc()
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}

	questionByID := make(map[uint]*model.QuizQuestion, len(quiz.Questions))
	for i := range quiz.Questions {
		questionByID[quiz.Questions[i].ID] = &quiz.Questions[i]
	}
	answerByQuestion := make(map[uint]AnswerInput, len(answers))
	for _, answer := range answers {
		if _, ok := questionByID[answer.QuestionID]; !ok {
			monitoring.QuizSubmissions.WithLabelValues("rejected").Inc()
			return nil, fmt.Errorf("%w: question %d", util.ErrForeignQuestion, answer.QuestionID)
		}
		answerByQuestion[answer.QuestionID] = answer
	}

	earned, total, correctCount := 0, 0, 0
	rows := make([]model.QuizAnswer, 0, len(answerByQuestion))
	for i := range quiz.Questions {
		question := &quiz.Questions[i]
		points := questionPoints(*question)
		total += points
		answer, answered := answerByQuestion[question.ID]
		if !answered {
			continue
		}
		correct := graderFor(question.QuestionType).Grade(*question, answer)
		if correct {
			earned += points
			correctCount++
		}
		rows = append(rows, model.QuizAnswer{
			QuestionID: question.ID,
			OptionID:   answer.OptionID,
			AnswerText: answer.AnswerText,
			IsCorrect:  correct,
		})
	}
	score := 0
	if total > 0 {
		score = int(math.Round(float64(earned) / float64(total) * 100))
	}
	passed := score >= quiz.PassingScore

	var result model.QuizResult
	var isRetake bool
	now := time.Now()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		stats := struct {
			AttemptCount int64
			LastAttempt  int
		}{}
		if err := tx.Model(&model.QuizResult{}).
			Select("COUNT(*) AS attempt_count, COALESCE(MAX(attempt_number), 0) AS last_attempt").
			Where("user_id = ? AND quiz_id = ?", userID, quizID).
			Scan(&stats).Error; err != nil {
			return err
		}
		if quiz.MaxAttempts != nil && stats.AttemptCount >= int64(*quiz.MaxAttempts) {
			if *quiz.MaxAttempts != 1 {
				return util.ErrMaxAttemptsExceeded
			}
			// Single-attempt quizzes behave as practice quizzes: the one
			// result row is overwritten, the first started_at is kept.
			if err := tx.Where("user_id = ? AND quiz_id = ?", userID, quizID).
				Order("attempt_number DESC").
				First(&result).Error; err != nil {
				return err
			}
			result.Score = score
			result.CompletedAt = now
			if result.StartedAt == nil {
				if startedAt == nil {
					startedAt = &now
				}
				result.StartedAt = startedAt
			}
			if err := tx.Save(&result).Error; err != nil {
				return err
			}
			if err := tx.Where("result_id = ?", result.ID).
				Delete(&model.QuizAnswer{}).Error; err != nil {
				return err
			}
			isRetake = true
		} else {
			result = model.QuizResult{
				UserID:        userID,
				QuizID:        quizID,
				Score:         score,
				AttemptNumber: stats.LastAttempt + 1,
				StartedAt:     startedAt,
				CompletedAt:   now,
			}
			if err := tx.Create(&result).Error; err != nil {
				return err
			}
			isRetake = stats.AttemptCount > 0
		}
		for i := range rows {
			rows[i].ID = 0
			rows[i].ResultID = result.ID
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, util.ErrMaxAttemptsExceeded) {
			monitoring.QuizSubmissions.WithLabelValues("rejected").Inc()
		}
		return nil, err
	}

	// Attempting the quiz completes the lesson whether or not it was passed.
	progress, err := s.Completions.CompleteForEnrollment(userID, quiz.LessonID, enrollment.ID)
	if err != nil {
		return nil, err
	}

	if passed {
		monitoring.QuizSubmissions.WithLabelValues("passed").Inc()
	} else {
		monitoring.QuizSubmissions.WithLabelValues("failed").Inc()
	}
	return &QuizSubmission{
		ResultID:       result.ID,
		Score:          score,
		EarnedPoints:   earned,
		TotalPoints:    total,
		TotalQuestions: len(quiz.Questions),
		CorrectAnswers: correctCount,
		Passed:         passed,
		AttemptNumber:  result.AttemptNumber,
		IsRetake:       isRetake,
		CourseProgress: progress,
	}, nil
}

// GetLatestResult returns the most recent attempt with answer statistics.
func (s *QuizService) GetLatestResult(userID, quizID uint) (*model.QuizAttemptView, error) {
	attempts, err := s.GetAllAttempts(userID, quizID)
	if err != nil {
		return nil, err
	}
	if len(attempts) == 0 {
		return nil, util.ErrNoAttempts
	}
	return &attempts[0], nil
}

// GetAllAttempts returns every attempt newest first, each enriched with
// answer counts and elapsed time.
func (s *QuizService) GetAllAttempts(userID, quizID uint) ([]model.QuizAttemptView, error) {
	attempts, err := s.ResultRepo.ListByUserAndQuiz(userID, quizID)
	if err != nil {
		return nil, err
	}
	totalQuestions, err := s.ResultRepo.CountQuestions(quizID)
	if err != nil {
		return nil, err
	}
	for i := range attempts {
		correct, incorrect, err := s.ResultRepo.AnswerStats(attempts[i].ID)
		if err != nil {
			return nil, err
		}
		attempts[i].TotalQuestions = totalQuestions
		attempts[i].CorrectAnswers = correct
		attempts[i].IncorrectAnswers = incorrect
		attempts[i].TimeTaken = formatElapsed(attempts[i].StartedAt, attempts[i].CompletedAt)
	}
	return attempts, nil
}

// GetAttemptInfo reports attempt usage and whether another attempt is
// allowed. Single-attempt quizzes always allow a retake since it overwrites.
func (s *QuizService) GetAttemptInfo(userID, quizID uint) (*model.AttemptInfo, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	count, _, err := s.ResultRepo.AttemptStats(userID, quizID)
	if err != nil {
		return nil, err
	}
	info := &model.AttemptInfo{
		AttemptCount: count,
		MaxAttempts:  quiz.MaxAttempts,
		CanAttempt:   true,
	}
	if quiz.MaxAttempts != nil && *quiz.MaxAttempts != 1 {
		remaining := int64(*quiz.MaxAttempts) - count
		if remaining < 0 {
			remaining = 0
		}
		info.RemainingAttempts = &remaining
		info.CanAttempt = remaining > 0
	}
	return info, nil
}

// ListUserQuizzes returns all quizzes across the user's enrollments with
// best-attempt summaries.
func (s *QuizService) ListUserQuizzes(userID uint) ([]model.UserQuizOverview, error) {
	quizzes, err := s.QuizRepo.ListUserQuizzes(userID)
	if err != nil {
		return nil, err
	}
	for i := range quizzes {
		best, err := s.ResultRepo.BestAttempt(userID, quizzes[i].ID)
		if err != nil {
			return nil, err
		}
		count, _, err := s.ResultRepo.AttemptStats(userID, quizzes[i].ID)
		if err != nil {
			return nil, err
		}
		quizzes[i].BestAttempt = best
		quizzes[i].TotalAttempts = count
	}
	return quizzes, nil
}

func (s *QuizService) CreateQuiz(quiz *model.Quiz) error {
	if quiz.PassingScore <= 0 {
		quiz.PassingScore = s.Config.Quiz.DefaultPassingScore
	}
	return s.QuizRepo.CreateWithQuestions(quiz)
}

// GetQuiz loads a quiz; when includeAnswers is false the correct-option
// flags are blanked so students cannot read the key.
func (s *QuizService) GetQuiz(quizID uint, includeAnswers bool) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if !includeAnswers {
		for i := range quiz.Questions {
			for j := range quiz.Questions[i].Options {
				quiz.Questions[i].Options[j].IsCorrect = false
			}
		}
	}
	return quiz, nil
}

func (s *QuizService) ListByLesson(lessonID uint) ([]model.QuizSummary, error) {
	return s.QuizRepo.ListByLesson(lessonID)
}

// UpdateQuiz applies metadata changes and, when questions is non-nil,
// replaces the full question set.
func (s *QuizService) UpdateQuiz(quizID uint, changes map[string]interface{}, questions []model.QuizQuestion) (*model.Quiz, error) {
	if _, err := s.QuizRepo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if err := s.QuizRepo.Update(quizID, changes); err != nil {
		return nil, err
	}
	if questions != nil {
		if err := s.QuizRepo.ReplaceQuestions(quizID, questions); err != nil {
			return nil, err
		}
	}
	return s.QuizRepo.FindByID(quizID)
}

func (s *QuizService) DeleteQuiz(quizID uint) error {
	deleted, err := s.QuizRepo.DeleteCascade(quizID)
	if err != nil {
		return err
	}
	if !deleted {
		return util.ErrQuizNotFound
	}
	return nil
}

// formatElapsed renders the attempt duration as "3m 42s"; empty when the
// client never reported a start time.
func formatElapsed(startedAt *time.Time, completedAt time.Time) string {
	if startedAt == nil {
		return ""
	}
	elapsed := completedAt.Sub(*startedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	seconds := int(elapsed.Seconds())
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}
