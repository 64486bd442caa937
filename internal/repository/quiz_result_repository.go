package repository

import (
	"errors"

	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type QuizResultRepository struct {
	DB *gorm.DB
}

func NewQuizResultRepository(db *gorm.DB) *QuizResultRepository {
	return &QuizResultRepository{DB: db}
}

// AttemptStats returns the attempt count and highest attempt number for a
// (user, quiz) pair.
func (r *QuizResultRepository) AttemptStats(userID, quizID uint) (count int64, lastAttempt int, err error) {
	row := struct {
		AttemptCount int64
		LastAttempt  int
	}{}
	err = r.DB.Model(&model.QuizResult{}).
		Select("COUNT(*) AS attempt_count, COALESCE(MAX(attempt_number), 0) AS last_attempt").
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Scan(&row).Error
	return row.AttemptCount, row.LastAttempt, err
}

func (r *QuizResultRepository) FindByUserAndQuiz(userID, quizID uint) (*model.QuizResult, error) {
	var result model.QuizResult
	err := r.DB.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("attempt_number DESC").
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListByUserAndQuiz returns all attempts, newest attempt first, joined with
// quiz metadata.
func (r *QuizResultRepository) ListByUserAndQuiz(userID, quizID uint) ([]model.QuizAttemptView, error) {
	var rows []model.QuizAttemptView
	err := r.DB.Table("quiz_results r").
		Select("r.*, q.title AS quiz_title, q.passing_score, q.time_limit").
		Joins("JOIN quizzes q ON r.quiz_id = q.id").
		Where("r.user_id = ? AND r.quiz_id = ?", userID, quizID).
		Order("r.attempt_number DESC").
		Scan(&rows).Error
	return rows, err
}

// AnswerStats counts correct and incorrect answers for one attempt.
func (r *QuizResultRepository) AnswerStats(resultID uint) (correct, incorrect int64, err error) {
	row := struct {
		Correct   int64
		Incorrect int64
	}{}
	err = r.DB.Model(&model.QuizAnswer{}).
		Select("COUNT(CASE WHEN is_correct THEN 1 END) AS correct, COUNT(CASE WHEN NOT is_correct THEN 1 END) AS incorrect").
		Where("result_id = ?", resultID).
		Scan(&row).Error
	return row.Correct, row.Incorrect, err
}

func (r *QuizResultRepository) CountQuestions(quizID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizQuestion{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}

// ListByQuiz returns every attempt on a quiz with the attempting user, for
// exports and instructor views.
func (r *QuizResultRepository) ListByQuiz(quizID uint) ([]model.QuizResultExport, error) {
	var rows []model.QuizResultExport
	err := r.DB.Table("quiz_results r").
		Select("u.name AS user_name, u.email AS user_email, r.score, r.attempt_number, r.completed_at").
		Joins("JOIN users u ON r.user_id = u.id").
		Where("r.quiz_id = ?", quizID).
		Order("u.name, r.attempt_number").
		Scan(&rows).Error
	return rows, err
}

// BestAttempt returns the highest-scoring attempt for a (user, quiz) pair,
// or nil when none exists.
func (r *QuizResultRepository) BestAttempt(userID, quizID uint) (*model.BestAttempt, error) {
	var result model.QuizResult
	err := r.DB.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("score DESC, completed_at DESC").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &model.BestAttempt{
		Score:         result.Score,
		AttemptNumber: result.AttemptNumber,
		CompletedAt:   result.CompletedAt,
	}, nil
}
