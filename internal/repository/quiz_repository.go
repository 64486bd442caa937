package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

// FindByID loads a quiz with its questions and options in display order.
func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_questions.order_num")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_options.order_num")
		}).
		First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) ListByLesson(lessonID uint) ([]model.QuizSummary, error) {
	var rows []model.QuizSummary
	err := r.DB.Table("quizzes q").
		Select(`q.id, q.title, q.passing_score, q.time_limit, q.max_attempts,
			l.title AS lesson_title, c.title AS course_title,
			(SELECT COUNT(*) FROM quiz_questions WHERE quiz_id = q.id AND deleted_at IS NULL) AS question_count`).
		Joins("JOIN lessons l ON q.lesson_id = l.id").
		Joins("JOIN modules m ON l.module_id = m.id").
		Joins("JOIN courses c ON m.course_id = c.id").
		Where("q.lesson_id = ? AND q.deleted_at IS NULL", lessonID).
		Order("q.id").
		Scan(&rows).Error
	return rows, err
}

// CreateWithQuestions persists a quiz and its nested questions/options
// atomically.
func (r *QuizRepository) CreateWithQuestions(quiz *model.Quiz) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		questions := quiz.Questions
		quiz.Questions = nil
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}
		for i := range questions {
			q := &questions[i]
			q.QuizID = quiz.ID
			if q.OrderNum == 0 {
				q.OrderNum = i + 1
			}
			options := q.Options
			q.Options = nil
			if err := tx.Create(q).Error; err != nil {
				return err
			}
			for j := range options {
				options[j].QuestionID = q.ID
				if options[j].OrderNum == 0 {
					options[j].OrderNum = j + 1
				}
			}
			if len(options) > 0 {
				if err := tx.Create(&options).Error; err != nil {
					return err
				}
			}
			q.Options = options
		}
		quiz.Questions = questions
		return nil
	})
}

// ReplaceQuestions swaps a quiz's question set for the given one, removing
// answers tied to dropped questions, all or nothing.
func (r *QuizRepository) ReplaceQuestions(quizID uint, questions []model.QuizQuestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var existingIDs []uint
		if err := tx.Model(&model.QuizQuestion{}).Where("quiz_id = ?", quizID).
			Pluck("id", &existingIDs).Error; err != nil {
			return err
		}
		if len(existingIDs) > 0 {
			if err := tx.Where("question_id IN ?", existingIDs).
				Delete(&model.QuizOption{}).Error; err != nil {
				return err
			}
			if err := tx.Where("question_id IN ?", existingIDs).
				Delete(&model.QuizAnswer{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quiz_id = ?", quizID).
				Delete(&model.QuizQuestion{}).Error; err != nil {
				return err
			}
		}
		for i := range questions {
			q := &questions[i]
			q.ID = 0
			q.QuizID = quizID
			if q.OrderNum == 0 {
				q.OrderNum = i + 1
			}
			options := q.Options
			q.Options = nil
			if err := tx.Create(q).Error; err != nil {
				return err
			}
			for j := range options {
				options[j].ID = 0
				options[j].QuestionID = q.ID
				if options[j].OrderNum == 0 {
					options[j].OrderNum = j + 1
				}
			}
			if len(options) > 0 {
				if err := tx.Create(&options).Error; err != nil {
					return err
				}
			}
			q.Options = options
		}
		return nil
	})
}

func (r *QuizRepository) Update(quizID uint, changes map[string]interface{}) error {
	if len(changes) == 0 {
		return nil
	}
	return r.DB.Model(&model.Quiz{}).Where("id = ?", quizID).Updates(changes).Error
}

// DeleteCascade removes a quiz together with its questions, options,
// results and answers in one transaction.
func (r *QuizRepository) DeleteCascade(quizID uint) (bool, error) {
	deleted := false
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&model.QuizQuestion{}).Where("quiz_id = ?", quizID).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).
				Delete(&model.QuizAnswer{}).Error; err != nil {
				return err
			}
			if err := tx.Where("question_id IN ?", questionIDs).
				Delete(&model.QuizOption{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("quiz_id = ?", quizID).
			Delete(&model.QuizResult{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quizID).
			Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Quiz{}, quizID)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}

// ListUserQuizzes returns every quiz in the user's enrolled courses.
func (r *QuizRepository) ListUserQuizzes(userID uint) ([]model.UserQuizOverview, error) {
	var rows []model.UserQuizOverview
	err := r.DB.Table("quizzes q").
		Select(`q.id, q.title, q.passing_score, q.time_limit, q.max_attempts,
			l.title AS lesson_title, l.id AS lesson_id,
			c.title AS course_title, c.id AS course_id,
			(SELECT COUNT(*) FROM quiz_questions WHERE quiz_id = q.id AND deleted_at IS NULL) AS question_count`).
		Joins("JOIN lessons l ON q.lesson_id = l.id").
		Joins("JOIN modules m ON l.module_id = m.id").
		Joins("JOIN courses c ON m.course_id = c.id").
		Joins("JOIN enrollments e ON c.id = e.course_id").
		Where("e.user_id = ? AND q.deleted_at IS NULL", userID).
		Order("c.title, l.title, q.title").
		Scan(&rows).Error
	return rows, err
}
