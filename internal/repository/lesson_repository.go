package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := r.DB.First(&lesson, id).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *LessonRepository) ListByModule(moduleID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("module_id = ?", moduleID).Order("order_num").Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) Save(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

// CountByCourse counts every lesson in a course regardless of content type;
// all types weigh equally in progress calculation.
func (r *LessonRepository) CountByCourse(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Table("lessons l").
		Joins("JOIN modules m ON l.module_id = m.id").
		Where("m.course_id = ? AND l.deleted_at IS NULL", courseID).
		Count(&count).Error
	return count, err
}

// DeleteCascade removes a lesson and everything hanging off it (quiz tree,
// assignments, completion facts) in one transaction.
func (r *LessonRepository) DeleteCascade(lessonID uint) (bool, error) {
	deleted := false
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteLessonChildren(tx, lessonID); err != nil {
			return err
		}
		res := tx.Delete(&model.Lesson{}, lessonID)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}

// deleteLessonChildren is shared by the lesson, module and course cascade
// paths so they stay in one transaction.
func deleteLessonChildren(tx *gorm.DB, lessonID uint) error {
	var quizIDs []uint
	if err := tx.Model(&model.Quiz{}).Where("lesson_id = ?", lessonID).
		Pluck("id", &quizIDs).Error; err != nil {
		return err
	}
	if len(quizIDs) > 0 {
		var questionIDs []uint
		if err := tx.Model(&model.QuizQuestion{}).Where("quiz_id IN ?", quizIDs).
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
		if err := tx.Where("quiz_id IN ?", quizIDs).
			Delete(&model.QuizResult{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id IN ?", quizIDs).
			Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lesson_id = ?", lessonID).
			Delete(&model.Quiz{}).Error; err != nil {
			return err
		}
	}

	var assignmentIDs []uint
	if err := tx.Model(&model.Assignment{}).Where("lesson_id = ?", lessonID).
		Pluck("id", &assignmentIDs).Error; err != nil {
		return err
	}
	if len(assignmentIDs) > 0 {
		if err := tx.Where("assignment_id IN ?", assignmentIDs).
			Delete(&model.AssignmentSubmission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lesson_id = ?", lessonID).
			Delete(&model.Assignment{}).Error; err != nil {
			return err
		}
	}

	return tx.Where("lesson_id = ?", lessonID).
		Delete(&model.LessonCompletion{}).Error
}
