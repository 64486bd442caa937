package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompletionRepository struct {
	DB *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) *CompletionRepository {
	return &CompletionRepository{DB: db}
}

// MarkComplete inserts a completion fact. Marking an already completed
// lesson is a no-op; the existing timestamp is not refreshed.
func (r *CompletionRepository) MarkComplete(userID, lessonID uint) error {
	completion := model.LessonCompletion{
		UserID:   userID,
		LessonID: lessonID,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoNothing: true,
	}).Create(&completion).Error
}

// UnmarkComplete deletes the fact if present and reports whether a row was
// removed. A missing fact is not an error.
func (r *CompletionRepository) UnmarkComplete(userID, lessonID uint) (bool, error) {
	res := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Delete(&model.LessonCompletion{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *CompletionRepository) IsCompleted(userID, lessonID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.LessonCompletion{}).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Count(&count).Error
	return count > 0, err
}

// GetCompletedLessons returns all completions for a user, most recent first.
func (r *CompletionRepository) GetCompletedLessons(userID uint) ([]model.CompletedLesson, error) {
	var rows []model.CompletedLesson
	err := r.DB.Table("lesson_completions lc").
		Select("lc.lesson_id, lc.completed_at, l.title, m.title AS module_title, c.title AS course_title").
		Joins("JOIN lessons l ON lc.lesson_id = l.id").
		Joins("JOIN modules m ON l.module_id = m.id").
		Joins("JOIN courses c ON m.course_id = c.id").
		Where("lc.user_id = ?", userID).
		Order("lc.completed_at DESC").
		Scan(&rows).Error
	return rows, err
}

// GetCompletedLessonsByCourse returns a user's completions within one course
// in curriculum order.
func (r *CompletionRepository) GetCompletedLessonsByCourse(userID, courseID uint) ([]model.CompletedLesson, error) {
	var rows []model.CompletedLesson
	err := r.DB.Table("lesson_completions lc").
		Select("lc.lesson_id, lc.completed_at, l.title, m.title AS module_title").
		Joins("JOIN lessons l ON lc.lesson_id = l.id").
		Joins("JOIN modules m ON l.module_id = m.id").
		Where("lc.user_id = ? AND m.course_id = ?", userID, courseID).
		Order("m.order_num, l.order_num").
		Scan(&rows).Error
	return rows, err
}

// GetAllCompletedLessonsByCourse returns every student's completions within
// one course, grouped by user in curriculum order.
func (r *CompletionRepository) GetAllCompletedLessonsByCourse(courseID uint) ([]model.CompletedLesson, error) {
	var rows []model.CompletedLesson
	err := r.DB.Table("lesson_completions lc").
		Select("lc.user_id, lc.lesson_id, lc.completed_at, l.title, m.title AS module_title").
		Joins("JOIN lessons l ON lc.lesson_id = l.id").
		Joins("JOIN modules m ON l.module_id = m.id").
		Where("m.course_id = ?", courseID).
		Order("lc.user_id, m.order_num, l.order_num").
		Scan(&rows).Error
	return rows, err
}

// GetEnrollmentByUserAndLesson resolves which enrollment owns a lesson for a
// user. gorm.ErrRecordNotFound means the user is not enrolled in the
// lesson's course.
func (r *CompletionRepository) GetEnrollmentByUserAndLesson(userID, lessonID uint) (*model.LessonEnrollment, error) {
	var row model.LessonEnrollment
	res := r.DB.Table("enrollments e").
		Select("e.id AS enrollment_id, e.course_id, e.progress").
		Joins("JOIN modules m ON e.course_id = m.course_id").
		Joins("JOIN lessons l ON m.id = l.module_id").
		Where("e.user_id = ? AND l.id = ?", userID, lessonID).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// CountCompletedByCourse counts a user's completions that belong to lessons
// of the given course.
func (r *CompletionRepository) CountCompletedByCourse(userID, courseID uint) (int64, error) {
	var count int64
	err := r.DB.Table("lesson_completions lc").
		Joins("JOIN lessons l ON lc.lesson_id = l.id").
		Joins("JOIN modules m ON l.module_id = m.id").
		Where("lc.user_id = ? AND m.course_id = ?", userID, courseID).
		Count(&count).Error
	return count, err
}
