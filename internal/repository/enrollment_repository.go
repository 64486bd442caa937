package repository

import (
	"time"

	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *EnrollmentRepository) FindByID(id uint) (*model.Enrollment, error) {
	var e model.Enrollment
	if err := r.DB.First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EnrollmentRepository) FindByUserAndCourse(userID, courseID uint) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// FindByUserAndQuiz resolves the enrollment granting a user access to the
// quiz's course, walking quiz -> lesson -> module -> course.
func (r *EnrollmentRepository) FindByUserAndQuiz(userID, quizID uint) (*model.Enrollment, error) {
	var e model.Enrollment
	res := r.DB.Table("enrollments e").
		Select("e.*").
		Joins("JOIN modules m ON e.course_id = m.course_id").
		Joins("JOIN lessons l ON m.id = l.module_id").
		Joins("JOIN quizzes q ON l.id = q.lesson_id").
		Where("e.user_id = ? AND q.id = ?", userID, quizID).
		Limit(1).
		Scan(&e)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

// Delete removes the enrollment row and reports whether one existed.
func (r *EnrollmentRepository) Delete(userID, courseID uint) (bool, error) {
	res := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&model.Enrollment{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *EnrollmentRepository) ListByUser(userID uint) ([]model.EnrollmentWithCourse, error) {
	var rows []model.EnrollmentWithCourse
	err := r.DB.Table("enrollments e").
		Select("e.*, c.title AS course_title, c.thumbnail_url, u.name AS instructor_name").
		Joins("JOIN courses c ON e.course_id = c.id").
		Joins("JOIN users u ON c.instructor_id = u.id").
		Where("e.user_id = ?", userID).
		Scan(&rows).Error
	return rows, err
}

func (r *EnrollmentRepository) ListByCourse(courseID uint) ([]model.EnrollmentWithUser, error) {
	var rows []model.EnrollmentWithUser
	err := r.DB.Table("enrollments e").
		Select("e.*, u.name AS user_name, u.email AS user_email").
		Joins("JOIN users u ON e.user_id = u.id").
		Where("e.course_id = ?", courseID).
		Order("e.enrolled_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *EnrollmentRepository) ListAll() ([]model.EnrollmentWithUser, error) {
	var rows []model.EnrollmentWithUser
	err := r.DB.Table("enrollments e").
		Select("e.*, u.name AS user_name, u.email AS user_email, c.title AS course_title").
		Joins("JOIN users u ON e.user_id = u.id").
		Joins("JOIN courses c ON e.course_id = c.id").
		Order("e.enrolled_at DESC").
		Scan(&rows).Error
	return rows, err
}

// SaveProgress persists a recomputed progress value in a single statement.
// completed_at is set the first time progress reaches 100 and never cleared
// by a later recomputation going down.
func (r *EnrollmentRepository) SaveProgress(enrollmentID uint, progress int) error {
	return r.DB.Exec(
		`UPDATE enrollments
		 SET progress = ?,
		     completed_at = CASE WHEN ? = 100 AND completed_at IS NULL THEN ? ELSE completed_at END
		 WHERE id = ?`,
		progress, progress, time.Now(), enrollmentID,
	).Error
}
