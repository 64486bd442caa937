package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var c model.Course
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CourseRepository) FindDetail(id uint) (*model.CourseDetail, error) {
	var detail model.CourseDetail
	res := r.DB.Table("courses c").
		Select(`c.*, COALESCE(cat.name, '') AS category_name, u.name AS instructor_name,
			(SELECT COUNT(*) FROM lessons l JOIN modules m ON l.module_id = m.id
			 WHERE m.course_id = c.id AND l.deleted_at IS NULL) AS lesson_count`).
		Joins("LEFT JOIN categories cat ON c.category_id = cat.id").
		Joins("JOIN users u ON c.instructor_id = u.id").
		Where("c.id = ? AND c.deleted_at IS NULL", id).
		Scan(&detail)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &detail, nil
}

func (r *CourseRepository) List(publishedOnly bool) ([]model.CourseDetail, error) {
	var rows []model.CourseDetail
	q := r.DB.Table("courses c").
		Select(`c.*, COALESCE(cat.name, '') AS category_name, u.name AS instructor_name,
			(SELECT COUNT(*) FROM lessons l JOIN modules m ON l.module_id = m.id
			 WHERE m.course_id = c.id AND l.deleted_at IS NULL) AS lesson_count`).
		Joins("LEFT JOIN categories cat ON c.category_id = cat.id").
		Joins("JOIN users u ON c.instructor_id = u.id").
		Where("c.deleted_at IS NULL")
	if publishedOnly {
		q = q.Where("c.is_published = ?", true)
	}
	err := q.Order("c.created_at DESC").Scan(&rows).Error
	return rows, err
}

func (r *CourseRepository) ListByInstructor(instructorID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("instructor_id = ?", instructorID).
		Order("created_at DESC").Find(&courses).Error
	return courses, err
}

// Update applies a typed partial update; only explicitly set fields change.
func (r *CourseRepository) Update(courseID uint, update model.CourseUpdate) error {
	changes := update.Changes()
	if len(changes) == 0 {
		return nil
	}
	return r.DB.Model(&model.Course{}).Where("id = ?", courseID).Updates(changes).Error
}

// DeleteCascade removes a course with its modules, lessons, quizzes,
// assignments, completions and enrollments in one transaction.
func (r *CourseRepository) DeleteCascade(courseID uint) (bool, error) {
	deleted := false
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var moduleIDs []uint
		if err := tx.Model(&model.Module{}).Where("course_id = ?", courseID).
			Pluck("id", &moduleIDs).Error; err != nil {
			return err
		}
		for _, moduleID := range moduleIDs {
			if err := deleteModuleChildren(tx, moduleID); err != nil {
				return err
			}
		}
		if err := tx.Where("course_id = ?", courseID).
			Delete(&model.Module{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", courseID).
			Delete(&model.Enrollment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Course{}, courseID)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}
