package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(assignment *model.Assignment) error {
	return r.DB.Create(assignment).Error
}

func (r *AssignmentRepository) FindByID(id uint) (*model.Assignment, error) {
	var a model.Assignment
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// FindDetail resolves the assignment together with its lesson title and
// owning course, which the completion trigger needs.
func (r *AssignmentRepository) FindDetail(id uint) (*model.AssignmentDetail, error) {
	var detail model.AssignmentDetail
	res := r.DB.Table("assignments a").
		Select("a.*, m.course_id, l.title AS lesson_title").
		Joins("JOIN lessons l ON a.lesson_id = l.id").
		Joins("JOIN modules m ON l.module_id = m.id").
		Where("a.id = ? AND a.deleted_at IS NULL", id).
		Scan(&detail)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &detail, nil
}

func (r *AssignmentRepository) ListByLesson(lessonID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Where("lesson_id = ?", lessonID).Order("created_at").Find(&assignments).Error
	return assignments, err
}

// ListByInstructor returns assignments across every course the instructor
// owns.
func (r *AssignmentRepository) ListByInstructor(instructorID uint) ([]model.AssignmentDetail, error) {
	var rows []model.AssignmentDetail
	err := r.DB.Table("assignments a").
		Select("a.*, m.course_id, l.title AS lesson_title").
		Joins("JOIN lessons l ON a.lesson_id = l.id").
		Joins("JOIN modules m ON l.module_id = m.id").
		Joins("JOIN courses c ON m.course_id = c.id").
		Where("c.instructor_id = ? AND a.deleted_at IS NULL", instructorID).
		Order("a.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *AssignmentRepository) Save(assignment *model.Assignment) error {
	return r.DB.Save(assignment).Error
}

func (r *AssignmentRepository) Delete(id uint) (bool, error) {
	deleted := false
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assignment_id = ?", id).
			Delete(&model.AssignmentSubmission{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Assignment{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}

// UpsertSubmission records a submission; resubmitting replaces the stored
// URL and resets any previous grade.
func (r *AssignmentRepository) UpsertSubmission(submission *model.AssignmentSubmission) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "assignment_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"submission_url": submission.SubmissionURL,
			"content":        submission.Content,
			"stored_object":  submission.StoredObject,
			"grade":          nil,
			"feedback":       "",
			"graded_by":      nil,
			"graded_at":      nil,
		}),
	}).Create(submission).Error
}

func (r *AssignmentRepository) GetSubmission(assignmentID, userID uint) (*model.AssignmentSubmission, error) {
	var s model.AssignmentSubmission
	err := r.DB.Where("assignment_id = ? AND user_id = ?", assignmentID, userID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *AssignmentRepository) ListSubmissions(assignmentID uint) ([]model.SubmissionWithUser, error) {
	var rows []model.SubmissionWithUser
	err := r.DB.Table("assignment_submissions s").
		Select("s.*, u.name AS user_name, u.email AS user_email").
		Joins("JOIN users u ON s.user_id = u.id").
		Where("s.assignment_id = ?", assignmentID).
		Order("s.submitted_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *AssignmentRepository) FindSubmissionByID(id uint) (*model.AssignmentSubmission, error) {
	var s model.AssignmentSubmission
	if err := r.DB.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *AssignmentRepository) SaveSubmission(submission *model.AssignmentSubmission) error {
	return r.DB.Save(submission).Error
}

func (r *AssignmentRepository) DeleteSubmission(assignmentID, userID uint) (bool, error) {
	res := r.DB.Where("assignment_id = ? AND user_id = ?", assignmentID, userID).
		Delete(&model.AssignmentSubmission{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
