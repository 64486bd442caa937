package service

import (
	"errors"
	"math"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CompletionRepo *repository.CompletionRepository
	CourseRepo     *repository.CourseRepository
	LessonRepo     *repository.LessonRepository
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	completionRepo *repository.CompletionRepository,
	courseRepo *repository.CourseRepository,
	lessonRepo *repository.LessonRepository,
) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CompletionRepo: completionRepo,
		CourseRepo:     courseRepo,
		LessonRepo:     lessonRepo,
	}
}

func (s *EnrollmentService) Enroll(userID, courseID uint) (*model.Enrollment, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if _, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID); err == nil {
		return nil, util.ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	enrollment := &model.Enrollment{UserID: userID, CourseID: courseID}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *EnrollmentService) Unenroll(userID, courseID uint) error {
	deleted, err := s.EnrollmentRepo.Delete(userID, courseID)
	if err != nil {
		return err
	}
	if !deleted {
		return util.ErrNotEnrolled
	}
	return nil
}

func (s *EnrollmentService) GetByUserAndCourse(userID, courseID uint) (*model.Enrollment, error) {
	enrollment, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}
	return enrollment, nil
}

func (s *EnrollmentService) ListByUser(userID uint) ([]model.EnrollmentWithCourse, error) {
	return s.EnrollmentRepo.ListByUser(userID)
}

func (s *EnrollmentService) ListByCourse(courseID uint) ([]model.EnrollmentWithUser, error) {
	return s.EnrollmentRepo.ListByCourse(courseID)
}

func (s *EnrollmentService) ListAll() ([]model.EnrollmentWithUser, error) {
	return s.EnrollmentRepo.ListAll()
}

// UpdateProgress recomputes an enrollment's progress from the durable
// completion facts and persists it. Progress is completed/total rounded to
// the nearest integer, clamped to 100, and 0 for a course with no lessons.
// The caller gets the value that was stored.
func (s *EnrollmentService) UpdateProgress(enrollmentID uint) (int, error) {
	enrollment, err := s.EnrollmentRepo.FindByID(enrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, util.ErrEnrollmentNotFound
		}
		return 0, err
	}
	total, err := s.LessonRepo.CountByCourse(enrollment.CourseID)
	if err != nil {
		return 0, err
	}
	completed, err := s.CompletionRepo.CountCompletedByCourse(enrollment.UserID, enrollment.CourseID)
	if err != nil {
		return 0, err
	}
	progress := 0
	if total > 0 {
		progress = int(math.Round(float64(completed) / float64(total) * 100))
		if progress > 100 {
			progress = 100
		}
	}
	if err := s.EnrollmentRepo.SaveProgress(enrollmentID, progress); err != nil {
		return 0, err
	}
	return progress, nil
}
