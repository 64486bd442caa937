package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

// CompletionService coordinates completion writes with progress
// recomputation. The completion fact is written first; progress is derived
// from it afterwards, so a crash between the two leaves a stale progress
// value that the next recomputation repairs, never a phantom completion.
type CompletionService struct {
	CompletionRepo *repository.CompletionRepository
	Enrollments    *EnrollmentService
}

func NewCompletionService(completionRepo *repository.CompletionRepository, enrollments *EnrollmentService) *CompletionService {
	return &CompletionService{CompletionRepo: completionRepo, Enrollments: enrollments}
}

// MarkLessonComplete records the completion and returns the recomputed
// course progress. Marking an already completed lesson is idempotent.
func (s *CompletionService) MarkLessonComplete(userID, lessonID uint) (int, error) {
	enrollment, err := s.resolveEnrollment(userID, lessonID)
	if err != nil {
		return 0, err
	}
	if err := s.CompletionRepo.MarkComplete(userID, lessonID); err != nil {
		return 0, err
	}
	return s.Enrollments.UpdateProgress(enrollment.EnrollmentID)
}

// UnmarkLessonComplete removes the completion fact if present and returns
// the recomputed progress. Unmarking a lesson that was never completed is
// not an error.
func (s *CompletionService) UnmarkLessonComplete(userID, lessonID uint) (int, error) {
	enrollment, err := s.resolveEnrollment(userID, lessonID)
	if err != nil {
		return 0, err
	}
	if _, err := s.CompletionRepo.UnmarkComplete(userID, lessonID); err != nil {
		return 0, err
	}
	return s.Enrollments.UpdateProgress(enrollment.EnrollmentID)
}

// CompleteForEnrollment is the trigger used by the quiz and assignment
// submission paths, which have already resolved the enrollment.
func (s *CompletionService) CompleteForEnrollment(userID, lessonID, enrollmentID uint) (int, error) {
	if err := s.CompletionRepo.MarkComplete(userID, lessonID); err != nil {
		return 0, err
	}
	return s.Enrollments.UpdateProgress(enrollmentID)
}

func (s *CompletionService) IsCompleted(userID, lessonID uint) (bool, error) {
	return s.CompletionRepo.IsCompleted(userID, lessonID)
}

func (s *CompletionService) GetCompletedLessons(userID uint) ([]model.CompletedLesson, error) {
	return s.CompletionRepo.GetCompletedLessons(userID)
}

func (s *CompletionService) GetCompletedLessonsByCourse(userID, courseID uint) ([]model.CompletedLesson, error) {
	return s.CompletionRepo.GetCompletedLessonsByCourse(userID, courseID)
}

func (s *CompletionService) GetAllCompletedLessonsByCourse(courseID uint) ([]model.CompletedLesson, error) {
	return s.CompletionRepo.GetAllCompletedLessonsByCourse(courseID)
}

func (s *CompletionService) resolveEnrollment(userID, lessonID uint) (*model.LessonEnrollment, error) {
	enrollment, err := s.CompletionRepo.GetEnrollmentByUserAndLesson(userID, lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEnrollmentNotFound
		}
		return nil, err
	}
	return enrollment, nil
}
