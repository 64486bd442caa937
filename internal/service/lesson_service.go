package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type LessonService struct {
	LessonRepo *repository.LessonRepository
	ModuleRepo *repository.ModuleRepository
}

func NewLessonService(lessonRepo *repository.LessonRepository, moduleRepo *repository.ModuleRepository) *LessonService {
	return &LessonService{LessonRepo: lessonRepo, ModuleRepo: moduleRepo}
}

func (s *LessonService) CreateLesson(lesson *model.Lesson) error {
	if _, err := s.ModuleRepo.FindByID(lesson.ModuleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrModuleNotFound
		}
		return err
	}
	return s.LessonRepo.Create(lesson)
}

func (s *LessonService) GetLesson(id uint) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) ListByModule(moduleID uint) ([]model.Lesson, error) {
	return s.LessonRepo.ListByModule(moduleID)
}

func (s *LessonService) UpdateLesson(lesson *model.Lesson) error {
	return s.LessonRepo.Save(lesson)
}

// DeleteLesson removes the lesson with its quizzes, assignments and
// completion facts. Enrollment progress is not recomputed here; the next
// completion event repairs it.
func (s *LessonService) DeleteLesson(id uint) error {
	deleted, err := s.LessonRepo.DeleteCascade(id)
	if err != nil {
		return err
	}
	if !deleted {
		return util.ErrLessonNotFound
	}
	return nil
}
