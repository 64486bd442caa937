package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type ModuleService struct {
	ModuleRepo *repository.ModuleRepository
	CourseRepo *repository.CourseRepository
}

func NewModuleService(moduleRepo *repository.ModuleRepository, courseRepo *repository.CourseRepository) *ModuleService {
	return &ModuleService{ModuleRepo: moduleRepo, CourseRepo: courseRepo}
}

func (s *ModuleService) CreateModule(module *model.Module) error {
	if _, err := s.CourseRepo.FindByID(module.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	return s.ModuleRepo.Create(module)
}

func (s *ModuleService) GetModule(id uint) (*model.Module, error) {
	module, err := s.ModuleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}
	return module, nil
}

func (s *ModuleService) ListByCourse(courseID uint) ([]model.Module, error) {
	return s.ModuleRepo.ListByCourse(courseID)
}

func (s *ModuleService) UpdateModule(module *model.Module) error {
	return s.ModuleRepo.Save(module)
}

// DeleteModule removes the module and everything under it: lessons,
// quizzes, assignments and the related facts.
func (s *ModuleService) DeleteModule(id uint) error {
	deleted, err := s.ModuleRepo.DeleteCascade(id)
	if err != nil {
		return err
	}
	if !deleted {
		return util.ErrModuleNotFound
	}
	return nil
}
