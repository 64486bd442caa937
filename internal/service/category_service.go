package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type CategoryService struct {
	CategoryRepo *repository.CategoryRepository
}

func NewCategoryService(categoryRepo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{CategoryRepo: categoryRepo}
}

func (s *CategoryService) CreateCategory(category *model.Category) error {
	return s.CategoryRepo.Create(category)
}

func (s *CategoryService) GetCategory(id uint) (*model.Category, error) {
	category, err := s.CategoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) ListCategories() ([]model.Category, error) {
	return s.CategoryRepo.List()
}

func (s *CategoryService) UpdateCategory(id uint, name, description string) (*model.Category, error) {
	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}
	category.Name = name
	category.Description = description
	if err := s.CategoryRepo.Save(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) DeleteCategory(id uint) error {
	deleted, err := s.CategoryRepo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return util.ErrCategoryNotFound
	}
	return nil
}
