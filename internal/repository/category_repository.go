package repository

import (
	"strings"

	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

// Create inserts a category, surfacing the unique-name violation as a
// conflict callers can present distinctly from server errors.
func (r *CategoryRepository) Create(category *model.Category) error {
	err := r.DB.Create(category).Error
	if err != nil && isDuplicateKey(err) {
		return util.ErrCategoryExists
	}
	return err
}

func (r *CategoryRepository) FindByID(id uint) (*model.Category, error) {
	var c model.Category
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) List() ([]model.Category, error) {
	var categories []model.Category
	err := r.DB.Order("name").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) Save(category *model.Category) error {
	err := r.DB.Save(category).Error
	if err != nil && isDuplicateKey(err) {
		return util.ErrCategoryExists
	}
	return err
}

func (r *CategoryRepository) Delete(id uint) (bool, error) {
	res := r.DB.Delete(&model.Category{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// isDuplicateKey matches the MySQL and SQLite unique violation messages;
// gorm does not normalize these across drivers.
func isDuplicateKey(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
