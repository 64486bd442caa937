package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) Create(module *model.Module) error {
	return r.DB.Create(module).Error
}

func (r *ModuleRepository) FindByID(id uint) (*model.Module, error) {
	var m model.Module
	if err := r.DB.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ModuleRepository) ListByCourse(courseID uint) ([]model.Module, error) {
	var modules []model.Module
	err := r.DB.Where("course_id = ?", courseID).Order("order_num").Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) Save(module *model.Module) error {
	return r.DB.Save(module).Error
}

// DeleteCascade removes a module with all of its lessons and their
// dependents in one transaction.
func (r *ModuleRepository) DeleteCascade(moduleID uint) (bool, error) {
	deleted := false
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteModuleChildren(tx, moduleID); err != nil {
			return err
		}
		res := tx.Delete(&model.Module{}, moduleID)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}

func deleteModuleChildren(tx *gorm.DB, moduleID uint) error {
	var lessonIDs []uint
	if err := tx.Model(&model.Lesson{}).Where("module_id = ?", moduleID).
		Pluck("id", &lessonIDs).Error; err != nil {
		return err
	}
	for _, lessonID := range lessonIDs {
		if err := deleteLessonChildren(tx, lessonID); err != nil {
			return err
		}
	}
	return tx.Where("module_id = ?", moduleID).Delete(&model.Lesson{}).Error
}
