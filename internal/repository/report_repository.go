package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type ReportRepository struct {
	DB *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{DB: db}
}

func (r *ReportRepository) Create(report *model.GeneratedReport) error {
	return r.DB.Create(report).Error
}

func (r *ReportRepository) FindByID(id uint) (*model.GeneratedReport, error) {
	var report model.GeneratedReport
	if err := r.DB.First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) List() ([]model.GeneratedReport, error) {
	var reports []model.GeneratedReport
	err := r.DB.Order("created_at DESC").Find(&reports).Error
	return reports, err
}

func (r *ReportRepository) Delete(id uint) (bool, error) {
	res := r.DB.Delete(&model.GeneratedReport{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
