package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReportService produces CSV exports, stores them through the storage
// provider, and records each file in generated_reports so the listing
// survives restarts.
type ReportService struct {
	ReportRepo  *repository.ReportRepository
	Enrollments *repository.EnrollmentRepository
	Results     *repository.QuizResultRepository
	Storage     *StorageService
}

func NewReportService(
	reportRepo *repository.ReportRepository,
	enrollments *repository.EnrollmentRepository,
	results *repository.QuizResultRepository,
	storage *StorageService,
) *ReportService {
	return &ReportService{
		ReportRepo:  reportRepo,
		Enrollments: enrollments,
		Results:     results,
		Storage:     storage,
	}
}

// GenerateEnrollmentReport exports every enrollment with user and course
// identity plus current progress.
func (s *ReportService) GenerateEnrollmentReport(ctx context.Context, generatedBy uint) (*model.GeneratedReport, error) {
	rows, err := s.Enrollments.ListAll()
	if err != nil {
		return nil, err
	}
	records := [][]string{{"user_name", "user_email", "course_title", "progress", "enrolled_at", "completed_at"}}
	for _, row := range rows {
		completedAt := ""
		if row.CompletedAt != nil {
			completedAt = row.CompletedAt.Format(time.RFC3339)
		}
		records = append(records, []string{
			row.UserName,
			row.UserEmail,
			row.CourseTitle,
			strconv.Itoa(row.Progress),
			row.EnrolledAt.Format(time.RFC3339),
			completedAt,
		})
	}
	return s.store(ctx, "enrollments", records, generatedBy)
}

// GenerateCourseProgressReport exports per-student progress for one course.
func (s *ReportService) GenerateCourseProgressReport(ctx context.Context, courseID, generatedBy uint) (*model.GeneratedReport, error) {
	rows, err := s.Enrollments.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}
	records := [][]string{{"user_name", "user_email", "progress", "enrolled_at", "completed_at"}}
	for _, row := range rows {
		completedAt := ""
		if row.CompletedAt != nil {
			completedAt = row.CompletedAt.Format(time.RFC3339)
		}
		records = append(records, []string{
			row.UserName,
			row.UserEmail,
			strconv.Itoa(row.Progress),
			row.EnrolledAt.Format(time.RFC3339),
			completedAt,
		})
	}
	return s.store(ctx, fmt.Sprintf("course-progress-%d", courseID), records, generatedBy)
}

// GenerateQuizResultsReport exports every attempt on one quiz.
func (s *ReportService) GenerateQuizResultsReport(ctx context.Context, quizID, generatedBy uint) (*model.GeneratedReport, error) {
	rows, err := s.Results.ListByQuiz(quizID)
	if err != nil {
		return nil, err
	}
	records := [][]string{{"user_name", "user_email", "score", "attempt_number", "completed_at"}}
	for _, row := range rows {
		records = append(records, []string{
			row.UserName,
			row.UserEmail,
			strconv.Itoa(row.Score),
			strconv.Itoa(row.AttemptNumber),
			row.CompletedAt.Format(time.RFC3339),
		})
	}
	return s.store(ctx, fmt.Sprintf("quiz-results-%d", quizID), records, generatedBy)
}

func (s *ReportService) GetReport(id uint) (*model.GeneratedReport, error) {
	report, err := s.ReportRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrReportNotFound
		}
		return nil, err
	}
	return report, nil
}

func (s *ReportService) ListReports() ([]model.GeneratedReport, error) {
	return s.ReportRepo.List()
}

// DeleteReport removes the record and the stored file best effort.
func (s *ReportService) DeleteReport(ctx context.Context, id uint) error {
	report, err := s.GetReport(id)
	if err != nil {
		return err
	}
	deleted, err := s.ReportRepo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return util.ErrReportNotFound
	}
	if report.ObjectName != "" {
		if err := s.Storage.Delete(ctx, report.ObjectName); err != nil {
			logger.Log.Warn("failed to remove report file",
				zap.String("object", report.ObjectName), zap.Error(err))
		}
	}
	return nil
}

func (s *ReportService) store(ctx context.Context, reportType string, records [][]string, generatedBy uint) (*model.GeneratedReport, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(records); err != nil {
		return nil, err
	}
	objectName := ObjectName("reports", reportType+".csv")
	url, err := s.Storage.Upload(ctx, objectName, &buf, int64(buf.Len()), "text/csv")
	if err != nil {
		return nil, err
	}
	report := &model.GeneratedReport{
		ReportType:  reportType,
		FileURL:     url,
		ObjectName:  objectName,
		RowCount:    len(records) - 1,
		GeneratedBy: generatedBy,
	}
	if err := s.ReportRepo.Create(report); err != nil {
		return nil, err
	}
	return report, nil
}
