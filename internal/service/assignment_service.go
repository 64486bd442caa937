package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AssignmentService struct {
	AssignmentRepo *repository.AssignmentRepository
	Enrollments    *repository.EnrollmentRepository
	Storage        *StorageService
	Completions    *CompletionService
}

func NewAssignmentService(
	assignmentRepo *repository.AssignmentRepository,
	enrollments *repository.EnrollmentRepository,
	storage *StorageService,
	completions *CompletionService,
) *AssignmentService {
	return &AssignmentService{
		AssignmentRepo: assignmentRepo,
		Enrollments:    enrollments,
		Storage:        storage,
		Completions:    completions,
	}
}

// SubmissionInput carries one of three submission forms: an uploaded file,
// an external URL, or inline text content.
type SubmissionInput struct {
	File        io.Reader
	FileName    string
	FileSize    int64
	ContentType string
	URL         string
	Content     string
}

func (in SubmissionInput) empty() bool {
	return in.File == nil && in.URL == "" && strings.TrimSpace(in.Content) == ""
}

// Submit records a student's submission and marks the lesson complete.
//
// An upload failure aborts the whole submission; nothing is recorded.
// Resubmitting replaces the previous submission and resets any grade; a
// previously uploaded file is removed from storage best effort.
func (s *AssignmentService) Submit(ctx context.Context, userID, assignmentID uint, input SubmissionInput) (*model.AssignmentSubmission, int, error) {
	detail, err := s.findDetail(assignmentID)
	if err != nil {
		return nil, 0, err
	}
	if input.empty() {
		return nil, 0, util.ErrEmptySubmission
	}
	enrollment, err := s.Enrollments.FindByUserAndCourse(userID, detail.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, util.ErrNotEnrolled
		}
		return nil, 0, err
	}
	if detail.Deadline != nil && time.Now().After(*detail.Deadline) {
		return nil, 0, util.ErrDeadlinePassed
	}

	submissionURL := input.URL
	storedObject := ""
	if input.File != nil {
		objectName := ObjectName(fmt.Sprintf("submissions/%d", assignmentID), input.FileName)
		url, err := s.Storage.Upload(ctx, objectName, input.File, input.FileSize, input.ContentType)
		if err != nil {
			return nil, 0, fmt.Errorf("upload submission file: %w", err)
		}
		submissionURL = url
		storedObject = objectName
	}

	previous, err := s.AssignmentRepo.GetSubmission(assignmentID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, err
	}

	submission := &model.AssignmentSubmission{
		AssignmentID:  assignmentID,
		UserID:        userID,
		SubmissionURL: submissionURL,
		Content:       input.Content,
		StoredObject:  storedObject,
	}
	if err := s.AssignmentRepo.UpsertSubmission(submission); err != nil {
		return nil, 0, err
	}

	if previous != nil && previous.StoredObject != "" && previous.StoredObject != storedObject {
		if err := s.Storage.Delete(ctx, previous.StoredObject); err != nil {
			logger.Log.Warn("failed to remove replaced submission file",
				zap.String("object", previous.StoredObject), zap.Error(err))
		}
	}

	progress, err := s.Completions.CompleteForEnrollment(userID, detail.LessonID, enrollment.ID)
	if err != nil {
		return nil, 0, err
	}
	return submission, progress, nil
}

func (s *AssignmentService) GetSubmission(userID, assignmentID uint) (*model.AssignmentSubmission, error) {
	submission, err := s.AssignmentRepo.GetSubmission(assignmentID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	return submission, nil
}

func (s *AssignmentService) ListSubmissions(assignmentID uint) ([]model.SubmissionWithUser, error) {
	if _, err := s.findDetail(assignmentID); err != nil {
		return nil, err
	}
	return s.AssignmentRepo.ListSubmissions(assignmentID)
}

// DeleteSubmission removes a student's submission, deletes any uploaded
// file best effort, and rolls the lesson completion back so course
// progress reflects the withdrawal. Withdrawal is closed once the
// deadline passes, same as submission.
func (s *AssignmentService) DeleteSubmission(ctx context.Context, userID, assignmentID uint) (int, error) {
	detail, err := s.findDetail(assignmentID)
	if err != nil {
		return 0, err
	}
	if detail.Deadline != nil && time.Now().After(*detail.Deadline) {
		return 0, util.ErrDeadlinePassed
	}
	submission, err := s.AssignmentRepo.GetSubmission(assignmentID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, util.ErrSubmissionNotFound
		}
		return 0, err
	}
	deleted, err := s.AssignmentRepo.DeleteSubmission(assignmentID, userID)
	if err != nil {
		return 0, err
	}
	if !deleted {
		return 0, util.ErrSubmissionNotFound
	}
	if submission.StoredObject != "" {
		if err := s.Storage.Delete(ctx, submission.StoredObject); err != nil {
			logger.Log.Warn("failed to remove submission file",
				zap.String("object", submission.StoredObject), zap.Error(err))
		}
	}
	progress, err := s.Completions.UnmarkLessonComplete(userID, detail.LessonID)
	if err != nil {
		// Withdrawing after unenrolling still deletes the submission.
		if errors.Is(err, util.ErrEnrollmentNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return progress, nil
}

// GradeSubmission records an instructor's grade and feedback.
func (s *AssignmentService) GradeSubmission(graderID, submissionID uint, grade int, feedback string) (*model.AssignmentSubmission, error) {
	if grade < 0 || grade > 100 {
		return nil, util.ErrInvalidGrade
	}
	submission, err := s.AssignmentRepo.FindSubmissionByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	now := time.Now()
	submission.Grade = &grade
	submission.Feedback = feedback
	submission.GradedBy = &graderID
	submission.GradedAt = &now
	if err := s.AssignmentRepo.SaveSubmission(submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *AssignmentService) CreateAssignment(assignment *model.Assignment) error {
	return s.AssignmentRepo.Create(assignment)
}

func (s *AssignmentService) GetAssignment(assignmentID uint) (*model.AssignmentDetail, error) {
	return s.findDetail(assignmentID)
}

func (s *AssignmentService) ListByLesson(lessonID uint) ([]model.Assignment, error) {
	return s.AssignmentRepo.ListByLesson(lessonID)
}

func (s *AssignmentService) ListByInstructor(instructorID uint) ([]model.AssignmentDetail, error) {
	return s.AssignmentRepo.ListByInstructor(instructorID)
}

func (s *AssignmentService) UpdateAssignment(assignment *model.Assignment) error {
	return s.AssignmentRepo.Save(assignment)
}

func (s *AssignmentService) DeleteAssignment(assignmentID uint) error {
	deleted, err := s.AssignmentRepo.Delete(assignmentID)
	if err != nil {
		return err
	}
	if !deleted {
		return util.ErrAssignmentNotFound
	}
	return nil
}

func (s *AssignmentService) findDetail(assignmentID uint) (*model.AssignmentDetail, error) {
	detail, err := s.AssignmentRepo.FindDetail(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}
	return detail, nil
}
