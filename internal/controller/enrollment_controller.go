package controller

import (
	"errors"

	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
	CompletionService *service.CompletionService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService, completionService *service.CompletionService) *EnrollmentController {
	return &EnrollmentController{
		EnrollmentService: enrollmentService,
		CompletionService: completionService,
	}
}

// Enroll godoc
// @Summary Enroll the authenticated student in a course
// @Tags enrollments
// @Produce json
// @Param id path int true "course id"
// @Success 201 {object} util.Response{data=model.Enrollment}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/courses/{id}/enroll [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	enrollment, err := c.EnrollmentService.Enroll(claims.UserID, courseID)
	if err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Created(ctx, enrollment)
}

// Unenroll godoc
// @Summary Withdraw the authenticated student from a course
// @Tags enrollments
// @Produce json
// @Param id path int true "course id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/enroll [delete]
func (c *EnrollmentController) Unenroll(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	if err := c.EnrollmentService.Unenroll(claims.UserID, courseID); err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "unenrolled"})
}

// ListMyEnrollments godoc
// @Summary List the authenticated student's enrollments with progress
// @Tags enrollments
// @Produce json
// @Success 200 {object} util.Response{data=[]model.EnrollmentWithCourse}
// @Router /api/enrollments [get]
func (c *EnrollmentController) ListMyEnrollments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	enrollments, err := c.EnrollmentService.ListByUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}

// GetProgress godoc
// @Summary Get the caller's progress in one course with completed lessons
// @Tags enrollments
// @Produce json
// @Param id path int true "course id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/progress [get]
func (c *EnrollmentController) GetProgress(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	enrollment, err := c.EnrollmentService.GetByUserAndCourse(claims.UserID, courseID)
	if err != nil {
		c.replyError(ctx, err)
		return
	}
	completed, err := c.CompletionService.GetCompletedLessonsByCourse(claims.UserID, courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"enrollment":       enrollment,
		"completedLessons": completed,
	})
}

// ListCourseEnrollments godoc
// @Summary List a course's enrollments
// @Tags enrollments
// @Produce json
// @Param id path int true "course id"
// @Success 200 {object} util.Response{data=[]model.EnrollmentWithUser}
// @Router /api/instructor/courses/{id}/enrollments [get]
func (c *EnrollmentController) ListCourseEnrollments(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	enrollments, err := c.EnrollmentService.ListByCourse(courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}

// ListAllEnrollments godoc
// @Summary List every enrollment in the system
// @Tags enrollments
// @Produce json
// @Success 200 {object} util.Response{data=[]model.EnrollmentWithUser}
// @Router /api/admin/enrollments [get]
func (c *EnrollmentController) ListAllEnrollments(ctx *gin.Context) {
	enrollments, err := c.EnrollmentService.ListAll()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}

func (c *EnrollmentController) replyError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound), errors.Is(err, util.ErrNotEnrolled):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrAlreadyEnrolled):
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
