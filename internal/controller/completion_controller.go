package controller

import (
	"errors"

	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CompletionController struct {
	CompletionService *service.CompletionService
}

func NewCompletionController(completionService *service.CompletionService) *CompletionController {
	return &CompletionController{CompletionService: completionService}
}

// MarkComplete godoc
// @Summary Mark a lesson complete for the authenticated student
// @Description Idempotent; marking twice keeps the original completion time.
// @Tags completions
// @Produce json
// @Param id path int true "lesson id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id}/complete [post]
func (c *CompletionController) MarkComplete(ctx *gin.Context) {
	lessonID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	progress, err := c.CompletionService.MarkLessonComplete(claims.UserID, lessonID)
	if err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"completed": true, "courseProgress": progress})
}

// UnmarkComplete godoc
// @Summary Remove a lesson completion for the authenticated student
// @Tags completions
// @Produce json
// @Param id path int true "lesson id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id}/complete [delete]
func (c *CompletionController) UnmarkComplete(ctx *gin.Context) {
	lessonID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	progress, err := c.CompletionService.UnmarkLessonComplete(claims.UserID, lessonID)
	if err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"completed": false, "courseProgress": progress})
}

// GetCompletionStatus godoc
// @Summary Check whether the caller completed a lesson
// @Tags completions
// @Produce json
// @Param id path int true "lesson id"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id}/complete [get]
func (c *CompletionController) GetCompletionStatus(ctx *gin.Context) {
	lessonID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	completed, err := c.CompletionService.IsCompleted(claims.UserID, lessonID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"completed": completed})
}

// ListCompleted godoc
// @Summary List everything the caller has completed, most recent first
// @Tags completions
// @Produce json
// @Success 200 {object} util.Response{data=[]model.CompletedLesson}
// @Router /api/completions [get]
func (c *CompletionController) ListCompleted(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	lessons, err := c.CompletionService.GetCompletedLessons(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// ListCourseCompletions godoc
// @Summary List every student's completions within one course
// @Tags completions
// @Produce json
// @Param id path int true "course id"
// @Success 200 {object} util.Response{data=[]model.CompletedLesson}
// @Router /api/instructor/courses/{id}/completions [get]
func (c *CompletionController) ListCourseCompletions(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	lessons, err := c.CompletionService.GetAllCompletedLessonsByCourse(courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

func (c *CompletionController) replyError(ctx *gin.Context, err error) {
	if errors.Is(err, util.ErrEnrollmentNotFound) {
		util.NotFound(ctx, "not enrolled in the course containing this lesson")
		return
	}
	util.LogInternalError(ctx, err)
}
