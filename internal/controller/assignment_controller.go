package controller

import (
	"errors"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	AssignmentService *service.AssignmentService
}

func NewAssignmentController(assignmentService *service.AssignmentService) *AssignmentController {
	return &AssignmentController{AssignmentService: assignmentService}
}

// swagger:model AssignmentRequest
type AssignmentRequest struct {
	LessonID    uint       `json:"lessonId" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline"`
}

// CreateAssignment godoc
// @Summary Create an assignment within a lesson
// @Tags assignments
// @Accept json
// @Produce json
// @Param body body AssignmentRequest true "assignment"
// @Success 201 {object} util.Response{data=model.Assignment}
// @Router /api/instructor/assignments [post]
func (c *AssignmentController) CreateAssignment(ctx *gin.Context) {
	var req AssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	assignment := &model.Assignment{
		LessonID:    req.LessonID,
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
	}
	if err := c.AssignmentService.CreateAssignment(assignment); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, assignment)
}

// GetAssignment godoc
// @Summary Get one assignment with its course context
// @Tags assignments
// @Produce json
// @Param id path int true "assignment id"
// @Success 200 {object} util.Response{data=model.AssignmentDetail}
// @Failure 404 {object} util.Response
// @Router /api/assignments/{id} [get]
func (c *AssignmentController) GetAssignment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	assignment, err := c.AssignmentService.GetAssignment(id)
	if err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, assignment)
}

// ListByLesson godoc
// @Summary List a lesson's assignments
// @Tags assignments
// @Produce json
// @Param id path int true "lesson id"
// @Success 200 {object} util.Response{data=[]model.Assignment}
// @Router /api/lessons/{id}/assignments [get]
func (c *AssignmentController) ListByLesson(ctx *gin.Context) {
	lessonID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	assignments, err := c.AssignmentService.ListByLesson(lessonID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, assignments)
}

// ListMyAssignments godoc
// @Summary List assignments across the instructor's courses
// @Tags assignments
// @Produce json
// @Success 200 {object} util.Response{data=[]model.AssignmentDetail}
// @Router /api/instructor/assignments [get]
func (c *AssignmentController) ListMyAssignments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	assignments, err := c.AssignmentService.ListByInstructor(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, assignments)
}

// UpdateAssignment godoc
// @Summary Update an assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path int true "assignment id"
// @Param body body AssignmentRequest true "assignment"
// @Success 200 {object} util.Response{data=model.Assignment}
// @Failure 404 {object} util.Response
// @Router /api/instructor/assignments/{id} [put]
func (c *AssignmentController) UpdateAssignment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	detail, err := c.AssignmentService.GetAssignment(id)
	if err != nil {
		c.replyError(ctx, err)
		return
	}
	var req AssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	assignment := detail.Assignment
	assignment.Title = req.Title
	assignment.Description = req.Description
	assignment.Deadline = req.Deadline
	if err := c.AssignmentService.UpdateAssignment(&assignment); err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, assignment)
}

// DeleteAssignment godoc
// @Summary Delete an assignment with its submissions
// @Tags assignments
// @Produce json
// @Param id path int true "assignment id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/instructor/assignments/{id} [delete]
func (c *AssignmentController) DeleteAssignment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.AssignmentService.DeleteAssignment(id); err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "assignment deleted"})
}

// Submit godoc
// @Summary Submit work for an assignment
// @Description Accepts multipart form data with one of: a file upload, a
// @Description submissionUrl field, or a content field. Submitting marks
// @Description the lesson complete; resubmitting resets any earlier grade.
// @Tags assignments
// @Accept mpfd
// @Produce json
// @Param id path int true "assignment id"
// @Param file formData file false "submission file"
// @Param submissionUrl formData string false "external URL"
// @Param content formData string false "inline text submission"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/assignments/{id}/submit [post]
func (c *AssignmentController) Submit(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)

	input := service.SubmissionInput{
		URL:     ctx.PostForm("submissionUrl"),
		Content: ctx.PostForm("content"),
	}
	if fileHeader, err := ctx.FormFile("file"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		defer file.Close()
		input.File = file
		input.FileName = fileHeader.Filename
		input.FileSize = fileHeader.Size
		input.ContentType = fileHeader.Header.Get("Content-Type")
	}

	submission, progress, err := c.AssignmentService.Submit(ctx.Request.Context(), claims.UserID, id, input)
	if err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"submission": submission, "courseProgress": progress})
}

// GetMySubmission godoc
// @Summary Get the caller's submission for an assignment
// @Tags assignments
// @Produce json
// @Param id path int true "assignment id"
// @Success 200 {object} util.Response{data=model.AssignmentSubmission}
// @Failure 404 {object} util.Response
// @Router /api/assignments/{id}/submission [get]
func (c *AssignmentController) GetMySubmission(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	submission, err := c.AssignmentService.GetSubmission(claims.UserID, id)
	if err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, submission)
}

// DeleteMySubmission godoc
// @Summary Withdraw the caller's submission
// @Description Removes the stored file and rolls back the lesson completion
// @Description so course progress reflects the withdrawal.
// @Tags assignments
// @Produce json
// @Param id path int true "assignment id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/assignments/{id}/submission [delete]
func (c *AssignmentController) DeleteMySubmission(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	progress, err := c.AssignmentService.DeleteSubmission(ctx.Request.Context(), claims.UserID, id)
	if err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true, "courseProgress": progress})
}

// ListSubmissions godoc
// @Summary List every submission for an assignment
// @Tags assignments
// @Produce json
// @Param id path int true "assignment id"
// @Success 200 {object} util.Response{data=[]model.SubmissionWithUser}
// @Failure 404 {object} util.Response
// @Router /api/instructor/assignments/{id}/submissions [get]
func (c *AssignmentController) ListSubmissions(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	submissions, err := c.AssignmentService.ListSubmissions(id)
	if err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, submissions)
}

// swagger:model GradeSubmissionRequest
type GradeSubmissionRequest struct {
	Grade    int    `json:"grade" binding:"gte=0,lte=100"`
	Feedback string `json:"feedback"`
}

// GradeSubmission godoc
// @Summary Grade a student's submission
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path int true "submission id"
// @Param body body GradeSubmissionRequest true "grade and feedback"
// @Success 200 {object} util.Response{data=model.AssignmentSubmission}
// @Failure 404 {object} util.Response
// @Router /api/instructor/submissions/{id}/grade [put]
func (c *AssignmentController) GradeSubmission(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req GradeSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	submission, err := c.AssignmentService.GradeSubmission(claims.UserID, id, req.Grade, req.Feedback)
	if err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, submission)
}

func (c *AssignmentController) replyError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrAssignmentNotFound), errors.Is(err, util.ErrSubmissionNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrNotEnrolled), errors.Is(err, util.ErrDeadlinePassed):
		util.Forbidden(ctx, err.Error())
	case errors.Is(err, util.ErrEmptySubmission), errors.Is(err, util.ErrInvalidGrade):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
