package controller

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService *service.LessonService
}

func NewLessonController(lessonService *service.LessonService) *LessonController {
	return &LessonController{LessonService: lessonService}
}

// swagger:model LessonRequest
type LessonRequest struct {
	ModuleID    uint   `json:"moduleId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content"`
	ContentType string `json:"contentType" binding:"omitempty,oneof=video text quiz assignment"`
	ContentURL  string `json:"contentUrl"`
	Duration    int    `json:"duration"`
	OrderNum    int    `json:"orderNum"`
}

// CreateLesson godoc
// @Summary Create a lesson within a module
// @Tags lessons
// @Accept json
// @Produce json
// @Param body body LessonRequest true "lesson"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response
// @Router /api/instructor/lessons [post]
func (c *LessonController) CreateLesson(ctx *gin.Context) {
	var req LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	lesson := &model.Lesson{
		ModuleID:    req.ModuleID,
		Title:       req.Title,
		Content:     req.Content,
		ContentType: model.LessonContentType(req.ContentType),
		ContentURL:  req.ContentURL,
		Duration:    req.Duration,
		OrderNum:    req.OrderNum,
	}
	if lesson.ContentType == "" {
		lesson.ContentType = model.LessonText
	}
	if err := c.LessonService.CreateLesson(lesson); err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// GetLesson godoc
// @Summary Get one lesson
// @Tags lessons
// @Produce json
// @Param id path int true "lesson id"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	lesson, err := c.LessonService.GetLesson(id)
	if err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// ListByModule godoc
// @Summary List a module's lessons in order
// @Tags lessons
// @Produce json
// @Param id path int true "module id"
// @Success 200 {object} util.Response{data=[]model.Lesson}
// @Router /api/modules/{id}/lessons [get]
func (c *LessonController) ListByModule(ctx *gin.Context) {
	moduleID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	lessons, err := c.LessonService.ListByModule(moduleID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// UpdateLesson godoc
// @Summary Update a lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "lesson id"
// @Param body body LessonRequest true "lesson"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response
// @Router /api/instructor/lessons/{id} [put]
func (c *LessonController) UpdateLesson(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	lesson, err := c.LessonService.GetLesson(id)
	if err != nil {
		c.replyError(ctx, err)
		return
	}
	var req LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	lesson.Title = req.Title
	lesson.Content = req.Content
	if req.ContentType != "" {
		lesson.ContentType = model.LessonContentType(req.ContentType)
	}
	lesson.ContentURL = req.ContentURL
	lesson.Duration = req.Duration
	lesson.OrderNum = req.OrderNum
	if err := c.LessonService.UpdateLesson(lesson); err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// DeleteLesson godoc
// @Summary Delete a lesson with its quizzes and assignments
// @Tags lessons
// @Produce json
// @Param id path int true "lesson id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/instructor/lessons/{id} [delete]
func (c *LessonController) DeleteLesson(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.LessonService.DeleteLesson(id); err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "lesson deleted"})
}

func (c *LessonController) replyError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrLessonNotFound), errors.Is(err, util.ErrModuleNotFound):
		util.NotFound(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
