package controller

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ModuleController struct {
	ModuleService *service.ModuleService
}

func NewModuleController(moduleService *service.ModuleService) *ModuleController {
	return &ModuleController{ModuleService: moduleService}
}

// swagger:model ModuleRequest
type ModuleRequest struct {
	CourseID    uint   `json:"courseId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	OrderNum    int    `json:"orderNum"`
}

// CreateModule godoc
// @Summary Create a module within a course
// @Tags modules
// @Accept json
// @Produce json
// @Param body body ModuleRequest true "module"
// @Success 201 {object} util.Response{data=model.Module}
// @Failure 404 {object} util.Response
// @Router /api/instructor/modules [post]
func (c *ModuleController) CreateModule(ctx *gin.Context) {
	var req ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	module := &model.Module{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		OrderNum:    req.OrderNum,
	}
	if err := c.ModuleService.CreateModule(module); err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Created(ctx, module)
}

// ListByCourse godoc
// @Summary List a course's modules in order
// @Tags modules
// @Produce json
// @Param id path int true "course id"
// @Success 200 {object} util.Response{data=[]model.Module}
// @Router /api/courses/{id}/modules [get]
func (c *ModuleController) ListByCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	modules, err := c.ModuleService.ListByCourse(courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, modules)
}

// UpdateModule godoc
// @Summary Update a module
// @Tags modules
// @Accept json
// @Produce json
// @Param id path int true "module id"
// @Param body body ModuleRequest true "module"
// @Success 200 {object} util.Response{data=model.Module}
// @Failure 404 {object} util.Response
// @Router /api/instructor/modules/{id} [put]
func (c *ModuleController) UpdateModule(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	module, err := c.ModuleService.GetModule(id)
	if err != nil {
		c.replyError(ctx, err)
		return
	}
	var req ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	module.Title = req.Title
	module.Description = req.Description
	module.OrderNum = req.OrderNum
	if err := c.ModuleService.UpdateModule(module); err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

// DeleteModule godoc
// @Summary Delete a module with its lessons
// @Tags modules
// @Produce json
// @Param id path int true "module id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/instructor/modules/{id} [delete]
func (c *ModuleController) DeleteModule(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.ModuleService.DeleteModule(id); err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "module deleted"})
}

func (c *ModuleController) replyError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrModuleNotFound), errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
