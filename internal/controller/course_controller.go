package controller

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// swagger:model CreateCourseRequest
type CreateCourseRequest struct {
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description"`
	CategoryID   *uint   `json:"categoryId"`
	ThumbnailURL string  `json:"thumbnailUrl"`
	Price        float64 `json:"price" binding:"gte=0"`
}

// CreateCourse godoc
// @Summary Create a course owned by the authenticated instructor
// @Tags courses
// @Accept json
// @Produce json
// @Param body body CreateCourseRequest true "course"
// @Success 201 {object} util.Response{data=model.Course}
// @Router /api/instructor/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	course := &model.Course{
		Title:        req.Title,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		InstructorID: claims.UserID,
		ThumbnailURL: req.ThumbnailURL,
		Price:        req.Price,
	}
	if err := c.CourseService.CreateCourse(course); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// ListCourses godoc
// @Summary List published courses
// @Tags courses
// @Produce json
// @Success 200 {object} util.Response{data=[]model.CourseDetail}
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.CourseService.ListCourses(true)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// ListAllCourses godoc
// @Summary List every course including drafts
// @Tags courses
// @Produce json
// @Success 200 {object} util.Response{data=[]model.CourseDetail}
// @Router /api/admin/courses [get]
func (c *CourseController) ListAllCourses(ctx *gin.Context) {
	courses, err := c.CourseService.ListCourses(false)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// ListMyCourses godoc
// @Summary List the authenticated instructor's courses
// @Tags courses
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/instructor/courses [get]
func (c *CourseController) ListMyCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courses, err := c.CourseService.ListByInstructor(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary Get one course with instructor and category names
// @Tags courses
// @Produce json
// @Param id path int true "course id"
// @Success 200 {object} util.Response{data=model.CourseDetail}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	course, err := c.CourseService.GetCourse(id)
	if err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// GetCurriculum godoc
// @Summary Get a course's modules and lessons in order
// @Tags courses
// @Produce json
// @Param id path int true "course id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/curriculum [get]
func (c *CourseController) GetCurriculum(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	curriculum, err := c.CourseService.GetCurriculum(id)
	if err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, curriculum)
}

// UpdateCourse godoc
// @Summary Update a course the caller owns
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "course id"
// @Param body body model.CourseUpdate true "fields to change"
// @Success 200 {object} util.Response{data=model.CourseDetail}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/instructor/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if !c.requireOwnership(ctx, id) {
		return
	}
	var update model.CourseUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	course, err := c.CourseService.UpdateCourse(id, update)
	if err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary Delete a course and everything under it
// @Tags courses
// @Produce json
// @Param id path int true "course id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/instructor/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if !c.requireOwnership(ctx, id) {
		return
	}
	if err := c.CourseService.DeleteCourse(id); err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "course deleted"})
}

// requireOwnership rejects instructors touching courses they do not own.
// Admins pass.
func (c *CourseController) requireOwnership(ctx *gin.Context, courseID uint) bool {
	claims := util.GetUserFromContext(ctx)
	if claims.Role == model.Admin {
		return true
	}
	ownerID, err := c.CourseService.GetCourseOwner(courseID)
	if err != nil {
		c.replyError(ctx, err)
		return false
	}
	if ownerID != claims.UserID {
		util.Forbidden(ctx, "you do not own this course")
		return false
	}
	return true
}

func (c *CourseController) replyError(ctx *gin.Context, err error) {
	if errors.Is(err, util.ErrCourseNotFound) {
		util.NotFound(ctx, err.Error())
		return
	}
	util.LogInternalError(ctx, err)
}
