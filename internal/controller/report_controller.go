package controller

import (
	"errors"

	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// GenerateEnrollmentReport godoc
// @Summary Export all enrollments as CSV
// @Tags reports
// @Produce json
// @Success 201 {object} util.Response{data=model.GeneratedReport}
// @Router /api/admin/reports/enrollments [post]
func (c *ReportController) GenerateEnrollmentReport(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	report, err := c.ReportService.GenerateEnrollmentReport(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, report)
}

// GenerateCourseProgressReport godoc
// @Summary Export per-student progress for one course as CSV
// @Tags reports
// @Produce json
// @Param id path int true "course id"
// @Success 201 {object} util.Response{data=model.GeneratedReport}
// @Router /api/admin/reports/courses/{id}/progress [post]
func (c *ReportController) GenerateCourseProgressReport(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	report, err := c.ReportService.GenerateCourseProgressReport(ctx.Request.Context(), courseID, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, report)
}

// GenerateQuizResultsReport godoc
// @Summary Export every attempt on one quiz as CSV
// @Tags reports
// @Produce json
// @Param id path int true "quiz id"
// @Success 201 {object} util.Response{data=model.GeneratedReport}
// @Router /api/admin/reports/quizzes/{id}/results [post]
func (c *ReportController) GenerateQuizResultsReport(ctx *gin.Context) {
	quizID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	report, err := c.ReportService.GenerateQuizResultsReport(ctx.Request.Context(), quizID, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, report)
}

// ListReports godoc
// @Summary List generated reports, newest first
// @Tags reports
// @Produce json
// @Success 200 {object} util.Response{data=[]model.GeneratedReport}
// @Router /api/admin/reports [get]
func (c *ReportController) ListReports(ctx *gin.Context) {
	reports, err := c.ReportService.ListReports()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, reports)
}

// GetReport godoc
// @Summary Get one generated report record
// @Tags reports
// @Produce json
// @Param id path int true "report id"
// @Success 200 {object} util.Response{data=model.GeneratedReport}
// @Failure 404 {object} util.Response
// @Router /api/admin/reports/{id} [get]
func (c *ReportController) GetReport(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	report, err := c.ReportService.GetReport(id)
	if err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// DeleteReport godoc
// @Summary Delete a generated report and its stored file
// @Tags reports
// @Produce json
// @Param id path int true "report id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/reports/{id} [delete]
func (c *ReportController) DeleteReport(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.ReportService.DeleteReport(ctx.Request.Context(), id); err != nil {
		c.replyError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "report deleted"})
}

func (c *ReportController) replyError(ctx *gin.Context, err error) {
	if errors.Is(err, util.ErrReportNotFound) {
		util.NotFound(ctx, err.Error())
		return
	}
	util.LogInternalError(ctx, err)
}
