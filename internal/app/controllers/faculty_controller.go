package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studenthub/backend/internal/app/models/dto"
	"github.com/studenthub/backend/internal/app/services"
	"github.com/studenthub/backend/internal/middleware"
	"github.com/studenthub/backend/internal/pkg/helpers"
)

// FacultyController handles reviewer endpoints: bulk decisions, the
// dashboard, the pending queue and reports
type FacultyController struct {
	facultyService  services.FacultyService
	activityService services.ActivityService
}

// NewFacultyController creates a new FacultyController
func NewFacultyController(facultyService services.FacultyService, activityService services.ActivityService) *FacultyController {
	return &FacultyController{
		facultyService:  facultyService,
		activityService: activityService,
	}
}

// BulkAction applies one decision to a batch of activities
// @Summary Bulk approve or reject
// @Description Missing ids are skipped; the response reports the modified count
// @Tags faculty
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkActionRequest true "Batch decision"
// @Success 200 {object} dto.APIResponse{data=dto.BulkActionResponse}
// @Failure 400 {object} dto.APIResponse "Invalid action"
// @Failure 403 {object} dto.APIResponse "Permission denied"
// @Router /faculty/bulk-action [patch]
func (c *FacultyController) BulkAction(ctx *gin.Context) {
	call, ok := caller(ctx)
	if !ok {
		return
	}

	var req dto.BulkActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.activityService.BulkDecide(ctx.Request.Context(), call, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// Dashboard returns institution-wide statistics
// @Summary Reviewer dashboard
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.FacultyDashboardResponse}
// @Failure 403 {object} dto.APIResponse "Permission denied"
// @Router /faculty/dashboard [get]
func (c *FacultyController) Dashboard(ctx *gin.Context) {
	call, ok := caller(ctx)
	if !ok {
		return
	}

	resp, err := c.facultyService.Dashboard(ctx.Request.Context(), call)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// PendingActivities returns the review queue
// @Summary Pending review queue
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Param department query string false "Filter by the student's department"
// @Param type query string false "Filter by activity type"
// @Param page query int false "1-based page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ActivityListResponse}
// @Failure 403 {object} dto.APIResponse "Permission denied"
// @Router /faculty/pending-activities [get]
func (c *FacultyController) PendingActivities(ctx *gin.Context) {
	call, ok := caller(ctx)
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.facultyService.PendingActivities(ctx.Request.Context(), call, services.PendingQueueInput{
		Department: ctx.Query("department"),
		Type:       ctx.Query("type"),
		Page:       page,
		Size:       size,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// Reports returns the approved-activity report for a date range
// @Summary Activity report
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=dto.ReportResponse}
// @Failure 403 {object} dto.APIResponse "Permission denied"
// @Router /faculty/reports [get]
func (c *FacultyController) Reports(ctx *gin.Context) {
	call, ok := caller(ctx)
	if !ok {
		return
	}
	from, to, ok := reportRange(ctx)
	if !ok {
		return
	}

	resp, err := c.facultyService.Report(ctx.Request.Context(), call, from, to)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// ExportReport returns the report as an Excel workbook
// @Summary Export activity report
// @Tags faculty
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Success 200 {file} binary "xlsx workbook"
// @Failure 403 {object} dto.APIResponse "Permission denied"
// @Router /faculty/reports/export [get]
func (c *FacultyController) ExportReport(ctx *gin.Context) {
	call, ok := caller(ctx)
	if !ok {
		return
	}
	from, to, ok := reportRange(ctx)
	if !ok {
		return
	}

	data, err := c.facultyService.ExportReport(ctx.Request.Context(), call, from, to)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filename := "activity-report-" + time.Now().Format(helpers.DateLayout) + ".xlsx"
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// reportRange parses the optional from/to query parameters.
func reportRange(ctx *gin.Context) (from, to *time.Time, ok bool) {
	parse := func(name string) (*time.Time, bool) {
		value := ctx.Query(name)
		if value == "" {
			return nil, true
		}
		t, err := helpers.ParseDate(value)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid date").
				WithField(name).WithDetails("dates must be formatted YYYY-MM-DD")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return nil, false
		}
		return &t, true
	}

	if from, ok = parse("from"); !ok {
		return nil, nil, false
	}
	if to, ok = parse("to"); !ok {
		return nil, nil, false
	}
	return from, to, true
}
