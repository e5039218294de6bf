package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/studenthub/backend/internal/app/models/dto"
	"github.com/studenthub/backend/internal/app/services"
	"github.com/studenthub/backend/internal/middleware"
	"github.com/studenthub/backend/internal/pkg/helpers"
)

// StudentController handles student profile, directory, dashboard and
// leaderboard endpoints
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// GetOwnProfile returns the caller's profile with statistics
// @Summary Own student profile
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentProfileResponse}
// @Router /students/profile [get]
func (c *StudentController) GetOwnProfile(ctx *gin.Context) {
	call, ok := caller(ctx)
	if !ok {
		return
	}

	resp, err := c.studentService.GetProfile(ctx.Request.Context(), call, call.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// GetProfile returns a student's profile with statistics
// @Summary Student profile by id
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student user ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentProfileResponse}
// @Failure 403 {object} dto.APIResponse "Permission denied"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Router /students/profile/{id} [get]
func (c *StudentController) GetProfile(ctx *gin.Context) {
	call, ok := caller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.studentService.GetProfile(ctx.Request.Context(), call, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// UpdateProfile updates the caller's display attributes
// @Summary Update own profile
// @Description Changes name, department and year; identity fields stay fixed
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile data"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Router /students/profile [put]
func (c *StudentController) UpdateProfile(ctx *gin.Context) {
	call, ok := caller(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.studentService.UpdateProfile(ctx.Request.Context(), call.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// List returns the student directory
// @Summary Student directory
// @Description Paginated student listing with per-student activity totals
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param department query string false "Filter by department"
// @Param year query int false "Filter by study year"
// @Param search query string false "Name search"
// @Param page query int false "1-based page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.StudentListResponse}
// @Failure 403 {object} dto.APIResponse "Permission denied"
// @Router /students [get]
func (c *StudentController) List(ctx *gin.Context) {
	call, ok := caller(ctx)
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	input := services.ListStudentsInput{
		Department: ctx.Query("department"),
		Search:     ctx.Query("search"),
		Page:       page,
		Size:       size,
	}
	if yearStr := ctx.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid year").WithField("year")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		input.Year = &year
	}

	resp, err := c.studentService.ListStudents(ctx.Request.Context(), call, input)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// Dashboard returns the caller's dashboard
// @Summary Student dashboard
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentDashboardResponse}
// @Router /students/dashboard [get]
func (c *StudentController) Dashboard(ctx *gin.Context) {
	call, ok := caller(ctx)
	if !ok {
		return
	}

	resp, err := c.studentService.Dashboard(ctx.Request.Context(), call.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// Leaderboard returns the ranked student list
// @Summary Leaderboard
// @Description Students ranked by approved credits, ties broken by approved count
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param department query string false "Scope to a department"
// @Param limit query int false "Top-N cutoff" default(10)
// @Success 200 {object} dto.APIResponse{data=[]dto.LeaderboardEntry}
// @Router /students/leaderboard [get]
func (c *StudentController) Leaderboard(ctx *gin.Context) {
	if _, ok := caller(ctx); !ok {
		return
	}

	limit := 0
	if limitStr := ctx.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid limit").WithField("limit")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		limit = parsed
	}

	resp, err := c.studentService.Leaderboard(ctx.Request.Context(), ctx.Query("department"), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// Delete removes a student account
// @Summary Delete a student
// @Description Admin only; removes the account, its activities and certificate files
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student user ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.APIResponse "Permission denied"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Router /students/{id} [delete]
func (c *StudentController) Delete(ctx *gin.Context) {
	call, ok := caller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx.Request.Context(), call, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "student deleted"}})
}
