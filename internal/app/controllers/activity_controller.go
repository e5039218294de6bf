package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studenthub/backend/internal/app/models/dto"
	"github.com/studenthub/backend/internal/app/services"
	"github.com/studenthub/backend/internal/middleware"
	"github.com/studenthub/backend/internal/pkg/helpers"
)

// ActivityController handles activity submission and review endpoints
type ActivityController struct {
	activityService services.ActivityService
}

// NewActivityController creates a new ActivityController
func NewActivityController(activityService services.ActivityService) *ActivityController {
	return &ActivityController{activityService: activityService}
}

// List returns activities visible to the caller
// @Summary List activities
// @Description Students see their own submissions; faculty and admin see all
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(pending, approved, rejected)
// @Param type query string false "Filter by activity type"
// @Param page query int false "1-based page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ActivityListResponse}
// @Router /activities [get]
func (c *ActivityController) List(ctx *gin.Context) {
	call, ok := caller(ctx)
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.activityService.List(ctx.Request.Context(), call, services.ListActivitiesInput{
		Status: ctx.Query("status"),
		Type:   ctx.Query("type"),
		Page:   page,
		Size:   size,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// ListForUser returns one user's activities
// @Summary List a user's activities
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.ActivityListResponse}
// @Failure 403 {object} dto.APIResponse "Permission denied"
// @Router /activities/user/{userId} [get]
func (c *ActivityController) ListForUser(ctx *gin.Context) {
	call, ok := caller(ctx)
	if !ok {
		return
	}
	userID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.activityService.ListForUser(ctx.Request.Context(), call, userID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// Get returns a single activity
// @Summary Get an activity
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param id path int true "Activity ID"
// @Success 200 {object} dto.APIResponse{data=dto.ActivityResponse}
// @Failure 404 {object} dto.APIResponse "Activity not found"
// @Router /activities/{id} [get]
func (c *ActivityController) Get(ctx *gin.Context) {
	call, ok := caller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.activityService.Get(ctx.Request.Context(), call, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// Create submits a new activity
// @Summary Submit an activity
// @Description Creates a pending activity owned by the caller
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateActivityRequest true "Activity data"
// @Success 201 {object} dto.APIResponse{data=dto.ActivityResponse}
// @Failure 400 {object} dto.APIResponse "Invalid request data"
// @Router /activities [post]
func (c *ActivityController) Create(ctx *gin.Context) {
	call, ok := caller(ctx)
	if !ok {
		return
	}

	var req dto.CreateActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.activityService.Create(ctx.Request.Context(), call.ID, &req, nil)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// CreateWithFile submits a new activity with a certificate upload
// @Summary Submit an activity with a certificate
// @Description Multipart submission; accepts pdf, png, jpg or jpeg up to 10MB
// @Tags activities
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param type formData string true "Activity type"
// @Param description formData string true "Description"
// @Param date formData string true "Activity date (YYYY-MM-DD)"
// @Param certificate formData file false "Certificate file"
// @Success 201 {object} dto.APIResponse{data=dto.ActivityResponse}
// @Failure 400 {object} dto.APIResponse "Invalid request or file"
// @Router /activities/with-file [post]
func (c *ActivityController) CreateWithFile(ctx *gin.Context) {
	call, ok := caller(ctx)
	if !ok {
		return
	}

	var req dto.CreateActivityRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	// The certificate is optional even on the with-file route.
	fileHeader, err := ctx.FormFile("certificate")
	if err != nil && err != http.ErrMissingFile {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.activityService.Create(ctx.Request.Context(), call.ID, &req, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// UpdateStatus approves or rejects an activity
// @Summary Decide on an activity
// @Description Faculty/admin approve or reject a submission and assign credits
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Activity ID"
// @Param request body dto.UpdateStatusRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=dto.ActivityResponse}
// @Failure 400 {object} dto.APIResponse "Invalid status"
// @Failure 403 {object} dto.APIResponse "Permission denied"
// @Failure 404 {object} dto.APIResponse "Activity not found"
// @Router /activities/{id}/status [patch]
func (c *ActivityController) UpdateStatus(ctx *gin.Context) {
	call, ok := caller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.activityService.Decide(ctx.Request.Context(), call, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// Delete removes an activity
// @Summary Delete an activity
// @Description Owners delete their own submissions; faculty/admin delete any
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param id path int true "Activity ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.APIResponse "Permission denied"
// @Failure 404 {object} dto.APIResponse "Activity not found"
// @Router /activities/{id} [delete]
func (c *ActivityController) Delete(ctx *gin.Context) {
	call, ok := caller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.activityService.Delete(ctx.Request.Context(), call, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "activity deleted"}})
}
