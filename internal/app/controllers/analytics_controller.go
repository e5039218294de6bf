package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studenthub/backend/internal/app/models/dto"
	"github.com/studenthub/backend/internal/app/services"
	"github.com/studenthub/backend/internal/middleware"
)

// AnalyticsController handles analytics endpoints
type AnalyticsController struct {
	analyticsService services.AnalyticsService
}

// NewAnalyticsController creates a new AnalyticsController
func NewAnalyticsController(analyticsService services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analyticsService: analyticsService}
}

// UserStats returns one user's activity aggregates
// @Summary Per-user analytics
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserAnalyticsResponse}
// @Failure 403 {object} dto.APIResponse "Permission denied"
// @Router /activities/analytics/{userId} [get]
func (c *AnalyticsController) UserStats(ctx *gin.Context) {
	call, ok := caller(ctx)
	if !ok {
		return
	}
	userID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}

	resp, err := c.analyticsService.UserStats(ctx.Request.Context(), call, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// Advanced returns the caller's time-series analytics
// @Summary Advanced analytics
// @Description Month-bucket timeline and rate heuristics over a 3, 6 or 12 month window
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param timeRange query string false "Window" Enums(3months, 6months, 1year) default(6months)
// @Success 200 {object} dto.APIResponse{data=dto.AdvancedAnalyticsResponse}
// @Router /analytics/advanced [get]
func (c *AnalyticsController) Advanced(ctx *gin.Context) {
	call, ok := caller(ctx)
	if !ok {
		return
	}

	resp, err := c.analyticsService.Advanced(ctx.Request.Context(), call.ID, ctx.DefaultQuery("timeRange", "6months"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}
