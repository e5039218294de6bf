package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studenthub/backend/internal/app/models/dto"
	"github.com/studenthub/backend/internal/app/services"
	"github.com/studenthub/backend/internal/middleware"
)

// PortfolioController handles portfolio endpoints
type PortfolioController struct {
	portfolioService services.PortfolioService
}

// NewPortfolioController creates a new PortfolioController
func NewPortfolioController(portfolioService services.PortfolioService) *PortfolioController {
	return &PortfolioController{portfolioService: portfolioService}
}

// GetOwn returns the caller's portfolio data
// @Summary Own portfolio
// @Description Approved activities grouped by type with summary totals
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.PortfolioResponse}
// @Router /students/portfolio [get]
func (c *PortfolioController) GetOwn(ctx *gin.Context) {
	call, ok := caller(ctx)
	if !ok {
		return
	}

	resp, err := c.portfolioService.Build(ctx.Request.Context(), call, call.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// Get returns a student's portfolio data
// @Summary Portfolio by student id
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student user ID"
// @Success 200 {object} dto.APIResponse{data=dto.PortfolioResponse}
// @Failure 403 {object} dto.APIResponse "Permission denied"
// @Failure 404 {object} dto.APIResponse "Student not found"
// @Router /students/portfolio/{id} [get]
func (c *PortfolioController) Get(ctx *gin.Context) {
	call, ok := caller(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.portfolioService.Build(ctx.Request.Context(), call, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// generateRequest optionally targets another student's portfolio.
type generateRequest struct {
	StudentID *int64 `json:"studentId"`
}

// Generate renders a portfolio as a PDF document
// @Summary Generate portfolio PDF
// @Description Renders the verified achievement portfolio; reviewers may target any student
// @Tags portfolio
// @Accept json
// @Produce application/pdf
// @Security BearerAuth
// @Param request body generateRequest false "Target student (defaults to the caller)"
// @Success 200 {file} binary "PDF document"
// @Failure 403 {object} dto.APIResponse "Permission denied"
// @Router /portfolio/generate [post]
func (c *PortfolioController) Generate(ctx *gin.Context) {
	call, ok := caller(ctx)
	if !ok {
		return
	}

	target := call.ID
	var req generateRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			middleware.HandleBindingError(ctx, err)
			return
		}
		if req.StudentID != nil {
			target = *req.StudentID
		}
	}

	data, err := c.portfolioService.GeneratePDF(ctx.Request.Context(), call, target)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="portfolio.pdf"`)
	ctx.Data(http.StatusOK, "application/pdf", data)
}
