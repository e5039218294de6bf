package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/studenthub/backend/internal/app/controllers"
	"github.com/studenthub/backend/internal/app/models"
	"github.com/studenthub/backend/internal/middleware"
	"github.com/studenthub/backend/internal/pkg/metrics"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	activityController *controllers.ActivityController,
	studentController *controllers.StudentController,
	analyticsController *controllers.AnalyticsController,
	portfolioController *controllers.PortfolioController,
	facultyController *controllers.FacultyController,
	notificationController *controllers.NotificationController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)

		// Activity routes
		activities := authenticated.Group("/activities")
		{
			activities.GET("", activityController.List)
			activities.POST("", activityController.Create)
			activities.POST("/with-file", activityController.CreateWithFile)
			activities.GET("/user/:userId", activityController.ListForUser)
			activities.GET("/analytics/:userId", analyticsController.UserStats)
			activities.GET("/:id", activityController.Get)
			activities.DELETE("/:id", activityController.Delete)

			// Status decisions are reviewer-only
			activitiesReviewerProtected := activities.Group("")
			activitiesReviewerProtected.Use(authMiddleware.RoleRequired(models.RoleFaculty, models.RoleAdmin))
			{
				activitiesReviewerProtected.PATCH("/:id/status", activityController.UpdateStatus)
			}
		}

		// Analytics routes
		analytics := authenticated.Group("/analytics")
		{
			analytics.GET("/advanced", analyticsController.Advanced)
		}

		// Student routes
		students := authenticated.Group("/students")
		{
			students.GET("/profile", studentController.GetOwnProfile)
			students.PUT("/profile", studentController.UpdateProfile)
			students.GET("/profile/:id", studentController.GetProfile)
			students.GET("/dashboard", studentController.Dashboard)
			students.GET("/leaderboard", studentController.Leaderboard)
			students.GET("/portfolio", portfolioController.GetOwn)
			students.GET("/portfolio/:id", portfolioController.Get)

			// Directory listing is reviewer-only, account removal admin-only;
			// the service enforces the admin check.
			studentsReviewerProtected := students.Group("")
			studentsReviewerProtected.Use(authMiddleware.RoleRequired(models.RoleFaculty, models.RoleAdmin))
			{
				studentsReviewerProtected.GET("", studentController.List)
				studentsReviewerProtected.DELETE("/:id", studentController.Delete)
			}
		}

		// Portfolio generation
		authenticated.POST("/portfolio/generate", portfolioController.Generate)

		// Faculty routes - reviewer-only management surface
		faculty := authenticated.Group("/faculty")
		faculty.Use(authMiddleware.RoleRequired(models.RoleFaculty, models.RoleAdmin))
		{
			faculty.PATCH("/bulk-action", facultyController.BulkAction)
			faculty.GET("/dashboard", facultyController.Dashboard)
			faculty.GET("/pending-activities", facultyController.PendingActivities)
			faculty.GET("/reports", facultyController.Reports)
			faculty.GET("/reports/export", facultyController.ExportReport)
		}

		// Notification routes
		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.List)
			notifications.PATCH("/:id/read", notificationController.MarkRead)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus scrape endpoint (public)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
}
