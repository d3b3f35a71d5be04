package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/mkaplan/schoolpanel/internal/app/controllers"
	"github.com/mkaplan/schoolpanel/internal/app/models"
	"github.com/mkaplan/schoolpanel/internal/app/models/dto"
	"github.com/mkaplan/schoolpanel/internal/middleware"
)

// SetupRouter configures all application routes. Two authorization tiers are
// used: any authenticated session, and admin only.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	accountController *controllers.AccountController,
	studentController *controllers.StudentController,
	transferController *controllers.TransferController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.SessionAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)

		authenticated.GET("/dashboard", studentController.Dashboard)

		// Roster routes: open to every authenticated role
		students := authenticated.Group("/students")
		{
			students.GET("", studentController.ListStudents)
			students.POST("", studentController.AddStudent)
			students.GET("/export", transferController.ExportStudents)
			students.GET("/:id", studentController.GetStudent)
			students.PUT("/:id", studentController.UpdateStudent)
			students.DELETE("/:id", studentController.DeleteStudent)

			// Bulk import is admin only
			studentsAdmin := students.Group("")
			studentsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				studentsAdmin.POST("/import", transferController.ImportStudents)
			}
		}

		// Account administration is admin only
		accounts := authenticated.Group("/accounts")
		accounts.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			accounts.GET("", accountController.ListAccounts)
			accounts.POST("", accountController.CreateAccount)
			accounts.DELETE("/:id", accountController.DeleteAccount)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewAPIResponse(gin.H{"status": "ok"}, ""))
	})
}
