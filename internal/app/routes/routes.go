package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hakif/knowforum/internal/app/controllers"
	"github.com/hakif/knowforum/internal/app/models"
	"github.com/hakif/knowforum/internal/middleware"
)

// SetupRouter configures all application routes under /api/v1.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	noteController *controllers.NoteController,
	viewController *controllers.ViewController,
	groupController *controllers.GroupController,
	scaffoldController *controllers.ScaffoldController,
	notificationController *controllers.NotificationController,
	adminController *controllers.AdminController,
	analysisController *controllers.AnalysisController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// Everything below requires a valid access token
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.Me)
		authenticated.PUT("/auth/me", authController.UpdateMe)
		authenticated.POST("/auth/logout", authController.Logout)

		courses := authenticated.Group("/courses")
		{
			courses.GET("", courseController.GetCourses)
			courses.POST("/join", courseController.JoinByCode)
			courses.POST("", courseController.CreateCourse)
			courses.GET("/:id", courseController.GetCourse)
			courses.PUT("/:id", courseController.UpdateCourse)
			courses.DELETE("/:id", courseController.DeleteCourse)
			courses.POST("/:id/join", courseController.JoinCourse)
			courses.POST("/:id/leave", courseController.LeaveCourse)
			courses.GET("/:id/members", courseController.GetMembers)
			courses.GET("/:id/views", viewController.GetViews)
			courses.POST("/:id/views", viewController.CreateView)
			courses.GET("/:id/groups", groupController.GetGroups)
			courses.POST("/:id/groups", groupController.CreateGroup)
		}

		notes := authenticated.Group("/notes")
		{
			notes.GET("", noteController.GetNotes)
			notes.POST("", noteController.CreateNote)
			notes.GET("/:id", noteController.GetNote)
			notes.PUT("/:id", noteController.UpdateNote)
			notes.DELETE("/:id", noteController.DeleteNote)
			notes.GET("/:id/versions", noteController.GetNoteVersions)
			notes.GET("/:id/interactions", analysisController.GetNoteInteractions)
		}

		authenticated.PUT("/views/:id", viewController.UpdateView)
		authenticated.DELETE("/views/:id", viewController.DeleteView)

		groups := authenticated.Group("/groups")
		{
			groups.POST("/:id/join", groupController.JoinGroup)
			groups.GET("/:id/members", groupController.GetMembers)
			groups.POST("/:id/members", groupController.AddMember)
		}

		scaffolds := authenticated.Group("/scaffolds")
		{
			scaffolds.GET("", scaffoldController.GetScaffolds)
			scaffolds.POST("", scaffoldController.CreateScaffold)
		}

		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.GetNotifications)
			notifications.PUT("/read-all", notificationController.MarkAllRead)
			notifications.PUT("/:id/read", notificationController.MarkRead)
		}

		authenticated.POST("/teacher-applications", adminController.SubmitApplication)

		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			admin.GET("/users", adminController.GetUsers)
			admin.GET("/teacher-applications", adminController.GetApplications)
			admin.PUT("/teacher-applications/:id/review", adminController.ReviewApplication)
		}

		authenticated.POST("/analyze-note", analysisController.AnalyzeNote)
	}
}
