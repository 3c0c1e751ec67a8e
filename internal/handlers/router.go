package handlers

import (
	"github.com/SAP-F-2025/classroom-service/internal/models"
	"github.com/SAP-F-2025/classroom-service/internal/services"
	"github.com/SAP-F-2025/classroom-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	authHandler    *AuthHandler
	quizHandler    *QuizHandler
	gradingHandler *GradingHandler
	contentHandler *ContentHandler
	adminHandler   *AdminHandler

	authService    services.AuthService
	logger         utils.Logger
	maxContentSize int64
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger, maxContentSize int64) *HandlerManager {
	return &HandlerManager{
		authHandler:    NewAuthHandler(serviceManager.Auth(), logger),
		quizHandler:    NewQuizHandler(serviceManager.Quiz(), serviceManager.Submission(), serviceManager.Export(), logger),
		gradingHandler: NewGradingHandler(serviceManager.Submission(), logger),
		contentHandler: NewContentHandler(serviceManager.Content(), logger),
		adminHandler:   NewAdminHandler(serviceManager.Admin(), logger),
		authService:    serviceManager.Auth(),
		logger:         logger,
		maxContentSize: maxContentSize,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.Use(utils.RequestID(), utils.LoggerMiddleware(hm.logger), MaxBodySize(hm.maxContentSize))

	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	v1.GET("/health", HealthCheck)

	auth := v1.Group("/auth")
	{
		auth.POST("/register", hm.authHandler.Register)
		auth.POST("/login", hm.authHandler.Login)
	}

	// Everything below requires a valid session
	protected := v1.Group("")
	protected.Use(AuthMiddleware(hm.authService))
	teacherOnly := RequireRole(models.RoleTeacher)

	protected.POST("/auth/logout", hm.authHandler.Logout)
	protected.GET("/auth/me", hm.authHandler.Me)
	protected.GET("/dashboard", hm.contentHandler.Dashboard)

	lessons := protected.Group("/lessons")
	{
		lessons.GET("", hm.contentHandler.ListLessons)
		lessons.POST("", teacherOnly, hm.contentHandler.CreateLesson)
	}

	announcements := protected.Group("/announcements")
	{
		announcements.GET("", hm.contentHandler.ListAnnouncements)
		announcements.POST("", teacherOnly, hm.contentHandler.CreateAnnouncement)
	}

	quizzes := protected.Group("/quizzes")
	{
		quizzes.POST("", teacherOnly, hm.quizHandler.CreateQuiz)
		quizzes.GET("", hm.quizHandler.ListQuizzes)
		quizzes.GET("/:id", hm.quizHandler.GetQuiz)
		quizzes.POST("/:id/toggle", teacherOnly, hm.quizHandler.ToggleActive)
		quizzes.POST("/:id/submissions", hm.quizHandler.Submit)
		quizzes.GET("/:id/results", hm.quizHandler.ListResults)
		quizzes.GET("/:id/results/export", teacherOnly, hm.quizHandler.ExportResults)
	}

	protected.POST("/submissions/:id/grade", teacherOnly, hm.gradingHandler.GradeSubmission)
	protected.POST("/admin/reset", teacherOnly, hm.adminHandler.ResetAll)
	protected.GET("/uploads/:name", hm.contentHandler.DownloadFile)
}
