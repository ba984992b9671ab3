package app

import (
	"matchquiz_backend/docs"
	"matchquiz_backend/internal/config"
	"matchquiz_backend/internal/middleware"
	"matchquiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/quizzes/public", c.quiz.ListPublic)
	}

	// 2. 可选登录：游客可查看和答公开测验，登录用户可访问自己的私有测验
	tryAuth := router.Group("/api")
	tryAuth.Use(middleware.TryAuthMiddleware(cfg))
	{
		tryAuth.GET("/quizzes/:id", c.quiz.GetQuiz)
		tryAuth.POST("/quizzes/:id/take", c.attempt.StartTake)
		tryAuth.POST("/quizzes/:id/attempts", c.attempt.SubmitMatches)
		tryAuth.POST("/take/:sessionId/select-left", c.attempt.SelectLeft)
		tryAuth.POST("/take/:sessionId/select-right", c.attempt.SelectRight)
		tryAuth.POST("/take/:sessionId/submit", c.attempt.SubmitSession)
		tryAuth.GET("/attempts/:id/review", c.attempt.Review)
	}

	// 3. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.GET("/quizzes/mine", c.quiz.ListMine)
		authGroup.POST("/quizzes", c.quiz.CreateQuiz)
		authGroup.PUT("/quizzes/:id", c.quiz.UpdateQuiz)
		authGroup.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)
		authGroup.GET("/attempts", c.attempt.History)
	}
}
