package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"library-backend/internal/shared/middleware"
	"library-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupBookRoutes(v1, c)
		setupStudentRoutes(v1, c)
		setupRecordRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.StudentHandler.Login)
		auth.POST("/refresh", c.StudentHandler.Refresh)
		auth.POST("/logout", middleware.AuthMiddleware(c.JWTManager), c.StudentHandler.Logout)
		auth.GET("/me", middleware.AuthMiddleware(c.JWTManager), c.StudentHandler.Me)
	}
}

func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	books.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/:id", c.BookHandler.GetBook)

		admin := books.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("", c.BookHandler.CreateBook)
			admin.PUT("/:id", c.BookHandler.UpdateBook)
			admin.DELETE("/:id", c.BookHandler.DeleteBook)
		}
	}
}

func setupStudentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	students := v1.Group("/students")
	students.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		students.GET("", c.StudentHandler.ListStudents)
		students.GET("/:id", c.StudentHandler.GetStudent)
		students.POST("", c.StudentHandler.CreateStudent)
	}
}

func setupRecordRoutes(v1 *gin.RouterGroup, c *container.Container) {
	records := v1.Group("/records")
	records.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		records.GET("", c.LoanHandler.ListLoans)
		records.POST("", c.LoanHandler.Borrow)
		records.POST("/return", c.LoanHandler.Return)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
