package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kennel-backend/internal/shared/middleware"
	"kennel-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))

		setupPublicRoutes(v1, c)
		setupAuthRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

// ========================================
// PUBLIC CATALOG ROUTES
// ========================================
// No authentication: these back the public website pages.
func setupPublicRoutes(v1 *gin.RouterGroup, c *container.Container) {
	dogs := v1.Group("/dogs")
	{
		dogs.GET("", c.DogHandler.ListDogs)
		dogs.GET("/breeders", c.DogHandler.ListBreeders)
		dogs.GET("/featured", c.DogHandler.ListFeatured)
	}
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.AdminHandler.Login)
		// Public: the invite token itself is the credential
		auth.POST("/accept-invite", c.AdminHandler.AcceptInvite)

		authed := auth.Group("")
		authed.Use(middleware.AuthMiddleware(c.JWTManager, c.Cache))
		{
			authed.POST("/logout", c.AdminHandler.Logout)
			authed.GET("/me", c.AdminHandler.Me)
		}
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
// Everything under /admin requires a valid, non-revoked session.
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager, c.Cache))
	{
		dogs := admin.Group("/dogs")
		{
			dogs.GET("", c.DogHandler.ListAll)
			dogs.POST("", c.DogHandler.Create)
			dogs.PUT("/:id", c.DogHandler.Update)
			dogs.DELETE("/:id", c.DogHandler.Delete)
			dogs.PATCH("/:id/breeder", c.DogHandler.ToggleBreeder)
		}

		admin.POST("/invites", c.AdminHandler.Invite)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  gin.H{},
		}

		// Check database
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

		// Check redis
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
