package api

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/playmatatu/ballpark/internal/api/handlers"
	"github.com/playmatatu/ballpark/internal/config"
	"github.com/playmatatu/ballpark/internal/game"
	"github.com/playmatatu/ballpark/internal/middleware"
	"github.com/playmatatu/ballpark/internal/ws"
)

// Deps are the services the routes are served from.
type Deps struct {
	DB      *sqlx.DB
	Config  *config.Config
	Manager *game.Manager
	Store   *game.SQLStore
	Hub     *ws.Hub
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, d Deps) {
	cfg := d.Config
	router.Use(middleware.CORSMiddleware(cfg))

	if !cfg.IsProduction() {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		log.Println("[DEV MODE] no-cache headers enabled for all routes")
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck(d.Manager))
		v1.GET("/teams", handlers.ListTeams)

		matches := v1.Group("/matches")
		{
			matches.POST("", handlers.CreateMatch(d.Manager, cfg))
			matches.GET("/:id", handlers.GetMatch(d.Manager, d.Store))
			matches.GET("/:id/events", handlers.GetMatchEvents(d.Store))
			matches.GET("/:id/ws", middleware.WebSocketCORSCheck(cfg), ws.NewHandler(d.Hub, d.Manager, cfg.JWTSecret).HandleMatchSocket)
		}

		adminGroup := v1.Group("/admin", middleware.AdminAuth(d.DB))
		{
			adminGroup.GET("/matches", handlers.GetAdminMatches(d.Manager, d.Store))
			adminGroup.POST("/matches/:id/abandon", handlers.AbandonAdminMatch(d.DB, d.Manager))
			adminGroup.GET("/config", handlers.GetAdminRuntimeConfig(d.DB, d.Manager))
			adminGroup.PUT("/config/:key", handlers.UpdateAdminRuntimeConfig(d.DB, cfg, d.Manager))
			adminGroup.GET("/audit", handlers.GetAdminAuditLogs(d.DB))
		}
	}
}
