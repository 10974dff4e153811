package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/flexfour/internal/transport/http/middleware"
)

// NewRouter wires the game API. ws may be nil when live play is disabled.
func NewRouter(h *GameHandler, ws gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Stateless engine routes
	router.POST("/api/games", h.CreateGame)
	router.POST("/api/evaluate", h.Evaluate)
	router.POST("/api/choose-move", h.ChooseMove)
	router.GET("/api/stats", h.GetStats)

	// Token-guarded game routes
	games := router.Group("/api/games/:id")
	games.Use(middleware.GameAuthMiddleware())
	{
		games.GET("", h.GetGame)
		games.POST("/moves", h.PlayMove)
		games.POST("/undo", h.Undo)
		games.POST("/reset", h.Reset)
	}

	if ws != nil {
		router.GET("/ws", ws)
	}

	return router
}
