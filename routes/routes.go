package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"coursecart/handlers"
	"coursecart/middleware"
	"coursecart/utils"
)

// RegisterSelectionRoutes sets up the endpoints for the selection engine.
func RegisterSelectionRoutes(r *gin.Engine, sh *handlers.SelectionHandler) {
	selectionGroup := r.Group("/api/selection")
	{
		selectionGroup.Use(middleware.JWTAuthUserMiddleware())
		selectionGroup.POST("/episode", sh.StartEpisode)
		selectionGroup.POST("/episode/import", sh.ImportHandoff)
		selectionGroup.GET("/episode/:episodeID", sh.GetEpisode)
		selectionGroup.POST("/episode/:episodeID/sessions", sh.AddSession)
		selectionGroup.DELETE("/episode/:episodeID/sessions/:sessionID", sh.RemoveSession)
		selectionGroup.POST("/episode/:episodeID/confirm", sh.Confirm)
		selectionGroup.DELETE("/episode/:episodeID", sh.Cancel)
	}
}

// RegisterCatalogRoutes sets up read-only session and package listings.
func RegisterCatalogRoutes(r *gin.Engine, ch *handlers.CatalogHandler) {
	catalogGroup := r.Group("/api/catalog")
	{
		catalogGroup.GET("/sessions", ch.GetSessions)
	}
	r.GET("/api/packages", ch.GetPackages)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, sh *handlers.SelectionHandler, ch *handlers.CatalogHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterCatalogRoutes(r, ch)
	RegisterSelectionRoutes(r, sh)
}
