package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.Use(cors.Default())

	api := router.Group("/api")
	{
		api.GET("/mutations", handler.GetMutations)
		api.GET("/stats/commune/:code", handler.GetCommuneStats)
		api.GET("/stats/zone", handler.GetZoneStats)
		api.GET("/stats/current", handler.GetStatsPanel)
		api.POST("/stats/scope", handler.SetStatsScope)
		api.GET("/suggestions", handler.GetSuggestions)
		api.POST("/suggestions/commit", handler.CommitSuggestion)
		api.GET("/parcelles/:id", handler.GetParcelAddresses)
		api.GET("/reverse", handler.ReverseGeocode)
		api.POST("/addresses/import", handler.ImportAddresses)
		api.POST("/session", handler.CreateSession)
		api.GET("/session/:sid", handler.GetSessionView)
		api.POST("/session/:sid/events", handler.PushSessionEvent)
		api.DELETE("/session/:sid", handler.CloseSession)
	}
}
