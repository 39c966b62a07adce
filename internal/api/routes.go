package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/healthz", handler.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/colleges", handler.ListColleges)
		api.GET("/colleges/facets", handler.GetFacets)
		api.GET("/colleges/:code/slots", handler.ListCollegeSlots)
	}
}

// NewRouter builds the engine with request logging through zap
func NewRouter(handler *Handler, logger *zap.Logger, production bool) *gin.Engine {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))
	SetupRoutes(router, handler)
	return router
}
