package router

import (
	"github.com/gin-gonic/gin"

	"github.com/delimatsuo/headhunter/internal/http/handler"
)

type RouterConfig struct {
	IsProduction bool
}

func SetupRoutes(router *gin.Engine, searchHandler *handler.SearchHandler, healthHandler *handler.HealthHandler, cfg RouterConfig) {
	router.GET("/health", healthHandler.Check)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/search", searchHandler.Search)
	}
}
