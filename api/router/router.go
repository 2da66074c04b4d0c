package router

import (
	"github.com/gin-gonic/gin"

	"quancetong/api/handler"
)

func RegisterRoutes(r *gin.Engine, queryH *handler.QueryHandler) {
	r.POST("/query", queryH.Query)
	r.GET("/health", queryH.Health)
	r.GET("/history", queryH.History)
}
