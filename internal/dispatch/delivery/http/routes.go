package http

import "github.com/gin-gonic/gin"

// RegisterRoutes maps the test endpoints under rg.
func RegisterRoutes(rg *gin.RouterGroup, h Handler) {
	rg.POST("/message", h.HandleTestMessage)
	rg.POST("/join", h.HandleTestJoin)
	rg.GET("/health", h.HandleHealthCheck)
}
