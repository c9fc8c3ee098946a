package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Abdus2609/vizor/internal/handlers"
)

type ConnectionRoutes struct {
	handler *handlers.ConnectionHandler
}

func NewConnectionRoutes(handler *handlers.ConnectionHandler) *ConnectionRoutes {
	return &ConnectionRoutes{handler: handler}
}

func (r *ConnectionRoutes) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/db-login", r.handler.Login)
	router.GET("/connection-options", r.handler.Options)
}
