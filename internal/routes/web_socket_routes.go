package routes

import (
	"telecare/internal/controllers"

	"github.com/gin-gonic/gin"
)

func WebSocketRoutes(r *gin.Engine, dc *controllers.DispatchWSController) {
	wsRoutes := r.Group("/ws")
	{
		wsRoutes.GET("/dispatch", dc.HandleDispatchWebSocket)
	}
}
