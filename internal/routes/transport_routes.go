package routes

import (
	"telecare/internal/controllers"
	"telecare/internal/middleware"

	"github.com/gin-gonic/gin"
)

func TransportRoutes(r *gin.Engine, tc *controllers.TransportController) {
	transport := r.Group("/transport")
	transport.Use(middleware.RequireAuth())
	{
		transport.POST("/", tc.Create)
		transport.GET("/", tc.ListActive)
		transport.GET("/patient/:patientId", tc.ListByPatient)
		transport.GET("/:id", tc.Get)
		transport.PATCH("/:id/assign", tc.Assign)
		transport.PATCH("/:id/start", tc.Start)
		transport.PATCH("/:id/complete", tc.Complete)
		transport.PATCH("/:id/cancel", tc.Cancel)
		transport.PATCH("/:id", tc.Update)
		transport.GET("/:id/location", tc.Location)
		transport.GET("/:id/route", tc.Route)
	}
}
