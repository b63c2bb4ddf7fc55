package routes

import (
	"telecare/internal/controllers"
	"telecare/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AppointmentRoutes(r *gin.Engine) {
	appointments := r.Group("/appointments")
	appointments.Use(middleware.RequireAuth())
	{
		appointments.POST("/", controllers.CreateAppointment)
		appointments.GET("/", controllers.ListMyAppointments)
		appointments.GET("/:id", controllers.GetAppointment)
		appointments.PATCH("/:id/cancel", controllers.CancelAppointment)
	}

	doctorOnly := r.Group("/appointments")
	doctorOnly.Use(middleware.RequireAuthWithRole("doctor"))
	{
		doctorOnly.PATCH("/:id/confirm", controllers.ConfirmAppointment)
		doctorOnly.PATCH("/:id/complete", controllers.CompleteAppointment)
	}
}
