package routes

import (
	"telecare/internal/controllers"
	"telecare/internal/middleware"

	"github.com/gin-gonic/gin"
)

func DoctorRoutes(r *gin.Engine) {
	doctors := r.Group("/doctors")
	doctors.Use(middleware.RequireAuth())
	{
		doctors.GET("/", controllers.ListDoctors)
		doctors.GET("/:id", controllers.GetDoctor)
	}

	me := r.Group("/doctors/me")
	me.Use(middleware.RequireAuthWithRole("doctor"))
	{
		me.PATCH("/availability", controllers.SetDoctorAvailability)
	}
}
