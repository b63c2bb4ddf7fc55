package routes

import (
	"telecare/internal/controllers"
	"telecare/internal/middleware"

	"github.com/gin-gonic/gin"
)

func VitalsRoutes(r *gin.Engine) {
	vitals := r.Group("/vitals")
	vitals.Use(middleware.RequireAuthWithRole("patient"))
	{
		vitals.POST("/", controllers.RecordVitalSign)
		vitals.GET("/", controllers.ListMyVitalSigns)
	}

	review := r.Group("/vitals")
	review.Use(middleware.RequireAuthWithAnyRole("doctor", "admin"))
	{
		review.GET("/patient/:patientId", controllers.ListPatientVitalSigns)
	}
}
