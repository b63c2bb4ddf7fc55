package routes

import (
	"telecare/internal/controllers"
	"telecare/internal/middleware"

	"github.com/gin-gonic/gin"
)

func PrescriptionRoutes(r *gin.Engine) {
	medicines := r.Group("/medicines")
	medicines.Use(middleware.RequireAuth())
	{
		medicines.GET("/", controllers.ListMedicines)
	}

	medicinesAdmin := r.Group("/medicines")
	medicinesAdmin.Use(middleware.RequireAuthWithRole("admin"))
	{
		medicinesAdmin.POST("/", controllers.CreateMedicine)
		medicinesAdmin.PUT("/:id", controllers.UpdateMedicine)
		medicinesAdmin.DELETE("/:id", controllers.DeleteMedicine)
	}

	prescriptions := r.Group("/prescriptions")
	prescriptions.Use(middleware.RequireAuth())
	{
		prescriptions.GET("/", controllers.ListMyPrescriptions)
		prescriptions.GET("/:id", controllers.GetPrescription)
	}

	prescriptionsDoctor := r.Group("/prescriptions")
	prescriptionsDoctor.Use(middleware.RequireAuthWithRole("doctor"))
	{
		prescriptionsDoctor.POST("/", controllers.CreatePrescription)
	}
}
