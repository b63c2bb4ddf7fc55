package routes

import (
	"telecare/internal/controllers"
	"telecare/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.GET("/patients", controllers.ListPatients)
	}
}
