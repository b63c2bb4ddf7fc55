package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"telecare/internal/controllers"
)

// SetupRouter wires every route group onto one engine. The transport and
// dispatch controllers come in from the bootstrap so they share the same
// state machine and connection registry.
func SetupRouter(tc *controllers.TransportController, dc *controllers.DispatchWSController) *gin.Engine {
	// gin.New rather than gin.Default: ginlog is the request logger, so
	// gin's built-in one would log every request twice.
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	AuthRoutes(r)
	TransportRoutes(r, tc)
	WebSocketRoutes(r, dc)
	DoctorRoutes(r)
	AppointmentRoutes(r)
	PrescriptionRoutes(r)
	VitalsRoutes(r)
	AdminRoutes(r)

	return r
}
