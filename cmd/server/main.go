package main

import (
	"log"
	"net/http"
	"os"

	"telecare/internal/config"
	"telecare/internal/controllers"
	"telecare/internal/dispatch"
	"telecare/internal/logger"
	"telecare/internal/middleware"
	"telecare/internal/routes"
	"telecare/internal/transport"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Dispatch wiring: one registry and one state machine shared by the
	// HTTP handlers and the websocket endpoint.
	registry := dispatch.NewRegistry()
	service := transport.NewService(transport.NewGormStore(config.DB))

	tc := controllers.NewTransportController(service, registry)
	dc := controllers.NewDispatchWSController(registry)

	// Setup Gin router with recovery and request logging
	r := routes.SetupRouter(tc, dc)

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := "0.0.0.0:" + getPort()
	log.Println("🚀 Server running at " + addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}

func getPort() string {
	if v := os.Getenv("PORT"); v != "" {
		return v
	}
	return "8080"
}
